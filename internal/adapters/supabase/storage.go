package supabase

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// UploadObject stores data under bucket/objectPath and returns the key
// the backend reports. With upsert off, a key collision is a hard error.
func (c *httpClient) UploadObject(ctx context.Context, accessToken, bucket, objectPath, contentType string, data []byte, upsert bool) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, bucket, objectPath),
		bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	c.setAuth(req, accessToken)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", strconv.FormatBool(upsert))

	var resp struct {
		Key  string `json:"Key"`
		Path string `json:"path"`
	}
	if err := c.send(req, &resp); err != nil {
		return "", err
	}
	if resp.Path != "" {
		return resp.Path, nil
	}
	// older storage versions only return "Key": "{bucket}/{path}"
	return strings.TrimPrefix(resp.Key, bucket+"/"), nil
}

// RemoveObjects deletes the given keys from bucket.
func (c *httpClient) RemoveObjects(ctx context.Context, accessToken, bucket string, objectPaths []string) error {
	payload := map[string][]string{"prefixes": objectPaths}
	return c.once(ctx, http.MethodDelete, "/storage/v1/object/"+bucket, accessToken, nil, payload, nil)
}

// CreateSignedURL asks the backend for a time-limited URL granting read
// access to bucket/objectPath without further authentication.
func (c *httpClient) CreateSignedURL(ctx context.Context, accessToken, bucket, objectPath string, ttl time.Duration) (string, error) {
	payload := map[string]int64{"expiresIn": int64(ttl.Seconds())}
	var resp struct {
		SignedURL string `json:"signedURL"`
	}
	path := fmt.Sprintf("/storage/v1/object/sign/%s/%s", bucket, objectPath)
	if err := c.doJSON(ctx, http.MethodPost, path, accessToken, nil, payload, &resp); err != nil {
		return "", err
	}
	if resp.SignedURL == "" {
		return "", &APIError{StatusCode: http.StatusInternalServerError, Message: "no signed url in response"}
	}
	return c.baseURL + "/storage/v1" + resp.SignedURL, nil
}

// PublicURL builds the well-known public object URL. Whether it actually
// serves bytes depends on the bucket being public.
func (c *httpClient) PublicURL(bucket, objectPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, bucket, objectPath)
}
