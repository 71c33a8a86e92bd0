package supabase

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// PostgREST error code for "zero rows from a single-object request".
const noRowsCode = "PGRST116"

// APIError is a non-2xx response from the backend. Code is the PostgREST
// or storage error code when one is present.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("supabase: %s (%s)", e.Message, e.Code)
	}
	return fmt.Sprintf("supabase: %s (status %d)", e.Message, e.StatusCode)
}

// IsNoRows reports whether err is the PostgREST "row not found" condition,
// which callers treat as success-with-no-data rather than a failure.
func IsNoRows(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == noRowsCode
}

func asAPIError(err error, target **APIError) bool {
	return errors.As(err, target)
}

func decodeAPIError(res *http.Response) error {
	apiErr := &APIError{StatusCode: res.StatusCode}

	// Auth, PostgREST and storage spell their error bodies differently,
	// and "code" can be a string or a number depending on the subsystem.
	var body map[string]interface{}
	raw, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	if err := json.Unmarshal(raw, &body); err == nil {
		switch code := body["code"].(type) {
		case string:
			apiErr.Code = code
		case float64:
			apiErr.Code = fmt.Sprintf("%d", int(code))
		}
		for _, k := range []string{"message", "msg", "error_description", "error"} {
			if m, ok := body[k].(string); ok && m != "" {
				apiErr.Message = m
				break
			}
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(res.StatusCode)
	}
	return apiErr
}
