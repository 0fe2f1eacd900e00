package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotLoggedIn  = errors.New("not logged in")
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string][]string
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		if e.Message == "" {
			return fmt.Sprintf("server returned %d", e.StatusCode)
		}
		return fmt.Sprintf("%s (%d)", e.Message, e.StatusCode)
	}

	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, k := range names {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], " "))
	}
	return fmt.Sprintf("%s (%d)", strings.Join(parts, "; "), e.StatusCode)
}

// Is reports 401 responses as ErrUnauthorized.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// parseAPIError builds an APIError from an error body. The server answers
// either {"error": "..."} or a map of field names to messages.
func parseAPIError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		e.Message = strings.TrimSpace(string(body))
		return e
	}

	if msg, ok := raw["error"]; ok {
		_ = json.Unmarshal(msg, &e.Message)
		return e
	}

	for k, v := range raw {
		var msgs []string
		if err := json.Unmarshal(v, &msgs); err != nil {
			continue
		}
		if e.Fields == nil {
			e.Fields = make(map[string][]string, len(raw))
		}
		e.Fields[k] = msgs
	}
	return e
}
