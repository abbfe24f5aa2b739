package handler

import (
	"encoding/json"
	"net/http"
)

type jsonResponse struct {
	status  int
	headers http.Header
	body    any
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	for k, vs := range j.headers {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption configures a JSON response.
type JSONOption func(*jsonResponse)

// WithJSONStatus sets custom HTTP status code.
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) { r.status = status }
}

// WithJSONHeader adds a response header.
func WithJSONHeader(key, value string) JSONOption {
	return func(r *jsonResponse) {
		if r.headers == nil {
			r.headers = make(http.Header)
		}
		r.headers.Add(key, value)
	}
}

// JSON renders v as the response body with status 200 unless overridden.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: v}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WriteJSON writes v with status outside of a HandlerFunc, e.g. from middleware.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	return JSON(v, WithJSONStatus(status)).Render(w, nil)
}
