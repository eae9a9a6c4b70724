// Package client talks to the profile service over HTTP.
//
// HTTPClient covers registration (multipart upload), profile retrieval and
// the liveness probe. Non-2xx responses are returned as *APIError carrying
// the status code and the server's error message; transport failures wrap
// ErrUnavailable. Both can be matched with errors.Is / errors.As.
package client
