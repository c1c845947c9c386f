// Package httpjson holds the request/response JSON helpers shared by all
// feature handlers.
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// maxBodyBytes bounds request bodies; none of the platform's payloads come
// close to this.
const maxBodyBytes = 1 << 20

// Decode reads the request body into dst. It returns an error for empty
// bodies, malformed JSON, and bodies over the size limit.
func Decode(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	return nil
}

// Write sends v as JSON with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK sends v as JSON with status 200.
func OK(w http.ResponseWriter, v any) {
	Write(w, http.StatusOK, v)
}
