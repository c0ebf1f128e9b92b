package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxRequestBody bounds every JSON request; the largest one is a dead-stone
// batch covering a 19x19 board.
const maxRequestBody = 64 << 10

// DecodeJSONRequest decodes exactly one JSON value from the request body into
// dst. Unknown fields and trailing data are errors.
func DecodeJSONRequest(r *http.Request, dst interface{}) error {
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return errors.New("invalid JSON: trailing data after the request value")
	}
	return nil
}
