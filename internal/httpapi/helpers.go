package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const maxBodyBytes = 1 << 20 // 1 MiB

var (
	errPayloadTooLarge = errors.New("payload too large")
	errNotObject       = errors.New("invalid JSON: body must be a JSON object")
	errTrailingData    = errors.New("invalid JSON: trailing data after body")
)

// detailResponse is the body of every non-2xx response.
type detailResponse struct {
	Detail string `json:"detail"`
}

// decodeJSON reads exactly one JSON object from the body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	defer r.Body.Close()

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return bodyError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err != nil {
			if berr := bodyError(err); errors.Is(berr, errPayloadTooLarge) {
				return berr
			}
		}
		return errTrailingData
	}
	if !bytes.HasPrefix(raw, []byte("{")) {
		return errNotObject
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errPayloadTooLarge
	}
	return fmt.Errorf("invalid JSON: %w", err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, detailResponse{Detail: msg})
}

func writeRequestError(w http.ResponseWriter, err error) {
	if errors.Is(err, errPayloadTooLarge) {
		writeDetail(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}
	writeDetail(w, http.StatusUnprocessableEntity, err.Error())
}
