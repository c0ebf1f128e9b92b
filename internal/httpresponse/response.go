package httpresponse

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	errs "gogame/internal/errors"
)

type Response[T any] struct {
	Status int `json:"Status"`
	Body   any `json:"Body,omitempty"`
}

type ErrorResponse struct {
	ErrorDescription string `json:"ErrorDescription"`
}

const INTERNALERRORJSON = "{\"status\": 500,\"body\":{\"error\": \"Internal server error\"}}"

const MALFORMEDJSON_errorDesc = "json unmarshalling error"

// WriteResponseWithStatus writes body inside the {Status, Body} envelope and
// sets the same status on the response.
func WriteResponseWithStatus(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	jsonByte, err := marshalStatusJson(status, body)
	if err != nil {
		WriteInternalErrorResponse(w)
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write(jsonByte)
}

func marshalStatusJson(status int, body any) ([]byte, error) {
	response := Response[any]{
		Status: status,
		Body:   body,
	}
	marshal, err := json.Marshal(response)
	if err != nil {
		return nil, err
	}
	return marshal, nil
}

func WriteInternalErrorResponse(w http.ResponseWriter) {
	// implementation similar to http.Error, only difference is the Content-type
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = fmt.Fprintln(w, INTERNALERRORJSON)
}

// StatusFromError maps the domain errors to HTTP status codes. Unknown
// errors are internal.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, errs.ErrGameNotFound),
		errors.Is(err, errs.ErrReviewNotFound),
		errors.Is(err, errs.ErrMoveNotFound),
		errors.Is(err, errs.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrOutOfSync),
		errors.Is(err, errs.ErrNotYourTurn),
		errors.Is(err, errs.ErrOccupied),
		errors.Is(err, errs.ErrSuicide),
		errors.Is(err, errs.ErrGameFinished):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrNotAPlayer),
		errors.Is(err, errs.ErrNotReviewer),
		errors.Is(err, errs.ErrSessionNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrBadRequest),
		errors.Is(err, errs.ErrBadMove),
		errors.Is(err, errs.ErrOutOfBounds),
		errors.Is(err, errs.ErrUnplayedMove),
		errors.Is(err, errs.ErrRootMove),
		errors.Is(err, errs.ErrBadBoardSize),
		errors.Is(err, errs.ErrBadHandicap):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// WriteError answers with the status matching err. Internal errors are not
// described to the client.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusFromError(err)
	if status == http.StatusInternalServerError {
		WriteInternalErrorResponse(w)
		return
	}
	WriteResponseWithStatus(w, status, ErrorResponse{ErrorDescription: err.Error()})
}
