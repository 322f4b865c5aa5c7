package handlertools

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/cropwise/cropwise/internal"
	"github.com/cropwise/cropwise/pkg/models"
)

var log = internal.GetLogger()

// SuccessResponse is the envelope of every successful API response.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

// ErrorResponse is the envelope of every failed API response. Error is a
// short title, Message the underlying error text.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// BoolFromQuery extracts a query string value and converts it to a bool
func BoolFromQuery(r *http.Request, param string) (bool, error) {
	p := r.URL.Query().Get(param)
	if p != "" {
		return strconv.ParseBool(p)
	}
	return false, nil
}

// EncodeJSON encodes data into JSON and writes it to the response writer.
func EncodeJSON(w http.ResponseWriter, data interface{}) error {
	return json.NewEncoder(w).Encode(data)
}

// DecodeJSON decodes a JSON request body into the provided data struct.
func DecodeJSON(r *http.Request, data interface{}) error {
	return json.NewDecoder(r.Body).Decode(data)
}

// RenderSuccess writes data in a success envelope.
func RenderSuccess(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := EncodeJSON(w, SuccessResponse{Success: true, Message: message, Data: data}); err != nil {
		log.Errorf("failed to encode response: %s", err)
	}
}

// RenderError writes err in an error envelope. Bad requests and oversized
// bodies override status.
func RenderError(w http.ResponseWriter, title string, err error, status int) {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		status = http.StatusRequestEntityTooLarge
		title = "Request too large"
	case errors.Is(err, models.ErrBadRequest), errors.Is(err, models.ErrDimensionMismatch):
		status = http.StatusBadRequest
	}

	if status >= http.StatusInternalServerError {
		log.Error(err)
	} else {
		log.Debugf("%s: %s", title, err)
	}

	writeError(w, status, title, err.Error())
}

// RouteNotFound renders the error envelope for requests that match no route,
// including a known path requested with the wrong method.
func RouteNotFound(w http.ResponseWriter, r *http.Request) {
	log.Debugf("route not found: %s %s", r.Method, r.URL.Path)
	writeError(
		w,
		http.StatusNotFound,
		"Route not found",
		fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path),
	)
}

func writeError(w http.ResponseWriter, status int, title, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := EncodeJSON(w, ErrorResponse{Error: title, Message: message}); encErr != nil {
		log.Errorf("failed to encode error response: %s", encErr)
	}
}

// ValidationMessage returns missingMessage when err reports a missing
// required field and the validator's message otherwise.
func ValidationMessage(err error, missingMessage string) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				return missingMessage
			}
		}
	}
	return err.Error()
}
