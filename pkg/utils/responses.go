package utils

import (
	"encoding/json"
	"net/http"

	"sigac-rental/pkg/apperror"
)

type Response struct {
	Status  bool   `json:"status"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// ResponseJSON writes JSON response with custom status code
func ResponseJSON(w http.ResponseWriter, code int, status bool, message string, data, errors any) {
	writeJSON(w, code, Response{
		Status:  status,
		Message: message,
		Data:    data,
		Errors:  errors,
	})
}

func writeJSON(w http.ResponseWriter, code int, response Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusOK, true, message, data, nil)
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusCreated, true, message, data, nil)
}

// ------------- Error responses -------------

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, message string, errors any) {
	writeJSON(w, http.StatusBadRequest, Response{
		Code:    string(apperror.KindValidation),
		Message: message,
		Errors:  errors,
	})
}

// returns 401 Unauthorized
func ResponseUnauthorized(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnauthorized, Response{Code: string(apperror.KindUnauthorized), Message: message})
}

// returns 403 Forbidden
func ResponseForbidden(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusForbidden, Response{Code: string(apperror.KindForbidden), Message: message})
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, Response{Code: string(apperror.KindNotFound), Message: message})
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusInternalServerError, Response{Code: string(apperror.KindInternal), Message: message})
}

// ResponseError maps a service error onto its status code and error code.
// Internal details never reach the client.
func ResponseError(w http.ResponseWriter, err error) {
	appErr := apperror.From(err)
	if appErr.Kind == apperror.KindInternal {
		ResponseInternalError(w, "internal server error")
		return
	}

	var details any
	if len(appErr.Details) > 0 {
		details = appErr.Details
	}
	writeJSON(w, appErr.HTTPStatus(), Response{
		Code:    string(appErr.Kind),
		Message: appErr.Message,
		Errors:  details,
	})
}
