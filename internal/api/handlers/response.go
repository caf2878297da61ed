package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

const (
	msgInternalError = "внутренняя ошибка сервера"
)

// ErrorResponse тело ответа с ошибкой
// fields - ошибки валидации по полям (имя поля в JSON -> правило)
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// RespondJSON записывает data как JSON с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError записывает ошибку с указанным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

// RespondValidationError 400 с ошибками по полям
func RespondValidationError(w http.ResponseWriter, message string, fields map[string]string) {
	RespondJSON(w, http.StatusBadRequest, ErrorResponse{Error: message, Fields: fields})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondTooManyRequests(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusTooManyRequests, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondNoContent 204 без тела
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// DecodeJSON читает тело запроса в v
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty request body")
		}
		return err
	}
	return nil
}

// ParseID достаёт положительный int64 из переменной пути
func ParseID(r *http.Request, name string) (int64, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, fmt.Errorf("path variable %q is missing", name)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("path variable %q must be positive", name)
	}
	return id, nil
}
