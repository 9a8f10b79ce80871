package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

const (
	msgInternalError      = "внутренняя ошибка сервера"
	msgRemoteUnavailable  = "сервис временно недоступен, попробуйте позже"
	msgInvalidRequestBody = "некорректное тело запроса"
)

// ErrorResponse тело ответа с ошибкой.
// Retryable подсказывает клиенту показать баннер "повторите позже".
type ErrorResponse struct {
	Error     string      `json:"error"`
	Retryable bool        `json:"retryable,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

// RespondJSON пишет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ошибку с указанным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

// RespondErrorWithData пишет ошибку вместе с данными (например, исходной формой)
func RespondErrorWithData(w http.ResponseWriter, status int, message string, data interface{}) {
	RespondJSON(w, status, ErrorResponse{
		Error:     message,
		Retryable: status == http.StatusServiceUnavailable,
		Data:      data,
	})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondUnavailable хранилище или внешний сервис недоступен, запрос можно повторить
func RespondUnavailable(w http.ResponseWriter) {
	RespondJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: msgRemoteUnavailable, Retryable: true})
}

// StatusFor HTTP статус по классу ошибки
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrConfigurationInvalid), errors.Is(err, domain.ErrValidationFailed):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSlotUnavailable), errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRemoteUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondDomainError пишет ошибку по ее классу. Для 4xx клиент получает message
// (пустой message заменяется текстом ошибки), для 5xx только общий текст.
func RespondDomainError(w http.ResponseWriter, err error, message string) {
	switch status := StatusFor(err); status {
	case http.StatusServiceUnavailable:
		RespondUnavailable(w)
	case http.StatusInternalServerError:
		RespondInternalError(w)
	default:
		if message == "" {
			message = err.Error()
		}
		RespondError(w, status, message)
	}
}

// DecodeJSON читает тело запроса, неизвестные поля запрещены
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("%s: empty body", msgInvalidRequestBody)
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return nil
}

// PathID разбирает числовой параметр пути
func PathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("%s must be positive", name)
	}
	return id, nil
}
