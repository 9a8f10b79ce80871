package identity

import "errors"

var (
	// ErrUnauthorized возвращается, когда токен не принят провайдером
	ErrUnauthorized = errors.New("identity client: token rejected")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("identity client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе провайдера
	ErrInvalidResponse = errors.New("identity client: invalid response")
)
