package domain

import "strings"

// Identity текущий пользователь запроса
type Identity struct {
	UserID  string
	Email   string
	IsAdmin bool
}

// IsAnonymous запрос без авторизации
func (i Identity) IsAnonymous() bool {
	return i.UserID == "" && i.Email == ""
}

// Actor инициатор смены статуса
type Actor string

const (
	ActorAdmin     Actor = "admin"
	ActorRequester Actor = "requester"
)

// ActorFor возвращает роль пользователя для машины состояний
func ActorFor(identity Identity) Actor {
	if identity.IsAdmin {
		return ActorAdmin
	}
	return ActorRequester
}

// IsAdminEmail проверяет email по списку администраторов
func IsAdminEmail(email string, admins []string) bool {
	for _, a := range admins {
		if strings.EqualFold(strings.TrimSpace(a), email) {
			return true
		}
	}
	return false
}
