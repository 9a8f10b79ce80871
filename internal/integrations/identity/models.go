package identity

// User пользователь из identity provider
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	Role         string       `json:"role"`
	AppMetadata  UserMetadata `json:"app_metadata"`
	UserMetadata UserMetadata `json:"user_metadata"`
}

// UserMetadata дополнительные поля пользователя
type UserMetadata struct {
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

// IsAdmin роль администратора задана в метаданных приложения
func (u *User) IsAdmin() bool {
	return u.AppMetadata.Role == "admin"
}
