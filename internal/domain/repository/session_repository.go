package repository

// SessionRepository guarda el id del usuario con sesión activa (clave currentUserId).
// GetCurrentUserID devuelve "" cuando no hay sesión.
type SessionRepository interface {
	GetCurrentUserID() (string, error)
	SetCurrentUserID(userID string) error
	Clear() error
}
