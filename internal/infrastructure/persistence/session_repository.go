package persistence

import "github.com/jhoicas/inventario-eventos/internal/domain/repository"

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo guarda la clave currentUserId.
type SessionRepo struct {
	q Querier
}

// NewSessionRepository construye el adaptador.
func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

// GetCurrentUserID devuelve el usuario con sesión o "" si no hay ninguno.
func (r *SessionRepo) GetCurrentUserID() (string, error) {
	id := ""
	err := r.q.read(func(s *Snapshot) error {
		if s.CurrentUserID != nil {
			id = *s.CurrentUserID
		}
		return nil
	})
	return id, err
}

// SetCurrentUserID fija el usuario con sesión.
func (r *SessionRepo) SetCurrentUserID(userID string) error {
	return r.q.write(KeyCurrentUserID, func(s *Snapshot) error {
		s.CurrentUserID = &userID
		return nil
	})
}

// Clear cierra la sesión (currentUserId = null).
func (r *SessionRepo) Clear() error {
	return r.q.write(KeyCurrentUserID, func(s *Snapshot) error {
		s.CurrentUserID = nil
		return nil
	})
}
