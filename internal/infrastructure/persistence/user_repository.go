package persistence

import (
	"github.com/google/uuid"
	"github.com/jhoicas/inventario-eventos/internal/domain"
	"github.com/jhoicas/inventario-eventos/internal/domain/entity"
	"github.com/jhoicas/inventario-eventos/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre el snapshot.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. El email es único: devuelve ErrEmailAlreadyExists si se repite.
func (r *UserRepo) Create(user *entity.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return r.q.write(KeyUsers, func(s *Snapshot) error {
		if indexOf(s.Users, func(u *entity.User) bool { return u.Email == user.Email }) >= 0 {
			return domain.ErrEmailAlreadyExists
		}
		s.Users = append(s.Users, *user)
		return nil
	})
}

// GetByID obtiene un usuario por ID; (nil, nil) si no existe.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id })
}

// GetByEmail obtiene un usuario por email; (nil, nil) si no existe.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email })
}

// List devuelve los usuarios en orden de alta.
func (r *UserRepo) List() ([]*entity.User, error) {
	var list []*entity.User
	err := r.q.read(func(s *Snapshot) error {
		list = make([]*entity.User, 0, len(s.Users))
		for i := range s.Users {
			u := s.Users[i]
			list = append(list, &u)
		}
		return nil
	})
	return list, err
}

// Count devuelve la cantidad de usuarios registrados.
func (r *UserRepo) Count() (int, error) {
	n := 0
	err := r.q.read(func(s *Snapshot) error {
		n = len(s.Users)
		return nil
	})
	return n, err
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(id string) error {
	return r.q.write(KeyUsers, func(s *Snapshot) error {
		i := indexOf(s.Users, func(u *entity.User) bool { return u.ID == id })
		if i < 0 {
			return domain.ErrNotFound
		}
		s.Users = append(s.Users[:i], s.Users[i+1:]...)
		return nil
	})
}

func (r *UserRepo) find(match func(*entity.User) bool) (*entity.User, error) {
	var out *entity.User
	err := r.q.read(func(s *Snapshot) error {
		if i := indexOf(s.Users, match); i >= 0 {
			u := s.Users[i]
			out = &u
		}
		return nil
	})
	return out, err
}
