package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-eventos/internal/application/dto"
	"github.com/jhoicas/inventario-eventos/internal/application/usecase"
	"github.com/jhoicas/inventario-eventos/internal/domain"
	"github.com/jhoicas/inventario-eventos/internal/domain/entity"
	"github.com/jhoicas/inventario-eventos/internal/domain/repository"
	"github.com/jhoicas/inventario-eventos/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login, logout y usuario con sesión (clave currentUserId).
type AuthUseCase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, sessionRepo: sessionRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password, fija la sesión y retorna token + usuario.
// Email desconocido y password incorrecto devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	if err := uc.sessionRepo.SetCurrentUserID(user.ID); err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *usecase.ToUserResponse(user),
	}, nil
}

// Logout cierra la sesión.
func (uc *AuthUseCase) Logout() error {
	return uc.sessionRepo.Clear()
}

// CurrentUser devuelve el usuario con sesión; (nil, nil) si no hay ninguno.
// Si la sesión apunta a un usuario que ya no existe, se limpia.
func (uc *AuthUseCase) CurrentUser() (*entity.User, error) {
	id, err := uc.sessionRepo.GetCurrentUserID()
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, nil
	}
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, uc.sessionRepo.Clear()
	}
	return user, nil
}

// CurrentUserID id del usuario con sesión o "" si no hay ninguno. Nunca falla.
func (uc *AuthUseCase) CurrentUserID() string {
	user, err := uc.CurrentUser()
	if err != nil || user == nil {
		return ""
	}
	return user.ID
}
