package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"barangay-pet-registry/internal/platform/bus"
	"barangay-pet-registry/internal/ports/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNoTenant          = errors.New("no barangay context")
	ErrNotFound          = errors.New("not found")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrSelfDelete        = errors.New("cannot delete own account")
	ErrBadCredentials    = errors.New("invalid username or password")
)

const minPasswordLen = 8

type Service struct {
	repo     Repository
	sessions auth.SessionIssuer
	bus      *bus.Bus
	now      func() time.Time
}

func NewService(repo Repository, sessions auth.SessionIssuer, b *bus.Bus) *Service {
	return &Service{
		repo:     repo,
		sessions: sessions,
		bus:      b,
		now:      time.Now,
	}
}

type CreateInput struct {
	Username string
	FullName string
	Password string
	Role     auth.Role
}

type UpdateInput struct {
	FullName string
	Role     auth.Role
	Status   Status
	// Password vacío deja el hash actual.
	Password string
}

// ValidateNewAccount corre las reglas de Create sin tocar el store.
// Lo usa el registro de barangays para validar la cuenta admin antes
// de quemar el token de un solo uso.
func (s *Service) ValidateNewAccount(ctx context.Context, in CreateInput) error {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if username == "" || strings.TrimSpace(in.FullName) == "" {
		return ErrInvalidInput
	}
	if len(in.Password) < minPasswordLen {
		return ErrInvalidInput
	}
	if in.Role != auth.RoleAdmin && in.Role != auth.RoleStaff {
		return ErrInvalidInput
	}

	// El username resuelve el tenant en el login, así que es único
	// global, no por barangay.
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return ErrDuplicateUsername
	}
	return nil
}

func (s *Service) Create(ctx context.Context, barangayID string, in CreateInput) (User, error) {
	barangayID = strings.TrimSpace(barangayID)
	if barangayID == "" {
		return User{}, ErrNoTenant
	}
	if err := s.ValidateNewAccount(ctx, in); err != nil {
		return User{}, err
	}

	username := strings.ToLower(strings.TrimSpace(in.Username))
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	u := User{
		ID:           uuid.NewString(),
		BarangayID:   barangayID,
		Username:     username,
		FullName:     strings.TrimSpace(in.FullName),
		PasswordHash: string(hash),
		Role:         in.Role,
		Status:       StatusActive,
		CreatedAt:    s.now(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}

	s.publish(barangayID)
	return u, nil
}

func (s *Service) Update(ctx context.Context, barangayID, id string, in UpdateInput) (User, error) {
	barangayID = strings.TrimSpace(barangayID)
	if barangayID == "" {
		return User{}, ErrNoTenant
	}

	u, err := s.repo.GetByID(ctx, barangayID, id)
	if err != nil {
		return User{}, ErrNotFound
	}

	if strings.TrimSpace(in.FullName) != "" {
		u.FullName = strings.TrimSpace(in.FullName)
	}
	if in.Role != "" {
		if in.Role != auth.RoleAdmin && in.Role != auth.RoleStaff {
			return User{}, ErrInvalidInput
		}
		u.Role = in.Role
	}
	if in.Status != "" {
		if in.Status != StatusActive && in.Status != StatusInactive {
			return User{}, ErrInvalidInput
		}
		u.Status = in.Status
	}
	if in.Password != "" {
		if len(in.Password) < minPasswordLen {
			return User{}, ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return User{}, err
		}
		u.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}

	s.publish(barangayID)
	return u, nil
}

// Delete elimina una cuenta. Un admin no puede borrarse a sí mismo:
// evita dejar el barangay sin acceso.
func (s *Service) Delete(ctx context.Context, barangayID, actorID, id string) error {
	barangayID = strings.TrimSpace(barangayID)
	if barangayID == "" {
		return ErrNoTenant
	}
	if actorID == id {
		return ErrSelfDelete
	}

	if _, err := s.repo.GetByID(ctx, barangayID, id); err != nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, barangayID, id); err != nil {
		return err
	}

	s.publish(barangayID)
	return nil
}

func (s *Service) Get(ctx context.Context, barangayID, id string) (User, error) {
	if strings.TrimSpace(barangayID) == "" {
		return User{}, ErrNotFound
	}
	u, err := s.repo.GetByID(ctx, barangayID, id)
	if err != nil {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (s *Service) List(ctx context.Context, barangayID string) ([]User, error) {
	if strings.TrimSpace(barangayID) == "" {
		return []User{}, nil
	}
	return s.repo.ListByBarangay(ctx, barangayID)
}

type LoginResult struct {
	Token string
	User  User
}

// Login verifica credenciales y emite una sesión con el barangay de
// la cuenta. Devuelve siempre ErrBadCredentials ante usuario o
// contraseña incorrectos, sin distinguir el caso.
func (s *Service) Login(ctx context.Context, username, password string) (LoginResult, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return LoginResult{}, ErrBadCredentials
	}

	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return LoginResult{}, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return LoginResult{}, ErrBadCredentials
	}
	// Las cuentas desactivadas no distinguen su error: no conviene
	// confirmar que la cuenta existe.
	if u.Status == StatusInactive {
		return LoginResult{}, ErrBadCredentials
	}

	at := s.now()
	if err := s.repo.RecordSignIn(ctx, u.BarangayID, u.ID, at); err != nil {
		return LoginResult{}, err
	}
	u.LastSignInAt = &at

	token, err := s.sessions.Issue(ctx, auth.Claims{
		UserID:     u.ID,
		BarangayID: u.BarangayID,
		Role:       u.Role,
	})
	if err != nil {
		return LoginResult{}, err
	}

	s.publish(u.BarangayID)
	return LoginResult{Token: token, User: u}, nil
}

// Logout revoca la sesión y registra la hora de salida.
func (s *Service) Logout(ctx context.Context, token string, claims auth.Claims) error {
	if err := s.sessions.Revoke(ctx, token); err != nil {
		return err
	}
	if claims.UserID == "" || claims.BarangayID == "" {
		return nil
	}
	if err := s.repo.RecordSignOut(ctx, claims.BarangayID, claims.UserID, s.now()); err != nil {
		return err
	}
	s.publish(claims.BarangayID)
	return nil
}

func (s *Service) publish(barangayID string) {
	if s.bus != nil {
		s.bus.Publish(bus.Event{Kind: bus.KindUsers, BarangayID: barangayID})
	}
}
