package setup

import (
	"context"
	"errors"
	"strings"
	"time"

	"barangay-pet-registry/internal/domain/settings"
	"barangay-pet-registry/internal/domain/users"
	"barangay-pet-registry/internal/platform/codes"
	"barangay-pet-registry/internal/ports/auth"
	"barangay-pet-registry/internal/ports/notify"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrAlreadyRegistered = errors.New("barangay already registered")
	ErrBadToken          = errors.New("invalid or used admin token")
	ErrUsernameTaken     = errors.New("username already taken")
)

const (
	sessionTTL = 24 * time.Hour
	tokenTTL   = time.Hour

	publicCodeLen    = 4
	secretCodeLen    = 4
	adminTokenLen    = 6
	communityCodeLen = 8

	defaultReminderDays = 30
	defaultSupportEmail = "admin@petinfosys.ph"
	defaultHotline      = "911"
)

// AdminRegistrar crea la primera cuenta del barangay. Lo implementa
// el servicio de usuarios. ValidateNewAccount corre antes de quemar
// el token: la cuenta se rechaza sin efectos secundarios.
type AdminRegistrar interface {
	ValidateNewAccount(ctx context.Context, in users.CreateInput) error
	Create(ctx context.Context, barangayID string, in users.CreateInput) (users.User, error)
}

type Service struct {
	repo     Repository
	settings settings.Repository
	admins   AdminRegistrar
	notifier notify.OutOfBand
	now      func() time.Time
}

func NewService(repo Repository, settingsRepo settings.Repository, admins AdminRegistrar, notifier notify.OutOfBand) *Service {
	return &Service{
		repo:     repo,
		settings: settingsRepo,
		admins:   admins,
		notifier: notifier,
		now:      time.Now,
	}
}

// Initiate arranca el registro de un barangay nuevo. Devuelve solo el
// código público: el secreto sale por el canal fuera de banda hacia el
// operador, nunca en la respuesta HTTP.
func (s *Service) Initiate(ctx context.Context, loc LocationDetails) (string, error) {
	if strings.TrimSpace(loc.Barangay) == "" || strings.TrimSpace(loc.City) == "" {
		return "", ErrInvalidInput
	}

	if _, err := s.settings.FindByLocation(ctx, loc.Barangay, loc.City); err == nil {
		return "", ErrAlreadyRegistered
	}

	now := s.now()
	session := VerificationSession{
		ID:         uuid.NewString(),
		Location:   loc,
		PublicCode: codes.Prefixed("PUB", publicCodeLen),
		SecretCode: codes.Prefixed("SEC", secretCodeLen),
		CreatedAt:  now,
		ExpiresAt:  now.Add(sessionTTL),
	}

	if err := s.repo.CreateSession(ctx, session); err != nil {
		return "", err
	}

	if s.notifier != nil {
		if err := s.notifier.DeliverSecretCode(ctx, session.PublicCode, session.SecretCode); err != nil {
			return "", err
		}
	}

	return session.PublicCode, nil
}

// Verify comprueba la pareja exacta de códigos. Los reintentos son
// ilimitados: devolver false no quema la sesión.
func (s *Service) Verify(ctx context.Context, publicCode, secretCode string) (bool, error) {
	publicCode = strings.TrimSpace(publicCode)
	secretCode = strings.TrimSpace(secretCode)
	if publicCode == "" || secretCode == "" {
		return false, nil
	}

	session, err := s.repo.FindSessionByCodes(ctx, publicCode, secretCode)
	if err != nil {
		return false, nil
	}
	if s.now().After(session.ExpiresAt) {
		return false, nil
	}

	if err := s.repo.MarkSessionVerified(ctx, session.ID); err != nil {
		return false, err
	}
	return true, nil
}

// RequestAdminToken genera el token de un solo uso del paso 3. Al
// solicitante no se le devuelve nada: el token viaja por el canal de
// personal autorizado.
func (s *Service) RequestAdminToken(ctx context.Context) error {
	now := s.now()
	t := AdminToken{
		ID:        uuid.NewString(),
		Token:     codes.Prefixed("ADM", adminTokenLen),
		CreatedAt: now,
		ExpiresAt: now.Add(tokenTTL),
	}

	if err := s.repo.CreateAdminToken(ctx, t); err != nil {
		return err
	}

	if s.notifier != nil {
		return s.notifier.DeliverAdminToken(ctx, t.Token)
	}
	return nil
}

type FinalizeInput struct {
	AdminFullName string
	Username      string
	Password      string
	Token         string
	Location      LocationDetails
}

type FinalizeResult struct {
	BarangayID string
	Settings   settings.SystemSettings
	Admin      users.User
}

// Finalize cierra el flujo: consume el token, crea la fila de
// settings y la primera cuenta Admin. El re-chequeo de duplicado y el
// mapeo del conflicto de unicidad cubren la carrera entre dos
// finalizaciones para el mismo barangay.
func (s *Service) Finalize(ctx context.Context, in FinalizeInput) (FinalizeResult, error) {
	if strings.TrimSpace(in.AdminFullName) == "" ||
		strings.TrimSpace(in.Username) == "" ||
		in.Password == "" {
		return FinalizeResult{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Location.Barangay) == "" || strings.TrimSpace(in.Location.City) == "" {
		return FinalizeResult{}, ErrInvalidInput
	}

	if _, err := s.settings.FindByLocation(ctx, in.Location.Barangay, in.Location.City); err == nil {
		return FinalizeResult{}, ErrAlreadyRegistered
	}

	// La cuenta admin se valida ANTES de consumir el token y de crear
	// settings: un typo del operador (password corto, username ya
	// tomado) no puede dejar el barangay a medio registrar.
	adminInput := users.CreateInput{
		Username: in.Username,
		FullName: in.AdminFullName,
		Password: in.Password,
		Role:     auth.RoleAdmin,
	}
	if err := s.admins.ValidateNewAccount(ctx, adminInput); err != nil {
		switch err {
		case users.ErrDuplicateUsername:
			return FinalizeResult{}, ErrUsernameTaken
		case users.ErrInvalidInput:
			return FinalizeResult{}, ErrInvalidInput
		default:
			return FinalizeResult{}, err
		}
	}

	token, err := s.repo.FindAdminToken(ctx, strings.TrimSpace(in.Token))
	if err != nil || token.Used || s.now().After(token.ExpiresAt) {
		return FinalizeResult{}, ErrBadToken
	}
	if err := s.repo.MarkAdminTokenUsed(ctx, token.ID); err != nil {
		return FinalizeResult{}, err
	}

	barangayID := uuid.NewString()

	cfg := settings.SystemSettings{
		BarangayID:       barangayID,
		BarangayName:     strings.TrimSpace(in.Location.Barangay),
		Municipality:     strings.TrimSpace(in.Location.City),
		Province:         strings.TrimSpace(in.Location.Province),
		ReminderDays:     defaultReminderDays,
		SupportEmail:     defaultSupportEmail,
		EmergencyHotline: defaultHotline,
		CommunityCode:    codes.Generate(communityCodeLen),
	}
	if err := s.settings.Create(ctx, cfg); err != nil {
		if errors.Is(err, settings.ErrAlreadyExists) {
			return FinalizeResult{}, ErrAlreadyRegistered
		}
		return FinalizeResult{}, err
	}

	admin, err := s.admins.Create(ctx, barangayID, adminInput)
	if err != nil {
		// Carrera perdida contra otro registro del mismo username:
		// se deshace la fila de settings para que la ubicación siga
		// registrable con un token nuevo.
		_ = s.settings.Delete(ctx, barangayID)
		if err == users.ErrDuplicateUsername {
			return FinalizeResult{}, ErrUsernameTaken
		}
		return FinalizeResult{}, err
	}

	return FinalizeResult{
		BarangayID: barangayID,
		Settings:   cfg,
		Admin:      admin,
	}, nil
}
