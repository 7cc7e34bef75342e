package settings

import (
	"context"
	"errors"
	"strings"

	"barangay-pet-registry/internal/platform/bus"
	"barangay-pet-registry/internal/platform/codes"
	"barangay-pet-registry/internal/platform/photoingest"
	"barangay-pet-registry/internal/ports/auth"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNoTenant     = errors.New("no barangay context")
	ErrNotFound     = errors.New("not found")
	ErrBadCode      = errors.New("unknown community code")
)

const communityCodeLen = 8

type Service struct {
	repo     Repository
	photos   *photoingest.Ingestor
	sessions auth.SessionIssuer
	bus      *bus.Bus
}

func NewService(repo Repository, photos *photoingest.Ingestor, sessions auth.SessionIssuer, b *bus.Bus) *Service {
	return &Service{
		repo:     repo,
		photos:   photos,
		sessions: sessions,
		bus:      b,
	}
}

// Get nunca falla por configuración ausente: devuelve el placeholder
// para que el frontend pueda mostrar la pantalla de registro.
func (s *Service) Get(ctx context.Context, barangayID string) (SystemSettings, error) {
	barangayID = strings.TrimSpace(barangayID)
	if barangayID == "" {
		return Placeholder(""), nil
	}

	cfg, err := s.repo.GetByBarangay(ctx, barangayID)
	if err != nil {
		return Placeholder(barangayID), nil
	}
	return cfg, nil
}

type UpdateInput struct {
	BarangayName     string
	Municipality     string
	Province         string
	LogoPayload      string
	ReminderDays     *int
	SupportEmail     string
	EmergencyHotline string
}

func (s *Service) Update(ctx context.Context, barangayID string, in UpdateInput) (SystemSettings, error) {
	barangayID = strings.TrimSpace(barangayID)
	if barangayID == "" {
		return SystemSettings{}, ErrNoTenant
	}

	cfg, err := s.repo.GetByBarangay(ctx, barangayID)
	if err != nil {
		return SystemSettings{}, ErrNotFound
	}

	if strings.TrimSpace(in.BarangayName) != "" {
		cfg.BarangayName = strings.TrimSpace(in.BarangayName)
	}
	if strings.TrimSpace(in.Municipality) != "" {
		cfg.Municipality = strings.TrimSpace(in.Municipality)
	}
	if strings.TrimSpace(in.Province) != "" {
		cfg.Province = strings.TrimSpace(in.Province)
	}
	if in.ReminderDays != nil {
		if *in.ReminderDays < 1 {
			return SystemSettings{}, ErrInvalidInput
		}
		cfg.ReminderDays = *in.ReminderDays
	}
	if strings.TrimSpace(in.SupportEmail) != "" {
		cfg.SupportEmail = strings.TrimSpace(in.SupportEmail)
	}
	if strings.TrimSpace(in.EmergencyHotline) != "" {
		cfg.EmergencyHotline = strings.TrimSpace(in.EmergencyHotline)
	}

	if s.photos != nil && strings.HasPrefix(in.LogoPayload, "data:") {
		url, err := s.photos.Ingest(ctx, barangayID, in.LogoPayload, "settings/logo")
		if err != nil {
			return SystemSettings{}, err
		}
		cfg.LogoURL = url
	}

	if err := s.repo.Update(ctx, cfg); err != nil {
		return SystemSettings{}, err
	}

	s.publish(barangayID)
	return cfg, nil
}

// RotateCommunityCode invalida el código del portal y genera uno
// nuevo. Las sesiones Guest ya emitidas siguen vivas hasta expirar.
func (s *Service) RotateCommunityCode(ctx context.Context, barangayID string) (SystemSettings, error) {
	barangayID = strings.TrimSpace(barangayID)
	if barangayID == "" {
		return SystemSettings{}, ErrNoTenant
	}

	cfg, err := s.repo.GetByBarangay(ctx, barangayID)
	if err != nil {
		return SystemSettings{}, ErrNotFound
	}

	cfg.CommunityCode = codes.Generate(communityCodeLen)
	if err := s.repo.Update(ctx, cfg); err != nil {
		return SystemSettings{}, err
	}

	s.publish(barangayID)
	return cfg, nil
}

// EnterPortal canjea un community code por una sesión Guest de solo
// lectura sobre el barangay dueño del código.
func (s *Service) EnterPortal(ctx context.Context, code string) (string, SystemSettings, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", SystemSettings{}, ErrBadCode
	}

	cfg, err := s.repo.GetByCommunityCode(ctx, code)
	if err != nil {
		return "", SystemSettings{}, ErrBadCode
	}

	token, err := s.sessions.Issue(ctx, auth.Claims{
		BarangayID: cfg.BarangayID,
		Role:       auth.RoleGuest,
	})
	if err != nil {
		return "", SystemSettings{}, err
	}
	return token, cfg, nil
}

func (s *Service) publish(barangayID string) {
	if s.bus != nil {
		s.bus.Publish(bus.Event{Kind: bus.KindSettings, BarangayID: barangayID})
	}
}
