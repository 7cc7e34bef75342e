package memory

import (
	"errors"
	"sync"

	"barangay-pet-registry/internal/domain/announcements"
	"barangay-pet-registry/internal/domain/incidents"
	"barangay-pet-registry/internal/domain/notifications"
	"barangay-pet-registry/internal/domain/owners"
	"barangay-pet-registry/internal/domain/pets"
	"barangay-pet-registry/internal/domain/settings"
	"barangay-pet-registry/internal/domain/setup"
	"barangay-pet-registry/internal/domain/strays"
	"barangay-pet-registry/internal/domain/users"
	"barangay-pet-registry/internal/domain/vaccinations"
)

var ErrNotFound = errors.New("not found")

// Store es el backend de desarrollo: todos los repos comparten un solo
// lock, lo que hace atómico el cascade de mascotas y el join de autores
// sin coordinación extra.
type Store struct {
	mu sync.RWMutex

	pets          map[string]pets.Pet
	owners        map[string]owners.Owner
	vaccinations  map[string]vaccinations.Vaccination
	incidents     map[string]incidents.Incident
	strays        map[string]strays.StrayReport
	users         map[string]users.User
	settings      map[string]settings.SystemSettings
	notifications map[string]notifications.Notification
	announcements map[string]announcements.Announcement

	setupSessions map[string]setup.VerificationSession
	adminTokens   map[string]setup.AdminToken
}

func NewStore() *Store {
	return &Store{
		pets:          make(map[string]pets.Pet),
		owners:        make(map[string]owners.Owner),
		vaccinations:  make(map[string]vaccinations.Vaccination),
		incidents:     make(map[string]incidents.Incident),
		strays:        make(map[string]strays.StrayReport),
		users:         make(map[string]users.User),
		settings:      make(map[string]settings.SystemSettings),
		notifications: make(map[string]notifications.Notification),
		announcements: make(map[string]announcements.Announcement),
		setupSessions: make(map[string]setup.VerificationSession),
		adminTokens:   make(map[string]setup.AdminToken),
	}
}
