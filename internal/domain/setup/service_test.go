package setup

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"barangay-pet-registry/internal/domain/settings"
	"barangay-pet-registry/internal/domain/users"
	"barangay-pet-registry/internal/ports/auth"

	"github.com/google/uuid"
)

var errNotFound = errors.New("not found")

type fakeRepo struct {
	sessions map[string]VerificationSession
	tokens   map[string]AdminToken
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		sessions: map[string]VerificationSession{},
		tokens:   map[string]AdminToken{},
	}
}

func (f *fakeRepo) CreateSession(_ context.Context, s VerificationSession) error {
	f.sessions[s.ID] = s
	return nil
}

func (f *fakeRepo) FindSessionByCodes(_ context.Context, publicCode, secretCode string) (VerificationSession, error) {
	for _, s := range f.sessions {
		if s.PublicCode == publicCode && s.SecretCode == secretCode {
			return s, nil
		}
	}
	return VerificationSession{}, errNotFound
}

func (f *fakeRepo) MarkSessionVerified(_ context.Context, id string) error {
	s, ok := f.sessions[id]
	if !ok {
		return errNotFound
	}
	s.Verified = true
	f.sessions[id] = s
	return nil
}

func (f *fakeRepo) CreateAdminToken(_ context.Context, t AdminToken) error {
	f.tokens[t.ID] = t
	return nil
}

func (f *fakeRepo) FindAdminToken(_ context.Context, token string) (AdminToken, error) {
	for _, t := range f.tokens {
		if t.Token == token {
			return t, nil
		}
	}
	return AdminToken{}, errNotFound
}

func (f *fakeRepo) MarkAdminTokenUsed(_ context.Context, id string) error {
	t, ok := f.tokens[id]
	if !ok {
		return errNotFound
	}
	t.Used = true
	f.tokens[id] = t
	return nil
}

type fakeSettingsRepo struct {
	items map[string]settings.SystemSettings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{items: map[string]settings.SystemSettings{}}
}

func (f *fakeSettingsRepo) Create(_ context.Context, s settings.SystemSettings) error {
	for _, existing := range f.items {
		if strings.EqualFold(existing.BarangayName, s.BarangayName) &&
			strings.EqualFold(existing.Municipality, s.Municipality) {
			return settings.ErrAlreadyExists
		}
	}
	f.items[s.BarangayID] = s
	return nil
}

func (f *fakeSettingsRepo) Update(_ context.Context, s settings.SystemSettings) error {
	f.items[s.BarangayID] = s
	return nil
}

func (f *fakeSettingsRepo) Delete(_ context.Context, barangayID string) error {
	if _, ok := f.items[barangayID]; !ok {
		return errNotFound
	}
	delete(f.items, barangayID)
	return nil
}

func (f *fakeSettingsRepo) GetByBarangay(_ context.Context, barangayID string) (settings.SystemSettings, error) {
	s, ok := f.items[barangayID]
	if !ok {
		return settings.SystemSettings{}, errNotFound
	}
	return s, nil
}

func (f *fakeSettingsRepo) GetByCommunityCode(_ context.Context, code string) (settings.SystemSettings, error) {
	for _, s := range f.items {
		if s.CommunityCode == code {
			return s, nil
		}
	}
	return settings.SystemSettings{}, errNotFound
}

func (f *fakeSettingsRepo) FindByLocation(_ context.Context, barangayName, municipality string) (settings.SystemSettings, error) {
	for _, s := range f.items {
		if strings.EqualFold(s.BarangayName, barangayName) && strings.EqualFold(s.Municipality, municipality) {
			return s, nil
		}
	}
	return settings.SystemSettings{}, errNotFound
}

type fakeAdmins struct {
	created   []users.User
	taken     map[string]bool
	createErr error
}

func (f *fakeAdmins) ValidateNewAccount(_ context.Context, in users.CreateInput) error {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if username == "" || strings.TrimSpace(in.FullName) == "" || len(in.Password) < 8 {
		return users.ErrInvalidInput
	}
	if f.taken[username] {
		return users.ErrDuplicateUsername
	}
	return nil
}

func (f *fakeAdmins) Create(_ context.Context, barangayID string, in users.CreateInput) (users.User, error) {
	if f.createErr != nil {
		return users.User{}, f.createErr
	}
	u := users.User{
		ID:         uuid.NewString(),
		BarangayID: barangayID,
		Username:   strings.ToLower(in.Username),
		FullName:   in.FullName,
		Role:       in.Role,
		Status:     users.StatusActive,
	}
	f.created = append(f.created, u)
	return u, nil
}

type fakeNotifier struct {
	secrets []string
	tokens  []string
}

func (f *fakeNotifier) DeliverSecretCode(_ context.Context, _, secretCode string) error {
	f.secrets = append(f.secrets, secretCode)
	return nil
}

func (f *fakeNotifier) DeliverAdminToken(_ context.Context, token string) error {
	f.tokens = append(f.tokens, token)
	return nil
}

type fixture struct {
	svc      *Service
	repo     *fakeRepo
	settings *fakeSettingsRepo
	admins   *fakeAdmins
	notifier *fakeNotifier
	clock    *time.Time
}

func newFixture() *fixture {
	repo := newFakeRepo()
	settingsRepo := newFakeSettingsRepo()
	admins := &fakeAdmins{}
	notifier := &fakeNotifier{}

	svc := NewService(repo, settingsRepo, admins, notifier)
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	return &fixture{svc: svc, repo: repo, settings: settingsRepo, admins: admins, notifier: notifier, clock: &now}
}

func testLocation() LocationDetails {
	return LocationDetails{
		Region:   "Region V",
		Province: "Camarines Sur",
		City:     "Naga",
		Barangay: "San Isidro",
	}
}

func (fx *fixture) sessionCodes(t *testing.T) (string, string) {
	t.Helper()
	for _, s := range fx.repo.sessions {
		return s.PublicCode, s.SecretCode
	}
	t.Fatal("no hay sesión persistida")
	return "", ""
}

func (fx *fixture) adminToken(t *testing.T) string {
	t.Helper()
	if len(fx.notifier.tokens) == 0 {
		t.Fatal("no se entregó ningún token")
	}
	return fx.notifier.tokens[len(fx.notifier.tokens)-1]
}

func TestInitiateReturnsOnlyPublicCode(t *testing.T) {
	fx := newFixture()

	publicCode, err := fx.svc.Initiate(context.Background(), testLocation())
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if !strings.HasPrefix(publicCode, "PUB-") {
		t.Fatalf("public code = %q", publicCode)
	}
	if len(fx.notifier.secrets) != 1 || !strings.HasPrefix(fx.notifier.secrets[0], "SEC-") {
		t.Fatalf("secretos entregados = %v", fx.notifier.secrets)
	}
	if fx.notifier.secrets[0] == publicCode {
		t.Fatal("el secreto se filtró como código público")
	}
}

func TestInitiateRejectsRegisteredLocation(t *testing.T) {
	fx := newFixture()
	fx.settings.items["bgy-1"] = settings.SystemSettings{
		BarangayID:   "bgy-1",
		BarangayName: "san isidro",
		Municipality: "NAGA",
	}

	if _, err := fx.svc.Initiate(context.Background(), testLocation()); err != ErrAlreadyRegistered {
		t.Fatalf("err = %v, want ErrAlreadyRegistered", err)
	}
}

func TestVerifyRequiresExactPair(t *testing.T) {
	fx := newFixture()

	if _, err := fx.svc.Initiate(context.Background(), testLocation()); err != nil {
		t.Fatalf("initiate: %v", err)
	}
	publicCode, secretCode := fx.sessionCodes(t)

	ok, err := fx.svc.Verify(context.Background(), publicCode, "SEC-nope")
	if err != nil || ok {
		t.Fatalf("pareja incorrecta: ok=%v err=%v", ok, err)
	}

	ok, err = fx.svc.Verify(context.Background(), publicCode, secretCode)
	if err != nil || !ok {
		t.Fatalf("pareja correcta: ok=%v err=%v", ok, err)
	}
}

func TestVerifyRejectsExpiredSession(t *testing.T) {
	fx := newFixture()

	if _, err := fx.svc.Initiate(context.Background(), testLocation()); err != nil {
		t.Fatalf("initiate: %v", err)
	}
	publicCode, secretCode := fx.sessionCodes(t)

	*fx.clock = fx.clock.Add(25 * time.Hour)

	ok, err := fx.svc.Verify(context.Background(), publicCode, secretCode)
	if err != nil || ok {
		t.Fatalf("sesión vencida: ok=%v err=%v", ok, err)
	}
}

func TestFinalizeCreatesTenantAndAdmin(t *testing.T) {
	fx := newFixture()

	if err := fx.svc.RequestAdminToken(context.Background()); err != nil {
		t.Fatalf("request token: %v", err)
	}

	result, err := fx.svc.Finalize(context.Background(), FinalizeInput{
		AdminFullName: "Maria Reyes",
		Username:      "mreyes",
		Password:      "secreto-largo",
		Token:         fx.adminToken(t),
		Location:      testLocation(),
	})
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if result.Settings.CommunityCode == "" || len(result.Settings.CommunityCode) != 8 {
		t.Fatalf("community code = %q", result.Settings.CommunityCode)
	}
	if result.Settings.ReminderDays != 30 {
		t.Fatalf("reminder_days = %d", result.Settings.ReminderDays)
	}
	if len(fx.admins.created) != 1 || fx.admins.created[0].Role != auth.RoleAdmin {
		t.Fatalf("admins = %+v", fx.admins.created)
	}
	if fx.admins.created[0].BarangayID != result.BarangayID {
		t.Fatal("el admin no quedó en el tenant nuevo")
	}
}

func TestFinalizeTokenIsSingleUse(t *testing.T) {
	fx := newFixture()

	if err := fx.svc.RequestAdminToken(context.Background()); err != nil {
		t.Fatalf("request token: %v", err)
	}
	token := fx.adminToken(t)

	in := FinalizeInput{
		AdminFullName: "Maria Reyes",
		Username:      "mreyes",
		Password:      "secreto-largo",
		Token:         token,
		Location:      testLocation(),
	}
	if _, err := fx.svc.Finalize(context.Background(), in); err != nil {
		t.Fatalf("primer finalize: %v", err)
	}

	in.Location.Barangay = "Otro Barangay"
	if _, err := fx.svc.Finalize(context.Background(), in); err != ErrBadToken {
		t.Fatalf("err = %v, want ErrBadToken", err)
	}
}

func TestFinalizeRejectsDuplicateLocation(t *testing.T) {
	fx := newFixture()

	if err := fx.svc.RequestAdminToken(context.Background()); err != nil {
		t.Fatalf("request token: %v", err)
	}
	in := FinalizeInput{
		AdminFullName: "Maria Reyes",
		Username:      "mreyes",
		Password:      "secreto-largo",
		Token:         fx.adminToken(t),
		Location:      testLocation(),
	}
	if _, err := fx.svc.Finalize(context.Background(), in); err != nil {
		t.Fatalf("primer finalize: %v", err)
	}

	if err := fx.svc.RequestAdminToken(context.Background()); err != nil {
		t.Fatalf("segundo token: %v", err)
	}
	in.Token = fx.adminToken(t)
	in.Username = "otrousuario"
	if _, err := fx.svc.Finalize(context.Background(), in); err != ErrAlreadyRegistered {
		t.Fatalf("err = %v, want ErrAlreadyRegistered", err)
	}
}

func TestFinalizeRejectsExpiredToken(t *testing.T) {
	fx := newFixture()

	if err := fx.svc.RequestAdminToken(context.Background()); err != nil {
		t.Fatalf("request token: %v", err)
	}
	token := fx.adminToken(t)

	*fx.clock = fx.clock.Add(2 * time.Hour)

	in := FinalizeInput{
		AdminFullName: "Maria Reyes",
		Username:      "mreyes",
		Password:      "secreto-largo",
		Token:         token,
		Location:      testLocation(),
	}
	if _, err := fx.svc.Finalize(context.Background(), in); err != ErrBadToken {
		t.Fatalf("err = %v, want ErrBadToken", err)
	}
}

func TestFinalizeBadAdminInputDoesNotBurnToken(t *testing.T) {
	fx := newFixture()
	fx.admins.taken = map[string]bool{"mreyes": true}

	if err := fx.svc.RequestAdminToken(context.Background()); err != nil {
		t.Fatalf("request token: %v", err)
	}
	token := fx.adminToken(t)

	in := FinalizeInput{
		AdminFullName: "Maria Reyes",
		Username:      "mreyes",
		Password:      "corto",
		Token:         token,
		Location:      testLocation(),
	}
	if _, err := fx.svc.Finalize(context.Background(), in); err != ErrInvalidInput {
		t.Fatalf("password corto: err = %v, want ErrInvalidInput", err)
	}

	in.Password = "secreto-largo"
	if _, err := fx.svc.Finalize(context.Background(), in); err != ErrUsernameTaken {
		t.Fatalf("username tomado: err = %v, want ErrUsernameTaken", err)
	}

	// Ningún intento fallido dejó rastro: ni settings huérfanos ni
	// token quemado. El mismo token cierra el registro corregido.
	if len(fx.settings.items) != 0 {
		t.Fatalf("quedaron settings huérfanos: %+v", fx.settings.items)
	}
	in.Username = "mreyes2"
	if _, err := fx.svc.Finalize(context.Background(), in); err != nil {
		t.Fatalf("finalize corregido: %v", err)
	}
}

func TestFinalizeRollsBackSettingsWhenAdminCreateFails(t *testing.T) {
	fx := newFixture()
	fx.admins.createErr = users.ErrDuplicateUsername

	if err := fx.svc.RequestAdminToken(context.Background()); err != nil {
		t.Fatalf("request token: %v", err)
	}

	in := FinalizeInput{
		AdminFullName: "Maria Reyes",
		Username:      "mreyes",
		Password:      "secreto-largo",
		Token:         fx.adminToken(t),
		Location:      testLocation(),
	}
	if _, err := fx.svc.Finalize(context.Background(), in); err != ErrUsernameTaken {
		t.Fatalf("err = %v, want ErrUsernameTaken", err)
	}
	if len(fx.settings.items) != 0 {
		t.Fatalf("la fila de settings no se deshizo: %+v", fx.settings.items)
	}

	// La ubicación sigue registrable con un token nuevo.
	fx.admins.createErr = nil
	if err := fx.svc.RequestAdminToken(context.Background()); err != nil {
		t.Fatalf("segundo token: %v", err)
	}
	in.Token = fx.adminToken(t)
	if _, err := fx.svc.Finalize(context.Background(), in); err != nil {
		t.Fatalf("reintento: %v", err)
	}
}
