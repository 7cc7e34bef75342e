package router

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"time"

	_ "barangay-pet-registry/docs"
	"barangay-pet-registry/internal/adapters/auth/sessions"
	"barangay-pet-registry/internal/adapters/blob"
	"barangay-pet-registry/internal/adapters/gemini"
	"barangay-pet-registry/internal/adapters/notify"
	"barangay-pet-registry/internal/adapters/psgc"
	mem "barangay-pet-registry/internal/adapters/storage/memory"
	pg "barangay-pet-registry/internal/adapters/storage/postgres"
	"barangay-pet-registry/internal/domain/addresses"
	"barangay-pet-registry/internal/domain/announcements"
	"barangay-pet-registry/internal/domain/incidents"
	"barangay-pet-registry/internal/domain/notifications"
	"barangay-pet-registry/internal/domain/owners"
	"barangay-pet-registry/internal/domain/pets"
	"barangay-pet-registry/internal/domain/reports"
	"barangay-pet-registry/internal/domain/settings"
	"barangay-pet-registry/internal/domain/setup"
	"barangay-pet-registry/internal/domain/strays"
	"barangay-pet-registry/internal/domain/users"
	"barangay-pet-registry/internal/domain/vaccinations"
	"barangay-pet-registry/internal/middleware"
	"barangay-pet-registry/internal/platform/bus"
	"barangay-pet-registry/internal/platform/logger"
	"barangay-pet-registry/internal/platform/photoingest"
	"barangay-pet-registry/internal/ports/ai"
	"barangay-pet-registry/internal/ports/auth"
	portnotify "barangay-pet-registry/internal/ports/notify"
	"barangay-pet-registry/internal/ports/photos"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Sessions emite y verifica tokens. Nil => store in-memory nuevo.
	Sessions *sessions.Store

	// DevMode desactiva el verifier: claims vía headers X-Debug-*.
	DevMode bool

	// SessionTTL aplica solo si Sessions es nil.
	SessionTTL time.Duration

	// Opcional: si viene, usa Postgres. Si no, DB_DSN por env o in-memory.
	DB *sql.DB

	Log        logger.Logger
	Photos     photos.Store
	Summarizer ai.Summarizer
	Notifier   portnotify.OutOfBand
	Addresses  *psgc.Client
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	sessionStore := opts.Sessions
	if sessionStore == nil {
		sessionStore = sessions.New(opts.SessionTTL)
	}

	var verifier auth.SessionVerifier = sessionStore
	if opts.DevMode {
		verifier = nil // modo dev: X-Debug-Barangay-ID y compañía
	}

	photoStore := opts.Photos
	if photoStore == nil {
		opened, err := blob.Open(context.Background())
		if err != nil {
			log.Warn("photo store unavailable, falling back to memory", map[string]any{"error": err.Error()})
			opened = blob.NewMemory()
		}
		photoStore = opened
	}
	ingestor := photoingest.New(photoStore, log)

	summarizer := opts.Summarizer
	if summarizer == nil {
		if client, err := gemini.NewFromEnv(); err == nil {
			summarizer = client
		} else {
			log.Warn("gemini client init failed", map[string]any{"error": err.Error()})
		}
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.NewConsole(log)
	}

	addressClient := opts.Addresses
	if addressClient == nil {
		if client, err := psgc.NewClient(psgc.Config{}); err == nil {
			addressClient = client
		}
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	var (
		petRepo          pets.Repository
		ownerRepo        owners.Repository
		vaccinationRepo  vaccinations.Repository
		incidentRepo     incidents.Repository
		strayRepo        strays.Repository
		userRepo         users.Repository
		settingsRepo     settings.Repository
		notificationRepo notifications.Repository
		announcementRepo announcements.Repository
		setupRepo        setup.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres unavailable, falling back to memory", map[string]any{"error": err.Error()})
			}
		}
	}

	if db != nil {
		petRepo = pg.NewPetsRepo(db)
		ownerRepo = pg.NewOwnersRepo(db)
		vaccinationRepo = pg.NewVaccinationsRepo(db)
		incidentRepo = pg.NewIncidentsRepo(db)
		strayRepo = pg.NewStraysRepo(db)
		userRepo = pg.NewUsersRepo(db)
		settingsRepo = pg.NewSettingsRepo(db)
		notificationRepo = pg.NewNotificationsRepo(db)
		announcementRepo = pg.NewAnnouncementsRepo(db)
		setupRepo = pg.NewSetupRepo(db)
	} else {
		store := mem.NewStore()
		petRepo = mem.NewPetRepo(store)
		ownerRepo = mem.NewOwnerRepo(store)
		vaccinationRepo = mem.NewVaccinationRepo(store)
		incidentRepo = mem.NewIncidentRepo(store)
		strayRepo = mem.NewStrayRepo(store)
		userRepo = mem.NewUserRepo(store)
		settingsRepo = mem.NewSettingsRepo(store)
		notificationRepo = mem.NewNotificationRepo(store)
		announcementRepo = mem.NewAnnouncementRepo(store)
		setupRepo = mem.NewSetupRepo(store)
	}

	b := bus.New()

	// Services por módulo
	petsSvc := pets.NewService(petRepo, ingestor, b)
	ownersSvc := owners.NewService(ownerRepo, b)
	vaccinationsSvc := vaccinations.NewService(vaccinationRepo, b)
	incidentsSvc := incidents.NewService(incidentRepo, b)
	straysSvc := strays.NewService(strayRepo, ingestor, b)
	usersSvc := users.NewService(userRepo, sessionStore, b)
	settingsSvc := settings.NewService(settingsRepo, ingestor, sessionStore, b)
	notificationsSvc := notifications.NewService(notificationRepo, b)
	announcementsSvc := announcements.NewService(announcementRepo, ingestor, b)
	setupSvc := setup.NewService(setupRepo, settingsRepo, usersSvc, notifier)
	reportsSvc := reports.NewService(petRepo, ownerRepo, vaccinationRepo, incidentRepo, strayRepo, summarizer)

	// El feed de avisos escucha los cambios del resto de dominios.
	go notificationsSvc.WatchBus(context.Background(), b)

	// Rutas sin sesión: registro de barangay, login, entrada al portal
	// y el cascade de direcciones.
	setup.RegisterRoutes(r, setupSvc)
	users.RegisterAuthRoutes(r, usersSvc)
	settings.RegisterPortalRoutes(r, settingsSvc)
	if addressClient != nil {
		addresses.RegisterRoutes(r, addressClient)
	}

	// Todo lo demás resuelve tenant por sesión (o headers en dev).
	r.Group(func(gr chi.Router) {
		gr.Use(middleware.TenantContext(verifier))

		pets.RegisterRoutes(gr, petsSvc)
		owners.RegisterRoutes(gr, ownersSvc)
		vaccinations.RegisterRoutes(gr, vaccinationsSvc)
		incidents.RegisterRoutes(gr, incidentsSvc)
		strays.RegisterRoutes(gr, straysSvc)
		users.RegisterRoutes(gr, usersSvc)
		users.RegisterLogoutRoute(gr, usersSvc)
		settings.RegisterRoutes(gr, settingsSvc)
		notifications.RegisterRoutes(gr, notificationsSvc)
		announcements.RegisterRoutes(gr, announcementsSvc)
		reports.RegisterRoutes(gr, reportsSvc)

		gr.Get("/events", eventsHandler(b))
	})

	return r
}

// eventsHandler emite el change signal del bus como SSE, filtrado al
// barangay de la sesión. El payload es solo el kind: los clientes
// re-consultan su propia vista (poll-on-signal).
func eventsHandler(b *bus.Bus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		events, cancel := b.Subscribe()
		defer cancel()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		for {
			select {
			case <-r.Context().Done():
				return
			case e, open := <-events:
				if !open {
					return
				}
				if e.BarangayID != claims.BarangayID {
					continue
				}
				_, _ = fmt.Fprintf(w, "event: change\ndata: {\"kind\":%q}\n\n", string(e.Kind))
				flusher.Flush()
			}
		}
	}
}
