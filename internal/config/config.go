package config

import (
	"os"
	"strings"
	"time"
)

// Config junta todo lo que el proceso lee de env al arrancar. Los
// adapters que tienen su propio FromEnv (blob, gemini) siguen leyendo
// lo suyo; acá va lo que necesita el wiring del router y el server.
type Config struct {
	Addr       string
	DBDSN      string
	SessionTTL time.Duration

	// DevMode desactiva el verifier de sesiones y habilita los
	// headers X-Debug-*. Nunca en producción.
	DevMode bool
}

// FromEnv lee PORT, DB_DSN, SESSION_TTL y DEV_MODE con defaults.
func FromEnv() Config {
	cfg := Config{
		Addr:       ":8080",
		DBDSN:      os.Getenv("DB_DSN"),
		SessionTTL: 0, // 0 => default del session store
	}

	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		cfg.Addr = ":" + v
	}
	if v := strings.TrimSpace(os.Getenv("SESSION_TTL")); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.SessionTTL = d
		}
	}
	if v := strings.TrimSpace(os.Getenv("DEV_MODE")); v != "" {
		cfg.DevMode = v == "1" || strings.EqualFold(v, "true")
	}
	return cfg
}
