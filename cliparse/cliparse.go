package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	AdminPassword string
	IPHashSalt    string
	FallbackPath  string
	ResendAPIKey  string
	NotifyFrom    string
	NotifyTo      []string
	AdminBaseURL  string
}

// ParseFlags validates flags and sets defaults
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var notifyTo string

	fs := flag.NewFlagSet("vendor-survey", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.FallbackPath, "fallback", "", "Fallback storage file for failed remote writes")
	fs.StringVar(&cfg.AdminBaseURL, "admin-url", "", "Base URL of the admin panel, used in notification emails")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminPassword, "admin-password", "", "Admin panel password (prefer env)")
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "Salt for session IP hashing (prefer env)")
	fs.StringVar(&cfg.ResendAPIKey, "resend-key", "", "Resend API key for notifications (prefer env)")
	fs.StringVar(&cfg.NotifyFrom, "notify-from", "", "Notification sender address")
	fs.StringVar(&notifyTo, "notify-to", "", "Comma-separated notification recipients")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3324 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "postgres" {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "survey.db"
	}

	if cfg.FallbackPath == "" {
		cfg.FallbackPath = os.Getenv("FALLBACK_PATH")
		if cfg.FallbackPath == "" {
			cfg.FallbackPath = "survey_fallback.json"
		}
	}

	if cfg.AdminBaseURL == "" {
		cfg.AdminBaseURL = os.Getenv("ADMIN_BASE_URL")
		if cfg.AdminBaseURL == "" {
			cfg.AdminBaseURL = "http://localhost:" + strconv.Itoa(cfg.Port) + "/admin"
		}
	}

	// Secrets - MUST be provided
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	}
	if cfg.AdminPassword == "" {
		return Config{}, errors.New("ADMIN_PASSWORD required")
	}

	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = os.Getenv("IP_HASH_SALT")
	}
	if cfg.IPHashSalt == "" {
		return Config{}, errors.New("IP_HASH_SALT required")
	}

	// Notification settings are optional; without a key the notifier is
	// disabled and submissions proceed without email.
	if cfg.ResendAPIKey == "" {
		cfg.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	}
	if cfg.NotifyFrom == "" {
		cfg.NotifyFrom = os.Getenv("NOTIFY_FROM")
		if cfg.NotifyFrom == "" {
			cfg.NotifyFrom = "Vendor Survey <onboarding@resend.dev>"
		}
	}
	if notifyTo == "" {
		notifyTo = os.Getenv("NOTIFY_TO")
	}
	for _, addr := range strings.Split(notifyTo, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			cfg.NotifyTo = append(cfg.NotifyTo, addr)
		}
	}

	return cfg, nil
}
