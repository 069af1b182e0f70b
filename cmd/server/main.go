package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	emailPkg "clubhouse/internal/adapters/email"
	web "clubhouse/internal/adapters/http"
	"clubhouse/internal/adapters/storage"
	accountStore "clubhouse/internal/adapters/storage/account"
	applicationStore "clubhouse/internal/adapters/storage/application"
	fixtureStore "clubhouse/internal/adapters/storage/fixture"
	noticeStore "clubhouse/internal/adapters/storage/notice"
	playerStore "clubhouse/internal/adapters/storage/player"
	registrationStore "clubhouse/internal/adapters/storage/registration"
	"clubhouse/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

type config struct {
	Addr          string `env:"CLUBHOUSE_ADDR" envDefault:":8080"`
	Env           string `env:"CLUBHOUSE_ENV" envDefault:"development"`
	DBPath        string `env:"CLUBHOUSE_DB" envDefault:"clubhouse.db"`
	StaticDir     string `env:"CLUBHOUSE_STATIC_DIR" envDefault:"static"`
	UploadDir     string `env:"CLUBHOUSE_UPLOAD_DIR" envDefault:"uploads"`
	BaseAddress   string `env:"CLUBHOUSE_BASE_ADDRESS" envDefault:"http://localhost:8080"`
	AdminEmail    string `env:"CLUBHOUSE_ADMIN_EMAIL" envDefault:"admin@clubhouse.local"`
	AdminPassword string `env:"CLUBHOUSE_ADMIN_PASSWORD" envDefault:"change-me-promptly"`
	ResendKey     string `env:"CLUBHOUSE_RESEND_KEY"`
	EmailFrom     string `env:"CLUBHOUSE_EMAIL_FROM" envDefault:"Clubhouse <noreply@clubhouse.local>"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("failed to parse configuration: %v", err)
	}

	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	log.Println("Database initialized successfully!")

	acctStore := accountStore.NewSQLiteStore(db)
	stores := &web.Stores{
		AccountStore:      acctStore,
		ApplicationStore:  applicationStore.NewSQLiteStore(db),
		RegistrationStore: registrationStore.NewSQLiteStore(db),
		PlayerStore:       playerStore.NewSQLiteStore(db),
		FixtureStore:      fixtureStore.NewSQLiteStore(db),
		NoticeStore:       noticeStore.NewSQLiteStore(db),
	}

	// Seed default admin account if no accounts exist
	seedDeps := orchestrators.CreateAccountDeps{
		AccountStore: acctStore,
		GenerateID:   func() string { return uuid.New().String() },
		Now:          time.Now,
	}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), seedDeps, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	// Configure email sender
	if cfg.ResendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(cfg.ResendKey, cfg.EmailFrom), cfg.EmailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), cfg.EmailFrom)
		if cfg.Env == "production" {
			log.Println("WARNING: CLUBHOUSE_RESEND_KEY is not set, email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop, set CLUBHOUSE_RESEND_KEY for real delivery)")
		}
	}

	web.SetBaseAddress(cfg.BaseAddress)
	web.SetUploadDir(cfg.UploadDir)

	mux := web.NewMux(cfg.StaticDir, stores)

	log.Printf("Clubhouse %s starting on %s (env=%s)", version, cfg.Addr, cfg.Env)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
