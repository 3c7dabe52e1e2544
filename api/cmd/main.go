package main

import (
	"context"
	"encoding/json"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/jcpaschoal/wertvoll-dispo/api/cmd/build/all"
	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/debug"
	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/mux"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/copilotbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/copilotbus/intent/openaiintent"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/sqldb"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/keystore"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/logger"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/otel"
	"github.com/kelseyhightower/envconfig"
)

var build = "develop"

// Config is the service configuration read from the environment.
type Config struct {
	Version struct {
		Build string `json:"build"`
		Desc  string `json:"desc"`
	} `json:"version"`

	Web struct {
		ReadTimeout        time.Duration `envconfig:"WEB_READ_TIMEOUT" default:"5s"`
		WriteTimeout       time.Duration `envconfig:"WEB_WRITE_TIMEOUT" default:"40s"`
		IdleTimeout        time.Duration `envconfig:"WEB_IDLE_TIMEOUT" default:"120s"`
		ShutdownTimeout    time.Duration `envconfig:"WEB_SHUTDOWN_TIMEOUT" default:"20s"`
		APIHost            string        `envconfig:"WEB_API_HOST" default:"0.0.0.0:3000"`
		DebugHost          string        `envconfig:"WEB_DEBUG_HOST" default:"0.0.0.0:3010"`
		CORSAllowedOrigins []string      `envconfig:"WEB_CORS_ALLOWED_ORIGINS" default:"*"`
	}
	DB struct {
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:"postgres"`
		Host         string `envconfig:"DB_HOST" default:"localhost"`
		Name         string `envconfig:"DB_NAME" default:"wertvoll"`
		MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"0"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"0"`
		DisableTLS   bool   `envconfig:"DB_DISABLE_TLS" default:"true"`
	}
	Auth struct {
		KeysFolder string        `envconfig:"AUTH_KEYS_FOLDER" default:"zarf/keys"`
		Issuer     string        `envconfig:"AUTH_ISSUER" default:"wertvoll-dispo"`
		ActorTTL   time.Duration `envconfig:"AUTH_ACTOR_TTL" default:"5m"`
	}
	Copilot struct {
		APIKey           string        `envconfig:"COPILOT_API_KEY"`
		BaseURL          string        `envconfig:"COPILOT_BASE_URL"`
		Model            string        `envconfig:"COPILOT_MODEL" default:"gpt-4-turbo-preview"`
		Timeout          time.Duration `envconfig:"COPILOT_TIMEOUT" default:"30s"`
		FailureThreshold uint32        `envconfig:"COPILOT_FAILURE_THRESHOLD" default:"5"`
		OpenTimeout      time.Duration `envconfig:"COPILOT_OPEN_TIMEOUT" default:"30s"`
		PersonaFile      string        `envconfig:"COPILOT_PERSONA_FILE"`
	}
	Tempo struct {
		Host        string  `envconfig:"TEMPO_HOST"`
		ServiceName string  `envconfig:"TEMPO_SERVICE_NAME" default:"wertvoll-dispo"`
		Probability float64 `envconfig:"TEMPO_PROBABILITY" default:"0.05"`
	}
}

func main() {
	var log *logger.Logger

	events := logger.Events{
		Error: func(ctx context.Context, r logger.Record) {
			log.Info(ctx, "******* SEND ALERT *******")
		},
	}

	log = logger.NewWithEvents(os.Stdout, logger.LevelInfo, "WERTVOLL-DISPO", otel.GetTraceID, events)

	// -------------------------------------------------------------------------

	ctx := context.Background()

	if err := run(ctx, log); err != nil {
		log.Error(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {

	// -------------------------------------------------------------------------
	// GOMAXPROCS

	log.Info(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0))

	// -------------------------------------------------------------------------
	// Configuration

	var cfg Config

	cfg.Version.Build = build
	cfg.Version.Desc = "Wertvoll Dispo"

	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}

	// -------------------------------------------------------------------------
	// App Starting

	log.Info(ctx, "starting service", "version", cfg.Version.Build)
	defer log.Info(ctx, "shutdown complete")

	log.Info(ctx, "startup", "config", sanitizeConfig(cfg))

	log.BuildInfo(ctx)

	expvar.NewString("build").Set(cfg.Version.Build)

	// -------------------------------------------------------------------------
	// Database Support

	log.Info(ctx, "startup", "status", "initializing database support", "hostport", cfg.DB.Host)

	db, err := sqldb.Open(sqldb.Config{
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Host:         cfg.DB.Host,
		Name:         cfg.DB.Name,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		DisableTLS:   cfg.DB.DisableTLS,
	})
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}

	defer db.Close()

	// -------------------------------------------------------------------------
	// Auth Support

	log.Info(ctx, "startup", "status", "initializing authentication support")

	ks := keystore.New()

	n, err := ks.LoadByFileSystem(os.DirFS(cfg.Auth.KeysFolder))
	if err != nil {
		return fmt.Errorf("loading keys: %w", err)
	}

	if n == 0 {
		return errors.New("no signing keys found")
	}

	// -------------------------------------------------------------------------
	// Copilot Support

	log.Info(ctx, "startup", "status", "initializing copilot support", "model", cfg.Copilot.Model)

	persona := copilotbus.DefaultPersona()
	if cfg.Copilot.PersonaFile != "" {
		persona, err = copilotbus.LoadPersona(cfg.Copilot.PersonaFile)
		if err != nil {
			return fmt.Errorf("loading persona: %w", err)
		}
	}

	recognizer := openaiintent.New(openaiintent.Config{
		Log:              log,
		APIKey:           cfg.Copilot.APIKey,
		BaseURL:          cfg.Copilot.BaseURL,
		Model:            cfg.Copilot.Model,
		FailureThreshold: cfg.Copilot.FailureThreshold,
		OpenTimeout:      cfg.Copilot.OpenTimeout,
	})

	// -------------------------------------------------------------------------
	// Start Tracing Support

	log.Info(ctx, "startup", "status", "initializing tracing support")

	traceProvider, teardown, err := otel.InitTracing(log, otel.Config{
		ServiceName: cfg.Tempo.ServiceName,
		Host:        cfg.Tempo.Host,
		ExcludedRoutes: map[string]struct{}{
			"/v1/liveness":  {},
			"/v1/readiness": {},
		},
		Probability: cfg.Tempo.Probability,
	})
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}

	defer teardown(context.Background())

	tracer := traceProvider.Tracer(cfg.Tempo.ServiceName)

	// -------------------------------------------------------------------------
	// Start Debug Service

	go func() {
		log.Info(ctx, "startup", "status", "debug v1 router started", "host", cfg.Web.DebugHost)

		if err := http.ListenAndServe(cfg.Web.DebugHost, debug.Mux()); err != nil {
			log.Error(ctx, "shutdown", "status", "debug v1 router closed", "host", cfg.Web.DebugHost, "msg", err)
		}
	}()

	// -------------------------------------------------------------------------
	// Start API Service

	log.Info(ctx, "startup", "status", "initializing V1 API support")

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	cfgMux := mux.Config{
		Build:  cfg.Version.Build,
		Log:    log,
		DB:     db,
		Tracer: tracer,
		AuthConfig: mux.AuthConfig{
			KeyLookup: ks,
			Issuer:    cfg.Auth.Issuer,
			ActorTTL:  cfg.Auth.ActorTTL,
		},
		CopilotConfig: mux.CopilotConfig{
			Recognizer: recognizer,
			Persona:    persona,
			Timeout:    cfg.Copilot.Timeout,
		},
	}

	webAPI, err := mux.WebAPI(cfgMux, all.Routes(), mux.WithCORS(cfg.Web.CORSAllowedOrigins))
	if err != nil {
		return fmt.Errorf("constructing web api: %w", err)
	}

	api := http.Server{
		Addr:         cfg.Web.APIHost,
		Handler:      webAPI,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     logger.NewStdLogger(log, logger.LevelError),
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info(ctx, "startup", "status", "api router started", "host", api.Addr)
		serverErrors <- api.ListenAndServe()
	}()

	// -------------------------------------------------------------------------
	// Shutdown

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Info(ctx, "shutdown", "status", "shutdown started", "signal", sig)
		defer log.Info(ctx, "shutdown", "status", "shutdown complete", "signal", sig)

		ctx, cancel := context.WithTimeout(ctx, cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func sanitizeConfig(cfg Config) string {
	cfg.DB.Password = "[MASKED]"
	if cfg.Copilot.APIKey != "" {
		cfg.Copilot.APIKey = "[MASKED]"
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Sprintf("%+v", cfg)
	}
	return string(data)
}
