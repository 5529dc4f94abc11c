package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/veldtec/talentctl/internal/adapters/api"
	filestore "github.com/veldtec/talentctl/internal/adapters/secrets/file"
	"github.com/veldtec/talentctl/internal/application"
	"github.com/veldtec/talentctl/internal/config"
	"github.com/veldtec/talentctl/internal/ports"
	"github.com/veldtec/talentctl/internal/session"
)

type app struct {
	cache      *application.Cache
	sessions   *session.Store
	gateway    ports.Gateway
	auth       *application.AuthService
	jobs       *application.JobService
	candidates *application.CandidateService
	uploads    *application.UploadService
	workflow   *application.StatusService
	now        func() time.Time
}

func wireApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	stateDir, err := config.Dir()
	if err != nil {
		return nil, err
	}

	store := session.NewStore(filestore.NewStore(filepath.Join(stateDir, "state")))

	gateway := api.NewClient(
		cfg.API.BaseURL,
		&http.Client{Timeout: cfg.API.Timeout},
		store,
		api.WithAuthExpiredHook(func() {
			fmt.Fprintln(os.Stderr, "session expired, run `tc login` to sign in again")
		}),
	)

	clock := ports.SystemClock{}
	cache := application.NewCache(clock, cfg.Cache.TTL)

	// Restore any persisted session; the identity stays provisional until
	// the first gateway call confirms or rejects it.
	if _, _, err := store.Restore(context.Background()); err != nil {
		slog.Warn("restore persisted session", "err", err)
	}

	return &app{
		cache:      cache,
		sessions:   store,
		gateway:    gateway,
		auth:       application.NewAuthService(gateway, store, clock),
		jobs:       application.NewJobService(gateway, cache),
		candidates: application.NewCandidateService(gateway, cache),
		uploads:    application.NewUploadService(gateway, cache),
		workflow:   application.NewStatusService(gateway, cache),
		now:        time.Now,
	}, nil
}
