package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/techup/travel-explorer-api/internal/adapters/httpapi"
	memblobstore "github.com/techup/travel-explorer-api/internal/adapters/memory/blobstore"
	memtriprepo "github.com/techup/travel-explorer-api/internal/adapters/memory/triprepo"
	memuserrepo "github.com/techup/travel-explorer-api/internal/adapters/memory/userrepo"
	"github.com/techup/travel-explorer-api/internal/adapters/postgres"
	pgtriprepo "github.com/techup/travel-explorer-api/internal/adapters/postgres/triprepo"
	pguserrepo "github.com/techup/travel-explorer-api/internal/adapters/postgres/userrepo"
	"github.com/techup/travel-explorer-api/internal/adapters/s3store"
	"github.com/techup/travel-explorer-api/internal/adapters/supabase"
	"github.com/techup/travel-explorer-api/internal/app/auth"
	"github.com/techup/travel-explorer-api/internal/app/trips"
	"github.com/techup/travel-explorer-api/internal/app/uploads"
	"github.com/techup/travel-explorer-api/internal/platform/auth/passwordhash"
	"github.com/techup/travel-explorer-api/internal/platform/auth/tokencodec"
	platformclock "github.com/techup/travel-explorer-api/internal/platform/clock"
	"github.com/techup/travel-explorer-api/internal/platform/config"
	blobstoreport "github.com/techup/travel-explorer-api/internal/ports/out/blobstore"
	triprepoport "github.com/techup/travel-explorer-api/internal/ports/out/triprepo"
	userrepoport "github.com/techup/travel-explorer-api/internal/ports/out/userrepo"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	if err := run(log); err != nil {
		log.Error("startup failed", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	authCfg, err := config.LoadAuthConfigFromEnv()
	if err != nil {
		return err
	}
	serverCfg, err := config.LoadServerConfigFromEnv()
	if err != nil {
		return err
	}
	storageCfg, err := config.LoadStorageConfigFromEnv()
	if err != nil {
		return err
	}

	clk := platformclock.NewSystemClock()
	codec := tokencodec.New(authCfg.Secret, authCfg.TokenTTL)
	hasher := passwordhash.New(authCfg.BcryptCost)

	var (
		users    userrepoport.Repository
		tripRepo triprepoport.Repository
	)
	switch storageCfg.Backend {
	case config.StoragePostgres:
		if err := postgres.RunMigrations(ctx, storageCfg.DatabaseURL); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		pool, err := postgres.NewPool(ctx, storageCfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		users = pguserrepo.NewRepo(pool)
		tripRepo = pgtriprepo.NewRepo(pool)
	default:
		users = memuserrepo.NewRepo()
		tripRepo = memtriprepo.NewRepo()
	}
	log.Info("storage ready", "backend", string(storageCfg.Backend))

	store, err := newBlobStore(ctx, log)
	if err != nil {
		return err
	}

	authSvc := auth.NewService(users, hasher, codec, clk)
	tripSvc := trips.NewService(tripRepo, users, clk)
	uploadSvc := uploads.NewService(store, log)

	api := httpapi.NewServer(authSvc, tripSvc, uploadSvc, log)
	handler := httpapi.NewRouter(api, codec, clk, log)

	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("api listening", "addr", serverCfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newBlobStore(ctx context.Context, log *slog.Logger) (blobstoreport.Store, error) {
	fb, err := config.LoadFileBackendFromEnv()
	if err != nil {
		return nil, err
	}
	switch fb {
	case config.FileSupabase:
		cfg, err := config.LoadSupabaseConfigFromEnv()
		if err != nil {
			return nil, err
		}
		log.Info("file storage ready", "backend", "supabase", "bucket", cfg.Bucket)
		return supabase.NewStore(supabase.Config{
			URL:    cfg.URL,
			Bucket: cfg.Bucket,
			APIKey: cfg.APIKey,
		}), nil
	case config.FileS3:
		cfg, err := config.LoadS3ConfigFromEnv()
		if err != nil {
			return nil, err
		}
		st, err := s3store.NewStore(ctx, s3store.Config{
			Endpoint:      cfg.Endpoint,
			Region:        cfg.Region,
			Bucket:        cfg.Bucket,
			AccessKey:     cfg.AccessKey,
			SecretKey:     cfg.SecretKey,
			PublicBaseURL: cfg.PublicBaseURL,
			UsePathStyle:  cfg.UsePathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("configuring s3 store: %w", err)
		}
		log.Info("file storage ready", "backend", "s3", "bucket", cfg.Bucket)
		return st, nil
	default:
		log.Info("file storage ready", "backend", "memory")
		return memblobstore.NewStore(""), nil
	}
}
