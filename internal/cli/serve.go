package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/solar-scheduler/internal/audit"
	"github.com/BruksfildServices01/solar-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/solar-scheduler/internal/db"
	domain "github.com/BruksfildServices01/solar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/solar-scheduler/internal/infra/lock"
	infraRepo "github.com/BruksfildServices01/solar-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/solar-scheduler/internal/routes"
	ucAppointment "github.com/BruksfildServices01/solar-scheduler/internal/usecase/appointment"
)

func newServeCmd() *cobra.Command {
	var (
		migrateUp bool
		seedDemo  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the scheduling API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			repo, sink, err := openStore(cfg, log, migrateUp, seedDemo)
			if err != nil {
				return err
			}

			locker, closeLocker, err := openLocker(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer closeLocker()

			selector, err := domain.NewSelector(cfg.SelectionPolicy)
			if err != nil {
				return err
			}

			dispatcher := audit.NewDispatcher(sink, cfg.AuditQueueSize, log)
			defer dispatcher.Close()

			opts := ucAppointment.DefaultOptions()
			opts.Buffer = cfg.Buffer
			opts.LockWait = cfg.LockWait

			if cfg.IsProduction() {
				gin.SetMode(gin.ReleaseMode)
			}
			r := gin.New()
			r.Use(gin.Recovery())

			routes.RegisterRoutes(r, cfg, routes.Deps{
				Repo:     repo,
				Locker:   locker,
				Selector: selector,
				Audit:    dispatcher,
				Options:  opts,
				Log:      log,
			})

			return run(ctx, cfg.Addr(), r, log)
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", true, "run database migrations on startup")
	cmd.Flags().BoolVar(&seedDemo, "seed-demo", false, "with STORE_DRIVER=memory, load a demo team and plant")
	return cmd
}

func openStore(cfg *config.Config, log *zap.Logger, migrateUp, seedDemo bool) (domain.Repository, audit.Sink, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		repo := infraRepo.NewAppointmentMemoryRepository()
		if seedDemo {
			infraRepo.SeedDemo(repo)
		}
		log.Warn("using in-memory store, data is lost on exit")
		return repo, audit.NewZapSink(log), nil

	case config.StoreDriverPostgres:
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		if migrateUp {
			if err := dbpkg.Migrate(db, log); err != nil {
				return nil, nil, err
			}
		}
		return infraRepo.NewAppointmentGormRepository(db), audit.New(db), nil
	}
	return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}

func openLocker(ctx context.Context, cfg *config.Config, log *zap.Logger) (lock.Locker, func(), error) {
	if cfg.RedisURL == "" {
		log.Info("using in-process locker")
		return lock.NewMemoryLocker(), func() {}, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing REDIS_URL: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Info("using redis locker", zap.String("addr", opt.Addr))
	return lock.NewRedisLocker(client, cfg.LockTTL, log), func() { _ = client.Close() }, nil
}

// run serve até ctx ser cancelado e então encerra com prazo.
func run(ctx context.Context, addr string, handler http.Handler, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
