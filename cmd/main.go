package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	grpcrouter "github.com/dtroode/identity-server/internal/api/grpc/router"
	grpcServer "github.com/dtroode/identity-server/internal/api/grpc/server"
	httpapi "github.com/dtroode/identity-server/internal/api/http"
	"github.com/dtroode/identity-server/internal/config"
	"github.com/dtroode/identity-server/internal/credential"
	"github.com/dtroode/identity-server/internal/logger"
	"github.com/dtroode/identity-server/internal/metrics"
	"github.com/dtroode/identity-server/internal/model"
	"github.com/dtroode/identity-server/internal/repository/postgres"
	"github.com/dtroode/identity-server/internal/repository/sqlite"
	"github.com/dtroode/identity-server/internal/server"
	"github.com/dtroode/identity-server/internal/service"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	store, closer, err := openStore(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize storage", "driver", cfg.Database.Driver, "error", err)
	}
	defer closer.Close()

	hasher, err := credential.NewArgon2id(credential.Params{
		Time:   cfg.KDF.Time,
		MemKiB: cfg.KDF.MemKiB,
		Par:    cfg.KDF.Par,
	})
	if err != nil {
		logger.Fatal("failed to initialize password hasher", "error", err)
	}

	registry := metrics.NewRegistry()
	recorder := metrics.New(registry)

	registration := service.NewRegistration(store, hasher, logger, recorder)
	authentication, err := service.NewAuthentication(store, hasher, logger, recorder)
	if err != nil {
		logger.Fatal("failed to initialize authentication service", "error", err)
	}

	router := grpcrouter.New(registration, authentication, logger, cfg.RequestTimeout)
	servers := []model.Server{
		grpcServer.NewGRPCServer(router.Register(), fmt.Sprintf(":%s", cfg.GRPC.Port)),
		httpapi.NewHTTPServer(
			httpapi.NewRouter(registration, authentication, registry, logger, cfg.RequestTimeout),
			fmt.Sprintf(":%s", cfg.HTTP.Port),
		),
	}
	layers := make([]model.SecurityLayer, len(servers))
	for i, listener := range []config.Listener{cfg.GRPC, cfg.HTTP} {
		layers[i], err = server.NewSecurityLayer(listener)
		if err != nil {
			logger.Fatal("failed to initialize security layer", "error", err)
		}
	}

	var wg sync.WaitGroup
	for i, s := range servers {
		wg.Add(1)
		go func(s model.Server, sl model.SecurityLayer) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "address", s.Address(), "error", err)
				stop()
			}
		}(s, layers[i])
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")
	router.Health().Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

// openStore creates the account store for the configured driver. The
// returned closer releases the connection pool.
func openStore(ctx context.Context, cfg config.Database) (model.AccountStore, io.Closer, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		conn, err := sqlite.NewConnection(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewAccountRepository(conn), conn, nil
	default:
		conn, err := postgres.NewConnection(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewAccountRepository(conn), conn, nil
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
