// Package server wires configuration, storage, services and transports into
// the running RecipeX server and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/recipex/internal/dbx"
	"github.com/dmitrijs2005/recipex/internal/logging"
	"github.com/dmitrijs2005/recipex/internal/server/auth"
	"github.com/dmitrijs2005/recipex/internal/server/blobstore"
	"github.com/dmitrijs2005/recipex/internal/server/config"
	"github.com/dmitrijs2005/recipex/internal/server/events"
	"github.com/dmitrijs2005/recipex/internal/server/handlers"
	"github.com/dmitrijs2005/recipex/internal/server/httpapi"
	"github.com/dmitrijs2005/recipex/internal/server/repositories/memory"
	"github.com/dmitrijs2005/recipex/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/recipex/internal/server/services"
	"github.com/go-redis/redis/v8"

	gs "github.com/dmitrijs2005/recipex/internal/server/grpc"
)

// eventsMaxLen caps the event stream length.
const eventsMaxLen = 10000

type App struct {
	config  *config.Config
	logger  logging.Logger
	grpc    *gs.GRPCServer
	http    *httpapi.Server
	closers []func() error
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, err := logging.New(c.LogBackend, c.LogLevel, os.Stdout)
	if err != nil {
		return nil, err
	}

	app := &App{config: c, logger: logger}

	tx, repos, err := app.openStore(ctx)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	publisher := app.openEvents()

	blobs, err := blobstore.NewS3(ctx, blobstore.Options{
		Region:    c.S3Region,
		AccessKey: c.S3RootUser,
		SecretKey: c.S3RootPassword,
		Endpoint:  c.S3BaseEndpoint,
		Bucket:    c.S3Bucket,
	})
	if err != nil {
		app.close()
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	h := handlers.New(handlers.Services{
		Users:        services.NewUserService(tx, repos, logger.With("module", "users")),
		Relations:    services.NewRelationService(tx, repos, logger.With("module", "relations")),
		Measurements: services.NewMeasurementService(tx, repos, publisher, logger.With("module", "measurements")),
		Messages:     services.NewMessageService(tx, repos, publisher, logger.With("module", "messages")),
		Export:       services.NewExportService(tx, repos, blobs, logger.With("module", "export")),
	})

	gate := auth.NewGate([]byte(c.SecretKey), auth.NewAllowList(c.AllowedCallers))

	app.grpc = gs.NewGRPCServer(c.EndpointAddrGRPC, logger, h, gate)
	if c.EndpointAddrHTTP != "" {
		app.http = httpapi.NewServer(c.EndpointAddrHTTP, logger, h, gate)
	}

	return app, nil
}

// openStore selects the in-memory store or connects to PostgreSQL and
// applies the migrations.
func (app *App) openStore(ctx context.Context) (dbx.Transactor, repomanager.RepositoryManager, error) {
	if app.config.UsesMemoryStore() {
		app.logger.Warn(ctx, "Using in-memory store, data is lost on exit")
		s := memory.NewStore()
		return s, s, nil
	}

	db, err := repomanager.OpenPostgres(ctx, app.config.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}
	app.closers = append(app.closers, db.Close)

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}

	return dbx.NewSQLTransactor(db, nil), m, nil
}

func (app *App) openEvents() events.Publisher {
	if app.config.RedisAddr == "" {
		return events.Nop{}
	}
	client := redis.NewClient(&redis.Options{Addr: app.config.RedisAddr})
	p := events.NewRedisStream(client, app.config.EventsStream, eventsMaxLen)
	app.closers = append(app.closers, p.Close)
	return p
}

func (app *App) close() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil {
			app.logger.Error(context.Background(), "close error", "error", err)
		}
	}
	app.closers = nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// serve runs one transport; a failure stops the whole app.
func (app *App) serve(ctx context.Context, cancelFunc context.CancelFunc, name string, run func(context.Context) error) {
	if err := run(ctx); err != nil {
		app.logger.Error(ctx, "server error", "server", name, "error", err)
		cancelFunc()
	}
}

// Run serves until a signal arrives or a server fails, then releases the
// store and the event stream.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.serve(ctx, cancelFunc, "grpc", app.grpc.Run)
	}()

	if app.http != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.serve(ctx, cancelFunc, "http", app.http.Run)
		}()
	}

	wg.Wait()
	app.close()

	app.logger.Info(context.Background(), "App stopped")
}
