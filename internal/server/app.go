// Package server wires the listing server together: PostgreSQL storage,
// the in-memory catalog store and its mutation gateway, admin sessions, and
// the REST and gRPC surfaces, and runs them until a shutdown signal.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/realty/internal/catalog"
	"github.com/dmitrijs2005/realty/internal/common"
	"github.com/dmitrijs2005/realty/internal/contact"
	"github.com/dmitrijs2005/realty/internal/logging"
	"github.com/dmitrijs2005/realty/internal/server/config"
	"github.com/dmitrijs2005/realty/internal/server/contracts"
	"github.com/dmitrijs2005/realty/internal/server/images"
	"github.com/dmitrijs2005/realty/internal/server/metrics"
	"github.com/dmitrijs2005/realty/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/realty/internal/server/rest"
	"github.com/dmitrijs2005/realty/internal/session"
	"github.com/robfig/cron/v3"

	gs "github.com/dmitrijs2005/realty/internal/server/grpc"
)

// seams for tests
var (
	openDB         = sql.Open
	newRepoManager = repomanager.NewPostgresRepositoryManager
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	store  *catalog.Store
	sched  *cron.Cron
	rest   *rest.Server
	grpc   *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := openDB("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := newApp(ctx, c, logger, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, db *sql.DB) (*App, error) {
	rm := newRepoManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	if c.SeedDemo {
		n, err := rm.SeedDemo(ctx, db, catalog.DemoListings())
		if err != nil {
			return nil, fmt.Errorf("seed demo listings: %w", err)
		}
		if n > 0 {
			logger.Info(ctx, "demo listings inserted", "count", n)
		}
	}

	repo := rm.Properties(db)
	m := metrics.New()

	store := catalog.NewStore(repo, logger, catalog.WithReloadObserver(m))
	gateway := catalog.NewGateway(repo, store, logger, catalog.WithMutationObserver(m))

	issuer, err := newIssuer(ctx, c, logger)
	if err != nil {
		return nil, err
	}

	validator, err := contracts.NewValidator()
	if err != nil {
		return nil, err
	}

	sched, err := newScheduler(ctx, c.RefreshSchedule, store, logger)
	if err != nil {
		return nil, err
	}

	var signer rest.ImageSigner
	if c.S3Bucket != "" {
		signer = images.NewService(images.Config{
			Region:        c.S3Region,
			AccessKey:     c.S3RootUser,
			SecretKey:     c.S3RootPassword,
			Endpoint:      c.S3BaseEndpoint,
			Bucket:        c.S3Bucket,
			PublicBaseURL: c.S3PublicBaseURL,
		})
	}

	restServer := rest.NewServer(c.EndpointAddrHTTP, c.APIKey, c.AllowedOrigins, rest.Deps{
		Store:      store,
		Gateway:    gateway,
		Collection: repo,
		Verifier:   newVerifier(c),
		Issuer:     issuer,
		Linker:     contact.NewLinker(c.ContactPhone, c.AgentName),
		Validator:  validator,
		Images:     signer,
		Metrics:    m,
		Logger:     logger,
	})

	grpcServer := gs.NewGRPCServer(c.EndpointAddrGRPC, logger, store, issuer, m)

	return &App{
		config: c,
		logger: logger,
		db:     db,
		store:  store,
		sched:  sched,
		rest:   restServer,
		grpc:   grpcServer,
	}, nil
}

// newVerifier prefers the bcrypt hash over the plain secret.
func newVerifier(c *config.Config) session.CredentialVerifier {
	if c.AdminSecretHash != "" {
		return session.BcryptVerifier{ID: c.AdminID, Hash: []byte(c.AdminSecretHash)}
	}
	return session.FixedVerifier{ID: c.AdminID, Secret: c.AdminSecret}
}

// newIssuer uses the configured secret or, when there is none, a random one
// that does not survive a restart.
func newIssuer(ctx context.Context, c *config.Config, logger logging.Logger) (*session.Issuer, error) {
	secret := c.SecretKey
	if secret == "" {
		s, err := common.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("session secret: %w", err)
		}
		secret = s
		logger.Warn(ctx, "no secret key configured, sessions will not survive a restart")
	}
	return session.NewIssuer(secret, c.SessionTTL), nil
}

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// newScheduler returns a stopped scheduler that reloads the store on spec,
// or nil when spec is empty.
func newScheduler(ctx context.Context, spec string, store *catalog.Store, logger logging.Logger) (*cron.Cron, error) {
	if spec == "" {
		return nil, nil
	}

	sched := cron.New(cron.WithParser(cronParser))
	_, err := sched.AddFunc(spec, func() {
		if err := store.Reload(ctx); err != nil {
			logger.Warn(ctx, "scheduled reload failed", "error", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("refresh schedule %q: %w", spec, err)
	}
	return sched, nil
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

func (app *App) startRESTServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.rest.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.grpc.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a signal arrives or a server fails.
// The first catalog load runs in the background; until it completes the
// site reports that listings are loading.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.store.Reload(ctx); err != nil {
			app.logger.Warn(ctx, "initial catalog load failed, serving an empty catalog", "error", err)
		}
	}()

	if app.sched != nil {
		app.sched.Start()
		defer app.sched.Stop()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startRESTServer(ctx, cancelFunc)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
