// Package storefront parses storefront service flags and launches the service.
package storefront

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/storefront/internal/platform/cmd"
	platformgrpc "github.com/louisbranch/storefront/internal/platform/grpc"
	"github.com/louisbranch/storefront/internal/services/storefront"
	"github.com/louisbranch/storefront/internal/services/storefront/cart"
	"github.com/louisbranch/storefront/internal/services/storefront/catalog"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/requestmeta"
	"github.com/louisbranch/storefront/internal/services/storefront/storage"
	"github.com/louisbranch/storefront/internal/services/storefront/storage/memory"
	"github.com/louisbranch/storefront/internal/services/storefront/storage/sqlite"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Config holds storefront command configuration.
type Config struct {
	HTTPAddr            string        `env:"STOREFRONT_HTTP_ADDR" envDefault:"localhost:8095"`
	HealthAddr          string        `env:"STOREFRONT_HEALTH_ADDR"`
	CatalogURL          string        `env:"STOREFRONT_CATALOG_URL" envDefault:"https://fakestoreapi.com"`
	CatalogTimeout      time.Duration `env:"STOREFRONT_CATALOG_TIMEOUT" envDefault:"0s"`
	DBPath              string        `env:"STOREFRONT_DB_PATH" envDefault:"data/storefront.db"`
	ImageDir            string        `env:"STOREFRONT_IMAGE_DIR" envDefault:"img"`
	CartSessionTTL      time.Duration `env:"STOREFRONT_CART_SESSION_TTL" envDefault:"30m"`
	TrustForwardedProto bool          `env:"STOREFRONT_TRUST_FORWARDED_PROTO" envDefault:"false"`
	LogDev              bool          `env:"STOREFRONT_LOG_DEV" envDefault:"false"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.Load(&cfg, fs, args, bindFlags); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.HealthAddr, "health-addr", cfg.HealthAddr, "gRPC health listen address (empty disables it)")
	fs.StringVar(&cfg.CatalogURL, "catalog-url", cfg.CatalogURL, "Catalog service base URL")
	fs.DurationVar(&cfg.CatalogTimeout, "catalog-timeout", cfg.CatalogTimeout, "Catalog fetch timeout (0 waits for the request context)")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite cart database path (empty keeps carts in memory)")
	fs.StringVar(&cfg.ImageDir, "image-dir", cfg.ImageDir, "Directory served under /img/")
	fs.DurationVar(&cfg.CartSessionTTL, "cart-session-ttl", cfg.CartSessionTTL, "Idle time before a cart session is reloaded from storage")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Honor X-Forwarded-Proto from a trusted proxy")
	fs.BoolVar(&cfg.LogDev, "log-dev", cfg.LogDev, "Use the development logger")
}

// Run starts the storefront service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceStorefront, func(ctx context.Context) error {
		return run(ctx, cfg)
	})
}

func run(ctx context.Context, cfg Config) error {
	logger, err := newLogger(cfg.LogDev)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	store, err := openStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("close cart store", zap.Error(err))
		}
	}()

	registry, err := cart.NewRegistry(store,
		cart.WithSessionTTL(cfg.CartSessionTTL),
		cart.WithRegistryLogger(logger),
		cart.WithRefreshListener(func(visitorID string, summary cart.Summary) {
			logger.Debug("cart refreshed",
				zap.String("visitor_id", visitorID),
				zap.Int("items", summary.ItemCount),
				zap.String("total", summary.TotalText()),
			)
		}),
	)
	if err != nil {
		return fmt.Errorf("init cart registry: %w", err)
	}

	client, err := catalog.NewClient(cfg.CatalogURL, catalog.WithTimeout(cfg.CatalogTimeout))
	if err != nil {
		return fmt.Errorf("init catalog client: %w", err)
	}

	server, err := storefront.NewServer(ctx, storefront.Config{
		HTTPAddr:     cfg.HTTPAddr,
		ImageDir:     cfg.ImageDir,
		Catalog:      client,
		Carts:        registry,
		Logger:       logger,
		SchemePolicy: requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto},
	})
	if err != nil {
		return fmt.Errorf("init storefront server: %w", err)
	}
	defer server.Close()

	var healthLis net.Listener
	if addr := strings.TrimSpace(cfg.HealthAddr); addr != "" {
		healthLis, err = net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("listen grpc health on %s: %w", addr, err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("storefront listening", zap.String("addr", server.Addr()))
		return server.ListenAndServe(gctx)
	})
	if healthLis != nil {
		health := platformgrpc.NewHealthServer(entrypoint.ServiceStorefront)
		health.SetServing(true)
		g.Go(func() error {
			logger.Info("grpc health listening", zap.String("addr", healthLis.Addr().String()))
			return health.Serve(gctx, healthLis)
		})
		g.Go(func() error {
			probeHealth(gctx, healthLis.Addr().String(), logger)
			return nil
		})
	}
	g.Go(func() error {
		sweepSessions(gctx, registry, cfg.CartSessionTTL, logger)
		return nil
	})
	return g.Wait()
}

// sweepSessions evicts idle cart sessions until ctx ends.
func sweepSessions(ctx context.Context, registry *cart.Registry, ttl time.Duration, logger *zap.Logger) {
	if ttl <= 0 {
		ttl = cart.DefaultSessionTTL
	}
	ticker := time.NewTicker(ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if evicted := registry.Sweep(); evicted > 0 {
				logger.Debug("swept cart sessions", zap.Int("evicted", evicted), zap.Int("active", registry.Len()))
			}
		}
	}
}

// probeHealth dials the local health listener once and logs when it reports
// SERVING.
func probeHealth(ctx context.Context, addr string, logger *zap.Logger) {
	conn, err := platformgrpc.Dial(addr)
	if err != nil {
		logger.Warn("grpc health probe", zap.Error(err))
		return
	}
	defer func() { _ = conn.Close() }()
	if err := platformgrpc.WaitForHealth(ctx, conn, entrypoint.ServiceStorefront, logger.Sugar().Debugf); err != nil {
		if ctx.Err() == nil {
			logger.Warn("grpc health probe", zap.Error(err))
		}
		return
	}
	logger.Info("grpc health serving", zap.String("addr", addr))
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// openStore opens the SQLite cart store, or an in-memory store when path
// is empty.
func openStore(path string) (storage.Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return memory.New(), nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cart store: %w", err)
	}
	return store, nil
}
