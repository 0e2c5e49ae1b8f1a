// Package bootstrap wires the application service from configuration. Both the
// server and the CLI binaries start through it.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"invoice-generator/internal/ai"
	"invoice-generator/internal/app"
	"invoice-generator/internal/cache"
	"invoice-generator/internal/config"
	"invoice-generator/internal/core"
	"invoice-generator/internal/db"
	"invoice-generator/internal/export"
	"invoice-generator/internal/obs"
	"invoice-generator/internal/store"
)

const metricsNamespace = "invoice"

// Runtime is a wired application plus the resources it holds open.
type Runtime struct {
	Service  app.ApplicationService
	Registry *prometheus.Registry

	pool  *pgxpool.Pool
	redis *redis.Client
}

// New connects the optional backends named in cfg and builds the service.
// Without DATABASE_URL the file history lives in memory; without REDIS_URL
// previews are rendered on every request; without OPENAI_API_KEY the assistant
// endpoints report that AI is unavailable.
func New(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	rt := &Runtime{Registry: prometheus.NewRegistry()}
	rt.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	files := store.NewMemoryFileStore()
	if cfg.DatabaseURL != "" {
		if err := store.Migrate(cfg.DatabaseURL); err != nil {
			return nil, err
		}
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		rt.pool = pool
		files = store.NewFileStore(pool)
		log.Info().Msg("file history stored in postgres")
	} else {
		log.Warn().Msg("DATABASE_URL is not set, file history is kept in memory")
	}

	var previews *cache.PreviewCache
	if cfg.RedisURL != "" {
		client, err := cache.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			rt.Close()
			return nil, err
		}
		rt.redis = client
		previews = cache.NewPreviewCache(client, cfg.PreviewCacheTTL)
	}

	var assistant ai.DraftService
	if cfg.AIEnabled() {
		assistant = ai.NewAssistant(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	} else {
		log.Warn().Msg("OPENAI_API_KEY is not set, AI assistant disabled")
	}

	rt.Service = app.NewAppService(
		core.DefaultCatalog(),
		files,
		export.NewOutput(cfg.OutputDir),
		previews,
		assistant,
		obs.NewMetrics(metricsNamespace, rt.Registry),
		app.Options{EscapeHTML: cfg.EscapeHTML},
	)
	return rt, nil
}

// Close releases the database pool and Redis client.
func (rt *Runtime) Close() {
	if rt.redis != nil {
		if err := rt.redis.Close(); err != nil {
			log.Error().Err(err).Msg("close redis")
		}
	}
	if rt.pool != nil {
		rt.pool.Close()
	}
}

// String describes which backends are active, for the startup log line.
func (rt *Runtime) String() string {
	return fmt.Sprintf("postgres=%t redis=%t", rt.pool != nil, rt.redis != nil)
}
