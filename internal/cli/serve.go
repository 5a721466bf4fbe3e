package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/FabioUrbina/rdkit/internal/config"
	"github.com/FabioUrbina/rdkit/internal/server"
	"github.com/FabioUrbina/rdkit/pkg/cache"
	"github.com/FabioUrbina/rdkit/pkg/observability"
	"github.com/FabioUrbina/rdkit/pkg/pipeline"
)

// serveCommand runs the HTTP rendering service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		envFile string
		addr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP rendering service",
		Long: `Run the HTTP rendering service.

Configuration comes from MOLDRAW_* environment variables, optionally loaded
from a .env file:

  MOLDRAW_ADDR             listen address (default :8080)
  MOLDRAW_REDIS_URL        share drawings through Redis
  MOLDRAW_CACHE_DIR        cache drawings on disk when Redis is not set
  MOLDRAW_CACHE_TTL        lifetime of cached drawings
  MOLDRAW_MAX_BODY_BYTES   largest accepted request body
  MOLDRAW_REQUEST_TIMEOUT  per-request render deadline
  MOLDRAW_MAX_CONCURRENT   renders in flight at once
  MOLDRAW_LOG_LEVEL        debug, info, warn or error`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var files []string
			if envFile != "" {
				files = append(files, envFile)
			}
			cfg, err := config.Load(files...)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
				c.SetLogLevel(lvl)
			} else {
				c.Logger.Warn("unknown log level, keeping default", "level", cfg.LogLevel)
			}

			store, desc, err := serverCache(ctx, cfg)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(store, cacheKeyer(), c.Logger)
			runner.TTL = cfg.CacheTTL
			defer runner.Close()

			observability.SetRenderHooks(observability.NewLogRenderHooks(c.Logger))
			observability.SetCacheHooks(observability.NewLogCacheHooks(c.Logger))
			observability.SetHTTPHooks(observability.NewLogHTTPHooks(c.Logger))

			printKeyValue("Address", cfg.Addr)
			printKeyValue("Cache", desc)
			printKeyValue("Concurrency", fmt.Sprint(cfg.MaxConcurrent))

			srv := server.New(runner, c.Logger, server.Options{
				MaxBodyBytes:   cfg.MaxBodyBytes,
				RequestTimeout: cfg.RequestTimeout,
				MaxConcurrent:  cfg.MaxConcurrent,
			})
			return srv.ListenAndServe(ctx, cfg.Addr)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "load environment from this file (default .env)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides MOLDRAW_ADDR")

	return cmd
}

// serverCache picks Redis when configured, then a cache directory, then no
// cache at all.
func serverCache(ctx context.Context, cfg *config.Config) (cache.Cache, string, error) {
	switch {
	case cfg.RedisURL != "":
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, "", fmt.Errorf("connect redis: %w", err)
		}
		return rc, "redis", nil
	case cfg.CacheDir != "":
		fc, err := cache.NewFileCache(cfg.CacheDir)
		if err != nil {
			return nil, "", err
		}
		return fc, cfg.CacheDir, nil
	default:
		return cache.NewNullCache(), "disabled", nil
	}
}
