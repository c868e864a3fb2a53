package main

import (
	"context"
	"fmt"

	"github.com/alnah/go-draftkit"
	"github.com/alnah/go-draftkit/internal/assets"
	"github.com/alnah/go-draftkit/internal/server"
)

// runServe starts the HTTP API and share view until ctx is cancelled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	f := &serveFlags{}
	if _, err := parseArgs(serveFlagSet(env.Stderr, f), args); err != nil {
		return err
	}
	if err := validateWorkers(f.workers); err != nil {
		return err
	}
	logger := commandLogger(env, f.common)

	cfg, err := loadConfig(f.common, env, logger)
	if err != nil {
		return err
	}
	mergePrintFlags(&f.print, cfg)
	if f.addr != "" {
		cfg.Server.Addr = f.addr
	}
	if f.workers != 0 {
		cfg.Server.Workers = f.workers
	}
	if f.baseURL != "" {
		cfg.Share.BaseURL = f.baseURL
	}
	if f.maxBody > 0 {
		cfg.Server.MaxBodyBytes = f.maxBody
	}

	var resolver *assets.AssetResolver
	if cfg.Assets.BasePath != "" {
		resolver, err = assets.NewAssetResolver(cfg.Assets.BasePath)
		if err != nil {
			return fmt.Errorf("%w: %v", draftkit.ErrInvalidAssetPath, err)
		}
	}

	exporterOpts, err := exporterOptions(cfg, env, f.gate)
	if err != nil {
		return err
	}
	pool := env.NewPool(draftkit.ResolvePoolSize(cfg.Server.Workers), exporterOpts...)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Warn().Err(err).Msg("closing exporters")
		}
	}()

	srv, err := server.New(serverPool{pool: pool}, server.Options{
		Addr:         cfg.Server.Addr,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		ShareBaseURL: cfg.Share.BaseURL,
		Logger:       logger,
		Assets:       resolver,
		Now:          env.Now,
	})
	if err != nil {
		return err
	}
	logger.Info().Int("workers", pool.Size()).Msg("starting server")
	return srv.ListenAndServe(ctx)
}

// serverPool lets the server borrow exporters from the CLI pool.
type serverPool struct {
	pool Pool
}

func (p serverPool) Acquire() server.Exporter {
	exp := p.pool.Acquire()
	if exp == nil {
		return nil
	}
	return exp
}

func (p serverPool) Release(exp server.Exporter) {
	if e, ok := exp.(Exporter); ok {
		p.pool.Release(e)
	}
}
