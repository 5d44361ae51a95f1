package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/partpilot/internal/config"
	"github.com/kailas-cloud/partpilot/internal/connectivity"
	"github.com/kailas-cloud/partpilot/internal/db"
	dbRedis "github.com/kailas-cloud/partpilot/internal/db/redis"
	dbSqlite "github.com/kailas-cloud/partpilot/internal/db/sqlite"
	domaff "github.com/kailas-cloud/partpilot/internal/domain/affiliate"
	domjob "github.com/kailas-cloud/partpilot/internal/domain/job"
	"github.com/kailas-cloud/partpilot/internal/domain/part"
	domsearch "github.com/kailas-cloud/partpilot/internal/domain/search"
	"github.com/kailas-cloud/partpilot/internal/domain/vehicle"
	"github.com/kailas-cloud/partpilot/internal/features"
	logpkg "github.com/kailas-cloud/partpilot/internal/logger"
	"github.com/kailas-cloud/partpilot/internal/metrics"
	budgetrepo "github.com/kailas-cloud/partpilot/internal/repository/budget"
	"github.com/kailas-cloud/partpilot/internal/repository/entity"
	"github.com/kailas-cloud/partpilot/internal/repository/searchcache"
	chiTransport "github.com/kailas-cloud/partpilot/internal/transport/chi"
	openaiLookup "github.com/kailas-cloud/partpilot/internal/transport/openai"
	affiliateuc "github.com/kailas-cloud/partpilot/internal/usecase/affiliate"
	garageuc "github.com/kailas-cloud/partpilot/internal/usecase/garage"
	healthuc "github.com/kailas-cloud/partpilot/internal/usecase/health"
	historyuc "github.com/kailas-cloud/partpilot/internal/usecase/history"
	jobuc "github.com/kailas-cloud/partpilot/internal/usecase/job"
	lookupuc "github.com/kailas-cloud/partpilot/internal/usecase/lookup"
	savedpartsuc "github.com/kailas-cloud/partpilot/internal/usecase/savedparts"
	searchuc "github.com/kailas-cloud/partpilot/internal/usecase/search"
	"github.com/kailas-cloud/partpilot/internal/usecase/session"
	usageuc "github.com/kailas-cloud/partpilot/internal/usecase/usage"
)

const (
	budgetDailyTTL   = 48 * time.Hour
	budgetMonthlyTTL = 62 * 24 * time.Hour
)

// app is the composition root shared by serve and the one-shot commands.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	store    db.Store
	flags    features.Flags
	conn     *connectivity.Monitor
	sessions *session.Registry
	services chiTransport.Services
}

func loadConfig(opts *rootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.env)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func openStore(cfg config.DatabaseConfig) (db.Store, error) {
	switch cfg.Driver {
	case "valkey", "redis":
		// valkey speaks the redis protocol; rueidis serves both
		return dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		})
	case "sqlite":
		return dbSqlite.NewStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// newApp wires every service over a ready store. The caller owns a.close.
func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	flags, err := features.New(cfg.Features)
	if err != nil {
		return nil, fmt.Errorf("features: %w", err)
	}

	store, err := openStore(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("create database store: %w", err)
	}
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}

	// Register lookup metrics explicitly (no init())
	metrics.RegisterDomainMetrics()

	// Single BudgetTracker shared by the lookup chain and the usage service.
	var budget *lookupuc.BudgetTracker
	lcfg := cfg.Lookup
	if lcfg.Budget.DailyTokenLimit > 0 || lcfg.Budget.MonthlyTokenLimit > 0 {
		action := lookupuc.BudgetActionWarn
		if lcfg.Budget.Action == "reject" {
			action = lookupuc.BudgetActionReject
		}
		budget = lookupuc.NewBudgetTracker(
			lcfg.Provider, lcfg.Budget.DailyTokenLimit, lcfg.Budget.MonthlyTokenLimit, action, logger,
		).WithStore(ctx, budgetrepo.New(store, budgetDailyTTL, budgetMonthlyTTL))
	}

	// nil interfaces, not typed nil pointers, when no budget is configured
	var (
		budgetChecker lookupuc.BudgetChecker
		budgetReader  usageuc.BudgetReader
	)
	if budget != nil {
		budgetChecker = budget
		budgetReader = budget
	}

	base := openaiLookup.NewLookup(&openaiLookup.Config{
		APIKey:   lcfg.APIKey,
		BaseURL:  lcfg.BaseURL,
		Model:    lcfg.Model,
		Provider: lcfg.Provider,
		Timeout:  time.Duration(lcfg.TimeoutSec) * time.Second,
		Logger:   logger,
	})
	lookup := lookupuc.NewInstrumented(base, lcfg.Provider, lcfg.Model, budgetChecker, logger)

	conn := connectivity.New(base, time.Duration(cfg.Connectivity.ProbeIntervalSec)*time.Second, logger)
	if cfg.Connectivity.ForceOffline != nil {
		online := !*cfg.Connectivity.ForceOffline
		conn.Force(&online)
	}

	cache := searchcache.New(store, cfg.Cache.Key, cfg.Cache.MaxEntries, metrics.SearchCacheLookupsTotal, logger)
	historyRepo := entity.New[domsearch.HistoryRecord](store, entity.CollectionHistory)

	// history is a feature: with it off, searches are not recorded
	var history searchuc.History
	if flags.Enabled(features.SearchHistory) {
		history = historyRepo
	}

	sessions := session.NewRegistry(time.Duration(cfg.Session.IdleTTLMin)*time.Minute, logger).
		WithMaxSessions(cfg.Session.MaxSessions)

	a := &app{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		flags:    flags,
		conn:     conn,
		sessions: sessions,
		services: chiTransport.Services{
			Search:     searchuc.New(lookup, cache, history, conn, logger),
			Cache:      cache,
			Sessions:   sessions,
			Jobs:       jobuc.New(entity.New[domjob.Job](store, entity.CollectionJobs)),
			Garage:     garageuc.New(entity.New[vehicle.Garaged](store, entity.CollectionVehicles)),
			SavedParts: savedpartsuc.New(entity.New[part.Saved](store, entity.CollectionSavedParts)),
			History:    historyuc.New(historyRepo),
			Affiliate: affiliateuc.New(store, domaff.IDs{
				Amazon:      cfg.Affiliate.Amazon,
				EBay:        cfg.Affiliate.EBay,
				AutoZone:    cfg.Affiliate.AutoZone,
				AdvanceAuto: cfg.Affiliate.AdvanceAuto,
				CarID:       cfg.Affiliate.CarID,
			}),
			Usage:        usageuc.New(budgetReader),
			Health:       healthuc.New(store, base, conn),
			Connectivity: conn,
		},
	}
	return a, nil
}

// close waits for background history writes and releases the store.
func (a *app) close() {
	a.services.Search.Wait()
	a.store.Close()
}

// openOneShot builds the app for a single CLI invocation with a quiet stderr logger.
func openOneShot(ctx context.Context, opts *rootOptions) (*app, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	logger, err := logpkg.NewCLILogger(opts.verbose)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return newApp(ctx, cfg, logger)
}
