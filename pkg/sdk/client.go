package partpilot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/partpilot/internal/connectivity"
	"github.com/kailas-cloud/partpilot/internal/db"
	dbRedis "github.com/kailas-cloud/partpilot/internal/db/redis"
	dbSqlite "github.com/kailas-cloud/partpilot/internal/db/sqlite"
	domaff "github.com/kailas-cloud/partpilot/internal/domain/affiliate"
	"github.com/kailas-cloud/partpilot/internal/domain/cart"
	domjob "github.com/kailas-cloud/partpilot/internal/domain/job"
	"github.com/kailas-cloud/partpilot/internal/domain/part"
	domsearch "github.com/kailas-cloud/partpilot/internal/domain/search"
	"github.com/kailas-cloud/partpilot/internal/domain/vehicle"
	"github.com/kailas-cloud/partpilot/internal/repository/entity"
	"github.com/kailas-cloud/partpilot/internal/repository/searchcache"
	openaiLookup "github.com/kailas-cloud/partpilot/internal/transport/openai"
	healthuc "github.com/kailas-cloud/partpilot/internal/usecase/health"
	jobuc "github.com/kailas-cloud/partpilot/internal/usecase/job"
	lookupuc "github.com/kailas-cloud/partpilot/internal/usecase/lookup"
	searchuc "github.com/kailas-cloud/partpilot/internal/usecase/search"
	usageuc "github.com/kailas-cloud/partpilot/internal/usecase/usage"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultLookupTimeout    = 60 * time.Second
	defaultModel            = "gpt-4o-mini"
)

// Internal interfaces for substitution in tests.
type searchUseCase interface {
	Search(ctx context.Context, tr *searchuc.Tracker, text string, v *vehicle.Vehicle) (domsearch.Outcome, error)
	Wait()
}

type cacheUseCase interface {
	Entries(ctx context.Context) ([]domsearch.CachedEntry, error)
	Clear(ctx context.Context) error
}

type jobUseCase interface {
	Save(ctx context.Context, name, vehicleInfo string, parts []part.Part) (domjob.Job, error)
	List(ctx context.Context) ([]domjob.Job, error)
	Get(ctx context.Context, id string) (domjob.Job, error)
	SetStatus(ctx context.Context, id string, status domjob.Status) (domjob.Job, error)
	SetPartPurchased(ctx context.Context, id, oemPartNumber string, purchased bool) (domjob.Job, error)
	Delete(ctx context.Context, id string) error
}

type connectivitySwitch interface {
	Online() bool
	Force(state *bool)
}

// Client is the PartPilot SDK entry point. It is safe for concurrent use;
// overlapping searches resolve so that the most recent one is displayed.
type Client struct {
	store     db.Store
	searchSvc searchUseCase
	cacheSvc  cacheUseCase
	jobSvc    jobUseCase
	healthSvc healthUseCase
	usageSvc  usageUseCase
	conn      connectivitySwitch
	tracker   *searchuc.Tracker
	cart      *cart.Cart
	affiliate domaff.IDs
	stopProbe context.CancelFunc
	obs       *observer
}

// New creates a Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("partpilot: storage required (use WithSQLite, WithValkey or WithRedis)")
	}
	if cfg.lookup == nil && cfg.openAIKey == "" {
		return nil, errors.New("partpilot: lookup provider required (use WithOpenAI or WithLookup)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("partpilot: database not ready: %w", err)
	}

	return wireClient(store, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "sqlite":
		s, err := dbSqlite.NewStore(cfg.sqlitePath)
		if err != nil {
			return nil, fmt.Errorf("partpilot: create sqlite store: %w", err)
		}
		return s, nil
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("partpilot: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("partpilot: unknown driver %q", cfg.driver)
	}
}

func buildLookup(cfg *clientConfig) Lookup {
	if cfg.lookup != nil {
		return cfg.lookup
	}
	model := cfg.openAIModel
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.lookupTimeout
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}
	return openaiLookup.NewLookup(&openaiLookup.Config{
		APIKey:   cfg.openAIKey,
		Model:    model,
		Provider: "openai",
		Timeout:  timeout,
		Logger:   zap.NewNop(),
	})
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	logger := zap.NewNop()
	base := buildLookup(cfg)

	// nil interfaces, not typed nil pointers, when the lookup cannot be probed
	var (
		prober  connectivity.Prober
		checker healthuc.LookupChecker
	)
	if hc, ok := base.(HealthChecker); ok {
		prober, checker = hc, hc
	}

	conn := connectivity.New(prober, cfg.probeEvery, logger)
	if cfg.offline {
		online := false
		conn.Force(&online)
	}

	// no budget in the SDK: unlimited mode
	lookup := lookupuc.NewInstrumented(base, "sdk", "", nil, logger)
	cache := searchcache.New(store, "", cfg.cacheSize, nil, logger)
	history := entity.New[domsearch.HistoryRecord](store, entity.CollectionHistory)

	c := &Client{
		store:     store,
		searchSvc: searchuc.New(lookup, cache, history, conn, logger),
		cacheSvc:  cache,
		jobSvc:    jobuc.New(entity.New[domjob.Job](store, entity.CollectionJobs)),
		healthSvc: healthuc.New(store, checker, conn),
		usageSvc:  usageuc.New(nil),
		conn:      conn,
		tracker:   searchuc.NewTracker(),
		cart:      cart.New(),
		affiliate: cfg.affiliate,
		obs:       obs,
	}

	if prober != nil && cfg.probeEvery > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		c.stopProbe = cancel
		go conn.Run(ctx)
	}
	return c
}

// Close stops probing, waits for background history writes and releases the store.
func (c *Client) Close() {
	if c.stopProbe != nil {
		c.stopProbe()
	}
	if c.searchSvc != nil {
		c.searchSvc.Wait()
	}
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search looks up parts for query. v may be nil; an incomplete vehicle is
// left out of the lookup prompt but still recorded in search history.
// Offline, only a cached query matches; otherwise ErrOfflineNoCache is returned.
func (c *Client) Search(ctx context.Context, query string, v *Vehicle) (res SearchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	res, err = c.searchSvc.Search(ctx, c.tracker, query, v)
	if err != nil {
		return res, fmt.Errorf("search: %w", err)
	}
	res.Results = c.affiliate.TagParts(res.Results)
	return res, nil
}

// Results returns the currently displayed results: those of the most
// recently started search that has finished.
func (c *Client) Results() []Part {
	return c.affiliate.TagParts(c.tracker.Results())
}

// SetOffline forces offline (true) or online (false) mode.
func (c *Client) SetOffline(offline bool) {
	online := !offline
	c.conn.Force(&online)
}

// Online reports whether searches go to the lookup provider.
func (c *Client) Online() bool {
	return c.conn.Online()
}

// Cart returns the session's parts list.
func (c *Client) Cart() *Cart {
	return c.cart
}

// CachedSearches lists the offline cache, most recent first.
func (c *Client) CachedSearches(ctx context.Context) (entries []CachedSearch, err error) {
	start := time.Now()
	defer func() { c.obs.observe("cache_list", start, err) }()

	entries, err = c.cacheSvc.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cache: %w", err)
	}
	return entries, nil
}

// ClearCache empties the offline cache.
func (c *Client) ClearCache(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("cache_clear", start, err) }()

	if err = c.cacheSvc.Clear(ctx); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

// Jobs returns the repair job service.
func (c *Client) Jobs() *JobService {
	return &JobService{svc: c.jobSvc, cart: c.cart, tracker: c.tracker, obs: c.obs}
}
