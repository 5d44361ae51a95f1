package partpilot

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	domaff "github.com/kailas-cloud/partpilot/internal/domain/affiliate"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver     string // "sqlite", "valkey" or "redis"
	addrs      []string
	password   string
	sqlitePath string

	lookup        Lookup
	openAIKey     string
	openAIModel   string
	lookupTimeout time.Duration

	affiliate  domaff.IDs
	cacheSize  int
	offline    bool
	probeEvery time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithSQLite stores everything in a local SQLite file. ":memory:" keeps it in RAM.
func WithSQLite(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "sqlite"
		c.sqlitePath = path
	})
}

// WithValkey configures the client to connect to a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithLookup sets a custom lookup provider. It takes precedence over WithOpenAI.
func WithLookup(l Lookup) Option {
	return optionFunc(func(c *clientConfig) {
		c.lookup = l
	})
}

// WithOpenAI uses the bundled OpenAI-compatible lookup provider.
// An empty model defaults to gpt-4o-mini.
func WithOpenAI(apiKey, model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.openAIKey = apiKey
		c.openAIModel = model
	})
}

// WithLookupTimeout bounds one lookup call. Default: 60s.
func WithLookupTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.lookupTimeout = d
	})
}

// WithAffiliateIDs tags purchase links in search results with partner IDs.
func WithAffiliateIDs(amazon, ebay, autozone, advanceAuto, carid string) Option {
	return optionFunc(func(c *clientConfig) {
		c.affiliate = domaff.IDs{
			Amazon:      amazon,
			EBay:        ebay,
			AutoZone:    autozone,
			AdvanceAuto: advanceAuto,
			CarID:       carid,
		}
	})
}

// WithCacheSize bounds the offline cache. Default: 10 searches.
func WithCacheSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheSize = n
	})
}

// WithOffline starts the client in offline mode.
func WithOffline() Option {
	return optionFunc(func(c *clientConfig) {
		c.offline = true
	})
}

// WithConnectivityProbe probes the lookup provider every interval and goes
// offline while it is unreachable. Requires a Lookup implementing HealthChecker.
func WithConnectivityProbe(every time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.probeEvery = every
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
