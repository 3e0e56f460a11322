package searchgate

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

const (
	driverRedis = "redis"
	driverBleve = "bleve"
)

type clientConfig struct {
	driver   string // "redis" or "bleve"
	addr     string
	password string
	path     string // bleve; empty = in-memory

	index      string
	timeout    time.Duration
	maxRetries int
	backoff    time.Duration
	noSeed     bool

	eventLogPath string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

func defaultConfig() *clientConfig {
	return &clientConfig{
		index:      "myindex",
		timeout:    30 * time.Second,
		maxRetries: 3,
		backoff:    2 * time.Second,
	}
}

// WithRedis connects to a Redis 8 (or Redis Stack) instance with the search module.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverRedis
		c.addr = addr
		c.password = password
	})
}

// WithBleve runs an embedded bleve engine. An empty path keeps indexes in memory.
func WithBleve(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverBleve
		c.path = path
	})
}

// WithIndex sets the index name. Default: "myindex".
func WithIndex(name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.index = name
	})
}

// WithTimeout bounds every engine call and each connection attempt. Default: 30s.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithRetry sets how many connection attempts are made and the wait between them.
// Defaults: 3 attempts, 2s apart.
func WithRetry(maxAttempts int, backoff time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxRetries = maxAttempts
		c.backoff = backoff
	})
}

// WithoutSeed skips the sample documents on index creation.
func WithoutSeed() Option {
	return optionFunc(func(c *clientConfig) {
		c.noSeed = true
	})
}

// WithEventLog appends activity entries (connects, inserts, searches, errors)
// to a JSON-lines file. Disabled by default.
func WithEventLog(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.eventLogPath = path
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (call counts by outcome and latency)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
