package searchgate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/searchgate/internal/db"
	dbBleve "github.com/kailas-cloud/searchgate/internal/db/bleve"
	dbRedis "github.com/kailas-cloud/searchgate/internal/db/redis"
	domsearch "github.com/kailas-cloud/searchgate/internal/domain/search"
	"github.com/kailas-cloud/searchgate/internal/eventlog"
	documentrepo "github.com/kailas-cloud/searchgate/internal/repository/document"
	indexrepo "github.com/kailas-cloud/searchgate/internal/repository/index"
	searchrepo "github.com/kailas-cloud/searchgate/internal/repository/search"
	"github.com/kailas-cloud/searchgate/internal/usecase/bootstrap"
	documentuc "github.com/kailas-cloud/searchgate/internal/usecase/document"
	healthuc "github.com/kailas-cloud/searchgate/internal/usecase/health"
	searchuc "github.com/kailas-cloud/searchgate/internal/usecase/search"
)

// Hit is a single search result, in engine relevance order.
type Hit struct {
	ID   string
	Text string
}

// Internal interfaces, swapped out in tests.
type insertUseCase interface {
	Insert(ctx context.Context, text string) (string, error)
}

type searchUseCase interface {
	Search(ctx context.Context, query string) ([]domsearch.Hit, error)
}

// Client is the searchgate SDK entry point.
type Client struct {
	engine    db.Engine
	sink      *eventlog.FileSink
	docSvc    insertUseCase
	searchSvc searchUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New connects to the engine, ensures the index exists and seeds it when
// newly created. ctx bounds the whole bootstrap, retries included.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("searchgate: engine required (use WithRedis or WithBleve)")
	}
	if _, err := indexrepo.Definition(cfg.index); err != nil {
		return nil, fmt.Errorf("searchgate: invalid index name %q: %w", cfg.index, err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	var (
		sink     *eventlog.FileSink
		activity eventlog.Recorder = eventlog.Discard{}
	)
	if cfg.eventLogPath != "" {
		sink, err = eventlog.Open(cfg.eventLogPath, eventlog.Options{})
		if err != nil {
			return nil, fmt.Errorf("searchgate: %w", err)
		}
		activity = sink
	}

	runner := bootstrap.New(bootstrap.Config{
		Index:          cfg.index,
		MaxRetries:     cfg.maxRetries,
		AttemptTimeout: cfg.timeout,
		Backoff:        cfg.backoff,
		Seed:           !cfg.noSeed,
	}, activity, zap.NewNop())

	engine, err := bootstrap.Connect(ctx, runner, func(context.Context) (db.Engine, error) {
		return createEngine(cfg)
	})
	if err != nil {
		closeSink(sink)
		return nil, fmt.Errorf("searchgate: %w", err)
	}

	c := wireClient(engine, sink, activity, cfg.index, obs)
	if err := runner.PrepareIndex(ctx, indexrepo.New(engine), documentrepo.New(engine, cfg.index)); err != nil {
		c.Close()
		return nil, fmt.Errorf("searchgate: %w", err)
	}
	return c, nil
}

func createEngine(cfg *clientConfig) (db.Engine, error) {
	switch cfg.driver {
	case driverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    []string{cfg.addr},
			Password: cfg.password,
			Timeout:  cfg.timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("create redis store: %w", err)
		}
		return s, nil
	case driverBleve:
		s, err := dbBleve.NewStore(dbBleve.Config{
			Path:    cfg.path,
			Timeout: cfg.timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("create bleve store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown driver %q", cfg.driver)
	}
}

func wireClient(
	engine db.Engine, sink *eventlog.FileSink, activity eventlog.Recorder, index string, obs *observer,
) *Client {
	// Pass a nil interface, not a typed nil pointer, when no event log is open.
	var logCheck healthuc.LogChecker
	if sink != nil {
		logCheck = sink
	}

	return &Client{
		engine:    engine,
		sink:      sink,
		docSvc:    documentuc.New(documentrepo.New(engine, index), activity),
		searchSvc: searchuc.New(searchrepo.New(engine, index), activity),
		healthSvc: healthuc.New(engine, logCheck),
		obs:       obs,
	}
}

// Close releases the engine and the event log.
func (c *Client) Close() {
	if c.engine != nil {
		c.engine.Close()
	}
	closeSink(c.sink)
}

func closeSink(s *eventlog.FileSink) {
	if s != nil {
		_ = s.Close()
	}
}

// Ping checks engine connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe(opPing, start, err) }()

	if err = c.engine.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Insert indexes text under a generated id and returns the id.
// The document is searchable once Insert returns.
func (c *Client) Insert(ctx context.Context, text string) (id string, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opInsert, start, err) }()

	return c.docSvc.Insert(ctx, text)
}

// Search returns up to 10 hits for the query; no match yields an empty slice.
func (c *Client) Search(ctx context.Context, query string) (hits []Hit, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opSearch, start, err) }()

	found, err := c.searchSvc.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	hits = make([]Hit, len(found))
	for i, h := range found {
		hits[i] = Hit{ID: h.ID, Text: h.Text}
	}
	return hits, nil
}
