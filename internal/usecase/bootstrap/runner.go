package bootstrap

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/searchgate/internal/domain"
	"github.com/kailas-cloud/searchgate/internal/domain/activity"
	domdoc "github.com/kailas-cloud/searchgate/internal/domain/document"
)

// Config holds the startup parameters.
type Config struct {
	Index      string
	MaxRetries int
	// AttemptTimeout bounds each dial+ping attempt; 0 disables it.
	AttemptTimeout time.Duration
	Backoff        time.Duration
	Seed           bool
}

// ConnectError is returned when every connection attempt failed.
type ConnectError struct {
	Attempts int
	Err      error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("search engine unreachable after %d attempts: %v", e.Attempts, e.Err)
}

// Unwrap exposes both domain.ErrConnection and the last attempt's error.
func (e *ConnectError) Unwrap() []error {
	return []error{domain.ErrConnection, e.Err}
}

// Runner drives DISCONNECTED -> CONNECTING -> CONNECTED -> INDEX_READY, or FAILED.
type Runner struct {
	cfg      Config
	activity ActivityRecorder
	logger   *zap.Logger
	state    atomic.Int32
	sleep    func(ctx context.Context, d time.Duration) error
}

// New creates a Runner in the Disconnected state.
func New(cfg Config, activity ActivityRecorder, logger *zap.Logger) *Runner {
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{cfg: cfg, activity: activity, logger: logger, sleep: sleepCtx}
}

// State returns the current phase.
func (r *Runner) State() State {
	return State(r.state.Load())
}

func (r *Runner) setState(s State) {
	r.state.Store(int32(s))
}

// Connect dials until a client answers a ping, with a fixed backoff between
// attempts. A client that dialed but failed the ping is closed before retrying.
func Connect[C Conn](ctx context.Context, r *Runner, dial func(context.Context) (C, error)) (C, error) {
	var zero C
	r.setState(Connecting)

	var (
		lastErr  error
		attempts int
	)
	for attempt := 1; attempt <= r.cfg.MaxRetries; attempt++ {
		attempts = attempt
		c, err := dialOnce(ctx, r.cfg.AttemptTimeout, dial)
		if err == nil {
			r.setState(Connected)
			r.logger.Info("connected to search engine", zap.Int("attempt", attempt))
			r.activity.Record(activity.ActionInfo, "Successfully connected to search engine")
			return c, nil
		}
		lastErr = err
		r.logger.Warn("search engine connection attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", r.cfg.MaxRetries),
			zap.Error(err),
		)

		if attempt == r.cfg.MaxRetries {
			break
		}
		if err := r.sleep(ctx, r.cfg.Backoff); err != nil {
			lastErr = err
			break
		}
	}

	r.setState(Failed)
	cerr := &ConnectError{Attempts: attempts, Err: lastErr}
	r.activity.Record(activity.ActionError, "Search engine connection failed: "+lastErr.Error())
	return zero, cerr
}

func dialOnce[C Conn](ctx context.Context, timeout time.Duration, dial func(context.Context) (C, error)) (C, error) {
	var zero C
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	c, err := dial(ctx)
	if err != nil {
		return zero, fmt.Errorf("dial: %w", err)
	}
	if err := c.Ping(ctx); err != nil {
		c.Close()
		return zero, fmt.Errorf("ping: %w", err)
	}
	return c, nil
}

// PrepareIndex ensures the index exists and seeds it when this call created it.
// An existing index is left untouched, so restarts never duplicate the seed documents.
func (r *Runner) PrepareIndex(ctx context.Context, indexes IndexRepository, docs DocumentRepository) error {
	created, err := indexes.EnsureIndex(ctx, r.cfg.Index)
	if err != nil {
		return r.fail(fmt.Errorf("ensure index %s: %w: %w", r.cfg.Index, domain.ErrIndex, err))
	}

	if !created {
		r.logger.Info("index exists, skipping seed", zap.String("index", r.cfg.Index))
		r.setState(IndexReady)
		return nil
	}

	r.logger.Info("created index", zap.String("index", r.cfg.Index))
	r.activity.Record(activity.ActionInfo, "Created index "+r.cfg.Index)

	if r.cfg.Seed {
		if err := r.seed(ctx, docs); err != nil {
			return r.fail(fmt.Errorf("seed index %s: %w: %w", r.cfg.Index, domain.ErrIndex, err))
		}
		r.logger.Info("inserted sample documents", zap.Int("count", len(SeedTexts)))
		r.activity.Record(activity.ActionInfo, "Inserted initial sample documents")
	}

	r.setState(IndexReady)
	return nil
}

func (r *Runner) seed(ctx context.Context, docs DocumentRepository) error {
	for i, text := range SeedTexts {
		doc, err := domdoc.New(strconv.Itoa(i+1), text)
		if err != nil {
			return err
		}
		if _, err := docs.Index(ctx, doc); err != nil {
			return fmt.Errorf("document %s: %w", doc.ID(), err)
		}
	}
	return nil
}

func (r *Runner) fail(err error) error {
	r.setState(Failed)
	r.logger.Error("index initialization failed", zap.Error(err))
	r.activity.Record(activity.ActionError, "Index initialization failed: "+err.Error())
	return err
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
