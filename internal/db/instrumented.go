package db

import (
	"context"
	"errors"
	"time"
)

// Observer receives the outcome of every engine command.
type Observer interface {
	ObserveEngine(op string, d time.Duration, err error)
}

// Instrumented decorates an Engine, reporting each call to an Observer.
type Instrumented struct {
	next Engine
	obs  Observer
}

// NewInstrumented wraps e. A nil observer returns e unchanged.
func NewInstrumented(e Engine, obs Observer) Engine {
	if obs == nil {
		return e
	}
	return &Instrumented{next: e, obs: obs}
}

func (i *Instrumented) observe(op string, start time.Time, err error) {
	i.obs.ObserveEngine(op, time.Since(start), err)
}

// Ping implements Pinger.
func (i *Instrumented) Ping(ctx context.Context) (err error) {
	defer func(start time.Time) { i.observe(OpPing, start, err) }(time.Now())
	return i.next.Ping(ctx)
}

// CreateIndex implements IndexManager. ErrIndexExists counts as success.
func (i *Instrumented) CreateIndex(ctx context.Context, def *IndexDefinition) error {
	start := time.Now()
	err := i.next.CreateIndex(ctx, def)
	observed := err
	if errors.Is(err, ErrIndexExists) {
		observed = nil
	}
	i.observe(OpCreateIndex, start, observed)
	return err
}

// IndexExists implements IndexManager.
func (i *Instrumented) IndexExists(ctx context.Context, name string) (ok bool, err error) {
	defer func(start time.Time) { i.observe(OpIndexInfo, start, err) }(time.Now())
	return i.next.IndexExists(ctx, name)
}

// PutDocument implements DocumentWriter.
func (i *Instrumented) PutDocument(ctx context.Context, req *WriteRequest) (id string, err error) {
	defer func(start time.Time) { i.observe(OpHSet, start, err) }(time.Now())
	return i.next.PutDocument(ctx, req)
}

// SearchText implements Searcher.
func (i *Instrumented) SearchText(ctx context.Context, q *TextQuery) (res *SearchResult, err error) {
	defer func(start time.Time) { i.observe(OpSearch, start, err) }(time.Now())
	return i.next.SearchText(ctx, q)
}

// Close implements Engine.
func (i *Instrumented) Close() {
	i.next.Close()
}
