// Package test holds shared stubs and fixtures used across package tests.
package test

import (
	"context"
	"sync"

	"github.com/polkiloo/warungpos/internal/wire"
)

// InsertCall records one Insert invocation on the remote stub.
type InsertCall struct {
	Collection string
	Row        any
}

// PatchCall records one Patch invocation on the remote stub.
type PatchCall struct {
	Collection string
	ID         string
	Fields     map[string]any
}

// DeleteCall records one Delete invocation on the remote stub.
type DeleteCall struct {
	Collection string
	ID         string
}

// RemoteClientStub provides controllable remote data service behaviour and
// records every write for assertions. Safe for concurrent use.
type RemoteClientStub struct {
	FetchAllFn func(context.Context) (*wire.Bundle, error)
	InsertFn   func(context.Context, string, any) (string, error)
	PatchFn    func(context.Context, string, string, map[string]any) error
	DeleteFn   func(context.Context, string, string) error

	mu      sync.Mutex
	inserts []InsertCall
	patches []PatchCall
	deletes []DeleteCall
}

// FetchAll delegates to the override or returns an empty bundle.
func (s *RemoteClientStub) FetchAll(ctx context.Context) (*wire.Bundle, error) {
	if s.FetchAllFn != nil {
		return s.FetchAllFn(ctx)
	}
	return &wire.Bundle{}, nil
}

// Insert records the call and delegates to the override; by default it
// echoes back the local behaviour of accepting the row as-is.
func (s *RemoteClientStub) Insert(ctx context.Context, collection string, row any) (string, error) {
	s.mu.Lock()
	s.inserts = append(s.inserts, InsertCall{Collection: collection, Row: row})
	s.mu.Unlock()
	if s.InsertFn != nil {
		return s.InsertFn(ctx, collection, row)
	}
	if r, ok := row.(wire.OrderRow); ok {
		return r.ID, nil
	}
	return "", nil
}

// Patch records the call and delegates to the override or succeeds.
func (s *RemoteClientStub) Patch(ctx context.Context, collection, id string, fields map[string]any) error {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	s.mu.Lock()
	s.patches = append(s.patches, PatchCall{Collection: collection, ID: id, Fields: copied})
	s.mu.Unlock()
	if s.PatchFn != nil {
		return s.PatchFn(ctx, collection, id, fields)
	}
	return nil
}

// Delete records the call and delegates to the override or succeeds.
func (s *RemoteClientStub) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	s.deletes = append(s.deletes, DeleteCall{Collection: collection, ID: id})
	s.mu.Unlock()
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, collection, id)
	}
	return nil
}

// Inserts returns a copy of the recorded Insert calls.
func (s *RemoteClientStub) Inserts() []InsertCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]InsertCall(nil), s.inserts...)
}

// Patches returns a copy of the recorded Patch calls.
func (s *RemoteClientStub) Patches() []PatchCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]PatchCall(nil), s.patches...)
}

// Deletes returns a copy of the recorded Delete calls.
func (s *RemoteClientStub) Deletes() []DeleteCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]DeleteCall(nil), s.deletes...)
}
