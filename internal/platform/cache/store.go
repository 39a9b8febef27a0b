package cache

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// Snapshot is an immutable capture of a loaded value set.
type Snapshot[T any] struct {
	Items      []T
	CapturedAt time.Time
}

// Age reports how old the snapshot is at now.
func (s *Snapshot[T]) Age(now time.Time) time.Duration {
	return now.Sub(s.CapturedAt)
}

// Loader fetches a full replacement item set.
type Loader[T any] func(ctx context.Context) ([]T, error)

// PartialLoadError is returned by Load when the loader failed after producing
// some items. The items are handed back but never stored.
type PartialLoadError[T any] struct {
	Items []T
	Err   error
}

func (e *PartialLoadError[T]) Error() string {
	return fmt.Sprintf("partial load of %d items: %v", len(e.Items), e.Err)
}

func (e *PartialLoadError[T]) Unwrap() error {
	return e.Err
}

// SnapshotStore keeps one snapshot that is replaced wholesale once it is older
// than the TTL. Readers always observe a complete snapshot. Concurrent
// refreshes are coalesced into one loader call.
type SnapshotStore[T any] struct {
	current atomic.Pointer[Snapshot[T]]
	ttl     time.Duration
	flight  singleflight.Group
	now     func() time.Time

	onRefresh func(items int, took time.Duration)
}

type Option[T any] func(*SnapshotStore[T])

// WithClock overrides the time source.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(s *SnapshotStore[T]) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRefreshHook is called after every successful refresh.
func WithRefreshHook[T any](hook func(items int, took time.Duration)) Option[T] {
	return func(s *SnapshotStore[T]) {
		s.onRefresh = hook
	}
}

func NewSnapshotStore[T any](ttl time.Duration, opts ...Option[T]) *SnapshotStore[T] {
	s := &SnapshotStore[T]{
		ttl: ttl,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current returns the held snapshot regardless of freshness.
func (s *SnapshotStore[T]) Current() (*Snapshot[T], bool) {
	snap := s.current.Load()
	return snap, snap != nil
}

func (s *SnapshotStore[T]) fresh(snap *Snapshot[T]) bool {
	if snap == nil {
		return false
	}
	if s.ttl <= 0 {
		return true
	}
	return snap.Age(s.now()) < s.ttl
}

// Load returns the current snapshot while it is fresh, otherwise refreshes it
// through loader. A failed refresh leaves the previous snapshot in place and
// the next Load tries again. The loader runs detached from ctx cancellation
// because its result is shared by every coalesced caller.
func (s *SnapshotStore[T]) Load(ctx context.Context, loader Loader[T]) (*Snapshot[T], error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}

	if snap := s.current.Load(); s.fresh(snap) {
		return snap, nil
	}

	out, err, _ := s.flight.Do("snapshot", func() (any, error) {
		if snap := s.current.Load(); s.fresh(snap) {
			return snap, nil
		}

		started := s.now()
		items, loadErr := loader(context.WithoutCancel(ctx))
		if loadErr != nil {
			if len(items) > 0 {
				return nil, &PartialLoadError[T]{Items: items, Err: loadErr}
			}
			return nil, loadErr
		}

		snap := &Snapshot[T]{
			Items:      items,
			CapturedAt: s.now(),
		}
		s.current.Store(snap)
		if s.onRefresh != nil {
			s.onRefresh(len(items), snap.CapturedAt.Sub(started))
		}
		return snap, nil
	})
	if err != nil {
		return nil, err
	}

	snap, ok := out.(*Snapshot[T])
	if !ok {
		return nil, fmt.Errorf("unexpected snapshot type %T", out)
	}
	return snap, nil
}

// Invalidate drops the held snapshot so the next Load refreshes.
func (s *SnapshotStore[T]) Invalidate() {
	s.current.Store(nil)
}
