package fetch

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"doctama-backoffice/internal/model"
)

// Source is the slice of the remote API the dashboard aggregates over.
// The gateway client satisfies it.
type Source interface {
	ListOrders(ctx context.Context) ([]model.Order, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

// PartialDataError records a collection fetch that failed and was
// substituted with an empty slice. It is carried on the snapshot for
// callers that need the cause, not returned: a degraded snapshot is
// still a usable snapshot.
type PartialDataError struct {
	Collection string
	Err        error
}

func (e *PartialDataError) Error() string {
	return "partial data: " + e.Collection + " fetch failed: " + e.Err.Error()
}

func (e *PartialDataError) Unwrap() error { return e.Err }

// Snapshot is one consistent-enough view of the three collections. Every
// aggregation run recomputes from a fresh snapshot; nothing derived from
// an older one is ever merged in.
type Snapshot struct {
	Orders   []model.Order
	Products []model.Product
	Users    []model.User

	// Degraded names the collections whose fetch failed and came back
	// empty. Screens surface it as a banner instead of refusing to render.
	Degraded []string

	// Failures holds the cause behind each Degraded entry, same order.
	Failures []*PartialDataError
}

func (s *Snapshot) Complete() bool { return len(s.Degraded) == 0 }

type Fetcher struct {
	source Source
	logger *zap.Logger
}

func NewFetcher(source Source, logger *zap.Logger) *Fetcher {
	return &Fetcher{source: source, logger: logger}
}

// Snapshot fires the three collection fetches concurrently and waits for
// all of them to settle. A failed fetch degrades to an empty collection;
// the snapshot itself never fails.
func (f *Fetcher) Snapshot(ctx context.Context) *Snapshot {
	snap := &Snapshot{
		Orders:   []model.Order{},
		Products: []model.Product{},
		Users:    []model.User{},
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	degrade := func(collection string, err error) {
		f.logger.Warn("collection fetch failed, degrading to empty",
			zap.String("collection", collection),
			zap.Error(err),
		)
		mu.Lock()
		snap.Degraded = append(snap.Degraded, collection)
		snap.Failures = append(snap.Failures, &PartialDataError{Collection: collection, Err: err})
		mu.Unlock()
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		orders, err := f.source.ListOrders(ctx)
		if err != nil {
			degrade("orders", err)
			return
		}
		snap.Orders = orders
	}()
	go func() {
		defer wg.Done()
		products, err := f.source.ListProducts(ctx)
		if err != nil {
			degrade("products", err)
			return
		}
		snap.Products = products
	}()
	go func() {
		defer wg.Done()
		users, err := f.source.ListUsers(ctx)
		if err != nil {
			degrade("users", err)
			return
		}
		snap.Users = users
	}()
	wg.Wait()

	sort.Strings(snap.Degraded)
	sort.Slice(snap.Failures, func(i, j int) bool {
		return snap.Failures[i].Collection < snap.Failures[j].Collection
	})
	return snap
}
