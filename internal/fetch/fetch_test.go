package fetch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"doctama-backoffice/internal/model"
)

type stubSource struct {
	orders      []model.Order
	products    []model.Product
	users       []model.User
	ordersErr   error
	productsErr error
	usersErr    error
}

func (s *stubSource) ListOrders(context.Context) ([]model.Order, error) {
	return s.orders, s.ordersErr
}

func (s *stubSource) ListProducts(context.Context) ([]model.Product, error) {
	return s.products, s.productsErr
}

func (s *stubSource) ListUsers(context.Context) ([]model.User, error) {
	return s.users, s.usersErr
}

func TestSnapshotAllHealthy(t *testing.T) {
	source := &stubSource{
		orders:   []model.Order{{ID: "o1"}},
		products: []model.Product{{ID: "p1"}},
		users:    []model.User{{ID: "u1"}},
	}

	snap := NewFetcher(source, zap.NewNop()).Snapshot(context.Background())

	assert.True(t, snap.Complete())
	assert.Len(t, snap.Orders, 1)
	assert.Len(t, snap.Products, 1)
	assert.Len(t, snap.Users, 1)
}

func TestSnapshotDegradesFailedSubsets(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name         string
		source       *stubSource
		wantDegraded []string
	}{
		{
			name: "users only",
			source: &stubSource{
				orders:   []model.Order{{ID: "o1"}},
				products: []model.Product{{ID: "p1"}},
				usersErr: boom,
			},
			wantDegraded: []string{"users"},
		},
		{
			name: "orders and products",
			source: &stubSource{
				users:       []model.User{{ID: "u1"}},
				ordersErr:   boom,
				productsErr: boom,
			},
			wantDegraded: []string{"orders", "products"},
		},
		{
			name: "everything",
			source: &stubSource{
				ordersErr:   boom,
				productsErr: boom,
				usersErr:    boom,
			},
			wantDegraded: []string{"orders", "products", "users"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := NewFetcher(tt.source, zap.NewNop()).Snapshot(context.Background())

			assert.Equal(t, tt.wantDegraded, snap.Degraded)
			assert.False(t, snap.Complete())
			if assert.Len(t, snap.Failures, len(tt.wantDegraded)) {
				for i, failure := range snap.Failures {
					assert.Equal(t, tt.wantDegraded[i], failure.Collection)
					assert.ErrorIs(t, failure, boom)
				}
			}
			// degraded collections are empty, never nil
			assert.NotNil(t, snap.Orders)
			assert.NotNil(t, snap.Products)
			assert.NotNil(t, snap.Users)
		})
	}
}

func TestSnapshotHealthySubsetsStayAccurate(t *testing.T) {
	source := &stubSource{
		orders:   []model.Order{{ID: "o1"}, {ID: "o2"}},
		products: []model.Product{{ID: "p1"}},
		usersErr: errors.New("users service down"),
	}

	snap := NewFetcher(source, zap.NewNop()).Snapshot(context.Background())

	assert.Len(t, snap.Orders, 2)
	assert.Len(t, snap.Products, 1)
	assert.Empty(t, snap.Users)
}
