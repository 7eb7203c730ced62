package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"doctama-backoffice/internal/dto"
	"doctama-backoffice/internal/gateway"
	"doctama-backoffice/internal/model"
)

type stubCustomerGateway struct {
	users     []model.User
	orders    []model.Order
	usersErr  error
	ordersErr error
	deleted   []string
	toggled   []string
	updated   map[string]gateway.UpdateUserRequest
}

func (s *stubCustomerGateway) ListUsers(context.Context) ([]model.User, error) {
	return s.users, s.usersErr
}

func (s *stubCustomerGateway) ListOrders(context.Context) ([]model.Order, error) {
	return s.orders, s.ordersErr
}

func (s *stubCustomerGateway) GetUser(ctx context.Context, id string) (*model.User, error) {
	for i := range s.users {
		if s.users[i].ID == id {
			return &s.users[i], nil
		}
	}
	return nil, gateway.ErrNotFound
}

func (s *stubCustomerGateway) UpdateUser(ctx context.Context, id string, req gateway.UpdateUserRequest) (*model.User, error) {
	if s.updated == nil {
		s.updated = make(map[string]gateway.UpdateUserRequest)
	}
	s.updated[id] = req
	return &model.User{ID: id, Email: req.Email, FullName: req.FullName}, nil
}

func (s *stubCustomerGateway) DeleteUser(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubCustomerGateway) ToggleUserStatus(ctx context.Context, id string) (*model.User, error) {
	s.toggled = append(s.toggled, id)
	return &model.User{ID: id}, nil
}

func TestCustomerListJoinsStats(t *testing.T) {
	gw := &stubCustomerGateway{
		users: []model.User{
			{ID: "u1", FullName: "Maria Santos", IsActive: true},
			{ID: "u2", FullName: "Jose Cruz", IsActive: true},
		},
		orders: []model.Order{
			{UserID: "u1", TotalAmount: decimal.NewFromInt(100), Status: "delivered"},
			{UserID: "u1", TotalAmount: decimal.NewFromInt(50), Status: "cancelled"},
		},
	}
	svc := NewCustomerService(gw, zap.NewNop())

	page, err := svc.List(context.Background(), dto.ListQuery{})
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	maria := page.Items[0]
	assert.Equal(t, 2, maria.TotalOrders)
	assert.True(t, maria.TotalSpent.Equal(decimal.NewFromInt(150)))
	assert.True(t, maria.AverageOrderValue.Equal(decimal.NewFromInt(75)))
	assert.Equal(t, 1, maria.CancellationCount)
	assert.Equal(t, model.TierBronze, maria.Tier)

	jose := page.Items[1]
	assert.Equal(t, 0, jose.TotalOrders)
	assert.True(t, jose.AverageOrderValue.IsZero())
}

func TestCustomerListFailsWithoutUsers(t *testing.T) {
	gw := &stubCustomerGateway{usersErr: errors.New("users down")}
	svc := NewCustomerService(gw, zap.NewNop())

	_, err := svc.List(context.Background(), dto.ListQuery{})
	assert.Error(t, err)
}

func TestCustomerListDegradesWithoutOrders(t *testing.T) {
	gw := &stubCustomerGateway{
		users:     []model.User{{ID: "u1", FullName: "Maria Santos"}},
		ordersErr: errors.New("orders down"),
	}
	svc := NewCustomerService(gw, zap.NewNop())

	page, err := svc.List(context.Background(), dto.ListQuery{})
	require.NoError(t, err)

	assert.Equal(t, []string{"orders"}, page.Degraded)
	require.Len(t, page.Items, 1)
	assert.Zero(t, page.Items[0].TotalOrders)
	assert.True(t, page.Items[0].TotalSpent.IsZero())
}

func TestCustomerListFiltersAndPages(t *testing.T) {
	gw := &stubCustomerGateway{}
	for i := 0; i < 25; i++ {
		user := model.User{ID: string(rune('a' + i)), FullName: "Customer", IsActive: i < 15}
		gw.users = append(gw.users, user)
	}
	svc := NewCustomerService(gw, zap.NewNop())

	page1, err := svc.List(context.Background(), dto.ListQuery{Status: "active", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, page1.Items, 10)
	assert.Equal(t, 15, page1.TotalItems)
	assert.True(t, page1.HasNext)

	page2, err := svc.List(context.Background(), dto.ListQuery{Status: "active", Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, page2.Items, 5)
	assert.False(t, page2.HasNext)

	page3, err := svc.List(context.Background(), dto.ListQuery{Status: "active", Page: 3, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, page3.Items)
	assert.False(t, page3.HasNext)
}

func TestCustomerListFiltersByRole(t *testing.T) {
	gw := &stubCustomerGateway{
		users: []model.User{
			{ID: "u1", Roles: model.Roles{"Admin"}},
			{ID: "u2", Roles: model.Roles{"customer"}},
		},
	}
	svc := NewCustomerService(gw, zap.NewNop())

	page, err := svc.List(context.Background(), dto.ListQuery{Role: "admin"})
	require.NoError(t, err)

	require.Len(t, page.Items, 1)
	assert.Equal(t, "u1", page.Items[0].ID)
}

func TestCustomerListSortsBySpent(t *testing.T) {
	gw := &stubCustomerGateway{
		users: []model.User{{ID: "u1"}, {ID: "u2"}},
		orders: []model.Order{
			{UserID: "u2", TotalAmount: decimal.NewFromInt(500)},
			{UserID: "u1", TotalAmount: decimal.NewFromInt(100)},
		},
	}
	svc := NewCustomerService(gw, zap.NewNop())

	page, err := svc.List(context.Background(), dto.ListQuery{SortBy: "spent", Order: "desc"})
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	assert.Equal(t, "u2", page.Items[0].ID)
}

func TestCustomerDetailIncludesHistory(t *testing.T) {
	gw := &stubCustomerGateway{
		users: []model.User{{ID: "u1", FullName: "Maria Santos"}},
		orders: []model.Order{
			{ID: "o1", UserID: "u1", TotalAmount: decimal.NewFromInt(1200)},
			{ID: "o2", UserID: "u2", TotalAmount: decimal.NewFromInt(50)},
		},
	}
	svc := NewCustomerService(gw, zap.NewNop())

	detail, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, model.TierSilver, detail.Tier)
	require.Len(t, detail.Orders, 1)
	assert.Equal(t, "o1", detail.Orders[0].ID)
}

func TestCustomerUpdateValidatesRequiredFields(t *testing.T) {
	gw := &stubCustomerGateway{}
	svc := NewCustomerService(gw, zap.NewNop())

	_, err := svc.Update(context.Background(), "u1", gateway.UpdateUserRequest{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "fullName")
	assert.Empty(t, gw.updated)
}

func TestCustomerDeleteAndToggle(t *testing.T) {
	gw := &stubCustomerGateway{users: []model.User{{ID: "u1"}}}
	svc := NewCustomerService(gw, zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), "u1"))
	_, err := svc.ToggleStatus(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, []string{"u1"}, gw.deleted)
	assert.Equal(t, []string{"u1"}, gw.toggled)
}
