package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/shop-admin-service/internal/adapter/cache"
	"github.com/example/shop-admin-service/internal/domain"
	"github.com/example/shop-admin-service/internal/usecase"
)

func TestFilterOrders_All(t *testing.T) {
	mirror := cache.NewSessionMirror()
	mirror.SetOrders(testOrders())

	got := usecase.FilterOrders{Mirror: mirror}.Execute(domain.FilterAll)

	require.Equal(t, testOrders(), got, "All must return the full collection, order preserved")
}

func TestFilterOrders_ByStatus(t *testing.T) {
	mirror := cache.NewSessionMirror()
	mirror.SetOrders(testOrders())
	uc := usecase.FilterOrders{Mirror: mirror}

	tests := []struct {
		status  string
		wantIDs []string
	}{
		{domain.StatusPending, []string{"ord-1", "ord-5"}},
		{domain.StatusDispatch, []string{"ord-2"}},
		{domain.StatusSuccess, []string{"ord-3"}},
		{"no-such-status", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			got := uc.Execute(tt.status)
			ids := make([]string, 0, len(got))
			for _, o := range got {
				ids = append(ids, o.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

// The per-status subsets plus unset-status orders partition the collection.
func TestFilterOrders_PartitionsCollection(t *testing.T) {
	mirror := cache.NewSessionMirror()
	mirror.SetOrders(testOrders())
	uc := usecase.FilterOrders{Mirror: mirror}

	seen := map[string]int{}
	for _, status := range []string{domain.StatusPending, domain.StatusDispatch, domain.StatusSuccess, ""} {
		for _, o := range uc.Execute(status) {
			seen[o.ID]++
		}
	}
	require.Len(t, seen, len(testOrders()))
	for id, n := range seen {
		assert.Equal(t, 1, n, "order %s appeared %d times", id, n)
	}
}

func TestFilterOrders_RederivedAfterMutation(t *testing.T) {
	mirror := cache.NewSessionMirror()
	mirror.SetOrders(testOrders())
	uc := usecase.FilterOrders{Mirror: mirror}

	require.Len(t, uc.Execute(domain.StatusPending), 2)
	mirror.UpdateOrderStatus("ord-5", domain.StatusSuccess)
	require.Len(t, uc.Execute(domain.StatusPending), 1)
}

func TestSetOrderStatus_ConfirmedFirst(t *testing.T) {
	store := &fakeStore{orders: testOrders()}
	mirror := cache.NewSessionMirror()
	mirror.SetOrders(testOrders())
	uc := usecase.SetOrderStatus{Store: store, Mirror: mirror}

	err := uc.Execute(context.Background(), "ord-1", domain.StatusSuccess)
	require.NoError(t, err)

	orders := mirror.Orders()
	assert.Equal(t, domain.StatusSuccess, orders[0].Status)
	// only the status field changed, everything else is intact
	want := testOrders()
	want[0].Status = domain.StatusSuccess
	assert.Equal(t, want, orders)
}

func TestSetOrderStatus_Idempotent(t *testing.T) {
	store := &fakeStore{orders: testOrders()}
	mirror := cache.NewSessionMirror()
	mirror.SetOrders(testOrders())
	uc := usecase.SetOrderStatus{Store: store, Mirror: mirror}

	require.NoError(t, uc.Execute(context.Background(), "ord-2", domain.StatusSuccess))
	after := mirror.Orders()
	require.NoError(t, uc.Execute(context.Background(), "ord-2", domain.StatusSuccess))
	assert.Equal(t, after, mirror.Orders())
}

func TestSetOrderStatus_RemoteFailureLeavesMirrorIntact(t *testing.T) {
	store := &fakeStore{orders: testOrders(), failMutations: true}
	mirror := cache.NewSessionMirror()
	mirror.SetOrders(testOrders())
	uc := usecase.SetOrderStatus{Store: store, Mirror: mirror}

	err := uc.Execute(context.Background(), "ord-1", domain.StatusSuccess)
	require.ErrorIs(t, err, errRemote)
	assert.Equal(t, testOrders(), mirror.Orders())
}

// The enum is not enforced here: the UI is the only source of the value.
func TestSetOrderStatus_OpaqueStatusStoredAsGiven(t *testing.T) {
	store := &fakeStore{orders: testOrders()}
	mirror := cache.NewSessionMirror()
	mirror.SetOrders(testOrders())
	uc := usecase.SetOrderStatus{Store: store, Mirror: mirror}

	require.NoError(t, uc.Execute(context.Background(), "ord-3", "weird"))
	assert.Equal(t, "weird", mirror.Orders()[2].Status)
}

func TestDeleteOrder_RequiresConfirmation(t *testing.T) {
	store := &fakeStore{orders: testOrders()}
	mirror := cache.NewSessionMirror()
	mirror.SetOrders(testOrders())
	uc := usecase.DeleteOrder{Store: store, Mirror: mirror}

	err := uc.Execute(context.Background(), "ord-1", false)
	require.ErrorIs(t, err, domain.ErrNotConfirmed)
	assert.Equal(t, testOrders(), mirror.Orders(), "unconfirmed delete must not touch local state")
	assert.Zero(t, store.deleteCalls, "unconfirmed delete must never reach the remote store")
}

func TestDeleteOrder_Confirmed(t *testing.T) {
	store := &fakeStore{orders: testOrders()}
	mirror := cache.NewSessionMirror()
	mirror.SetOrders(testOrders())
	uc := usecase.DeleteOrder{Store: store, Mirror: mirror}

	require.NoError(t, uc.Execute(context.Background(), "ord-2", true))

	orders := mirror.Orders()
	assert.Len(t, orders, len(testOrders())-1)
	for _, o := range orders {
		assert.NotEqual(t, "ord-2", o.ID)
	}
}

func TestDeleteOrder_RemoteFailureLeavesMirrorIntact(t *testing.T) {
	store := &fakeStore{orders: testOrders(), failMutations: true}
	mirror := cache.NewSessionMirror()
	mirror.SetOrders(testOrders())
	uc := usecase.DeleteOrder{Store: store, Mirror: mirror}

	err := uc.Execute(context.Background(), "ord-2", true)
	require.ErrorIs(t, err, errRemote)
	assert.Equal(t, testOrders(), mirror.Orders())
}
