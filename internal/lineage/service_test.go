package lineage

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/chaintrace/chaintrace/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeProductRepo struct {
	products map[int64]*domain.Product
}

func (r *fakeProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

type fakeTxnRepo struct {
	mu   sync.Mutex
	rows []*domain.Transaction
}

func (r *fakeTxnRepo) Create(_ context.Context, txn *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	txn.CreatedAt = time.Now()
	r.rows = append(r.rows, txn)
	return nil
}

func (r *fakeTxnRepo) GetByID(_ context.Context, id int64) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.rows {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// Head is the most recently inserted row for the product; insertion
// order is the creation order.
func (r *fakeTxnRepo) Head(_ context.Context, productID int64) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].ProductID == productID {
			return r.rows[i], nil
		}
	}
	return nil, nil
}

func (r *fakeTxnRepo) History(_ context.Context, productID int64) ([]*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Transaction
	for _, t := range r.rows {
		if t.ProductID == productID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTxnRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.rows {
		if t.ID == id {
			t.Status = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeTxnRepo) ListWithJoins(_ context.Context, _ map[string]interface{}, _, _ int) ([]*domain.TransactionWithJoins, int64, error) {
	return nil, 0, nil
}

func newTestService() (*Service, *fakeTxnRepo) {
	products := &fakeProductRepo{products: map[int64]*domain.Product{
		1: {ID: 1, Name: "Coffee", Sku: "CF-001"},
		2: {ID: 2, Name: "Tea", Sku: "TE-001"},
	}}
	txns := &fakeTxnRepo{}
	return NewService(products, txns, nil), txns
}

func TestAppendProductionHasNoPrevious(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	// Seed some history first; production must still start fresh.
	_, err := svc.Append(ctx, AppendRequest{ActorID: 7, ProductID: 1, Type: domain.TxnProduction})
	require.NoError(t, err)
	_, err = svc.Append(ctx, AppendRequest{ActorID: 7, ProductID: 1, Type: domain.TxnTransport})
	require.NoError(t, err)

	txn, err := svc.Append(ctx, AppendRequest{ActorID: 7, ProductID: 1, Type: domain.TxnProduction})
	require.NoError(t, err)
	assert.Nil(t, txn.PreviousTransactionID)
	assert.Nil(t, txn.FromLocationID)
}

func TestAppendProductionDropsFromLocation(t *testing.T) {
	svc, _ := newTestService()
	from := int64(99)

	txn, err := svc.Append(context.Background(), AppendRequest{
		ActorID: 7, ProductID: 1, Type: domain.TxnProduction, FromLocationID: &from,
	})
	require.NoError(t, err)
	assert.Nil(t, txn.FromLocationID)
}

func TestAppendLinksToMostRecent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	production, err := svc.Append(ctx, AppendRequest{ActorID: 7, ProductID: 1, Type: domain.TxnProduction})
	require.NoError(t, err)
	transport, err := svc.Append(ctx, AppendRequest{ActorID: 7, ProductID: 1, Type: domain.TxnTransport})
	require.NoError(t, err)
	require.NotNil(t, transport.PreviousTransactionID)
	assert.Equal(t, production.ID, *transport.PreviousTransactionID)

	delivery, err := svc.Append(ctx, AppendRequest{ActorID: 7, ProductID: 1, Type: domain.TxnDelivery})
	require.NoError(t, err)
	require.NotNil(t, delivery.PreviousTransactionID)
	assert.Equal(t, transport.ID, *delivery.PreviousTransactionID)
}

func TestAppendChainsAreScopedPerProduct(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p1, err := svc.Append(ctx, AppendRequest{ActorID: 7, ProductID: 1, Type: domain.TxnProduction})
	require.NoError(t, err)
	_, err = svc.Append(ctx, AppendRequest{ActorID: 7, ProductID: 2, Type: domain.TxnProduction})
	require.NoError(t, err)

	next, err := svc.Append(ctx, AppendRequest{ActorID: 7, ProductID: 1, Type: domain.TxnStorage})
	require.NoError(t, err)
	require.NotNil(t, next.PreviousTransactionID)
	assert.Equal(t, p1.ID, *next.PreviousTransactionID)
}

func TestAppendFirstNonProductionHasNoPrevious(t *testing.T) {
	svc, _ := newTestService()

	txn, err := svc.Append(context.Background(), AppendRequest{ActorID: 7, ProductID: 1, Type: domain.TxnTransport})
	require.NoError(t, err)
	assert.Nil(t, txn.PreviousTransactionID)
}

func TestAppendRequiresActor(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Append(context.Background(), AppendRequest{ProductID: 1, Type: domain.TxnProduction})
	require.Error(t, err)
	assert.True(t, domain.IsNotAuthenticated(err))
}

func TestAppendUnknownProduct(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Append(context.Background(), AppendRequest{ActorID: 7, ProductID: 404, Type: domain.TxnProduction})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestAppendUnknownType(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Append(context.Background(), AppendRequest{ActorID: 7, ProductID: 1, Type: "teleport"})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestAppendDefaultsStatusToPending(t *testing.T) {
	svc, _ := newTestService()

	txn, err := svc.Append(context.Background(), AppendRequest{ActorID: 7, ProductID: 1, Type: domain.TxnProduction})
	require.NoError(t, err)
	assert.Equal(t, domain.TxnPending, txn.Status)
	assert.NotEmpty(t, txn.ChainHash)
}

// Concurrent appends for one product must serialize: the resulting
// chain has to be linear, with every transaction except the head
// linking to a distinct predecessor.
func TestAppendConcurrentNoFork(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.Append(ctx, AppendRequest{ActorID: 7, ProductID: 1, Type: domain.TxnProduction})
	require.NoError(t, err)

	const workers = 32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Append(ctx, AppendRequest{ActorID: 7, ProductID: 1, Type: domain.TxnTransport})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	history, err := repo.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, workers+1)

	seen := make(map[int64]int)
	for _, txn := range history {
		if txn.PreviousTransactionID != nil {
			seen[*txn.PreviousTransactionID]++
		}
	}
	// No predecessor referenced twice means no fork.
	for prev, count := range seen {
		assert.Equal(t, 1, count, "transaction %d referenced as previous more than once", prev)
	}
	assert.Len(t, seen, workers)
}

func TestUpdateStatus(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	txn, err := svc.Append(ctx, AppendRequest{ActorID: 7, ProductID: 1, Type: domain.TxnProduction})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, txn.ID, domain.TxnCompleted))
	updated, err := repo.GetByID(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TxnCompleted, updated.Status)

	err = svc.UpdateStatus(ctx, txn.ID, "finished")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	err = svc.UpdateStatus(ctx, 404, domain.TxnCompleted)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestHistoryOrder(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first, err := svc.Append(ctx, AppendRequest{ActorID: 7, ProductID: 1, Type: domain.TxnProduction})
	require.NoError(t, err)
	second, err := svc.Append(ctx, AppendRequest{ActorID: 7, ProductID: 1, Type: domain.TxnTransport})
	require.NoError(t, err)

	history, err := svc.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, first.ID, history[0].ID)
	assert.Equal(t, second.ID, history[1].ID)
}
