package lineage

import (
	"context"
	"errors"
	"sync"

	"github.com/asaskevich/EventBus"
	"github.com/chaintrace/chaintrace/internal/domain"
	"github.com/chaintrace/chaintrace/pkg/common"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TopicTransactionCreated is published on the event bus after a
// successful append.
const TopicTransactionCreated = "transaction.created"

// AppendRequest describes a new transaction to append to a product's
// chain. ActorID identifies the authenticated user submitting it.
type AppendRequest struct {
	ActorID        int64
	ProductID      int64
	Type           string
	FromLocationID *int64
	ToLocationID   *int64
	Status         string
	Metadata       domain.JSONMap
}

// Service maintains the per-product append-only transaction chain. Each
// append resolves the product's current head and links the new row to
// it; production transactions always start a fresh chain. Appends for
// the same product serialize on a per-product lock so concurrent
// submissions cannot fork the chain by reading the same head.
type Service struct {
	productRepo ProductRepository
	txnRepo     TransactionRepository
	bus         EventBus.Bus

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewService creates a lineage service. bus may be nil when no event
// consumers are wired (tests).
func NewService(productRepo ProductRepository, txnRepo TransactionRepository, bus EventBus.Bus) *Service {
	return &Service{
		productRepo: productRepo,
		txnRepo:     txnRepo,
		bus:         bus,
		locks:       make(map[int64]*sync.Mutex),
	}
}

func (s *Service) productLock(productID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[productID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[productID] = l
	}
	return l
}

// Append validates the request, resolves the product's current head and
// persists a new transaction linked to it. The returned row carries the
// store-assigned creation timestamp.
func (s *Service) Append(ctx context.Context, req AppendRequest) (*domain.Transaction, error) {
	if req.ActorID == 0 {
		return nil, &domain.NotAuthenticatedError{}
	}
	if req.ProductID == 0 {
		return nil, &domain.ValidationError{Field: "product_id", Reason: "required"}
	}
	if !domain.ValidTransactionType(req.Type) {
		return nil, &domain.ValidationError{Field: "transaction_type", Reason: "unknown type " + req.Type}
	}
	if req.Status == "" {
		req.Status = domain.TxnPending
	}
	if !domain.ValidTransactionStatus(req.Status) {
		return nil, &domain.ValidationError{Field: "status", Reason: "unknown status " + req.Status}
	}

	if _, err := s.productRepo.GetByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.ValidationError{Field: "product_id", Reason: "product does not exist"}
		}
		return nil, &domain.StoreError{Op: "resolve product", Err: err}
	}

	// Serialize appends per product: the head read and the insert must
	// not interleave with another append for the same product.
	lock := s.productLock(req.ProductID)
	lock.Lock()
	defer lock.Unlock()

	var previousID *int64
	if req.Type != domain.TxnProduction {
		head, err := s.txnRepo.Head(ctx, req.ProductID)
		if err != nil {
			return nil, &domain.StoreError{Op: "query head transaction", Err: err}
		}
		if head != nil {
			previousID = &head.ID
		}
	}

	txn := &domain.Transaction{
		ID:                    common.UUIDint64(),
		CreatedBy:             req.ActorID,
		ProductID:             req.ProductID,
		TransactionType:       req.Type,
		FromLocationID:        req.FromLocationID,
		ToLocationID:          req.ToLocationID,
		Status:                req.Status,
		ChainHash:             common.ChainHashToken(),
		PreviousTransactionID: previousID,
		Metadata:              req.Metadata,
	}
	// A production transaction starts a fresh chain: no origin, no link.
	if req.Type == domain.TxnProduction {
		txn.FromLocationID = nil
		txn.PreviousTransactionID = nil
	}

	if err := s.txnRepo.Create(ctx, txn); err != nil {
		return nil, &domain.StoreError{Op: "insert transaction", Err: err}
	}

	zap.L().Info("transaction appended",
		zap.Int64("product_id", req.ProductID),
		zap.String("type", req.Type),
		zap.Int64("id", txn.ID))

	if s.bus != nil {
		s.bus.Publish(TopicTransactionCreated, txn)
	}
	return txn, nil
}

// History returns the product's chain oldest first.
func (s *Service) History(ctx context.Context, productID int64) ([]*domain.Transaction, error) {
	txns, err := s.txnRepo.History(ctx, productID)
	if err != nil {
		return nil, &domain.StoreError{Op: "query history", Err: err}
	}
	return txns, nil
}

// UpdateStatus mutates only the status of an existing transaction. The
// previous link and hash are immutable once written.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) error {
	if !domain.ValidTransactionStatus(status) {
		return &domain.ValidationError{Field: "status", Reason: "unknown status " + status}
	}
	if err := s.txnRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.ValidationError{Field: "id", Reason: "transaction does not exist"}
		}
		return &domain.StoreError{Op: "update status", Err: err}
	}
	return nil
}
