package lineage

import (
	"context"
	"errors"

	"github.com/chaintrace/chaintrace/internal/domain"
	"gorm.io/gorm"
)

// ProductRepository resolves product references for append validation.
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// TransactionRepository handles database operations for supply-chain
// transactions.
type TransactionRepository interface {
	// Create inserts a new transaction row
	Create(ctx context.Context, txn *domain.Transaction) error

	// GetByID retrieves a transaction by ID
	GetByID(ctx context.Context, id int64) (*domain.Transaction, error)

	// Head retrieves the most recently created transaction for a product,
	// or nil when the product has no history yet
	Head(ctx context.Context, productID int64) (*domain.Transaction, error)

	// History retrieves all transactions for a product, oldest first
	History(ctx context.Context, productID int64) ([]*domain.Transaction, error)

	// UpdateStatus mutates the status of an existing transaction. Links
	// and hashes are never rewritten after creation.
	UpdateStatus(ctx context.Context, id int64, status string) error

	// ListWithJoins retrieves transactions with product and location
	// names resolved, newest first, with pagination
	ListWithJoins(ctx context.Context, filter map[string]interface{}, page, pageSize int) ([]*domain.TransactionWithJoins, int64, error)
}

// GormTransactionRepository is the GORM implementation of
// TransactionRepository.
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GORM-based repository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

func (r *GormTransactionRepository) Create(ctx context.Context, txn *domain.Transaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *GormTransactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	var txn domain.Transaction
	err := r.db.WithContext(ctx).First(&txn, id).Error
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *GormTransactionRepository) Head(ctx context.Context, productID int64) (*domain.Transaction, error) {
	var txn domain.Transaction
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		First(&txn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *GormTransactionRepository) History(ctx context.Context, productID int64) ([]*domain.Transaction, error) {
	var txns []*domain.Transaction
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC, id ASC").
		Find(&txns).Error
	return txns, err
}

func (r *GormTransactionRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Transaction{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormTransactionRepository) ListWithJoins(ctx context.Context, filter map[string]interface{}, page, pageSize int) ([]*domain.TransactionWithJoins, int64, error) {
	var rows []*domain.TransactionWithJoins
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Transaction{})
	for key, value := range filter {
		if value != nil && value != "" {
			query = query.Where("supply_chain_transactions."+key+" = ?", value)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Select("supply_chain_transactions.*, " +
			"COALESCE(products.name, '') AS product_name, " +
			"COALESCE(products.sku, '') AS product_sku, " +
			"COALESCE(fl.name, '') AS from_location_name, " +
			"COALESCE(tl.name, '') AS to_location_name").
		Joins("LEFT JOIN products ON products.id = supply_chain_transactions.product_id").
		Joins("LEFT JOIN locations fl ON fl.id = supply_chain_transactions.from_location_id").
		Joins("LEFT JOIN locations tl ON tl.id = supply_chain_transactions.to_location_id").
		Order("supply_chain_transactions.created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Scan(&rows).Error

	return rows, total, err
}

// GormProductRepository is the GORM implementation of ProductRepository.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM-based product repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}
