package domain

import "time"

// Transaction types
const (
	TxnProduction = "production"
	TxnTransport  = "transport"
	TxnStorage    = "storage"
	TxnDelivery   = "delivery"
)

// Transaction statuses
const (
	TxnPending    = "pending"
	TxnInProgress = "in_progress"
	TxnCompleted  = "completed"
	TxnFailed     = "failed"
)

// Transaction is a single supply-chain movement for a product. Each
// non-production transaction links to the product's most recent prior
// transaction, forming an append-only per-product chain. The chain hash
// is an opaque token, not a verifiable digest.
type Transaction struct {
	ID                    int64     `json:"id,string" form:"id"`                        // Primary key ID
	CreatedBy             int64     `json:"created_by,string" form:"created_by"`        // Acting profile ID
	ProductID             int64     `gorm:"index" json:"product_id,string" form:"product_id"` // Product reference
	TransactionType       string    `gorm:"index" json:"transaction_type" form:"transaction_type"` // production / transport / storage / delivery
	FromLocationID        *int64    `json:"from_location_id,string,omitempty" form:"from_location_id"` // Origin, empty for production
	ToLocationID          *int64    `json:"to_location_id,string,omitempty" form:"to_location_id"`     // Destination
	Status                string    `gorm:"index" json:"status" form:"status"` // pending / in_progress / completed / failed
	ChainHash             string    `gorm:"size:128" json:"chain_hash"`        // Opaque token assigned at creation
	PreviousTransactionID *int64    `json:"previous_transaction_id,string,omitempty"` // Link to the prior transaction for the product
	Metadata              JSONMap   `gorm:"type:jsonb" json:"metadata"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Transaction) TableName() string {
	return "supply_chain_transactions"
}

// TransactionWithJoins is the explicit joined row shape for list views.
// Join targets that did not resolve carry empty strings rather than
// nested optional objects.
type TransactionWithJoins struct {
	Transaction
	ProductName      string `json:"product_name"`
	ProductSku       string `json:"product_sku"`
	FromLocationName string `json:"from_location_name"`
	ToLocationName   string `json:"to_location_name"`
}

// ValidTransactionType reports whether t is a known transaction type.
func ValidTransactionType(t string) bool {
	switch t {
	case TxnProduction, TxnTransport, TxnStorage, TxnDelivery:
		return true
	}
	return false
}

// ValidTransactionStatus reports whether s is a known transaction status.
func ValidTransactionStatus(s string) bool {
	switch s {
	case TxnPending, TxnInProgress, TxnCompleted, TxnFailed:
		return true
	}
	return false
}
