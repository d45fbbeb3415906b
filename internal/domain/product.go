package domain

import "time"

// Product statuses
const (
	ProductActive       = "active"
	ProductInactive     = "inactive"
	ProductDiscontinued = "discontinued"
)

// Product is a traceable supply-chain item
type Product struct {
	ID          int64     `json:"id,string" form:"id"`                 // Primary key ID
	Name        string    `json:"name" form:"name"`                    // Product name
	Description string    `json:"description" form:"description"`      // Product description
	Category    string    `json:"category" form:"category"`            // Product category
	Sku         string    `gorm:"uniqueIndex" json:"sku" form:"sku"`   // Business key
	Status      string    `json:"status" form:"status"`                // active / inactive / discontinued
	CreatedBy   int64     `json:"created_by,string" form:"created_by"` // Creator profile ID
	Metadata    JSONMap   `gorm:"type:jsonb" json:"metadata"`          // Free-form metadata
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}

// ValidProductStatus reports whether s is a known product status.
func ValidProductStatus(s string) bool {
	switch s {
	case ProductActive, ProductInactive, ProductDiscontinued:
		return true
	}
	return false
}
