package domain

import "time"

// Location types
const (
	LocationWarehouse          = "warehouse"
	LocationDistributionCenter = "distribution_center"
	LocationRetail             = "retail"
)

// Location is a physical node in the supply network, referenced by
// transactions as origin or destination.
type Location struct {
	ID        int64     `json:"id,string" form:"id"`           // Primary key ID
	Name      string    `gorm:"index" json:"name" form:"name"` // Location name
	Address   string    `json:"address" form:"address"`        // Postal address
	Type      string    `json:"type" form:"type"`              // warehouse / distribution_center / retail
	Latitude  float64   `json:"latitude" form:"latitude"`
	Longitude float64   `json:"longitude" form:"longitude"`
	Metadata  JSONMap   `gorm:"type:jsonb" json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Location) TableName() string {
	return "locations"
}

// ValidLocationType reports whether t is a known location type.
func ValidLocationType(t string) bool {
	switch t {
	case LocationWarehouse, LocationDistributionCenter, LocationRetail:
		return true
	}
	return false
}
