package domain

import "time"

// LogisticsDetail carries environmental and transport readings for one
// transaction. One detail row per transaction by convention.
type LogisticsDetail struct {
	ID                int64     `json:"id,string" form:"id"`                                    // Primary key ID
	TransactionID     int64     `gorm:"index" json:"transaction_id,string" form:"transaction_id"` // Parent transaction
	Temperature       float64   `json:"temperature" form:"temperature"`                         // Celsius
	Humidity          float64   `json:"humidity" form:"humidity"`                               // Percent
	TransportVehicle  string    `json:"transport_vehicle" form:"transport_vehicle"`             // Vehicle description
	TransportDuration string    `json:"transport_duration" form:"transport_duration"`           // Free text, e.g. "2 hours"
	StorageConditions string    `json:"storage_conditions" form:"storage_conditions"`
	QualityChecks     JSONMap   `gorm:"type:jsonb" json:"quality_checks"`
	AdditionalData    JSONMap   `gorm:"type:jsonb" json:"additional_data"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName Specify table name
func (LogisticsDetail) TableName() string {
	return "logistics_details"
}
