package domain

import "time"

// Profile is a dashboard user account.
type Profile struct {
	ID          int64     `json:"id,string" form:"id"`                     // Primary key ID
	Username    string    `gorm:"uniqueIndex" json:"username" form:"username"` // Login name
	Password    string    `json:"-"`                                       // Hashed, never serialized
	FullName    string    `json:"full_name" form:"full_name"`
	CompanyName string    `json:"company_name" form:"company_name"`
	Role        string    `json:"role" form:"role"` // admin / operator / viewer
	LastLogin   time.Time `json:"last_login"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Profile) TableName() string {
	return "profiles"
}
