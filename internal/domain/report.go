package domain

import "time"

// Report frequencies
const (
	ReportDaily   = "daily"
	ReportWeekly  = "weekly"
	ReportMonthly = "monthly"
)

// Report statuses
const (
	ReportActive = "active"
	ReportPaused = "paused"
)

// Report is a scheduled materialization of analytics output. The runner
// stores the latest result snapshot in Metadata and advances NextRun by
// the configured frequency.
type Report struct {
	ID        int64     `json:"id,string" form:"id"`                 // Primary key ID
	Name      string    `json:"name" form:"name"`                    // Report name
	Type      string    `json:"type" form:"type"`                    // transactions / environment / summary
	Frequency string    `json:"frequency" form:"frequency"`          // daily / weekly / monthly
	Status    string    `json:"status" form:"status"`                // active / paused
	CreatedBy int64     `json:"created_by,string" form:"created_by"` // Creator profile ID
	LastRun   time.Time `json:"last_run"`                            // Last execution time
	NextRun   time.Time `json:"next_run"`                            // Next scheduled execution time
	Metadata  JSONMap   `gorm:"type:jsonb" json:"metadata"`          // Latest result snapshot
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Report) TableName() string {
	return "reports"
}

// ValidReportFrequency reports whether f is a known frequency.
func ValidReportFrequency(f string) bool {
	switch f {
	case ReportDaily, ReportWeekly, ReportMonthly:
		return true
	}
	return false
}

// NextRunAfter returns the run time following from, per frequency.
// Unknown frequencies fall back to daily.
func NextRunAfter(from time.Time, frequency string) time.Time {
	switch frequency {
	case ReportWeekly:
		return from.AddDate(0, 0, 7)
	case ReportMonthly:
		return from.AddDate(0, 1, 0)
	default:
		return from.AddDate(0, 0, 1)
	}
}
