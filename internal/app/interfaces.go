package app

import (
	"github.com/asaskevich/EventBus"
	"github.com/chaintrace/chaintrace/config"
	"github.com/chaintrace/chaintrace/internal/lineage"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// BusProvider provides the in-process event bus
type BusProvider interface {
	Bus() EventBus.Bus
}

// LineageProvider provides the transaction chain service
type LineageProvider interface {
	Lineage() *lineage.Service
}

// AppContext combines all provider interfaces for full application context.
// Handlers should depend on specific providers or this combined interface.
type AppContext interface {
	DBProvider
	ConfigProvider
	SchedulerProvider
	BusProvider
	LineageProvider

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb()
	DropAll()
	// RunReportNow executes a report immediately by ID
	RunReportNow(id int64) error
}
