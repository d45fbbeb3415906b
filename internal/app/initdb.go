package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/chaintrace/chaintrace/config"
	"github.com/chaintrace/chaintrace/internal/domain"
	"github.com/chaintrace/chaintrace/pkg/common"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func getDatabase(cfg config.DBConfig) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Passwd, cfg.Name)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		panic(pkgerrors.Wrap(err, "open postgres connection"))
	}

	sqlDB, err := db.DB()
	if err != nil {
		panic(pkgerrors.Wrap(err, "fetch sql.DB handle"))
	}
	if cfg.MaxConn > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxConn)
	}
	if cfg.IdleConn > 0 {
		sqlDB.SetMaxIdleConns(cfg.IdleConn)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db
}

// checkSuper ensures the default admin profile exists and is usable.
func (a *Application) checkSuper() {
	const superUsername = "admin"
	const defaultPassword = "chaintrace"

	var profile domain.Profile
	err := a.gormDB.Where("username = ?", superUsername).First(&profile).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hashed, herr := common.HashPassword(defaultPassword)
		if herr != nil {
			zap.L().Error("failed to hash default admin password", zap.Error(herr))
			return
		}
		if err := a.gormDB.Create(&domain.Profile{
			ID:        common.UUIDint64(),
			Username:  superUsername,
			Password:  hashed,
			FullName:  "administrator",
			Role:      "admin",
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default admin profile", zap.Error(err))
		} else {
			zap.L().Info("initialized default admin profile", zap.String("username", superUsername))
		}
		return
	case err != nil:
		zap.L().Error("failed to query admin profile", zap.Error(err))
		return
	}

	if profile.Password != "" && profile.Role == "admin" {
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
		"role":       "admin",
	}
	if profile.Password == "" {
		hashed, herr := common.HashPassword(defaultPassword)
		if herr != nil {
			zap.L().Error("failed to hash default admin password", zap.Error(herr))
			return
		}
		updates["password"] = hashed
	}
	if err := a.gormDB.Model(&domain.Profile{}).Where("id = ?", profile.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair admin profile", zap.Error(err))
		return
	}
	zap.L().Warn("repaired default admin profile", zap.String("username", superUsername))
}
