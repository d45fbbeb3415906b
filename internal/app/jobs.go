package app

import (
	"time"

	"github.com/chaintrace/chaintrace/internal/domain"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@every 1m", func() {
		a.runDueReports()
	})
	if err != nil {
		zap.S().Errorf("init report job error %s", err.Error())
	}

	// Drop read notifications older than 90 days
	_, err = a.sched.AddFunc("@daily", func() {
		a.gormDB.
			Where("status = ? and created_at < ?", domain.NotificationRead, time.Now().Add(-time.Hour*24*90)).
			Delete(&domain.Notification{})
	})
	if err != nil {
		zap.S().Errorf("init cleanup job error %s", err.Error())
	}
}
