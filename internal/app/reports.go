package app

import (
	"time"

	"github.com/chaintrace/chaintrace/internal/analytics"
	"github.com/chaintrace/chaintrace/internal/domain"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
)

// runDueReports executes every active report whose next_run has passed.
func (a *Application) runDueReports() {
	var reports []domain.Report
	if err := a.gormDB.Where("status = ?", domain.ReportActive).Find(&reports).Error; err != nil {
		zap.L().Error("failed to scan reports", zap.Error(err))
		return
	}
	now := time.Now()
	for i := range reports {
		r := &reports[i]
		if r.NextRun.IsZero() || now.After(r.NextRun) || now.Equal(r.NextRun) {
			if err := a.runReport(r); err != nil {
				zap.L().Error("report run failed", zap.Int64("id", r.ID), zap.Error(err))
			}
		}
	}
}

// RunReportNow executes a report immediately by ID.
func (a *Application) RunReportNow(id int64) error {
	var report domain.Report
	if err := a.gormDB.First(&report, id).Error; err != nil {
		return pkgerrors.Wrap(err, "load report")
	}
	return a.runReport(&report)
}

// runReport materializes the report's analytics snapshot into its
// metadata column and advances the schedule.
func (a *Application) runReport(report *domain.Report) error {
	var txns []*domain.Transaction
	if err := a.gormDB.Find(&txns).Error; err != nil {
		return pkgerrors.Wrap(err, "load transactions")
	}
	var details []*domain.LogisticsDetail
	if err := a.gormDB.Find(&details).Error; err != nil {
		return pkgerrors.Wrap(err, "load logistics details")
	}

	result := domain.JSONMap{}
	switch report.Type {
	case "environment":
		trend := analytics.EnvironmentalTrendByDay(details, txns)
		result["environment_trend"] = trend
		if mt, err := analytics.MeanTemperature(details); err == nil {
			result["mean_temperature"] = mt
		}
		if mh, err := analytics.MeanHumidity(details); err == nil {
			result["mean_humidity"] = mh
		}
		if th, err := analytics.MeanTransitHours(details); err == nil {
			result["mean_transit_hours"] = th
		}
	case "summary":
		var products []*domain.Product
		if err := a.gormDB.Find(&products).Error; err != nil {
			return pkgerrors.Wrap(err, "load products")
		}
		var locations []*domain.Location
		if err := a.gormDB.Find(&locations).Error; err != nil {
			return pkgerrors.Wrap(err, "load locations")
		}
		result["summary"] = analytics.BuildSummary(txns, products, locations)
	default: // transactions
		result["by_type"] = analytics.CountByType(txns)
		result["by_status"] = analytics.CountByStatus(txns)
		result["daily_trend"] = analytics.TrendByDay(txns)
		result["monthly_trend"] = analytics.TrendByMonth(txns)
		result["distinct_products"] = analytics.CountDistinctProducts(txns)
	}

	now := time.Now()
	err := a.gormDB.Model(&domain.Report{}).Where("id = ?", report.ID).Updates(map[string]interface{}{
		"metadata": result,
		"last_run": now,
		"next_run": domain.NextRunAfter(now, report.Frequency),
	}).Error
	if err != nil {
		return pkgerrors.Wrap(err, "store report result")
	}
	zap.L().Info("report executed", zap.Int64("id", report.ID), zap.String("type", report.Type))
	return nil
}
