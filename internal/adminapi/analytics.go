package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/chaintrace/chaintrace/internal/analytics"
	"github.com/chaintrace/chaintrace/internal/domain"
	"github.com/chaintrace/chaintrace/internal/webserver"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

func registerAnalyticsRoutes() {
	webserver.ApiGET("/analytics/summary", analyticsSummary)
	webserver.ApiGET("/analytics/by-type", analyticsByType)
	webserver.ApiGET("/analytics/trend", analyticsTrend)
	webserver.ApiGET("/analytics/environment", analyticsEnvironment)
}

// parseDateRange reads optional start/end query params in any common
// date format.
func parseDateRange(c echo.Context) (start, end time.Time, err error) {
	if v := strings.TrimSpace(c.QueryParam("start")); v != "" {
		start, err = dateparse.ParseAny(v)
		if err != nil {
			return start, end, err
		}
	}
	if v := strings.TrimSpace(c.QueryParam("end")); v != "" {
		end, err = dateparse.ParseAny(v)
		if err != nil {
			return start, end, err
		}
	}
	return start, end, nil
}

func transactionQuery(db *gorm.DB, start, end time.Time) *gorm.DB {
	q := db.Model(&domain.Transaction{})
	if !start.IsZero() {
		q = q.Where("created_at >= ?", start)
	}
	if !end.IsZero() {
		q = q.Where("created_at <= ?", end)
	}
	return q
}

// fetchSnapshots loads the transaction and logistics snapshots
// concurrently.
func fetchSnapshots(c echo.Context, start, end time.Time) ([]*domain.Transaction, []*domain.LogisticsDetail, error) {
	db := GetDB(c)
	var txns []*domain.Transaction
	var details []*domain.LogisticsDetail

	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		return transactionQuery(db.WithContext(ctx), start, end).Find(&txns).Error
	})
	g.Go(func() error {
		return db.WithContext(ctx).Find(&details).Error
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return txns, details, nil
}

func analyticsSummary(c echo.Context) error {
	db := GetDB(c)
	var txns []*domain.Transaction
	var products []*domain.Product
	var locations []*domain.Location

	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error { return db.WithContext(ctx).Find(&txns).Error })
	g.Go(func() error { return db.WithContext(ctx).Find(&products).Error })
	g.Go(func() error { return db.WithContext(ctx).Find(&locations).Error })
	if err := g.Wait(); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load snapshots", err.Error())
	}

	return ok(c, analytics.BuildSummary(txns, products, locations))
}

func analyticsByType(c echo.Context) error {
	start, end, err := parseDateRange(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unparseable start/end date", err.Error())
	}
	var txns []*domain.Transaction
	if err := transactionQuery(GetDB(c), start, end).Find(&txns).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load transactions", err.Error())
	}
	return ok(c, map[string]interface{}{
		"by_type":           analytics.CountByType(txns),
		"by_status":         analytics.CountByStatus(txns),
		"distinct_products": analytics.CountDistinctProducts(txns),
	})
}

func analyticsTrend(c echo.Context) error {
	start, end, err := parseDateRange(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unparseable start/end date", err.Error())
	}
	var txns []*domain.Transaction
	if err := transactionQuery(GetDB(c), start, end).Find(&txns).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load transactions", err.Error())
	}
	return ok(c, map[string]interface{}{
		"daily":   analytics.TrendByDay(txns),
		"monthly": analytics.TrendByMonth(txns),
	})
}

func analyticsEnvironment(c echo.Context) error {
	start, end, err := parseDateRange(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unparseable start/end date", err.Error())
	}
	txns, details, err := fetchSnapshots(c, start, end)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load snapshots", err.Error())
	}
	// A date range narrows the transaction snapshot, so the details must
	// be narrowed to the same set: otherwise the means cover all time
	// while the trend covers the range, and a detail whose parent merely
	// fell outside the range gets miscounted as unresolved.
	if !start.IsZero() || !end.IsZero() {
		details = analytics.DetailsForTransactions(details, txns)
	}

	result := map[string]interface{}{
		"trend": analytics.EnvironmentalTrendByDay(details, txns),
	}
	// Summary means are optional extras: an empty snapshot reports the
	// computation failure instead of a fake zero.
	if mt, err := analytics.MeanTemperature(details); err == nil {
		result["mean_temperature"] = mt
	} else {
		result["mean_temperature_error"] = err.Error()
	}
	if mh, err := analytics.MeanHumidity(details); err == nil {
		result["mean_humidity"] = mh
	} else {
		result["mean_humidity_error"] = err.Error()
	}
	if th, err := analytics.MeanTransitHours(details); err == nil {
		result["mean_transit_hours"] = th
	} else {
		result["mean_transit_hours_error"] = err.Error()
	}
	return ok(c, result)
}
