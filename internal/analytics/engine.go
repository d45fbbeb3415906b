// Package analytics derives read-only dashboard views from transaction
// and logistics snapshots. Every function is pure: it recomputes from
// the rows it is handed and keeps no state between calls.
package analytics

import (
	"sort"
	"strconv"
	"strings"

	"github.com/chaintrace/chaintrace/internal/domain"
	"github.com/montanaflynn/stats"
)

// DayCount is one bucket of the daily trend. Date is a UTC calendar
// date formatted 2006-01-02. Days without transactions are omitted.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// MonthCount is one bucket of the monthly trend, keyed 2006-01.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// EnvironmentBucket is a per-day mean of logistics readings.
type EnvironmentBucket struct {
	Date            string  `json:"date"`
	MeanTemperature float64 `json:"mean_temperature"`
	MeanHumidity    float64 `json:"mean_humidity"`
	Samples         int     `json:"samples"`
}

// EnvironmentTrend is the daily environmental series plus the count of
// details whose parent transaction could not be resolved. Those rows
// are excluded from the buckets rather than grouped under a bogus date.
type EnvironmentTrend struct {
	Buckets    []EnvironmentBucket `json:"buckets"`
	Unresolved int                 `json:"unresolved"`
}

// Summary is the dashboard stat card block.
type Summary struct {
	TotalTransactions   int `json:"total_transactions"`
	DistinctProducts    int `json:"distinct_products"`
	TotalProducts       int `json:"total_products"`
	TotalLocations      int `json:"total_locations"`
	PendingTransactions int `json:"pending_transactions"`
	CompletedDeliveries int `json:"completed_deliveries"`
}

// CountByType groups transactions by type. Only observed types appear.
func CountByType(txns []*domain.Transaction) map[string]int {
	out := make(map[string]int)
	for _, t := range txns {
		out[t.TransactionType]++
	}
	return out
}

// CountByStatus groups transactions by status. Only observed statuses
// appear.
func CountByStatus(txns []*domain.Transaction) map[string]int {
	out := make(map[string]int)
	for _, t := range txns {
		out[t.Status]++
	}
	return out
}

// CountDistinctProducts returns the number of unique product references
// across the snapshot.
func CountDistinctProducts(txns []*domain.Transaction) int {
	seen := make(map[int64]struct{})
	for _, t := range txns {
		seen[t.ProductID] = struct{}{}
	}
	return len(seen)
}

// TrendByDay buckets transactions by UTC calendar date, sorted
// ascending. The series is sparse: empty days are not densified.
func TrendByDay(txns []*domain.Transaction) []DayCount {
	grouped := make(map[string]int)
	for _, t := range txns {
		grouped[t.CreatedAt.UTC().Format("2006-01-02")]++
	}
	out := make([]DayCount, 0, len(grouped))
	for date, count := range grouped {
		out = append(out, DayCount{Date: date, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// TrendByMonth buckets transactions by UTC calendar month, sorted
// ascending.
func TrendByMonth(txns []*domain.Transaction) []MonthCount {
	grouped := make(map[string]int)
	for _, t := range txns {
		grouped[t.CreatedAt.UTC().Format("2006-01")]++
	}
	out := make([]MonthCount, 0, len(grouped))
	for month, count := range grouped {
		out = append(out, MonthCount{Month: month, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// EnvironmentalTrendByDay joins each logistics detail to its parent
// transaction's creation date and computes per-day mean temperature and
// humidity. Details with no resolvable parent are counted as unresolved
// and contribute to no bucket.
func EnvironmentalTrendByDay(details []*domain.LogisticsDetail, txns []*domain.Transaction) EnvironmentTrend {
	dates := make(map[int64]string, len(txns))
	for _, t := range txns {
		dates[t.ID] = t.CreatedAt.UTC().Format("2006-01-02")
	}

	type acc struct {
		temps, humids []float64
	}
	grouped := make(map[string]*acc)
	unresolved := 0
	for _, d := range details {
		date, ok := dates[d.TransactionID]
		if !ok {
			unresolved++
			continue
		}
		a, ok := grouped[date]
		if !ok {
			a = &acc{}
			grouped[date] = a
		}
		a.temps = append(a.temps, d.Temperature)
		a.humids = append(a.humids, d.Humidity)
	}

	buckets := make([]EnvironmentBucket, 0, len(grouped))
	for date, a := range grouped {
		// Mean over a non-empty group cannot fail.
		mt, _ := stats.Mean(a.temps)
		mh, _ := stats.Mean(a.humids)
		buckets = append(buckets, EnvironmentBucket{
			Date:            date,
			MeanTemperature: mt,
			MeanHumidity:    mh,
			Samples:         len(a.temps),
		})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Date < buckets[j].Date })
	return EnvironmentTrend{Buckets: buckets, Unresolved: unresolved}
}

// DetailsForTransactions narrows a logistics snapshot to the details
// whose parent transaction is present in txns. When a date filter
// restricts the transaction snapshot, passing the result through here
// keeps the trend and the summary means describing the same window
// instead of mixing range-scoped buckets with all-time means.
func DetailsForTransactions(details []*domain.LogisticsDetail, txns []*domain.Transaction) []*domain.LogisticsDetail {
	keep := make(map[int64]struct{}, len(txns))
	for _, t := range txns {
		keep[t.ID] = struct{}{}
	}
	out := make([]*domain.LogisticsDetail, 0, len(details))
	for _, d := range details {
		if _, ok := keep[d.TransactionID]; ok {
			out = append(out, d)
		}
	}
	return out
}

// MeanTemperature returns the arithmetic mean temperature across the
// snapshot. An empty snapshot is a ComputationError, never a NaN.
func MeanTemperature(details []*domain.LogisticsDetail) (float64, error) {
	values := make([]float64, 0, len(details))
	for _, d := range details {
		values = append(values, d.Temperature)
	}
	m, err := stats.Mean(values)
	if err != nil {
		return 0, &domain.ComputationError{Reason: "mean temperature over empty collection"}
	}
	return m, nil
}

// MeanHumidity returns the arithmetic mean humidity across the snapshot.
func MeanHumidity(details []*domain.LogisticsDetail) (float64, error) {
	values := make([]float64, 0, len(details))
	for _, d := range details {
		values = append(values, d.Humidity)
	}
	m, err := stats.Mean(values)
	if err != nil {
		return 0, &domain.ComputationError{Reason: "mean humidity over empty collection"}
	}
	return m, nil
}

// MeanTransitHours parses the leading integer out of each free-text
// transport duration ("2 hours" -> 2) and returns the mean. Entries
// with no numeric prefix are skipped so they cannot pollute the mean;
// if nothing parses the result is a ComputationError.
func MeanTransitHours(details []*domain.LogisticsDetail) (float64, error) {
	values := make([]float64, 0, len(details))
	for _, d := range details {
		if h, ok := parseLeadingInt(d.TransportDuration); ok {
			values = append(values, float64(h))
		}
	}
	m, err := stats.Mean(values)
	if err != nil {
		return 0, &domain.ComputationError{Reason: "no parseable transit durations"}
	}
	return m, nil
}

func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// BuildSummary computes the dashboard stat cards from full snapshots.
func BuildSummary(txns []*domain.Transaction, products []*domain.Product, locations []*domain.Location) Summary {
	s := Summary{
		TotalTransactions: len(txns),
		DistinctProducts:  CountDistinctProducts(txns),
		TotalProducts:     len(products),
		TotalLocations:    len(locations),
	}
	for _, t := range txns {
		if t.Status == domain.TxnPending {
			s.PendingTransactions++
		}
		if t.TransactionType == domain.TxnDelivery && t.Status == domain.TxnCompleted {
			s.CompletedDeliveries++
		}
	}
	return s
}
