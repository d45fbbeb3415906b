package analytics

import (
	"testing"
	"time"

	"github.com/chaintrace/chaintrace/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txnAt(id, productID int64, txnType, status string, created time.Time) *domain.Transaction {
	return &domain.Transaction{
		ID:              id,
		ProductID:       productID,
		TransactionType: txnType,
		Status:          status,
		CreatedAt:       created,
	}
}

func TestCountByType(t *testing.T) {
	d := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	txns := []*domain.Transaction{
		txnAt(1, 1, domain.TxnProduction, domain.TxnCompleted, d),
		txnAt(2, 1, domain.TxnTransport, domain.TxnPending, d),
		txnAt(3, 2, domain.TxnTransport, domain.TxnPending, d),
		txnAt(4, 2, domain.TxnDelivery, domain.TxnCompleted, d),
	}

	counts := CountByType(txns)

	// Sum of all counts equals the input size, observed types only.
	total := 0
	for _, n := range counts {
		total += n
	}
	assert.Equal(t, len(txns), total)
	assert.Equal(t, map[string]int{
		domain.TxnProduction: 1,
		domain.TxnTransport:  2,
		domain.TxnDelivery:   1,
	}, counts)
	assert.NotContains(t, counts, domain.TxnStorage)
}

func TestCountByTypeEmpty(t *testing.T) {
	assert.Empty(t, CountByType(nil))
}

func TestCountDistinctProducts(t *testing.T) {
	d := time.Now()
	txns := []*domain.Transaction{
		txnAt(1, 10, domain.TxnProduction, domain.TxnPending, d),
		txnAt(2, 10, domain.TxnTransport, domain.TxnPending, d),
		txnAt(3, 20, domain.TxnProduction, domain.TxnPending, d),
	}
	assert.Equal(t, 2, CountDistinctProducts(txns))
	assert.Equal(t, 0, CountDistinctProducts(nil))
}

func TestTrendByDay(t *testing.T) {
	txns := []*domain.Transaction{
		txnAt(1, 1, domain.TxnProduction, domain.TxnPending, time.Date(2024, 1, 2, 23, 59, 0, 0, time.UTC)),
		txnAt(2, 1, domain.TxnTransport, domain.TxnPending, time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)),
		txnAt(3, 1, domain.TxnStorage, domain.TxnPending, time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)),
	}

	trend := TrendByDay(txns)

	require.Len(t, trend, 2)
	assert.Equal(t, DayCount{Date: "2024-01-02", Count: 2}, trend[0])
	assert.Equal(t, DayCount{Date: "2024-01-05", Count: 1}, trend[1])
}

func TestTrendByDayUsesUTC(t *testing.T) {
	// 23:00-05:00 on Jan 1 is Jan 2 in UTC.
	loc := time.FixedZone("UTC-5", -5*3600)
	txns := []*domain.Transaction{
		txnAt(1, 1, domain.TxnProduction, domain.TxnPending, time.Date(2024, 1, 1, 23, 0, 0, 0, loc)),
	}
	trend := TrendByDay(txns)
	require.Len(t, trend, 1)
	assert.Equal(t, "2024-01-02", trend[0].Date)
}

func TestTrendByDayIdempotentUnderRegrouping(t *testing.T) {
	txns := []*domain.Transaction{
		txnAt(1, 1, domain.TxnProduction, domain.TxnPending, time.Date(2024, 3, 1, 1, 0, 0, 0, time.UTC)),
		txnAt(2, 1, domain.TxnTransport, domain.TxnPending, time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC)),
		txnAt(3, 1, domain.TxnDelivery, domain.TxnPending, time.Date(2024, 3, 2, 3, 0, 0, 0, time.UTC)),
	}
	first := TrendByDay(txns)

	// Reshape the trend back into transactions, one per counted unit.
	var reshaped []*domain.Transaction
	var id int64
	for _, bucket := range first {
		day, err := time.Parse("2006-01-02", bucket.Date)
		require.NoError(t, err)
		for i := 0; i < bucket.Count; i++ {
			id++
			reshaped = append(reshaped, txnAt(id, 1, domain.TxnTransport, domain.TxnPending, day))
		}
	}

	assert.Equal(t, first, TrendByDay(reshaped))
}

func TestTrendByMonth(t *testing.T) {
	txns := []*domain.Transaction{
		txnAt(1, 1, domain.TxnProduction, domain.TxnPending, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)),
		txnAt(2, 1, domain.TxnTransport, domain.TxnPending, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)),
		txnAt(3, 1, domain.TxnDelivery, domain.TxnPending, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
	}
	trend := TrendByMonth(txns)
	require.Len(t, trend, 2)
	assert.Equal(t, MonthCount{Month: "2024-01", Count: 2}, trend[0])
	assert.Equal(t, MonthCount{Month: "2024-02", Count: 1}, trend[1])
}

func TestEnvironmentalTrendByDay(t *testing.T) {
	day := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	txns := []*domain.Transaction{
		txnAt(1, 1, domain.TxnTransport, domain.TxnPending, day),
		txnAt(2, 1, domain.TxnTransport, domain.TxnPending, day.Add(2*time.Hour)),
	}
	details := []*domain.LogisticsDetail{
		{ID: 10, TransactionID: 1, Temperature: 20, Humidity: 40},
		{ID: 11, TransactionID: 2, Temperature: 24, Humidity: 50},
	}

	trend := EnvironmentalTrendByDay(details, txns)

	require.Len(t, trend.Buckets, 1)
	bucket := trend.Buckets[0]
	assert.Equal(t, "2024-01-01", bucket.Date)
	assert.InDelta(t, 22.0, bucket.MeanTemperature, 1e-9)
	assert.InDelta(t, 45.0, bucket.MeanHumidity, 1e-9)
	assert.Equal(t, 2, bucket.Samples)
	assert.Zero(t, trend.Unresolved)
}

func TestEnvironmentalTrendByDayUnresolvedParent(t *testing.T) {
	txns := []*domain.Transaction{
		txnAt(1, 1, domain.TxnTransport, domain.TxnPending, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	details := []*domain.LogisticsDetail{
		{ID: 10, TransactionID: 1, Temperature: 18, Humidity: 55},
		{ID: 11, TransactionID: 999, Temperature: 99, Humidity: 99}, // orphan
	}

	trend := EnvironmentalTrendByDay(details, txns)

	require.Len(t, trend.Buckets, 1)
	assert.InDelta(t, 18.0, trend.Buckets[0].MeanTemperature, 1e-9)
	assert.Equal(t, 1, trend.Unresolved)
}

// A date filter narrows the transaction snapshot; the details must be
// narrowed to the same window, or the means include readings the trend
// excluded and an in-store-but-out-of-range parent shows up as
// unresolved.
func TestDetailsForTransactionsScopesWindow(t *testing.T) {
	inRange := txnAt(1, 1, domain.TxnTransport, domain.TxnPending, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	details := []*domain.LogisticsDetail{
		{ID: 10, TransactionID: 1, Temperature: 20, Humidity: 40},
		{ID: 11, TransactionID: 2, Temperature: 100, Humidity: 90}, // parent outside the window
	}

	scoped := DetailsForTransactions(details, []*domain.Transaction{inRange})

	require.Len(t, scoped, 1)
	assert.Equal(t, int64(10), scoped[0].ID)

	trend := EnvironmentalTrendByDay(scoped, []*domain.Transaction{inRange})
	assert.Zero(t, trend.Unresolved)
	require.Len(t, trend.Buckets, 1)
	assert.InDelta(t, 20.0, trend.Buckets[0].MeanTemperature, 1e-9)

	m, err := MeanTemperature(scoped)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, m, 1e-9)
}

func TestDetailsForTransactionsNoFilterKeepsAll(t *testing.T) {
	txns := []*domain.Transaction{
		txnAt(1, 1, domain.TxnTransport, domain.TxnPending, time.Now()),
		txnAt(2, 1, domain.TxnStorage, domain.TxnPending, time.Now()),
	}
	details := []*domain.LogisticsDetail{
		{ID: 10, TransactionID: 1},
		{ID: 11, TransactionID: 2},
	}
	assert.Len(t, DetailsForTransactions(details, txns), 2)
}

func TestMeanTemperature(t *testing.T) {
	details := []*domain.LogisticsDetail{
		{Temperature: 10}, {Temperature: 20}, {Temperature: 30},
	}
	m, err := MeanTemperature(details)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, m, 1e-9)
}

func TestMeanTemperatureEmptyIsComputationError(t *testing.T) {
	_, err := MeanTemperature(nil)
	require.Error(t, err)
	assert.True(t, domain.IsComputation(err))
}

func TestMeanTransitHoursSkipsUnparseable(t *testing.T) {
	details := []*domain.LogisticsDetail{
		{TransportDuration: "2 hours"},
		{TransportDuration: "5 hours"},
		{TransportDuration: "not a number"},
	}
	m, err := MeanTransitHours(details)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, m, 1e-9)
}

func TestMeanTransitHoursAllUnparseable(t *testing.T) {
	details := []*domain.LogisticsDetail{
		{TransportDuration: "soon"},
		{TransportDuration: ""},
	}
	_, err := MeanTransitHours(details)
	require.Error(t, err)
	assert.True(t, domain.IsComputation(err))
}

func TestParseLeadingInt(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"2 hours", 2, true},
		{" 36 hours", 36, true},
		{"120", 120, true},
		{"h2", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseLeadingInt(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestBuildSummary(t *testing.T) {
	d := time.Now()
	txns := []*domain.Transaction{
		txnAt(1, 1, domain.TxnProduction, domain.TxnPending, d),
		txnAt(2, 1, domain.TxnDelivery, domain.TxnCompleted, d),
		txnAt(3, 2, domain.TxnDelivery, domain.TxnFailed, d),
	}
	products := []*domain.Product{{ID: 1}, {ID: 2}, {ID: 3}}
	locations := []*domain.Location{{ID: 1}}

	s := BuildSummary(txns, products, locations)

	assert.Equal(t, 3, s.TotalTransactions)
	assert.Equal(t, 2, s.DistinctProducts)
	assert.Equal(t, 3, s.TotalProducts)
	assert.Equal(t, 1, s.TotalLocations)
	assert.Equal(t, 1, s.PendingTransactions)
	assert.Equal(t, 1, s.CompletedDeliveries)
}
