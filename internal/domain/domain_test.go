package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidators(t *testing.T) {
	assert.True(t, ValidTransactionType(TxnProduction))
	assert.False(t, ValidTransactionType("teleport"))
	assert.True(t, ValidTransactionStatus(TxnInProgress))
	assert.False(t, ValidTransactionStatus("done"))
	assert.True(t, ValidProductStatus(ProductDiscontinued))
	assert.False(t, ValidProductStatus(""))
	assert.True(t, ValidLocationType(LocationDistributionCenter))
	assert.False(t, ValidLocationType("shop"))
	assert.True(t, ValidReportFrequency(ReportWeekly))
	assert.False(t, ValidReportFrequency("hourly"))
}

func TestNextRunAfter(t *testing.T) {
	from := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, from.AddDate(0, 0, 1), NextRunAfter(from, ReportDaily))
	assert.Equal(t, from.AddDate(0, 0, 7), NextRunAfter(from, ReportWeekly))
	assert.Equal(t, from.AddDate(0, 1, 0), NextRunAfter(from, ReportMonthly))
	// Unknown frequency falls back to daily.
	assert.Equal(t, from.AddDate(0, 0, 1), NextRunAfter(from, "hourly"))
}

func TestStoreErrorUnwrap(t *testing.T) {
	inner := assert.AnError
	err := &StoreError{Op: "insert", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "insert")
}
