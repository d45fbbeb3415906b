package adminapi

import (
	"net/http"
	"strings"

	"github.com/chaintrace/chaintrace/internal/domain"
	"github.com/chaintrace/chaintrace/internal/webserver"
	"github.com/chaintrace/chaintrace/pkg/common"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
)

type logisticsPayload struct {
	TransactionID     string         `json:"transaction_id" form:"transaction_id"`
	Temperature       float64        `json:"temperature" form:"temperature"`
	Humidity          float64        `json:"humidity" form:"humidity"`
	TransportVehicle  string         `json:"transport_vehicle" form:"transport_vehicle"`
	TransportDuration string         `json:"transport_duration" form:"transport_duration"`
	StorageConditions string         `json:"storage_conditions" form:"storage_conditions"`
	QualityChecks     domain.JSONMap `json:"quality_checks"`
	AdditionalData    domain.JSONMap `json:"additional_data"`
}

func registerLogisticsRoutes() {
	webserver.ApiGET("/logistics", listLogistics)
	webserver.ApiGET("/logistics/:id", getLogistics)
	webserver.ApiPOST("/logistics", createLogistics)
	webserver.ApiPUT("/logistics/:id", updateLogistics)
	webserver.ApiDELETE("/logistics/:id", deleteLogistics)
}

func listLogistics(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.LogisticsDetail{})
	if v := strings.TrimSpace(c.QueryParam("transaction_id")); v != "" {
		db = db.Where("transaction_id = ?", cast.ToInt64(v))
	}
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		db = db.Where("transport_vehicle ILIKE ? OR storage_conditions ILIKE ?", "%"+q+"%", "%"+q+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query logistics details", err.Error())
	}

	var rows []domain.LogisticsDetail
	if err := db.Order("created_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query logistics details", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getLogistics(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid logistics ID", nil)
	}
	var detail domain.LogisticsDetail
	if err := GetDB(c).Where("id = ?", id).First(&detail).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Logistics detail not found", nil)
	}
	return ok(c, detail)
}

func createLogistics(c echo.Context) error {
	var payload logisticsPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse logistics detail", err.Error())
	}

	txnID := cast.ToInt64(payload.TransactionID)
	if txnID == 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Transaction reference is required", nil)
	}
	var txn domain.Transaction
	if err := GetDB(c).Where("id = ?", txnID).First(&txn).Error; err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Transaction does not exist", nil)
	}

	detail := domain.LogisticsDetail{
		ID:                common.UUIDint64(),
		TransactionID:     txnID,
		Temperature:       payload.Temperature,
		Humidity:          payload.Humidity,
		TransportVehicle:  strings.TrimSpace(payload.TransportVehicle),
		TransportDuration: strings.TrimSpace(payload.TransportDuration),
		StorageConditions: strings.TrimSpace(payload.StorageConditions),
		QualityChecks:     payload.QualityChecks,
		AdditionalData:    payload.AdditionalData,
	}
	if detail.QualityChecks == nil {
		detail.QualityChecks = domain.JSONMap{}
	}
	if err := GetDB(c).Create(&detail).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create logistics detail", err.Error())
	}
	return ok(c, detail)
}

func updateLogistics(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid logistics ID", nil)
	}
	var detail domain.LogisticsDetail
	if err := GetDB(c).Where("id = ?", id).First(&detail).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Logistics detail not found", nil)
	}

	var payload logisticsPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse logistics detail", err.Error())
	}

	// The transaction reference is immutable; readings are mutable.
	detail.Temperature = payload.Temperature
	detail.Humidity = payload.Humidity
	detail.TransportVehicle = strings.TrimSpace(payload.TransportVehicle)
	detail.TransportDuration = strings.TrimSpace(payload.TransportDuration)
	detail.StorageConditions = strings.TrimSpace(payload.StorageConditions)
	if payload.QualityChecks != nil {
		detail.QualityChecks = payload.QualityChecks
	}
	if payload.AdditionalData != nil {
		detail.AdditionalData = payload.AdditionalData
	}

	if err := GetDB(c).Save(&detail).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update logistics detail", err.Error())
	}
	return ok(c, detail)
}

func deleteLogistics(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid logistics ID", nil)
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.LogisticsDetail{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete logistics detail", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}
