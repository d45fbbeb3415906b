package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/chaintrace/chaintrace/internal/domain"
	"github.com/chaintrace/chaintrace/internal/webserver"
	"github.com/chaintrace/chaintrace/pkg/common"
	"github.com/labstack/echo/v4"
)

type reportPayload struct {
	Name      string `json:"name" form:"name"`
	Type      string `json:"type" form:"type"`
	Frequency string `json:"frequency" form:"frequency"`
	Status    string `json:"status" form:"status"`
}

func registerReportRoutes() {
	webserver.ApiGET("/reports", listReports)
	webserver.ApiGET("/reports/:id", getReport)
	webserver.ApiPOST("/reports", createReport)
	webserver.ApiPUT("/reports/:id", updateReport)
	webserver.ApiDELETE("/reports/:id", deleteReport)
	webserver.ApiPOST("/reports/:id/run", runReport)
}

func listReports(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.Report{})
	if status := strings.TrimSpace(c.QueryParam("status")); status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query reports", err.Error())
	}
	var rows []domain.Report
	if err := db.Order("created_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query reports", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getReport(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid report ID", nil)
	}
	var r domain.Report
	if err := GetDB(c).Where("id = ?", id).First(&r).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Report not found", nil)
	}
	return ok(c, r)
}

func createReport(c echo.Context) error {
	actor := webserver.ActorID(c)
	if actor == 0 {
		return fail(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "No acting user", nil)
	}
	var payload reportPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse report", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}
	if !domain.ValidReportFrequency(payload.Frequency) {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Frequency must be daily, weekly or monthly", nil)
	}
	if payload.Status == "" {
		payload.Status = domain.ReportActive
	}

	now := time.Now()
	r := domain.Report{
		ID:        common.UUIDint64(),
		Name:      payload.Name,
		Type:      strings.TrimSpace(payload.Type),
		Frequency: payload.Frequency,
		Status:    payload.Status,
		CreatedBy: actor,
		NextRun:   domain.NextRunAfter(now, payload.Frequency),
	}
	if err := GetDB(c).Create(&r).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create report", err.Error())
	}
	return ok(c, r)
}

func updateReport(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid report ID", nil)
	}
	var r domain.Report
	if err := GetDB(c).Where("id = ?", id).First(&r).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Report not found", nil)
	}

	var payload reportPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse report", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}
	if !domain.ValidReportFrequency(payload.Frequency) {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Frequency must be daily, weekly or monthly", nil)
	}

	r.Name = payload.Name
	r.Type = strings.TrimSpace(payload.Type)
	r.Frequency = payload.Frequency
	if payload.Status != "" {
		r.Status = payload.Status
	}

	if err := GetDB(c).Save(&r).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update report", err.Error())
	}
	return ok(c, r)
}

func deleteReport(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid report ID", nil)
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.Report{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete report", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}

// runReport triggers an immediate execution and returns the refreshed row.
func runReport(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid report ID", nil)
	}
	if err := webserver.GetAppContext(c).RunReportNow(id); err != nil {
		return fail(c, http.StatusInternalServerError, "REPORT_ERROR", "Failed to run report", err.Error())
	}
	var r domain.Report
	if err := GetDB(c).Where("id = ?", id).First(&r).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Report not found", nil)
	}
	return ok(c, r)
}
