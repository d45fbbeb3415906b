package adminapi

import (
	"net/http"
	"strings"

	"github.com/chaintrace/chaintrace/internal/domain"
	"github.com/chaintrace/chaintrace/internal/webserver"
	"github.com/chaintrace/chaintrace/pkg/common"
	"github.com/labstack/echo/v4"
)

type locationPayload struct {
	Name      string         `json:"name" form:"name"`
	Address   string         `json:"address" form:"address"`
	Type      string         `json:"type" form:"type"`
	Latitude  float64        `json:"latitude" form:"latitude"`
	Longitude float64        `json:"longitude" form:"longitude"`
	Metadata  domain.JSONMap `json:"metadata"`
}

func registerLocationRoutes() {
	webserver.ApiGET("/locations", listLocations)
	webserver.ApiGET("/locations/:id", getLocation)
	webserver.ApiPOST("/locations", createLocation)
	webserver.ApiPUT("/locations/:id", updateLocation)
	webserver.ApiDELETE("/locations/:id", deleteLocation)
}

func listLocations(c echo.Context) error {
	page, pageSize := parsePagination(c)

	q := strings.TrimSpace(c.QueryParam("q"))
	typeFilter := strings.TrimSpace(c.QueryParam("type"))

	db := GetDB(c).Model(&domain.Location{})
	if q != "" {
		db = db.Where("name ILIKE ? OR address ILIKE ?", "%"+q+"%", "%"+q+"%")
	}
	if typeFilter != "" {
		db = db.Where("type = ?", typeFilter)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query locations", err.Error())
	}

	var rows []domain.Location
	if err := db.Order("name ASC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query locations", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getLocation(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid location ID", nil)
	}
	var loc domain.Location
	if err := GetDB(c).Where("id = ?", id).First(&loc).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Location not found", nil)
	}
	return ok(c, loc)
}

func validateLocationPayload(payload *locationPayload) (string, bool) {
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Address = strings.TrimSpace(payload.Address)
	if payload.Name == "" {
		return "Name is required", false
	}
	if payload.Address == "" {
		return "Address is required", false
	}
	if !domain.ValidLocationType(payload.Type) {
		return "Type must be warehouse, distribution_center or retail", false
	}
	return "", true
}

func createLocation(c echo.Context) error {
	var payload locationPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse location", err.Error())
	}
	if msg, valid := validateLocationPayload(&payload); !valid {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	loc := domain.Location{
		ID:        common.UUIDint64(),
		Name:      payload.Name,
		Address:   payload.Address,
		Type:      payload.Type,
		Latitude:  payload.Latitude,
		Longitude: payload.Longitude,
		Metadata:  payload.Metadata,
	}
	if err := GetDB(c).Create(&loc).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create location", err.Error())
	}
	return ok(c, loc)
}

func updateLocation(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid location ID", nil)
	}
	var loc domain.Location
	if err := GetDB(c).Where("id = ?", id).First(&loc).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Location not found", nil)
	}

	var payload locationPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse location", err.Error())
	}
	if msg, valid := validateLocationPayload(&payload); !valid {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	loc.Name = payload.Name
	loc.Address = payload.Address
	loc.Type = payload.Type
	loc.Latitude = payload.Latitude
	loc.Longitude = payload.Longitude
	loc.Metadata = payload.Metadata

	if err := GetDB(c).Save(&loc).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update location", err.Error())
	}
	return ok(c, loc)
}

func deleteLocation(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid location ID", nil)
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.Location{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete location", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}
