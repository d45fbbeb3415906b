package adminapi

import (
	"net/http"
	"strings"

	"github.com/chaintrace/chaintrace/internal/domain"
	"github.com/chaintrace/chaintrace/internal/webserver"
	"github.com/chaintrace/chaintrace/pkg/common"
	"github.com/labstack/echo/v4"
)

type profilePayload struct {
	Username    string `json:"username" form:"username"`
	Password    string `json:"password" form:"password"`
	FullName    string `json:"full_name" form:"full_name"`
	CompanyName string `json:"company_name" form:"company_name"`
	Role        string `json:"role" form:"role"`
}

func registerProfileRoutes() {
	webserver.ApiGET("/profiles", listProfiles)
	webserver.ApiGET("/profiles/me", getCurrentProfile)
	webserver.ApiGET("/profiles/:id", getProfile)
	webserver.ApiPOST("/profiles", createProfile)
	webserver.ApiPUT("/profiles/:id", updateProfile)
	webserver.ApiDELETE("/profiles/:id", deleteProfile)
}

func listProfiles(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.Profile{})
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		db = db.Where("username ILIKE ? OR full_name ILIKE ?", "%"+q+"%", "%"+q+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query profiles", err.Error())
	}
	var rows []domain.Profile
	if err := db.Order("username ASC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query profiles", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getCurrentProfile(c echo.Context) error {
	actor := webserver.ActorID(c)
	if actor == 0 {
		return fail(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "No acting user", nil)
	}
	var p domain.Profile
	if err := GetDB(c).Where("id = ?", actor).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Profile not found", nil)
	}
	return ok(c, p)
}

func getProfile(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid profile ID", nil)
	}
	var p domain.Profile
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Profile not found", nil)
	}
	return ok(c, p)
}

func createProfile(c echo.Context) error {
	var payload profilePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse profile", err.Error())
	}
	payload.Username = strings.TrimSpace(payload.Username)
	if payload.Username == "" || payload.Password == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Username and password are required", nil)
	}
	if payload.Role == "" {
		payload.Role = "viewer"
	}

	hashed, err := common.HashPassword(payload.Password)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "HASH_ERROR", "Failed to hash password", err.Error())
	}

	p := domain.Profile{
		ID:          common.UUIDint64(),
		Username:    payload.Username,
		Password:    hashed,
		FullName:    strings.TrimSpace(payload.FullName),
		CompanyName: strings.TrimSpace(payload.CompanyName),
		Role:        payload.Role,
	}
	if err := GetDB(c).Create(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create profile", err.Error())
	}
	return ok(c, p)
}

func updateProfile(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid profile ID", nil)
	}
	var p domain.Profile
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Profile not found", nil)
	}

	var payload profilePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse profile", err.Error())
	}

	p.FullName = strings.TrimSpace(payload.FullName)
	p.CompanyName = strings.TrimSpace(payload.CompanyName)
	if payload.Role != "" {
		p.Role = payload.Role
	}
	if payload.Password != "" {
		hashed, err := common.HashPassword(payload.Password)
		if err != nil {
			return fail(c, http.StatusInternalServerError, "HASH_ERROR", "Failed to hash password", err.Error())
		}
		p.Password = hashed
	}

	if err := GetDB(c).Save(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update profile", err.Error())
	}
	return ok(c, p)
}

func deleteProfile(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid profile ID", nil)
	}
	actor := webserver.ActorID(c)
	if actor == id {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Cannot delete the acting profile", nil)
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.Profile{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete profile", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}
