package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/chaintrace/chaintrace/internal/domain"
	"github.com/chaintrace/chaintrace/internal/webserver"
	"github.com/chaintrace/chaintrace/pkg/common"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type loginPayload struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func registerAuthRoutes() {
	webserver.PubPOST("/login", login)
}

func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse credentials", err.Error())
	}
	payload.Username = strings.TrimSpace(payload.Username)
	if payload.Username == "" || payload.Password == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Username and password are required", nil)
	}

	var profile domain.Profile
	if err := GetDB(c).Where("username = ?", payload.Username).First(&profile).Error; err != nil {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password", nil)
	}
	if !common.CheckPassword(profile.Password, payload.Password) {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password", nil)
	}

	secret := webserver.GetAppContext(c).Config().Web.JwtSecret
	token, err := webserver.IssueToken(secret, profile.ID, profile.Username, profile.Role)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue token", err.Error())
	}

	if err := GetDB(c).Model(&domain.Profile{}).Where("id = ?", profile.ID).
		Update("last_login", time.Now()).Error; err != nil {
		zap.L().Warn("failed to update last login", zap.Error(err))
	}

	return ok(c, map[string]interface{}{
		"token":    token,
		"username": profile.Username,
		"role":     profile.Role,
	})
}
