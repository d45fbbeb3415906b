package adminapi

import (
	"net/http"
	"strings"

	"github.com/chaintrace/chaintrace/internal/domain"
	"github.com/chaintrace/chaintrace/internal/webserver"
	"github.com/chaintrace/chaintrace/pkg/common"
	"github.com/labstack/echo/v4"
)

type notificationPayload struct {
	Title   string `json:"title" form:"title"`
	Message string `json:"message" form:"message"`
	Type    string `json:"type" form:"type"`
}

func registerNotificationRoutes() {
	webserver.ApiGET("/notifications", listNotifications)
	webserver.ApiPOST("/notifications", createNotification)
	webserver.ApiPUT("/notifications/:id/read", markNotificationRead)
	webserver.ApiPUT("/notifications/read-all", markAllNotificationsRead)
	webserver.ApiDELETE("/notifications/:id", deleteNotification)
}

// listNotifications returns the acting user's notifications, newest
// first, optionally filtered by status.
func listNotifications(c echo.Context) error {
	actor := webserver.ActorID(c)
	if actor == 0 {
		return fail(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "No acting user", nil)
	}
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.Notification{}).Where("user_id = ?", actor)
	if status := strings.TrimSpace(c.QueryParam("status")); status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query notifications", err.Error())
	}
	var rows []domain.Notification
	if err := db.Order("created_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query notifications", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func createNotification(c echo.Context) error {
	actor := webserver.ActorID(c)
	if actor == 0 {
		return fail(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "No acting user", nil)
	}
	var payload notificationPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse notification", err.Error())
	}
	payload.Title = strings.TrimSpace(payload.Title)
	if payload.Title == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Title is required", nil)
	}
	if payload.Type == "" {
		payload.Type = "info"
	}

	n := domain.Notification{
		ID:      common.UUIDint64(),
		UserID:  actor,
		Title:   payload.Title,
		Message: strings.TrimSpace(payload.Message),
		Type:    payload.Type,
		Status:  domain.NotificationUnread,
	}
	if err := GetDB(c).Create(&n).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create notification", err.Error())
	}
	return ok(c, n)
}

func markNotificationRead(c echo.Context) error {
	actor := webserver.ActorID(c)
	if actor == 0 {
		return fail(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "No acting user", nil)
	}
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid notification ID", nil)
	}
	result := GetDB(c).Model(&domain.Notification{}).
		Where("id = ? AND user_id = ?", id, actor).
		Update("status", domain.NotificationRead)
	if result.Error != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update notification", result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Notification not found", nil)
	}
	return ok(c, map[string]interface{}{"id": id, "status": domain.NotificationRead})
}

func markAllNotificationsRead(c echo.Context) error {
	actor := webserver.ActorID(c)
	if actor == 0 {
		return fail(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "No acting user", nil)
	}
	if err := GetDB(c).Model(&domain.Notification{}).
		Where("user_id = ? AND status = ?", actor, domain.NotificationUnread).
		Update("status", domain.NotificationRead).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update notifications", err.Error())
	}
	return ok(c, nil)
}

func deleteNotification(c echo.Context) error {
	actor := webserver.ActorID(c)
	if actor == 0 {
		return fail(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "No acting user", nil)
	}
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid notification ID", nil)
	}
	if err := GetDB(c).Where("id = ? AND user_id = ?", id, actor).Delete(&domain.Notification{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete notification", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}
