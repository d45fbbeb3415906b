package adminapi

import (
	"net/http"
	"strconv"

	"github.com/chaintrace/chaintrace/internal/domain"
	"github.com/chaintrace/chaintrace/internal/webserver"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// restResult is the uniform API envelope.
type restResult struct {
	Code    string      `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Detail  interface{} `json:"detail,omitempty"`
}

type pagedResult struct {
	Rows     interface{} `json:"rows"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, restResult{Code: "OK", Data: data})
}

func fail(c echo.Context, status int, code, msg string, detail interface{}) error {
	return c.JSON(status, restResult{Code: code, Message: msg, Detail: detail})
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, restResult{Code: "OK", Data: pagedResult{
		Rows: rows, Total: total, Page: page, PageSize: pageSize,
	}})
}

// failFor maps the domain error taxonomy to rest failures.
func failFor(c echo.Context, err error) error {
	switch {
	case domain.IsValidation(err):
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	case domain.IsNotAuthenticated(err):
		return fail(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", err.Error(), nil)
	case domain.IsComputation(err):
		return fail(c, http.StatusUnprocessableEntity, "COMPUTATION_ERROR", err.Error(), nil)
	default:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", err.Error(), nil)
	}
}

// GetDB returns the request-scoped database handle.
func GetDB(c echo.Context) *gorm.DB {
	return webserver.GetAppContext(c).DB()
}

// parsePagination reads page/perPage query params with sane bounds.
func parsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	pageSize = 20
	if ps, err := strconv.Atoi(c.QueryParam("perPage")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}

func parseID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// InitRouter registers every admin API route. Call after webserver.Init.
func InitRouter() {
	registerAuthRoutes()
	registerProductRoutes()
	registerLocationRoutes()
	registerTransactionRoutes()
	registerLogisticsRoutes()
	registerNotificationRoutes()
	registerReportRoutes()
	registerProfileRoutes()
	registerAnalyticsRoutes()
}
