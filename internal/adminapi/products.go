package adminapi

import (
	"net/http"
	"strings"

	"github.com/chaintrace/chaintrace/internal/domain"
	"github.com/chaintrace/chaintrace/internal/webserver"
	"github.com/chaintrace/chaintrace/pkg/common"
	"github.com/labstack/echo/v4"
)

type productPayload struct {
	Name        string         `json:"name" form:"name"`
	Description string         `json:"description" form:"description"`
	Category    string         `json:"category" form:"category"`
	Sku         string         `json:"sku" form:"sku"`
	Status      string         `json:"status" form:"status"`
	Metadata    domain.JSONMap `json:"metadata"`
}

// registerProductRoutes registers product CRUD endpoints
func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/:id", getProduct)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	q := strings.TrimSpace(c.QueryParam("q"))
	status := strings.TrimSpace(c.QueryParam("status"))
	category := strings.TrimSpace(c.QueryParam("category"))

	sortField := strings.TrimSpace(c.QueryParam("sort"))
	order := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	// whitelist allowed sort columns to avoid SQL injection
	allowed := map[string]string{
		"id":         "id",
		"name":       "name",
		"sku":        "sku",
		"category":   "category",
		"created_at": "created_at",
	}
	sortCol, okCol := allowed[sortField]
	if !okCol || sortCol == "" {
		sortCol = "created_at"
	}

	db := GetDB(c).Model(&domain.Product{})
	if q != "" {
		db = db.Where("name ILIKE ? OR sku ILIKE ?", "%"+q+"%", "%"+q+"%")
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if category != "" {
		db = db.Where("category = ?", category)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	var rows []domain.Product
	if err := db.Order(sortCol + " " + order).Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	return paged(c, rows, total, page, pageSize)
}

func getProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, p)
}

func validateProductPayload(payload *productPayload) (string, bool) {
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Sku = strings.TrimSpace(payload.Sku)
	if payload.Name == "" {
		return "Name is required", false
	}
	if payload.Sku == "" {
		return "SKU is required", false
	}
	if payload.Status == "" {
		payload.Status = domain.ProductActive
	}
	if !domain.ValidProductStatus(payload.Status) {
		return "Status must be active, inactive or discontinued", false
	}
	return "", true
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if msg, valid := validateProductPayload(&payload); !valid {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	actor := webserver.ActorID(c)
	if actor == 0 {
		return fail(c, http.StatusUnauthorized, "NOT_AUTHENTICATED", "No acting user", nil)
	}

	p := domain.Product{
		ID:          common.UUIDint64(),
		Name:        payload.Name,
		Description: strings.TrimSpace(payload.Description),
		Category:    strings.TrimSpace(payload.Category),
		Sku:         payload.Sku,
		Status:      payload.Status,
		CreatedBy:   actor,
		Metadata:    payload.Metadata,
	}
	if err := GetDB(c).Create(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}
	return ok(c, p)
}

func updateProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if msg, valid := validateProductPayload(&payload); !valid {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	p.Name = payload.Name
	p.Description = strings.TrimSpace(payload.Description)
	p.Category = strings.TrimSpace(payload.Category)
	p.Sku = payload.Sku
	p.Status = payload.Status
	p.Metadata = payload.Metadata

	if err := GetDB(c).Save(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}
	return ok(c, p)
}

func deleteProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.Product{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}
