package adminapi

import (
	"net/http"
	"strings"

	"github.com/chaintrace/chaintrace/internal/domain"
	"github.com/chaintrace/chaintrace/internal/lineage"
	"github.com/chaintrace/chaintrace/internal/webserver"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
)

type transactionPayload struct {
	ProductID       string         `json:"product_id" form:"product_id"`
	TransactionType string         `json:"transaction_type" form:"transaction_type"`
	FromLocationID  string         `json:"from_location_id" form:"from_location_id"`
	ToLocationID    string         `json:"to_location_id" form:"to_location_id"`
	Status          string         `json:"status" form:"status"`
	Metadata        domain.JSONMap `json:"metadata"`
}

type transactionStatusPayload struct {
	Status string `json:"status" form:"status"`
}

func registerTransactionRoutes() {
	webserver.ApiGET("/transactions", listTransactions)
	webserver.ApiGET("/transactions/export", exportTransactions)
	webserver.ApiGET("/transactions/:id", getTransaction)
	webserver.ApiGET("/transactions/:id/history", getTransactionHistory)
	webserver.ApiPOST("/transactions", createTransaction)
	webserver.ApiPUT("/transactions/:id", updateTransactionStatus)
	webserver.ApiDELETE("/transactions/:id", deleteTransaction)
}

func listTransactions(c echo.Context) error {
	page, pageSize := parsePagination(c)

	filter := map[string]interface{}{}
	if v := strings.TrimSpace(c.QueryParam("product_id")); v != "" {
		filter["product_id"] = cast.ToInt64(v)
	}
	if v := strings.TrimSpace(c.QueryParam("type")); v != "" {
		filter["transaction_type"] = v
	}
	if v := strings.TrimSpace(c.QueryParam("status")); v != "" {
		filter["status"] = v
	}

	repo := lineage.NewGormTransactionRepository(GetDB(c))
	rows, total, err := repo.ListWithJoins(c.Request().Context(), filter, page, pageSize)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query transactions", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getTransaction(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid transaction ID", nil)
	}
	var txn domain.Transaction
	if err := GetDB(c).Where("id = ?", id).First(&txn).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Transaction not found", nil)
	}
	return ok(c, txn)
}

// getTransactionHistory returns the full chain for the transaction's
// product, oldest first.
func getTransactionHistory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid transaction ID", nil)
	}
	var txn domain.Transaction
	if err := GetDB(c).Where("id = ?", id).First(&txn).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Transaction not found", nil)
	}

	chain, err := webserver.GetAppContext(c).Lineage().History(c.Request().Context(), txn.ProductID)
	if err != nil {
		return failFor(c, err)
	}
	return ok(c, chain)
}

func createTransaction(c echo.Context) error {
	var payload transactionPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse transaction", err.Error())
	}

	req := lineage.AppendRequest{
		ActorID:   webserver.ActorID(c),
		ProductID: cast.ToInt64(payload.ProductID),
		Type:      strings.TrimSpace(payload.TransactionType),
		Status:    strings.TrimSpace(payload.Status),
		Metadata:  payload.Metadata,
	}
	if v := cast.ToInt64(payload.FromLocationID); v != 0 {
		req.FromLocationID = &v
	}
	if v := cast.ToInt64(payload.ToLocationID); v != 0 {
		req.ToLocationID = &v
	}

	txn, err := webserver.GetAppContext(c).Lineage().Append(c.Request().Context(), req)
	if err != nil {
		return failFor(c, err)
	}
	return ok(c, txn)
}

// updateTransactionStatus mutates only the status. The chain link and
// hash are immutable after creation.
func updateTransactionStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid transaction ID", nil)
	}
	var payload transactionStatusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse status", err.Error())
	}
	if err := webserver.GetAppContext(c).Lineage().UpdateStatus(c.Request().Context(), id, strings.TrimSpace(payload.Status)); err != nil {
		return failFor(c, err)
	}
	var txn domain.Transaction
	if err := GetDB(c).Where("id = ?", id).First(&txn).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Transaction not found", nil)
	}
	return ok(c, txn)
}

func deleteTransaction(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid transaction ID", nil)
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.Transaction{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete transaction", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}
