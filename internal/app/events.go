package app

import (
	"fmt"

	"github.com/chaintrace/chaintrace/internal/domain"
	"github.com/chaintrace/chaintrace/internal/lineage"
	"github.com/chaintrace/chaintrace/pkg/common"
	"go.uber.org/zap"
)

// initEvents subscribes dashboard notification creation to chain events.
func (a *Application) initEvents() {
	err := a.bus.SubscribeAsync(lineage.TopicTransactionCreated, a.onTransactionCreated, false)
	if err != nil {
		zap.L().Error("failed to subscribe transaction events", zap.Error(err))
	}
}

func (a *Application) onTransactionCreated(txn *domain.Transaction) {
	n := &domain.Notification{
		ID:      common.UUIDint64(),
		UserID:  txn.CreatedBy,
		Title:   "Transaction recorded",
		Message: fmt.Sprintf("%s transaction %d recorded for product %d", txn.TransactionType, txn.ID, txn.ProductID),
		Type:    "info",
		Status:  domain.NotificationUnread,
	}
	if err := a.gormDB.Create(n).Error; err != nil {
		zap.L().Error("failed to create notification", zap.Error(err))
	}
}
