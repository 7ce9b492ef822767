package replenishment

import (
	"context"

	"github.com/supplychain/backend/internal/domain/purchase"
	"go.uber.org/zap"
)

// Notifier pushes human-facing signals about engine activity. Calls are
// fire-and-forget: failures are logged by the caller and never roll back the
// work that triggered them.
type Notifier interface {
	AutoPurchaseCreated(ctx context.Context, po *purchase.PurchaseOrder) error
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) AutoPurchaseCreated(context.Context, *purchase.PurchaseOrder) error {
	return nil
}

var _ Notifier = NopNotifier{}

// LogNotifier surfaces engine signals through the application log, where HQ
// staff alerting picks them up.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) AutoPurchaseCreated(_ context.Context, po *purchase.PurchaseOrder) error {
	n.logger.Info("Auto purchase draft created",
		zap.String("po_number", po.PONumber),
		zap.String("supplier_id", po.SupplierID.String()),
		zap.Int("lines", len(po.Details)),
		zap.Int("total_qty", po.TotalQty()),
	)
	return nil
}

var _ Notifier = (*LogNotifier)(nil)
