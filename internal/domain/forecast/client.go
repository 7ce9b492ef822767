package forecast

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SnapshotResult is one prediction returned by the forecasting collaborator.
type SnapshotResult struct {
	ProductID      uuid.UUID `json:"product_id"`
	TargetWeek     time.Time `json:"target_week"`
	YPred          float64   `json:"y_pred"`
	ActualOrderQty *int      `json:"actual_order_qty,omitempty"`
}

// Client talks to the external forecasting collaborator. Failures surface as
// shared.ErrUpstreamUnavailable; callers log and fall back to stored
// snapshots, relying on the next scheduled run instead of retrying.
type Client interface {
	Retrain(ctx context.Context) error
	LatestSnapshot(ctx context.Context, productID uuid.UUID, targetWeek time.Time) (*SnapshotResult, error)
}
