package identity

import (
	"go.uber.org/zap"

	"github.com/shopora/backend/internal/domain/shared"
)

// publishEvents records the aggregates' pending domain events in the
// structured log and clears them
func publishEvents(logger *zap.Logger, aggs ...shared.AggregateRoot) {
	for _, agg := range aggs {
		for _, event := range agg.GetDomainEvents() {
			logger.Info("Domain event",
				zap.String("event_type", event.EventType()),
				zap.String("aggregate_type", event.AggregateType()),
				zap.String("aggregate_id", event.AggregateID().String()))
		}
		agg.ClearDomainEvents()
	}
}
