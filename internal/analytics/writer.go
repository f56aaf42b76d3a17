package analytics

import (
	"context"
	"time"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/bigquery"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/config"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/logger"
	"github.com/google/uuid"
)

// MarketplaceEvent is one analytics row streamed to the warehouse.
type MarketplaceEvent struct {
	EventType  string    `bigquery:"event_type"`
	ActorID    string    `bigquery:"actor_id"`
	SubjectID  string    `bigquery:"subject_id"`
	Detail     string    `bigquery:"detail"`
	OccurredAt time.Time `bigquery:"occurred_at"`
}

// Recorder streams marketplace events to the analytics warehouse. Recording
// is best effort and never fails the calling request.
type Recorder interface {
	Record(ctx context.Context, eventType string, actorID, subjectID uuid.UUID, detail string)
}

type bigqueryRecorder struct {
	client *bigquery.Client
	table  string
	logger *logger.Logger
	now    func() time.Time
}

// NewRecorder builds a BigQuery-backed recorder.
func NewRecorder(client *bigquery.Client, cfg config.BigQueryConfig, logg *logger.Logger) Recorder {
	if client == nil {
		return Noop{}
	}
	return &bigqueryRecorder{
		client: client,
		table:  cfg.MarketplaceEventsTable,
		logger: logg,
		now:    time.Now,
	}
}

func (r *bigqueryRecorder) Record(ctx context.Context, eventType string, actorID, subjectID uuid.UUID, detail string) {
	row := MarketplaceEvent{
		EventType:  eventType,
		ActorID:    actorID.String(),
		SubjectID:  subjectID.String(),
		Detail:     detail,
		OccurredAt: r.now(),
	}
	if err := r.client.Put(ctx, r.table, []MarketplaceEvent{row}); err != nil && r.logger != nil {
		ctx = r.logger.WithFields(ctx, map[string]any{"event_type": eventType})
		r.logger.Error(ctx, "record analytics event", err)
	}
}

// Noop drops analytics events; used when the warehouse is not configured.
type Noop struct{}

func (Noop) Record(ctx context.Context, eventType string, actorID, subjectID uuid.UUID, detail string) {
}
