package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/clock"

	"github.com/robfig/cron/v3"
)

type ordersByStatusHandler interface {
	Handle(ctx context.Context, query queries.GetOrdersByStatusQuery) ([]queries.OrderSummary, error)
}

// BacklogReportJob periodically logs the orders that have not entered picking yet.
type BacklogReportJob struct {
	handler  ordersByStatusHandler
	schedule string
	clock    clock.Clock
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewBacklogReportJob(
	handler ordersByStatusHandler,
	schedule string,
	clk clock.Clock,
	logger *slog.Logger,
) *BacklogReportJob {
	return &BacklogReportJob{
		handler:  handler,
		schedule: schedule,
		clock:    clk,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "backlog_report_job"),
	}
}

func (j *BacklogReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Backlog report job started", "schedule", j.schedule)
	return nil
}

// Run produces one report. The handler returns orders oldest first.
func (j *BacklogReportJob) Run(ctx context.Context) {
	query, err := queries.NewGetOrdersByStatusQuery(order.Received)
	if err != nil {
		j.logger.ErrorContext(ctx, "Backlog report misconfigured", "error", err)
		return
	}

	received, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Backlog report failed", "error", err)
		return
	}

	if len(received) == 0 {
		j.logger.DebugContext(ctx, "No orders waiting for picking")
		return
	}

	oldest := received[0]
	j.logger.InfoContext(ctx, "Orders waiting for picking",
		"count", len(received),
		"oldest_order_id", oldest.ID.String(),
		"oldest_wait", j.clock.Now().Sub(oldest.CreatedAt).Round(time.Second).String(),
	)
}

func (j *BacklogReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Backlog report job stopped")
}
