package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

type lowStockUnitsHandler interface {
	Handle(ctx context.Context, query queries.GetLowStockUnitsQuery) ([]queries.LowStockUnit, error)
}

// LowStockReportJob periodically logs the units that need replenishment.
type LowStockReportJob struct {
	handler   lowStockUnitsHandler
	threshold int
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewLowStockReportJob creates the job. schedule is a six-field cron
// expression, e.g. "0 */5 * * * *".
func NewLowStockReportJob(
	handler lowStockUnitsHandler,
	threshold int,
	schedule string,
	logger *slog.Logger,
) *LowStockReportJob {
	return &LowStockReportJob{
		handler:   handler,
		threshold: threshold,
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "low_stock_report_job"),
	}
}

func (j *LowStockReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Low stock report job started",
		"schedule", j.schedule, "threshold", j.threshold)
	return nil
}

// Run produces one report.
func (j *LowStockReportJob) Run(ctx context.Context) {
	query, err := queries.NewGetLowStockUnitsQuery(j.threshold)
	if err != nil {
		j.logger.ErrorContext(ctx, "Low stock report misconfigured", "error", err)
		return
	}

	units, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Low stock report failed", "error", err)
		return
	}

	if len(units) == 0 {
		j.logger.DebugContext(ctx, "No low stock units", "threshold", j.threshold)
		return
	}

	for _, u := range units {
		j.logger.WarnContext(ctx, "Low stock",
			"storage_unit_id", u.ID.String(),
			"sku", u.SKU,
			"location", u.LocationCode,
			"zone", u.Zone,
			"available", u.Available,
			"reserved", u.Reserved,
		)
	}
	j.logger.InfoContext(ctx, "Low stock report", "units", len(units), "threshold", j.threshold)
}

func (j *LowStockReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Low stock report job stopped")
}
