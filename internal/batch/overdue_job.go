package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"loan-manager/internal/domain/loan"
	"loan-manager/internal/event"
	"loan-manager/internal/infrastructure/monitoring"
)

// OverdueSweepJob scans for open loans past their due date and publishes
// an overdue event for each one.
type OverdueSweepJob struct {
	loanRepo  loan.Repository
	publisher event.EventPublisher
	logger    *slog.Logger
}

func NewOverdueSweepJob(loanRepo loan.Repository, publisher event.EventPublisher, logger *slog.Logger) *OverdueSweepJob {
	if loanRepo == nil || publisher == nil || logger == nil {
		panic("OverdueSweepJob dependencies cannot be nil")
	}
	return &OverdueSweepJob{
		loanRepo:  loanRepo,
		publisher: publisher,
		logger:    logger.With("job", "OverdueSweep"),
	}
}

func (j *OverdueSweepJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting overdue loan sweep job.")

	overdue, err := j.loanRepo.FindOverdue(ctx, startTime)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to get overdue loans, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to get overdue loans: %w", err)
	}
	j.logger.InfoContext(ctx, "Fetched overdue loans.", slog.Int("count", len(overdue)))

	if len(overdue) == 0 {
		j.logger.InfoContext(ctx, "No overdue loans found.", slog.Duration("duration", time.Since(startTime)))
		return nil
	}

	var wg sync.WaitGroup
	var publishedCount, errorCount int32

	for _, l := range overdue {
		wg.Add(1)
		go func(current *loan.Loan) {
			defer wg.Done()

			logCtx := j.logger.With(slog.String("loanID", current.ID.String()))
			logCtx.DebugContext(ctx, "Publishing overdue event for loan.")

			publishErr := j.publisher.PublishLoanOverdue(ctx, event.LoanOverdueEvent{
				LoanID:     current.ID,
				CustomerID: current.CustomerID,
				DueDate:    current.PaymentDate,
				AmountDue:  current.TotalAmountToPay,
				OccurredAt: startTime.UTC(),
			})
			if publishErr != nil {
				logCtx.ErrorContext(ctx, "Failed to publish overdue event", slog.Any("error", publishErr))
				atomic.AddInt32(&errorCount, 1)
				return
			}

			monitoring.RecordOverdueLoan()
			atomic.AddInt32(&publishedCount, 1)
		}(l)
	}

	wg.Wait()

	j.logger.InfoContext(ctx, "Overdue loan sweep job finished.",
		slog.Int("total", len(overdue)),
		slog.Int("published", int(atomic.LoadInt32(&publishedCount))),
		slog.Int("errors", int(atomic.LoadInt32(&errorCount))),
		slog.Duration("duration", time.Since(startTime)))

	if errorCount > 0 {
		return fmt.Errorf("overdue sweep finished with %d errors", errorCount)
	}
	return nil
}
