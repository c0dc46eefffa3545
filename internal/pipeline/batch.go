package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hanselhansel/agentlens/internal/model"
)

// BatchProcessor runs whole site audits concurrently for a target list.
//
// Design decision: a separate BatchProcessor rather than batch support in
// the Auditor because it keeps the Auditor focused on one audit and
// leaves room for different batch strategies later.
type BatchProcessor struct {
	// auditor runs the individual audits.
	auditor *Auditor

	// concurrency is the maximum number of simultaneous audits.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets the batch-level logger.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithBatchConcurrency sets the maximum number of simultaneous audits.
func WithBatchConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a BatchProcessor around an Auditor.
func NewBatchProcessor(auditor *Auditor, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		auditor:     auditor,
		concurrency: 4,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(bp)
	}
	return bp
}

// ProcessBatch audits every target concurrently, respecting the
// concurrency limit, and returns the reports in input order. Every target
// gets a report: per-audit failures live inside the individual reports,
// and deadline expiry produces a synthetic timeout report.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, targets []model.AuditTarget) []*model.SiteAuditReport {
	bp.logger.Info("starting batch audit",
		"total_targets", len(targets),
		"concurrency", bp.concurrency,
	)
	start := time.Now()

	results := make([]*model.SiteAuditReport, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, target := range targets {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				report := model.NewSiteAuditReport(target.URL, target.Domain)
				report.AddError("Batch cancelled: " + gctx.Err().Error())
				results[i] = report
				return nil
			default:
			}

			bp.logger.Info("auditing site",
				"url", target.URL,
				"index", i+1,
				"total", len(targets),
			)
			results[i] = bp.auditor.AuditSite(gctx, target)
			return nil
		})
	}

	// Workers never return errors, so Wait only synchronizes.
	_ = g.Wait()

	bp.logger.Info("batch audit complete",
		"total_targets", len(targets),
		"elapsed", time.Since(start),
	)

	return results
}
