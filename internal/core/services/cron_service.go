package services

import (
	"context"
	"log"

	"github.com/keonU206/Hey-Young-system/internal/core/domain"

	"github.com/robfig/cron/v3"
)

// CronService runs the nightly system-snapshot job: at 00:05 it counts every
// resource and appends one SYSTEM audit entry with the totals, so the log
// carries a daily baseline between admin mutations.
type CronService struct {
	reports *ReportService
	audit   *AuditService
	cron    *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(reports *ReportService, audit *AuditService) *CronService {
	return &CronService{
		reports: reports,
		audit:   audit,
		cron:    cron.New(),
	}
}

// Start schedules and launches the background jobs
func (s *CronService) Start() {
	if _, err := s.cron.AddFunc("5 0 * * *", s.recordDailySnapshot); err != nil {
		log.Printf("⚠️ Failed to schedule daily snapshot: %v", err)
		return
	}

	s.cron.Start()
	log.Println("🕐 Cron service started (daily snapshot at 00:05)")
}

// Stop halts the scheduler and waits for a running job to finish
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Cron service stopped")
}

func (s *CronService) recordDailySnapshot() {
	ctx := context.Background()

	summary, err := s.reports.Summary(ctx)
	if err != nil {
		log.Printf("⚠️ Daily snapshot aborted: %v", err)
		return
	}

	s.audit.Record(ctx, domain.SystemActorID, domain.TargetSystem, 0,
		domain.ActionSystemDailyReport, nil, summary)
}
