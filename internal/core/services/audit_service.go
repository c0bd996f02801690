package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/keonU206/Hey-Young-system/internal/adapters/persistence/models"
	"github.com/keonU206/Hey-Young-system/internal/adapters/persistence/repositories"
	"github.com/keonU206/Hey-Young-system/internal/core/domain"
)

// AuditService appends immutable audit entries around sensitive operations.
// It is strictly best-effort: a failed audit write is logged to the process
// log and never surfaces to the caller, so it cannot fail or roll back the
// business operation it accompanies. Callers invoke Record after the primary
// mutation has committed.
type AuditService struct {
	repo repositories.AuditLogRepository
}

// NewAuditService creates a new audit service
func NewAuditService(repo repositories.AuditLogRepository) *AuditService {
	return &AuditService{repo: repo}
}

// Record writes one audit entry. actorID 0 means system work. before and
// after are serialized as JSON snapshots; nil stays NULL. Snapshots must
// never contain password material - callers pass response DTOs, which omit
// hashes by construction.
func (s *AuditService) Record(ctx context.Context, actorID uint, targetType domain.AuditTargetType, targetID uint, action string, before, after interface{}) {
	entry := &models.AuditLog{
		ActorID:    actorID,
		TargetType: string(targetType),
		TargetID:   targetID,
		Action:     action,
	}

	var err error
	if entry.BeforeData, err = marshalSnapshot(before); err != nil {
		log.Printf("⚠️ audit: before snapshot for %s/%s: %v", targetType, action, err)
	}
	if entry.AfterData, err = marshalSnapshot(after); err != nil {
		log.Printf("⚠️ audit: after snapshot for %s/%s: %v", targetType, action, err)
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		log.Printf("⚠️ audit: write failed for %s/%s target %d: %v", targetType, action, targetID, err)
	}
}

// Recent returns the latest audit entries newest-first
func (s *AuditService) Recent(ctx context.Context, limit int) ([]*models.AuditLogResponse, error) {
	return s.repo.ListRecent(ctx, limit)
}

// RecentErrors returns the latest entries whose action marks an error
func (s *AuditService) RecentErrors(ctx context.Context, limit int) ([]*models.AuditLogResponse, error) {
	return s.repo.ListRecentByActionPrefix(ctx, "ERROR_", limit)
}

func marshalSnapshot(v interface{}) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
