package repositories

import (
	"context"

	"github.com/keonU206/Hey-Young-system/internal/adapters/persistence/models"
	"github.com/keonU206/Hey-Young-system/internal/core/domain"

	"gorm.io/gorm"
)

// auditLogRepository implements AuditLogRepository interface
type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

// Create appends one audit entry
func (r *auditLogRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListRecent returns the latest entries newest-first with actors resolved
func (r *auditLogRepository) ListRecent(ctx context.Context, limit int) ([]*models.AuditLogResponse, error) {
	var entries []*models.AuditLog
	err := r.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return r.resolveActors(ctx, entries)
}

// ListRecentByActionPrefix returns the latest entries whose action starts with
// the given prefix, newest-first
func (r *auditLogRepository) ListRecentByActionPrefix(ctx context.Context, prefix string, limit int) ([]*models.AuditLogResponse, error) {
	var entries []*models.AuditLog
	err := r.db.WithContext(ctx).
		Where("action LIKE ?", prefix+"%").
		Order("created_at desc").Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return r.resolveActors(ctx, entries)
}

// resolveActors stitches user rows onto entries in one extra query.
// actor_id is a weak reference: entries keep an id even after the user row is
// gone, so missing users (and the system sentinel 0) yield a nil actor.
func (r *auditLogRepository) resolveActors(ctx context.Context, entries []*models.AuditLog) ([]*models.AuditLogResponse, error) {
	idSet := make(map[uint]struct{})
	for _, e := range entries {
		if e.ActorID != domain.SystemActorID {
			idSet[e.ActorID] = struct{}{}
		}
	}

	actors := make(map[uint]*models.AuditActor)
	if len(idSet) > 0 {
		ids := make([]uint, 0, len(idSet))
		for id := range idSet {
			ids = append(ids, id)
		}

		var users []*models.User
		if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
			return nil, err
		}
		for _, u := range users {
			actors[u.ID] = &models.AuditActor{
				ID:      u.ID,
				LoginID: u.LoginID,
				Name:    u.Name,
				Role:    u.Role,
			}
		}
	}

	out := make([]*models.AuditLogResponse, len(entries))
	for i, e := range entries {
		out[i] = &models.AuditLogResponse{
			ID:         e.ID,
			Actor:      actors[e.ActorID],
			TargetType: e.TargetType,
			TargetID:   e.TargetID,
			Action:     e.Action,
			BeforeData: e.BeforeData,
			AfterData:  e.AfterData,
			CreatedAt:  e.CreatedAt,
		}
	}
	return out, nil
}
