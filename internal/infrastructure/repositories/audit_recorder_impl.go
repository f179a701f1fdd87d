package repositories

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"wanderlite.backend/internal/domain/entities"
	domainErrors "wanderlite.backend/internal/domain/errors"
	domainRepos "wanderlite.backend/internal/domain/repositories"
	"wanderlite.backend/internal/infrastructure/models"
	"wanderlite.backend/internal/infrastructure/schema"
	"wanderlite.backend/pkg/logger"
)

// AuditRecorderImpl writes administrative actions through a two-tier sink
// chain: kyc_audit_logs first, admin_actions as fallback. A deployment may
// carry either table, both, or neither; the chain is re-evaluated on every
// call. Only when no sink accepts the entry does Record return an error,
// and by then the full entry has already been logged so the action remains
// traceable through log aggregation.
type AuditRecorderImpl struct {
	db *gorm.DB
}

// NewAuditRecorder creates a new audit recorder
func NewAuditRecorder(db *gorm.DB) domainRepos.AuditRecorder {
	return &AuditRecorderImpl{db: db}
}

// tryInsert runs one sink INSERT inside a nested transaction. When Record
// runs inside an open unit of work this is a savepoint, so a rejected
// insert (missing columns, constraint mismatch) rolls back to the
// savepoint instead of aborting the caller's transaction. On Postgres a
// plain failed statement would poison every later statement, including
// the fallback sink's.
func tryInsert(ctx context.Context, db *gorm.DB, model interface{}) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(model).Error
	})
}

// Record persists the entry into the first accepting sink.
func (r *AuditRecorderImpl) Record(ctx context.Context, entry *entities.AuditEntry) error {
	db := GetDB(ctx, r.db)

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	var firstErr error
	if schema.HasTable(ctx, db, models.KYCAuditLog{}.TableName()) {
		model := &models.KYCAuditLog{
			ID:         entry.ID,
			AdminID:    entry.ActorID,
			Action:     entry.Action,
			TargetType: entry.TargetType,
			TargetID:   entry.TargetID,
			Note:       entry.Note,
			SourceIP:   entry.SourceIP,
			CreatedAt:  entry.CreatedAt,
		}
		if err := tryInsert(ctx, db, model); err == nil {
			return nil
		} else {
			firstErr = err
			logger.Warn(ctx, "primary audit sink rejected entry, trying fallback",
				zap.String("action", entry.Action), zap.Error(err))
		}
	}

	if schema.HasTable(ctx, db, models.AdminAction{}.TableName()) {
		model := &models.AdminAction{
			ID:         entry.ID,
			ActorID:    entry.ActorID,
			ActionType: entry.Action,
			Entity:     entry.TargetType,
			EntityID:   entry.TargetID,
			Detail:     entry.Note,
			IPAddress:  entry.SourceIP,
			CreatedAt:  entry.CreatedAt,
		}
		if err := tryInsert(ctx, db, model); err == nil {
			return nil
		} else if firstErr == nil {
			firstErr = err
		}
	}

	// No sink accepted the entry. Log every field so the action survives
	// in the log stream, then report the failure as a warning condition.
	logger.Error(ctx, "audit entry not durable, absorbed into log stream",
		zap.String("audit_id", entry.ID.String()),
		zap.String("actor_id", entry.ActorID.String()),
		zap.String("action", entry.Action),
		zap.String("target_type", entry.TargetType),
		zap.String("target_id", entry.TargetID),
		zap.String("note", entry.Note),
		zap.String("source_ip", entry.SourceIP),
		zap.Error(firstErr))
	return domainErrors.ErrAuditNotDurable
}

// List merges entries from both sinks, newest first.
func (r *AuditRecorderImpl) List(ctx context.Context, limit int) ([]*entities.AuditEntry, error) {
	if limit <= 0 || limit > maxListRows {
		limit = maxListRows
	}
	db := GetDB(ctx, r.db)

	entries := make([]*entities.AuditEntry, 0, limit)

	if schema.HasTable(ctx, db, models.KYCAuditLog{}.TableName()) {
		var rows []models.KYCAuditLog
		err := db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&rows).Error
		if err != nil {
			return nil, domainErrors.StorageUnavailable(err)
		}
		for _, row := range rows {
			entries = append(entries, &entities.AuditEntry{
				ID:         row.ID,
				ActorID:    row.AdminID,
				Action:     row.Action,
				TargetType: row.TargetType,
				TargetID:   row.TargetID,
				Note:       row.Note,
				SourceIP:   row.SourceIP,
				CreatedAt:  row.CreatedAt,
			})
		}
	}

	if schema.HasTable(ctx, db, models.AdminAction{}.TableName()) {
		var rows []models.AdminAction
		err := db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&rows).Error
		if err != nil {
			return nil, domainErrors.StorageUnavailable(err)
		}
		for _, row := range rows {
			entries = append(entries, &entities.AuditEntry{
				ID:         row.ID,
				ActorID:    row.ActorID,
				Action:     row.ActionType,
				TargetType: row.Entity,
				TargetID:   row.EntityID,
				Note:       row.Detail,
				SourceIP:   row.IPAddress,
				CreatedAt:  row.CreatedAt,
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
