package repositories

import (
	"context"

	"github.com/google/uuid"
	"wanderlite.backend/internal/domain/entities"
)

// KYCRepository defines kyc_details and kyc_uploads data operations
type KYCRepository interface {
	CreateSubmission(ctx context.Context, sub *entities.KYCSubmission) error
	GetSubmission(ctx context.Context, id uuid.UUID) (*entities.KYCSubmission, error)
	// LatestByUser returns the most recently submitted row for a user;
	// "current status" is defined by that row.
	LatestByUser(ctx context.Context, userID uuid.UUID) (*entities.KYCSubmission, error)
	ListByStatus(ctx context.Context, status entities.VerificationStatus, limit int) ([]*entities.KYCSubmission, error)
	// UpdateStatus sets verification_status and verified_at together.
	// Returns ErrNotFound when the submission does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.VerificationStatus) error
	CreateUpload(ctx context.Context, upload *entities.KYCUpload) error
}

// AuditRecorder persists administrative actions. Record tries each sink in
// order and returns an error only when no sink accepted the entry; callers
// treat that as a warning, never as a workflow failure.
type AuditRecorder interface {
	Record(ctx context.Context, entry *entities.AuditEntry) error
	List(ctx context.Context, limit int) ([]*entities.AuditEntry, error)
}
