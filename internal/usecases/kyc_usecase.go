package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"wanderlite.backend/internal/domain/entities"
	domainerrors "wanderlite.backend/internal/domain/errors"
	"wanderlite.backend/internal/domain/repositories"
)

// WarningAuditNotRecorded is surfaced alongside a successful review when
// neither audit sink accepted the entry.
const WarningAuditNotRecorded = "review applied but audit trail could not be recorded"

// KYCUsecase handles identity verification business logic
type KYCUsecase struct {
	kycRepo  repositories.KYCRepository
	userRepo repositories.UserRepository
	audit    repositories.AuditRecorder
	uow      repositories.UnitOfWork
}

// NewKYCUsecase creates a new KYC usecase
func NewKYCUsecase(
	kycRepo repositories.KYCRepository,
	userRepo repositories.UserRepository,
	audit repositories.AuditRecorder,
	uow repositories.UnitOfWork,
) *KYCUsecase {
	return &KYCUsecase{
		kycRepo:  kycRepo,
		userRepo: userRepo,
		audit:    audit,
		uow:      uow,
	}
}

// Submit records a new verification attempt in pending state. Each document
// path also lands in the append-only uploads trail.
func (u *KYCUsecase) Submit(ctx context.Context, userID uuid.UUID, input *entities.SubmitKYCInput) (*entities.KYCSubmission, error) {
	sub := &entities.KYCSubmission{
		UserID:             userID,
		FullName:           input.FullName,
		DateOfBirth:        input.DateOfBirth,
		Nationality:        input.Nationality,
		DocumentType:       input.DocumentType,
		DocumentNumber:     input.DocumentNumber,
		VerificationStatus: entities.VerificationStatusPending,
	}
	if input.DocFrontPath != "" {
		sub.DocFrontPath = null.StringFrom(input.DocFrontPath)
	}
	if input.DocBackPath != "" {
		sub.DocBackPath = null.StringFrom(input.DocBackPath)
	}
	if input.SelfiePath != "" {
		sub.SelfiePath = null.StringFrom(input.SelfiePath)
	}

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.kycRepo.CreateSubmission(txCtx, sub); err != nil {
			return err
		}
		for kind, path := range map[string]string{
			"doc_front": input.DocFrontPath,
			"doc_back":  input.DocBackPath,
			"selfie":    input.SelfiePath,
		} {
			if path == "" {
				continue
			}
			upload := &entities.KYCUpload{UserID: userID, Kind: kind, Path: path}
			if err := u.kycRepo.CreateUpload(txCtx, upload); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// Status derives the user's current verification state from their most
// recent submission.
func (u *KYCUsecase) Status(ctx context.Context, userID uuid.UUID) (*entities.KYCStatusSummary, error) {
	sub, err := u.kycRepo.LatestByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("no verification submission on record")
		}
		return nil, err
	}

	summary := &entities.KYCStatusSummary{
		Status:      sub.VerificationStatus,
		IsCompleted: sub.VerificationStatus == entities.VerificationStatusVerified,
	}
	submittedAt := sub.SubmittedAt
	summary.SubmittedAt = &submittedAt
	if sub.VerifiedAt.Valid {
		verifiedAt := sub.VerifiedAt.Time
		summary.VerifiedAt = &verifiedAt
	}
	return summary, nil
}

// Queue lists pending submissions for admin review, longest-waiting first
func (u *KYCUsecase) Queue(ctx context.Context, limit int) ([]*entities.KYCSubmission, error) {
	return u.kycRepo.ListByStatus(ctx, entities.VerificationStatusPending, limit)
}

// ReviewResult carries the reviewed submission plus a warning when the
// decision applied but its audit trail did not persist.
type ReviewResult struct {
	Submission *entities.KYCSubmission `json:"submission"`
	Warning    string                  `json:"warning,omitempty"`
}

// Review applies an admin decision to a submission. The action is validated
// before anything mutates: an unknown action leaves every row untouched.
// The status change and the audit attempt share one unit of work, and an
// audit that lands in no sink downgrades to a warning rather than undoing
// the decision.
func (u *KYCUsecase) Review(ctx context.Context, adminID, submissionID uuid.UUID, input *entities.ReviewKYCInput, sourceIP string) (*ReviewResult, error) {
	newStatus, ok := input.Action.StatusFor()
	if !ok {
		return nil, domainerrors.Validation("action must be approve or reject")
	}

	result := &ReviewResult{}
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		sub, err := u.kycRepo.GetSubmission(txCtx, submissionID)
		if err != nil {
			return err
		}

		if err := u.kycRepo.UpdateStatus(txCtx, submissionID, newStatus); err != nil {
			return err
		}

		// Mirror the outcome onto the users convenience flag. A schema
		// without the column ignores this entirely.
		completed := newStatus == entities.VerificationStatusVerified
		if err := u.userRepo.SetKYCCompleted(txCtx, sub.UserID, completed); err != nil &&
			!errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}

		entry := &entities.AuditEntry{
			ActorID:    adminID,
			Action:     "kyc_" + string(input.Action),
			TargetType: "kyc_submission",
			TargetID:   submissionID.String(),
			Note:       input.Note,
			SourceIP:   sourceIP,
		}
		if err := u.audit.Record(txCtx, entry); err != nil {
			if errors.Is(err, domainerrors.ErrAuditNotDurable) {
				result.Warning = WarningAuditNotRecorded
				return nil
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sub, err := u.kycRepo.GetSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	result.Submission = sub
	return result, nil
}

// AuditTrail lists recorded administrative actions, newest first
func (u *KYCUsecase) AuditTrail(ctx context.Context, limit int) ([]*entities.AuditEntry, error) {
	return u.audit.List(ctx, limit)
}
