package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"wanderlite.backend/internal/domain/entities"
	domainerrors "wanderlite.backend/internal/domain/errors"
	"wanderlite.backend/internal/infrastructure/repositories"
)

func newKYCUsecase(db *gorm.DB) *KYCUsecase {
	return NewKYCUsecase(
		repositories.NewKYCRepository(db),
		repositories.NewUserRepository(db),
		repositories.NewAuditRecorder(db),
		repositories.NewUnitOfWork(db),
	)
}

func seedUser(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Exec(
		`INSERT INTO users(id,email,password_hash,role) VALUES (?,?,?,?)`,
		id.String(), id.String()+"@example.com", "$2a$12$hash", "user",
	).Error)
	return id
}

func TestKYCUsecase_SubmitAndStatus(t *testing.T) {
	db := newTestDB(t)
	createCoreTables(t, db)
	createKYCTables(t, db)
	uc := newKYCUsecase(db)
	ctx := context.Background()

	userID := seedUser(t, db)
	sub, err := uc.Submit(ctx, userID, &entities.SubmitKYCInput{
		FullName:     "Asha Verma",
		Nationality:  "IN",
		DocFrontPath: "/uploads/kyc/front.jpg",
		SelfiePath:   "/uploads/kyc/selfie.jpg",
	})
	require.NoError(t, err)
	require.Equal(t, entities.VerificationStatusPending, sub.VerificationStatus)

	var uploads int64
	require.NoError(t, db.Table("kyc_uploads").Count(&uploads).Error)
	require.EqualValues(t, 2, uploads)

	status, err := uc.Status(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, entities.VerificationStatusPending, status.Status)
	require.False(t, status.IsCompleted)
	require.NotNil(t, status.SubmittedAt)
	require.Nil(t, status.VerifiedAt)
}

func TestKYCUsecase_StatusWithoutSubmission(t *testing.T) {
	db := newTestDB(t)
	createCoreTables(t, db)
	createKYCTables(t, db)
	uc := newKYCUsecase(db)

	_, err := uc.Status(context.Background(), uuid.New())
	require.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestKYCUsecase_ReviewApprove(t *testing.T) {
	db := newTestDB(t)
	createCoreTables(t, db)
	createKYCTables(t, db)
	createAuditTables(t, db)
	uc := newKYCUsecase(db)
	ctx := context.Background()

	userID := seedUser(t, db)
	sub, err := uc.Submit(ctx, userID, &entities.SubmitKYCInput{FullName: "Asha Verma"})
	require.NoError(t, err)

	adminID := uuid.New()
	result, err := uc.Review(ctx, adminID, sub.ID, &entities.ReviewKYCInput{
		Action: entities.ReviewActionApprove,
		Note:   "documents match",
	}, "203.0.113.9")
	require.NoError(t, err)
	require.Empty(t, result.Warning)
	require.Equal(t, entities.VerificationStatusVerified, result.Submission.VerificationStatus)
	require.True(t, result.Submission.VerifiedAt.Valid)

	// status view reflects the decision
	status, err := uc.Status(ctx, userID)
	require.NoError(t, err)
	require.True(t, status.IsCompleted)
	require.NotNil(t, status.VerifiedAt)

	// users convenience flag mirrors the outcome
	var completed bool
	require.NoError(t, db.Table("users").Select("is_kyc_completed").
		Where("id = ?", userID.String()).Scan(&completed).Error)
	require.True(t, completed)

	// audit landed in the primary sink
	var audits int64
	require.NoError(t, db.Table("kyc_audit_logs").Count(&audits).Error)
	require.EqualValues(t, 1, audits)
}

func TestKYCUsecase_ReviewRejectThenReReview(t *testing.T) {
	db := newTestDB(t)
	createCoreTables(t, db)
	createKYCTables(t, db)
	createAuditTables(t, db)
	uc := newKYCUsecase(db)
	ctx := context.Background()

	userID := seedUser(t, db)
	sub, err := uc.Submit(ctx, userID, &entities.SubmitKYCInput{FullName: "Asha Verma"})
	require.NoError(t, err)

	adminID := uuid.New()
	rejected, err := uc.Review(ctx, adminID, sub.ID, &entities.ReviewKYCInput{
		Action: entities.ReviewActionReject,
		Note:   "photo unreadable",
	}, "")
	require.NoError(t, err)
	require.Equal(t, entities.VerificationStatusRejected, rejected.Submission.VerificationStatus)

	// a terminal submission may be reviewed again
	approved, err := uc.Review(ctx, adminID, sub.ID, &entities.ReviewKYCInput{
		Action: entities.ReviewActionApprove,
	}, "")
	require.NoError(t, err)
	require.Equal(t, entities.VerificationStatusVerified, approved.Submission.VerificationStatus)
}

func TestKYCUsecase_ReviewInvalidActionMutatesNothing(t *testing.T) {
	db := newTestDB(t)
	createCoreTables(t, db)
	createKYCTables(t, db)
	createAuditTables(t, db)
	uc := newKYCUsecase(db)
	ctx := context.Background()

	userID := seedUser(t, db)
	sub, err := uc.Submit(ctx, userID, &entities.SubmitKYCInput{FullName: "Asha Verma"})
	require.NoError(t, err)

	_, err = uc.Review(ctx, uuid.New(), sub.ID, &entities.ReviewKYCInput{Action: "ban"}, "")
	require.True(t, errors.Is(err, domainerrors.ErrInvalidInput))

	// neither status nor audit rows changed
	status, err := uc.Status(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, entities.VerificationStatusPending, status.Status)

	var audits int64
	require.NoError(t, db.Table("kyc_audit_logs").Count(&audits).Error)
	require.EqualValues(t, 0, audits)
}

func TestKYCUsecase_ReviewMissingSubmission(t *testing.T) {
	db := newTestDB(t)
	createCoreTables(t, db)
	createKYCTables(t, db)
	createAuditTables(t, db)
	uc := newKYCUsecase(db)

	_, err := uc.Review(context.Background(), uuid.New(), uuid.New(),
		&entities.ReviewKYCInput{Action: entities.ReviewActionApprove}, "")
	require.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestKYCUsecase_ReviewSurvivesAuditOutage(t *testing.T) {
	db := newTestDB(t)
	createCoreTables(t, db)
	createKYCTables(t, db)
	// no audit tables at all: both sinks are unavailable
	uc := newKYCUsecase(db)
	ctx := context.Background()

	userID := seedUser(t, db)
	sub, err := uc.Submit(ctx, userID, &entities.SubmitKYCInput{FullName: "Asha Verma"})
	require.NoError(t, err)

	result, err := uc.Review(ctx, uuid.New(), sub.ID, &entities.ReviewKYCInput{
		Action: entities.ReviewActionApprove,
	}, "")
	require.NoError(t, err)
	require.Equal(t, WarningAuditNotRecorded, result.Warning)
	require.Equal(t, entities.VerificationStatusVerified, result.Submission.VerificationStatus)
}

// A kyc_audit_logs table from an unrelated deployment exists but rejects
// the insert. The decision must still commit, delivered through the
// fallback sink with no warning, even though the failed insert ran inside
// the review's own transaction.
func TestKYCUsecase_ReviewWithMismatchedAuditSchema(t *testing.T) {
	db := newTestDB(t)
	createCoreTables(t, db)
	createKYCTables(t, db)
	mustExec(t, db, `CREATE TABLE kyc_audit_logs (
		id TEXT PRIMARY KEY,
		payload TEXT
	);`)
	mustExec(t, db, `CREATE TABLE admin_actions (
		id TEXT PRIMARY KEY,
		actor_id TEXT NOT NULL,
		action_type TEXT NOT NULL,
		entity TEXT NOT NULL,
		entity_id TEXT NOT NULL,
		detail TEXT,
		ip_address TEXT,
		created_at DATETIME
	);`)
	uc := newKYCUsecase(db)
	ctx := context.Background()

	userID := seedUser(t, db)
	sub, err := uc.Submit(ctx, userID, &entities.SubmitKYCInput{FullName: "Asha Verma"})
	require.NoError(t, err)

	result, err := uc.Review(ctx, uuid.New(), sub.ID, &entities.ReviewKYCInput{
		Action: entities.ReviewActionApprove,
	}, "")
	require.NoError(t, err)
	require.Empty(t, result.Warning)
	require.Equal(t, entities.VerificationStatusVerified, result.Submission.VerificationStatus)

	var fallback int64
	require.NoError(t, db.Table("admin_actions").Count(&fallback).Error)
	require.EqualValues(t, 1, fallback)

	user, err := repositories.NewUserRepository(db).GetByID(ctx, userID)
	require.NoError(t, err)
	require.True(t, user.IsKYCCompleted)
}

func TestKYCUsecase_ReviewWithoutUsersFlagColumn(t *testing.T) {
	db := newTestDB(t)
	// users table predates the is_kyc_completed migration
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT
	);`)
	createKYCTables(t, db)
	createAuditTables(t, db)
	uc := newKYCUsecase(db)
	ctx := context.Background()

	userID := seedUser(t, db)
	sub, err := uc.Submit(ctx, userID, &entities.SubmitKYCInput{FullName: "Asha Verma"})
	require.NoError(t, err)

	result, err := uc.Review(ctx, uuid.New(), sub.ID, &entities.ReviewKYCInput{
		Action: entities.ReviewActionApprove,
	}, "")
	require.NoError(t, err)
	require.Empty(t, result.Warning)

	status, err := uc.Status(ctx, userID)
	require.NoError(t, err)
	require.True(t, status.IsCompleted)
}

func TestKYCUsecase_QueueAndAuditTrail(t *testing.T) {
	db := newTestDB(t)
	createCoreTables(t, db)
	createKYCTables(t, db)
	createAuditTables(t, db)
	uc := newKYCUsecase(db)
	ctx := context.Background()

	first, err := uc.Submit(ctx, seedUser(t, db), &entities.SubmitKYCInput{FullName: "First"})
	require.NoError(t, err)
	_, err = uc.Submit(ctx, seedUser(t, db), &entities.SubmitKYCInput{FullName: "Second"})
	require.NoError(t, err)

	queue, err := uc.Queue(ctx, 0)
	require.NoError(t, err)
	require.Len(t, queue, 2)

	_, err = uc.Review(ctx, uuid.New(), first.ID, &entities.ReviewKYCInput{
		Action: entities.ReviewActionApprove,
	}, "")
	require.NoError(t, err)

	queue, err = uc.Queue(ctx, 0)
	require.NoError(t, err)
	require.Len(t, queue, 1)

	trail, err := uc.AuditTrail(ctx, 0)
	require.NoError(t, err)
	require.Len(t, trail, 1)
	require.Equal(t, "kyc_approve", trail[0].Action)
}
