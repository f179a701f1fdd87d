package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"wanderlite.backend/internal/domain/entities"
	domainerrors "wanderlite.backend/internal/domain/errors"
)

func TestUnitOfWork_CommitAndRollback(t *testing.T) {
	db := newTestDB(t)
	createKYCTables(t, db)
	createKYCAuditLogTable(t, db)
	uow := NewUnitOfWork(db)
	kyc := NewKYCRepository(db)
	audit := NewAuditRecorder(db)
	ctx := context.Background()

	sub := &entities.KYCSubmission{UserID: uuid.New(), FullName: "Asha Verma"}
	require.NoError(t, kyc.CreateSubmission(ctx, sub))

	// commit: status change and audit land together
	err := uow.Do(ctx, func(txCtx context.Context) error {
		if err := kyc.UpdateStatus(txCtx, sub.ID, entities.VerificationStatusVerified); err != nil {
			return err
		}
		return audit.Record(txCtx, auditEntry("kyc_approve"))
	})
	require.NoError(t, err)

	got, err := kyc.GetSubmission(ctx, sub.ID)
	require.NoError(t, err)
	require.Equal(t, entities.VerificationStatusVerified, got.VerificationStatus)

	var audits int64
	require.NoError(t, db.Table("kyc_audit_logs").Count(&audits).Error)
	require.EqualValues(t, 1, audits)

	// rollback: a failing step undoes the status change
	boom := errors.New("boom")
	err = uow.Do(ctx, func(txCtx context.Context) error {
		if err := kyc.UpdateStatus(txCtx, sub.ID, entities.VerificationStatusRejected); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	unchanged, err := kyc.GetSubmission(ctx, sub.ID)
	require.NoError(t, err)
	require.Equal(t, entities.VerificationStatusVerified, unchanged.VerificationStatus)
}

func TestUnitOfWork_TransactionScopedProbe(t *testing.T) {
	db := newTestDB(t)
	createBookingsLegacy(t, db)
	uow := NewUnitOfWork(db)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	err := uow.Do(ctx, func(txCtx context.Context) error {
		// probe and insert run on the transaction connection
		return repo.Create(txCtx, &entities.Booking{
			UserID:    userID,
			Type:      entities.ServiceTypeFlight,
			Reference: "WL-20260830-TX000001",
			Data:      entities.MustDocument(`{}`),
		})
	})
	require.NoError(t, err)

	got, err := repo.GetByReference(ctx, "WL-20260830-TX000001")
	require.NoError(t, err)
	require.Equal(t, userID, got.UserID)
}

func TestReceiptRepository_AppendAndList(t *testing.T) {
	db := newTestDB(t)
	createReceiptsTable(t, db)
	repo := NewReceiptRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	paymentID := uuid.New()
	require.NoError(t, repo.Create(ctx, &entities.Receipt{
		PaymentID:  paymentID,
		UserID:     userID,
		ReceiptURL: "/uploads/receipts/r1.pdf",
	}))
	require.NoError(t, repo.Create(ctx, &entities.Receipt{
		PaymentID:  paymentID,
		UserID:     userID,
		ReceiptURL: "/uploads/receipts/r2.pdf",
	}))

	list, err := repo.ListByUser(ctx, userID, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)

	other, err := repo.ListByUser(ctx, uuid.New(), 0)
	require.NoError(t, err)
	require.Empty(t, other)
}

func TestUnitOfWork_ErrNotFoundPassthrough(t *testing.T) {
	db := newTestDB(t)
	createKYCTables(t, db)
	uow := NewUnitOfWork(db)
	kyc := NewKYCRepository(db)

	err := uow.Do(context.Background(), func(txCtx context.Context) error {
		return kyc.UpdateStatus(txCtx, uuid.New(), entities.VerificationStatusVerified)
	})
	require.True(t, errors.Is(err, domainerrors.ErrNotFound))
}
