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

func newPaymentFixture(t *testing.T) (*PaymentUsecase, *BookingUsecase, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	createCoreTables(t, db)
	bookings := repositories.NewBookingRepository(db)
	payments := repositories.NewPaymentRepository(db, bookings)
	receipts := repositories.NewReceiptRepository(db)
	uow := repositories.NewUnitOfWork(db)
	return NewPaymentUsecase(payments, bookings, receipts, uow),
		NewBookingUsecase(bookings, nil, nil), db
}

func TestPaymentUsecase_IntentLifecycle(t *testing.T) {
	payUC, bookUC, _ := newPaymentFixture(t)
	ctx := context.Background()

	userID := uuid.New()
	created, err := bookUC.CreateBooking(ctx, userID, &entities.CreateBookingInput{
		Type: entities.ServiceTypeFlight,
	})
	require.NoError(t, err)

	payment, err := payUC.CreatePayment(ctx, userID, &entities.CreatePaymentInput{
		BookingID:  created.Booking.ID.String(),
		Amount:     5400,
		Method:     "upi",
		Credential: "9876-5432-1098-7654",
	})
	require.NoError(t, err)
	require.Equal(t, entities.PaymentStatusPending, payment.Status)
	require.Equal(t, entities.DefaultCurrency, payment.Currency)

	latest, err := payUC.GetPaymentForBooking(ctx, userID, created.Booking.ID)
	require.NoError(t, err)
	require.Equal(t, payment.ID, latest.ID)

	completed, err := payUC.CompletePayment(ctx, userID, payment.ID, &entities.CompletePaymentInput{
		ExternalRef: "gw_txn_42",
	})
	require.NoError(t, err)
	require.Equal(t, entities.PaymentStatusCompleted, completed.Status)
	require.Equal(t, "gw_txn_42", completed.ExternalRef.String)

	// completing twice conflicts
	_, err = payUC.CompletePayment(ctx, userID, payment.ID, &entities.CompletePaymentInput{
		ExternalRef: "gw_txn_43",
	})
	require.True(t, errors.Is(err, domainerrors.ErrAlreadyExists))

	receipt, err := payUC.UploadReceipt(ctx, userID, payment.ID, "/uploads/receipts/r1.pdf")
	require.NoError(t, err)
	require.Equal(t, payment.ID, receipt.PaymentID)

	after, err := payUC.GetPaymentForBooking(ctx, userID, created.Booking.ID)
	require.NoError(t, err)
	require.Equal(t, entities.PaymentStatusReceiptUploaded, after.Status)

	receipts, err := payUC.ListReceipts(ctx, userID, 0)
	require.NoError(t, err)
	require.Len(t, receipts, 1)
}

func TestPaymentUsecase_OwnershipEnforced(t *testing.T) {
	payUC, bookUC, _ := newPaymentFixture(t)
	ctx := context.Background()

	owner := uuid.New()
	stranger := uuid.New()
	created, err := bookUC.CreateBooking(ctx, owner, &entities.CreateBookingInput{
		Type: entities.ServiceTypeHotel,
	})
	require.NoError(t, err)

	// a stranger cannot open an intent against someone else's booking
	_, err = payUC.CreatePayment(ctx, stranger, &entities.CreatePaymentInput{
		BookingID: created.Booking.ID.String(),
		Amount:    100,
		Method:    "card",
	})
	require.True(t, errors.Is(err, domainerrors.ErrNotFound))

	payment, err := payUC.CreatePayment(ctx, owner, &entities.CreatePaymentInput{
		BookingID: created.Booking.ID.String(),
		Amount:    100,
		Method:    "card",
	})
	require.NoError(t, err)

	_, err = payUC.CompletePayment(ctx, stranger, payment.ID, &entities.CompletePaymentInput{
		ExternalRef: "gw_theft",
	})
	require.True(t, errors.Is(err, domainerrors.ErrNotFound))

	_, err = payUC.UploadReceipt(ctx, stranger, payment.ID, "/uploads/receipts/fake.pdf")
	require.True(t, errors.Is(err, domainerrors.ErrNotFound))

	_, err = payUC.GetPaymentForBooking(ctx, stranger, created.Booking.ID)
	require.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestPaymentUsecase_ValidationBranches(t *testing.T) {
	payUC, bookUC, _ := newPaymentFixture(t)
	ctx := context.Background()

	userID := uuid.New()
	_, err := payUC.CreatePayment(ctx, userID, &entities.CreatePaymentInput{
		BookingID: "not-a-uuid",
		Amount:    100,
		Method:    "card",
	})
	require.True(t, errors.Is(err, domainerrors.ErrInvalidInput))

	_, err = payUC.CreatePayment(ctx, userID, &entities.CreatePaymentInput{
		BookingID: uuid.New().String(),
		Amount:    100,
		Method:    "card",
	})
	require.True(t, errors.Is(err, domainerrors.ErrNotFound))

	created, err := bookUC.CreateBooking(ctx, userID, &entities.CreateBookingInput{
		Type: entities.ServiceTypeRestaurant,
	})
	require.NoError(t, err)
	payment, err := payUC.CreatePayment(ctx, userID, &entities.CreatePaymentInput{
		BookingID: created.Booking.ID.String(),
		Amount:    100,
		Method:    "cash",
	})
	require.NoError(t, err)

	_, err = payUC.UploadReceipt(ctx, userID, payment.ID, "")
	require.True(t, errors.Is(err, domainerrors.ErrInvalidInput))
}

func TestPaymentUsecase_ListEmptyForUnknownUser(t *testing.T) {
	payUC, _, _ := newPaymentFixture(t)

	list, err := payUC.ListPayments(context.Background(), uuid.New(), 0)
	require.NoError(t, err)
	require.Empty(t, list)
}
