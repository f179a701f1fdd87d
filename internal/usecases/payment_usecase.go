package usecases

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"wanderlite.backend/internal/domain/entities"
	domainerrors "wanderlite.backend/internal/domain/errors"
	"wanderlite.backend/internal/domain/repositories"
	"wanderlite.backend/pkg/logger"
	"wanderlite.backend/pkg/utils"
)

// PaymentUsecase handles payment business logic
type PaymentUsecase struct {
	paymentRepo repositories.PaymentRepository
	bookingRepo repositories.BookingRepository
	receiptRepo repositories.ReceiptRepository
	uow         repositories.UnitOfWork
}

// NewPaymentUsecase creates a new payment usecase
func NewPaymentUsecase(
	paymentRepo repositories.PaymentRepository,
	bookingRepo repositories.BookingRepository,
	receiptRepo repositories.ReceiptRepository,
	uow repositories.UnitOfWork,
) *PaymentUsecase {
	return &PaymentUsecase{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		receiptRepo: receiptRepo,
		uow:         uow,
	}
}

// CreatePayment opens a pending payment intent against an owned booking.
// The raw credential never reaches storage; only a masked form is logged.
func (u *PaymentUsecase) CreatePayment(ctx context.Context, userID uuid.UUID, input *entities.CreatePaymentInput) (*entities.Payment, error) {
	bookingID, err := uuid.Parse(input.BookingID)
	if err != nil {
		return nil, domainerrors.Validation("booking_id must be a valid UUID")
	}

	booking, err := u.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, domainerrors.ErrNotFound
	}

	if input.Credential != "" {
		logger.Info(ctx, "payment credential received",
			zap.String("credential", utils.MaskSecret(input.Credential)),
			zap.String("booking_id", bookingID.String()))
	}

	payment := &entities.Payment{
		BookingID:  &bookingID,
		BookingRef: booking.Reference,
		UserID:     &userID,
		Amount:     input.Amount,
		Currency:   input.Currency,
		Method:     input.Method,
		Status:     entities.PaymentStatusPending,
	}
	if err := u.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// ownsPayment resolves payment ownership. Legacy rows carry no owner
// column, so ownership falls back to the linked booking's owner.
func (u *PaymentUsecase) ownsPayment(ctx context.Context, userID uuid.UUID, payment *entities.Payment) bool {
	if payment.UserID != nil {
		return *payment.UserID == userID
	}
	if payment.BookingID != nil {
		booking, err := u.bookingRepo.GetByID(ctx, *payment.BookingID)
		return err == nil && booking.UserID == userID
	}
	if payment.BookingRef != "" {
		booking, err := u.bookingRepo.GetByReference(ctx, payment.BookingRef)
		return err == nil && booking.UserID == userID
	}
	return false
}

// CompletePayment confirms a pending intent with the gateway reference
func (u *PaymentUsecase) CompletePayment(ctx context.Context, userID, paymentID uuid.UUID, input *entities.CompletePaymentInput) (*entities.Payment, error) {
	payment, err := u.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !u.ownsPayment(ctx, userID, payment) {
		return nil, domainerrors.ErrNotFound
	}
	if payment.Status != entities.PaymentStatusPending {
		return nil, domainerrors.Conflict("payment is not pending")
	}

	if err := u.paymentRepo.Complete(ctx, paymentID, input.ExternalRef); err != nil {
		return nil, err
	}
	return u.paymentRepo.GetByID(ctx, paymentID)
}

// UploadReceipt appends a receipt and advances the payment status in one
// unit of work.
func (u *PaymentUsecase) UploadReceipt(ctx context.Context, userID, paymentID uuid.UUID, receiptURL string) (*entities.Receipt, error) {
	if receiptURL == "" {
		return nil, domainerrors.Validation("receipt_url is required")
	}

	payment, err := u.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !u.ownsPayment(ctx, userID, payment) {
		return nil, domainerrors.ErrNotFound
	}

	receipt := &entities.Receipt{
		PaymentID:  paymentID,
		UserID:     userID,
		ReceiptURL: receiptURL,
	}
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.receiptRepo.Create(txCtx, receipt); err != nil {
			return err
		}
		return u.paymentRepo.UpdateStatus(txCtx, paymentID, entities.PaymentStatusReceiptUploaded)
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// ListPayments returns the user's payments through whichever correlation
// strategy the schema supports
func (u *PaymentUsecase) ListPayments(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.Payment, error) {
	return u.paymentRepo.ListByUser(ctx, userID, limit)
}

// GetPaymentForBooking returns the booking's active payment intent
func (u *PaymentUsecase) GetPaymentForBooking(ctx context.Context, userID, bookingID uuid.UUID) (*entities.Payment, error) {
	booking, err := u.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, domainerrors.ErrNotFound
	}
	return u.paymentRepo.LatestByBooking(ctx, bookingID)
}

// ListReceipts returns the user's receipts, newest first
func (u *PaymentUsecase) ListReceipts(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.Receipt, error) {
	return u.receiptRepo.ListByUser(ctx, userID, limit)
}
