package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"wanderlite.backend/internal/domain/entities"
	domainerrors "wanderlite.backend/internal/domain/errors"
	"wanderlite.backend/internal/interfaces/http/middleware"
	"wanderlite.backend/internal/interfaces/http/response"
	"wanderlite.backend/internal/usecases"
	"wanderlite.backend/pkg/utils"
)

// BookingHandler handles booking endpoints
type BookingHandler struct {
	bookingUsecase *usecases.BookingUsecase
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingUsecase *usecases.BookingUsecase) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
	}
}

func queryLimit(c *gin.Context) int {
	limit, _ := strconv.Atoi(c.Query("limit"))
	return utils.NormalizeListParams(1, limit).Limit
}

// Create handles booking creation
// POST /api/v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Forbidden("access denied"))
		return
	}

	var input entities.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	result, err := h.bookingUsecase.CreateBooking(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// List returns the caller's bookings. Anonymous callers get an empty list.
// GET /api/v1/bookings
func (h *BookingHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Success(c, http.StatusOK, []*entities.Booking{})
		return
	}

	bookings, err := h.bookingUsecase.ListBookings(c.Request.Context(), userID, queryLimit(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, bookings)
}

// Get returns one booking by ID
// GET /api/v1/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Forbidden("access denied"))
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.Validation("id must be a valid UUID"))
		return
	}

	booking, err := h.bookingUsecase.GetBooking(c.Request.Context(), userID, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, booking)
}

// VerifyTicket resolves an encrypted ticket token to its booking. The
// endpoint is public: possession of the token is the credential.
// GET /api/v1/tickets/verify?token=...
func (h *BookingHandler) VerifyTicket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, domainerrors.Validation("token is required"))
		return
	}

	booking, err := h.bookingUsecase.VerifyTicket(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"valid":     true,
		"reference": booking.Reference,
		"type":      booking.Type,
	})
}
