package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"wanderlite.backend/internal/domain/entities"
	domainerrors "wanderlite.backend/internal/domain/errors"
	"wanderlite.backend/internal/interfaces/http/middleware"
	"wanderlite.backend/internal/interfaces/http/response"
	"wanderlite.backend/internal/usecases"
)

// TripHandler handles trip planning and packing checklist endpoints
type TripHandler struct {
	tripUsecase *usecases.TripUsecase
}

// NewTripHandler creates a new trip handler
func NewTripHandler(tripUsecase *usecases.TripUsecase) *TripHandler {
	return &TripHandler{
		tripUsecase: tripUsecase,
	}
}

// Create handles trip creation
// POST /api/v1/trips
func (h *TripHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Forbidden("access denied"))
		return
	}

	var input entities.CreateTripInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	trip, err := h.tripUsecase.CreateTrip(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, trip)
}

// List returns the caller's trips
// GET /api/v1/trips
func (h *TripHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Forbidden("access denied"))
		return
	}

	trips, err := h.tripUsecase.ListTrips(c.Request.Context(), userID, queryLimit(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, trips)
}

// Get returns one trip by ID
// GET /api/v1/trips/:id
func (h *TripHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Forbidden("access denied"))
		return
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.Validation("id must be a valid UUID"))
		return
	}

	trip, err := h.tripUsecase.GetTrip(c.Request.Context(), userID, tripID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, trip)
}

// Update applies a partial trip update
// PUT /api/v1/trips/:id
func (h *TripHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Forbidden("access denied"))
		return
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.Validation("id must be a valid UUID"))
		return
	}

	var input entities.UpdateTripInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	trip, err := h.tripUsecase.UpdateTrip(c.Request.Context(), userID, tripID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, trip)
}

// Delete removes a trip
// DELETE /api/v1/trips/:id
func (h *TripHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Forbidden("access denied"))
		return
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.Validation("id must be a valid UUID"))
		return
	}

	if err := h.tripUsecase.DeleteTrip(c.Request.Context(), userID, tripID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "trip deleted"})
}

// CreateChecklistItem adds a user item to the packing checklist
// POST /api/v1/checklist/items
func (h *TripHandler) CreateChecklistItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Forbidden("access denied"))
		return
	}

	var input entities.CreateChecklistItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	item, err := h.tripUsecase.AddChecklistItem(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, item)
}

// ListChecklistItems returns the caller's checklist, optionally scoped
// GET /api/v1/checklist/items?booking_id=&trip_id=
func (h *TripHandler) ListChecklistItems(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Forbidden("access denied"))
		return
	}

	items, err := h.tripUsecase.ListChecklist(c.Request.Context(),
		userID, c.Query("booking_id"), c.Query("trip_id"), queryLimit(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// ToggleChecklistItem flips an item's packed flag
// PUT /api/v1/checklist/items/:id
func (h *TripHandler) ToggleChecklistItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Forbidden("access denied"))
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.Validation("id must be a valid UUID"))
		return
	}

	item, err := h.tripUsecase.ToggleChecklistItem(c.Request.Context(), userID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": item.ID, "is_packed": item.IsPacked})
}

// DeleteChecklistItem removes an item
// DELETE /api/v1/checklist/items/:id
func (h *TripHandler) DeleteChecklistItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Forbidden("access denied"))
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.Validation("id must be a valid UUID"))
		return
	}

	if err := h.tripUsecase.DeleteChecklistItem(c.Request.Context(), userID, itemID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "checklist item deleted"})
}
