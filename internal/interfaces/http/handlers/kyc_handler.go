package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"wanderlite.backend/internal/domain/entities"
	domainerrors "wanderlite.backend/internal/domain/errors"
	"wanderlite.backend/internal/interfaces/http/middleware"
	"wanderlite.backend/internal/interfaces/http/response"
	"wanderlite.backend/internal/usecases"
)

// KYCHandler handles identity verification endpoints
type KYCHandler struct {
	kycUsecase *usecases.KYCUsecase
}

// NewKYCHandler creates a new KYC handler
func NewKYCHandler(kycUsecase *usecases.KYCUsecase) *KYCHandler {
	return &KYCHandler{
		kycUsecase: kycUsecase,
	}
}

// Submit records a verification attempt
// POST /api/v1/kyc/submit
func (h *KYCHandler) Submit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Forbidden("access denied"))
		return
	}

	var input entities.SubmitKYCInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	sub, err := h.kycUsecase.Submit(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, sub)
}

// Status returns the caller's current verification state
// GET /api/v1/kyc/status
func (h *KYCHandler) Status(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Forbidden("access denied"))
		return
	}

	summary, err := h.kycUsecase.Status(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, summary)
}

// Queue lists pending submissions for review
// GET /api/v1/kyc/queue  (admin)
func (h *KYCHandler) Queue(c *gin.Context) {
	queue, err := h.kycUsecase.Queue(c.Request.Context(), queryLimit(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, queue)
}

// Review applies an admin decision to a submission
// POST /api/v1/kyc/:id/review  (admin)
func (h *KYCHandler) Review(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Forbidden("access denied"))
		return
	}

	submissionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.Validation("id must be a valid UUID"))
		return
	}

	var input entities.ReviewKYCInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	result, err := h.kycUsecase.Review(c.Request.Context(), adminID, submissionID, &input, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}
	if result.Warning != "" {
		middleware.CountAbsorbedAudit()
	}
	response.SuccessWithWarning(c, http.StatusOK, gin.H{
		"message":    fmt.Sprintf("submission %s", result.Submission.VerificationStatus),
		"submission": result.Submission,
	}, result.Warning)
}

// AuditTrail lists recorded administrative actions
// GET /api/v1/kyc/audit  (admin)
func (h *KYCHandler) AuditTrail(c *gin.Context) {
	trail, err := h.kycUsecase.AuditTrail(c.Request.Context(), queryLimit(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, trail)
}
