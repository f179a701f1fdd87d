package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// VerificationStatus represents the review state of a KYC submission
type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusVerified VerificationStatus = "verified"
	VerificationStatusRejected VerificationStatus = "rejected"
)

// ReviewAction is the verb an admin submits against a pending submission
type ReviewAction string

const (
	ReviewActionApprove ReviewAction = "approve"
	ReviewActionReject  ReviewAction = "reject"
)

// StatusFor maps a review action to the resulting terminal status.
// The bool is false for any action outside the allowed set.
func (a ReviewAction) StatusFor() (VerificationStatus, bool) {
	switch a {
	case ReviewActionApprove:
		return VerificationStatusVerified, true
	case ReviewActionReject:
		return VerificationStatusRejected, true
	}
	return "", false
}

// Terminal reports whether no further system-initiated transition is
// required. Re-review of a terminal submission stays permitted.
func (s VerificationStatus) Terminal() bool {
	return s == VerificationStatusVerified || s == VerificationStatusRejected
}

// KYCSubmission is one row of kyc_details: a single user attempt at identity
// verification. Current status for a user is the most recently submitted row.
type KYCSubmission struct {
	ID                 uuid.UUID          `json:"id"`
	UserID             uuid.UUID          `json:"user_id"`
	FullName           string             `json:"full_name"`
	DateOfBirth        string             `json:"date_of_birth,omitempty"`
	Nationality        string             `json:"nationality,omitempty"`
	DocumentType       string             `json:"document_type,omitempty"`
	DocumentNumber     string             `json:"document_number,omitempty"`
	DocFrontPath       null.String        `json:"doc_front_path,omitempty"`
	DocBackPath        null.String        `json:"doc_back_path,omitempty"`
	SelfiePath         null.String        `json:"selfie_path,omitempty"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	SubmittedAt        time.Time          `json:"submitted_at"`
	VerifiedAt         null.Time          `json:"verified_at,omitempty"`
}

// SubmitKYCInput represents a user submission
type SubmitKYCInput struct {
	FullName       string `json:"full_name" binding:"required"`
	DateOfBirth    string `json:"date_of_birth"`
	Nationality    string `json:"nationality"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	DocFrontPath   string `json:"doc_front_path"`
	DocBackPath    string `json:"doc_back_path"`
	SelfiePath     string `json:"selfie_path"`
}

// ReviewKYCInput carries an admin decision
type ReviewKYCInput struct {
	Action ReviewAction `json:"action" binding:"required"`
	Note   string       `json:"note"`
}

// KYCUpload tracks one raw uploaded document, independent of which
// submission it logically belongs to. Append-only.
type KYCUpload struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Kind       string    `json:"kind"`
	Path       string    `json:"path"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// KYCStatusSummary is the derived view returned to the user
type KYCStatusSummary struct {
	Status      VerificationStatus `json:"status"`
	IsCompleted bool               `json:"is_completed"`
	SubmittedAt *time.Time         `json:"submitted_at,omitempty"`
	VerifiedAt  *time.Time         `json:"verified_at,omitempty"`
}
