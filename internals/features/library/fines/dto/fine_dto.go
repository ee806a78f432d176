// file: internals/features/library/fines/dto/fine_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "pustakaku_backend/internals/features/library/fines/model"
)

/* =========================================================
   REQUEST
   ========================================================= */

type FinePayRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type FineWaiveRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

func (r *FineWaiveRequest) Normalize() {
	r.Reason = strings.TrimSpace(r.Reason)
}

/* =========================================================
   RESPONSE
   ========================================================= */

type FineResponse struct {
	FineID     uuid.UUID `json:"fine_id"`
	FineLoanID uuid.UUID `json:"fine_loan_id"`
	FineUserID uuid.UUID `json:"fine_user_id"`

	FineAmount     float64 `json:"fine_amount"`
	FinePaidAmount float64 `json:"fine_paid_amount"`
	FineReason     string  `json:"fine_reason"`
	FineStatus     string  `json:"fine_status"`

	FinePaidAt       *time.Time `json:"fine_paid_at,omitempty"`
	FineWaivedAt     *time.Time `json:"fine_waived_at,omitempty"`
	FineWaiverReason *string    `json:"fine_waiver_reason,omitempty"`

	FineCreatedAt time.Time `json:"fine_created_at"`
}

func ToFineResponse(f *model.FineModel) FineResponse {
	return FineResponse{
		FineID:           f.FineID,
		FineLoanID:       f.FineLoanID,
		FineUserID:       f.FineUserID,
		FineAmount:       f.FineAmount,
		FinePaidAmount:   f.FinePaidAmount,
		FineReason:       f.FineReason,
		FineStatus:       f.FineStatus,
		FinePaidAt:       f.FinePaidAt,
		FineWaivedAt:     f.FineWaivedAt,
		FineWaiverReason: f.FineWaiverReason,
		FineCreatedAt:    f.FineCreatedAt,
	}
}

func ToFineResponses(fines []model.FineModel) []FineResponse {
	out := make([]FineResponse, 0, len(fines))
	for i := range fines {
		out = append(out, ToFineResponse(&fines[i]))
	}
	return out
}
