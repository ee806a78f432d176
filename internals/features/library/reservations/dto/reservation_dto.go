// file: internals/features/library/reservations/dto/reservation_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	resModel "pustakaku_backend/internals/features/library/reservations/model"
)

/* =========================================================
   REQUEST
   ========================================================= */

type ReservationCreateRequest struct {
	BookID uuid.UUID `json:"book_id" validate:"required"`
}

type ReservationCancelRequest struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

func (r *ReservationCancelRequest) Normalize() {
	if r.Reason != nil {
		v := strings.TrimSpace(*r.Reason)
		if v == "" {
			r.Reason = nil
		} else {
			r.Reason = &v
		}
	}
}

/* =========================================================
   RESPONSE
   ========================================================= */

type ReservationResponse struct {
	ReservationID     uuid.UUID `json:"reservation_id"`
	ReservationBookID uuid.UUID `json:"reservation_book_id"`
	ReservationUserID uuid.UUID `json:"reservation_user_id"`

	ReservationStatus        string `json:"reservation_status"`
	ReservationQueuePosition int    `json:"reservation_queue_position"`

	ReservationReservedAt  time.Time  `json:"reservation_reserved_at"`
	ReservationExpiresAt   *time.Time `json:"reservation_expires_at,omitempty"`
	ReservationFulfilledAt *time.Time `json:"reservation_fulfilled_at,omitempty"`
	ReservationNotifiedAt  *time.Time `json:"reservation_notified_at,omitempty"`

	ReservationNotes *string `json:"reservation_notes,omitempty"`
}

func ToReservationResponse(r *resModel.ReservationModel) ReservationResponse {
	return ReservationResponse{
		ReservationID:            r.ReservationID,
		ReservationBookID:        r.ReservationBookID,
		ReservationUserID:        r.ReservationUserID,
		ReservationStatus:        r.ReservationStatus,
		ReservationQueuePosition: r.ReservationQueuePosition,
		ReservationReservedAt:    r.ReservationReservedAt,
		ReservationExpiresAt:     r.ReservationExpiresAt,
		ReservationFulfilledAt:   r.ReservationFulfilledAt,
		ReservationNotifiedAt:    r.ReservationNotifiedAt,
		ReservationNotes:         r.ReservationNotes,
	}
}

func ToReservationResponses(list []resModel.ReservationModel) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(list))
	for i := range list {
		out = append(out, ToReservationResponse(&list[i]))
	}
	return out
}
