// file: internals/features/library/scheduler/expiry_scheduler.go
package scheduler

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"pustakaku_backend/internals/configs"
	resService "pustakaku_backend/internals/features/library/reservations/service"
)

// StartReservationExpiryScheduler menjalankan sweep reservasi READY yang
// sudah lewat batas ambil. Interval default 1 jam (override via
// RESERVATION_EXPIRY_INTERVAL_MINUTES).
func StartReservationExpiryScheduler(db *gorm.DB) {
	intervalMinutes := configs.GetEnvInt("RESERVATION_EXPIRY_INTERVAL_MINUTES", 60)
	interval := time.Duration(intervalMinutes) * time.Minute

	svc := &resService.ReservationService{DB: db}

	go func() {
		log.Printf("[SCHEDULER] Reservation expiry sweep aktif (interval %v)", interval)
		for {
			runExpirySweep(svc)
			time.Sleep(interval)
		}
	}()
}

func runExpirySweep(svc *resService.ReservationService) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	count, err := svc.ProcessExpired(ctx)
	if err != nil {
		log.Printf("[SCHEDULER] Gagal sweep reservasi kedaluwarsa: %v", err)
		return
	}
	if count > 0 {
		log.Printf("[SCHEDULER] %d reservasi READY ditandai expired", count)
	}
}
