package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"bibliotec/internal/repository"
)

// PickupWindow is how long a reservation may sit in reserved state before
// the expiry job cancels it and returns the copy to stock.
const PickupWindow = 7 * 24 * time.Hour

type JobService struct {
	reservations repository.ReservationRepository
	log          *zap.Logger
}

func NewJobService(reservations repository.ReservationRepository, log *zap.Logger) *JobService {
	return &JobService{reservations: reservations, log: log}
}

// ExpireUnclaimedReservations runs under cron; failures are logged and
// retried on the next tick.
func (s *JobService) ExpireUnclaimedReservations() {
	cutoff := time.Now().UTC().Add(-PickupWindow)
	n, err := s.reservations.ExpireUnclaimed(context.Background(), cutoff)
	if err != nil {
		s.log.Error("expiry job failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.log.Info("expired unclaimed reservations", zap.Int("count", n))
	}
}
