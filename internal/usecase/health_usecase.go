package usecase

import (
	"context"
	"time"
)

// Pinger is anything with a liveness probe: the pgx pool, the redis client.
type Pinger func(ctx context.Context) error

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	database Pinger
	redis    Pinger
}

// NewHealthUsecase takes the probes for the database and the cache. A nil
// redis probe reports the cache as disabled.
func NewHealthUsecase(database, redis Pinger) HealthUsecase {
	return &healthUsecase{database: database, redis: redis}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := map[string]string{
		"status":   "ok",
		"database": "up",
		"redis":    "disabled",
	}

	if err := u.database(ctx); err != nil {
		status["status"] = "degraded"
		status["database"] = "down"
	}

	if u.redis != nil {
		// The cache is optional; its outage does not degrade the service
		if err := u.redis(ctx); err != nil {
			status["redis"] = "down"
		} else {
			status["redis"] = "up"
		}
	}
	return status
}
