package workers

import (
	"context"
	"time"

	"creatorhub_backend/internal/algorithms"
	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/repositories"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ratingTolerance - допустимое расхождение скользящего среднего с точным
var ratingTolerance = decimal.RequireFromString("0.05")

// RatingAuditWorker периодически сверяет сохраненный рейтинг с точным средним оценок.
// Рейтинг не исправляет: расхождение только логируется.
type RatingAuditWorker struct {
	db          *gorm.DB
	profileRepo repositories.ProfileRepository
	reviewRepo  repositories.ReviewRepository
	interval    time.Duration
}

func NewRatingAuditWorker(
	db *gorm.DB,
	profileRepo repositories.ProfileRepository,
	reviewRepo repositories.ReviewRepository,
	interval time.Duration,
) *RatingAuditWorker {
	return &RatingAuditWorker{
		db:          db,
		profileRepo: profileRepo,
		reviewRepo:  reviewRepo,
		interval:    interval,
	}
}

// Start запускает сверку в фоне до отмены ctx
func (w *RatingAuditWorker) Start(ctx context.Context) {
	go w.loop(ctx)
}

func (w *RatingAuditWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Rating audit worker stopped")
			return
		case <-ticker.C:
			drifted, err := w.RunOnce(ctx)
			if err != nil {
				logger.CtxWithError(ctx, "Rating audit failed", err)
			} else if drifted > 0 {
				logger.Warn("Rating audit finished with drift", "profiles", drifted)
			}
		}
	}
}

// RunOnce проверяет все профили креаторов и возвращает число профилей с расхождением
func (w *RatingAuditWorker) RunOnce(ctx context.Context) (int, error) {
	db := w.db.WithContext(ctx)

	profiles, err := w.profileRepo.FindByStatuses(db,
		models.ProfileStatusPending,
		models.ProfileStatusApproved,
		models.ProfileStatusRejected,
	)
	if err != nil {
		return 0, err
	}

	drifted := 0
	for i := range profiles {
		p := &profiles[i]
		stars, err := w.reviewRepo.StarsByProfile(db, p.ID)
		if err != nil {
			return drifted, err
		}

		exact := algorithms.Mean(stars)
		if p.Rating.Sub(exact).Abs().GreaterThan(ratingTolerance) {
			drifted++
			logger.CtxWarn(ctx, "Rating drift detected",
				"profile_id", p.ID,
				"stored", p.Rating.StringFixed(algorithms.RatingPlaces),
				"exact", exact.StringFixed(algorithms.RatingPlaces),
				"starred", len(stars),
			)
		}
	}
	return drifted, nil
}
