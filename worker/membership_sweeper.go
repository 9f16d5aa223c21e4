package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hrms/models"
	"hrms/utils"
)

const defaultSweepInterval = 10 * time.Minute

// MembershipSweeper removes team memberships whose employee or team is gone.
// Postgres cascades these deletes already; the sweeper covers stores that
// were migrated without the foreign keys.
type MembershipSweeper struct {
	db       *gorm.DB
	logger   logrus.FieldLogger
	interval time.Duration
}

func NewMembershipSweeper(db *gorm.DB, logger logrus.FieldLogger, interval time.Duration) *MembershipSweeper {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &MembershipSweeper{
		db:       db,
		logger:   logger.WithField("worker", "membership_sweeper"),
		interval: interval,
	}
}

func (ms *MembershipSweeper) Start(ctx context.Context) {
	ms.logger.Info("Starting membership sweeper...")
	ticker := time.NewTicker(ms.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := ms.Sweep(ctx); err != nil && ctx.Err() == nil {
				utils.LogError(ms.logger, "membership_sweep_failed", err, nil)
			}
		case <-ctx.Done():
			ms.logger.Info("Stopping membership sweeper...")
			return
		}
	}
}

// Sweep deletes orphaned memberships and returns how many rows went.
func (ms *MembershipSweeper) Sweep(ctx context.Context) (int64, error) {
	db := ms.db.WithContext(ctx)

	result := db.
		Where("employee_id NOT IN (?) OR team_id NOT IN (?)",
			db.Model(&models.Employee{}).Select("id"),
			db.Model(&models.Team{}).Select("id"),
		).
		Delete(&models.EmployeeTeam{})
	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected > 0 {
		ms.logger.WithField("removed", result.RowsAffected).Info("Removed orphaned team memberships")
	}
	return result.RowsAffected, nil
}
