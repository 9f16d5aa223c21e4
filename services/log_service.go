package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hrms/models"
	"hrms/tenant"
	"hrms/utils"
)

// LogFilter narrows a log query. Zero values mean "no filter"; the
// organisation always comes from the tenant context.
type LogFilter struct {
	UserID    uint
	Action    string
	StartDate *time.Time
	// EndDate is inclusive of its whole calendar day.
	EndDate *time.Time
	Page    int
	Limit   int
}

type LogPage struct {
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Pages int               `json:"pages"`
	Limit int               `json:"limit"`
	Data  []models.LogEntry `json:"data"`
}

type LogService struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

func NewLogService(db *gorm.DB, log logrus.FieldLogger) *LogService {
	return &LogService{
		db:  db,
		log: log,
	}
}

// Query returns one page of the caller's organisation trail, newest first.
func (s *LogService) Query(ctx context.Context, filter LogFilter) (*LogPage, error) {
	tc, err := tenant.Require(ctx)
	if err != nil {
		return nil, err
	}

	page, limit := utils.NormalizePage(filter.Page, filter.Limit)

	query := s.db.WithContext(ctx).Model(&models.LogEntry{}).Where("organisation_id = ?", tc.OrgID)
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.StartDate != nil {
		query = query.Where("timestamp >= ?", filter.StartDate.UTC())
	}
	if filter.EndDate != nil {
		query = query.Where("timestamp <= ?", utils.EndOfDay(*filter.EndDate))
	}

	// shared by the count and the page query
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, internal("failed to count logs", err)
	}

	entries := []models.LogEntry{}
	if err := query.
		Order("timestamp DESC").
		Order("id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&entries).Error; err != nil {
		return nil, internal("failed to fetch logs", err)
	}

	return &LogPage{
		Total: total,
		Page:  page,
		Pages: utils.PageCount(total, limit),
		Limit: limit,
		Data:  entries,
	}, nil
}
