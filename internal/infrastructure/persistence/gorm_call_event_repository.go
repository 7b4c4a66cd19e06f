package persistence

import (
	"context"
	"fmt"

	"github.com/MGTheTrain/pkcs11-spy/internal/domain/trace"
	"github.com/MGTheTrain/pkcs11-spy/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormCallEventRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormCallEventRepository creates a new GORM-based EventRepository implementation
func NewGormCallEventRepository(db *gorm.DB, logger logger.Logger) (trace.EventRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	return &gormCallEventRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormCallEventRepository) Record(ctx context.Context, e trace.CallEvent) error {
	model := &models.CallEventModel{}
	model.FromDomain(&e)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to record call event %s #%d: %w", e.Operation, e.Seq, err)
	}
	return nil
}

func (r *gormCallEventRepository) List(ctx context.Context, query *trace.EventQuery) ([]*trace.CallEvent, error) {
	if query == nil {
		query = &trace.EventQuery{}
	}
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.CallEventModel
	dbQuery := r.db.WithContext(ctx).Model(&models.CallEventModel{})

	if query.RunID != "" {
		dbQuery = dbQuery.Where("run_id = ?", query.RunID)
	}
	if query.Operation != "" {
		dbQuery = dbQuery.Where("operation = ?", query.Operation)
	}
	if query.Phase != "" {
		dbQuery = dbQuery.Where("phase = ?", string(query.Phase))
	}
	if query.FailedOnly {
		dbQuery = dbQuery.Where("phase = ? AND status <> ?", string(trace.PhaseExit), 0)
	}

	dbQuery = dbQuery.Order("occurred_at asc").Order("seq asc")

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch call events: %w", err)
	}

	domainList := make([]*trace.CallEvent, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

// Runs returns the recorded run IDs, oldest run first.
func (r *gormCallEventRepository) Runs(ctx context.Context) ([]string, error) {
	var runs []string
	err := r.db.WithContext(ctx).
		Model(&models.CallEventModel{}).
		Group("run_id").
		Order("MIN(occurred_at) asc").
		Pluck("run_id", &runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}
	return runs, nil
}
