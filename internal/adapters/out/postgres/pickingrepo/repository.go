package pickingrepo

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/adapters/out/postgres/pgerr"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/picking"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// activeStatuses are the statuses covered by idx_picking_tasks_active_order.
var activeStatuses = []int{int(picking.Created), int(picking.InProgress)}

var forUpdate = clause.Locking{Strength: clause.LockingStrengthUpdate}

// GormPickingTaskRepository implements ports.PickingTaskRepository using GORM.
type GormPickingTaskRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormPickingTaskRepository(db *gorm.DB, tracker aggregateTracker) *GormPickingTaskRepository {
	return &GormPickingTaskRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the task and its items. A second active task for the same order
// violates the partial unique index and is reported as an invalid transition.
func (r *GormPickingTaskRepository) Add(ctx context.Context, aggregate *picking.Task) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err) {
			return fmt.Errorf("%w: order %s already has an active picking task",
				errs.ErrInvalidTransition, aggregate.OrderID())
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes picker, status, timeline and picked quantities.
func (r *GormPickingTaskRepository) Update(ctx context.Context, aggregate *picking.Task) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&PickingTaskDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"picker_id":    dto.PickerID,
		"status":       dto.Status,
		"started_at":   dto.StartedAt,
		"completed_at": dto.CompletedAt,
		"cancelled_at": dto.CancelledAt,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("picking task", aggregate.ID())
	}

	for _, item := range dto.Items {
		err := db.Model(&PickingItemDTO{}).
			Where("task_id = ? AND storage_unit_id = ?", item.TaskID, item.StorageUnitID).
			Update("quantity_picked", item.QuantityPicked).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormPickingTaskRepository) Get(ctx context.Context, id kernel.UUID) (*picking.Task, error) {
	return r.get(r.withItems(ctx), id)
}

// GetForUpdate retrieves a task and locks its row until the transaction ends.
func (r *GormPickingTaskRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*picking.Task, error) {
	return r.get(r.withItems(ctx).Clauses(forUpdate), id)
}

func (r *GormPickingTaskRepository) GetActiveByOrderID(ctx context.Context, orderID kernel.UUID) (*picking.Task, error) {
	return r.getActive(r.withItems(ctx), orderID)
}

// GetActiveByOrderIDForUpdate is GetActiveByOrderID with the task row locked.
func (r *GormPickingTaskRepository) GetActiveByOrderIDForUpdate(ctx context.Context, orderID kernel.UUID) (*picking.Task, error) {
	return r.getActive(r.withItems(ctx).Clauses(forUpdate), orderID)
}

func (r *GormPickingTaskRepository) get(db *gorm.DB, id kernel.UUID) (*picking.Task, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PickingTaskDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("picking task", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormPickingTaskRepository) getActive(db *gorm.DB, orderID kernel.UUID) (*picking.Task, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto PickingTaskDTO
	err := db.
		Where("order_id = ? AND status IN ?", orderID.Bytes(), activeStatuses).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("active picking task of order", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormPickingTaskRepository) GetAllByOrderID(ctx context.Context, orderID kernel.UUID) ([]*picking.Task, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []PickingTaskDTO
	if err := r.withItems(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	tasks := make([]*picking.Task, 0, len(dtos))
	for _, dto := range dtos {
		task, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

func (r *GormPickingTaskRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}
