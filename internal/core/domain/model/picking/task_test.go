package picking_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/picking"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC)

func newItem(t *testing.T, required int) picking.Item {
	t.Helper()
	p, err := kernel.NewProduct(kernel.NewUUID(), "Widget", "WID-1")
	require.NoError(t, err)
	item, err := picking.NewItem(p, kernel.NewUUID(), "A-01", "WID-1-A-01", required)
	require.NoError(t, err)
	return item
}

func newTask(t *testing.T, items ...picking.Item) *picking.Task {
	t.Helper()
	task, err := picking.NewTask(kernel.NewUUID(), kernel.NewUUID(), "A", items, now)
	require.NoError(t, err)
	return task
}

func startedTask(t *testing.T, items ...picking.Item) *picking.Task {
	t.Helper()
	task := newTask(t, items...)
	require.NoError(t, task.Start(kernel.NewUUID(), now))
	return task
}

func TestNewTask(t *testing.T) {
	t.Run("should create task with a created event", func(t *testing.T) {
		task := newTask(t, newItem(t, 3))

		assert.NoError(t, task.Validate())
		assert.Equal(t, picking.Created, task.Status())
		assert.True(t, task.IsActive())
		assert.Nil(t, task.PickerID())
		assert.Equal(t, "A", task.Zone())
		assert.Equal(t, 0, task.Progress())
		events := task.DomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, picking.EventCreated, events[0].Name())
		assert.Equal(t, task.OrderID().String(), events[0].Attributes()["order_id"])
	})

	t.Run("should reject empty items", func(t *testing.T) {
		_, err := picking.NewTask(kernel.NewUUID(), kernel.NewUUID(), "", nil, now)

		assert.ErrorIs(t, err, picking.ErrItemsAreRequired)
	})

	t.Run("should reject two items from one storage unit", func(t *testing.T) {
		item := newItem(t, 1)

		_, err := picking.NewTask(kernel.NewUUID(), kernel.NewUUID(), "", []picking.Item{item, item}, now)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewItem(t *testing.T) {
	p, err := kernel.NewProduct(kernel.NewUUID(), "Widget", "WID-1")
	require.NoError(t, err)

	_, err = picking.NewItem(p, kernel.UUID{}, " ", "", 0)

	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestTask_Start(t *testing.T) {
	t.Run("should claim the task", func(t *testing.T) {
		task := newTask(t, newItem(t, 1))
		picker := kernel.NewUUID()

		require.NoError(t, task.Start(picker, now))

		assert.Equal(t, picking.InProgress, task.Status())
		require.NotNil(t, task.PickerID())
		assert.True(t, picker.IsEqual(*task.PickerID()))
		assert.NotNil(t, task.Timeline().StartedAt)
	})

	t.Run("should reject second start", func(t *testing.T) {
		task := startedTask(t, newItem(t, 1))

		assert.ErrorIs(t, task.Start(kernel.NewUUID(), now), errs.ErrInvalidTransition)
	})

	t.Run("should require a picker", func(t *testing.T) {
		task := newTask(t, newItem(t, 1))

		assert.ErrorIs(t, task.Start(kernel.UUID{}, now), picking.ErrPickerIsRequired)
		assert.Equal(t, picking.Created, task.Status())
	})
}

func TestTask_UpdateItemPickedStatus(t *testing.T) {
	t.Run("should record progress", func(t *testing.T) {
		a, b := newItem(t, 2), newItem(t, 4)
		task := startedTask(t, a, b)

		require.NoError(t, task.UpdateItemPickedStatus(a.StorageUnitID(), 2))
		require.NoError(t, task.UpdateItemPickedStatus(b.StorageUnitID(), 1))

		assert.Equal(t, 50, task.Progress())
		item, ok := task.Item(b.StorageUnitID())
		require.True(t, ok)
		assert.Equal(t, 1, item.QuantityPicked())
		assert.False(t, item.IsPicked())
	})

	t.Run("should reject before the task is claimed", func(t *testing.T) {
		a := newItem(t, 2)
		task := newTask(t, a)

		err := task.UpdateItemPickedStatus(a.StorageUnitID(), 1)

		var transitionErr *errs.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, "picking task", transitionErr.Entity)
		assert.Equal(t, picking.Created.String(), transitionErr.From)
		assert.Equal(t, picking.InProgress.String(), transitionErr.To)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("should reject after the task is cancelled", func(t *testing.T) {
		a := newItem(t, 2)
		task := startedTask(t, a)
		require.NoError(t, task.Cancel(now))

		err := task.UpdateItemPickedStatus(a.StorageUnitID(), 1)

		var transitionErr *errs.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, picking.Cancelled.String(), transitionErr.From)
		item, ok := task.Item(a.StorageUnitID())
		require.True(t, ok)
		assert.Zero(t, item.QuantityPicked())
	})

	t.Run("should reject unknown storage unit", func(t *testing.T) {
		task := startedTask(t, newItem(t, 2))

		assert.ErrorIs(t, task.UpdateItemPickedStatus(kernel.NewUUID(), 1), errs.ErrObjectNotFound)
	})

	t.Run("should reject quantity outside 0..required", func(t *testing.T) {
		a := newItem(t, 2)
		task := startedTask(t, a)

		assert.ErrorIs(t, task.UpdateItemPickedStatus(a.StorageUnitID(), 3), errs.ErrValueIsOutOfRange)
		assert.ErrorIs(t, task.UpdateItemPickedStatus(a.StorageUnitID(), -1), errs.ErrValueIsOutOfRange)
	})
}

func TestTask_Complete(t *testing.T) {
	t.Run("should complete iff every item is picked", func(t *testing.T) {
		a, b := newItem(t, 2), newItem(t, 1)
		task := startedTask(t, a, b)
		require.NoError(t, task.UpdateItemPickedStatus(a.StorageUnitID(), 2))

		err := task.Complete(now)

		require.ErrorIs(t, err, errs.ErrIncompleteItems)
		var incomplete *errs.IncompleteItemsError
		require.ErrorAs(t, err, &incomplete)
		assert.Equal(t, 1, incomplete.Unpicked)
		assert.Equal(t, picking.InProgress, task.Status())

		require.NoError(t, task.UpdateItemPickedStatus(b.StorageUnitID(), 1))
		require.NoError(t, task.Complete(now))
		assert.Equal(t, picking.Completed, task.Status())
		assert.Equal(t, 100, task.Progress())
		assert.False(t, task.IsActive())
		assert.Empty(t, task.OutstandingReservations())
	})

	t.Run("should reject completing a created task", func(t *testing.T) {
		task := newTask(t, newItem(t, 1))

		assert.ErrorIs(t, task.Complete(now), errs.ErrInvalidTransition)
	})
}

func TestTask_Cancel(t *testing.T) {
	t.Run("should cancel an active task", func(t *testing.T) {
		a := newItem(t, 3)
		task := startedTask(t, a)

		reservations := task.OutstandingReservations()
		require.Len(t, reservations, 1)
		assert.True(t, a.StorageUnitID().IsEqual(reservations[0].StorageUnitID))
		assert.Equal(t, 3, reservations[0].Quantity)

		require.NoError(t, task.Cancel(now))

		assert.Equal(t, picking.Cancelled, task.Status())
		assert.Empty(t, task.OutstandingReservations())
		assert.ErrorIs(t, task.Cancel(now), errs.ErrInvalidTransition)
		assert.ErrorIs(t, task.Start(kernel.NewUUID(), now), errs.ErrInvalidTransition)
	})

	t.Run("should reject cancelling a completed task", func(t *testing.T) {
		a := newItem(t, 1)
		task := startedTask(t, a)
		require.NoError(t, task.UpdateItemPickedStatus(a.StorageUnitID(), 1))
		require.NoError(t, task.Complete(now))

		assert.ErrorIs(t, task.Cancel(now), errs.ErrInvalidTransition)
	})
}

func TestRestoreTask(t *testing.T) {
	t.Run("should require a picker when in progress", func(t *testing.T) {
		_, err := picking.RestoreTask(kernel.NewUUID(), kernel.NewUUID(), nil, picking.InProgress, "A",
			[]picking.Item{newItem(t, 1)}, picking.Timeline{CreatedAt: now})

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should restore without events", func(t *testing.T) {
		picker := kernel.NewUUID()

		task, err := picking.RestoreTask(kernel.NewUUID(), kernel.NewUUID(), &picker, picking.InProgress, "A",
			[]picking.Item{newItem(t, 1)}, picking.Timeline{CreatedAt: now})

		require.NoError(t, err)
		assert.Empty(t, task.DomainEvents())
		assert.True(t, task.IsActive())
	})
}

func TestStatus_TransitionTable(t *testing.T) {
	cases := []struct {
		from, to picking.Status
		ok       bool
	}{
		{picking.Created, picking.InProgress, true},
		{picking.Created, picking.Cancelled, true},
		{picking.Created, picking.Completed, false},
		{picking.InProgress, picking.Completed, true},
		{picking.InProgress, picking.Cancelled, true},
		{picking.InProgress, picking.Created, false},
		{picking.Completed, picking.Cancelled, false},
		{picking.Cancelled, picking.InProgress, false},
		{picking.Unknown, picking.Created, false},
	}

	for _, tc := range cases {
		t.Run(tc.from.String()+" to "+tc.to.String(), func(t *testing.T) {
			_, err := tc.from.TransitionTo(tc.to)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, errs.ErrInvalidTransition)
			}
		})
	}

	parsed, err := picking.ParseStatus("InProgress")
	require.NoError(t, err)
	assert.Equal(t, picking.InProgress, parsed)
}
