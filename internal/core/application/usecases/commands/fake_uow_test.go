package commands_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/picking"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

var errInjected = errors.New("injected failure")

// memoryStore is the committed state shared by every unit of work created from it.
// Aggregates are cloned on every read and write, so a handler that aborts
// leaves nothing behind.
type memoryStore struct {
	t      *testing.T
	orders map[kernel.UUID]*order.Order
	tasks  map[kernel.UUID]*picking.Task
	units  map[kernel.UUID]*inventory.StorageUnit
	events []kernel.DomainEvent

	failOn  string
	commits int

	// locks records every row lock taken, in order, as "kind:id".
	locks []string
}

func newMemoryStore(t *testing.T) *memoryStore {
	return &memoryStore{
		t:      t,
		orders: map[kernel.UUID]*order.Order{},
		tasks:  map[kernel.UUID]*picking.Task{},
		units:  map[kernel.UUID]*inventory.StorageUnit{},
	}
}

func (s *memoryStore) seedOrder(o *order.Order) {
	s.orders[o.ID()] = s.cloneOrder(o)
}

func (s *memoryStore) seedTask(task *picking.Task) {
	s.tasks[task.ID()] = s.cloneTask(task)
}

func (s *memoryStore) seedUnit(u *inventory.StorageUnit) {
	s.units[u.ID()] = s.cloneUnit(u)
}

func (s *memoryStore) order(id kernel.UUID) *order.Order {
	o, ok := s.orders[id]
	require.True(s.t, ok, "order %s not stored", id)
	return o
}

func (s *memoryStore) unit(id kernel.UUID) *inventory.StorageUnit {
	u, ok := s.units[id]
	require.True(s.t, ok, "unit %s not stored", id)
	return u
}

func (s *memoryStore) tasksOf(orderID kernel.UUID) []*picking.Task {
	var out []*picking.Task
	for _, task := range s.tasks {
		if task.OrderID().IsEqual(orderID) {
			out = append(out, task)
		}
	}
	return out
}

func (s *memoryStore) eventNames() []string {
	names := make([]string, 0, len(s.events))
	for _, e := range s.events {
		names = append(names, e.Name())
	}
	return names
}

func (s *memoryStore) cloneOrder(o *order.Order) *order.Order {
	c, err := order.RestoreOrder(o.ID(), o.CustomerID(), o.Status(), o.Lines(), o.Timeline(), o.CancellationReason())
	require.NoError(s.t, err)
	return c
}

func (s *memoryStore) cloneTask(task *picking.Task) *picking.Task {
	c, err := picking.RestoreTask(task.ID(), task.OrderID(), task.PickerID(), task.Status(), task.Zone(),
		task.Items(), task.Timeline())
	require.NoError(s.t, err)
	return c
}

func (s *memoryStore) cloneUnit(u *inventory.StorageUnit) *inventory.StorageUnit {
	c, err := inventory.RestoreStorageUnit(u.ID(), u.Product(), u.LocationCode(), u.Zone(),
		u.Quantity(), u.Reserved(), u.LastRestockedAt())
	require.NoError(s.t, err)
	return c
}

// memoryUoW buffers writes until Commit.
type memoryUoW struct {
	store   *memoryStore
	active  bool
	orders  map[kernel.UUID]*order.Order
	tasks   map[kernel.UUID]*picking.Task
	units   map[kernel.UUID]*inventory.StorageUnit
	tracked []kernel.EventSource
}

func newMemoryUoW(store *memoryStore) *memoryUoW {
	return &memoryUoW{store: store}
}

func (u *memoryUoW) fail(op string) error {
	if u.store.failOn == op {
		return errInjected
	}
	return nil
}

func (u *memoryUoW) Begin(context.Context) error {
	if err := u.fail("Begin"); err != nil {
		return err
	}
	if !u.active {
		u.active = true
		u.orders = map[kernel.UUID]*order.Order{}
		u.tasks = map[kernel.UUID]*picking.Task{}
		u.units = map[kernel.UUID]*inventory.StorageUnit{}
		u.tracked = nil
	}
	return nil
}

func (u *memoryUoW) Commit(context.Context) error {
	if !u.active {
		return errors.New("no transaction")
	}
	if err := u.fail("Commit"); err != nil {
		return err
	}
	for id, o := range u.orders {
		u.store.orders[id] = o
	}
	for id, task := range u.tasks {
		u.store.tasks[id] = task
	}
	for id, unit := range u.units {
		u.store.units[id] = unit
	}
	for _, src := range u.tracked {
		u.store.events = append(u.store.events, src.DomainEvents()...)
		src.ClearDomainEvents()
	}
	u.store.commits++
	u.active = false
	return nil
}

func (u *memoryUoW) Rollback(context.Context) error {
	if !u.active {
		return errors.New("no transaction")
	}
	u.active = false
	u.tracked = nil
	return nil
}

func (u *memoryUoW) OrderRepository() ports.OrderRepository {
	return memoryOrderRepo{u}
}

func (u *memoryUoW) PickingTaskRepository() ports.PickingTaskRepository {
	return memoryTaskRepo{u}
}

func (u *memoryUoW) StorageUnitRepository() ports.StorageUnitRepository {
	return memoryUnitRepo{u}
}

type memoryOrderRepo struct{ u *memoryUoW }

func (r memoryOrderRepo) Add(_ context.Context, o *order.Order) error {
	if err := r.u.fail("OrderRepository.Add"); err != nil {
		return err
	}
	r.u.orders[o.ID()] = r.u.store.cloneOrder(o)
	r.u.tracked = append(r.u.tracked, o)
	return nil
}

func (r memoryOrderRepo) Update(ctx context.Context, o *order.Order) error {
	if err := r.u.fail("OrderRepository.Update"); err != nil {
		return err
	}
	return r.Add(ctx, o)
}

func (r memoryOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if o, ok := r.u.orders[id]; ok {
		return r.u.store.cloneOrder(o), nil
	}
	if o, ok := r.u.store.orders[id]; ok {
		return r.u.store.cloneOrder(o), nil
	}
	return nil, errs.NewObjectNotFoundError("order", id)
}

func (r memoryOrderRepo) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	r.u.store.locks = append(r.u.store.locks, "order:"+id.String())
	return r.Get(ctx, id)
}

func (r memoryOrderRepo) GetAllByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	var out []*order.Order
	for id := range r.u.store.orders {
		o, _ := r.Get(ctx, id)
		if o.Status() == status {
			out = append(out, o)
		}
	}
	return out, nil
}

type memoryTaskRepo struct{ u *memoryUoW }

func (r memoryTaskRepo) Add(_ context.Context, task *picking.Task) error {
	if err := r.u.fail("PickingTaskRepository.Add"); err != nil {
		return err
	}
	r.u.tasks[task.ID()] = r.u.store.cloneTask(task)
	r.u.tracked = append(r.u.tracked, task)
	return nil
}

func (r memoryTaskRepo) Update(ctx context.Context, task *picking.Task) error {
	if err := r.u.fail("PickingTaskRepository.Update"); err != nil {
		return err
	}
	return r.Add(ctx, task)
}

func (r memoryTaskRepo) Get(_ context.Context, id kernel.UUID) (*picking.Task, error) {
	if task, ok := r.u.tasks[id]; ok {
		return r.u.store.cloneTask(task), nil
	}
	if task, ok := r.u.store.tasks[id]; ok {
		return r.u.store.cloneTask(task), nil
	}
	return nil, errs.NewObjectNotFoundError("picking task", id)
}

func (r memoryTaskRepo) GetForUpdate(ctx context.Context, id kernel.UUID) (*picking.Task, error) {
	r.u.store.locks = append(r.u.store.locks, "task:"+id.String())
	return r.Get(ctx, id)
}

func (r memoryTaskRepo) GetActiveByOrderIDForUpdate(ctx context.Context, orderID kernel.UUID) (*picking.Task, error) {
	task, err := r.GetActiveByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	r.u.store.locks = append(r.u.store.locks, "task:"+task.ID().String())
	return task, nil
}

func (r memoryTaskRepo) GetActiveByOrderID(ctx context.Context, orderID kernel.UUID) (*picking.Task, error) {
	all, _ := r.GetAllByOrderID(ctx, orderID)
	for _, task := range all {
		if task.IsActive() {
			return task, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("active picking task for order", orderID)
}

func (r memoryTaskRepo) GetAllByOrderID(ctx context.Context, orderID kernel.UUID) ([]*picking.Task, error) {
	ids := map[kernel.UUID]struct{}{}
	for id := range r.u.store.tasks {
		ids[id] = struct{}{}
	}
	for id := range r.u.tasks {
		ids[id] = struct{}{}
	}
	var out []*picking.Task
	for id := range ids {
		task, _ := r.Get(ctx, id)
		if task.OrderID().IsEqual(orderID) {
			out = append(out, task)
		}
	}
	return out, nil
}

type memoryUnitRepo struct{ u *memoryUoW }

func (r memoryUnitRepo) current(id kernel.UUID) (*inventory.StorageUnit, error) {
	if unit, ok := r.u.units[id]; ok {
		return unit, nil
	}
	if unit, ok := r.u.store.units[id]; ok {
		c := r.u.store.cloneUnit(unit)
		r.u.units[id] = c
		return c, nil
	}
	return nil, errs.NewObjectNotFoundError("storage unit", id)
}

func (r memoryUnitRepo) Add(_ context.Context, unit *inventory.StorageUnit) error {
	for _, existing := range r.u.store.units {
		if existing.Product().ID().IsEqual(unit.Product().ID()) && existing.LocationCode() == unit.LocationCode() {
			return errs.NewValueIsInvalidError("storage unit location")
		}
	}
	r.u.units[unit.ID()] = r.u.store.cloneUnit(unit)
	return nil
}

func (r memoryUnitRepo) Update(_ context.Context, unit *inventory.StorageUnit) error {
	if err := r.u.fail("StorageUnitRepository.Update"); err != nil {
		return err
	}
	r.u.units[unit.ID()] = r.u.store.cloneUnit(unit)
	return nil
}

func (r memoryUnitRepo) Get(_ context.Context, id kernel.UUID) (*inventory.StorageUnit, error) {
	unit, err := r.current(id)
	if err != nil {
		return nil, err
	}
	return r.u.store.cloneUnit(unit), nil
}

func (r memoryUnitRepo) GetForUpdate(ctx context.Context, id kernel.UUID) (*inventory.StorageUnit, error) {
	r.u.store.locks = append(r.u.store.locks, "unit:"+id.String())
	return r.Get(ctx, id)
}

func (r memoryUnitRepo) GetAvailableForUpdate(ctx context.Context, productIDs []kernel.UUID) ([]*inventory.StorageUnit, error) {
	wanted := map[kernel.UUID]struct{}{}
	for _, id := range productIDs {
		wanted[id] = struct{}{}
	}
	var out []*inventory.StorageUnit
	for id := range r.u.store.units {
		unit, _ := r.Get(ctx, id)
		if _, ok := wanted[unit.Product().ID()]; ok && unit.Available() > 0 {
			out = append(out, unit)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID().Compare(out[j].ID()) < 0 })
	return out, nil
}

func (r memoryUnitRepo) Reserve(_ context.Context, id kernel.UUID, qty int) error {
	if err := r.u.fail("StorageUnitRepository.Reserve"); err != nil {
		return err
	}
	unit, err := r.current(id)
	if err != nil {
		return err
	}
	return unit.Reserve(qty)
}

func (r memoryUnitRepo) ReleaseReservation(_ context.Context, id kernel.UUID, qty int) error {
	unit, err := r.current(id)
	if err != nil {
		return err
	}
	return unit.ReleaseReservation(qty)
}

func (r memoryUnitRepo) Pick(_ context.Context, id kernel.UUID, qty int) error {
	if err := r.u.fail("StorageUnitRepository.Pick"); err != nil {
		return err
	}
	unit, err := r.current(id)
	if err != nil {
		return err
	}
	return unit.Pick(qty)
}

type memoryUoWFactory struct{ store *memoryStore }

func (f memoryUoWFactory) Create() commands.UoW { return newMemoryUoW(f.store) }

type memoryOrderUoWFactory struct{ store *memoryStore }

func (f memoryOrderUoWFactory) Create() commands.OrderUoW { return newMemoryUoW(f.store) }

type memoryPickingUoWFactory struct{ store *memoryStore }

func (f memoryPickingUoWFactory) Create() commands.PickingUoW { return newMemoryUoW(f.store) }

type memoryInventoryUoWFactory struct{ store *memoryStore }

func (f memoryInventoryUoWFactory) Create() commands.InventoryUoW { return newMemoryUoW(f.store) }
