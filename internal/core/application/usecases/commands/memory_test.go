package commands_test

import (
	"context"
	"sync"

	"manufacturing/internal/core/application/usecases/commands"
	"manufacturing/internal/core/domain/model/customerorder"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/productionorder"
	"manufacturing/internal/core/domain/model/warehouseorder"
	"manufacturing/internal/core/ports"
	"manufacturing/internal/pkg/errs"
)

// memStore is an in-memory persistence used by the scenario tests. It keeps
// aggregate pointers and has no transaction isolation.
type memStore struct {
	customers   map[string]*customerorder.CustomerOrder
	warehouses  map[string]*warehouseorder.WarehouseOrder
	productions map[string]*productionorder.ProductionOrder
	commitErr   error
}

func newMemStore() *memStore {
	return &memStore{
		customers:   map[string]*customerorder.CustomerOrder{},
		warehouses:  map[string]*warehouseorder.WarehouseOrder{},
		productions: map[string]*productionorder.ProductionOrder{},
	}
}

func (s *memStore) Create() commands.UoW {
	return &memUoW{store: s}
}

type memUoW struct {
	store *memStore
}

func (u *memUoW) Begin(context.Context) error    { return nil }
func (u *memUoW) Commit(context.Context) error   { return u.store.commitErr }
func (u *memUoW) Rollback(context.Context) error { return nil }

func (u *memUoW) CustomerOrderRepository() ports.CustomerOrderRepository {
	return memCustomers{u.store}
}

func (u *memUoW) WarehouseOrderRepository() ports.WarehouseOrderRepository {
	return memWarehouses{u.store}
}

func (u *memUoW) ProductionOrderRepository() ports.ProductionOrderRepository {
	return memProductions{u.store}
}

func (u *memUoW) ControlOrderRepository() ports.ControlOrderRepository { return nil }
func (u *memUoW) SupplyOrderRepository() ports.SupplyOrderRepository   { return nil }

type memCustomers struct{ s *memStore }

func (r memCustomers) Add(_ context.Context, o *customerorder.CustomerOrder) error {
	r.s.customers[o.ID().String()] = o
	return nil
}

func (r memCustomers) Update(ctx context.Context, o *customerorder.CustomerOrder) error {
	return r.Add(ctx, o)
}

func (r memCustomers) Delete(_ context.Context, id kernel.UUID) error {
	delete(r.s.customers, id.String())
	return nil
}

func (r memCustomers) Get(_ context.Context, id kernel.UUID) (*customerorder.CustomerOrder, error) {
	if o, ok := r.s.customers[id.String()]; ok {
		return o, nil
	}
	return nil, errs.NewObjectNotFoundError("customerOrderId", id)
}

func (r memCustomers) GetByNumber(_ context.Context, number string) (*customerorder.CustomerOrder, error) {
	for _, o := range r.s.customers {
		if o.Number() == number {
			return o, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("orderNumber", number)
}

func (r memCustomers) Find(context.Context, ports.CustomerOrderFilter) ([]*customerorder.CustomerOrder, error) {
	out := make([]*customerorder.CustomerOrder, 0, len(r.s.customers))
	for _, o := range r.s.customers {
		out = append(out, o)
	}
	return out, nil
}

type memWarehouses struct{ s *memStore }

func (r memWarehouses) Add(_ context.Context, o *warehouseorder.WarehouseOrder) error {
	r.s.warehouses[o.ID().String()] = o
	return nil
}

func (r memWarehouses) Update(ctx context.Context, o *warehouseorder.WarehouseOrder) error {
	return r.Add(ctx, o)
}

func (r memWarehouses) Get(_ context.Context, id kernel.UUID) (*warehouseorder.WarehouseOrder, error) {
	if o, ok := r.s.warehouses[id.String()]; ok {
		return o, nil
	}
	return nil, errs.NewObjectNotFoundError("warehouseOrderId", id)
}

func (r memWarehouses) GetByNumber(_ context.Context, number string) (*warehouseorder.WarehouseOrder, error) {
	for _, o := range r.s.warehouses {
		if o.Number() == number {
			return o, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("orderNumber", number)
}

func (r memWarehouses) ExistsForCustomerOrder(_ context.Context, id kernel.UUID) (bool, error) {
	for _, o := range r.s.warehouses {
		if o.CustomerOrderID().IsEqual(id) {
			return true, nil
		}
	}
	return false, nil
}

func (r memWarehouses) Find(context.Context, ports.WarehouseOrderFilter) ([]*warehouseorder.WarehouseOrder, error) {
	out := make([]*warehouseorder.WarehouseOrder, 0, len(r.s.warehouses))
	for _, o := range r.s.warehouses {
		out = append(out, o)
	}
	return out, nil
}

type memProductions struct{ s *memStore }

func (r memProductions) Add(_ context.Context, o *productionorder.ProductionOrder) error {
	r.s.productions[o.ID().String()] = o
	return nil
}

func (r memProductions) Update(ctx context.Context, o *productionorder.ProductionOrder) error {
	return r.Add(ctx, o)
}

func (r memProductions) Get(_ context.Context, id kernel.UUID) (*productionorder.ProductionOrder, error) {
	if o, ok := r.s.productions[id.String()]; ok {
		return o, nil
	}
	return nil, errs.NewObjectNotFoundError("productionOrderId", id)
}

func (r memProductions) GetByNumber(_ context.Context, number string) (*productionorder.ProductionOrder, error) {
	for _, o := range r.s.productions {
		if o.Number() == number {
			return o, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("orderNumber", number)
}

func (r memProductions) Find(_ context.Context, f ports.ProductionOrderFilter) ([]*productionorder.ProductionOrder, error) {
	out := make([]*productionorder.ProductionOrder, 0, len(r.s.productions))
	for _, o := range r.s.productions {
		if f.WarehouseOrderID != nil && (o.WarehouseOrderID() == nil || !o.WarehouseOrderID().IsEqual(*f.WarehouseOrderID)) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (r memProductions) FindInFlight(context.Context) ([]*productionorder.ProductionOrder, error) {
	return nil, nil
}

func (r memProductions) FindAwaitingSynthesis(context.Context) ([]*productionorder.ProductionOrder, error) {
	return nil, nil
}

// memInventory keeps stock per workstation and item.
type memInventory struct {
	mu    sync.Mutex
	stock map[kernel.WorkstationID]map[int64]int
}

func newMemInventory() *memInventory {
	return &memInventory{stock: map[kernel.WorkstationID]map[int64]int{}}
}

func (i *memInventory) set(ws kernel.WorkstationID, itemID int64, quantity int) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.stock[ws] == nil {
		i.stock[ws] = map[int64]int{}
	}
	i.stock[ws][itemID] = quantity
}

func (i *memInventory) get(ws kernel.WorkstationID, itemID int64) int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.stock[ws][itemID]
}

func (i *memInventory) UpdateStock(_ context.Context, ws kernel.WorkstationID, _ string, itemID int64, quantity int) (bool, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.stock[ws][itemID] < quantity {
		return false, nil
	}
	i.stock[ws][itemID] -= quantity
	return true, nil
}

func (i *memInventory) RestoreStock(_ context.Context, ws kernel.WorkstationID, _ string, itemID int64, quantity int) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.stock[ws] == nil {
		i.stock[ws] = map[int64]int{}
	}
	i.stock[ws][itemID] += quantity
	return nil
}

// counterSequence numbers every series from 1.
type counterSequence struct {
	mu     sync.Mutex
	values map[ports.Series]int64
}

func (c *counterSequence) Next(_ context.Context, series ports.Series) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.values == nil {
		c.values = map[ports.Series]int64{}
	}
	c.values[series]++
	return c.values[series], nil
}

var (
	_ ports.Inventory         = (*memInventory)(nil)
	_ ports.SequenceGenerator = (*counterSequence)(nil)
	_ commands.UoWFactory     = (*memStore)(nil)
)
