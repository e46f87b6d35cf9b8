package repositories

import (
	"context"
	"fmt"
	"sync"

	"techstore/models"
)

// MemoryOrderRepository keeps orders for the life of the process. Newest
// orders are listed first.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders []models.Order
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{}
}

func (r *MemoryOrderRepository) Create(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, o := range r.orders {
		if o.OrderNumber == order.OrderNumber {
			return fmt.Errorf("order number %s already exists", order.OrderNumber)
		}
	}
	r.orders = append(r.orders, cloneOrder(*order))
	return nil
}

func (r *MemoryOrderRepository) GetByNumber(ctx context.Context, number string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.OrderNumber == number {
			found := cloneOrder(o)
			return &found, nil
		}
	}
	return nil, ErrOrderNotFound
}

func (r *MemoryOrderRepository) List(ctx context.Context, limit, offset int) ([]models.Order, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.orders)
	out := []models.Order{}
	if offset < 0 || offset >= total {
		return out, total, nil
	}
	for i := total - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, cloneOrder(r.orders[i]))
	}
	return out, total, nil
}

func cloneOrder(o models.Order) models.Order {
	o.Items = append([]models.LineItem(nil), o.Items...)
	return o
}
