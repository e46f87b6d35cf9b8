package repositories

import (
	"context"
	"errors"

	"techstore/models"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByNumber(ctx context.Context, number string) (*models.Order, error)
	List(ctx context.Context, limit, offset int) ([]models.Order, int, error)
}
