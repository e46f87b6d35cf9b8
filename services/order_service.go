package services

import (
	"context"
	"errors"
	"math"

	"techstore/models"
	apperrors "techstore/pkg/errors"
	"techstore/repositories"
)

type OrderService struct {
	orders repositories.OrderRepository
}

func NewOrderService(orders repositories.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

func (s *OrderService) ListOrders(ctx context.Context, page, limit int) (*models.PaginationResponse, error) {
	page, limit, offset := pageWindow(page, limit)

	orders, total, err := s.orders.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	return &models.PaginationResponse{
		Success: true,
		Message: "Orders retrieved successfully",
		Data:    orders,
		Meta: models.MetaData{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}, nil
}

func (s *OrderService) GetOrder(ctx context.Context, number string) (*models.Order, error) {
	order, err := s.orders.GetByNumber(ctx, number)
	if errors.Is(err, repositories.ErrOrderNotFound) {
		return nil, &apperrors.ErrNotFound{Resource: "order", ID: number}
	}
	return order, err
}
