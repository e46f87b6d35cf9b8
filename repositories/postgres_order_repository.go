package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"techstore/models"
)

type PostgresOrderRepository struct {
	db *pgxpool.Pool
}

func NewPostgresOrderRepository(db *pgxpool.Pool) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

func (r *PostgresOrderRepository) Create(ctx context.Context, order *models.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, order_number, session_id, subtotal, shipping_fee, tax, total, item_count,
			full_name, email, phone, address, city, zip_code, card_last4, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		order.ID, order.OrderNumber, order.SessionID,
		order.Totals.Subtotal, order.Totals.ShippingFee, order.Totals.Tax, order.Totals.Total, order.Totals.ItemCount,
		order.Shipping.FullName, order.Shipping.Email, order.Shipping.Phone,
		order.Shipping.Address, order.Shipping.City, order.Shipping.ZipCode,
		order.CardLast4, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	batch := &pgx.Batch{}
	for i, item := range order.Items {
		batch.Queue(`
			INSERT INTO order_items (order_id, position, product_id, name, price, quantity, image, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			order.ID, i, item.ID, item.Name, item.Price, item.Quantity, item.Image, item.Description,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert order items: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}
	return nil
}

const orderColumns = `id, order_number, session_id, subtotal, shipping_fee, tax, total, item_count,
	full_name, email, phone, address, city, zip_code, card_last4, created_at`

func scanOrder(row pgx.Row) (*models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.SessionID,
		&o.Totals.Subtotal, &o.Totals.ShippingFee, &o.Totals.Tax, &o.Totals.Total, &o.Totals.ItemCount,
		&o.Shipping.FullName, &o.Shipping.Email, &o.Shipping.Phone,
		&o.Shipping.Address, &o.Shipping.City, &o.Shipping.ZipCode,
		&o.CardLast4, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PostgresOrderRepository) GetByNumber(ctx context.Context, number string) (*models.Order, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_number = $1`, number)
	order, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if order.Items, err = r.items(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *PostgresOrderRepository) List(ctx context.Context, limit, offset int) ([]models.Order, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	rows.Close()

	for i := range orders {
		if orders[i].Items, err = r.items(ctx, &orders[i]); err != nil {
			return nil, 0, err
		}
	}
	return orders, total, nil
}

func (r *PostgresOrderRepository) items(ctx context.Context, order *models.Order) ([]models.LineItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT product_id, name, price, quantity, image, description
		 FROM order_items WHERE order_id = $1 ORDER BY position`, order.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.LineItem{}
	for rows.Next() {
		var item models.LineItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.Quantity, &item.Image, &item.Description); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
