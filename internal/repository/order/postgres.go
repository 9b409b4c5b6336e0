package order

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"biomed-backend/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Insert(ctx context.Context, o domain.Order) (*domain.Order, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return nil, err
	}
	const q = `
INSERT INTO orders (session_id, customer_email, customer_name, customer_phone, customer_address, customer_city, customer_postal_code, delivery_notes, amount_total, currency, items, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id::text, created_at
`
	if err := r.pool.QueryRow(ctx, q,
		o.SessionID,
		o.CustomerEmail,
		o.CustomerName,
		o.CustomerPhone,
		o.Address,
		o.City,
		o.PostalCode,
		o.DeliveryNotes,
		o.AmountTotal,
		o.Currency,
		items,
		string(o.Status),
	).Scan(&o.ID, &o.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &o, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Order, error) {
	const q = `
SELECT id::text, session_id, customer_email, customer_name, customer_phone, customer_address, customer_city, customer_postal_code, delivery_notes, amount_total, currency, items, status, created_at
FROM orders
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var o domain.Order
		var items []byte
		if err := rows.Scan(
			&o.ID,
			&o.SessionID,
			&o.CustomerEmail,
			&o.CustomerName,
			&o.CustomerPhone,
			&o.Address,
			&o.City,
			&o.PostalCode,
			&o.DeliveryNotes,
			&o.AmountTotal,
			&o.Currency,
			&items,
			(*string)(&o.Status),
			&o.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(items, &o.Items); err != nil {
			r.logger.Printf("order %s: bad items payload: %v", o.ID, err)
			o.Items = []domain.OrderItem{}
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
