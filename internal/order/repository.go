package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("order not found")

// DBPool matches the methods from *pgxpool.Pool that we use.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Order, error)
	CountAll(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status Status) (int, error)
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Create(ctx context.Context, o *Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, owner_id, subtotal, shipping_fee, gift_wrap_fee,
			discount_amount, total, coupon_code, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, o.ID, o.OwnerID, o.Subtotal, o.ShippingFee, o.GiftWrapFee,
		o.DiscountAmount, o.Total, o.CouponCode, o.Status, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, line := range o.Lines {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_lines (id, order_id, product_id, name, unit_price, quantity)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, uuid.NewString(), o.ID, line.ProductID, line.Name, line.UnitPrice, line.Quantity)
		if err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Order, error) {
	var o Order
	row := r.pool.QueryRow(ctx, `
		SELECT id, owner_id, subtotal, shipping_fee, gift_wrap_fee, discount_amount,
			total, coupon_code, status, created_at
		FROM orders WHERE id = $1
	`, id)
	err := row.Scan(&o.ID, &o.OwnerID, &o.Subtotal, &o.ShippingFee, &o.GiftWrapFee,
		&o.DiscountAmount, &o.Total, &o.CouponCode, &o.Status, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select order: %w", err)
	}

	o.Lines, err = r.loadLines(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, subtotal, shipping_fee, gift_wrap_fee, discount_amount,
			total, coupon_code, status, created_at
		FROM orders WHERE owner_id = $1 ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		err := rows.Scan(&o.ID, &o.OwnerID, &o.Subtotal, &o.ShippingFee, &o.GiftWrapFee,
			&o.DiscountAmount, &o.Total, &o.CouponCode, &o.Status, &o.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	for i := range orders {
		orders[i].Lines, err = r.loadLines(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *PostgresRepository) loadLines(ctx context.Context, orderID string) ([]Line, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT product_id, name, unit_price, quantity
		FROM order_lines WHERE order_id = $1
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("select order lines: %w", err)
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ProductID, &l.Name, &l.UnitPrice, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return lines, nil
}

func (r *PostgresRepository) CountAll(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM orders`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) CountByStatus(ctx context.Context, status Status) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM orders WHERE status = $1`, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count orders by status: %w", err)
	}
	return n, nil
}
