package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/bistro/internal/domain/errors"
	"github.com/polkiloo/bistro/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

const orderColumns = `id, order_number, total_amount, status, customer_name, table_number, created_at, updated_at`

var orderSortColumns = map[model.OrderSortField]string{
	model.SortByCreatedAt:    "created_at",
	model.SortByTotalAmount:  "total_amount",
	model.SortByCustomerName: "customer_name",
	model.SortByOrderNumber:  "order_number",
}

func scanOrder(row rowScanner) (model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.Number, &o.TotalAmount, &o.Status, &o.CustomerName, &o.TableNumber, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func collectOrders(rows pgx.Rows) ([]model.Order, error) {
	defer rows.Close()

	result := make([]model.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// attachLines loads order lines for every order in one query.
func attachLines(ctx context.Context, q querier, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	index := make(map[string]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
	}

	const query = `SELECT order_id, menu_item_id, quantity, price FROM order_items
                   WHERE order_id = ANY($1) ORDER BY order_id, position`
	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID string
			line    model.OrderLine
		)
		if err := rows.Scan(&orderID, &line.MenuItemID, &line.Quantity, &line.Price); err != nil {
			return err
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, line)
		}
	}
	return rows.Err()
}

func (r *orderRepository) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	const nextSequence = `INSERT INTO order_sequences (day, last_value) VALUES ($1, 1)
                          ON CONFLICT (day) DO UPDATE SET last_value = order_sequences.last_value + 1
                          RETURNING last_value`
	const insertOrder = `INSERT INTO orders (` + orderColumns + `)
                         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	const insertLine = `INSERT INTO order_items (order_id, position, menu_item_id, quantity, price)
                        VALUES ($1, $2, $3, $4, $5)`

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		day := model.OrderDay(order.CreatedAt)
		var seq int
		if err := tx.QueryRow(ctx, nextSequence, day).Scan(&seq); err != nil {
			return fmt.Errorf("next order sequence: %w", err)
		}
		order.Number = model.FormatOrderNumber(day, seq)

		if _, err := tx.Exec(ctx, insertOrder,
			order.ID, order.Number, order.TotalAmount, string(order.Status),
			order.CustomerName, order.TableNumber, order.CreatedAt, order.UpdatedAt,
		); err != nil {
			return translateError(err)
		}

		for i, line := range order.Items {
			if _, err := tx.Exec(ctx, insertLine, order.ID, i, line.MenuItemID, line.Quantity, line.Price); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if err != nil {
		return nil, translateError(err)
	}
	orders := []model.Order{order}
	if err := attachLines(ctx, r.storage.pool, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter, page model.Page) ([]model.Order, int, error) {
	var (
		where string
		args  []any
	)
	if filter.Status != "" {
		where = " WHERE status = $1"
		args = append(args, string(filter.Status))
	}

	var total int
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	column, ok := orderSortColumns[filter.SortBy]
	if !ok {
		column = orderSortColumns[model.SortByCreatedAt]
	}
	direction := "DESC"
	if filter.SortOrder == model.SortAsc {
		direction = "ASC"
	}
	query := fmt.Sprintf(`SELECT %s FROM orders%s ORDER BY %s %s, id %s LIMIT $%d OFFSET $%d`,
		orderColumns, where, column, direction, direction, len(args)+1, len(args)+2)

	rows, err := r.storage.pool.Query(ctx, query, append(args, limitArg(page.Limit), page.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	orders, err := collectOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	if err := attachLines(ctx, r.storage.pool, orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderRepository) All(ctx context.Context) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	orders, err := collectOrders(rows)
	if err != nil {
		return nil, err
	}
	if err := attachLines(ctx, r.storage.pool, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus, at time.Time) (*model.Order, error) {
	const update = `UPDATE orders SET status=$1, updated_at=$2
                    WHERE id=$3 AND status=$4
                    RETURNING ` + orderColumns

	order, err := scanOrder(r.storage.pool.QueryRow(ctx, update, string(to), at, id, string(from)))
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		var current string
		if err := r.storage.pool.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1`, id).Scan(&current); err != nil {
			return nil, translateError(err)
		}
		return nil, domainErrors.ErrStatusConflict
	}

	orders := []model.Order{order}
	if err := attachLines(ctx, r.storage.pool, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}
