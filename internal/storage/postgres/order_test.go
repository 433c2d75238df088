package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/bistro/internal/domain/errors"
	"github.com/polkiloo/bistro/internal/domain/model"
)

var orderColumnNames = []string{
	"id", "order_number", "total_amount", "status", "customer_name", "table_number", "created_at", "updated_at",
}

func orderRows(orders ...model.Order) *pgxmockv3.Rows {
	rows := pgxmockv3.NewRows(orderColumnNames)
	for _, o := range orders {
		rows.AddRow(o.ID, o.Number, o.TotalAmount, o.Status, o.CustomerName, o.TableNumber, o.CreatedAt, o.UpdatedAt)
	}
	return rows
}

func lineRows() *pgxmockv3.Rows {
	return pgxmockv3.NewRows([]string{"order_id", "menu_item_id", "quantity", "price"})
}

func sampleOrder(id string) model.Order {
	createdAt := time.Date(2024, time.January, 15, 12, 30, 0, 0, time.UTC)
	return model.Order{
		ID:           id,
		Number:       "ORD-20240115-0001",
		TotalAmount:  decimal.RequireFromString("25.00"),
		Status:       model.OrderStatusPending,
		CustomerName: "Ann",
		TableNumber:  4,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

func TestOrderRepositoryCreate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}
	ctx := context.Background()

	order := sampleOrder("o1")
	order.Number = ""
	order.Items = []model.OrderLine{
		{MenuItemID: "m1", Quantity: 2, Price: decimal.RequireFromString("10.00")},
		{MenuItemID: "m2", Quantity: 1, Price: decimal.RequireFromString("5.00")},
	}
	orderArgs := func(number string) []any {
		return []any{"o1", number, pgxmockv3.AnyArg(), "Pending", "Ann", 4, order.CreatedAt, order.UpdatedAt}
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO order_sequences").WithArgs("20240115").WillReturnRows(pgxmockv3.NewRows([]string{"last_value"}).AddRow(7))
	mock.ExpectExec("INSERT INTO orders").WithArgs(orderArgs("ORD-20240115-0007")...).WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO order_items").WithArgs("o1", 0, "m1", 2, pgxmockv3.AnyArg()).WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO order_items").WithArgs("o1", 1, "m2", 1, pgxmockv3.AnyArg()).WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	mock.ExpectCommit()

	created, err := repo.Create(ctx, order)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Number != "ORD-20240115-0007" || len(created.Items) != 2 {
		t.Fatalf("unexpected order: %+v", created)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO order_sequences").WithArgs("20240115").WillReturnError(errors.New("sequence"))
	mock.ExpectRollback()
	if _, err := repo.Create(ctx, order); err == nil {
		t.Fatal("expected sequence error")
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO order_sequences").WithArgs("20240115").WillReturnRows(pgxmockv3.NewRows([]string{"last_value"}).AddRow(8))
	mock.ExpectExec("INSERT INTO orders").WithArgs(orderArgs("ORD-20240115-0008")...).WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()
	if _, err := repo.Create(ctx, order); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO order_sequences").WithArgs("20240115").WillReturnRows(pgxmockv3.NewRows([]string{"last_value"}).AddRow(9))
	mock.ExpectExec("INSERT INTO orders").WithArgs(orderArgs("ORD-20240115-0009")...).WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO order_items").WithArgs("o1", 0, "m1", 2, pgxmockv3.AnyArg()).WillReturnError(errors.New("line"))
	mock.ExpectRollback()
	if _, err := repo.Create(ctx, order); err == nil {
		t.Fatal("expected line insert error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryGetByID(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}
	ctx := context.Background()

	mock.ExpectQuery("FROM orders WHERE id=").WithArgs("o1").WillReturnRows(orderRows(sampleOrder("o1")))
	mock.ExpectQuery("FROM order_items").WithArgs([]string{"o1"}).WillReturnRows(
		lineRows().
			AddRow("o1", "m1", 2, decimal.RequireFromString("10.00")).
			AddRow("o1", "m2", 1, decimal.RequireFromString("5.00")),
	)
	order, err := repo.GetByID(ctx, "o1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order.Items) != 2 || order.Items[0].MenuItemID != "m1" || order.ItemCount() != 3 {
		t.Fatalf("unexpected lines: %+v", order.Items)
	}

	mock.ExpectQuery("FROM orders WHERE id=").WithArgs("missing").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM orders WHERE id=").WithArgs("o1").WillReturnRows(orderRows(sampleOrder("o1")))
	mock.ExpectQuery("FROM order_items").WithArgs([]string{"o1"}).WillReturnError(errors.New("lines"))
	if _, err := repo.GetByID(ctx, "o1"); err == nil {
		t.Fatal("expected lines error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryList(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}
	ctx := context.Background()

	first, second := sampleOrder("o1"), sampleOrder("o2")
	second.Number = "ORD-20240115-0002"

	mock.ExpectQuery("SELECT COUNT").WithArgs("Pending").WillReturnRows(pgxmockv3.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("WHERE status = .* ORDER BY total_amount ASC, id ASC").WithArgs("Pending", 10, 0).
		WillReturnRows(orderRows(first, second))
	mock.ExpectQuery("FROM order_items").WithArgs([]string{"o1", "o2"}).WillReturnRows(
		lineRows().
			AddRow("o1", "m1", 1, decimal.RequireFromString("25.00")).
			AddRow("o2", "m2", 5, decimal.RequireFromString("5.00")),
	)
	orders, total, err := repo.List(ctx, model.OrderFilter{
		Status:    model.OrderStatusPending,
		SortBy:    model.SortByTotalAmount,
		SortOrder: model.SortAsc,
	}, model.Page{Number: 1, Limit: 10})
	if err != nil || total != 2 || len(orders) != 2 {
		t.Fatalf("unexpected result: %v total=%d err=%v", orders, total, err)
	}
	if orders[1].Items[0].Quantity != 5 {
		t.Fatalf("lines attached to wrong order: %+v", orders)
	}

	mock.ExpectQuery("SELECT COUNT").WillReturnRows(pgxmockv3.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("ORDER BY created_at DESC, id DESC").WithArgs(20, 20).WillReturnRows(orderRows())
	orders, total, err = repo.List(ctx, model.OrderFilter{SortBy: "bogus"}, model.Page{Number: 2, Limit: 20})
	if err != nil || total != 0 || len(orders) != 0 {
		t.Fatalf("expected empty page, got %v total=%d err=%v", orders, total, err)
	}

	mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("count"))
	if _, _, err := repo.List(ctx, model.OrderFilter{}, model.Page{Number: 1, Limit: 10}); err == nil {
		t.Fatal("expected count error")
	}

	mock.ExpectQuery("SELECT COUNT").WillReturnRows(pgxmockv3.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("ORDER BY created_at").WithArgs(10, 0).WillReturnRows(
		orderRows(first).AddRow("o3", "n", "not-a-decimal-value", model.OrderStatusPending, "Bo", 1, first.CreatedAt, first.CreatedAt),
	)
	if _, _, err := repo.List(ctx, model.OrderFilter{}, model.Page{Number: 1, Limit: 10}); err == nil {
		t.Fatal("expected scan error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryAll(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}
	ctx := context.Background()

	mock.ExpectQuery("FROM orders ORDER BY created_at DESC").WillReturnRows(orderRows(sampleOrder("o1")))
	mock.ExpectQuery("FROM order_items").WithArgs([]string{"o1"}).WillReturnRows(lineRows().AddRow("o1", "m1", 1, decimal.RequireFromString("25.00")))
	orders, err := repo.All(ctx)
	if err != nil || len(orders) != 1 || len(orders[0].Items) != 1 {
		t.Fatalf("unexpected result: %v err=%v", orders, err)
	}

	mock.ExpectQuery("FROM orders ORDER BY created_at DESC").WillReturnRows(orderRows())
	orders, err = repo.All(ctx)
	if err != nil || len(orders) != 0 {
		t.Fatalf("expected no orders, got %v err=%v", orders, err)
	}

	mock.ExpectQuery("FROM orders ORDER BY created_at DESC").WillReturnError(errors.New("query"))
	if _, err := repo.All(ctx); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryUpdateStatus(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}
	ctx := context.Background()
	at := time.Date(2024, time.January, 15, 13, 0, 0, 0, time.UTC)

	ready := sampleOrder("o1")
	ready.Status = model.OrderStatusReady
	ready.UpdatedAt = at
	mock.ExpectQuery("UPDATE orders SET status=").WithArgs("Ready", at, "o1", "Pending").WillReturnRows(orderRows(ready))
	mock.ExpectQuery("FROM order_items").WithArgs([]string{"o1"}).WillReturnRows(lineRows())
	updated, err := repo.UpdateStatus(ctx, "o1", model.OrderStatusPending, model.OrderStatusReady, at)
	if err != nil || updated.Status != model.OrderStatusReady || !updated.UpdatedAt.Equal(at) {
		t.Fatalf("unexpected result: %+v err=%v", updated, err)
	}

	mock.ExpectQuery("UPDATE orders SET status=").WithArgs("Cancelled", at, "o1", "Pending").WillReturnRows(orderRows())
	mock.ExpectQuery("SELECT status FROM orders").WithArgs("o1").WillReturnRows(pgxmockv3.NewRows([]string{"status"}).AddRow("Ready"))
	if _, err := repo.UpdateStatus(ctx, "o1", model.OrderStatusPending, model.OrderStatusCancelled, at); !errors.Is(err, domainErrors.ErrStatusConflict) {
		t.Fatalf("expected status conflict, got %v", err)
	}

	mock.ExpectQuery("UPDATE orders SET status=").WithArgs("Ready", at, "missing", "Pending").WillReturnRows(orderRows())
	mock.ExpectQuery("SELECT status FROM orders").WithArgs("missing").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.UpdateStatus(ctx, "missing", model.OrderStatusPending, model.OrderStatusReady, at); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("UPDATE orders SET status=").WithArgs("Ready", at, "o1", "Pending").WillReturnError(errors.New("update"))
	if _, err := repo.UpdateStatus(ctx, "o1", model.OrderStatusPending, model.OrderStatusReady, at); err == nil {
		t.Fatal("expected update error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
