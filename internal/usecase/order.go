package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	domainErrors "github.com/polkiloo/bistro/internal/domain/errors"
	"github.com/polkiloo/bistro/internal/domain/model"
	"github.com/polkiloo/bistro/internal/domain/repository"
	"github.com/polkiloo/bistro/internal/metrics"
)

// maxTransitionAttempts bounds re-reads after losing a status compare-and-set.
const maxTransitionAttempts = 3

// OrderLineInput requests a quantity of one menu item.
type OrderLineInput struct {
	MenuItemID string `json:"menuItem" validate:"required,uuid"`
	Quantity   int    `json:"quantity" validate:"min=1,max=99"`
}

// OrderInput is a new order as submitted by a waiter.
type OrderInput struct {
	Items        []OrderLineInput `json:"items" validate:"required,min=1,dive"`
	CustomerName string           `json:"customerName" validate:"required,max=100"`
	TableNumber  int              `json:"tableNumber" validate:"min=1,max=99"`
}

type statusRules struct {
	Status model.OrderStatus `json:"status" validate:"status"`
}

// OrderUseCase owns order creation, status transitions and order reads.
type OrderUseCase struct {
	orders   repository.OrderRepository
	menu     repository.MenuRepository
	settings Settings
	now      func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, menu repository.MenuRepository, settings Settings) *OrderUseCase {
	return &OrderUseCase{orders: orders, menu: menu, settings: settings, now: time.Now}
}

func (u *OrderUseCase) clock() time.Time {
	return u.now().In(u.settings.location())
}

// Create prices the requested lines from the current menu and persists a Pending order.
// Nothing is written when any line references an unknown or unavailable item.
func (u *OrderUseCase) Create(ctx context.Context, in OrderInput) (*model.OrderDetails, error) {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	if err := validateStruct(in); err != nil {
		metrics.OrderRejected("validation")
		return nil, err
	}

	ids := make([]string, 0, len(in.Items))
	seen := make(map[string]struct{}, len(in.Items))
	for _, line := range in.Items {
		if _, ok := seen[line.MenuItemID]; ok {
			continue
		}
		seen[line.MenuItemID] = struct{}{}
		ids = append(ids, line.MenuItemID)
	}

	items, err := u.menu.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, line := range in.Items {
		if _, ok := items[line.MenuItemID]; !ok {
			metrics.OrderRejected("unknown_item")
			return nil, &domainErrors.ReferenceError{MenuItemID: line.MenuItemID}
		}
	}
	for _, line := range in.Items {
		if item := items[line.MenuItemID]; !item.IsAvailable {
			metrics.OrderRejected("unavailable")
			return nil, &domainErrors.AvailabilityError{Name: item.Name}
		}
	}

	lines := make([]model.OrderLine, 0, len(in.Items))
	for _, line := range in.Items {
		lines = append(lines, model.OrderLine{
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
			Price:      items[line.MenuItemID].Price,
		})
	}

	now := u.clock()
	created, err := u.orders.Create(ctx, model.Order{
		ID:           uuid.NewString(),
		Items:        lines,
		TotalAmount:  model.ComputeTotal(lines),
		Status:       model.OrderStatusPending,
		CustomerName: in.CustomerName,
		TableNumber:  in.TableNumber,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}
	metrics.OrderCreated(created.TotalAmount)

	details := model.ExpandOrder(*created, summaries(items))
	return &details, nil
}

// Get returns an order with its lines expanded against the current menu.
func (u *OrderUseCase) Get(ctx context.Context, id string) (*model.OrderDetails, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.expandOne(ctx, *order)
}

// List returns a sorted, filtered page of orders.
func (u *OrderUseCase) List(ctx context.Context, filter model.OrderFilter, page model.Page) ([]model.OrderDetails, model.PageInfo, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, model.PageInfo{}, invalidField("status", fieldMessages["status"][""])
	}
	if filter.SortBy == "" {
		filter.SortBy = model.SortByCreatedAt
	}
	if !filter.SortBy.Valid() {
		return nil, model.PageInfo{}, invalidField("sortBy", "sortBy must be one of: createdAt, totalAmount, customerName, orderNumber")
	}
	switch filter.SortOrder {
	case "":
		filter.SortOrder = model.SortDesc
	case model.SortAsc, model.SortDesc:
	default:
		return nil, model.PageInfo{}, invalidField("sortOrder", "sortOrder must be asc or desc")
	}

	page = u.settings.normalizePage(page)
	orders, total, err := u.orders.List(ctx, filter, page)
	if err != nil {
		return nil, model.PageInfo{}, err
	}
	details, err := u.expand(ctx, orders)
	if err != nil {
		return nil, model.PageInfo{}, err
	}
	return details, model.NewPageInfo(page, total), nil
}

// Search matches the query as a case-insensitive substring of the order number,
// customer name or any ordered item name. Results are newest first.
func (u *OrderUseCase) Search(ctx context.Context, query string, page model.Page) ([]model.OrderDetails, model.PageInfo, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil, model.PageInfo{}, invalidField("q", "Search query is required")
	}
	page = u.settings.normalizePage(page)

	var (
		orders []model.Order
		menu   []model.MenuItem
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = u.orders.All(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		menu, _, err = u.menu.List(gctx, model.MenuFilter{}, model.Page{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, model.PageInfo{}, err
	}

	byID := make(map[string]model.MenuItemSummary, len(menu))
	for _, item := range menu {
		byID[item.ID] = item.Summary()
	}

	matched := make([]model.OrderDetails, 0)
	for _, order := range orders {
		details := model.ExpandOrder(order, byID)
		if orderMatches(details, needle) {
			matched = append(matched, details)
		}
	}
	return paginate(matched, page), model.NewPageInfo(page, len(matched)), nil
}

func orderMatches(order model.OrderDetails, needle string) bool {
	if strings.Contains(strings.ToLower(order.Number), needle) ||
		strings.Contains(strings.ToLower(order.CustomerName), needle) {
		return true
	}
	for _, line := range order.Lines {
		if line.Item != nil && strings.Contains(strings.ToLower(line.Item.Name), needle) {
			return true
		}
	}
	return false
}

// UpdateStatus moves an order along the status table using compare-and-set on
// the current status. A lost race is re-evaluated against the winner's status.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.OrderDetails, error) {
	if err := validateStruct(statusRules{Status: status}); err != nil {
		return nil, err
	}
	if err := checkID(id); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxTransitionAttempts; attempt++ {
		current, err := u.orders.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !current.Status.CanTransitionTo(status) {
			return nil, &domainErrors.InvalidTransitionError{From: string(current.Status), To: string(status)}
		}

		updated, err := u.orders.UpdateStatus(ctx, id, current.Status, status, u.clock())
		if errors.Is(err, domainErrors.ErrStatusConflict) {
			metrics.StatusConflict()
			continue
		}
		if err != nil {
			return nil, err
		}
		metrics.StatusChanged(string(current.Status), string(status))
		return u.expandOne(ctx, *updated)
	}
	return nil, domainErrors.ErrStatusConflict
}

func (u *OrderUseCase) expandOne(ctx context.Context, order model.Order) (*model.OrderDetails, error) {
	details, err := u.expand(ctx, []model.Order{order})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (u *OrderUseCase) expand(ctx context.Context, orders []model.Order) ([]model.OrderDetails, error) {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, order := range orders {
		for _, line := range order.Items {
			if _, ok := seen[line.MenuItemID]; !ok {
				seen[line.MenuItemID] = struct{}{}
				ids = append(ids, line.MenuItemID)
			}
		}
	}

	items := map[string]model.MenuItem{}
	if len(ids) > 0 {
		var err error
		if items, err = u.menu.GetMany(ctx, ids); err != nil {
			return nil, err
		}
	}

	byID := summaries(items)
	out := make([]model.OrderDetails, 0, len(orders))
	for _, order := range orders {
		out = append(out, model.ExpandOrder(order, byID))
	}
	return out, nil
}

func summaries(items map[string]model.MenuItem) map[string]model.MenuItemSummary {
	out := make(map[string]model.MenuItemSummary, len(items))
	for id, item := range items {
		out[id] = item.Summary()
	}
	return out
}
