package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/polkiloo/bistro/internal/domain/model"
	"github.com/polkiloo/bistro/internal/domain/repository"
)

// StatsUseCase computes order statistics on demand from the full order set.
type StatsUseCase struct {
	orders   repository.OrderRepository
	menu     repository.MenuRepository
	settings Settings
	now      func() time.Time
}

// NewStatsUseCase constructs StatsUseCase.
func NewStatsUseCase(orders repository.OrderRepository, menu repository.MenuRepository, settings Settings) *StatsUseCase {
	return &StatsUseCase{orders: orders, menu: menu, settings: settings, now: time.Now}
}

// Summary returns per status totals, overall totals and totals for the current day.
func (u *StatsUseCase) Summary(ctx context.Context) (*model.OrderStats, error) {
	orders, err := u.orders.All(ctx)
	if err != nil {
		return nil, err
	}

	start, end := dayBounds(u.now(), u.settings.location())
	stats := &model.OrderStats{
		ByStatus:     make(map[model.OrderStatus]model.StatusTotals, len(model.OrderStatuses)),
		TotalRevenue: decimal.Zero,
		TodayRevenue: decimal.Zero,
	}
	for _, status := range model.OrderStatuses {
		stats.ByStatus[status] = model.StatusTotals{Revenue: decimal.Zero}
	}

	for _, order := range orders {
		totals := stats.ByStatus[order.Status]
		totals.Count++
		totals.Revenue = totals.Revenue.Add(order.TotalAmount)
		stats.ByStatus[order.Status] = totals

		stats.TotalOrders++
		stats.TotalRevenue = stats.TotalRevenue.Add(order.TotalAmount)

		if !order.CreatedAt.Before(start) && order.CreatedAt.Before(end) {
			stats.TodayOrders++
			stats.TodayRevenue = stats.TodayRevenue.Add(order.TotalAmount)
		}
	}
	return stats, nil
}

// dayBounds returns the start of the calendar day containing now and the start of the next one.
func dayBounds(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

type sellerTally struct {
	quantity int
	revenue  decimal.Decimal
	orders   int
}

// TopSellers ranks menu items by quantity sold across non-cancelled orders.
// Rankings show current menu data; items deleted since are left out.
func (u *StatsUseCase) TopSellers(ctx context.Context, limit int) ([]model.TopSeller, error) {
	if limit <= 0 {
		limit = defaultTopSellers
	}
	limit = u.settings.normalizePage(model.Page{Limit: limit}).Limit

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
		return nil, err
	}

	tallies := make(map[string]*sellerTally)
	for _, order := range orders {
		if order.Status == model.OrderStatusCancelled {
			continue
		}
		counted := make(map[string]struct{}, len(order.Items))
		for _, line := range order.Items {
			tally, ok := tallies[line.MenuItemID]
			if !ok {
				tally = &sellerTally{revenue: decimal.Zero}
				tallies[line.MenuItemID] = tally
			}
			tally.quantity += line.Quantity
			tally.revenue = tally.revenue.Add(line.Subtotal())
			if _, ok := counted[line.MenuItemID]; !ok {
				counted[line.MenuItemID] = struct{}{}
				tally.orders++
			}
		}
	}

	sellers := make([]model.TopSeller, 0, len(tallies))
	for _, item := range menu {
		tally, ok := tallies[item.ID]
		if !ok {
			continue
		}
		sellers = append(sellers, model.TopSeller{
			Item:          item.Summary(),
			TotalQuantity: tally.quantity,
			TotalRevenue:  tally.revenue,
			OrderCount:    tally.orders,
		})
	}

	sort.SliceStable(sellers, func(i, j int) bool {
		a, b := sellers[i], sellers[j]
		if a.TotalQuantity != b.TotalQuantity {
			return a.TotalQuantity > b.TotalQuantity
		}
		if c := a.TotalRevenue.Cmp(b.TotalRevenue); c != 0 {
			return c > 0
		}
		return strings.Compare(a.Item.Name, b.Item.Name) < 0
	})
	if len(sellers) > limit {
		sellers = sellers[:limit]
	}
	return sellers, nil
}
