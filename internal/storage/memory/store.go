package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	domainErrors "github.com/polkiloo/bistro/internal/domain/errors"
	"github.com/polkiloo/bistro/internal/domain/model"
	"github.com/polkiloo/bistro/internal/domain/repository"
)

// Store keeps menu items and orders in process memory.
type Store struct {
	mu        sync.RWMutex
	menu      map[string]model.MenuItem
	orders    map[string]model.Order
	numbers   map[string]string
	sequences map[string]int
	now       func() time.Time
}

type menuRepository struct {
	store *Store
}

type orderRepository struct {
	store *Store
}

// New creates an empty store.
func New() *Store {
	s := &Store{now: time.Now}
	s.Reset()
	return s
}

// Reset drops every record and day sequence.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menu = make(map[string]model.MenuItem)
	s.orders = make(map[string]model.Order)
	s.numbers = make(map[string]string)
	s.sequences = make(map[string]int)
}

// Close is a no-op kept for parity with database backends.
func (s *Store) Close() {}

// HealthCheck reports the context state.
func (s *Store) HealthCheck(ctx context.Context) error {
	return ctx.Err()
}

// Menu returns the menu repository view of the store.
func (s *Store) Menu() repository.MenuRepository {
	return &menuRepository{store: s}
}

// Orders returns the order repository view of the store.
func (s *Store) Orders() repository.OrderRepository {
	return &orderRepository{store: s}
}

func cloneItem(item model.MenuItem) model.MenuItem {
	item.Ingredients = append([]string(nil), item.Ingredients...)
	if item.PreparationTime != nil {
		v := *item.PreparationTime
		item.PreparationTime = &v
	}
	return item
}

func cloneOrder(order model.Order) model.Order {
	order.Items = append([]model.OrderLine(nil), order.Items...)
	return order
}

func paginate[T any](all []T, page model.Page) []T {
	offset := page.Offset()
	if offset >= len(all) {
		return []T{}
	}
	end := len(all)
	if page.Limit > 0 && offset+page.Limit < end {
		end = offset + page.Limit
	}
	return all[offset:end]
}

// --- MenuRepository implementation ---

func (r *menuRepository) List(ctx context.Context, filter model.MenuFilter, page model.Page) ([]model.MenuItem, int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matched := make([]model.MenuItem, 0, len(r.store.menu))
	for _, item := range r.store.menu {
		if filter.Matches(item) {
			matched = append(matched, cloneItem(item))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Category != matched[j].Category {
			return matched[i].Category < matched[j].Category
		}
		return matched[i].Name < matched[j].Name
	})
	return paginate(matched, page), len(matched), nil
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func (r *menuRepository) Search(ctx context.Context, query string, page model.Page) ([]model.MenuItem, int, error) {
	terms := tokenize(query)

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	type scored struct {
		item  model.MenuItem
		score int
	}
	var hits []scored
	for _, item := range r.store.menu {
		score := 0
		for _, token := range tokenize(item.SearchText()) {
			for _, term := range terms {
				if token == term {
					score++
				}
			}
		}
		if score > 0 {
			hits = append(hits, scored{item: cloneItem(item), score: score})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].item.Name < hits[j].item.Name
	})

	items := make([]model.MenuItem, 0, len(hits))
	for _, h := range hits {
		items = append(items, h.item)
	}
	return paginate(items, page), len(items), nil
}

func (r *menuRepository) GetByID(ctx context.Context, id string) (*model.MenuItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	item, ok := r.store.menu[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	item = cloneItem(item)
	return &item, nil
}

func (r *menuRepository) GetMany(ctx context.Context, ids []string) (map[string]model.MenuItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	result := make(map[string]model.MenuItem, len(ids))
	for _, id := range ids {
		if item, ok := r.store.menu[id]; ok {
			result[id] = cloneItem(item)
		}
	}
	return result, nil
}

func (s *Store) nameTaken(name, exceptID string) bool {
	for id, item := range s.menu {
		if id != exceptID && item.Name == name {
			return true
		}
	}
	return false
}

func (r *menuRepository) Create(ctx context.Context, item model.MenuItem) (*model.MenuItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.menu[item.ID]; exists || r.store.nameTaken(item.Name, "") {
		return nil, domainErrors.ErrAlreadyExists
	}
	r.store.menu[item.ID] = cloneItem(item)
	created := cloneItem(item)
	return &created, nil
}

func (r *menuRepository) Update(ctx context.Context, item model.MenuItem) (*model.MenuItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing, ok := r.store.menu[item.ID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if r.store.nameTaken(item.Name, item.ID) {
		return nil, domainErrors.ErrAlreadyExists
	}
	item.CreatedAt = existing.CreatedAt
	r.store.menu[item.ID] = cloneItem(item)
	updated := cloneItem(item)
	return &updated, nil
}

func (r *menuRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.menu[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(r.store.menu, id)
	return nil
}

func (r *menuRepository) ToggleAvailability(ctx context.Context, id string) (*model.MenuItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	item, ok := r.store.menu[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	item.IsAvailable = !item.IsAvailable
	item.UpdatedAt = r.store.now()
	r.store.menu[id] = item
	toggled := cloneItem(item)
	return &toggled, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.orders[order.ID]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	day := model.OrderDay(order.CreatedAt)
	seq := r.store.sequences[day] + 1
	order.Number = model.FormatOrderNumber(day, seq)
	if _, taken := r.store.numbers[order.Number]; taken {
		return nil, domainErrors.ErrAlreadyExists
	}

	r.store.sequences[day] = seq
	r.store.numbers[order.Number] = order.ID
	r.store.orders[order.ID] = cloneOrder(order)
	created := cloneOrder(order)
	return &created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	order, ok := r.store.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	order = cloneOrder(order)
	return &order, nil
}

func lessOrders(a, b model.Order, field model.OrderSortField) int {
	switch field {
	case model.SortByTotalAmount:
		return a.TotalAmount.Cmp(b.TotalAmount)
	case model.SortByCustomerName:
		return strings.Compare(a.CustomerName, b.CustomerName)
	case model.SortByOrderNumber:
		return strings.Compare(a.Number, b.Number)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter, page model.Page) ([]model.Order, int, error) {
	r.store.mu.RLock()
	matched := make([]model.Order, 0, len(r.store.orders))
	for _, order := range r.store.orders {
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		matched = append(matched, cloneOrder(order))
	}
	r.store.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		c := lessOrders(matched[i], matched[j], filter.SortBy)
		if c == 0 {
			c = strings.Compare(matched[i].ID, matched[j].ID)
		}
		if filter.SortOrder == model.SortAsc {
			return c < 0
		}
		return c > 0
	})
	return paginate(matched, page), len(matched), nil
}

func (r *orderRepository) All(ctx context.Context) ([]model.Order, error) {
	orders, _, err := r.List(ctx, model.OrderFilter{SortBy: model.SortByCreatedAt, SortOrder: model.SortDesc}, model.Page{Number: 1})
	return orders, err
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus, at time.Time) (*model.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	order, ok := r.store.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if order.Status != from {
		return nil, domainErrors.ErrStatusConflict
	}
	order.Status = to
	order.UpdatedAt = at
	r.store.orders[id] = order
	updated := cloneOrder(order)
	return &updated, nil
}
