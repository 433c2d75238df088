package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/bistro/internal/domain/errors"
	"github.com/polkiloo/bistro/internal/domain/model"
)

type menuRepository struct {
	storage *Storage
}

const menuColumns = `id, name, description, category, price, ingredients, is_available, preparation_time, image_url, created_at, updated_at`

const searchQuery = `replace(plainto_tsquery('simple', $1)::text, '&', '|')::tsquery`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMenuItem(row rowScanner) (model.MenuItem, error) {
	var item model.MenuItem
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Category,
		&item.Price,
		&item.Ingredients,
		&item.IsAvailable,
		&item.PreparationTime,
		&item.ImageURL,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	return item, err
}

func collectMenuItems(rows pgx.Rows) ([]model.MenuItem, error) {
	defer rows.Close()

	result := make([]model.MenuItem, 0)
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func menuFilterClause(filter model.MenuFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.Category != "" {
		add("category = $%d", string(filter.Category))
	}
	if filter.Available != nil {
		add("is_available = $%d", *filter.Available)
	}
	if filter.MinPrice != nil {
		add("price >= $%d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		add("price <= $%d", *filter.MaxPrice)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *menuRepository) List(ctx context.Context, filter model.MenuFilter, page model.Page) ([]model.MenuItem, int, error) {
	where, args := menuFilterClause(filter)

	var total int
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM menu_items`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM menu_items%s ORDER BY category, name LIMIT $%d OFFSET $%d`,
		menuColumns, where, len(args)+1, len(args)+2)
	rows, err := r.storage.pool.Query(ctx, query, append(args, limitArg(page.Limit), page.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	items, err := collectMenuItems(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *menuRepository) Search(ctx context.Context, query string, page model.Page) ([]model.MenuItem, int, error) {
	countQuery := `SELECT COUNT(*) FROM menu_items WHERE to_tsvector('simple', search_text) @@ ` + searchQuery
	var total int
	if err := r.storage.pool.QueryRow(ctx, countQuery, query).Scan(&total); err != nil {
		return nil, 0, err
	}

	selectQuery := `SELECT ` + menuColumns + ` FROM menu_items
                    WHERE to_tsvector('simple', search_text) @@ ` + searchQuery + `
                    ORDER BY ts_rank(to_tsvector('simple', search_text), ` + searchQuery + `) DESC, name
                    LIMIT $2 OFFSET $3`
	rows, err := r.storage.pool.Query(ctx, selectQuery, query, limitArg(page.Limit), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	items, err := collectMenuItems(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *menuRepository) GetByID(ctx context.Context, id string) (*model.MenuItem, error) {
	row := r.storage.pool.QueryRow(ctx, `SELECT `+menuColumns+` FROM menu_items WHERE id=$1`, id)
	item, err := scanMenuItem(row)
	if err != nil {
		return nil, translateError(err)
	}
	return &item, nil
}

func (r *menuRepository) GetMany(ctx context.Context, ids []string) (map[string]model.MenuItem, error) {
	result := make(map[string]model.MenuItem, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	rows, err := r.storage.pool.Query(ctx, `SELECT `+menuColumns+` FROM menu_items WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	items, err := collectMenuItems(rows)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		result[item.ID] = item
	}
	return result, nil
}

func (r *menuRepository) Create(ctx context.Context, item model.MenuItem) (*model.MenuItem, error) {
	const query = `INSERT INTO menu_items (id, name, description, category, price, ingredients, is_available,
                       preparation_time, image_url, search_text, created_at, updated_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
                   RETURNING ` + menuColumns
	row := r.storage.pool.QueryRow(ctx, query,
		item.ID, item.Name, item.Description, string(item.Category), item.Price, item.Ingredients,
		item.IsAvailable, item.PreparationTime, item.ImageURL, item.SearchText(), item.CreatedAt, item.UpdatedAt,
	)
	created, err := scanMenuItem(row)
	if err != nil {
		return nil, translateError(err)
	}
	return &created, nil
}

func (r *menuRepository) Update(ctx context.Context, item model.MenuItem) (*model.MenuItem, error) {
	const query = `UPDATE menu_items SET name=$2, description=$3, category=$4, price=$5, ingredients=$6,
                       is_available=$7, preparation_time=$8, image_url=$9, search_text=$10, updated_at=$11
                   WHERE id=$1
                   RETURNING ` + menuColumns
	row := r.storage.pool.QueryRow(ctx, query,
		item.ID, item.Name, item.Description, string(item.Category), item.Price, item.Ingredients,
		item.IsAvailable, item.PreparationTime, item.ImageURL, item.SearchText(), item.UpdatedAt,
	)
	updated, err := scanMenuItem(row)
	if err != nil {
		return nil, translateError(err)
	}
	return &updated, nil
}

func (r *menuRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM menu_items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *menuRepository) ToggleAvailability(ctx context.Context, id string) (*model.MenuItem, error) {
	const query = `UPDATE menu_items SET is_available = NOT is_available, updated_at = NOW()
                   WHERE id=$1
                   RETURNING ` + menuColumns
	item, err := scanMenuItem(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateError(err)
	}
	return &item, nil
}
