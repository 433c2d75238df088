package mongo

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/polkiloo/bistro/internal/domain/model"
)

type menuItemDocument struct {
	ID              string               `bson:"_id"`
	Name            string               `bson:"name"`
	Description     string               `bson:"description"`
	Category        string               `bson:"category"`
	Price           primitive.Decimal128 `bson:"price"`
	Ingredients     []string             `bson:"ingredients"`
	IsAvailable     bool                 `bson:"isAvailable"`
	PreparationTime *int                 `bson:"preparationTime"`
	ImageURL        string               `bson:"imageUrl"`
	CreatedAt       time.Time            `bson:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt"`
}

type orderLineDocument struct {
	MenuItemID string               `bson:"menuItem"`
	Quantity   int                  `bson:"quantity"`
	Price      primitive.Decimal128 `bson:"price"`
}

type orderDocument struct {
	ID           string               `bson:"_id"`
	Number       string               `bson:"orderNumber"`
	Items        []orderLineDocument  `bson:"items"`
	TotalAmount  primitive.Decimal128 `bson:"totalAmount"`
	Status       string               `bson:"status"`
	CustomerName string               `bson:"customerName"`
	TableNumber  int                  `bson:"tableNumber"`
	CreatedAt    time.Time            `bson:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt"`
}

type counterDocument struct {
	Day string `bson:"_id"`
	Seq int    `bson:"seq"`
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("encode amount %s: %w", d, err)
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("decode amount %s: %w", v, err)
	}
	return d, nil
}

func newMenuItemDocument(item model.MenuItem) (menuItemDocument, error) {
	price, err := toDecimal128(item.Price)
	if err != nil {
		return menuItemDocument{}, err
	}
	return menuItemDocument{
		ID:              item.ID,
		Name:            item.Name,
		Description:     item.Description,
		Category:        string(item.Category),
		Price:           price,
		Ingredients:     item.Ingredients,
		IsAvailable:     item.IsAvailable,
		PreparationTime: item.PreparationTime,
		ImageURL:        item.ImageURL,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}, nil
}

func (d menuItemDocument) model() (model.MenuItem, error) {
	price, err := fromDecimal128(d.Price)
	if err != nil {
		return model.MenuItem{}, err
	}
	return model.MenuItem{
		ID:              d.ID,
		Name:            d.Name,
		Description:     d.Description,
		Category:        model.Category(d.Category),
		Price:           price,
		Ingredients:     d.Ingredients,
		IsAvailable:     d.IsAvailable,
		PreparationTime: d.PreparationTime,
		ImageURL:        d.ImageURL,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}, nil
}

func newOrderDocument(order model.Order) (orderDocument, error) {
	total, err := toDecimal128(order.TotalAmount)
	if err != nil {
		return orderDocument{}, err
	}
	lines := make([]orderLineDocument, 0, len(order.Items))
	for _, line := range order.Items {
		price, err := toDecimal128(line.Price)
		if err != nil {
			return orderDocument{}, err
		}
		lines = append(lines, orderLineDocument{MenuItemID: line.MenuItemID, Quantity: line.Quantity, Price: price})
	}
	return orderDocument{
		ID:           order.ID,
		Number:       order.Number,
		Items:        lines,
		TotalAmount:  total,
		Status:       string(order.Status),
		CustomerName: order.CustomerName,
		TableNumber:  order.TableNumber,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}, nil
}

func (d orderDocument) model() (model.Order, error) {
	total, err := fromDecimal128(d.TotalAmount)
	if err != nil {
		return model.Order{}, err
	}
	lines := make([]model.OrderLine, 0, len(d.Items))
	for _, line := range d.Items {
		price, err := fromDecimal128(line.Price)
		if err != nil {
			return model.Order{}, err
		}
		lines = append(lines, model.OrderLine{MenuItemID: line.MenuItemID, Quantity: line.Quantity, Price: price})
	}
	return model.Order{
		ID:           d.ID,
		Number:       d.Number,
		Items:        lines,
		TotalAmount:  total,
		Status:       model.OrderStatus(d.Status),
		CustomerName: d.CustomerName,
		TableNumber:  d.TableNumber,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}, nil
}

func menuFilterDocument(filter model.MenuFilter) (bson.M, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = string(filter.Category)
	}
	if filter.Available != nil {
		query["isAvailable"] = *filter.Available
	}
	price := bson.M{}
	if filter.MinPrice != nil {
		v, err := toDecimal128(*filter.MinPrice)
		if err != nil {
			return nil, err
		}
		price["$gte"] = v
	}
	if filter.MaxPrice != nil {
		v, err := toDecimal128(*filter.MaxPrice)
		if err != nil {
			return nil, err
		}
		price["$lte"] = v
	}
	if len(price) > 0 {
		query["price"] = price
	}
	return query, nil
}

var orderSortFields = map[model.OrderSortField]string{
	model.SortByCreatedAt:    "createdAt",
	model.SortByTotalAmount:  "totalAmount",
	model.SortByCustomerName: "customerName",
	model.SortByOrderNumber:  "orderNumber",
}

func orderSortDocument(filter model.OrderFilter) bson.D {
	field, ok := orderSortFields[filter.SortBy]
	if !ok {
		field = orderSortFields[model.SortByCreatedAt]
	}
	direction := -1
	if filter.SortOrder == model.SortAsc {
		direction = 1
	}
	return bson.D{{Key: field, Value: direction}, {Key: "_id", Value: direction}}
}

func pageOptions(page model.Page) *options.FindOptions {
	opts := options.Find()
	if page.Limit > 0 {
		opts.SetLimit(int64(page.Limit))
		opts.SetSkip(int64(page.Offset()))
	}
	return opts
}
