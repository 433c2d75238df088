package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainErrors "github.com/polkiloo/bistro/internal/domain/errors"
	"github.com/polkiloo/bistro/internal/domain/model"
)

type orderRepository struct {
	store *Store
}

func decodeOrders(ctx context.Context, cursor *mongo.Cursor) ([]model.Order, error) {
	var docs []orderDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	orders := make([]model.Order, 0, len(docs))
	for _, doc := range docs {
		order, err := doc.model()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// nextSequence increments the per-day counter and returns the new value.
func (r *orderRepository) nextSequence(ctx context.Context, day string) (int, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var counter counterDocument
	err := r.store.counters.FindOneAndUpdate(ctx, bson.M{"_id": day}, bson.M{"$inc": bson.M{"seq": 1}}, opts).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next order sequence: %w", err)
	}
	return counter.Seq, nil
}

func (r *orderRepository) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	day := model.OrderDay(order.CreatedAt)
	seq, err := r.nextSequence(ctx, day)
	if err != nil {
		return nil, err
	}
	order.Number = model.FormatOrderNumber(day, seq)

	doc, err := newOrderDocument(order)
	if err != nil {
		return nil, err
	}
	if _, err := r.store.orders.InsertOne(ctx, doc); err != nil {
		return nil, translateError(err)
	}
	return &order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var doc orderDocument
	if err := r.store.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, translateError(err)
	}
	order, err := doc.model()
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter, page model.Page) ([]model.Order, int, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}

	total, err := r.store.orders.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	cursor, err := r.store.orders.Find(ctx, query, pageOptions(page).SetSort(orderSortDocument(filter)))
	if err != nil {
		return nil, 0, err
	}
	orders, err := decodeOrders(ctx, cursor)
	if err != nil {
		return nil, 0, err
	}
	return orders, int(total), nil
}

func (r *orderRepository) All(ctx context.Context) ([]model.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.store.orders.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	return decodeOrders(ctx, cursor)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus, at time.Time) (*model.Order, error) {
	filter := bson.M{"_id": id, "status": string(from)}
	update := bson.M{"$set": bson.M{"status": string(to), "updatedAt": at}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc orderDocument
	err := r.store.orders.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		count, err := r.store.orders.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.ErrStatusConflict
	}

	order, err := doc.model()
	if err != nil {
		return nil, err
	}
	return &order, nil
}
