package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainErrors "github.com/polkiloo/bistro/internal/domain/errors"
	"github.com/polkiloo/bistro/internal/domain/model"
)

type menuRepository struct {
	store *Store
}

func decodeMenuItems(ctx context.Context, cursor *mongo.Cursor) ([]model.MenuItem, error) {
	var docs []menuItemDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	items := make([]model.MenuItem, 0, len(docs))
	for _, doc := range docs {
		item, err := doc.model()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *menuRepository) find(ctx context.Context, filter any, opts *options.FindOptions) ([]model.MenuItem, int, error) {
	total, err := r.store.menu.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	cursor, err := r.store.menu.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	items, err := decodeMenuItems(ctx, cursor)
	if err != nil {
		return nil, 0, err
	}
	return items, int(total), nil
}

func (r *menuRepository) List(ctx context.Context, filter model.MenuFilter, page model.Page) ([]model.MenuItem, int, error) {
	query, err := menuFilterDocument(filter)
	if err != nil {
		return nil, 0, err
	}
	opts := pageOptions(page).SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}})
	return r.find(ctx, query, opts)
}

func (r *menuRepository) Search(ctx context.Context, query string, page model.Page) ([]model.MenuItem, int, error) {
	filter := bson.M{"$text": bson.M{"$search": query}}
	score := bson.M{"$meta": "textScore"}
	opts := pageOptions(page).
		SetProjection(bson.M{"score": score}).
		SetSort(bson.D{{Key: "score", Value: score}, {Key: "name", Value: 1}})
	return r.find(ctx, filter, opts)
}

func (r *menuRepository) GetByID(ctx context.Context, id string) (*model.MenuItem, error) {
	var doc menuItemDocument
	if err := r.store.menu.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, translateError(err)
	}
	item, err := doc.model()
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) GetMany(ctx context.Context, ids []string) (map[string]model.MenuItem, error) {
	result := make(map[string]model.MenuItem, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	cursor, err := r.store.menu.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	items, err := decodeMenuItems(ctx, cursor)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		result[item.ID] = item
	}
	return result, nil
}

func (r *menuRepository) Create(ctx context.Context, item model.MenuItem) (*model.MenuItem, error) {
	doc, err := newMenuItemDocument(item)
	if err != nil {
		return nil, err
	}
	if _, err := r.store.menu.InsertOne(ctx, doc); err != nil {
		return nil, translateError(err)
	}
	return &item, nil
}

func (r *menuRepository) Update(ctx context.Context, item model.MenuItem) (*model.MenuItem, error) {
	doc, err := newMenuItemDocument(item)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{
		"name":            doc.Name,
		"description":     doc.Description,
		"category":        doc.Category,
		"price":           doc.Price,
		"ingredients":     doc.Ingredients,
		"isAvailable":     doc.IsAvailable,
		"preparationTime": doc.PreparationTime,
		"imageUrl":        doc.ImageURL,
		"updatedAt":       doc.UpdatedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated menuItemDocument
	if err := r.store.menu.FindOneAndUpdate(ctx, bson.M{"_id": item.ID}, update, opts).Decode(&updated); err != nil {
		return nil, translateError(err)
	}
	result, err := updated.model()
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *menuRepository) Delete(ctx context.Context, id string) error {
	res, err := r.store.menu.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *menuRepository) ToggleAvailability(ctx context.Context, id string) (*model.MenuItem, error) {
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "isAvailable", Value: bson.D{{Key: "$not", Value: bson.A{"$isAvailable"}}}},
			{Key: "updatedAt", Value: time.Now()},
		}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc menuItemDocument
	if err := r.store.menu.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&doc); err != nil {
		return nil, translateError(err)
	}
	item, err := doc.model()
	if err != nil {
		return nil, err
	}
	return &item, nil
}
