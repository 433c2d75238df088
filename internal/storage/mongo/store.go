package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainErrors "github.com/polkiloo/bistro/internal/domain/errors"
	"github.com/polkiloo/bistro/internal/domain/repository"
)

const (
	menuCollection    = "menu_items"
	orderCollection   = "orders"
	counterCollection = "counters"
)

// Store keeps menu items and orders in MongoDB collections.
type Store struct {
	client   *mongo.Client
	menu     *mongo.Collection
	orders   *mongo.Collection
	counters *mongo.Collection
	logger   *slog.Logger
}

var _ repository.Factory = (*Store)(nil)

// New connects to the deployment at uri and prepares indexes in database.
func New(ctx context.Context, uri, database string, logger *slog.Logger) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	db := client.Database(database)
	store := &Store{
		client:   client,
		menu:     db.Collection(menuCollection),
		orders:   db.Collection(orderCollection),
		counters: db.Collection(counterCollection),
		logger:   logger,
	}
	if err := store.ensureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("mongo storage ready", slog.String("database", database))
	return store, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	menuIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "name", Value: "text"}, {Key: "ingredients", Value: "text"}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "isAvailable", Value: 1}}},
	}
	if _, err := s.menu.Indexes().CreateMany(ctx, menuIndexes); err != nil {
		return fmt.Errorf("create menu indexes: %w", err)
	}

	orderIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "orderNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "customerName", Value: 1}}},
	}
	if _, err := s.orders.Indexes().CreateMany(ctx, orderIndexes); err != nil {
		return fmt.Errorf("create order indexes: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close() {
	if s.client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(ctx); err != nil {
		s.logger.Warn("mongo disconnect failed", slog.Any("error", err))
	}
}

// HealthCheck pings the primary.
func (s *Store) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.client.Ping(ctx, nil)
}

// Menu returns the menu item repository.
func (s *Store) Menu() repository.MenuRepository {
	return &menuRepository{store: s}
}

// Orders returns the order repository.
func (s *Store) Orders() repository.OrderRepository {
	return &orderRepository{store: s}
}

func translateError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domainErrors.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return domainErrors.ErrAlreadyExists
	}
	return err
}
