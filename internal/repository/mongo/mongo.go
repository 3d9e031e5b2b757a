package mongo

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"github.com/truckershub-backend/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	CollectionRoutes          = "routes"
	CollectionDepartureChecks = "departure_checks"
	CollectionLocations       = "locations"
	CollectionUserStats       = "user_stats"
)

type Client struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

func New(cfg *config.MongoConfig, logger *zap.Logger) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, eris.Wrap(err, "failed to connect to mongo")
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, eris.Wrap(err, "failed to ping mongo")
	}

	logger.Info("MongoDB connected", zap.String("database", cfg.Database))

	return &Client{
		client: client,
		db:     client.Database(cfg.Database),
		logger: logger,
	}, nil
}

// NewClientForTest wraps an already connected client
func NewClientForTest(client *mongo.Client, database string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		client: client,
		db:     client.Database(database),
		logger: logger,
	}
}

// EnsureIndexes creates the indexes the repositories query on
func (c *Client) EnsureIndexes(ctx context.Context) error {
	_, err := c.db.Collection(CollectionRoutes).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "is_saved", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return eris.Wrap(err, "failed to create route indexes")
	}

	_, err = c.db.Collection(CollectionDepartureChecks).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return eris.Wrap(err, "failed to create departure check indexes")
	}

	_, err = c.db.Collection(CollectionLocations).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "name", Value: 1}},
	})
	if err != nil {
		return eris.Wrap(err, "failed to create location indexes")
	}
	return nil
}

func (c *Client) Database() *mongo.Database {
	return c.db
}

func (c *Client) Close() error {
	c.logger.Info("Closing MongoDB connection")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}

func (c *Client) Health(ctx context.Context) error {
	return c.client.Ping(ctx, nil)
}
