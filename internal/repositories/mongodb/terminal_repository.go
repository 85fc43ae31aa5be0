package mongodb

import (
	"context"
	"time"

	"fleetadmin/internal/models"
	"fleetadmin/internal/repositories/interfaces"
	"fleetadmin/internal/utils"
	"fleetadmin/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type terminalRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewTerminalRepository(db *mongo.Database, cache CacheService) interfaces.TerminalRepository {
	return &terminalRepository{
		collection: db.Collection(database.CollectionTerminals),
		cache:      cache,
	}
}

func (r *terminalRepository) Create(ctx context.Context, terminal *models.Terminal) error {
	now := time.Now()
	terminal.ID = primitive.NewObjectID()
	terminal.IsDeleted = false
	terminal.CreatedAt = now
	terminal.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, terminal); err != nil {
		return translateError(err, "create terminal")
	}
	return nil
}

func (r *terminalRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Terminal, error) {
	key := cacheKey(utils.CacheTerminalPrefix, id)
	if r.cache != nil {
		var terminal models.Terminal
		if err := r.cache.Get(ctx, key, &terminal); err == nil {
			return &terminal, nil
		}
	}

	terminal, err := findOne[models.Terminal](ctx, r.collection, notDeleted(bson.M{"_id": id}), "get terminal")
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		_ = r.cache.Set(ctx, key, terminal, utils.CacheTTLEntity)
	}
	return terminal, nil
}

func (r *terminalRepository) GetByName(ctx context.Context, name string) (*models.Terminal, error) {
	return findOne[models.Terminal](ctx, r.collection, notDeleted(bson.M{"name": name}), "get terminal by name")
}

func (r *terminalRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Terminal, error) {
	terminal, err := updateOne[models.Terminal](ctx, r.collection, notDeleted(bson.M{"_id": id}), updates, "update terminal")
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, id)
	return terminal, nil
}

func (r *terminalRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) (*models.Terminal, error) {
	terminal, err := softDelete[models.Terminal](ctx, r.collection, id, "delete terminal")
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, id)
	return terminal, nil
}

func (r *terminalRepository) List(ctx context.Context, filter interfaces.TerminalFilter, params *utils.PaginationParams) ([]*models.Terminal, int64, error) {
	query := bson.M{}
	if !filter.IncludeDeleted {
		query = notDeleted(query)
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	return findPage[models.Terminal](ctx, r.collection, query, params, []string{"name", "address"}, "list terminals")
}

func (r *terminalRepository) invalidate(ctx context.Context, id primitive.ObjectID) {
	if r.cache != nil {
		_ = r.cache.Delete(ctx, cacheKey(utils.CacheTerminalPrefix, id))
	}
}

type terminalLogRepository struct {
	collection *mongo.Collection
}

func NewTerminalLogRepository(db *mongo.Database) interfaces.TerminalLogRepository {
	return &terminalLogRepository{collection: db.Collection(database.CollectionTerminalLogs)}
}

func (r *terminalLogRepository) Create(ctx context.Context, log *models.TerminalLog) error {
	log.ID = primitive.NewObjectID()
	log.CreatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, log); err != nil {
		return translateError(err, "create terminal log")
	}
	return nil
}

func (r *terminalLogRepository) List(ctx context.Context, filter interfaces.TerminalLogFilter, params *utils.PaginationParams) ([]*models.TerminalLog, int64, error) {
	query := bson.M{}
	if filter.TerminalID != nil {
		query["terminal_id"] = *filter.TerminalID
	}
	if filter.BusID != nil {
		query["bus_id"] = *filter.BusID
	}
	if filter.EventType != "" {
		query["event_type"] = filter.EventType
	}
	return findPage[models.TerminalLog](ctx, r.collection, query, params, []string{"remarks"}, "list terminal logs")
}
