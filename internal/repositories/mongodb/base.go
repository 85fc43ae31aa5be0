package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleetadmin/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// notDeleted merges the soft-delete guard into filter.
func notDeleted(filter bson.M) bson.M {
	if filter == nil {
		filter = bson.M{}
	}
	filter["is_deleted"] = false
	return filter
}

// translateError maps driver errors onto the repository sentinels.
func translateError(err error, action string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return utils.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("failed to %s: %w", action, utils.ErrDuplicateKey)
	default:
		return fmt.Errorf("failed to %s: %w", action, err)
	}
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, action string) (*T, error) {
	var out T
	if err := coll.FindOne(ctx, filter).Decode(&out); err != nil {
		return nil, translateError(err, action)
	}
	return &out, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, action string, opts ...*options.FindOptions) ([]*T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, translateError(err, action)
	}
	defer cursor.Close(ctx)

	results := make([]*T, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", action, err)
	}
	return results, nil
}

// findPage counts the filter and returns one page sorted per params. The
// search term, if any, is matched against searchFields.
func findPage[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, params *utils.PaginationParams, searchFields []string, action string) ([]*T, int64, error) {
	if search := params.GetSearchFilter(searchFields); len(search) > 0 {
		filter = bson.M{"$and": []bson.M{filter, search}}
	}

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, translateError(err, "count "+action)
	}

	results, err := findAll[T](ctx, coll, filter, action, params.GetSortOptions())
	if err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func aggregate[T any](ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline, action string) ([]*T, error) {
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, translateError(err, action)
	}
	defer cursor.Close(ctx)

	results := make([]*T, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", action, err)
	}
	return results, nil
}

// updateOne applies $set to the document matched by filter and returns the
// updated document.
func updateOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, updates map[string]interface{}, action string) (*T, error) {
	set := bson.M{}
	for k, v := range updates {
		set[k] = v
	}
	set["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var out T
	err := coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&out)
	if err != nil {
		return nil, translateError(err, action)
	}
	return &out, nil
}

// softDelete flags a non-deleted document as deleted. A document that is
// already deleted reports ErrNotFound.
func softDelete[T any](ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, action string) (*T, error) {
	now := time.Now()
	return updateOne[T](ctx, coll, notDeleted(bson.M{"_id": id}), map[string]interface{}{
		"is_deleted": true,
		"deleted_at": now,
	}, action)
}

func cacheKey(prefix string, id primitive.ObjectID) string {
	return prefix + id.Hex()
}
