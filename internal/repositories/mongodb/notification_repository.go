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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type notificationRepository struct {
	collection *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) interfaces.NotificationRepository {
	return &notificationRepository{collection: db.Collection(database.CollectionNotifications)}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	notification.ID = primitive.NewObjectID()
	notification.CreatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, notification); err != nil {
		return translateError(err, "create notification")
	}
	return nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Notification, error) {
	return findOne[models.Notification](ctx, r.collection, bson.M{"_id": id}, "get notification")
}

func (r *notificationRepository) List(ctx context.Context, filter interfaces.NotificationFilter, params *utils.PaginationParams) ([]*models.Notification, int64, error) {
	query := bson.M{}
	if filter.Scope != "" {
		query["scope"] = filter.Scope
	}
	if filter.Priority != "" {
		query["priority"] = filter.Priority
	}
	if filter.Type != "" {
		query["notification_type"] = filter.Type
	}
	return findPage[models.Notification](ctx, r.collection, query, params, []string{"title", "message"}, "list notifications")
}

type userNotificationRepository struct {
	collection *mongo.Collection
}

func NewUserNotificationRepository(db *mongo.Database) interfaces.UserNotificationRepository {
	return &userNotificationRepository{collection: db.Collection(database.CollectionUserNotifications)}
}

func (r *userNotificationRepository) CreateMany(ctx context.Context, entries []*models.UserNotification) error {
	if len(entries) == 0 {
		return nil
	}

	now := time.Now()
	docs := make([]interface{}, len(entries))
	for i, entry := range entries {
		entry.ID = primitive.NewObjectID()
		entry.CreatedAt = now
		docs[i] = entry
	}

	// unordered so one duplicate inbox row does not stop the rest
	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return translateError(err, "create user notifications")
	}
	return nil
}

func (r *userNotificationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.UserNotification, error) {
	return findOne[models.UserNotification](ctx, r.collection, bson.M{"_id": id}, "get user notification")
}

func (r *userNotificationRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, unreadOnly bool, params *utils.PaginationParams) ([]*models.UserNotification, int64, error) {
	match := bson.M{"user_id": userID}
	if unreadOnly {
		match["is_read"] = false
	}

	total, err := r.collection.CountDocuments(ctx, match)
	if err != nil {
		return nil, 0, translateError(err, "count user notifications")
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$skip", Value: int64(params.GetSkip())}},
		{{Key: "$limit", Value: int64(params.GetLimit())}},
		{{Key: "$lookup", Value: bson.M{
			"from":         database.CollectionNotifications,
			"localField":   "notification_id",
			"foreignField": "_id",
			"as":           "notification",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"notification": bson.M{"$arrayElemAt": bson.A{"$notification", 0}},
		}}},
	}

	entries, err := aggregate[models.UserNotification](ctx, r.collection, pipeline, "list user notifications")
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *userNotificationRepository) MarkRead(ctx context.Context, id primitive.ObjectID) (*models.UserNotification, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var entry models.UserNotification
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_read": true, "read_at": time.Now()}},
		opts,
	).Decode(&entry)
	if err != nil {
		return nil, translateError(err, "mark notification read")
	}
	return &entry, nil
}

type subscriptionRepository struct {
	collection *mongo.Collection
}

func NewSubscriptionRepository(db *mongo.Database) interfaces.SubscriptionRepository {
	return &subscriptionRepository{collection: db.Collection(database.CollectionUserSubscriptions)}
}

func (r *subscriptionRepository) Create(ctx context.Context, subscription *models.UserSubscription) error {
	subscription.ID = primitive.NewObjectID()
	subscription.CreatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, subscription); err != nil {
		return translateError(err, "create subscription")
	}
	return nil
}

func (r *subscriptionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.UserSubscription, error) {
	return findOne[models.UserSubscription](ctx, r.collection, bson.M{"_id": id}, "get subscription")
}

func (r *subscriptionRepository) Find(ctx context.Context, userID primitive.ObjectID, routeID, busID *primitive.ObjectID) (*models.UserSubscription, error) {
	return findOne[models.UserSubscription](ctx, r.collection, targetFilter(bson.M{"user_id": userID}, routeID, busID), "find subscription")
}

func (r *subscriptionRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.UserSubscription, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findAll[models.UserSubscription](ctx, r.collection, bson.M{"user_id": userID}, "list subscriptions", opts)
}

func (r *subscriptionRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.UserSubscription, error) {
	var subscription models.UserSubscription
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&subscription); err != nil {
		return nil, translateError(err, "delete subscription")
	}
	return &subscription, nil
}

func (r *subscriptionRepository) SubscriberIDs(ctx context.Context, routeID, busID *primitive.ObjectID) ([]primitive.ObjectID, error) {
	var or []bson.M
	if routeID != nil {
		or = append(or, bson.M{"route_id": *routeID})
	}
	if busID != nil {
		or = append(or, bson.M{"bus_id": *busID})
	}
	if len(or) == 0 {
		return nil, nil
	}

	values, err := r.collection.Distinct(ctx, "user_id", bson.M{"$or": or})
	if err != nil {
		return nil, translateError(err, "list subscribers")
	}

	ids := make([]primitive.ObjectID, 0, len(values))
	for _, v := range values {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// targetFilter matches exactly the given target; the other one must be absent.
func targetFilter(filter bson.M, routeID, busID *primitive.ObjectID) bson.M {
	if routeID != nil {
		filter["route_id"] = *routeID
	} else {
		filter["route_id"] = bson.M{"$exists": false}
	}
	if busID != nil {
		filter["bus_id"] = *busID
	} else {
		filter["bus_id"] = bson.M{"$exists": false}
	}
	return filter
}

type systemLogRepository struct {
	collection *mongo.Collection
}

func NewSystemLogRepository(db *mongo.Database) interfaces.SystemLogRepository {
	return &systemLogRepository{collection: db.Collection(database.CollectionSystemLogs)}
}

func (r *systemLogRepository) Create(ctx context.Context, log *models.SystemLog) error {
	log.ID = primitive.NewObjectID()
	log.CreatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, log); err != nil {
		return translateError(err, "create system log")
	}
	return nil
}

func (r *systemLogRepository) List(ctx context.Context, filter interfaces.SystemLogFilter, params *utils.PaginationParams) ([]*models.SystemLog, int64, error) {
	query := bson.M{}
	if filter.UserID != nil {
		query["user_id"] = *filter.UserID
	}
	if filter.Action != "" {
		query["action"] = filter.Action
	}
	return findPage[models.SystemLog](ctx, r.collection, query, params, []string{"action", "description"}, "list system logs")
}
