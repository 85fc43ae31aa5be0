package mongodb

import (
	"context"
	"fmt"
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

type userRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) interfaces.UserRepository {
	return &userRepository{collection: db.Collection(database.CollectionUsers)}
}

// Create derives the numeric role id from the role name before inserting.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.ID = primitive.NewObjectID()
	user.IsDeleted = false
	user.CreatedAt = now
	user.UpdatedAt = now
	user.ApplyRole()

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		return translateError(err, "create user")
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return findOne[models.User](ctx, r.collection, notDeleted(bson.M{"_id": id}), "get user")
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, r.collection, notDeleted(bson.M{"email": email}), "get user by email")
}

// Update keeps roleid in step with role whenever the role changes.
func (r *userRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.User, error) {
	if role, ok := updates["role"]; ok {
		u := models.User{Role: models.UserRole(fmt.Sprint(role))}
		u.ApplyRole()
		updates["role"] = u.Role
		updates["roleid"] = u.RoleID
	}
	return updateOne[models.User](ctx, r.collection, notDeleted(bson.M{"_id": id}), updates, "update user")
}

func (r *userRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return softDelete[models.User](ctx, r.collection, id, "delete user")
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"last_login_at": time.Now()}})
	return translateError(err, "update last login")
}

func (r *userRepository) List(ctx context.Context, filter interfaces.UserFilter, params *utils.PaginationParams) ([]*models.User, int64, error) {
	query := notDeleted(nil)
	if filter.Role != "" {
		query["role"] = models.NormalizeRole(filter.Role)
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	return findPage[models.User](ctx, r.collection, query, params, []string{"f_name", "l_name", "email", "phone"}, "list users")
}

func (r *userRepository) ActiveIDs(ctx context.Context) ([]primitive.ObjectID, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, notDeleted(bson.M{"status": models.UserStatusActive}), opts)
	if err != nil {
		return nil, translateError(err, "list active users")
	}
	defer cursor.Close(ctx)

	var ids []primitive.ObjectID
	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode user id: %w", err)
		}
		ids = append(ids, doc.ID)
	}
	return ids, cursor.Err()
}
