package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fleetadmin/pkg/logger"
)

type Migration struct {
	Version     int
	Description string
	Up          func(context.Context, *mongo.Database) error
	Down        func(context.Context, *mongo.Database) error
}

type Migrator struct {
	db         *mongo.Database
	logger     *logger.Logger
	migrations []Migration
}

func NewMigrator(db *mongo.Database, log *logger.Logger) *Migrator {
	return &Migrator{
		db:         db,
		logger:     log,
		migrations: getMigrations(),
	}
}

// Up applies every migration newer than the stored version, in order.
func (m *Migrator) Up(ctx context.Context) error {
	currentVersion, err := m.getCurrentVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range m.migrations {
		if migration.Version <= currentVersion {
			continue
		}
		log := m.logger.WithFields(map[string]interface{}{
			"version":     migration.Version,
			"description": migration.Description,
		})
		log.Info("Running migration")

		if err := migration.Up(ctx, m.db); err != nil {
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}
		if err := m.updateVersion(ctx, migration.Version); err != nil {
			return fmt.Errorf("failed to update migration version: %w", err)
		}

		log.Info("Migration completed")
	}

	return nil
}

func (m *Migrator) Down(ctx context.Context, targetVersion int) error {
	currentVersion, err := m.getCurrentVersion(ctx)
	if err != nil {
		return err
	}

	for i := len(m.migrations) - 1; i >= 0; i-- {
		migration := m.migrations[i]
		if migration.Version > currentVersion || migration.Version <= targetVersion {
			continue
		}
		m.logger.WithField("version", migration.Version).Info("Reverting migration")

		if err := migration.Down(ctx, m.db); err != nil {
			return fmt.Errorf("migration %d rollback failed: %w", migration.Version, err)
		}

		previousVersion := targetVersion
		if i > 0 {
			previousVersion = m.migrations[i-1].Version
		}
		if err := m.updateVersion(ctx, previousVersion); err != nil {
			return fmt.Errorf("failed to update migration version: %w", err)
		}
	}

	return nil
}

func (m *Migrator) getCurrentVersion(ctx context.Context) (int, error) {
	var result struct {
		Version int `bson:"version"`
	}

	err := m.db.Collection(CollectionMigrations).FindOne(ctx, bson.D{}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, err
	}

	return result.Version, nil
}

func (m *Migrator) updateVersion(ctx context.Context, version int) error {
	_, err := m.db.Collection(CollectionMigrations).ReplaceOne(
		ctx,
		bson.D{},
		bson.D{{Key: "version", Value: version}, {Key: "updated_at", Value: time.Now()}},
		options.Replace().SetUpsert(true),
	)
	return err
}

// uniqueActive builds a unique index that only covers documents not soft-deleted,
// so a deleted record never blocks reuse of its number.
func uniqueActive(keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{
		Keys: keys,
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"is_deleted": false}),
	}
}

func index(keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys}
}

func createIndexes(ctx context.Context, db *mongo.Database, collection string, models ...mongo.IndexModel) error {
	_, err := db.Collection(collection).Indexes().CreateMany(ctx, models)
	return err
}

func dropIndexes(collection string) func(context.Context, *mongo.Database) error {
	return func(ctx context.Context, db *mongo.Database) error {
		_, err := db.Collection(collection).Indexes().DropAll(ctx)
		return err
	}
}

func getMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create fleet indexes (buses, drivers, bus_status)",
			Up: func(ctx context.Context, db *mongo.Database) error {
				if err := createIndexes(ctx, db, CollectionBuses,
					uniqueActive(bson.D{{Key: "bus_number", Value: 1}}),
					uniqueActive(bson.D{{Key: "plate_number", Value: 1}}),
					index(bson.D{{Key: "status", Value: 1}, {Key: "is_deleted", Value: 1}}),
				); err != nil {
					return err
				}
				if err := createIndexes(ctx, db, CollectionDrivers,
					uniqueActive(bson.D{{Key: "license_number", Value: 1}}),
					index(bson.D{{Key: "status", Value: 1}}),
				); err != nil {
					return err
				}
				return createIndexes(ctx, db, CollectionBusStatus,
					uniqueActive(bson.D{{Key: "bus_id", Value: 1}}),
				)
			},
			Down: func(ctx context.Context, db *mongo.Database) error {
				for _, c := range []string{CollectionBuses, CollectionDrivers, CollectionBusStatus} {
					if err := dropIndexes(c)(ctx, db); err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			Version:     2,
			Description: "Create route, stop and terminal indexes",
			Up: func(ctx context.Context, db *mongo.Database) error {
				if err := createIndexes(ctx, db, CollectionRoutes,
					uniqueActive(bson.D{{Key: "route_code", Value: 1}}),
				); err != nil {
					return err
				}
				if err := createIndexes(ctx, db, CollectionRouteStops,
					mongo.IndexModel{
						Keys: bson.D{
							{Key: "route_id", Value: 1},
							{Key: "stop_name", Value: 1},
							{Key: "stop_order", Value: 1},
						},
						Options: options.Index().SetUnique(true),
					},
				); err != nil {
					return err
				}
				if err := createIndexes(ctx, db, CollectionTerminals,
					uniqueActive(bson.D{{Key: "name", Value: 1}}),
				); err != nil {
					return err
				}
				return createIndexes(ctx, db, CollectionTerminalLogs,
					index(bson.D{{Key: "terminal_id", Value: 1}, {Key: "created_at", Value: -1}}),
					index(bson.D{{Key: "bus_id", Value: 1}, {Key: "created_at", Value: -1}}),
				)
			},
			Down: func(ctx context.Context, db *mongo.Database) error {
				for _, c := range []string{CollectionRoutes, CollectionRouteStops, CollectionTerminals, CollectionTerminalLogs} {
					if err := dropIndexes(c)(ctx, db); err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			Version:     3,
			Description: "Create user and assignment indexes",
			Up: func(ctx context.Context, db *mongo.Database) error {
				if err := createIndexes(ctx, db, CollectionUsers,
					uniqueActive(bson.D{{Key: "email", Value: 1}}),
					index(bson.D{{Key: "role", Value: 1}}),
					index(bson.D{{Key: "created_at", Value: -1}}),
				); err != nil {
					return err
				}
				return createIndexes(ctx, db, CollectionBusAssignments,
					index(bson.D{{Key: "bus_id", Value: 1}, {Key: "status", Value: 1}}),
					index(bson.D{{Key: "driver_id", Value: 1}, {Key: "status", Value: 1}}),
					index(bson.D{{Key: "route_id", Value: 1}}),
					index(bson.D{{Key: "started_at", Value: -1}}),
				)
			},
			Down: func(ctx context.Context, db *mongo.Database) error {
				if err := dropIndexes(CollectionUsers)(ctx, db); err != nil {
					return err
				}
				return dropIndexes(CollectionBusAssignments)(ctx, db)
			},
		},
		{
			Version:     4,
			Description: "Create notification, subscription and system log indexes",
			Up: func(ctx context.Context, db *mongo.Database) error {
				if err := createIndexes(ctx, db, CollectionNotifications,
					index(bson.D{{Key: "created_at", Value: -1}}),
					index(bson.D{{Key: "priority", Value: 1}, {Key: "created_at", Value: -1}}),
				); err != nil {
					return err
				}
				if err := createIndexes(ctx, db, CollectionUserNotifications,
					mongo.IndexModel{
						Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "notification_id", Value: 1}},
						Options: options.Index().SetUnique(true),
					},
				); err != nil {
					return err
				}
				if err := createIndexes(ctx, db, CollectionUserSubscriptions,
					index(bson.D{{Key: "user_id", Value: 1}}),
					index(bson.D{{Key: "route_id", Value: 1}}),
					index(bson.D{{Key: "bus_id", Value: 1}}),
				); err != nil {
					return err
				}
				return createIndexes(ctx, db, CollectionSystemLogs,
					index(bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}),
				)
			},
			Down: func(ctx context.Context, db *mongo.Database) error {
				for _, c := range []string{CollectionNotifications, CollectionUserNotifications, CollectionUserSubscriptions, CollectionSystemLogs} {
					if err := dropIndexes(c)(ctx, db); err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			Version:     5,
			Description: "Make subscriptions unique per user and target",
			Up: func(ctx context.Context, db *mongo.Database) error {
				return createIndexes(ctx, db, CollectionUserSubscriptions, subscriptionTargetIndex())
			},
			Down: func(ctx context.Context, db *mongo.Database) error {
				_, err := db.Collection(CollectionUserSubscriptions).Indexes().DropOne(ctx, subscriptionTargetIndexName)
				return err
			},
		},
	}
}

const subscriptionTargetIndexName = "user_route_bus_unique"

// subscriptionTargetIndex backs the duplicate check on subscribe. The unset
// target of a subscription is indexed as null.
func subscriptionTargetIndex() mongo.IndexModel {
	return mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "route_id", Value: 1},
			{Key: "bus_id", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName(subscriptionTargetIndexName),
	}
}
