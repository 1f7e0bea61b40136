package db

import (
	"context"
	"fmt"

	"design-studio/backend/internal/config"
	"design-studio/backend/internal/constants"
	"design-studio/backend/internal/db/repositories"
)

// OpenStatusCheckRepository connects the configured store and returns a
// repository over it. The caller owns the connection and must Close it.
func OpenStatusCheckRepository(ctx context.Context, cfg config.StoreConfig) (repositories.StatusCheckRepository, error) {
	switch cfg.Driver {
	case config.StoreDriverMongo:
		client, err := InitMongo(ctx, cfg.MongoURL)
		if err != nil {
			return nil, err
		}
		coll := client.Database(cfg.DBName).Collection(constants.StatusCollection)
		return repositories.NewStatusCheckMongoRepository(coll), nil

	case config.StoreDriverPostgres, config.StoreDriverSQLite:
		var repo *repositories.StatusCheckGORMRepository
		if cfg.Driver == config.StoreDriverPostgres {
			gdb, err := InitPostgresORM(cfg.PostgresDSN)
			if err != nil {
				return nil, err
			}
			repo = repositories.NewStatusCheckGORMRepository(gdb, cfg.Driver)
		} else {
			gdb, err := InitSQLiteORM(cfg.SQLitePath)
			if err != nil {
				return nil, err
			}
			repo = repositories.NewStatusCheckGORMRepository(gdb, cfg.Driver)
		}
		if err := repo.Migrate(ctx); err != nil {
			repo.Close(ctx)
			return nil, err
		}
		return repo, nil

	case config.StoreDriverRedis:
		client := NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		return repositories.NewStatusCheckRedisRepository(client), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
