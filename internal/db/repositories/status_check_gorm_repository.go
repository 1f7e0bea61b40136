package repositories

import (
	"context"

	"design-studio/backend/internal/models/entities"
	"design-studio/backend/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// StatusCheckGORMRepository stores status checks in a SQL table through GORM.
// Postgres in production, sqlite for local runs and tests.
type StatusCheckGORMRepository struct {
	db     *gormlib.DB
	driver string
}

// NewStatusCheckGORMRepository creates a repository; driver is used for
// error reporting and metrics labels only.
func NewStatusCheckGORMRepository(db *gormlib.DB, driver string) *StatusCheckGORMRepository {
	return &StatusCheckGORMRepository{db: db, driver: driver}
}

// Migrate creates or updates the status_checks table
func (r *StatusCheckGORMRepository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&gorm.StatusCheckDocument{}); err != nil {
		return &StorageError{Driver: r.driver, Op: "migrate", Err: err}
	}
	return nil
}

func (r *StatusCheckGORMRepository) Driver() string {
	return r.driver
}

func (r *StatusCheckGORMRepository) Save(ctx context.Context, check entities.StatusCheck) error {
	doc := check.Document()
	row := gorm.StatusCheckDocument{
		DocID:      doc["id"].(string),
		ClientName: doc["client_name"].(string),
		Timestamp:  doc["timestamp"].(string),
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return &StorageError{Driver: r.driver, Op: "save", Err: err}
	}
	return nil
}

func (r *StatusCheckGORMRepository) ListRecent(ctx context.Context, limit int) ([]entities.StatusCheck, error) {
	var rows []gorm.StatusCheckDocument

	err := r.db.WithContext(ctx).
		Order("pk DESC").
		Limit(normalizeLimit(limit)).
		Find(&rows).Error
	if err != nil {
		return nil, &StorageError{Driver: r.driver, Op: "list_recent", Err: err}
	}

	docs := make([]entities.Document, len(rows))
	for i, row := range rows {
		docs[i] = entities.Document{
			"id":          row.DocID,
			"client_name": row.ClientName,
			"timestamp":   row.Timestamp,
		}
	}
	return decodeDocuments(r.driver, docs)
}

func (r *StatusCheckGORMRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return &StorageError{Driver: r.driver, Op: "ping", Err: err}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return &StorageError{Driver: r.driver, Op: "ping", Err: err}
	}
	return nil
}

func (r *StatusCheckGORMRepository) Close(_ context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
