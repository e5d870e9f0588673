package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// document is one stored collection.
type document struct {
	Name      string `gorm:"primaryKey"`
	Body      []byte
	UpdatedAt time.Time
}

func (document) TableName() string {
	return "documents"
}

// SQLiteBackend stores each document as a row in a single SQLite table.
type SQLiteBackend struct {
	db *gorm.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, NewStoreError(path, OpOpen, "failed to open database", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, NewStoreError(path, OpOpen, "failed to access connection pool", err)
	}
	// A single connection keeps in-memory databases shared and writes serialized.
	sqlDB.SetMaxOpenConns(1)

	return NewSQLiteBackend(db)
}

// NewSQLiteBackend wraps an open gorm handle and ensures the documents
// table exists.
func NewSQLiteBackend(db *gorm.DB) (*SQLiteBackend, error) {
	if err := db.AutoMigrate(&document{}); err != nil {
		return nil, NewStoreError("documents", OpOpen, "failed to create table", err)
	}
	return &SQLiteBackend{db: db}, nil
}

// Load returns the stored body of the named document.
func (b *SQLiteBackend) Load(ctx context.Context, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	var doc document
	err := b.db.WithContext(ctx).First(&doc, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, NewStoreError(name, OpLoad, "failed to query document", err)
	}
	return doc.Body, nil
}

// Save upserts the named document.
func (b *SQLiteBackend) Save(ctx context.Context, name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}

	doc := document{Name: name, Body: data, UpdatedAt: time.Now().UTC()}
	err := b.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
		}).
		Create(&doc).Error
	if err != nil {
		return NewStoreError(name, OpSave, "failed to upsert document", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (b *SQLiteBackend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
