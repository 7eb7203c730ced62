package session

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// record mirrors what the browser build kept in local storage: the raw
// token and the serialized user, nothing else. A single row holds the
// whole session.
type record struct {
	ID        uint   `gorm:"primaryKey"`
	Token     string `gorm:"not null"`
	UserJSON  string `gorm:"not null"`
	UpdatedAt time.Time
}

func (record) TableName() string { return "sessions" }

const recordID = 1

type Store struct {
	db *gorm.DB
}

func OpenStore(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}

	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, fmt.Errorf("migrate session db: %w", err)
	}

	return &Store{db: db}, nil
}

// Save upserts the single session row.
func (s *Store) Save(token, userJSON string) error {
	rec := record{ID: recordID, Token: token, UserJSON: userJSON, UpdatedAt: time.Now()}
	return s.db.Save(&rec).Error
}

// Load returns the persisted token and user, or empty strings when no
// session has been saved.
func (s *Store) Load() (token, userJSON string, err error) {
	var rec record
	err = s.db.First(&rec, recordID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", "", nil
	}
	if err != nil {
		return "", "", fmt.Errorf("load session: %w", err)
	}
	return rec.Token, rec.UserJSON, nil
}

func (s *Store) Delete() error {
	return s.db.Delete(&record{}, recordID).Error
}
