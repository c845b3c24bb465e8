// Package market enforces the lifecycle rules of users, jobs, quotes and
// reviews. Every mutation validates its input, runs its existence, role and
// state checks in a fixed order and writes inside a single transaction.
package market

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Event names delivered through the Notifier.
const (
	EventQuoteSubmitted = "quote_submitted"
	EventReviewReceived = "review_received"
	EventJobClosed      = "job_closed"
)

// Notifier receives events after the transaction that caused them commits.
type Notifier interface {
	Notify(ctx context.Context, userID uint, event string, data map[string]interface{})
}

type Service struct {
	DB       *gorm.DB
	Notifier Notifier
}

func NewService(db *gorm.DB, notifier Notifier) *Service {
	return &Service{DB: db, Notifier: notifier}
}

func (s *Service) notify(ctx context.Context, userID uint, event string, data map[string]interface{}) {
	if s.Notifier == nil {
		return
	}
	s.Notifier.Notify(ctx, userID, event, data)
}

func (s *Service) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.DB.WithContext(ctx).Transaction(fn)
}

// load fetches the row with the given id into dst. what names the entity in
// the not-found message ("User", "Job", ...).
func load(db *gorm.DB, dst interface{}, id uint, what string, lock bool) error {
	q := db
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.First(dst, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(what + " not found")
		}
		slog.Error("load failed", "entity", what, "id", id, "err", err)
		return internal("Error retrieving "+strings.ToLower(what), err)
	}
	return nil
}

func exists(db *gorm.DB, model interface{}, query string, args ...interface{}) (bool, error) {
	var n int64
	if err := db.Model(model).Where(query, args...).Limit(1).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
