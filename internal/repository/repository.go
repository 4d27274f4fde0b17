// Package repository owns every read and write of the application state.
//
// Each mutation is a single transform applied through storage.Store.Update:
// the latest document is loaded, validated, changed and written back whole.
// A rejected operation never reaches the store.
package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/gatherings/internal/calculator"
	"github.com/mmynk/gatherings/internal/metrics"
	"github.com/mmynk/gatherings/internal/models"
	"github.com/mmynk/gatherings/internal/storage"
)

// ID prefixes of allocated identifiers.
const (
	globalMemberPrefix = "global-"
	expensePrefix      = "exp-"
	paymentPrefix      = "pay-"
	settlementPrefix   = "settle-"
)

// RemovalHook is called after a member with an unsettled balance was removed
// from a gathering. The removed balance is lost from all future totals.
type RemovalHook func(gatheringID string, removed calculator.MemberBalance)

// Repository implements the gathering query and mutation surface.
type Repository struct {
	store     storage.Store
	now       func() time.Time
	newID     func() string
	metrics   *metrics.Metrics
	onRemoval RemovalHook
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock overrides the time source used for createdAt timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithIDGenerator overrides the source of unique ID suffixes.
func WithIDGenerator(newID func() string) Option {
	return func(r *Repository) { r.newID = newID }
}

// WithMetrics records every operation in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Repository) { r.metrics = m }
}

// WithRemovalHook registers a callback for removals that drop an unsettled balance.
func WithRemovalHook(hook RemovalHook) Option {
	return func(r *Repository) { r.onRemoval = hook }
}

// New creates a Repository backed by store.
func New(store storage.Store, opts ...Option) *Repository {
	r := &Repository{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// update applies fn through the store and records the outcome.
func (r *Repository) update(ctx context.Context, operation string, fn func(*models.AppData) error) error {
	err := r.store.Update(ctx, fn)
	r.metrics.ObserveOperation(operation, err)
	if err != nil {
		slog.Debug("Operation rejected", "operation", operation, "error", err)
	}
	return err
}

func (r *Repository) allocateID(prefix string) string {
	return prefix + r.newID()
}
