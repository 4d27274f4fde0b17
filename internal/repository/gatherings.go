package repository

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/mmynk/gatherings/internal/calculator"
	"github.com/mmynk/gatherings/internal/models"
)

// ListGatherings returns every gathering, newest first.
func (r *Repository) ListGatherings(ctx context.Context) []models.Gathering {
	data := r.store.Load(ctx)
	gatherings := slices.Clone(data.Gatherings)
	slices.SortStableFunc(gatherings, func(a, b models.Gathering) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return gatherings
}

// GetGathering returns the gathering with the given ID.
func (r *Repository) GetGathering(ctx context.Context, id string) (models.Gathering, error) {
	data := r.store.Load(ctx)
	g := data.Gathering(id)
	if g == nil {
		return models.Gathering{}, fmt.Errorf("gathering %q: %w", id, ErrNotFound)
	}
	return *g, nil
}

// GatheringBalances returns the member balances of a gathering with names
// resolved from the store.
func (r *Repository) GatheringBalances(ctx context.Context, id string) ([]calculator.MemberBalance, error) {
	data := r.store.Load(ctx)
	g := data.Gathering(id)
	if g == nil {
		return nil, fmt.Errorf("gathering %q: %w", id, ErrNotFound)
	}
	return calculator.MemberBalances(*g, data.GlobalMembers), nil
}

// GatheringWithBalances returns a gathering and its member balances computed
// from a single load, so both always describe the same state.
func (r *Repository) GatheringWithBalances(ctx context.Context, id string) (models.Gathering, []calculator.MemberBalance, error) {
	data := r.store.Load(ctx)
	g := data.Gathering(id)
	if g == nil {
		return models.Gathering{}, nil, fmt.Errorf("gathering %q: %w", id, ErrNotFound)
	}
	return *g, calculator.MemberBalances(*g, data.GlobalMembers), nil
}

// CreateGathering creates an open gathering with no members. The ID is chosen
// by the caller, trimmed, and must be unused.
func (r *Repository) CreateGathering(ctx context.Context, id, description string) (models.Gathering, error) {
	id = strings.TrimSpace(id)
	description = strings.TrimSpace(description)
	var created models.Gathering

	err := r.update(ctx, "create_gathering", func(data *models.AppData) error {
		if id == "" {
			return fmt.Errorf("gathering id is required: %w", ErrInvalidInput)
		}
		if data.Gathering(id) != nil {
			return fmt.Errorf("gathering %q: %w", id, ErrDuplicateID)
		}
		created = models.Gathering{
			ID:          id,
			Description: description,
			Status:      models.StatusOpen,
			CreatedAt:   r.now(),
			Members:     []models.GatheringMember{},
		}
		data.Gatherings = append(data.Gatherings, created)
		return nil
	})
	if err != nil {
		return models.Gathering{}, err
	}

	slog.Info("Gathering created", "gathering_id", created.ID)
	return created, nil
}

// DeleteGathering removes the gathering and everything recorded in it.
// Deleting an unknown gathering is a no-op.
func (r *Repository) DeleteGathering(ctx context.Context, id string) error {
	var deleted bool
	err := r.update(ctx, "delete_gathering", func(data *models.AppData) error {
		before := len(data.Gatherings)
		data.Gatherings = slices.DeleteFunc(data.Gatherings, func(g models.Gathering) bool {
			return g.ID == id
		})
		deleted = len(data.Gatherings) != before
		return nil
	})
	if err != nil {
		return err
	}

	if deleted {
		slog.Info("Gathering deleted", "gathering_id", id)
	}
	return nil
}

// AddMemberToGathering adds a global member to an open gathering.
func (r *Repository) AddMemberToGathering(ctx context.Context, gatheringID, memberID string) error {
	err := r.update(ctx, "add_member", func(data *models.AppData) error {
		g := data.Gathering(gatheringID)
		if g == nil {
			return fmt.Errorf("gathering %q: %w", gatheringID, ErrNotFound)
		}
		if g.IsClosed() {
			return fmt.Errorf("cannot add member to %q: %w", gatheringID, ErrClosed)
		}
		if _, ok := data.GlobalMember(memberID); !ok {
			return fmt.Errorf("member %q: %w", memberID, ErrNotFound)
		}
		if g.HasMember(memberID) {
			return fmt.Errorf("member %q in %q: %w", memberID, gatheringID, ErrAlreadyMember)
		}
		g.Members = append(g.Members, models.GatheringMember{
			MemberID: memberID,
			Expenses: []models.Expense{},
			Payments: []models.Payment{},
		})
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Member added to gathering", "gathering_id", gatheringID, "member_id", memberID)
	return nil
}

// RemoveMemberFromGathering drops a member and everything they recorded in the
// gathering. Removal is unconditional: an unsettled balance is logged and
// reported to the removal hook, not refused. Removing a non-member is a no-op.
func (r *Repository) RemoveMemberFromGathering(ctx context.Context, gatheringID, memberID string) error {
	var removed *calculator.MemberBalance

	err := r.update(ctx, "remove_member", func(data *models.AppData) error {
		removed = nil
		g := data.Gathering(gatheringID)
		if g == nil {
			return fmt.Errorf("gathering %q: %w", gatheringID, ErrNotFound)
		}
		if !g.HasMember(memberID) {
			return nil
		}
		for _, b := range calculator.MemberBalances(*g, data.GlobalMembers) {
			if b.MemberID == memberID {
				removed = &b
				break
			}
		}
		g.Members = slices.DeleteFunc(g.Members, func(m models.GatheringMember) bool {
			return m.MemberID == memberID
		})
		return nil
	})
	if err != nil {
		return err
	}
	if removed == nil {
		return nil
	}

	if removed.Status != calculator.StatusSettled {
		slog.Warn("Removed member with unsettled balance",
			"gathering_id", gatheringID,
			"member_id", memberID,
			"balance", removed.Balance.String(),
		)
		if r.onRemoval != nil {
			r.onRemoval(gatheringID, *removed)
		}
	} else {
		slog.Info("Member removed from gathering", "gathering_id", gatheringID, "member_id", memberID)
	}
	return nil
}
