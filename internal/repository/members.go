package repository

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mmynk/gatherings/internal/calculator"
	"github.com/mmynk/gatherings/internal/models"
)

// CreateGlobalMember registers a new person. Names are trimmed and must be
// unique ignoring case.
func (r *Repository) CreateGlobalMember(ctx context.Context, name string) (models.GlobalMember, error) {
	name = strings.TrimSpace(name)
	var created models.GlobalMember

	err := r.update(ctx, "create_member", func(data *models.AppData) error {
		if name == "" {
			return fmt.Errorf("member name is required: %w", ErrInvalidInput)
		}
		if existing, ok := data.GlobalMemberByName(name); ok {
			return fmt.Errorf("member %q conflicts with %q: %w", name, existing.Name, ErrDuplicateName)
		}
		created = models.GlobalMember{ID: r.allocateID(globalMemberPrefix), Name: name}
		data.GlobalMembers = append(data.GlobalMembers, created)
		return nil
	})
	if err != nil {
		return models.GlobalMember{}, err
	}

	slog.Info("Member created", "member_id", created.ID, "name", created.Name)
	return created, nil
}

// ListGlobalMembers returns every global member ordered by name.
func (r *Repository) ListGlobalMembers(ctx context.Context) []models.GlobalMember {
	data := r.store.Load(ctx)
	return sortByName(data.GlobalMembers)
}

// AvailableMembers returns the global members not yet part of the gathering,
// ordered by name.
func (r *Repository) AvailableMembers(ctx context.Context, gatheringID string) ([]models.GlobalMember, error) {
	data := r.store.Load(ctx)
	g := data.Gathering(gatheringID)
	if g == nil {
		return nil, fmt.Errorf("gathering %q: %w", gatheringID, ErrNotFound)
	}

	available := make([]models.GlobalMember, 0, len(data.GlobalMembers))
	for _, m := range data.GlobalMembers {
		if !g.HasMember(m.ID) {
			available = append(available, m)
		}
	}
	return sortByName(available), nil
}

// ResolveMember finds a global member by ID, falling back to a
// case-insensitive name match.
func (r *Repository) ResolveMember(ctx context.Context, ref string) (models.GlobalMember, error) {
	data := r.store.Load(ctx)
	ref = strings.TrimSpace(ref)
	if m, ok := data.GlobalMember(ref); ok {
		return m, nil
	}
	if m, ok := data.GlobalMemberByName(ref); ok {
		return m, nil
	}
	return models.GlobalMember{}, fmt.Errorf("member %q: %w", ref, ErrNotFound)
}

// GlobalMemberBalances aggregates every member across all gatherings.
func (r *Repository) GlobalMemberBalances(ctx context.Context) []calculator.GlobalMemberBalance {
	return calculator.GlobalMemberBalances(r.store.Load(ctx))
}

func sortByName(members []models.GlobalMember) []models.GlobalMember {
	sorted := slices.Clone(members)
	c := collate.New(language.Und)
	slices.SortStableFunc(sorted, func(a, b models.GlobalMember) int {
		return c.CompareString(a.Name, b.Name)
	})
	return sorted
}
