package repository

import (
	"context"
	"log/slog"

	"github.com/mmynk/gatherings/internal/codec"
	"github.com/mmynk/gatherings/internal/models"
)

// ExportData encodes the whole store as a portable token.
func (r *Repository) ExportData(ctx context.Context) (string, error) {
	token, err := codec.Export(r.store.Load(ctx))
	r.metrics.ObserveOperation("export", err)
	return token, err
}

// ImportData decodes token and replaces the whole store with it. Nothing is
// merged; an invalid token leaves the store untouched.
func (r *Repository) ImportData(ctx context.Context, token string) (models.AppData, error) {
	var imported models.AppData
	err := r.update(ctx, "import", func(data *models.AppData) error {
		decoded, err := codec.Import(token)
		if err != nil {
			return err
		}
		*data = decoded
		imported = decoded
		return nil
	})
	if err != nil {
		return models.AppData{}, err
	}

	slog.Info("Data imported",
		"gatherings", len(imported.Gatherings),
		"members", len(imported.GlobalMembers),
	)
	return imported, nil
}

// Snapshot returns a copy of the whole store for read-only views such as reports.
func (r *Repository) Snapshot(ctx context.Context) models.AppData {
	return r.store.Load(ctx)
}
