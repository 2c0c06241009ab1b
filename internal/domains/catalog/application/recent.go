package application

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/Apurer/game-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/game-storefront/internal/platform/localstorage"
	"github.com/Apurer/game-storefront/internal/platform/observability"
)

// RecentSearches remembers a visitor's last search terms under
// localstorage.KeyRecentSearches. Storage failures are logged and ignored.
type RecentSearches struct {
	storage localstorage.Storage
	logger  *slog.Logger
}

func NewRecentSearches(storage localstorage.Storage, logger *slog.Logger) *RecentSearches {
	if logger == nil {
		logger = observability.DiscardLogger()
	}
	return &RecentSearches{storage: storage, logger: logger}
}

func (r *RecentSearches) List(ctx context.Context) []string {
	raw, found, err := r.storage.GetItem(ctx, localstorage.KeyRecentSearches)
	if err != nil {
		r.logger.LogAttrs(ctx, slog.LevelWarn, "failed to read recent searches", slog.String("error", err.Error()))
		return []string{}
	}
	if !found {
		return []string{}
	}
	var terms []string
	if err := json.Unmarshal([]byte(raw), &terms); err != nil {
		r.logger.LogAttrs(ctx, slog.LevelWarn, "recent searches unreadable, resetting", slog.String("error", err.Error()))
		return []string{}
	}
	return terms
}

// Record stores term as the most recent search and returns the new list.
func (r *RecentSearches) Record(ctx context.Context, term string) []string {
	terms := domain.RecordRecent(r.List(ctx), term)
	payload, err := json.Marshal(terms)
	if err == nil {
		err = r.storage.SetItem(ctx, localstorage.KeyRecentSearches, string(payload))
	}
	if err != nil {
		r.logger.LogAttrs(ctx, slog.LevelWarn, "failed to persist recent searches", slog.String("error", err.Error()))
	}
	return terms
}

func (r *RecentSearches) Clear(ctx context.Context) {
	if err := r.storage.RemoveItem(ctx, localstorage.KeyRecentSearches); err != nil {
		r.logger.LogAttrs(ctx, slog.LevelWarn, "failed to clear recent searches", slog.String("error", err.Error()))
	}
}
