package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/tripplanner/internal/calculator"
	"github.com/mmynk/tripplanner/internal/events"
	"github.com/mmynk/tripplanner/internal/models"
	"github.com/mmynk/tripplanner/internal/storage"
	"github.com/mmynk/tripplanner/pkg/api"
)

// PackingService implements the Connect PackingService.
//
// Under shared tracking the packed flag lives on the equipaje row and every
// user sees the same checklist state. Under personal tracking each user's
// flags live in equipaje_progreso, like itinerary and places.
type PackingService struct {
	store    storage.Store
	notifier *events.Notifier
	domain   models.Domain
}

// NewPackingService creates a new PackingService using the given tracking
// mode. notifier may be nil.
func NewPackingService(store storage.Store, tracking models.Tracking, notifier *events.Notifier) *PackingService {
	return &PackingService{
		store:    store,
		notifier: notifier,
		domain:   models.PackingDomain.WithTracking(tracking),
	}
}

func (s *PackingService) ListPackingItems(ctx context.Context, req *connect.Request[api.ListPackingItemsRequest]) (*connect.Response[api.ListPackingItemsResponse], error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkFilter(req.Msg.Category, models.IsPackingCategory); err != nil {
		return nil, err
	}

	items, completion, err := s.listWithState(ctx, session.UserID, req.Msg.Category)
	if err != nil {
		slog.Error("ListPackingItems failed", "user_id", session.UserID, "error", err)
		return nil, storeError(err)
	}

	return connect.NewResponse(&api.ListPackingItemsResponse{
		Items:      items,
		Completion: completion,
		Tracking:   string(s.domain.Tracking),
	}), nil
}

func (s *PackingService) CreatePackingItem(ctx context.Context, req *connect.Request[api.CreatePackingItemRequest]) (*connect.Response[api.CreatePackingItemResponse], error) {
	session, err := requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	item := &models.PackingItem{
		Name:     strings.TrimSpace(req.Msg.Name),
		Category: req.Msg.Category,
	}
	if err := item.Validate(); err != nil {
		return nil, invalidArgument(err)
	}

	if err := s.store.CreatePackingItems(ctx, []*models.PackingItem{item}); err != nil {
		slog.Error("CreatePackingItem failed", "error", err)
		return nil, storeError(err)
	}
	s.notifier.Notify(ctx, s.domain.Table, events.OpCreate, item.ID, session.UserID)

	slog.Info("Packing item created", "item_id", item.ID, "category", item.Category)

	return connect.NewResponse(&api.CreatePackingItemResponse{
		Item: toAPIPackingItem(item, false),
	}), nil
}

// UpdatePackingItem renames or recategorizes an item. The packed flag is
// left alone.
func (s *PackingService) UpdatePackingItem(ctx context.Context, req *connect.Request[api.UpdatePackingItemRequest]) (*connect.Response[api.UpdatePackingItemResponse], error) {
	session, err := requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	item, err := s.store.GetPackingItem(ctx, req.Msg.ID)
	if err != nil {
		return nil, storeError(err)
	}
	item.Name = strings.TrimSpace(req.Msg.Name)
	item.Category = req.Msg.Category
	if err := item.Validate(); err != nil {
		return nil, invalidArgument(err)
	}

	if err := s.store.UpdatePackingItem(ctx, item); err != nil {
		slog.Error("UpdatePackingItem failed", "item_id", item.ID, "error", err)
		return nil, storeError(err)
	}
	s.notifier.Notify(ctx, s.domain.Table, events.OpUpdate, item.ID, session.UserID)

	packed := item.Packed
	if s.domain.Personal() {
		state, err := progressState(ctx, s.store, s.domain, session.UserID, []string{item.ID})
		if err != nil {
			return nil, storeError(err)
		}
		packed = state[item.ID]
	}

	return connect.NewResponse(&api.UpdatePackingItemResponse{
		Item: toAPIPackingItem(item, packed),
	}), nil
}

func (s *PackingService) DeletePackingItem(ctx context.Context, req *connect.Request[api.DeletePackingItemRequest]) (*connect.Response[api.DeletePackingItemResponse], error) {
	session, err := requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeletePackingItem(ctx, req.Msg.ID); err != nil {
		slog.Error("DeletePackingItem failed", "item_id", req.Msg.ID, "error", err)
		return nil, storeError(err)
	}
	s.notifier.Notify(ctx, s.domain.Table, events.OpDelete, req.Msg.ID, session.UserID)

	return connect.NewResponse(&api.DeletePackingItemResponse{}), nil
}

// TogglePackingItem flips the packed flag, shared or personal depending on
// tracking, and returns the re-fetched list.
func (s *PackingService) TogglePackingItem(ctx context.Context, req *connect.Request[api.TogglePackingItemRequest]) (*connect.Response[api.TogglePackingItemResponse], error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkFilter(req.Msg.Category, models.IsPackingCategory); err != nil {
		return nil, err
	}

	item, err := s.store.GetPackingItem(ctx, req.Msg.ID)
	if err != nil {
		return nil, storeError(err)
	}

	var packed bool
	if s.domain.Personal() {
		packed, err = toggleProgress(ctx, s.store, s.domain, session.UserID, item.ID)
		if err == nil {
			s.notifier.Notify(ctx, s.domain.ProgressTable, events.OpToggle, item.ID, session.UserID)
		}
	} else {
		item.Packed = calculator.Toggle(item.Packed)
		packed = item.Packed
		err = s.store.UpdatePackingItem(ctx, item)
		if err == nil {
			s.notifier.Notify(ctx, s.domain.Table, events.OpToggle, item.ID, session.UserID)
		}
	}
	if err != nil {
		slog.Error("TogglePackingItem failed",
			"item_id", item.ID,
			"user_id", session.UserID,
			"tracking", s.domain.Tracking,
			"error", err)
		return nil, storeError(err)
	}

	slog.Info("Packing item toggled", "item_id", item.ID, "user_id", session.UserID, "packed", packed)

	items, completion, err := s.listWithState(ctx, session.UserID, req.Msg.Category)
	if err != nil {
		return nil, storeError(err)
	}

	return connect.NewResponse(&api.TogglePackingItemResponse{
		Items:      items,
		Completion: completion,
		Tracking:   string(s.domain.Tracking),
	}), nil
}

// ListPackingSuggestions returns the fixed suggestion table.
func (s *PackingService) ListPackingSuggestions(ctx context.Context, req *connect.Request[api.ListPackingSuggestionsRequest]) (*connect.Response[api.ListPackingSuggestionsResponse], error) {
	if _, err := requireSession(ctx); err != nil {
		return nil, err
	}

	suggestions := make([]*api.PackingSuggestion, len(models.PackingSuggestions))
	for i, sg := range models.PackingSuggestions {
		suggestions[i] = &api.PackingSuggestion{
			Category: sg.Category,
			Items:    append([]string(nil), sg.Items...),
		}
	}
	return connect.NewResponse(&api.ListPackingSuggestionsResponse{
		Suggestions: suggestions,
	}), nil
}

// AddSuggestedPackingItems inserts the chosen suggestions in one batch.
// Names already on the list, compared case-insensitively, are skipped.
// Admin only.
func (s *PackingService) AddSuggestedPackingItems(ctx context.Context, req *connect.Request[api.AddSuggestedPackingItemsRequest]) (*connect.Response[api.AddSuggestedPackingItemsResponse], error) {
	session, err := requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	for _, sg := range req.Msg.Items {
		if sg == nil || !models.IsSuggested(sg.Category, sg.Name) {
			return nil, invalidArgument(fmt.Errorf("not a packing suggestion: %+v", sg))
		}
	}

	existing, err := s.store.ListPackingItems(ctx)
	if err != nil {
		slog.Error("AddSuggestedPackingItems failed", "error", err)
		return nil, storeError(err)
	}
	seen := make(map[string]bool, len(existing))
	for _, item := range existing {
		seen[strings.ToLower(item.Name)] = true
	}

	var batch []*models.PackingItem
	for _, sg := range req.Msg.Items {
		key := strings.ToLower(sg.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		batch = append(batch, &models.PackingItem{Name: sg.Name, Category: sg.Category})
	}

	if len(batch) > 0 {
		if err := s.store.CreatePackingItems(ctx, batch); err != nil {
			slog.Error("AddSuggestedPackingItems failed", "count", len(batch), "error", err)
			return nil, storeError(err)
		}
		for _, item := range batch {
			s.notifier.Notify(ctx, s.domain.Table, events.OpCreate, item.ID, session.UserID)
		}
	}

	slog.Info("Suggested packing items added", "requested", len(req.Msg.Items), "added", len(batch))

	items, completion, err := s.listWithState(ctx, session.UserID, "")
	if err != nil {
		return nil, storeError(err)
	}

	return connect.NewResponse(&api.AddSuggestedPackingItemsResponse{
		Added:      int32(len(batch)),
		Items:      items,
		Completion: completion,
	}), nil
}

// listWithState returns the checklist with the effective packed flag for
// userID. Progress rows are only read under personal tracking.
func (s *PackingService) listWithState(ctx context.Context, userID, category string) ([]*api.PackingItem, *api.Completion, error) {
	var (
		catalog []*models.PackingItem
		rows    []*models.Progress
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		catalog, err = s.store.ListPackingItems(gctx)
		return err
	})
	if s.domain.Personal() {
		g.Go(func() error {
			var err error
			rows, err = s.store.ListProgress(gctx, s.domain, userID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	ids := make([]string, len(catalog))
	for i, item := range catalog {
		ids[i] = item.ID
	}

	var state map[string]bool
	if s.domain.Personal() {
		state = calculator.MergeProgress(ids, rows)
	} else {
		state = make(map[string]bool, len(catalog))
		for _, item := range catalog {
			state[item.ID] = item.Packed
		}
	}

	out := make([]*api.PackingItem, 0, len(catalog))
	for _, item := range catalog {
		if matchesFilter(category, item.Category) {
			out = append(out, toAPIPackingItem(item, state[item.ID]))
		}
	}
	return out, toAPICompletion(calculator.SummarizeCompletion(ids, state)), nil
}
