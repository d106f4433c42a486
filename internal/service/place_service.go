package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/tripplanner/internal/calculator"
	"github.com/mmynk/tripplanner/internal/events"
	"github.com/mmynk/tripplanner/internal/models"
	"github.com/mmynk/tripplanner/internal/storage"
	"github.com/mmynk/tripplanner/pkg/api"
)

// AllCategories is the filter value that lists every category.
const AllCategories = "todos"

// PlaceService implements the Connect PlaceService.
type PlaceService struct {
	store    storage.Store
	notifier *events.Notifier
	domain   models.Domain
}

// NewPlaceService creates a new PlaceService. notifier may be nil.
func NewPlaceService(store storage.Store, notifier *events.Notifier) *PlaceService {
	return &PlaceService{
		store:    store,
		notifier: notifier,
		domain:   models.PlacesDomain,
	}
}

// ListPlaces returns places in priority order, optionally filtered by
// category. Completion always counts the whole list.
func (s *PlaceService) ListPlaces(ctx context.Context, req *connect.Request[api.ListPlacesRequest]) (*connect.Response[api.ListPlacesResponse], error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkFilter(req.Msg.Category, models.IsPlaceCategory); err != nil {
		return nil, err
	}

	places, completion, err := s.listWithProgress(ctx, session.UserID, req.Msg.Category)
	if err != nil {
		slog.Error("ListPlaces failed", "user_id", session.UserID, "error", err)
		return nil, storeError(err)
	}

	return connect.NewResponse(&api.ListPlacesResponse{
		Places:     places,
		Completion: completion,
	}), nil
}

func (s *PlaceService) CreatePlace(ctx context.Context, req *connect.Request[api.CreatePlaceRequest]) (*connect.Response[api.CreatePlaceResponse], error) {
	session, err := requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("CreatePlace request received", "name", req.Msg.Name, "category", req.Msg.Category)

	place := &models.Place{
		Name:        req.Msg.Name,
		Description: req.Msg.Description,
		Category:    req.Msg.Category,
		Priority:    int(req.Msg.Priority),
	}
	if err := place.Validate(); err != nil {
		return nil, invalidArgument(err)
	}

	if err := s.store.CreatePlace(ctx, place); err != nil {
		slog.Error("CreatePlace failed", "error", err)
		return nil, storeError(err)
	}
	s.notifier.Notify(ctx, s.domain.Table, events.OpCreate, place.ID, session.UserID)

	return connect.NewResponse(&api.CreatePlaceResponse{
		Place: toAPIPlace(place, false),
	}), nil
}

func (s *PlaceService) UpdatePlace(ctx context.Context, req *connect.Request[api.UpdatePlaceRequest]) (*connect.Response[api.UpdatePlaceResponse], error) {
	session, err := requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	place, err := s.store.GetPlace(ctx, req.Msg.ID)
	if err != nil {
		return nil, storeError(err)
	}
	place.Name = req.Msg.Name
	place.Description = req.Msg.Description
	place.Category = req.Msg.Category
	place.Priority = int(req.Msg.Priority)
	if err := place.Validate(); err != nil {
		return nil, invalidArgument(err)
	}

	if err := s.store.UpdatePlace(ctx, place); err != nil {
		slog.Error("UpdatePlace failed", "place_id", place.ID, "error", err)
		return nil, storeError(err)
	}
	s.notifier.Notify(ctx, s.domain.Table, events.OpUpdate, place.ID, session.UserID)

	state, err := progressState(ctx, s.store, s.domain, session.UserID, []string{place.ID})
	if err != nil {
		return nil, storeError(err)
	}

	return connect.NewResponse(&api.UpdatePlaceResponse{
		Place: toAPIPlace(place, state[place.ID]),
	}), nil
}

func (s *PlaceService) DeletePlace(ctx context.Context, req *connect.Request[api.DeletePlaceRequest]) (*connect.Response[api.DeletePlaceResponse], error) {
	session, err := requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeletePlace(ctx, req.Msg.ID); err != nil {
		slog.Error("DeletePlace failed", "place_id", req.Msg.ID, "error", err)
		return nil, storeError(err)
	}
	s.notifier.Notify(ctx, s.domain.Table, events.OpDelete, req.Msg.ID, session.UserID)

	slog.Info("Place deleted", "place_id", req.Msg.ID)
	return connect.NewResponse(&api.DeletePlaceResponse{}), nil
}

// TogglePlace flips the caller's visited flag and returns the re-fetched
// list under the caller's filter.
func (s *PlaceService) TogglePlace(ctx context.Context, req *connect.Request[api.TogglePlaceRequest]) (*connect.Response[api.TogglePlaceResponse], error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkFilter(req.Msg.Category, models.IsPlaceCategory); err != nil {
		return nil, err
	}

	if _, err := s.store.GetPlace(ctx, req.Msg.ID); err != nil {
		return nil, storeError(err)
	}

	visited, err := toggleProgress(ctx, s.store, s.domain, session.UserID, req.Msg.ID)
	if err != nil {
		slog.Error("TogglePlace failed", "place_id", req.Msg.ID, "user_id", session.UserID, "error", err)
		return nil, storeError(err)
	}
	s.notifier.Notify(ctx, s.domain.ProgressTable, events.OpToggle, req.Msg.ID, session.UserID)

	slog.Info("Place toggled", "place_id", req.Msg.ID, "user_id", session.UserID, "visited", visited)

	places, completion, err := s.listWithProgress(ctx, session.UserID, req.Msg.Category)
	if err != nil {
		return nil, storeError(err)
	}

	return connect.NewResponse(&api.TogglePlaceResponse{
		Places:     places,
		Completion: completion,
	}), nil
}

func (s *PlaceService) listWithProgress(ctx context.Context, userID, category string) ([]*api.Place, *api.Completion, error) {
	var (
		catalog []*models.Place
		rows    []*models.Progress
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		catalog, err = s.store.ListPlaces(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		rows, err = s.store.ListProgress(gctx, s.domain, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	ids := make([]string, len(catalog))
	for i, p := range catalog {
		ids[i] = p.ID
	}
	state := calculator.MergeProgress(ids, rows)

	out := make([]*api.Place, 0, len(catalog))
	for _, p := range catalog {
		if matchesFilter(category, p.Category) {
			out = append(out, toAPIPlace(p, state[p.ID]))
		}
	}
	return out, toAPICompletion(calculator.SummarizeCompletion(ids, state)), nil
}

// checkFilter accepts an empty filter, AllCategories or a known category.
func checkFilter(category string, known func(string) bool) error {
	if category == "" || category == AllCategories || known(category) {
		return nil
	}
	return invalidArgument(fmt.Errorf("unknown category %q", category))
}

func matchesFilter(filter, category string) bool {
	return filter == "" || filter == AllCategories || filter == category
}
