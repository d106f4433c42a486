package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/tripplanner/internal/calculator"
	"github.com/mmynk/tripplanner/internal/events"
	"github.com/mmynk/tripplanner/internal/models"
	"github.com/mmynk/tripplanner/internal/storage"
	"github.com/mmynk/tripplanner/pkg/api"
)

// ItineraryService implements the Connect ItineraryService.
type ItineraryService struct {
	store    storage.Store
	notifier *events.Notifier
	domain   models.Domain
}

// NewItineraryService creates a new ItineraryService. notifier may be nil.
func NewItineraryService(store storage.Store, notifier *events.Notifier) *ItineraryService {
	return &ItineraryService{
		store:    store,
		notifier: notifier,
		domain:   models.ItineraryDomain,
	}
}

// ListEvents returns the whole itinerary with the caller's completion flags.
func (s *ItineraryService) ListEvents(ctx context.Context, req *connect.Request[api.ListEventsRequest]) (*connect.Response[api.ListEventsResponse], error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	evs, completion, err := s.listWithProgress(ctx, session.UserID)
	if err != nil {
		slog.Error("ListEvents failed", "user_id", session.UserID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("ListEvents successful", "user_id", session.UserID, "count", len(evs))

	return connect.NewResponse(&api.ListEventsResponse{
		Events:     evs,
		Completion: completion,
	}), nil
}

// CreateEvent adds an event to the itinerary. Admin only.
func (s *ItineraryService) CreateEvent(ctx context.Context, req *connect.Request[api.CreateEventRequest]) (*connect.Response[api.CreateEventResponse], error) {
	session, err := requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("CreateEvent request received",
		"title", req.Msg.Title,
		"date", req.Msg.Date,
		"price", req.Msg.Price,
	)

	event := &models.ItineraryEvent{
		Date:        req.Msg.Date,
		Time:        req.Msg.Time,
		Title:       req.Msg.Title,
		Description: req.Msg.Description,
		Location:    req.Msg.Location,
		Price:       req.Msg.Price,
	}
	if err := event.Validate(); err != nil {
		return nil, invalidArgument(err)
	}

	if err := s.store.CreateItineraryEvent(ctx, event); err != nil {
		slog.Error("CreateEvent failed", "error", err)
		return nil, storeError(err)
	}
	s.notifier.Notify(ctx, s.domain.Table, events.OpCreate, event.ID, session.UserID)

	slog.Info("Event created", "event_id", event.ID)

	return connect.NewResponse(&api.CreateEventResponse{
		Event: toAPIEvent(event, false),
	}), nil
}

// UpdateEvent replaces the editable fields of an event. Admin only.
func (s *ItineraryService) UpdateEvent(ctx context.Context, req *connect.Request[api.UpdateEventRequest]) (*connect.Response[api.UpdateEventResponse], error) {
	session, err := requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("UpdateEvent request received", "event_id", req.Msg.ID)

	event, err := s.store.GetItineraryEvent(ctx, req.Msg.ID)
	if err != nil {
		slog.Error("UpdateEvent failed", "event_id", req.Msg.ID, "error", err)
		return nil, storeError(err)
	}

	event.Date = req.Msg.Date
	event.Time = req.Msg.Time
	event.Title = req.Msg.Title
	event.Description = req.Msg.Description
	event.Location = req.Msg.Location
	event.Price = req.Msg.Price
	if err := event.Validate(); err != nil {
		return nil, invalidArgument(err)
	}

	if err := s.store.UpdateItineraryEvent(ctx, event); err != nil {
		slog.Error("UpdateEvent failed", "event_id", event.ID, "error", err)
		return nil, storeError(err)
	}
	s.notifier.Notify(ctx, s.domain.Table, events.OpUpdate, event.ID, session.UserID)

	state, err := progressState(ctx, s.store, s.domain, session.UserID, []string{event.ID})
	if err != nil {
		return nil, storeError(err)
	}

	return connect.NewResponse(&api.UpdateEventResponse{
		Event: toAPIEvent(event, state[event.ID]),
	}), nil
}

// DeleteEvent removes an event and, through the store, its progress rows.
// Admin only.
func (s *ItineraryService) DeleteEvent(ctx context.Context, req *connect.Request[api.DeleteEventRequest]) (*connect.Response[api.DeleteEventResponse], error) {
	session, err := requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("DeleteEvent request received", "event_id", req.Msg.ID)

	if err := s.store.DeleteItineraryEvent(ctx, req.Msg.ID); err != nil {
		slog.Error("DeleteEvent failed", "event_id", req.Msg.ID, "error", err)
		return nil, storeError(err)
	}
	s.notifier.Notify(ctx, s.domain.Table, events.OpDelete, req.Msg.ID, session.UserID)

	return connect.NewResponse(&api.DeleteEventResponse{}), nil
}

// ToggleEvent flips the caller's completion flag and returns the re-fetched list.
func (s *ItineraryService) ToggleEvent(ctx context.Context, req *connect.Request[api.ToggleEventRequest]) (*connect.Response[api.ToggleEventResponse], error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.GetItineraryEvent(ctx, req.Msg.ID); err != nil {
		return nil, storeError(err)
	}

	completed, err := toggleProgress(ctx, s.store, s.domain, session.UserID, req.Msg.ID)
	if err != nil {
		slog.Error("ToggleEvent failed", "event_id", req.Msg.ID, "user_id", session.UserID, "error", err)
		return nil, storeError(err)
	}
	s.notifier.Notify(ctx, s.domain.ProgressTable, events.OpToggle, req.Msg.ID, session.UserID)

	slog.Info("Event toggled", "event_id", req.Msg.ID, "user_id", session.UserID, "completed", completed)

	evs, completion, err := s.listWithProgress(ctx, session.UserID)
	if err != nil {
		return nil, storeError(err)
	}

	return connect.NewResponse(&api.ToggleEventResponse{
		Events:     evs,
		Completion: completion,
	}), nil
}

// listWithProgress reads the catalog and the caller's progress rows
// concurrently and merges them.
func (s *ItineraryService) listWithProgress(ctx context.Context, userID string) ([]*api.Event, *api.Completion, error) {
	var (
		catalog []*models.ItineraryEvent
		rows    []*models.Progress
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		catalog, err = s.store.ListItinerary(gctx)
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
	for i, ev := range catalog {
		ids[i] = ev.ID
	}
	state := calculator.MergeProgress(ids, rows)

	out := make([]*api.Event, len(catalog))
	for i, ev := range catalog {
		out[i] = toAPIEvent(ev, state[ev.ID])
	}
	return out, toAPICompletion(calculator.SummarizeCompletion(ids, state)), nil
}
