package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/tripplanner/internal/models"
	"github.com/mmynk/tripplanner/pkg/api"
)

func TestPlaces(t *testing.T) {
	env := setupTestServer(t, envOptions{})
	ctx := context.Background()
	_, adminToken := env.user(t, testAdminEmail, models.RoleAdmin)
	_, anaToken := env.user(t, "ana@example.com", models.RoleUser)

	ids := map[string]string{}
	for _, req := range []*api.CreatePlaceRequest{
		{Name: "Playa Blanca", Category: "playa", Priority: 5},
		{Name: "Cafe del Mar", Category: "restaurante", Priority: 3},
		{Name: "Bahía", Category: "playa", Priority: 3},
	} {
		resp, err := env.places.CreatePlace(ctx, as(adminToken, req))
		if err != nil {
			t.Fatalf("CreatePlace failed: %v", err)
		}
		ids[req.Name] = resp.Msg.Place.ID
	}

	t.Run("validation", func(t *testing.T) {
		for _, req := range []*api.CreatePlaceRequest{
			{Name: "", Category: "playa", Priority: 3},
			{Name: "X", Category: "museo", Priority: 3},
			{Name: "X", Category: "playa", Priority: 0},
			{Name: "X", Category: "playa", Priority: 6},
		} {
			_, err := env.places.CreatePlace(ctx, as(adminToken, req))
			assertCode(t, err, connect.CodeInvalidArgument)
		}
	})

	t.Run("users cannot edit", func(t *testing.T) {
		_, err := env.places.DeletePlace(ctx, as(anaToken, &api.DeletePlaceRequest{ID: ids["Bahía"]}))
		assertCode(t, err, connect.CodePermissionDenied)
	})

	t.Run("priority order", func(t *testing.T) {
		resp, err := env.places.ListPlaces(ctx, as(anaToken, &api.ListPlacesRequest{Category: AllCategories}))
		if err != nil {
			t.Fatalf("ListPlaces failed: %v", err)
		}
		want := []string{"Playa Blanca", "Bahía", "Cafe del Mar"}
		if len(resp.Msg.Places) != len(want) {
			t.Fatalf("expected %d places, got %d", len(want), len(resp.Msg.Places))
		}
		for i, p := range resp.Msg.Places {
			if p.Name != want[i] {
				t.Errorf("place %d = %s, want %s", i, p.Name, want[i])
			}
		}
	})

	t.Run("toggle keeps filter and counts everything", func(t *testing.T) {
		resp, err := env.places.TogglePlace(ctx, as(anaToken, &api.TogglePlaceRequest{
			ID:       ids["Cafe del Mar"],
			Category: "playa",
		}))
		if err != nil {
			t.Fatalf("TogglePlace failed: %v", err)
		}
		if len(resp.Msg.Places) != 2 {
			t.Errorf("expected 2 beach places, got %d", len(resp.Msg.Places))
		}
		for _, p := range resp.Msg.Places {
			if p.Category != "playa" || p.Completed {
				t.Errorf("unexpected place %+v", p)
			}
		}
		c := resp.Msg.Completion
		if c.Completed != 1 || c.Total != 3 {
			t.Errorf("completion = %+v, want 1 of 3", c)
		}
	})

	t.Run("unknown filter", func(t *testing.T) {
		_, err := env.places.ListPlaces(ctx, as(anaToken, &api.ListPlacesRequest{Category: "museo"}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("delete drops progress", func(t *testing.T) {
		if _, err := env.places.DeletePlace(ctx, as(adminToken, &api.DeletePlaceRequest{ID: ids["Cafe del Mar"]})); err != nil {
			t.Fatalf("DeletePlace failed: %v", err)
		}
		resp, err := env.places.ListPlaces(ctx, as(anaToken, &api.ListPlacesRequest{}))
		if err != nil {
			t.Fatalf("ListPlaces failed: %v", err)
		}
		if c := resp.Msg.Completion; c.Completed != 0 || c.Total != 2 {
			t.Errorf("completion = %+v, want 0 of 2", c)
		}
	})
}
