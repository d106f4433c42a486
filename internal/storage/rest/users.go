package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mmynk/tripplanner/internal/models"
)

type userRow struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	DisplayName  string      `json:"display_name"`
	PasswordHash string      `json:"password_hash"`
	Role         models.Role `json:"role"`
	CreatedAt    *time.Time  `json:"created_at,omitempty"`
	UpdatedAt    *time.Time  `json:"updated_at,omitempty"`
}

func (r userRow) model() *models.User {
	return &models.User{
		ID:           r.ID,
		Email:        r.Email,
		DisplayName:  r.DisplayName,
		PasswordHash: r.PasswordHash,
		Role:         r.Role,
		CreatedAt:    unixOf(r.CreatedAt),
		UpdatedAt:    unixOf(r.UpdatedAt),
	}
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	row := userRow{
		ID:           user.ID,
		Email:        user.Email,
		DisplayName:  user.DisplayName,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		CreatedAt:    timeOf(user.CreatedAt),
		UpdatedAt:    timeOf(user.UpdatedAt),
	}
	if err := s.do(ctx, http.MethodPost, "usuarios", nil, row, "return=minimal", nil); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *Store) getUser(ctx context.Context, q url.Values) (*models.User, error) {
	var rows []userRow
	q.Set("select", "*")
	if err := s.do(ctx, http.MethodGet, "usuarios", q, nil, "", &rows); err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	row, err := first(rows, "user")
	if err != nil {
		return nil, err
	}
	return row.model(), nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, url.Values{"email": {eq(email)}})
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, byID(id))
}

func (s *Store) UpdatePasswordHash(ctx context.Context, userID, hash string) error {
	patch := map[string]any{
		"password_hash": hash,
		"updated_at":    time.Now().UTC(),
	}
	var rows []userRow
	if err := s.do(ctx, http.MethodPatch, "usuarios", byID(userID), patch, preferRepresentation, &rows); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	_, err := first(rows, "user")
	return err
}
