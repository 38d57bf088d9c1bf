package contact

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mycontacts/mycontacts/internal/apperr"
	"github.com/mycontacts/mycontacts/internal/validation"
)

const (
	nameRule  = "required"
	phoneRule = "required,min=10,max=20"
)

// Service performs ownership-scoped CRUD on contacts. The owner id always
// comes from a verified token, never from the request body.
type Service struct {
	repo     Repository
	validate *validation.Validator
	now      func() time.Time
}

// NewService builds a contact service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: validation.New(), now: time.Now}
}

// List returns every contact owned by ownerID.
func (s *Service) List(ctx context.Context, ownerID string) ([]Contact, error) {
	if ownerID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	return s.repo.List(ctx, ownerID)
}

// Get returns a single contact owned by ownerID.
func (s *Service) Get(ctx context.Context, ownerID, id string) (Contact, error) {
	if ownerID == "" {
		return Contact{}, apperr.ErrUnauthenticated
	}
	return s.repo.Get(ctx, ownerID, id)
}

// Create validates the input and stores a new contact owned by ownerID.
func (s *Service) Create(ctx context.Context, ownerID string, input CreateInput) (Contact, error) {
	if ownerID == "" {
		return Contact{}, apperr.ErrUnauthenticated
	}
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Phone = strings.TrimSpace(input.Phone)
	if err := s.validate.Struct(input); err != nil {
		return Contact{}, err
	}

	now := s.now().UTC()
	c := Contact{
		ID:        uuid.NewString(),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		UserID:    ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return Contact{}, err
	}
	return c, nil
}

// Update applies a partial update to a contact owned by ownerID. Contacts of
// other owners are reported as not found.
func (s *Service) Update(ctx context.Context, ownerID, id string, input UpdateInput) (Contact, error) {
	if ownerID == "" {
		return Contact{}, apperr.ErrUnauthenticated
	}
	patch, err := s.normalizePatch(input)
	if err != nil {
		return Contact{}, err
	}
	if patch.empty() {
		return s.repo.Get(ctx, ownerID, id)
	}
	return s.repo.Update(ctx, ownerID, id, patch, s.now())
}

// Delete removes a contact owned by ownerID.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return apperr.ErrUnauthenticated
	}
	return s.repo.Delete(ctx, ownerID, id)
}

func (s *Service) normalizePatch(in UpdateInput) (UpdateInput, error) {
	var out UpdateInput
	fields := []struct {
		name string
		rule string
		src  *string
		dst  **string
	}{
		{"firstName", nameRule, in.FirstName, &out.FirstName},
		{"lastName", nameRule, in.LastName, &out.LastName},
		{"phone", phoneRule, in.Phone, &out.Phone},
	}
	for _, f := range fields {
		if f.src == nil {
			continue
		}
		v := strings.TrimSpace(*f.src)
		if err := s.validate.Var(f.name, v, f.rule); err != nil {
			return UpdateInput{}, fmt.Errorf("update contact: %w", err)
		}
		*f.dst = &v
	}
	return out, nil
}
