package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/voxxy-presents/presents-api/internal/model"
	"github.com/voxxy-presents/presents-api/internal/store"
)

// OrganizationService owns club/presenter profile operations.
type OrganizationService struct {
	store    store.Store
	validate *validator.Validate
}

// NewOrganizationService constructs an OrganizationService.
func NewOrganizationService(st store.Store) *OrganizationService {
	return &OrganizationService{store: st, validate: validator.New()}
}

// Create validates and persists a new organization.
func (s *OrganizationService) Create(ctx context.Context, req model.CreateOrganizationRequest) (*model.Organization, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Slug = strings.ToLower(strings.TrimSpace(req.Slug))
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid organization: %w", err)
	}
	if strings.ContainsAny(req.Slug, " /") {
		return nil, fmt.Errorf("slug must be URL-friendly")
	}

	now := time.Now().UTC()
	org := &model.Organization{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Slug:         req.Slug,
		Description:  req.Description,
		ContactEmail: req.ContactEmail,
		SocialLinks:  req.SocialLinks,
		Settings:     req.Settings,
		OwnerID:      req.OwnerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateOrganization(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

// GetBySlug returns the organization behind a public landing page URL.
func (s *OrganizationService) GetBySlug(ctx context.Context, slug string) (*model.Organization, error) {
	if slug == "" {
		return nil, fmt.Errorf("slug is required")
	}
	return s.store.GetOrganizationBySlug(ctx, slug)
}

// Get returns an organization by ID.
func (s *OrganizationService) Get(ctx context.Context, id string) (*model.Organization, error) {
	return s.store.GetOrganization(ctx, id)
}

// List returns all organizations.
func (s *OrganizationService) List(ctx context.Context) ([]model.Organization, error) {
	return s.store.ListOrganizations(ctx)
}

// Update applies a partial update to an organization's profile.
func (s *OrganizationService) Update(ctx context.Context, id string, req model.UpdateOrganizationRequest) (*model.Organization, error) {
	org, err := s.store.GetOrganization(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("organization name cannot be empty")
		}
		org.Name = name
	}
	if req.Description != nil {
		org.Description = *req.Description
	}
	if req.Background != nil {
		org.Background = *req.Background
	}
	if req.LogoURL != nil {
		org.LogoURL = *req.LogoURL
	}
	if req.BannerURL != nil {
		org.BannerURL = *req.BannerURL
	}
	if req.AboutStory != nil {
		org.AboutStory = *req.AboutStory
	}
	if req.ContactEmail != nil {
		org.ContactEmail = *req.ContactEmail
	}
	if req.SocialLinks != nil {
		org.SocialLinks = *req.SocialLinks
	}
	if req.Settings != nil {
		org.Settings = *req.Settings
	}
	org.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateOrganization(ctx, org); err != nil {
		return nil, fmt.Errorf("update organization: %w", err)
	}
	return org, nil
}
