package service

import (
	"context"

	"partyhub/internal/party/models"
	"partyhub/internal/party/normalize"
)

func (s *Service) individualVariant() variant[*models.Individual, *models.IndividualPatch] {
	return variant[*models.Individual, *models.IndividualPatch]{
		kind:      models.KindIndividual,
		label:     "Individual",
		article:   "An",
		store:     s.individuals,
		normalize: normalize.Individual,
		build:     models.NewIndividual,
		apply:     (*models.Individual).Apply,
		common:    func(p *models.IndividualPatch) *models.PartyPatch { return &p.PartyPatch },
	}
}

func (s *Service) organizationVariant() variant[*models.Organization, *models.OrganizationPatch] {
	return variant[*models.Organization, *models.OrganizationPatch]{
		kind:      models.KindOrganization,
		label:     "Organization",
		article:   "An",
		store:     s.organizations,
		normalize: normalize.Organization,
		build:     models.NewOrganization,
		apply:     (*models.Organization).Apply,
		common:    func(p *models.OrganizationPatch) *models.PartyPatch { return &p.PartyPatch },
	}
}

// CreateIndividual validates and normalizes a form payload, hashes any
// password and stores the new individual.
func (s *Service) CreateIndividual(ctx context.Context, payload map[string]any) (*models.Individual, error) {
	return create(ctx, s, s.individualVariant(), payload)
}

func (s *Service) ListIndividuals(ctx context.Context, filter models.ListFilter) (*models.Page[*models.Individual], error) {
	return list(ctx, s, s.individualVariant(), filter)
}

func (s *Service) GetIndividual(ctx context.Context, rawID string) (*models.Individual, error) {
	return get(ctx, s, s.individualVariant(), rawID)
}

// UpdateIndividual merges an update-mode payload into an existing individual.
func (s *Service) UpdateIndividual(ctx context.Context, rawID string, payload map[string]any) (*models.Individual, error) {
	return update(ctx, s, s.individualVariant(), rawID, payload)
}

func (s *Service) DeleteIndividual(ctx context.Context, rawID string) error {
	return remove(ctx, s, s.individualVariant(), rawID)
}

// CreateOrganization validates and normalizes a form payload, applies the
// organization defaults and stores the new organization.
func (s *Service) CreateOrganization(ctx context.Context, payload map[string]any) (*models.Organization, error) {
	return create(ctx, s, s.organizationVariant(), payload)
}

func (s *Service) ListOrganizations(ctx context.Context, filter models.ListFilter) (*models.Page[*models.Organization], error) {
	return list(ctx, s, s.organizationVariant(), filter)
}

func (s *Service) GetOrganization(ctx context.Context, rawID string) (*models.Organization, error) {
	return get(ctx, s, s.organizationVariant(), rawID)
}

func (s *Service) UpdateOrganization(ctx context.Context, rawID string, payload map[string]any) (*models.Organization, error) {
	return update(ctx, s, s.organizationVariant(), rawID, payload)
}

func (s *Service) DeleteOrganization(ctx context.Context, rawID string) error {
	return remove(ctx, s, s.organizationVariant(), rawID)
}
