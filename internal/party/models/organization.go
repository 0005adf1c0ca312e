package models

import (
	"strings"
	"time"

	id "partyhub/pkg/domain"
	dErrors "partyhub/pkg/domain-errors"
)

// Organization is a legal or trading entity.
//
// Invariants:
//   - Name is non-empty
//   - CreatedAt is immutable after construction
type Organization struct {
	Party
	Name                           string                     `json:"name"`
	TradingName                    string                     `json:"tradingName,omitempty"`
	NameType                       NameType                   `json:"nameType,omitempty"`
	OrganizationType               OrganizationType           `json:"organizationType,omitempty"`
	ExistsDuring                   *TimePeriod                `json:"existsDuring,omitempty"`
	IsHeadOffice                   bool                       `json:"isHeadOffice"`
	IsLegalEntity                  bool                       `json:"isLegalEntity"`
	OrganizationIdentification     []Identification           `json:"organizationIdentification,omitempty"`
	OrganizationParentRelationship []OrganizationRelationship `json:"organizationParentRelationship,omitempty"`
	OrganizationChildRelationship  []OrganizationRelationship `json:"organizationChildRelationship,omitempty"`
	CreditRating                   []CreditRating             `json:"creditRating,omitempty"`
}

// OrganizationRelationship links to a parent or child organization by id only.
type OrganizationRelationship struct {
	RelationshipType string          `json:"relationshipType,omitempty"`
	Organization     OrganizationRef `json:"organization"`
}

type OrganizationRef struct {
	ID   string `json:"id"`
	Href string `json:"href,omitempty"`
	Name string `json:"name,omitempty"`
}

type CreditRating struct {
	CreditAgency string      `json:"creditAgency,omitempty"`
	CreditDate   *time.Time  `json:"creditDate,omitempty"`
	CreditRate   string      `json:"creditRate,omitempty"`
	CreditScore  int         `json:"creditScore,omitempty"`
	ValidFor     *TimePeriod `json:"validFor,omitempty"`
}

func (o *Organization) Kind() Kind   { return KindOrganization }
func (o *Organization) Core() *Party { return &o.Party }

func (o *Organization) SearchFields() SearchFields {
	return SearchFields{Name: o.Name, OrganizationType: string(o.OrganizationType)}
}

// OrganizationPatch is a normalized fragment. Nil pointers mean "not supplied".
type OrganizationPatch struct {
	PartyPatch
	Name                           *string
	TradingName                    *string
	NameType                       *NameType
	OrganizationType               *OrganizationType
	ExistsDuring                   *TimePeriod
	IsHeadOffice                   *bool
	IsLegalEntity                  *bool
	OrganizationIdentification     *[]Identification
	OrganizationParentRelationship *[]OrganizationRelationship
	OrganizationChildRelationship  *[]OrganizationRelationship
	CreditRating                   *[]CreditRating
}

// NewOrganization builds a record from a creation fragment.
func NewOrganization(partyID id.PartyID, p *OrganizationPatch, now time.Time) (*Organization, error) {
	o := &Organization{Party: newParty(partyID, now)}
	if err := o.Apply(p, now); err != nil {
		return nil, err
	}
	o.CreatedAt = now
	return o, nil
}

// Apply merges the supplied fields and refreshes UpdatedAt.
func (o *Organization) Apply(p *OrganizationPatch, now time.Time) error {
	if p == nil {
		return dErrors.New(dErrors.CodeInvariantViolation, "organization fragment is required")
	}
	if err := o.Party.apply(&p.PartyPatch, now); err != nil {
		return err
	}
	setString(&o.Name, p.Name)
	setString(&o.TradingName, p.TradingName)
	if p.NameType != nil {
		o.NameType = *p.NameType
	}
	if p.OrganizationType != nil {
		o.OrganizationType = *p.OrganizationType
	}
	if p.ExistsDuring != nil {
		o.ExistsDuring = p.ExistsDuring
	}
	if p.IsHeadOffice != nil {
		o.IsHeadOffice = *p.IsHeadOffice
	}
	if p.IsLegalEntity != nil {
		o.IsLegalEntity = *p.IsLegalEntity
	}
	setSlice(&o.OrganizationIdentification, p.OrganizationIdentification)
	setSlice(&o.OrganizationParentRelationship, p.OrganizationParentRelationship)
	setSlice(&o.OrganizationChildRelationship, p.OrganizationChildRelationship)
	setSlice(&o.CreditRating, p.CreditRating)
	return o.validate()
}

func (o *Organization) validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "name cannot be empty")
	}
	return validateIdentifications(o.OrganizationIdentification)
}
