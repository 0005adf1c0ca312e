package models

import (
	"slices"
	"time"

	id "partyhub/pkg/domain"
	dErrors "partyhub/pkg/domain-errors"
)

// PartyPatch carries the shared part of a normalized fragment.
//
// ContactMedium replaces the whole list. Email and Phone then replace the
// first entry of the same medium type, or are appended when none exists.
type PartyPatch struct {
	Status                  *Status
	ContactMedium           *[]ContactMedium
	Email                   *ContactMedium
	Phone                   *ContactMedium
	RelatedParty            *[]RelatedParty
	PartyCharacteristic     *[]Characteristic
	ExternalReference       *[]ExternalReference
	TaxExemptionCertificate *[]TaxExemptionCertificate
	Authentication          *AuthenticationPatch
}

// AuthenticationPatch stages a credential. Password holds the raw secret only
// until it is sealed; Apply rejects an unsealed patch.
type AuthenticationPatch struct {
	Password               *string
	HashedPassword         string
	Email                  *string
	ContactEmail           *string
	ContactPersonName      *string
	AgreedToTerms          *bool
	SubscribedToNewsletter *bool
	AccountCreationDate    time.Time
}

// Seal replaces the raw password with its hash.
func (a *AuthenticationPatch) Seal(hash string) {
	a.HashedPassword = hash
	a.Password = nil
}

// Sealed reports whether the raw password has been consumed.
func (a *AuthenticationPatch) Sealed() bool {
	return a.Password == nil && a.HashedPassword != ""
}

func newParty(partyID id.PartyID, now time.Time) Party {
	return Party{
		ID:            partyID,
		Status:        StatusActive,
		ContactMedium: []ContactMedium{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (p *Party) apply(patch *PartyPatch, now time.Time) error {
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.ContactMedium != nil {
		p.ContactMedium = slices.Clone(*patch.ContactMedium)
	}
	if patch.Email != nil {
		p.upsertMedium(*patch.Email)
	}
	if patch.Phone != nil {
		p.upsertMedium(*patch.Phone)
	}
	if p.ContactMedium == nil {
		p.ContactMedium = []ContactMedium{}
	}
	setSlice(&p.RelatedParty, patch.RelatedParty)
	setSlice(&p.PartyCharacteristic, patch.PartyCharacteristic)
	setSlice(&p.ExternalReference, patch.ExternalReference)
	setSlice(&p.TaxExemptionCertificate, patch.TaxExemptionCertificate)
	if patch.Authentication != nil {
		if err := p.applyAuthentication(patch.Authentication); err != nil {
			return err
		}
	}
	p.UpdatedAt = now
	return nil
}

func (p *Party) upsertMedium(cm ContactMedium) {
	for i := range p.ContactMedium {
		if p.ContactMedium[i].MediumType == cm.MediumType {
			p.ContactMedium[i] = cm
			return
		}
	}
	p.ContactMedium = append(p.ContactMedium, cm)
}

func (p *Party) applyAuthentication(a *AuthenticationPatch) error {
	if !a.Sealed() {
		return dErrors.New(dErrors.CodeInvariantViolation, "credential must be hashed before it is stored")
	}
	ctx := p.AuthenticationContext
	if ctx == nil {
		ctx = &AuthenticationContext{AccountCreationDate: a.AccountCreationDate}
	}
	ctx.HashedPassword = a.HashedPassword
	setString(&ctx.Email, a.Email)
	setString(&ctx.ContactEmail, a.ContactEmail)
	setString(&ctx.ContactPersonName, a.ContactPersonName)
	if a.AgreedToTerms != nil {
		ctx.AgreedToTerms = *a.AgreedToTerms
	}
	if a.SubscribedToNewsletter != nil {
		ctx.SubscribedToNewsletter = *a.SubscribedToNewsletter
	}
	p.AuthenticationContext = ctx
	return nil
}

func validateIdentifications(ids []Identification) error {
	for _, ident := range ids {
		if ident.IdentificationID == "" {
			return dErrors.New(dErrors.CodeInvariantViolation, "identificationId cannot be empty")
		}
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setSlice[T any](dst *[]T, v *[]T) {
	if v != nil {
		*dst = slices.Clone(*v)
	}
}
