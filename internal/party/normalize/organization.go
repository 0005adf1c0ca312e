package normalize

import (
	"time"

	"partyhub/internal/party/models"
	dErrors "partyhub/pkg/domain-errors"
	"partyhub/pkg/email"
	pstrings "partyhub/pkg/platform/strings"
)

// Organization maps a validated payload onto an organization fragment.
// firstName and lastName describe the contact person, not the organization.
func Organization(payload map[string]any, mode models.Mode, now time.Time) (*models.OrganizationPatch, error) {
	f := resolve(payload, organizationAliases)

	base, err := common(f, mode)
	if err != nil {
		return nil, err
	}
	p := &models.OrganizationPatch{
		PartyPatch:       base,
		Name:             f.str("name"),
		TradingName:      f.str("tradingName"),
		NameType:         enum[models.NameType](f, "nameType"),
		OrganizationType: enum[models.OrganizationType](f, "organizationType"),
		IsLegalEntity:    f.boolean("isLegalEntity"),
		IsHeadOffice:     f.boolean("isHeadOffice"),
	}
	if f.has("existsDuring") {
		var period models.TimePeriod
		if err := models.DecodeValue(f["existsDuring"], &period); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "existsDuring is malformed")
		}
		p.ExistsDuring = &period
	}
	if p.OrganizationIdentification, err = list[models.Identification](f, "organizationIdentification"); err != nil {
		return nil, err
	}
	if p.OrganizationParentRelationship, err = list[models.OrganizationRelationship](f, "organizationParentRelationship"); err != nil {
		return nil, err
	}
	if p.OrganizationChildRelationship, err = list[models.OrganizationRelationship](f, "organizationChildRelationship"); err != nil {
		return nil, err
	}
	if p.CreditRating, err = list[models.CreditRating](f, "creditRating"); err != nil {
		return nil, err
	}

	if brn := f.text("businessRegistrationNumber"); brn != "" {
		issued := now
		reg := models.Identification{
			IdentificationType: models.IdentificationBusinessRegistration,
			IdentificationID:   brn,
			IssuingDate:        &issued,
		}
		ids := []models.Identification{}
		if p.OrganizationIdentification != nil {
			ids = append(ids, *p.OrganizationIdentification...)
		}
		ids = append(ids, reg)
		p.OrganizationIdentification = &ids
	}

	if mode == models.ModeCreate {
		applyOrganizationDefaults(p)
	}

	if a := credential(f, mode, now); a != nil {
		if addr := f.text("email"); addr != "" {
			normalized := email.Normalize(addr)
			a.ContactEmail = &normalized
		}
		if mode == models.ModeCreate || f.has("firstName") || f.has("lastName") {
			contact := pstrings.JoinNonEmpty(f.text("firstName"), f.text("lastName"))
			a.ContactPersonName = &contact
		}
		p.Authentication = a
	}
	return p, nil
}

func applyOrganizationDefaults(p *models.OrganizationPatch) {
	if p.TradingName == nil && p.Name != nil {
		trading := *p.Name
		p.TradingName = &trading
	}
	if p.OrganizationType == nil {
		t := models.OrganizationTypeCompany
		p.OrganizationType = &t
	}
	if p.NameType == nil {
		n := models.NameTypeLegal
		p.NameType = &n
	}
	if p.IsLegalEntity == nil {
		p.IsLegalEntity = ptrTrue()
	}
	if p.IsHeadOffice == nil {
		p.IsHeadOffice = ptrTrue()
	}
}

func ptrTrue() *bool {
	b := true
	return &b
}
