package normalize

import (
	"time"

	"partyhub/internal/party/models"
	"partyhub/pkg/email"
	pstrings "partyhub/pkg/platform/strings"
)

// Individual maps a validated payload onto an individual fragment. In create
// mode fullName is derived and status is forced to active; in update mode
// only supplied fields appear in the fragment.
func Individual(payload map[string]any, mode models.Mode, now time.Time) (*models.IndividualPatch, error) {
	f := resolve(payload, individualAliases)

	base, err := common(f, mode)
	if err != nil {
		return nil, err
	}
	p := &models.IndividualPatch{
		PartyPatch:     base,
		GivenName:      f.str("givenName"),
		FamilyName:     f.str("familyName"),
		FullName:       f.str("fullName"),
		FormattedName:  f.str("formattedName"),
		Title:          f.str("title"),
		CountryOfBirth: f.str("countryOfBirth"),
		PlaceOfBirth:   f.str("placeOfBirth"),
		Nationality:    f.str("nationality"),
		Gender:         enum[models.Gender](f, "gender"),
		MaritalStatus:  enum[models.MaritalStatus](f, "maritalStatus"),
	}
	if p.BirthDate, err = f.date("birthDate"); err != nil {
		return nil, err
	}
	if p.DeathDate, err = f.date("deathDate"); err != nil {
		return nil, err
	}
	if p.IndividualIdentification, err = list[models.Identification](f, "individualIdentification"); err != nil {
		return nil, err
	}
	if p.LanguageAbility, err = list[models.LanguageAbility](f, "languageAbility"); err != nil {
		return nil, err
	}
	if p.Skill, err = list[models.Skill](f, "skill"); err != nil {
		return nil, err
	}

	if mode == models.ModeCreate && p.FullName == nil {
		full := pstrings.JoinNonEmpty(f.text("givenName"), f.text("familyName"))
		p.FullName = &full
	}

	if a := credential(f, mode, now); a != nil {
		if addr := f.text("email"); addr != "" {
			normalized := email.Normalize(addr)
			a.Email = &normalized
		}
		p.Authentication = a
	}
	return p, nil
}
