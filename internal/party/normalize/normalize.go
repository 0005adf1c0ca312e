// Package normalize maps validated form payloads onto canonical party
// fragments. Payloads must have passed validation first; a value that cannot
// be decoded here is reported as a bad request.
package normalize

import (
	"strings"
	"time"

	"partyhub/internal/party/models"
	dErrors "partyhub/pkg/domain-errors"
	"partyhub/pkg/email"
)

// alias maps accepted input names onto one canonical field. The canonical
// name wins when both are supplied.
type alias struct {
	canonical string
	aliases   []string
}

var (
	individualAliases = []alias{
		{canonical: "givenName", aliases: []string{"firstName"}},
		{canonical: "familyName", aliases: []string{"lastName"}},
	}
	organizationAliases = []alias{
		{canonical: "name", aliases: []string{"organizationName"}},
	}
)

// form is a payload after alias resolution.
type form map[string]any

func resolve(payload map[string]any, table []alias) form {
	f := make(form, len(payload))
	for k, v := range payload {
		if v != nil {
			f[k] = v
		}
	}
	for _, a := range table {
		if _, ok := f[a.canonical]; ok {
			continue
		}
		for _, name := range a.aliases {
			if v, ok := f[name]; ok {
				f[a.canonical] = v
				break
			}
		}
	}
	return f
}

func (f form) has(key string) bool {
	_, ok := f[key]
	return ok
}

func (f form) str(key string) *string {
	s, ok := f[key].(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	return &s
}

func (f form) text(key string) string {
	if s := f.str(key); s != nil {
		return *s
	}
	return ""
}

func (f form) boolean(key string) *bool {
	b, ok := f[key].(bool)
	if !ok {
		return nil
	}
	return &b
}

func (f form) date(key string) (*time.Time, error) {
	s := f.str(key)
	if s == nil {
		return nil, nil
	}
	t, err := models.ParseDate(*s)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, key+" must be a valid date")
	}
	return &t, nil
}

// list decodes an array field into dst, returning nil when absent.
func list[T any](f form, key string) (*[]T, error) {
	v, ok := f[key]
	if !ok {
		return nil, nil
	}
	out := []T{}
	if err := models.DecodeValue(v, &out); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, key+" is malformed")
	}
	return &out, nil
}

func enum[T ~string](f form, key string) *T {
	s := f.str(key)
	if s == nil {
		return nil
	}
	v := T(*s)
	return &v
}

func emailMedium(addr string) models.ContactMedium {
	return models.ContactMedium{
		MediumType:     models.MediumEmail,
		Preferred:      true,
		Characteristic: models.MediumCharacteristic{EmailAddress: email.Normalize(addr)},
	}
}

func phoneMedium(number string) models.ContactMedium {
	return models.ContactMedium{
		MediumType:     models.MediumPhone,
		Preferred:      false,
		Characteristic: models.MediumCharacteristic{PhoneNumber: strings.TrimSpace(number)},
	}
}

// common builds the shared part of a fragment.
func common(f form, mode models.Mode) (models.PartyPatch, error) {
	var p models.PartyPatch
	var err error

	if mode == models.ModeCreate {
		active := models.StatusActive
		p.Status = &active
	} else {
		p.Status = enum[models.Status](f, "status")
	}

	media, err := list[models.ContactMedium](f, "contactMedium")
	if err != nil {
		return p, err
	}
	if media != nil {
		for i := range *media {
			ch := &(*media)[i].Characteristic
			ch.EmailAddress = email.Normalize(ch.EmailAddress)
		}
	}
	var derived []models.ContactMedium
	if addr := f.text("email"); addr != "" {
		m := emailMedium(addr)
		p.Email = &m
		derived = append(derived, m)
	}
	if number := f.text("phone"); number != "" {
		m := phoneMedium(number)
		p.Phone = &m
		derived = append(derived, m)
	}
	if mode == models.ModeCreate {
		// Creation appends derived entries to the explicit list instead of
		// upserting into it.
		all := []models.ContactMedium{}
		if media != nil {
			all = append(all, *media...)
		}
		all = append(all, derived...)
		p.ContactMedium = &all
		p.Email, p.Phone = nil, nil
	} else {
		p.ContactMedium = media
	}

	if p.RelatedParty, err = list[models.RelatedParty](f, "relatedParty"); err != nil {
		return p, err
	}
	if p.PartyCharacteristic, err = list[models.Characteristic](f, "partyCharacteristic"); err != nil {
		return p, err
	}
	if p.ExternalReference, err = list[models.ExternalReference](f, "externalReference"); err != nil {
		return p, err
	}
	if p.TaxExemptionCertificate, err = list[models.TaxExemptionCertificate](f, "taxExemptionCertificate"); err != nil {
		return p, err
	}
	return p, nil
}

// credential stages an authentication fragment. It returns nil when no
// password was supplied.
func credential(f form, mode models.Mode, now time.Time) *models.AuthenticationPatch {
	pw, ok := f["password"].(string)
	if !ok || pw == "" {
		return nil
	}
	a := &models.AuthenticationPatch{
		Password:               &pw,
		AgreedToTerms:          f.boolean("agreeToTerms"),
		SubscribedToNewsletter: f.boolean("subscribeToNewsletter"),
		AccountCreationDate:    now,
	}
	if mode == models.ModeCreate {
		if a.AgreedToTerms == nil {
			a.AgreedToTerms = new(bool)
		}
		if a.SubscribedToNewsletter == nil {
			a.SubscribedToNewsletter = new(bool)
		}
	}
	return a
}
