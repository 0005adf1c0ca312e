package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"partyhub/internal/party/credential"
	"partyhub/internal/party/models"
)

// check returns a violation message, or "" when value passes.
type check func(v *Validator, value any, payload map[string]any) string

type rule struct {
	field       string
	oneOf       []string
	requiredMsg string
	checks      []check
}

var (
	individualRules   []rule
	organizationRules []rule
)

func init() {
	individualRules = []rule{
		{
			field: "givenName", oneOf: []string{"givenName", "firstName"},
			requiredMsg: "Either givenName or firstName is required",
			checks:      []check{text(1, 100, "Given name must be between 1 and 100 characters")},
		},
		{
			field: "familyName", oneOf: []string{"familyName", "lastName"},
			requiredMsg: "Either familyName or lastName is required",
			checks:      []check{text(1, 100, "Family name must be between 1 and 100 characters")},
		},
		{field: "firstName", checks: []check{text(1, 100, "First name must be between 1 and 100 characters")}},
		{field: "lastName", checks: []check{text(1, 100, "Last name must be between 1 and 100 characters")}},
		{field: "fullName", checks: []check{text(1, 200, "Full name must be between 1 and 200 characters")}},
		{field: "formattedName", checks: []check{text(1, 200, "Formatted name must be between 1 and 200 characters")}},
		{field: "title", checks: []check{text(1, 50, "Title must be between 1 and 50 characters")}},
		{field: "email", checks: []check{email}},
		{field: "phone", checks: []check{phone}},
		{field: "birthDate", checks: []check{date("Birth date must be a valid date")}},
		{field: "deathDate", checks: []check{date("Death date must be a valid date")}},
		{field: "countryOfBirth", checks: []check{text(1, 100, "Country of birth must be between 1 and 100 characters")}},
		{field: "placeOfBirth", checks: []check{text(1, 100, "Place of birth must be between 1 and 100 characters")}},
		{field: "nationality", checks: []check{text(1, 100, "Nationality must be between 1 and 100 characters")}},
		{field: "gender", checks: []check{enum(models.GenderValues, "Gender")}},
		{field: "maritalStatus", checks: []check{enum(models.MaritalStatusValues, "Marital status")}},
		{field: "status", checks: []check{enum(models.StatusValues, "Status")}},
		{field: "password", checks: []check{password}},
		{field: "confirmPassword", checks: []check{confirmPassword}},
		{field: "agreeToTerms", checks: []check{boolean("agreeToTerms")}},
		{field: "subscribeToNewsletter", checks: []check{boolean("subscribeToNewsletter")}},
		{field: "contactMedium", checks: []check{contactMedia(models.KindIndividual)}},
		{field: "individualIdentification", checks: []check{identifications(models.KindIndividual)}},
		{field: "relatedParty", checks: []check{relatedParties}},
		{field: "languageAbility", checks: []check{decodes[[]models.LanguageAbility]("languageAbility")}},
		{field: "skill", checks: []check{decodes[[]models.Skill]("skill")}},
		{field: "partyCharacteristic", checks: []check{characteristics}},
		{field: "externalReference", checks: []check{decodes[[]models.ExternalReference]("externalReference")}},
		{field: "taxExemptionCertificate", checks: []check{decodes[[]models.TaxExemptionCertificate]("taxExemptionCertificate")}},
	}

	organizationRules = []rule{
		{
			field: "name", oneOf: []string{"name", "organizationName"},
			requiredMsg: "Either name or organizationName is required",
			checks:      []check{text(1, 200, "Organization name must be between 1 and 200 characters")},
		},
		{field: "organizationName", checks: []check{text(1, 200, "Organization name must be between 1 and 200 characters")}},
		{field: "tradingName", checks: []check{text(1, 200, "Trading name must be between 1 and 200 characters")}},
		{field: "nameType", checks: []check{enum(models.NameTypeValues, "Name type")}},
		{field: "organizationType", checks: []check{enum(models.OrganizationTypeValues, "Organization type")}},
		{field: "status", checks: []check{enum(models.StatusValues, "Status")}},
		{field: "email", checks: []check{email}},
		{field: "phone", checks: []check{phone}},
		{field: "firstName", checks: []check{text(1, 100, "Contact person first name must be between 1 and 100 characters")}},
		{field: "lastName", checks: []check{text(1, 100, "Contact person last name must be between 1 and 100 characters")}},
		{field: "isLegalEntity", checks: []check{boolean("isLegalEntity")}},
		{field: "isHeadOffice", checks: []check{boolean("isHeadOffice")}},
		{field: "agreeToTerms", checks: []check{boolean("agreeToTerms")}},
		{field: "subscribeToNewsletter", checks: []check{boolean("subscribeToNewsletter")}},
		{field: "businessRegistrationNumber", checks: []check{text(1, 50, "Business registration number must be between 1 and 50 characters")}},
		{field: "password", checks: []check{password}},
		{field: "confirmPassword", checks: []check{confirmPassword}},
		{field: "contactMedium", checks: []check{contactMedia(models.KindOrganization)}},
		{field: "organizationIdentification", checks: []check{identifications(models.KindOrganization)}},
		{field: "existsDuring", checks: []check{decodes[models.TimePeriod]("existsDuring")}},
		{field: "organizationParentRelationship", checks: []check{relationships("organizationParentRelationship")}},
		{field: "organizationChildRelationship", checks: []check{relationships("organizationChildRelationship")}},
		{field: "creditRating", checks: []check{decodes[[]models.CreditRating]("creditRating")}},
		{field: "relatedParty", checks: []check{relatedParties}},
		{field: "partyCharacteristic", checks: []check{characteristics}},
		{field: "externalReference", checks: []check{decodes[[]models.ExternalReference]("externalReference")}},
		{field: "taxExemptionCertificate", checks: []check{decodes[[]models.TaxExemptionCertificate]("taxExemptionCertificate")}},
	}
}

func rulesFor(kind models.Kind) []rule {
	if kind == models.KindOrganization {
		return organizationRules
	}
	return individualRules
}

func text(minLen, maxLen int, msg string) check {
	tag := fmt.Sprintf("min=%d,max=%d", minLen, maxLen)
	return func(v *Validator, value any, _ map[string]any) string {
		s, ok := value.(string)
		if !ok {
			return msg
		}
		if err := v.tags.Var(strings.TrimSpace(s), tag); err != nil {
			return msg
		}
		return ""
	}
}

func email(v *Validator, value any, _ map[string]any) string {
	const msg = "Must be a valid email address"
	s, ok := value.(string)
	if !ok {
		return msg
	}
	if err := v.tags.Var(strings.TrimSpace(s), "required,email,max=254"); err != nil {
		return msg
	}
	return ""
}

func phone(v *Validator, value any, _ map[string]any) string {
	const msg = "Must be a valid phone number"
	s, ok := value.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return msg
	}
	num, err := phonenumbers.Parse(s, v.phoneRegion)
	if err != nil || !phonenumbers.IsPossibleNumber(num) {
		return msg
	}
	return ""
}

func date(msg string) check {
	return func(_ *Validator, value any, _ map[string]any) string {
		s, ok := value.(string)
		if !ok {
			return msg
		}
		if _, err := models.ParseDate(strings.TrimSpace(s)); err != nil {
			return msg
		}
		return ""
	}
}

func enum(values []string, label string) check {
	msg := fmt.Sprintf("%s must be one of: %s", label, strings.Join(values, ", "))
	return func(_ *Validator, value any, _ map[string]any) string {
		s, ok := value.(string)
		if !ok || !slices.Contains(values, s) {
			return msg
		}
		return ""
	}
}

func boolean(field string) check {
	return func(_ *Validator, value any, _ map[string]any) string {
		if _, ok := value.(bool); !ok {
			return field + " must be a boolean"
		}
		return ""
	}
}

func password(_ *Validator, value any, _ map[string]any) string {
	s, ok := value.(string)
	if !ok || len([]rune(s)) < 8 {
		return "Password must be at least 8 characters long"
	}
	if len(s) > credential.MaxPasswordBytes {
		return fmt.Sprintf("Password must be at most %d bytes long", credential.MaxPasswordBytes)
	}
	var upper, lower, digit bool
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case 'A' <= c && c <= 'Z':
			upper = true
		case 'a' <= c && c <= 'z':
			lower = true
		case '0' <= c && c <= '9':
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return "Password must contain at least one uppercase letter, one lowercase letter, and one number"
	}
	return ""
}

func confirmPassword(_ *Validator, value any, payload map[string]any) string {
	pw, ok := lookup(payload, "password")
	if !ok {
		return ""
	}
	confirm, isString := value.(string)
	if want, _ := pw.(string); !isString || confirm != want {
		return "Password confirmation does not match password"
	}
	return ""
}

func objects(value any) ([]map[string]any, bool) {
	items, ok := value.([]any)
	if !ok {
		return nil, false
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}
		out = append(out, obj)
	}
	return out, true
}

func contactMedia(kind models.Kind) check {
	allowed := models.MediumTypes(kind)
	return func(v *Validator, value any, _ map[string]any) string {
		items, ok := objects(value)
		if !ok {
			return "Contact medium must be an array"
		}
		for _, item := range items {
			if mt, ok := lookup(item, "mediumType"); ok {
				if s, isString := mt.(string); !isString || !slices.Contains(allowed, s) {
					return "Medium type must be valid"
				}
			}
			if ch, ok := item["characteristic"].(map[string]any); ok {
				if addr, present := lookup(ch, "emailAddress"); present && email(v, addr, nil) != "" {
					return "Contact medium email address must be valid"
				}
			}
		}
		var decoded []models.ContactMedium
		if err := models.DecodeValue(value, &decoded); err != nil {
			return "Contact medium entries are malformed"
		}
		return ""
	}
}

func identifications(kind models.Kind) check {
	allowed := models.IdentificationTypes(kind)
	field := "individualIdentification"
	if kind == models.KindOrganization {
		field = "organizationIdentification"
	}
	return func(_ *Validator, value any, _ map[string]any) string {
		items, ok := objects(value)
		if !ok {
			return field + " must be an array"
		}
		for _, item := range items {
			t, _ := item["identificationType"].(string)
			if !slices.Contains(allowed, t) {
				return "Identification type must be one of: " + strings.Join(allowed, ", ")
			}
			if idv, _ := item["identificationId"].(string); strings.TrimSpace(idv) == "" {
				return "Identification id is required"
			}
		}
		var decoded []models.Identification
		if err := models.DecodeValue(value, &decoded); err != nil {
			return field + " entries are malformed"
		}
		return ""
	}
}

func relatedParties(_ *Validator, value any, _ map[string]any) string {
	items, ok := objects(value)
	if !ok {
		return "Related party must be an array"
	}
	for _, item := range items {
		if idv, _ := item["id"].(string); strings.TrimSpace(idv) == "" {
			return "Related party id is required"
		}
		if t, ok := lookup(item, "type"); ok {
			if s, isString := t.(string); !isString || !slices.Contains(models.RelatedPartyTypes, s) {
				return "Related party type must be one of: " + strings.Join(models.RelatedPartyTypes, ", ")
			}
		}
	}
	var decoded []models.RelatedParty
	if err := models.DecodeValue(value, &decoded); err != nil {
		return "Related party entries are malformed"
	}
	return ""
}

func characteristics(_ *Validator, value any, _ map[string]any) string {
	items, ok := objects(value)
	if !ok {
		return "partyCharacteristic must be an array"
	}
	for _, item := range items {
		if name, _ := item["name"].(string); strings.TrimSpace(name) == "" {
			return "Characteristic name is required"
		}
	}
	var decoded []models.Characteristic
	if err := models.DecodeValue(value, &decoded); err != nil {
		return "partyCharacteristic entries are malformed"
	}
	return ""
}

func relationships(field string) check {
	return func(_ *Validator, value any, _ map[string]any) string {
		items, ok := objects(value)
		if !ok {
			return field + " must be an array"
		}
		for _, item := range items {
			org, _ := item["organization"].(map[string]any)
			if idv, _ := org["id"].(string); strings.TrimSpace(idv) == "" {
				return "Related organization id is required"
			}
		}
		var decoded []models.OrganizationRelationship
		if err := models.DecodeValue(value, &decoded); err != nil {
			return field + " entries are malformed"
		}
		return ""
	}
}

func decodes[T any](field string) check {
	return func(_ *Validator, value any, _ map[string]any) string {
		var decoded T
		if err := models.DecodeValue(value, &decoded); err != nil {
			return field + " is malformed"
		}
		return ""
	}
}
