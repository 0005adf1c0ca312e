package models

import (
	"slices"
	"strings"
)

// Kind discriminates the two party variants.
type Kind string

const (
	KindIndividual   Kind = "Individual"
	KindOrganization Kind = "Organization"
)

func (k Kind) IsValid() bool {
	return k == KindIndividual || k == KindOrganization
}

// Resource is the path segment serving the variant.
func (k Kind) Resource() string {
	return strings.ToLower(string(k))
}

// Status is the party lifecycle state. Any value may be written through an
// update; no transition graph is enforced.
type Status string

const (
	StatusInitialized Status = "initialized"
	StatusValidated   Status = "validated"
	StatusActive      Status = "active"
	StatusInactive    Status = "inactive"
	StatusTerminated  Status = "terminated"
)

var StatusValues = []string{"initialized", "validated", "active", "inactive", "terminated"}

func (s Status) IsValid() bool { return slices.Contains(StatusValues, string(s)) }

type Gender string

var GenderValues = []string{"male", "female", "other", "unknown"}

func (g Gender) IsValid() bool { return slices.Contains(GenderValues, string(g)) }

type MaritalStatus string

var MaritalStatusValues = []string{"single", "married", "divorced", "widowed", "separated", "unknown"}

func (m MaritalStatus) IsValid() bool { return slices.Contains(MaritalStatusValues, string(m)) }

type OrganizationType string

const OrganizationTypeCompany OrganizationType = "company"

var OrganizationTypeValues = []string{
	"company", "partnership", "sole_proprietorship", "nonprofit",
	"government", "corporation", "llc", "other",
}

func (o OrganizationType) IsValid() bool { return slices.Contains(OrganizationTypeValues, string(o)) }

type NameType string

const NameTypeLegal NameType = "legal"

var NameTypeValues = []string{"legal", "trading", "brand", "other"}

func (n NameType) IsValid() bool { return slices.Contains(NameTypeValues, string(n)) }

// MediumType names a contact channel. Valid values depend on the variant.
type MediumType string

const (
	MediumEmail MediumType = "email"
	MediumPhone MediumType = "phone"
)

var (
	IndividualMediumTypes   = []string{"email", "phone", "mobile", "fax", "pager", "sms", "landline", "other"}
	OrganizationMediumTypes = []string{"email", "phone", "mobile", "fax", "pager", "sms", "landline", "website", "other"}
)

// MediumTypes returns the channel enum for a variant.
func MediumTypes(k Kind) []string {
	if k == KindOrganization {
		return OrganizationMediumTypes
	}
	return IndividualMediumTypes
}

// IdentificationType names an identity document. Valid values depend on the
// variant.
type IdentificationType string

const IdentificationBusinessRegistration IdentificationType = "businessRegistration"

var (
	IndividualIdentificationTypes   = []string{"passport", "nationalId", "drivingLicense", "socialSecurity", "other"}
	OrganizationIdentificationTypes = []string{"businessRegistration", "taxId", "vatNumber", "duns", "lei", "other"}
)

// IdentificationTypes returns the document enum for a variant.
func IdentificationTypes(k Kind) []string {
	if k == KindOrganization {
		return OrganizationIdentificationTypes
	}
	return IndividualIdentificationTypes
}

// RelatedPartyTypes lists the discriminators accepted on relatedParty entries.
var RelatedPartyTypes = []string{string(KindIndividual), string(KindOrganization)}
