package models

import (
	"time"

	id "partyhub/pkg/domain"
	"partyhub/pkg/email"
)

// Record is implemented by *Individual and *Organization.
type Record interface {
	Kind() Kind
	Core() *Party
	SearchFields() SearchFields
}

// SearchFields are the promoted columns used for filtering and sorting.
type SearchFields struct {
	GivenName        string
	FamilyName       string
	Name             string
	OrganizationType string
}

// Party holds the attributes shared by both variants. It is embedded so its
// fields flatten into the variant's JSON document.
type Party struct {
	ID                      id.PartyID                `json:"id"`
	Status                  Status                    `json:"status"`
	ContactMedium           []ContactMedium           `json:"contactMedium"`
	RelatedParty            []RelatedParty            `json:"relatedParty,omitempty"`
	PartyCharacteristic     []Characteristic          `json:"partyCharacteristic,omitempty"`
	ExternalReference       []ExternalReference       `json:"externalReference,omitempty"`
	TaxExemptionCertificate []TaxExemptionCertificate `json:"taxExemptionCertificate,omitempty"`
	AuthenticationContext   *AuthenticationContext    `json:"authenticationContext,omitempty"`
	CreatedAt               time.Time                 `json:"createdAt"`
	UpdatedAt               time.Time                 `json:"updatedAt"`
}

// TimePeriod is a validity window.
type TimePeriod struct {
	StartDateTime *time.Time `json:"startDateTime,omitempty"`
	EndDateTime   *time.Time `json:"endDateTime,omitempty"`
}

type ContactMedium struct {
	MediumType     MediumType           `json:"mediumType"`
	Preferred      bool                 `json:"preferred"`
	Characteristic MediumCharacteristic `json:"characteristic"`
	ValidFor       *TimePeriod          `json:"validFor,omitempty"`
}

type MediumCharacteristic struct {
	EmailAddress    string `json:"emailAddress,omitempty"`
	PhoneNumber     string `json:"phoneNumber,omitempty"`
	FaxNumber       string `json:"faxNumber,omitempty"`
	Website         string `json:"website,omitempty"`
	SocialNetworkID string `json:"socialNetworkId,omitempty"`
	City            string `json:"city,omitempty"`
	Country         string `json:"country,omitempty"`
	PostCode        string `json:"postCode,omitempty"`
	StateOrProvince string `json:"stateOrProvince,omitempty"`
	Street1         string `json:"street1,omitempty"`
	Street2         string `json:"street2,omitempty"`
}

type Identification struct {
	IdentificationType IdentificationType `json:"identificationType"`
	IdentificationID   string             `json:"identificationId"`
	IssuingAuthority   string             `json:"issuingAuthority,omitempty"`
	IssuingDate        *time.Time         `json:"issuingDate,omitempty"`
	ValidFor           *TimePeriod        `json:"validFor,omitempty"`
}

// RelatedParty is a weak reference; the referenced record is never checked.
type RelatedParty struct {
	ID   string `json:"id"`
	Href string `json:"href,omitempty"`
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
	Type Kind   `json:"type,omitempty"`
}

type Characteristic struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	ValueType string `json:"valueType,omitempty"`
}

type ExternalReference struct {
	ExternalReferenceType string `json:"externalReferenceType,omitempty"`
	Name                  string `json:"name,omitempty"`
	Href                  string `json:"href,omitempty"`
}

type Attachment struct {
	AttachmentType string `json:"attachmentType,omitempty"`
	Content        string `json:"content,omitempty"`
	Description    string `json:"description,omitempty"`
	MimeType       string `json:"mimeType,omitempty"`
	Name           string `json:"name,omitempty"`
	URL            string `json:"url,omitempty"`
	Size           int64  `json:"size,omitempty"`
}

type TaxDefinition struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	TaxType string `json:"taxType,omitempty"`
}

type TaxExemptionCertificate struct {
	Attachment    *Attachment     `json:"attachment,omitempty"`
	TaxDefinition []TaxDefinition `json:"taxDefinition,omitempty"`
	ValidFor      *TimePeriod     `json:"validFor,omitempty"`
}

// AuthenticationContext exists only once a credential has been supplied.
// HashedPassword is never serialized; stores keep it in a dedicated column.
type AuthenticationContext struct {
	Email                  string     `json:"email,omitempty"`
	ContactEmail           string     `json:"contactEmail,omitempty"`
	ContactPersonName      string     `json:"contactPersonName,omitempty"`
	HashedPassword         string     `json:"-"`
	LastLoginDate          *time.Time `json:"lastLoginDate,omitempty"`
	AccountCreationDate    time.Time  `json:"accountCreationDate"`
	AgreedToTerms          bool       `json:"agreedToTerms"`
	SubscribedToNewsletter bool       `json:"subscribedToNewsletter"`
}

// EmailAddresses returns the normalized, de-duplicated email addresses found in
// the contact media. These are the uniqueness keys of the record.
func (p *Party) EmailAddresses() []string {
	addrs := make([]string, 0, len(p.ContactMedium))
	for _, cm := range p.ContactMedium {
		addrs = append(addrs, cm.Characteristic.EmailAddress)
	}
	out := email.NormalizeAll(addrs)
	if len(out) == 0 {
		return nil
	}
	return out
}

// PasswordHash returns the credential hash, if one is loaded.
func (p *Party) PasswordHash() string {
	if p.AuthenticationContext == nil {
		return ""
	}
	return p.AuthenticationContext.HashedPassword
}

// Redact strips the credential hash before a record leaves the service.
func (p *Party) Redact() {
	if p.AuthenticationContext != nil {
		p.AuthenticationContext.HashedPassword = ""
	}
}
