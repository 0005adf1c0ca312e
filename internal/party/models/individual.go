package models

import (
	"strings"
	"time"

	id "partyhub/pkg/domain"
	dErrors "partyhub/pkg/domain-errors"
)

// Individual is a natural person.
//
// Invariants:
//   - GivenName and FamilyName are non-empty
//   - CreatedAt is immutable after construction
//   - AuthenticationContext is nil until a credential is supplied
type Individual struct {
	Party
	GivenName                string            `json:"givenName"`
	FamilyName               string            `json:"familyName"`
	FullName                 string            `json:"fullName,omitempty"`
	FormattedName            string            `json:"formattedName,omitempty"`
	Title                    string            `json:"title,omitempty"`
	BirthDate                *time.Time        `json:"birthDate,omitempty"`
	DeathDate                *time.Time        `json:"deathDate,omitempty"`
	CountryOfBirth           string            `json:"countryOfBirth,omitempty"`
	PlaceOfBirth             string            `json:"placeOfBirth,omitempty"`
	Gender                   Gender            `json:"gender,omitempty"`
	MaritalStatus            MaritalStatus     `json:"maritalStatus,omitempty"`
	Nationality              string            `json:"nationality,omitempty"`
	IndividualIdentification []Identification  `json:"individualIdentification,omitempty"`
	LanguageAbility          []LanguageAbility `json:"languageAbility,omitempty"`
	Skill                    []Skill           `json:"skill,omitempty"`
}

type LanguageAbility struct {
	LanguageCode         string `json:"languageCode,omitempty"`
	LanguageName         string `json:"languageName,omitempty"`
	ListeningProficiency string `json:"listeningProficiency,omitempty"`
	ReadingProficiency   string `json:"readingProficiency,omitempty"`
	SpeakingProficiency  string `json:"speakingProficiency,omitempty"`
	WritingProficiency   string `json:"writingProficiency,omitempty"`
	IsFavouriteLanguage  bool   `json:"isFavouriteLanguage,omitempty"`
}

type Skill struct {
	SkillCode      string `json:"skillCode,omitempty"`
	SkillName      string `json:"skillName,omitempty"`
	Comment        string `json:"comment,omitempty"`
	EvaluatedLevel string `json:"evaluatedLevel,omitempty"`
	SkillCategory  string `json:"skillCategory,omitempty"`
}

func (i *Individual) Kind() Kind   { return KindIndividual }
func (i *Individual) Core() *Party { return &i.Party }

func (i *Individual) SearchFields() SearchFields {
	return SearchFields{GivenName: i.GivenName, FamilyName: i.FamilyName}
}

// IndividualPatch is a normalized fragment. Nil pointers mean "not supplied".
type IndividualPatch struct {
	PartyPatch
	GivenName                *string
	FamilyName               *string
	FullName                 *string
	FormattedName            *string
	Title                    *string
	BirthDate                *time.Time
	DeathDate                *time.Time
	CountryOfBirth           *string
	PlaceOfBirth             *string
	Gender                   *Gender
	MaritalStatus            *MaritalStatus
	Nationality              *string
	IndividualIdentification *[]Identification
	LanguageAbility          *[]LanguageAbility
	Skill                    *[]Skill
}

// NewIndividual builds a record from a creation fragment.
func NewIndividual(partyID id.PartyID, p *IndividualPatch, now time.Time) (*Individual, error) {
	i := &Individual{Party: newParty(partyID, now)}
	if err := i.Apply(p, now); err != nil {
		return nil, err
	}
	i.CreatedAt = now
	return i, nil
}

// Apply merges the supplied fields and refreshes UpdatedAt.
func (i *Individual) Apply(p *IndividualPatch, now time.Time) error {
	if p == nil {
		return dErrors.New(dErrors.CodeInvariantViolation, "individual fragment is required")
	}
	if err := i.Party.apply(&p.PartyPatch, now); err != nil {
		return err
	}
	setString(&i.GivenName, p.GivenName)
	setString(&i.FamilyName, p.FamilyName)
	setString(&i.FullName, p.FullName)
	setString(&i.FormattedName, p.FormattedName)
	setString(&i.Title, p.Title)
	setString(&i.CountryOfBirth, p.CountryOfBirth)
	setString(&i.PlaceOfBirth, p.PlaceOfBirth)
	setString(&i.Nationality, p.Nationality)
	if p.BirthDate != nil {
		i.BirthDate = p.BirthDate
	}
	if p.DeathDate != nil {
		i.DeathDate = p.DeathDate
	}
	if p.Gender != nil {
		i.Gender = *p.Gender
	}
	if p.MaritalStatus != nil {
		i.MaritalStatus = *p.MaritalStatus
	}
	setSlice(&i.IndividualIdentification, p.IndividualIdentification)
	setSlice(&i.LanguageAbility, p.LanguageAbility)
	setSlice(&i.Skill, p.Skill)
	return i.validate()
}

func (i *Individual) validate() error {
	if strings.TrimSpace(i.GivenName) == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "givenName cannot be empty")
	}
	if strings.TrimSpace(i.FamilyName) == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "familyName cannot be empty")
	}
	return validateIdentifications(i.IndividualIdentification)
}
