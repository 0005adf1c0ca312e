package normalize_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"partyhub/internal/party/models"
	"partyhub/internal/party/normalize"
	id "partyhub/pkg/domain"
)

type NormalizeSuite struct {
	suite.Suite
	now time.Time
}

func TestNormalizeSuite(t *testing.T) {
	suite.Run(t, new(NormalizeSuite))
}

func (s *NormalizeSuite) SetupTest() {
	s.now = time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)
}

func (s *NormalizeSuite) TestIndividualCreate() {
	s.Run("aliases resolve and display name is derived", func() {
		p, err := normalize.Individual(map[string]any{
			"firstName": "Ana",
			"lastName":  "Silva",
			"email":     "Ana@X.com",
			"status":    "terminated",
		}, models.ModeCreate, s.now)
		s.Require().NoError(err)
		s.Equal("Ana", *p.GivenName)
		s.Equal("Silva", *p.FamilyName)
		s.Equal("Ana Silva", *p.FullName)
		s.Equal(models.StatusActive, *p.Status)
		s.Nil(p.Authentication)
		s.Require().NotNil(p.ContactMedium)
		s.Equal([]models.ContactMedium{{
			MediumType:     models.MediumEmail,
			Preferred:      true,
			Characteristic: models.MediumCharacteristic{EmailAddress: "ana@x.com"},
		}}, *p.ContactMedium)
	})

	s.Run("canonical name wins over alias", func() {
		p, err := normalize.Individual(map[string]any{
			"givenName": "Ana", "firstName": "Anna", "familyName": "Silva",
		}, models.ModeCreate, s.now)
		s.Require().NoError(err)
		s.Equal("Ana", *p.GivenName)
	})

	s.Run("no contact fields yields empty media", func() {
		p, err := normalize.Individual(map[string]any{"givenName": "A", "familyName": "B"}, models.ModeCreate, s.now)
		s.Require().NoError(err)
		s.Require().NotNil(p.ContactMedium)
		s.Empty(*p.ContactMedium)
	})

	s.Run("explicit media come before derived entries", func() {
		p, err := normalize.Individual(map[string]any{
			"givenName": "A", "familyName": "B",
			"phone": " +447911123456 ",
			"contactMedium": []any{map[string]any{
				"mediumType": "fax", "characteristic": map[string]any{"faxNumber": "+441234"},
			}},
		}, models.ModeCreate, s.now)
		s.Require().NoError(err)
		media := *p.ContactMedium
		s.Require().Len(media, 2)
		s.Equal(models.MediumType("fax"), media[0].MediumType)
		s.Equal(models.MediumPhone, media[1].MediumType)
		s.False(media[1].Preferred)
		s.Equal("+447911123456", media[1].Characteristic.PhoneNumber)
	})

	s.Run("password stages credential with defaults", func() {
		p, err := normalize.Individual(map[string]any{
			"givenName": "A", "familyName": "B", "email": "a@b.io",
			"password": "Secret123", "subscribeToNewsletter": true,
		}, models.ModeCreate, s.now)
		s.Require().NoError(err)
		a := p.Authentication
		s.Require().NotNil(a)
		s.Equal("Secret123", *a.Password)
		s.Empty(a.HashedPassword)
		s.Equal("a@b.io", *a.Email)
		s.False(*a.AgreedToTerms)
		s.True(*a.SubscribedToNewsletter)
		s.Equal(s.now, a.AccountCreationDate)
	})

	s.Run("birth date is parsed", func() {
		p, err := normalize.Individual(map[string]any{
			"givenName": "A", "familyName": "B", "birthDate": "1990-05-17",
		}, models.ModeCreate, s.now)
		s.Require().NoError(err)
		s.Equal(time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC), *p.BirthDate)
	})
}

func (s *NormalizeSuite) TestIndividualUpdate() {
	s.Run("status only", func() {
		p, err := normalize.Individual(map[string]any{"status": "inactive"}, models.ModeUpdate, s.now)
		s.Require().NoError(err)
		s.Equal(models.StatusInactive, *p.Status)
		s.Nil(p.GivenName)
		s.Nil(p.FullName)
		s.Nil(p.ContactMedium)
		s.Nil(p.Email)
		s.Nil(p.Authentication)
	})

	s.Run("email becomes an upsert", func() {
		p, err := normalize.Individual(map[string]any{"email": "new@x.com"}, models.ModeUpdate, s.now)
		s.Require().NoError(err)
		s.Nil(p.ContactMedium)
		s.Require().NotNil(p.Email)
		s.Equal("new@x.com", p.Email.Characteristic.EmailAddress)
	})

	s.Run("flags are not defaulted", func() {
		p, err := normalize.Individual(map[string]any{"password": "Secret123"}, models.ModeUpdate, s.now)
		s.Require().NoError(err)
		s.Require().NotNil(p.Authentication)
		s.Nil(p.Authentication.AgreedToTerms)
		s.Nil(p.Authentication.Email)
	})

	s.Run("applied fragment leaves other fields untouched", func() {
		create, err := normalize.Individual(map[string]any{
			"firstName": "Ana", "lastName": "Silva", "email": "ana@x.com",
		}, models.ModeCreate, s.now)
		s.Require().NoError(err)
		ind, err := models.NewIndividual(id.NewPartyID(), create, s.now)
		s.Require().NoError(err)

		update, err := normalize.Individual(map[string]any{"status": "inactive"}, models.ModeUpdate, s.now)
		s.Require().NoError(err)
		later := s.now.Add(time.Minute)
		s.Require().NoError(ind.Apply(update, later))

		s.Equal(models.StatusInactive, ind.Status)
		s.Equal("Ana", ind.GivenName)
		s.Equal("Ana Silva", ind.FullName)
		s.Equal([]string{"ana@x.com"}, ind.EmailAddresses())
		s.Equal(s.now, ind.CreatedAt)
		s.Equal(later, ind.UpdatedAt)
	})
}

func (s *NormalizeSuite) TestOrganizationCreate() {
	s.Run("defaults and business registration", func() {
		p, err := normalize.Organization(map[string]any{
			"organizationName":           "Acme",
			"businessRegistrationNumber": "BR123",
		}, models.ModeCreate, s.now)
		s.Require().NoError(err)
		s.Equal("Acme", *p.Name)
		s.Equal("Acme", *p.TradingName)
		s.Equal(models.OrganizationTypeCompany, *p.OrganizationType)
		s.Equal(models.NameTypeLegal, *p.NameType)
		s.True(*p.IsLegalEntity)
		s.True(*p.IsHeadOffice)
		s.Equal(models.StatusActive, *p.Status)
		s.Require().NotNil(p.OrganizationIdentification)
		s.Equal([]models.Identification{{
			IdentificationType: models.IdentificationBusinessRegistration,
			IdentificationID:   "BR123",
			IssuingDate:        &s.now,
		}}, *p.OrganizationIdentification)
	})

	s.Run("explicit flags are kept", func() {
		p, err := normalize.Organization(map[string]any{
			"name": "Acme", "isLegalEntity": false, "tradingName": "ACME Shop",
		}, models.ModeCreate, s.now)
		s.Require().NoError(err)
		s.False(*p.IsLegalEntity)
		s.Equal("ACME Shop", *p.TradingName)
	})

	s.Run("contact person on credential", func() {
		p, err := normalize.Organization(map[string]any{
			"name": "Acme", "email": "Ops@Acme.io", "password": "Secret123",
			"firstName": " Jo ", "agreeToTerms": true,
		}, models.ModeCreate, s.now)
		s.Require().NoError(err)
		a := p.Authentication
		s.Require().NotNil(a)
		s.Equal("ops@acme.io", *a.ContactEmail)
		s.Equal("Jo", *a.ContactPersonName)
		s.True(*a.AgreedToTerms)
		s.Nil(a.Email)
	})

	s.Run("no password no credential", func() {
		p, err := normalize.Organization(map[string]any{"name": "Acme", "email": "a@acme.io"}, models.ModeCreate, s.now)
		s.Require().NoError(err)
		s.Nil(p.Authentication)
	})
}

func (s *NormalizeSuite) TestOrganizationUpdate() {
	p, err := normalize.Organization(map[string]any{"organizationName": "Acme Two"}, models.ModeUpdate, s.now)
	s.Require().NoError(err)
	s.Equal("Acme Two", *p.Name)
	s.Nil(p.TradingName)
	s.Nil(p.OrganizationType)
	s.Nil(p.IsHeadOffice)
	s.Nil(p.Status)
}
