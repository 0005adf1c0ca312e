package models

import "strings"

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// ListFilter narrows a listing. Name filters are case-insensitive substring
// matches; an empty value means "no filter".
type ListFilter struct {
	Status           Status
	OrganizationType OrganizationType
	GivenName        string
	FamilyName       string
	Name             string
	Limit            int
	Offset           int
}

// ScopedTo drops the filters that kind has no column for: individuals are
// searched by given and family name, organizations by name and type.
func (f ListFilter) ScopedTo(kind Kind) ListFilter {
	switch kind {
	case KindIndividual:
		f.Name, f.OrganizationType = "", ""
	case KindOrganization:
		f.GivenName, f.FamilyName = "", ""
	}
	return f
}

// Matches reports whether r satisfies every filter that is set.
func (f ListFilter) Matches(r Record) bool {
	if f.Status != "" && r.Core().Status != f.Status {
		return false
	}
	sf := r.SearchFields()
	if f.OrganizationType != "" && sf.OrganizationType != string(f.OrganizationType) {
		return false
	}
	return containsFold(sf.GivenName, f.GivenName) &&
		containsFold(sf.FamilyName, f.FamilyName) &&
		containsFold(sf.Name, f.Name)
}

func containsFold(s, sub string) bool {
	if sub == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// Page is one window of a listing plus the total match count.
type Page[R Record] struct {
	Items  []R
	Total  int
	Limit  int
	Offset int
}
