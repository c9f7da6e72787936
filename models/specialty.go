package models

import "strings"

// Specialty is one of the fixed business categories a member can carry.
// The set is closed; members hold at most two.
type Specialty string

const (
	SpecialtyAgriculture       Specialty = "Agriculture"
	SpecialtyConsulting        Specialty = "Consulting"
	SpecialtyECommerce         Specialty = "E-Commerce"
	SpecialtyFinancialServices Specialty = "Financial Services"
	SpecialtyHealthcare        Specialty = "Healthcare"
	SpecialtyLandscaping       Specialty = "Landscaping"
	SpecialtyMarketing         Specialty = "Marketing"
	SpecialtyMedia             Specialty = "Media"
	SpecialtyRetail            Specialty = "Retail"
	SpecialtyTechnology        Specialty = "Technology"
)

// AllSpecialties lists every valid specialty in display order.
var AllSpecialties = []Specialty{
	SpecialtyAgriculture,
	SpecialtyConsulting,
	SpecialtyECommerce,
	SpecialtyFinancialServices,
	SpecialtyHealthcare,
	SpecialtyLandscaping,
	SpecialtyMarketing,
	SpecialtyMedia,
	SpecialtyRetail,
	SpecialtyTechnology,
}

// MaxSpecialtiesPerMember caps how many specialties a single member may hold.
const MaxSpecialtiesPerMember = 2

// ParseSpecialty maps a free-form label onto a known specialty. Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseSpecialty(s string) (Specialty, bool) {
	trimmed := strings.TrimSpace(s)
	for _, specialty := range AllSpecialties {
		if strings.EqualFold(trimmed, string(specialty)) {
			return specialty, true
		}
	}
	return "", false
}
