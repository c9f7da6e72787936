package directory

import (
	"strings"

	"github.com/houseofcoffee/US-Chamber/models"
)

// keywordRule maps a set of business-name keywords onto one specialty.
// Rules are scanned in order; the first two matching categories win.
type keywordRule struct {
	specialty models.Specialty
	keywords  []string
}

var keywordTable = []keywordRule{
	{models.SpecialtyAgriculture, []string{"farm", "hay", "dairy"}},
	{models.SpecialtyConsulting, []string{"consult", "advis", "strategy"}},
	{models.SpecialtyECommerce, []string{"ecommerce", "e-commerce", "online", "commerce"}},
	{models.SpecialtyFinancialServices, []string{"financ", "capital", "wealth", "tax", "insurance"}},
	{models.SpecialtyHealthcare, []string{"health", "medical", "clinic", "dental", "wellness"}},
	{models.SpecialtyLandscaping, []string{"landscap", "lawn", "garden", "tree", "nursery"}},
	{models.SpecialtyMarketing, []string{"marketing", "brand", "seo", "creative"}},
	{models.SpecialtyMedia, []string{"media", "studio", "film", "video", "photo", "press"}},
	{models.SpecialtyRetail, []string{"retail", "boutique", "shop", "store", "market"}},
	{models.SpecialtyTechnology, []string{"tech", "web", "data", "systems", "digital", "cyber"}},
}

// InferSpecialties resolves a member's specialties. Explicit data always
// wins: a non-empty existing list whose first element is not the empty-string
// sentinel is returned as-is (parsed onto the known set, capped at two).
// Otherwise the business name is matched against the keyword table, and a
// member that matches nothing defaults to Consulting.
//
// Pure and total: no side effects, never fails.
func InferSpecialties(businessName string, existing []string) []models.Specialty {
	if len(existing) > 0 && strings.TrimSpace(existing[0]) != "" {
		parsed := make([]models.Specialty, 0, models.MaxSpecialtiesPerMember)
		for _, label := range existing {
			specialty, ok := models.ParseSpecialty(label)
			if !ok {
				continue
			}
			if len(parsed) == models.MaxSpecialtiesPerMember {
				break
			}
			parsed = append(parsed, specialty)
		}
		if len(parsed) > 0 {
			return parsed
		}
	}

	lowered := strings.ToLower(businessName)
	matches := make([]models.Specialty, 0, models.MaxSpecialtiesPerMember)
	for _, rule := range keywordTable {
		if len(matches) == models.MaxSpecialtiesPerMember {
			break
		}
		for _, keyword := range rule.keywords {
			if strings.Contains(lowered, keyword) {
				matches = append(matches, rule.specialty)
				break
			}
		}
	}

	if len(matches) == 0 {
		return []models.Specialty{models.SpecialtyConsulting}
	}
	return matches
}
