package directory

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/houseofcoffee/US-Chamber/models"
)

// RawMember is one loosely-typed record as the spreadsheet endpoint returns
// it. Every field may be absent or of the wrong shape; normalization never
// rejects a record.
type RawMember struct {
	ID           any `json:"id"`
	Name         any `json:"name"`
	BusinessName any `json:"businessName"`
	Email        any `json:"email"`
	Phone        any `json:"phone"`
	Address      any `json:"address"`
	Website      any `json:"website"`
	Specialties  any `json:"specialties"`
	PhotoURL     any `json:"photoUrl"`
	PIN          any `json:"pin"`
}

// Normalize converts one raw record into a fully-populated Member. Missing or
// malformed fields become empty strings; specialties are inferred from the
// business name when the record carries none.
func Normalize(raw RawMember) models.Member {
	businessName := coerceString(raw.BusinessName)

	return models.Member{
		ID:           coerceString(raw.ID),
		Name:         coerceString(raw.Name),
		BusinessName: businessName,
		Email:        coerceString(raw.Email),
		Phone:        coerceString(raw.Phone),
		Address:      coerceString(raw.Address),
		Website:      coerceString(raw.Website),
		Specialties:  InferSpecialties(businessName, coerceStringSlice(raw.Specialties)),
		PhotoURL:     coerceString(raw.PhotoURL),
		PIN:          coerceString(raw.PIN),
	}
}

// NormalizeAll normalizes a whole collection and sorts it ascending by the
// case-insensitive last whitespace-delimited token of the member name, an
// approximation of surname order. Members with empty names sort first.
func NormalizeAll(raw []RawMember) []models.Member {
	members := make([]models.Member, 0, len(raw))
	for _, r := range raw {
		members = append(members, Normalize(r))
	}

	sort.SliceStable(members, func(i, j int) bool {
		return lastNameToken(members[i].Name) < lastNameToken(members[j].Name)
	})
	return members
}

// lastNameToken returns the lower-cased final whitespace-delimited token of a
// full name, or "" for a blank name.
func lastNameToken(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[len(fields)-1])
}

// coerceString turns any scalar into its string form. Numbers round-trip
// through their decimal representation; a numeric PIN has already lost any
// leading zeros by the time it reaches us, and that is left as-is.
func coerceString(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case json.Number:
		return value.String()
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case bool:
		return strconv.FormatBool(value)
	default:
		return ""
	}
}

// coerceStringSlice accepts specialties as either a JSON array or a single
// comma-joined string and returns a plain string slice either way.
func coerceStringSlice(v any) []string {
	switch value := v.(type) {
	case []string:
		return value
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			out = append(out, coerceString(item))
		}
		return out
	case string:
		if strings.TrimSpace(value) == "" {
			return nil
		}
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			out = append(out, strings.TrimSpace(part))
		}
		return out
	default:
		return nil
	}
}
