package directory

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/houseofcoffee/US-Chamber/models"
)

func TestNormalizeEmptyRecordIsTotal(t *testing.T) {
	member := Normalize(RawMember{})

	assert.Equal(t, "", member.ID)
	assert.Equal(t, "", member.Name)
	assert.Equal(t, "", member.BusinessName)
	assert.Equal(t, "", member.Email)
	assert.Equal(t, "", member.Phone)
	assert.Equal(t, "", member.Address)
	assert.Equal(t, "", member.Website)
	assert.Equal(t, "", member.PhotoURL)
	assert.Equal(t, "", member.PIN)
	// An empty record still gets the default specialty.
	assert.Equal(t, []models.Specialty{models.SpecialtyConsulting}, member.Specialties)
}

func TestNormalizeWrongShapedFieldsBecomeEmpty(t *testing.T) {
	member := Normalize(RawMember{
		Name:    map[string]any{"first": "Jane"},
		Email:   []any{"a", "b"},
		Website: nil,
	})

	assert.Equal(t, "", member.Name)
	assert.Equal(t, "", member.Email)
	assert.Equal(t, "", member.Website)
}

func TestNormalizeSpecialtiesCapped(t *testing.T) {
	member := Normalize(RawMember{
		BusinessName: "Acme Corp",
		Specialties:  []any{"Technology", "Media", "Retail"},
	})
	assert.LessOrEqual(t, len(member.Specialties), models.MaxSpecialtiesPerMember)
}

func TestNormalizeCommaJoinedSpecialties(t *testing.T) {
	member := Normalize(RawMember{
		BusinessName: "Acme Corp",
		Specialties:  "Technology, Media",
	})
	assert.Equal(t, []models.Specialty{models.SpecialtyTechnology, models.SpecialtyMedia}, member.Specialties)
}

func TestNormalizeNumericPINRoundTripsAsString(t *testing.T) {
	var raw RawMember
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Jane Doe","pin":1234}`), &raw))

	member := Normalize(raw)
	assert.Equal(t, "1234", member.PIN)
}

func TestNormalizeFromEndpointJSON(t *testing.T) {
	payload := `[
		{"id":"m1","name":"Ann Adams","businessName":"Adams Dairy Farm","email":"ann@example.com","specialties":[]},
		{"id":"m2","name":"Bob Zeta","businessName":"Zeta Web Systems","email":"bob@example.com","specialties":["Marketing"]}
	]`
	var raw []RawMember
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))

	members := NormalizeAll(raw)
	require.Len(t, members, 2)

	assert.Equal(t, "Ann Adams", members[0].Name)
	assert.Equal(t, []models.Specialty{models.SpecialtyAgriculture}, members[0].Specialties)
	assert.Equal(t, []models.Specialty{models.SpecialtyMarketing}, members[1].Specialties)
}

func TestNormalizeAllSortsByLastNameToken(t *testing.T) {
	members := NormalizeAll([]RawMember{
		{Name: "Bob Zeta"},
		{Name: "Ann Adams"},
	})

	require.Len(t, members, 2)
	assert.Equal(t, "Ann Adams", members[0].Name)
	assert.Equal(t, "Bob Zeta", members[1].Name)
}

func TestNormalizeAllSortIsCaseInsensitiveAndEmptyNamesFirst(t *testing.T) {
	members := NormalizeAll([]RawMember{
		{Name: "Carol zimmer"},
		{Name: "Dan ABLE"},
		{Name: ""},
	})

	require.Len(t, members, 3)
	assert.Equal(t, "", members[0].Name)
	assert.Equal(t, "Dan ABLE", members[1].Name)
	assert.Equal(t, "Carol zimmer", members[2].Name)
}
