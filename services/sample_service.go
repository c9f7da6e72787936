package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/houseofcoffee/US-Chamber/directory"
	"github.com/houseofcoffee/US-Chamber/models"
)

const sampleModel = "gemini-2.5-flash"

// SampleService seeds demo data by asking a text-generation model for
// realistic member profiles. Its output is untrusted input and goes through
// the normalizer like anything else from the outside.
type SampleService struct {
	client *genai.Client
}

// NewSampleService creates a sample generator backed by the Gemini API.
func NewSampleService(ctx context.Context, apiKey string) (*SampleService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("sample generator API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &SampleService{client: client}, nil
}

// GenerateSampleMembers returns n fictional member profiles, normalized,
// with fresh ids and deterministic placeholder photos.
func (s *SampleService) GenerateSampleMembers(ctx context.Context, n int) ([]models.Member, error) {
	if n <= 0 {
		n = 3
	}

	labels := make([]string, 0, len(models.AllSpecialties))
	for _, specialty := range models.AllSpecialties {
		labels = append(labels, string(specialty))
	}

	prompt := fmt.Sprintf(
		"Generate %d realistic business professional profiles for a directory. "+
			"They should have diverse specialties from this list: %s. "+
			"Ensure phone numbers and emails look realistic but are fictional.",
		n, strings.Join(labels, ", "))

	result, err := s.client.Models.GenerateContent(ctx, sampleModel,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   sampleSchema(),
		})
	if err != nil {
		return nil, fmt.Errorf("failed to generate sample members: %w", err)
	}

	jsonText := result.Text()
	if jsonText == "" {
		return nil, fmt.Errorf("sample generator returned no content")
	}

	var raw []directory.RawMember
	if err := json.Unmarshal([]byte(jsonText), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse generated members: %w", err)
	}

	members := directory.NormalizeAll(raw)
	for i := range members {
		members[i].ID = uuid.New().String()
		// The model tends to invent dead image URLs; replace them with
		// seeded placeholders.
		seed := strings.ReplaceAll(members[i].Name, " ", "")
		members[i].PhotoURL = fmt.Sprintf("https://picsum.photos/seed/%s%d/400/300", seed, i)
	}
	return members, nil
}

func sampleSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"id":           {Type: genai.TypeString},
				"name":         {Type: genai.TypeString},
				"businessName": {Type: genai.TypeString},
				"email":        {Type: genai.TypeString},
				"phone":        {Type: genai.TypeString},
				"address":      {Type: genai.TypeString},
				"website":      {Type: genai.TypeString},
				"photoUrl":     {Type: genai.TypeString},
				"specialties": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
			},
			Required: []string{"name", "businessName", "email", "phone", "specialties"},
		},
	}
}
