package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/houseofcoffee/US-Chamber/models"
)

func TestFetchMembersParsesLooselyTypedRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		// One clean record, one with a numeric pin and comma-joined
		// specialties, one nearly empty.
		w.Write([]byte(`[
			{"id":"m1","name":"Ann Adams","businessName":"Adams Dairy Farm","email":"ann@example.com","specialties":["Agriculture"]},
			{"id":"m2","name":"Bob Zeta","specialties":"Technology, Media","pin":1234},
			{"id":"m3"}
		]`))
	}))
	defer server.Close()

	client := NewHTTPSheetsClient(server.URL, 5*time.Second)
	raw, err := client.FetchMembers(context.Background())

	require.NoError(t, err)
	require.Len(t, raw, 3)
	assert.Equal(t, "Ann Adams", raw[0].Name)
	assert.Equal(t, float64(1234), raw[1].PIN)
	assert.Nil(t, raw[2].Name)
}

func TestFetchMembersNonOKStatusIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewHTTPSheetsClient(server.URL, 5*time.Second)
	_, err := client.FetchMembers(context.Background())
	assert.Error(t, err)
}

func TestAddMemberPostsFormAndParsesResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var form models.MemberFormData
		require.NoError(t, json.NewDecoder(r.Body).Decode(&form))
		assert.Equal(t, "Jane Doe", form.Name)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"id":"srv-7"}`))
	}))
	defer server.Close()

	client := NewHTTPSheetsClient(server.URL, 5*time.Second)
	result, err := client.AddMember(context.Background(), models.MemberFormData{
		Name: "Jane Doe", BusinessName: "Doe Farm", Email: "jane@example.com",
	})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "srv-7", result.ID)
}

func TestAddMemberEndpointRejectionIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false}`))
	}))
	defer server.Close()

	client := NewHTTPSheetsClient(server.URL, 5*time.Second)
	_, err := client.AddMember(context.Background(), models.MemberFormData{Name: "Jane Doe"})
	assert.Error(t, err)
}

func TestClientHonorsTimeout(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	client := NewHTTPSheetsClient(server.URL, 50*time.Millisecond)
	_, err := client.FetchMembers(context.Background())
	assert.Error(t, err)
}
