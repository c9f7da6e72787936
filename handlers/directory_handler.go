package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/houseofcoffee/US-Chamber/auth"
	"github.com/houseofcoffee/US-Chamber/models"
	"github.com/houseofcoffee/US-Chamber/pkg/errors"
	"github.com/houseofcoffee/US-Chamber/services"
	"github.com/houseofcoffee/US-Chamber/shared/utils"
)

// SampleGenerator seeds demo data; optional, nil when no API key is set.
type SampleGenerator interface {
	GenerateSampleMembers(ctx context.Context, n int) ([]models.Member, error)
}

// DirectoryHandler wires the member service and the access gates onto HTTP
// routes.
type DirectoryHandler struct {
	members  *services.MemberService
	sessions *auth.SessionManager
	samples  SampleGenerator
}

// NewDirectoryHandler creates the handler. samples may be nil.
func NewDirectoryHandler(members *services.MemberService, sessions *auth.SessionManager, samples SampleGenerator) *DirectoryHandler {
	return &DirectoryHandler{members: members, sessions: sessions, samples: samples}
}

// SetupRoutes configures all API routes. sessionGuard wraps everything
// except the session endpoint itself.
func (h *DirectoryHandler) SetupRoutes(mux *http.ServeMux, sessionGuard func(http.Handler) http.Handler) {
	mux.Handle("/api/v1/auth/session", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleSession)))
	mux.Handle("/api/v1/members", utils.PanicRecoveryMiddleware(sessionGuard(http.HandlerFunc(h.handleMembers))))
	mux.Handle("/api/v1/members/", utils.PanicRecoveryMiddleware(sessionGuard(http.HandlerFunc(h.handleMembers))))
}

// handleSession handles POST /api/v1/auth/session
func (h *DirectoryHandler) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, expiresAt, err := h.sessions.Authorize(req.Password)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, models.SessionResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	})
}

// handleMembers dispatches member routes:
//
//	GET    /api/v1/members?q=&specialty=
//	POST   /api/v1/members
//	POST   /api/v1/members/sample
//	PUT    /api/v1/members/:id
//	DELETE /api/v1/members/:id
//	POST   /api/v1/members/:id/verify-pin
func (h *DirectoryHandler) handleMembers(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/members")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	if len(parts) == 1 && parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			h.listMembers(w, r)
		case http.MethodPost:
			h.createMember(w, r)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if len(parts) == 1 && parts[0] == "sample" {
		if r.Method == http.MethodPost {
			h.seedSampleMembers(w, r)
		} else {
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	memberID := parts[0]
	if memberID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Member ID is required")
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodPut:
			h.updateMember(w, r, memberID)
		case http.MethodDelete:
			h.deleteMember(w, r, memberID)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if len(parts) == 2 && parts[1] == "verify-pin" {
		if r.Method == http.MethodPost {
			h.verifyPIN(w, r, memberID)
		} else {
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
}

// listMembers returns the visible subset for a search term and an optional
// specialty filter.
func (h *DirectoryHandler) listMembers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	term := query.Get("q")

	var specialty *models.Specialty
	if raw := query.Get("specialty"); raw != "" {
		parsed, ok := models.ParseSpecialty(raw)
		if !ok {
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown specialty")
			return
		}
		specialty = &parsed
	}

	members := h.members.Store().Visible(term, specialty)
	utils.RespondWithJSON(w, http.StatusOK, members)
}

func (h *DirectoryHandler) createMember(w http.ResponseWriter, r *http.Request) {
	var form models.MemberFormData
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	member, err := h.members.CreateMember(r.Context(), form)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, member)
}

func (h *DirectoryHandler) updateMember(w http.ResponseWriter, r *http.Request, memberID string) {
	var form models.MemberFormData
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.members.UpdateMember(r.Context(), memberID, form); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
}

func (h *DirectoryHandler) deleteMember(w http.ResponseWriter, r *http.Request, memberID string) {
	if err := h.members.DeleteMember(r.Context(), memberID); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
}

// verifyPIN opens the edit path for one member: on a match the full record
// comes back for form pre-population.
func (h *DirectoryHandler) verifyPIN(w http.ResponseWriter, r *http.Request, memberID string) {
	var req models.VerifyPINRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	member, err := h.members.VerifyPIN(memberID, req.PIN)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, member)
}

// seedSampleMembers populates the store with generated demo profiles. The
// generated records are not persisted to the endpoint; they live for this
// server session only.
func (h *DirectoryHandler) seedSampleMembers(w http.ResponseWriter, r *http.Request) {
	if h.samples == nil {
		utils.RespondWithAPIError(w, errors.UnsupportedError("Sample data generation"))
		return
	}

	members, err := h.samples.GenerateSampleMembers(r.Context(), 3)
	if err != nil {
		utils.RespondWithAPIError(w, errors.TransportError("generate sample members", err))
		return
	}

	for i := len(members) - 1; i >= 0; i-- {
		h.members.Store().InsertFront(members[i])
	}
	utils.RespondWithJSON(w, http.StatusCreated, members)
}
