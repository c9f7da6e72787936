package services

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/houseofcoffee/US-Chamber/directory"
	"github.com/houseofcoffee/US-Chamber/models"
	"github.com/houseofcoffee/US-Chamber/pkg/errors"
	"github.com/houseofcoffee/US-Chamber/pkg/monitoring"
)

// MemberService orchestrates the directory store against the spreadsheet
// endpoint: it validates create requests, dispatches them, and reconciles
// the store with server-confirmed state by reloading after every successful
// write. The store never holds a locally-fabricated record the endpoint did
// not confirm.
type MemberService struct {
	store  *directory.Store
	sheets SheetsClient

	// saving admits at most one outstanding create. The UI-level flag in the
	// original client was the only guard; here the service enforces it too.
	saving atomic.Bool

	// reloads collapses concurrent full reloads into one fetch.
	reloads singleflight.Group
}

// NewMemberService creates a new member service.
func NewMemberService(store *directory.Store, sheets SheetsClient) *MemberService {
	return &MemberService{store: store, sheets: sheets}
}

// Store exposes the read-only directory view backing the query endpoints.
func (s *MemberService) Store() *directory.Store {
	return s.store
}

// Saving reports whether a create is currently in flight.
func (s *MemberService) Saving() bool {
	return s.saving.Load()
}

// LoadDirectory replaces the store with a fresh fetch from the endpoint.
// A transport failure degrades to an empty store and returns a typed error;
// it never panics and never leaves stale confirmed state mixed with failures.
// Concurrent callers share a single fetch.
func (s *MemberService) LoadDirectory(ctx context.Context) error {
	_, err, _ := s.reloads.Do("load", func() (interface{}, error) {
		previous := s.store.Len()

		raw, err := s.sheets.FetchMembers(ctx)
		if err != nil {
			slog.Error("Failed to fetch members, loading empty directory", "error", err)
			s.store.Load(nil)
			monitoring.RecordDirectoryLoad(ctx, 0, previous, err)
			return nil, errors.TransportError("fetch members", err)
		}

		members := directory.NormalizeAll(raw)
		s.store.Load(members)
		monitoring.RecordDirectoryLoad(ctx, len(members), previous, nil)
		slog.Info("Directory loaded", "members", len(members))
		return nil, nil
	})
	return err
}

// ValidateForm checks the create/update preconditions: name, business name,
// and email must each be non-empty. Pure; performs no network call.
func (s *MemberService) ValidateForm(form models.MemberFormData) *errors.APIError {
	fields := map[string]string{}
	if strings.TrimSpace(form.Name) == "" {
		fields["name"] = "Name is required"
	}
	if strings.TrimSpace(form.BusinessName) == "" {
		fields["businessName"] = "Business name is required"
	}
	if strings.TrimSpace(form.Email) == "" {
		fields["email"] = "Email is required"
	}
	if len(fields) > 0 {
		return errors.ValidationError(fields)
	}
	return nil
}

// CreateMember validates the form, posts it to the endpoint, and reloads the
// directory so the store reflects only server-confirmed state. The returned
// member is the confirmed record when the reload contains the new id.
func (s *MemberService) CreateMember(ctx context.Context, form models.MemberFormData) (models.Member, error) {
	if err := s.ValidateForm(form); err != nil {
		return models.Member{}, err
	}

	if !s.saving.CompareAndSwap(false, true) {
		return models.Member{}, errors.ConflictError("A member is already being saved")
	}
	defer s.saving.Store(false)

	if len(form.Specialties) > models.MaxSpecialtiesPerMember {
		form.Specialties = form.Specialties[:models.MaxSpecialtiesPerMember]
	}

	result, err := s.sheets.AddMember(ctx, form)
	if err != nil {
		monitoring.RecordMemberCreate(ctx, "failure")
		slog.Error("Failed to create member", "error", err)
		return models.Member{}, errors.TransportError("create member", err)
	}
	monitoring.RecordMemberCreate(ctx, "success")

	// Reload-after-write: do not trust the create response to carry the
	// full, final record.
	if err := s.LoadDirectory(ctx); err != nil {
		return models.Member{}, err
	}

	if member, ok := s.store.Get(result.ID); ok {
		return member, nil
	}
	return models.Member{ID: result.ID, Name: form.Name, BusinessName: form.BusinessName,
		Email: form.Email, Phone: form.Phone, Address: form.Address,
		Website: form.Website, Specialties: form.Specialties, PhotoURL: form.PhotoURL}, nil
}

// UpdateMember is accepted at the interface but the endpoint defines no
// update verb; callers get an explicit not-available outcome rather than a
// silent success or a misleading transport failure.
func (s *MemberService) UpdateMember(ctx context.Context, id string, form models.MemberFormData) (models.Member, error) {
	if err := s.ValidateForm(form); err != nil {
		return models.Member{}, err
	}
	if _, ok := s.store.Get(id); !ok {
		return models.Member{}, errors.NotFoundError("Member")
	}
	return models.Member{}, errors.UnsupportedError("Updating a member")
}

// DeleteMember mirrors UpdateMember: no delete verb exists on the endpoint.
func (s *MemberService) DeleteMember(ctx context.Context, id string) error {
	if _, ok := s.store.Get(id); !ok {
		return errors.NotFoundError("Member")
	}
	return errors.UnsupportedError("Deleting a member")
}

// VerifyPIN gates edits to one record. The effective PIN is the stored PIN
// when present, otherwise the last four digits of the member's phone number.
// On a match the full member is returned so the edit form can be
// pre-populated; any mismatch yields the same generic unauthorized error.
func (s *MemberService) VerifyPIN(id, pin string) (models.Member, error) {
	member, ok := s.store.Get(id)
	if !ok {
		return models.Member{}, errors.NotFoundError("Member")
	}

	expected := member.PIN
	if expected == "" {
		expected = lastFourDigits(member.Phone)
	}
	if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(pin)) != 1 {
		return models.Member{}, errors.UnauthorizedError("Incorrect PIN")
	}
	return member, nil
}

// lastFourDigits extracts the trailing four digits of a phone number,
// ignoring formatting. Returns "" when fewer than four digits exist.
func lastFourDigits(phone string) string {
	digits := make([]rune, 0, len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) < 4 {
		return ""
	}
	return string(digits[len(digits)-4:])
}
