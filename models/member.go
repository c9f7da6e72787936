package models

// Member is one directory entry: a business professional's profile.
// The directory store owns Member values for the lifetime of a session;
// the spreadsheet endpoint is the authoritative owner across sessions.
type Member struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	BusinessName string      `json:"businessName"`
	Email        string      `json:"email"`
	Phone        string      `json:"phone"`
	Address      string      `json:"address"`
	Website      string      `json:"website"`
	Specialties  []Specialty `json:"specialties"`
	PhotoURL     string      `json:"photoUrl"`

	// PIN authorizes edits to this record. Never serialized to API clients.
	PIN string `json:"-"`
}

// MemberFormData is the create/update payload: a Member without the
// server-assigned ID.
type MemberFormData struct {
	Name         string      `json:"name"`
	BusinessName string      `json:"businessName"`
	Email        string      `json:"email"`
	Phone        string      `json:"phone"`
	Address      string      `json:"address"`
	Website      string      `json:"website"`
	Specialties  []Specialty `json:"specialties"`
	PhotoURL     string      `json:"photoUrl"`
}

// CreateMemberResponse mirrors the spreadsheet endpoint's POST result.
type CreateMemberResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
}

// SessionRequest carries the shared directory password.
type SessionRequest struct {
	Password string `json:"password"`
}

// SessionResponse returns the signed session token issued on a successful
// password check.
type SessionResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

// VerifyPINRequest carries the 4-digit code guarding edits to one member.
type VerifyPINRequest struct {
	PIN string `json:"pin"`
}
