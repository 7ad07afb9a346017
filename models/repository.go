package models

import "context"

// SentinelID marks a record the upstream store has not assigned an id yet.
// Creates send it for the event itself and for every newly added invitee.
const SentinelID = "00000000-0000-0000-0000-000000000000"

// ===== Events (held by the upstream store, not locally) =====

type Invitee struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Event struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	StartTime string    `json:"startTime"` // ISO-8601 at rest
	EndTime   string    `json:"endTime"`
	Venue     string    `json:"venue"`
	Invites   []Invitee `json:"invites"`
}

// Envelope is the {success, message, result} wrapper every upstream
// response uses. success=false is an application-level failure, not a
// transport one.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type EventPage struct {
	Data         []Event `json:"data"`
	TotalRecords int64   `json:"totalRecords"`
	PageNumber   int     `json:"pageNumber"`
	PageSize     int     `json:"pageSize"`
}

type EventListResponse struct {
	Envelope
	Result EventPage `json:"result"`
}

type CreateUpdateResponse struct {
	Envelope
	Result string `json:"result"`
}

type DeleteResult struct {
	ID string `json:"id"`
}

type DeleteResponse struct {
	Envelope
	Result DeleteResult `json:"result"`
}

// EventService is what the handlers program against; the real one wraps the
// upstream API behind the query cache, tests plug in a mock.
type EventService interface {
	List(ctx context.Context, pageNumber, pageSize int) (*EventListResponse, error)
	Save(ctx context.Context, e *Event) (*CreateUpdateResponse, error)
	Delete(ctx context.Context, id string) (*DeleteResponse, error)
}

// ===== Admin accounts (local Postgres) =====

type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserRepository interface {
	Create(u *User) error
	ValidateCredentials(email, plain string) (User, error)
	GetByID(id int64) (User, error)
}

// ===== Audit trail (local Mongo) =====

type AuditRepository interface {
	Record(e *AuditEntry) error
	Recent(limit int64) ([]AuditEntry, error)
}
