package forms

import (
	"regexp"
	"strings"

	"eventdesk/models"
	"eventdesk/utils"
)

// State tracks the form lifecycle independent of any UI toolkit.
type State string

const (
	StatePristine State = "pristine"
	StateTouched  State = "touched"
	StateValid    State = "valid"
	StateInvalid  State = "invalid"
)

type FieldErrors map[string]string

var emailRE = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// EventForm is the editor over one event: scalar fields plus an
// independently edited invitee list, all transient until submit.
type EventForm struct {
	eventID string // original id for edits, sentinel for creates
	editing bool

	Name      string
	Venue     string
	StartTime string // local editing representation, "2006-01-02T15:04"
	EndTime   string

	Invitees        []models.Invitee
	NewInviteeName  string
	NewInviteeEmail string

	Errors        FieldErrors // scalar field errors, set by Validate
	InviteeErrors FieldErrors // field-level errors on the add-invitee inputs

	state State
}

// NewEventForm seeds the editor. A non-nil event prefills every scalar
// field and deep-copies its invitee list; nil seeds empty defaults for a
// create.
func NewEventForm(ev *models.Event) *EventForm {
	f := &EventForm{
		eventID:       models.SentinelID,
		Errors:        FieldErrors{},
		InviteeErrors: FieldErrors{},
		state:         StatePristine,
	}
	if ev == nil {
		return f
	}

	f.editing = ev.ID != "" && ev.ID != models.SentinelID
	if f.editing {
		f.eventID = ev.ID
	}
	f.Name = ev.Name
	f.Venue = ev.Venue
	f.StartTime = utils.ToLocalInput(ev.StartTime)
	f.EndTime = utils.ToLocalInput(ev.EndTime)
	f.Invitees = append([]models.Invitee(nil), ev.Invites...)
	return f
}

func (f *EventForm) State() State  { return f.state }
func (f *EventForm) Editing() bool { return f.editing }

// SetField updates one scalar field and moves a pristine form to touched.
func (f *EventForm) SetField(field, value string) {
	switch field {
	case "name":
		f.Name = value
	case "venue":
		f.Venue = value
	case "startTime":
		f.StartTime = value
	case "endTime":
		f.EndTime = value
	default:
		return
	}
	if f.state == StatePristine {
		f.state = StateTouched
	}
}

// Validate checks presence of the required scalar fields. No ordering check
// between start and end time; presence only.
func (f *EventForm) Validate() bool {
	errs := FieldErrors{}
	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Event name is required"
	}
	if strings.TrimSpace(f.Venue) == "" {
		errs["venue"] = "Event venue is required"
	}
	if strings.TrimSpace(f.StartTime) == "" {
		errs["startTime"] = "Start time is required"
	}
	if strings.TrimSpace(f.EndTime) == "" {
		errs["endTime"] = "End time is required"
	}
	f.Errors = errs
	if len(errs) == 0 {
		f.state = StateValid
		return true
	}
	f.state = StateInvalid
	return false
}

func (f *EventForm) validateNewInvitee() bool {
	errs := FieldErrors{}
	if strings.TrimSpace(f.NewInviteeName) == "" {
		errs["name"] = "Name is required"
	}
	email := strings.TrimSpace(f.NewInviteeEmail)
	if email == "" {
		errs["email"] = "Email is required"
	} else if !emailRE.MatchString(email) {
		errs["email"] = "Invalid email address"
	}
	f.InviteeErrors = errs
	return len(errs) == 0
}

// AddInvitee appends the pending invitee inputs to local state with a
// sentinel id and clears them. A duplicate email (case-insensitive among
// current invitees) sets a field-level error and leaves the list unchanged;
// it never blocks the form itself.
func (f *EventForm) AddInvitee() bool {
	if !f.validateNewInvitee() {
		return false
	}
	for _, inv := range f.Invitees {
		if strings.EqualFold(inv.Email, f.NewInviteeEmail) {
			f.InviteeErrors = FieldErrors{"email": "This email has already been invited."}
			return false
		}
	}
	f.Invitees = append(f.Invitees, models.Invitee{
		ID:    models.SentinelID,
		Name:  f.NewInviteeName,
		Email: f.NewInviteeEmail,
	})
	f.NewInviteeName = ""
	f.NewInviteeEmail = ""
	f.InviteeErrors = FieldErrors{}
	if f.state == StatePristine {
		f.state = StateTouched
	}
	return true
}

// RemoveInvitee filters the entry with the given id out of local state.
func (f *EventForm) RemoveInvitee(id string) {
	kept := f.Invitees[:0]
	for _, inv := range f.Invitees {
		if inv.ID != id {
			kept = append(kept, inv)
		}
	}
	f.Invitees = kept
}

// Submit validates, assembles the complete event (original id preserved for
// edits, sentinel for creates, invitee list as currently edited) and resets
// the form's transient state. Returns false without assembling when
// validation fails.
func (f *EventForm) Submit() (*models.Event, bool) {
	if !f.Validate() {
		return nil, false
	}
	ev := &models.Event{
		ID:        f.eventID,
		Name:      f.Name,
		StartTime: f.StartTime,
		EndTime:   f.EndTime,
		Venue:     f.Venue,
		Invites:   append([]models.Invitee(nil), f.Invitees...),
	}
	f.reset()
	return ev, true
}

// reset discards transient state, as closing the editor does.
func (f *EventForm) reset() {
	*f = EventForm{
		eventID:       models.SentinelID,
		Errors:        FieldErrors{},
		InviteeErrors: FieldErrors{},
		state:         StatePristine,
	}
}

// EditorView is the seeded editor as the shell renders it.
type EditorView struct {
	Title       string           `json:"title"`
	SubmitLabel string           `json:"submitLabel"`
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Venue       string           `json:"venue"`
	StartTime   string           `json:"startTime"`
	EndTime     string           `json:"endTime"`
	Invitees    []models.Invitee `json:"invitees"`
	State       State            `json:"state"`
}

func (f *EventForm) View() EditorView {
	v := EditorView{
		Title:       "Create Event",
		SubmitLabel: "Add Event",
		ID:          f.eventID,
		Name:        f.Name,
		Venue:       f.Venue,
		StartTime:   f.StartTime,
		EndTime:     f.EndTime,
		Invitees:    f.Invitees,
		State:       f.state,
	}
	if f.editing {
		v.Title = "Edit Event"
		v.SubmitLabel = "Save Changes"
	}
	if v.Invitees == nil {
		v.Invitees = []models.Invitee{}
	}
	return v
}
