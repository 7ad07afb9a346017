package types

import (
	"fmt"

	"eventdesk/models"
	"eventdesk/utils"
)

// Layout picks the column arrangement from the viewport width; re-evaluated
// by the shell on every resize event.
type Layout string

const (
	LayoutTabular Layout = "tabular" // desktop columns
	LayoutStacked Layout = "stacked" // single card column
)

// DesktopMinWidth is the breakpoint, in logical pixels.
const DesktopMinWidth = 768

func SelectLayout(width int) Layout {
	if width >= DesktopMinWidth {
		return LayoutTabular
	}
	return LayoutStacked
}

// EventRow carries one event display-ready: dates split into calendar and
// clock parts, invitees summarized. Event keeps the full record so the edit
// affordance can hand it back unchanged.
type EventRow struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Venue          string       `json:"venue"`
	StartDate      string       `json:"startDate"`
	StartClock     string       `json:"startClock"`
	EndDate        string       `json:"endDate"`
	EndClock       string       `json:"endClock"`
	InviteeCount   int          `json:"inviteeCount"`
	InviteeSummary string       `json:"inviteeSummary"`
	InviteeNames   []string     `json:"inviteeNames"`
	Event          models.Event `json:"event"`
}

type ListView struct {
	Layout     Layout     `json:"layout"`
	Empty      bool       `json:"empty"`
	EmptyTitle string     `json:"emptyTitle,omitempty"`
	EmptyHint  string     `json:"emptyHint,omitempty"`
	Rows       []EventRow `json:"rows"`
	Pagination Pagination `json:"pagination"`
}

const (
	emptyTitle = "No Events Found"
	emptyHint  = "Create your first event to get started!"
)

func inviteeSummary(n int) string {
	switch {
	case n == 0:
		return "No invitees"
	case n == 1:
		return "1 person"
	default:
		return fmt.Sprintf("%d people", n)
	}
}

// BuildListView turns one fetched page into the list view-model. A page
// with zero rows renders the empty-state placeholder instead of a table.
func BuildListView(page models.EventPage, width int) ListView {
	view := ListView{
		Layout:     SelectLayout(width),
		Rows:       make([]EventRow, 0, len(page.Data)),
		Pagination: NewPagination(page.PageNumber, page.PageSize, page.TotalRecords),
	}

	if len(page.Data) == 0 {
		view.Empty = true
		view.EmptyTitle = emptyTitle
		view.EmptyHint = emptyHint
		return view
	}

	for _, e := range page.Data {
		row := EventRow{
			ID:             e.ID,
			Name:           e.Name,
			Venue:          e.Venue,
			StartDate:      utils.FormatDate(e.StartTime, false),
			StartClock:     utils.FormatDate(e.StartTime, true),
			EndDate:        utils.FormatDate(e.EndTime, false),
			EndClock:       utils.FormatDate(e.EndTime, true),
			InviteeCount:   len(e.Invites),
			InviteeSummary: inviteeSummary(len(e.Invites)),
			Event:          e,
		}
		for _, inv := range e.Invites {
			row.InviteeNames = append(row.InviteeNames, inv.Name)
		}
		view.Rows = append(view.Rows, row)
	}
	return view
}
