package services

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/gophvote/internal/client/models"
)

const noSelection = "No candidate selected"

// SummaryRow is one line of the final summary. Candidate is nil when the
// student made no selection for Position.
type SummaryRow struct {
	Position  string
	Candidate *models.Candidate
	Status    string
}

type ballotView interface {
	Categories() []models.Category
	Snapshot() models.SessionState
	Reset()
}

type sessionEnder interface {
	Logout(ctx context.Context)
}

// SummaryPresenter shows the selections at the end of the ballot and
// closes the session.
type SummaryPresenter struct {
	ballot  ballotView
	session sessionEnder
}

func NewSummaryPresenter(ballot ballotView, session sessionEnder) *SummaryPresenter {
	return &SummaryPresenter{ballot: ballot, session: session}
}

// Rows returns one row per category in ballot order.
func (p *SummaryPresenter) Rows() []SummaryRow {
	state := p.ballot.Snapshot()
	cats := p.ballot.Categories()

	rows := make([]SummaryRow, 0, len(cats))
	for _, cat := range cats {
		row := SummaryRow{Position: cat.Position}
		if id, ok := state.Selections[cat.Position]; ok {
			row.Candidate = cat.Candidate(id)
		}
		switch {
		case state.Recorded[cat.Position]:
			row.Status = OutcomeRecorded.String()
		case state.AlreadyVoted[cat.Position]:
			row.Status = OutcomeAlreadyVoted.String()
		}
		rows = append(rows, row)
	}
	return rows
}

// Render writes the summary table to w.
func (p *SummaryPresenter) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "POSITION\tCANDIDATE\tDEPARTMENT\tSTATUS")
	for _, r := range p.Rows() {
		name, dept := noSelection, ""
		if r.Candidate != nil {
			name, dept = r.Candidate.Name, r.Candidate.Department
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Position, name, dept, r.Status)
	}
	return tw.Flush()
}

// FinalizeAndLogout ends the session and clears the ballot.
func (p *SummaryPresenter) FinalizeAndLogout(ctx context.Context) {
	p.session.Logout(ctx)
	p.ballot.Reset()
}
