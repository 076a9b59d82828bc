package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophvote/internal/client/models"
	"github.com/dmitrijs2005/gophvote/internal/client/services"
)

const (
	labelCastVote    = "Cast Vote"
	labelViewSummary = "View Summary"
)

// loadBallot fetches the candidates and shows the first position. A load
// failure is reported here; the student can retry with 'ballot'.
func (a *App) loadBallot(ctx context.Context) {
	if err := a.ballot.Load(ctx); err != nil {
		fmt.Fprintln(a.out, "Error:", describe(err))
		return
	}
	a.showBallot()
}

// Ballot shows the open position, loading the ballot first if needed.
func (a *App) Ballot(ctx context.Context) error {
	switch a.ballot.Snapshot().Phase {
	case models.PhaseLoading, models.PhaseFailed:
		a.loadBallot(ctx)
		return nil
	}
	a.showBallot()
	return nil
}

// Select chooses candidateID for the open position.
func (a *App) Select(_ context.Context, candidateID string) error {
	cat, ok := a.ballot.Current()
	if !ok {
		return fmt.Errorf("%w: no position is open", services.ErrValidation)
	}
	if err := a.ballot.SelectCandidate(cat.Position, candidateID); err != nil {
		return err
	}
	if a.ballot.Snapshot().Submitting {
		return nil
	}

	c := cat.Candidate(candidateID)
	fmt.Fprintf(a.out, "Selected %s for %s.\n", c.Name, cat.Position)
	return nil
}

// Vote submits the selection for the open position.
func (a *App) Vote(ctx context.Context) error {
	outcome, err := a.ballot.SubmitCurrentVote(ctx)
	if err != nil {
		return err
	}
	if outcome == services.OutcomeRecorded {
		fmt.Fprintln(a.out, "Vote recorded!")
	}
	a.showBallot()
	return nil
}

func (a *App) Previous(context.Context) error {
	if err := a.ballot.Previous(); err != nil {
		return err
	}
	a.showBallot()
	return nil
}

func (a *App) Next(context.Context) error {
	if err := a.ballot.Next(); err != nil {
		return err
	}
	a.showBallot()
	return nil
}

// Summary prints every position with the selected candidate.
func (a *App) Summary(context.Context) error {
	if a.ballot.Snapshot().Phase == models.PhaseLoading {
		return errors.New("the ballot is not loaded yet")
	}
	fmt.Fprintln(a.out, "Vote Summary")
	return a.summary.Render(a.out)
}

// Finish completes voting: the session is closed and the ballot cleared.
func (a *App) Finish(ctx context.Context) error {
	a.summary.FinalizeAndLogout(ctx)
	fmt.Fprintln(a.out, "Thank you for voting!")
	return nil
}

func (a *App) showBallot() {
	state := a.ballot.Snapshot()

	switch state.Phase {
	case models.PhaseEmpty:
		fmt.Fprintln(a.out, "No candidates available.")
		return
	case models.PhaseFailed:
		fmt.Fprintln(a.out, "Candidates could not be loaded. Type 'ballot' to try again.")
		return
	case models.PhaseSummary:
		fmt.Fprintln(a.out, "Vote Summary")
		if err := a.summary.Render(a.out); err != nil {
			a.logger.Error(context.Background(), "rendering summary", "error", err)
		}
		fmt.Fprintln(a.out, "Type 'finish' to complete voting and log out.")
		return
	case models.PhaseVoting:
	default:
		return
	}

	cat, ok := a.ballot.Current()
	if !ok {
		return
	}

	fmt.Fprintf(a.out, "\n%s\n%s\n", a.ballot.Progress(), cat.Position)
	selected := state.Selections[cat.Position]
	for _, c := range cat.Candidates {
		mark := " "
		if c.ID == selected {
			mark = "*"
		}
		fmt.Fprintf(a.out, " %s [%s] %s (%s)\n", mark, c.ID, c.Name, c.Department)
	}

	label := labelCastVote
	if a.ballot.IsLast() {
		label = labelViewSummary
	}
	fmt.Fprintf(a.out, "Type 'select <id>' then 'vote' to %s.\n", label)
}
