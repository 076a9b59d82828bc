package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophvote/internal/api"
	"github.com/dmitrijs2005/gophvote/internal/client/client"
	"github.com/dmitrijs2005/gophvote/internal/client/models"
	"github.com/dmitrijs2005/gophvote/internal/logging"
)

// Outcome tells the caller how a submitted vote was taken.
type Outcome int

const (
	OutcomeNone Outcome = iota
	// OutcomeRecorded: the service accepted the vote.
	OutcomeRecorded
	// OutcomeAlreadyVoted: the service had a vote for this position
	// already. The ballot advances all the same.
	OutcomeAlreadyVoted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRecorded:
		return "recorded"
	case OutcomeAlreadyVoted:
		return "already voted"
	}
	return "none"
}

// TokenSource supplies the bearer token for authenticated calls.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// BallotSequencer walks the student through the categories one at a time.
// The lock is never held across a network call; the submitting flag keeps
// the current category frozen while a vote is in flight.
type BallotSequencer struct {
	client client.Client
	tokens TokenSource
	logger logging.Logger

	mu           sync.Mutex
	phase        models.Phase
	categories   []models.Category
	index        int
	furthest     int
	selections   models.SelectionMap
	recorded     map[string]bool
	alreadyVoted map[string]bool
	submitting   bool
	lastErr      string
}

func NewBallotSequencer(c client.Client, tokens TokenSource, logger logging.Logger) *BallotSequencer {
	b := &BallotSequencer{
		client: c,
		tokens: tokens,
		logger: logger.With("module", "ballot"),
	}
	b.reset()
	return b
}

// Load fetches the candidate list and opens the first category. The
// sequencer ends up in PhaseVoting, PhaseEmpty or PhaseFailed.
func (b *BallotSequencer) Load(ctx context.Context) error {
	b.mu.Lock()
	b.reset()
	b.mu.Unlock()

	// The candidate list is public on some deployments; send a token when
	// there is one.
	token, err := b.tokens.Token(ctx)
	if err != nil {
		b.logger.Debug(ctx, "loading candidates without token", "error", err)
		token = ""
	}

	list, err := b.client.Candidates(ctx, token)

	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.phase = models.PhaseFailed
		b.lastErr = client.Message(err)
		b.logger.Error(ctx, "fetching candidates", "error", err)
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}

	b.categories = models.GroupByPosition(list)
	if len(b.categories) == 0 {
		b.phase = models.PhaseEmpty
		return nil
	}
	b.phase = models.PhaseVoting
	b.logger.Debug(ctx, "ballot loaded", "categories", len(b.categories), "candidates", len(list))
	return nil
}

// Current returns the open category. ok is false outside PhaseVoting.
func (b *BallotSequencer) Current() (models.Category, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.phase != models.PhaseVoting {
		return models.Category{}, false
	}
	return b.categories[b.index], true
}

// Categories returns the loaded categories in ballot order.
func (b *BallotSequencer) Categories() []models.Category {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Category(nil), b.categories...)
}

// SelectCandidate records the choice for the open category, replacing any
// earlier one. While a vote is in flight the call is ignored.
func (b *BallotSequencer) SelectCandidate(position, candidateID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.submitting {
		return nil
	}
	if b.phase != models.PhaseVoting {
		return fmt.Errorf("%w: no category is open", ErrValidation)
	}
	cat := b.categories[b.index]
	if position != cat.Position {
		return fmt.Errorf("%w: %q is not the open category", ErrValidation, position)
	}
	if cat.Candidate(candidateID) == nil {
		return fmt.Errorf("%w: no candidate %q for %s", ErrValidation, candidateID, position)
	}
	b.selections[position] = candidateID
	return nil
}

// SubmitCurrentVote sends the selection for the open category. Accepted
// and duplicate votes both advance the ballot; any other failure keeps the
// category open with its selection so it can be sent again.
func (b *BallotSequencer) SubmitCurrentVote(ctx context.Context) (Outcome, error) {
	b.mu.Lock()
	if b.phase != models.PhaseVoting {
		b.mu.Unlock()
		return OutcomeNone, fmt.Errorf("%w: no category is open", ErrValidation)
	}
	if b.submitting {
		b.mu.Unlock()
		return OutcomeNone, ErrBusy
	}
	position := b.categories[b.index].Position
	candidateID, ok := b.selections[position]
	if !ok {
		b.mu.Unlock()
		return OutcomeNone, fmt.Errorf("%w: please select a candidate for %s", ErrValidation, position)
	}
	b.submitting = true
	b.lastErr = ""
	b.mu.Unlock()

	token, err := b.tokens.Token(ctx)
	if err == nil {
		_, err = b.client.Vote(ctx, token, api.VoteRequest{Position: position, CandidateID: candidateID})
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.submitting = false

	switch {
	case err == nil:
		b.recorded[position] = true
		delete(b.alreadyVoted, position)
		b.advance()
		b.logger.Info(ctx, "vote recorded", "position", position)
		return OutcomeRecorded, nil

	case errors.Is(err, client.ErrAlreadyVoted):
		if !b.recorded[position] {
			b.alreadyVoted[position] = true
		}
		b.advance()
		b.logger.Info(ctx, "position already voted", "position", position)
		return OutcomeAlreadyVoted, nil

	default:
		b.lastErr = client.Message(err)
		b.logger.Warn(ctx, "vote rejected", "position", position, "error", err)
		return OutcomeNone, fmt.Errorf("%w: %w", ErrVote, err)
	}
}

// advance moves past the open category, into PhaseSummary after the last.
// Callers hold mu.
func (b *BallotSequencer) advance() {
	if b.index == len(b.categories)-1 {
		b.phase = models.PhaseSummary
		return
	}
	b.index++
	if b.index > b.furthest {
		b.furthest = b.index
	}
}

// Previous reopens the category before the current one.
func (b *BallotSequencer) Previous() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.canMove(); err != nil {
		return err
	}
	if b.index == 0 {
		return fmt.Errorf("%w: already at the first position", ErrNavigation)
	}
	b.index--
	return nil
}

// Next reopens the following category, provided it was reached before.
func (b *BallotSequencer) Next() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.canMove(); err != nil {
		return err
	}
	if b.index+1 > b.furthest {
		return fmt.Errorf("%w: submit a vote for %s first", ErrNavigation, b.categories[b.index].Position)
	}
	b.index++
	return nil
}

func (b *BallotSequencer) canMove() error {
	if b.phase != models.PhaseVoting {
		return fmt.Errorf("%w: no category is open", ErrNavigation)
	}
	if b.submitting {
		return ErrBusy
	}
	return nil
}

// IsLast reports whether the open category is the final one.
func (b *BallotSequencer) IsLast() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.phase == models.PhaseVoting && b.index == len(b.categories)-1
}

// Progress renders the position counter, e.g. "1 of 2 positions".
func (b *BallotSequencer) Progress() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := len(b.categories)
	cur := b.index + 1
	if b.phase == models.PhaseSummary {
		cur = n
	}
	return fmt.Sprintf("%d of %d positions", cur, n)
}

// Snapshot returns a copy of the sequencer state.
func (b *BallotSequencer) Snapshot() models.SessionState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return models.SessionState{
		Phase:        b.phase,
		Index:        b.index,
		Furthest:     b.furthest,
		Total:        len(b.categories),
		Selections:   b.selections.Clone(),
		Recorded:     cloneFlags(b.recorded),
		AlreadyVoted: cloneFlags(b.alreadyVoted),
		Submitting:   b.submitting,
		LastError:    b.lastErr,
	}
}

// Reset discards the ballot and every selection.
func (b *BallotSequencer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reset()
}

func (b *BallotSequencer) reset() {
	b.phase = models.PhaseLoading
	b.categories = nil
	b.index = 0
	b.furthest = 0
	b.selections = make(models.SelectionMap)
	b.recorded = make(map[string]bool)
	b.alreadyVoted = make(map[string]bool)
	b.submitting = false
	b.lastErr = ""
}

func cloneFlags(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
