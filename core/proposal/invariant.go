package proposal

import (
	"time"

	"github.com/trezcool/funil/core/pipeline"
)

// Board is the proposal pipeline: one column per status.
type Board = pipeline.Board[Proposal]

func NewBoard() *Board {
	return pipeline.NewBoard[Proposal](Statuses...)
}

// supersededColumn is where demoted proposals go: the Superseded column, or the first one when there is none.
func supersededColumn(b *Board) string {
	if b.HasColumn(StatusSuperseded) {
		return StatusSuperseded
	}
	return b.FirstTitle()
}

// Demote relabels every Accepted proposal of the opportunity except `keepID` as Superseded
// and relocates it to the Superseded column. It returns the demoted proposals.
func Demote(b *Board, opportunityID, keepID string, now time.Time) []Proposal {
	accepted := b.Filter(func(p Proposal, title string) bool {
		return p.OpportunityID == opportunityID && p.ID != keepID && (p.IsAccepted() || title == StatusAccepted)
	})
	target := supersededColumn(b)
	demoted := make([]Proposal, 0, len(accepted))
	for _, acc := range accepted {
		p, _, ok := b.Take(acc.ID)
		if !ok {
			continue
		}
		p.Status = StatusSuperseded
		p.UpdatedAt = now
		b.Prepend(target, p)
		demoted = append(demoted, p.Clone())
	}
	return demoted
}

// Place inserts a new proposal at the head of its status column.
// Placing an Accepted proposal demotes its Accepted siblings first.
// Unknown status columns make it a no-op.
func Place(b *Board, p Proposal, now time.Time) (demoted []Proposal, ok bool) {
	if p.Status == "" {
		p.Status = StatusDraft
	}
	if !b.HasColumn(p.Status) {
		return nil, false
	}
	if p.IsAccepted() {
		demoted = Demote(b, p.OpportunityID, p.ID, now)
	}
	return demoted, b.Prepend(p.Status, p)
}

// Apply is the update algorithm:
//  1. when the result is Accepted, demote every other Accepted proposal of the same opportunity;
//  2. remove the proposal from its current column;
//  3. merge the patch onto the previous card and insert it at the head of its status column.
//
// After Apply, an opportunity has at most one Accepted proposal. Missing ids or
// status columns make it a no-op.
func Apply(b *Board, pt Patch, now time.Time) (updated Proposal, demoted []Proposal, ok bool) {
	prev, _, found := b.Find(pt.ID)
	if !found {
		return Proposal{}, nil, false
	}
	next := pt.Merge(prev)
	if !b.HasColumn(next.Status) {
		return Proposal{}, nil, false
	}
	next.UpdatedAt = now

	if next.IsAccepted() {
		demoted = Demote(b, next.OpportunityID, next.ID, now)
	}
	b.Take(next.ID)
	b.Prepend(next.Status, next)
	return next.Clone(), demoted, true
}

// Move is Apply with the status set to the destination column, so a drag and drop can never
// bypass the single Accepted rule. The proposal must currently sit in `from`.
// Dropping a card back onto its own column changes nothing.
func Move(b *Board, id, from, to string, now time.Time) (updated Proposal, demoted []Proposal, ok bool) {
	if !b.HasColumn(from) || !b.HasColumn(to) {
		return Proposal{}, nil, false
	}
	prev, title, found := b.Find(id)
	if !found || title != from {
		return Proposal{}, nil, false
	}
	if from == to {
		return prev, nil, true
	}
	return Apply(b, Patch{ID: id, Status: &to}, now)
}

// Violations returns the number of Accepted proposals of every opportunity having more than one.
func Violations(b *Board) map[string]int {
	counts := make(map[string]int)
	for _, p := range b.Filter(func(p Proposal, title string) bool { return p.IsAccepted() || title == StatusAccepted }) {
		counts[p.OpportunityID]++
	}
	for id, n := range counts {
		if n <= 1 {
			delete(counts, id)
		}
	}
	return counts
}
