package inmemdb

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/funil/core/account"
	"github.com/trezcool/funil/core/contact"
	"github.com/trezcool/funil/core/lead"
	"github.com/trezcool/funil/core/opportunity"
	"github.com/trezcool/funil/core/pipeline"
	"github.com/trezcool/funil/core/proposal"
	"github.com/trezcool/funil/core/student"
	"github.com/trezcool/funil/core/task"
)

// Pipeline names
const (
	PipelineOpportunities = "opportunities"
	PipelineProposals     = "proposals"
	PipelineLeads         = "leads"
)

// DB holds every entity collection of the process. All repositories built on the same DB
// share its lock, so each repository call is one serialized transaction.
type DB struct {
	mu sync.RWMutex

	opportunities *pipeline.Board[opportunity.Card]
	proposals     *proposal.Board
	leads         *pipeline.Board[lead.Card]

	accounts *pipeline.List[account.Account]
	contacts *pipeline.List[contact.Contact]
	students *pipeline.List[student.Student]
	tasks    *pipeline.List[task.Task]
}

// Open returns an empty store with every pipeline column in place.
func Open() *DB {
	return &DB{
		opportunities: pipeline.NewBoard[opportunity.Card](opportunity.Stages...),
		proposals:     proposal.NewBoard(),
		leads:         pipeline.NewBoard[lead.Card](lead.Stages...),
		accounts:      pipeline.NewList[account.Account](),
		contacts:      pipeline.NewList[contact.Contact](),
		students:      pipeline.NewList[student.Student](),
		tasks:         pipeline.NewList[task.Task](),
	}
}

// Snapshot is the full content of the store.
type Snapshot struct {
	Opportunities []pipeline.Column[opportunity.Card]
	Proposals     []pipeline.Column[proposal.Proposal]
	Leads         []pipeline.Column[lead.Card]
	Accounts      []account.Account
	Contacts      []contact.Contact
	Students      []student.Student
	Tasks         []task.Task
}

func (db *DB) Snapshot() Snapshot {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return Snapshot{
		Opportunities: db.opportunities.Columns(),
		Proposals:     db.proposals.Columns(),
		Leads:         db.leads.Columns(),
		Accounts:      db.accounts.All(),
		Contacts:      db.contacts.All(),
		Students:      db.students.All(),
		Tasks:         db.tasks.All(),
	}
}

func fill[T pipeline.Entity[T]](b *pipeline.Board[T], cols []pipeline.Column[T], relabel func(T, string) T) error {
	for _, col := range cols {
		if !b.HasColumn(col.Title) {
			return errors.Errorf("unknown column %q", col.Title)
		}
		for _, card := range col.Cards {
			if _, _, exists := b.Find(card.EntityID()); exists {
				return errors.Errorf("duplicate card %q", card.EntityID())
			}
			if relabel != nil {
				card = relabel(card, col.Title)
			}
			b.Append(col.Title, card)
		}
	}
	return nil
}

// Restore replaces the whole content of the store. Column order of cards is kept.
// Nothing is changed when the snapshot names unknown columns, repeats a card id
// or holds more than one Accepted proposal for an opportunity.
func (db *DB) Restore(s Snapshot) error {
	opportunities := pipeline.NewBoard[opportunity.Card](opportunity.Stages...)
	if err := fill(opportunities, s.Opportunities, func(c opportunity.Card, _ string) opportunity.Card {
		c.Stage = ""
		return c
	}); err != nil {
		return errors.Wrap(err, "restoring opportunities")
	}

	proposals := proposal.NewBoard()
	if err := fill(proposals, s.Proposals, func(p proposal.Proposal, status string) proposal.Proposal {
		p.Status = status
		return p
	}); err != nil {
		return errors.Wrap(err, "restoring proposals")
	}
	if violations := proposal.Violations(proposals); len(violations) > 0 {
		return errors.Errorf("restoring proposals: %d opportunities with several accepted proposals", len(violations))
	}

	leads := pipeline.NewBoard[lead.Card](lead.Stages...)
	if err := fill(leads, s.Leads, func(c lead.Card, _ string) lead.Card {
		c.Stage = ""
		return c
	}); err != nil {
		return errors.Wrap(err, "restoring leads")
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	db.opportunities = opportunities
	db.proposals = proposals
	db.leads = leads
	db.accounts = pipeline.NewList(s.Accounts...)
	db.contacts = pipeline.NewList(s.Contacts...)
	db.students = pipeline.NewList(s.Students...)
	db.tasks = pipeline.NewList(s.Tasks...)
	return nil
}

// Counts returns the number of cards per column of every pipeline.
func (db *DB) Counts() map[string]map[string]int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return map[string]map[string]int{
		PipelineOpportunities: db.opportunities.Count(),
		PipelineProposals:     db.proposals.Count(),
		PipelineLeads:         db.leads.Count(),
	}
}
