package inmemdb

import (
	"time"

	"github.com/trezcool/funil/core/pipeline"
	"github.com/trezcool/funil/core/proposal"
)

type proposalRepository struct {
	db *DB
}

var _ proposal.Repository = (*proposalRepository)(nil)

func NewProposalRepository(db *DB) proposal.Repository {
	return &proposalRepository{db: db}
}

func (repo *proposalRepository) QueryColumns() []pipeline.Column[proposal.Proposal] {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.db.proposals.Columns()
}

func (repo *proposalRepository) QueryByOpportunity(opportunityID string) []proposal.Proposal {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.db.proposals.Filter(func(p proposal.Proposal, _ string) bool {
		return p.OpportunityID == opportunityID
	})
}

func (repo *proposalRepository) GetProposal(id string) (proposal.Proposal, string, bool) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.db.proposals.Find(id)
}

func (repo *proposalRepository) CreateProposal(p proposal.Proposal) (proposal.Proposal, []proposal.Proposal, bool) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if p.Status == "" {
		p.Status = proposal.StatusDraft
	}
	if _, _, exists := repo.db.proposals.Find(p.ID); exists {
		return proposal.Proposal{}, nil, false
	}
	demoted, ok := proposal.Place(repo.db.proposals, p, time.Now().UTC())
	if !ok {
		return proposal.Proposal{}, nil, false
	}
	return p.Clone(), demoted, true
}

func (repo *proposalRepository) UpdateProposal(pt proposal.Patch) (proposal.Proposal, []proposal.Proposal, bool) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	return proposal.Apply(repo.db.proposals, pt, time.Now().UTC())
}

func (repo *proposalRepository) MoveProposal(id, from, to string) (proposal.Proposal, []proposal.Proposal, bool) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	return proposal.Move(repo.db.proposals, id, from, to, time.Now().UTC())
}
