package inmemdb

import (
	"time"

	"github.com/trezcool/funil/core/opportunity"
	"github.com/trezcool/funil/core/pipeline"
)

type opportunityRepository struct {
	db *DB
}

var _ opportunity.Repository = (*opportunityRepository)(nil)

func NewOpportunityRepository(db *DB) opportunity.Repository {
	return &opportunityRepository{db: db}
}

func (repo *opportunityRepository) QueryColumns() []pipeline.Column[opportunity.Card] {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.db.opportunities.Columns()
}

func (repo *opportunityRepository) GetCard(id string) (opportunity.Card, string, bool) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.db.opportunities.Find(id)
}

func (repo *opportunityRepository) UpdateCard(card opportunity.Card) bool {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	prev, _, ok := repo.db.opportunities.Find(card.ID)
	if !ok {
		return false
	}
	if card.CreatedAt.IsZero() {
		card.CreatedAt = prev.CreatedAt
	}
	return repo.db.opportunities.Replace(card)
}

func (repo *opportunityRepository) MoveCard(id, from, to string, patch *opportunity.Patch) bool {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	now := time.Now().UTC()
	return repo.db.opportunities.Move(id, from, to, func(c opportunity.Card) opportunity.Card {
		if patch == nil && from == to {
			return c
		}
		c = patch.Apply(c)
		c.UpdatedAt = now
		return c
	})
}

func (repo *opportunityRepository) CreateCard(card opportunity.Card) opportunity.Card {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	repo.db.opportunities.Prepend(opportunity.StageNew, card)
	return card.Clone()
}

func (repo *opportunityRepository) DeleteCard(id string) bool {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	return repo.db.opportunities.Delete(id) > 0
}
