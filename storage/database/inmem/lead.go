package inmemdb

import (
	"github.com/trezcool/funil/core/lead"
	"github.com/trezcool/funil/core/pipeline"
)

type leadRepository struct {
	db *DB
}

var _ lead.Repository = (*leadRepository)(nil)

func NewLeadRepository(db *DB) lead.Repository {
	return &leadRepository{db: db}
}

func (repo *leadRepository) QueryColumns() []pipeline.Column[lead.Card] {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.db.leads.Columns()
}

func (repo *leadRepository) GetCard(id string) (lead.Card, string, bool) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.db.leads.Find(id)
}

func (repo *leadRepository) UpdateCard(card lead.Card) bool {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	prev, _, ok := repo.db.leads.Find(card.ID)
	if !ok {
		return false
	}
	if card.CreatedAt.IsZero() {
		card.CreatedAt = prev.CreatedAt
	}
	return repo.db.leads.Replace(card)
}

func (repo *leadRepository) MoveCard(id, from, to string) bool {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	return repo.db.leads.Move(id, from, to, nil)
}

func (repo *leadRepository) CreateCard(card lead.Card) lead.Card {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	repo.db.leads.Prepend(lead.StageNew, card)
	return card
}

func (repo *leadRepository) DeleteCard(id string) bool {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	return repo.db.leads.Delete(id) > 0
}
