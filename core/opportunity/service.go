package opportunity

import (
	"time"

	"github.com/trezcool/funil/core"
	"github.com/trezcool/funil/core/pipeline"
)

const entity = "opportunity"

type (
	// Repository is the opportunity pipeline store.
	// Every method runs as one serialized transaction. Not-found ids make mutations no-ops (false).
	Repository interface {
		QueryColumns() []pipeline.Column[Card]
		GetCard(id string) (card Card, stage string, ok bool)
		// UpdateCard replaces the card in whichever column holds it. It never migrates columns.
		UpdateCard(card Card) bool
		// MoveCard removes the card from `from`, applies the patch and appends it to `to`.
		MoveCard(id, from, to string, patch *Patch) bool
		// CreateCard prepends the card to StageNew.
		CreateCard(card Card) Card
		// DeleteCard removes the id from every column.
		DeleteCard(id string) bool
	}

	Service struct {
		repo    Repository
		logger  core.Logger
		metrics core.Metrics
	}
)

func NewService(repo Repository, logger core.Logger, metrics core.Metrics) *Service {
	return &Service{repo: repo, logger: logger, metrics: metrics}
}

// Columns returns the pipeline; every card carries its stage.
func (svc *Service) Columns() []pipeline.Column[Card] {
	cols := svc.repo.QueryColumns()
	for i := range cols {
		for j := range cols[i].Cards {
			cols[i].Cards[j].Stage = cols[i].Title
		}
	}
	return cols
}

func (svc *Service) GetByID(id string) (Card, string, bool) {
	card, stage, ok := svc.repo.GetCard(id)
	if ok {
		card.Stage = stage
	}
	return card, stage, ok
}

// Create places the card at the head of StageNew, whatever stage the caller asked for.
func (svc *Service) Create(card Card) Card {
	now := time.Now().UTC()
	card.ID = core.EnsureID(card.ID)
	card.Stage = ""
	card.CreatedAt = now
	card.UpdatedAt = now
	if card.ExperimentalClasses == nil {
		card.ExperimentalClasses = []ExperimentalClass{}
	}
	for i := range card.ExperimentalClasses {
		card.ExperimentalClasses[i].ID = core.EnsureID(card.ExperimentalClasses[i].ID)
	}

	card = svc.repo.CreateCard(card)
	card.Stage = StageNew
	svc.metrics.Mutation(entity, "create", true)
	return card
}

func (svc *Service) Update(card Card) (Card, bool) {
	card.UpdatedAt = time.Now().UTC()
	card.Stage = ""
	for i := range card.ExperimentalClasses {
		card.ExperimentalClasses[i].ID = core.EnsureID(card.ExperimentalClasses[i].ID)
	}
	ok := svc.repo.UpdateCard(card)
	svc.metrics.Mutation(entity, "update", ok)
	if !ok {
		return Card{}, false
	}
	updated, _, ok := svc.GetByID(card.ID)
	return updated, ok
}

// Move transfers the card between stages. Any stage may move to any stage.
func (svc *Service) Move(id, from, to string, patch *Patch) bool {
	ok := svc.repo.MoveCard(id, from, to, patch)
	svc.metrics.Mutation(entity, "move", ok)
	if ok && from != to {
		svc.logger.Info("opportunity moved", map[string]interface{}{"id": id, "from": from, "to": to})
	}
	return ok
}

func (svc *Service) Delete(id string) bool {
	ok := svc.repo.DeleteCard(id)
	svc.metrics.Mutation(entity, "delete", ok)
	return ok
}
