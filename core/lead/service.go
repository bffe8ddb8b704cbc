package lead

import (
	"time"

	"github.com/trezcool/funil/core"
	"github.com/trezcool/funil/core/pipeline"
)

const entity = "lead"

type (
	// Repository is the lead pipeline store, with the same contract as the opportunity one.
	Repository interface {
		QueryColumns() []pipeline.Column[Card]
		GetCard(id string) (card Card, stage string, ok bool)
		UpdateCard(card Card) bool
		MoveCard(id, from, to string) bool
		CreateCard(card Card) Card
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

func (svc *Service) Create(card Card) Card {
	card.ID = core.EnsureID(card.ID)
	card.Stage = ""
	card.CreatedAt = time.Now().UTC()
	card = svc.repo.CreateCard(card)
	card.Stage = StageNew
	svc.metrics.Mutation(entity, "create", true)
	return card
}

func (svc *Service) Update(card Card) (Card, bool) {
	card.Stage = ""
	ok := svc.repo.UpdateCard(card)
	svc.metrics.Mutation(entity, "update", ok)
	if !ok {
		return Card{}, false
	}
	updated, _, ok := svc.GetByID(card.ID)
	return updated, ok
}

func (svc *Service) Move(id, from, to string) bool {
	ok := svc.repo.MoveCard(id, from, to)
	svc.metrics.Mutation(entity, "move", ok)
	if ok && from != to {
		svc.logger.Info("lead moved", map[string]interface{}{"id": id, "from": from, "to": to})
	}
	return ok
}

func (svc *Service) Delete(id string) bool {
	ok := svc.repo.DeleteCard(id)
	svc.metrics.Mutation(entity, "delete", ok)
	return ok
}
