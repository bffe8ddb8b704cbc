package opportunity_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/funil/core"
	"github.com/trezcool/funil/core/opportunity"
	inmemdb "github.com/trezcool/funil/storage/database/inmem"
)

func newService() *opportunity.Service {
	return opportunity.NewService(inmemdb.NewOpportunityRepository(inmemdb.Open()), core.NopLogger(), core.NopMetrics())
}

func TestService_Create(t *testing.T) {
	svc := newService()
	svc.Create(opportunity.Card{Name: "older"})
	card := svc.Create(opportunity.Card{Name: "Violin", Stage: opportunity.StageWon})

	assert.NotEmpty(t, card.ID)
	assert.Equal(t, opportunity.StageNew, card.Stage)
	assert.NotNil(t, card.ExperimentalClasses)
	assert.False(t, card.CreatedAt.IsZero())

	got, _, ok := svc.GetByID(card.ID)
	require.True(t, ok)
	body, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"experimental_classes":[]`)

	cols := svc.Columns()
	require.Equal(t, opportunity.StageNew, cols[0].Title)
	require.Len(t, cols[0].Cards, 2)
	assert.Equal(t, card.ID, cols[0].Cards[0].ID)
	for _, col := range cols[1:] {
		assert.Empty(t, col.Cards)
	}
}

func TestService_MoveAndUpdate(t *testing.T) {
	svc := newService()
	card := svc.Create(opportunity.Card{Name: "Cello", Amount: 300, ExperimentalClasses: []opportunity.ExperimentalClass{{Teacher: "Rui"}}})
	require.NotEmpty(t, card.ExperimentalClasses[0].ID)

	require.True(t, svc.Move(card.ID, opportunity.StageNew, opportunity.StageExperimentalClass, nil))
	got, stage, ok := svc.GetByID(card.ID)
	require.True(t, ok)
	assert.Equal(t, opportunity.StageExperimentalClass, stage)
	assert.Equal(t, stage, got.Stage)

	got.Amount = 350
	updated, ok := svc.Update(got)
	require.True(t, ok)
	assert.Equal(t, 350.0, updated.Amount)
	assert.Equal(t, opportunity.StageExperimentalClass, updated.Stage)
	assert.Equal(t, card.CreatedAt, updated.CreatedAt)

	assert.False(t, svc.Move(card.ID, opportunity.StageNew, opportunity.StageWon, nil), "card is not in the source stage")
	_, ok = svc.Update(opportunity.Card{ID: "nope", Name: "x"})
	assert.False(t, ok)

	assert.True(t, svc.Delete(card.ID))
	_, _, ok = svc.GetByID(card.ID)
	assert.False(t, ok)
}

func TestMoveCard_Validate(t *testing.T) {
	validate, translator := core.NewValidator()
	opportunity.InitValidators(validate, translator)
	reason := "moved away"
	blank := "  "

	tests := []struct {
		name    string
		move    opportunity.MoveCard
		wantErr bool
	}{
		{name: "any stage to any stage", move: opportunity.MoveCard{From: opportunity.StageWon, To: opportunity.StageNew}},
		{name: "lost with reason", move: opportunity.MoveCard{From: opportunity.StageNew, To: opportunity.StageLost, Patch: &opportunity.Patch{LossReason: &reason}}},
		{name: "lost without reason", move: opportunity.MoveCard{From: opportunity.StageNew, To: opportunity.StageLost}, wantErr: true},
		{name: "lost with blank reason", move: opportunity.MoveCard{From: opportunity.StageNew, To: opportunity.StageLost, Patch: &opportunity.Patch{LossReason: &blank}}, wantErr: true},
		{name: "unknown stage", move: opportunity.MoveCard{From: opportunity.StageNew, To: "Maybe"}, wantErr: true},
		{name: "missing source", move: opportunity.MoveCard{To: opportunity.StageWon}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.move.Validate(validate)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
