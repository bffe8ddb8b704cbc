package task_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/funil/core"
	"github.com/trezcool/funil/core/account"
	"github.com/trezcool/funil/core/contact"
	"github.com/trezcool/funil/core/lead"
	"github.com/trezcool/funil/core/opportunity"
	"github.com/trezcool/funil/core/task"
	inmemdb "github.com/trezcool/funil/storage/database/inmem"
)

func TestService_relatedNames(t *testing.T) {
	db := inmemdb.Open()
	metrics := core.NopMetrics()
	contacts := contact.NewService(inmemdb.NewContactRepository(db), metrics)
	accounts := account.NewService(inmemdb.NewAccountRepository(db), contacts, metrics)
	opps := opportunity.NewService(inmemdb.NewOpportunityRepository(db), core.NopLogger(), metrics)
	leads := lead.NewService(inmemdb.NewLeadRepository(db), core.NopLogger(), metrics)
	svc := task.NewService(inmemdb.NewTaskRepository(db), map[string]task.NameFinder{
		task.RelatedAccount: func(id string) (string, bool) {
			a, ok := accounts.GetByID(id)
			return a.Name, ok
		},
		task.RelatedOpportunity: func(id string) (string, bool) {
			c, _, ok := opps.GetByID(id)
			return c.Name, ok
		},
		task.RelatedLead: func(id string) (string, bool) {
			c, _, ok := leads.GetByID(id)
			return c.Name, ok
		},
	}, metrics)

	acc := accounts.Create(account.Account{Name: "Acme"})
	opp := opps.Create(opportunity.Card{Name: "Drums"})
	ld := leads.Create(lead.Card{Name: "Walk-in"})

	tests := []struct {
		name    string
		task    task.Task
		rename  func()
		want    string
		renamed string
	}{
		{
			name: "account",
			task: task.Task{Title: "call", RelatedObjectType: task.RelatedAccount, RelatedObjectID: acc.ID},
			rename: func() {
				acc.Name = "Acme Inc."
				_, ok := accounts.Update(acc)
				require.True(t, ok)
			},
			want: "Acme", renamed: "Acme Inc.",
		},
		{
			name: "opportunity",
			task: task.Task{Title: "send quote", RelatedObjectType: task.RelatedOpportunity, RelatedObjectID: opp.ID},
			rename: func() {
				opp.Name = "Drums (kids)"
				_, ok := opps.Update(opp)
				require.True(t, ok)
			},
			want: "Drums", renamed: "Drums (kids)",
		},
		{
			name: "lead",
			task: task.Task{Title: "follow up", RelatedObjectType: task.RelatedLead, RelatedObjectID: ld.ID},
			rename: func() {
				ld.Name = "Walk-in Tuesday"
				_, ok := leads.Update(ld)
				require.True(t, ok)
			},
			want: "Walk-in", renamed: "Walk-in Tuesday",
		},
		{
			name:   "no finder",
			task:   task.Task{Title: "ring", RelatedObjectType: task.RelatedContact, RelatedObjectID: "c1"},
			rename: func() {},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created := svc.Create(tt.task)
			assert.Equal(t, tt.want, created.RelatedObjectName)

			tt.rename()
			got, ok := svc.GetByID(created.ID)
			require.True(t, ok)
			assert.Equal(t, tt.renamed, got.RelatedObjectName)
		})
	}
}

func TestService_ToggleCompletion(t *testing.T) {
	svc := task.NewService(inmemdb.NewTaskRepository(inmemdb.Open()), nil, core.NopMetrics())
	created := svc.Create(task.Task{Title: "call"})
	assert.False(t, created.IsCompleted)
	assert.False(t, created.CreatedAt.IsZero())

	toggled, ok := svc.ToggleCompletion(created.ID)
	require.True(t, ok)
	assert.True(t, toggled.IsCompleted)

	_, ok = svc.ToggleCompletion("nope")
	assert.False(t, ok)

	created.Title = "call back"
	updated, ok := svc.Update(created)
	require.True(t, ok)
	assert.Equal(t, "call back", updated.Title)
	assert.Len(t, svc.QueryAll(), 1)

	assert.True(t, svc.Delete(created.ID))
	assert.False(t, svc.Delete(created.ID))
	assert.Empty(t, svc.QueryAll())
}

func TestTask_Validate(t *testing.T) {
	validate, _ := core.NewValidator()
	task.InitValidators(validate, core.NewTranslator())

	tests := []struct {
		name    string
		task    task.Task
		wantErr bool
	}{
		{name: "plain", task: task.Task{Title: "call"}},
		{name: "related", task: task.Task{Title: "call", RelatedObjectType: " Account ", RelatedObjectID: "a1"}},
		{name: "blank title", task: task.Task{Title: "  "}, wantErr: true},
		{name: "unknown relation", task: task.Task{Title: "call", RelatedObjectType: "invoice", RelatedObjectID: "i1"}, wantErr: true},
		{name: "relation without id", task: task.Task{Title: "call", RelatedObjectType: task.RelatedLead}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate(validate)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
