package echoapi_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/funil/core/lead"
	"github.com/trezcool/funil/core/opportunity"
	"github.com/trezcool/funil/core/pipeline"
	"github.com/trezcool/funil/core/proposal"
	"github.com/trezcool/funil/core/task"
)

type oppResponse struct {
	Card  opportunity.Card `json:"card"`
	Stage string           `json:"stage"`
}

func TestHome(t *testing.T) {
	server, _ := setup(t)
	req, rec := newRequest(http.MethodGet, "/")
	server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Funil API!", rec.Body.String())
}

func Test_opportunityApi_errors(t *testing.T) {
	server, _ := setup(t)

	runHTTPTests(t, server, []httpTest{
		{
			name:     "retrieve unknown",
			method:   http.MethodGet,
			path:     "/api/opportunities/nope",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, errNotFound),
		},
		{
			name:     "create blank name",
			method:   http.MethodPost,
			path:     "/api/opportunities",
			body:     []byte(`{"name": "   ", "amount": 10}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"name": "this field is required"}`),
		},
		{
			name:     "create negative amount",
			method:   http.MethodPost,
			path:     "/api/opportunities",
			body:     []byte(`{"name": "Sax", "amount": -1}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "update unknown",
			method:   http.MethodPut,
			path:     "/api/opportunities/nope",
			body:     []byte(`{"name": "Sax"}`),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, errNotFound),
		},
		{
			name:     "move to lost without reason",
			method:   http.MethodPost,
			path:     "/api/opportunities/opp-3/move",
			body:     []byte(`{"from": "New Opportunity", "to": "Lost"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"loss_reason": "a loss reason is required"}`),
		},
		{
			name:     "move to unknown stage",
			method:   http.MethodPost,
			path:     "/api/opportunities/opp-3/move",
			body:     []byte(`{"from": "New Opportunity", "to": "Maybe"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"to": "unknown opportunity stage"}`),
		},
		{
			name:     "move from the wrong stage",
			method:   http.MethodPost,
			path:     "/api/opportunities/opp-3/move",
			body:     []byte(`{"from": "Won", "to": "Negotiation"}`),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, errNotFound),
		},
		{
			name:     "delete unknown",
			method:   http.MethodDelete,
			path:     "/api/opportunities/nope",
			wantCode: http.StatusNotFound,
		},
		{
			name:     "proposals of unknown opportunity",
			method:   http.MethodGet,
			path:     "/api/opportunities/nope/proposals",
			wantCode: http.StatusNotFound,
		},
	})
}

func Test_opportunityApi_lifecycle(t *testing.T) {
	server, _ := setup(t)

	var created opportunity.Card
	do(t, server, http.MethodPost, "/api/opportunities", opportunity.Card{Name: "Saxofone", Amount: 280, Stage: opportunity.StageWon}, http.StatusCreated, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, opportunity.StageNew, created.Stage)

	var cols []pipeline.Column[opportunity.Card]
	do(t, server, http.MethodGet, "/api/opportunities", nil, http.StatusOK, &cols)
	require.Len(t, cols, len(opportunity.Stages))
	assert.Equal(t, opportunity.StageNew, cols[0].Title)
	assert.Equal(t, created.ID, cols[0].Cards[0].ID)

	var moved oppResponse
	do(t, server, http.MethodPost, "/api/opportunities/"+created.ID+"/move",
		map[string]interface{}{"from": opportunity.StageNew, "to": opportunity.StageLost, "patch": map[string]string{"loss_reason": "schedule"}},
		http.StatusOK, &moved)
	assert.Equal(t, opportunity.StageLost, moved.Stage)
	assert.Equal(t, "schedule", moved.Card.LossReason)

	var updated opportunity.Card
	do(t, server, http.MethodPut, "/api/opportunities/"+created.ID, opportunity.Card{Name: "Saxofone alto", Amount: 300, LossReason: "schedule"}, http.StatusOK, &updated)
	assert.Equal(t, "Saxofone alto", updated.Name)
	assert.Equal(t, opportunity.StageLost, updated.Stage)
	assert.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())

	do(t, server, http.MethodDelete, "/api/opportunities/"+created.ID, nil, http.StatusNoContent, nil)
	do(t, server, http.MethodGet, "/api/opportunities/"+created.ID, nil, http.StatusNotFound, nil)
}

func proposalStatuses(t *testing.T, server http.Handler, oppID string) map[string]string {
	var proposals []proposal.Proposal
	do(t, server, http.MethodGet, "/api/opportunities/"+oppID+"/proposals", nil, http.StatusOK, &proposals)
	statuses := make(map[string]string, len(proposals))
	for _, p := range proposals {
		statuses[p.ID] = p.Status
	}
	return statuses
}

func Test_proposalApi_singleAccepted(t *testing.T) {
	server, _ := setup(t)

	assert.Equal(t, map[string]string{"prop-1": proposal.StatusRejected, "prop-2": proposal.StatusSent}, proposalStatuses(t, server, "opp-1"))

	var created proposal.Proposal
	do(t, server, http.MethodPost, "/api/proposals", proposal.Proposal{OpportunityID: "opp-1", Status: proposal.StatusAccepted, Value: 10500}, http.StatusCreated, &created)
	assert.Equal(t, "Musicalização - Colégio Horizonte", created.OpportunityName)
	assert.Equal(t, "Paulo Lima", created.ContactName)

	var accepted proposal.Proposal
	do(t, server, http.MethodPut, "/api/proposals/prop-2", map[string]string{"status": proposal.StatusAccepted}, http.StatusOK, &accepted)
	assert.Equal(t, proposal.StatusAccepted, accepted.Status)
	assert.Equal(t, 11000.0, accepted.Value, "fields absent from the patch are kept")

	assert.Equal(t, map[string]string{
		"prop-1":   proposal.StatusRejected,
		"prop-2":   proposal.StatusAccepted,
		created.ID: proposal.StatusSuperseded,
	}, proposalStatuses(t, server, "opp-1"))

	// drag and drop goes through the same rule
	do(t, server, http.MethodPost, "/api/proposals/prop-1/move", proposal.MoveProposal{From: proposal.StatusRejected, To: proposal.StatusAccepted}, http.StatusOK, nil)
	assert.Equal(t, map[string]string{
		"prop-1":   proposal.StatusAccepted,
		"prop-2":   proposal.StatusSuperseded,
		created.ID: proposal.StatusSuperseded,
	}, proposalStatuses(t, server, "opp-1"))

	// other opportunities are untouched
	assert.Equal(t, map[string]string{"prop-3": proposal.StatusAccepted}, proposalStatuses(t, server, "opp-4"))

	var cols []pipeline.Column[proposal.Proposal]
	do(t, server, http.MethodGet, "/api/proposals", nil, http.StatusOK, &cols)
	require.Len(t, cols, len(proposal.Statuses))
	for _, col := range cols {
		for _, p := range col.Cards {
			assert.Equal(t, col.Title, p.Status)
		}
	}
}

func Test_proposalApi_errors(t *testing.T) {
	server, _ := setup(t)

	runHTTPTests(t, server, []httpTest{
		{
			name:     "create for unknown opportunity",
			method:   http.MethodPost,
			path:     "/api/proposals",
			body:     []byte(`{"opportunity_id": "nope"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"opportunity_id": "unknown opportunity"}`),
		},
		{
			name:     "create with a taken id",
			method:   http.MethodPost,
			path:     "/api/proposals",
			body:     []byte(`{"id": "prop-2", "opportunity_id": "opp-1"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"id": "already exists"}`),
		},
		{
			name:     "create without opportunity",
			method:   http.MethodPost,
			path:     "/api/proposals",
			body:     []byte(`{"value": 10}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"opportunity_id": "this field is required"}`),
		},
		{
			name:     "unknown status",
			method:   http.MethodPut,
			path:     "/api/proposals/prop-2",
			body:     []byte(`{"status": "Signed"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"status": "unknown proposal status"}`),
		},
		{
			name:     "update unknown",
			method:   http.MethodPut,
			path:     "/api/proposals/nope",
			body:     []byte(`{"status": "Accepted"}`),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, errNotFound),
		},
		{
			name:     "move unknown",
			method:   http.MethodPost,
			path:     "/api/proposals/nope/move",
			body:     []byte(`{"from": "Draft", "to": "Accepted"}`),
			wantCode: http.StatusNotFound,
		},
		{
			name:     "retrieve unknown",
			method:   http.MethodGet,
			path:     "/api/proposals/nope",
			wantCode: http.StatusNotFound,
		},
	})
}

func Test_taskApi(t *testing.T) {
	server, _ := setup(t)

	var got task.Task
	do(t, server, http.MethodGet, "/api/tasks/task-1", nil, http.StatusOK, &got)
	assert.Equal(t, "Musicalização - Colégio Horizonte", got.RelatedObjectName)

	// renaming the opportunity renames the relation
	var resp oppResponse
	do(t, server, http.MethodGet, "/api/opportunities/opp-1", nil, http.StatusOK, &resp)
	resp.Card.Name = "Musicalização 2024"
	do(t, server, http.MethodPut, "/api/opportunities/opp-1", resp.Card, http.StatusOK, nil)
	do(t, server, http.MethodGet, "/api/tasks/task-1", nil, http.StatusOK, &got)
	assert.Equal(t, "Musicalização 2024", got.RelatedObjectName)

	var toggled task.Task
	do(t, server, http.MethodPost, "/api/tasks/task-1/toggle", nil, http.StatusOK, &toggled)
	assert.True(t, toggled.IsCompleted)

	var created task.Task
	do(t, server, http.MethodPost, "/api/tasks", task.Task{Title: "Agendar aula", RelatedObjectType: task.RelatedLead, RelatedObjectID: "ld-1"}, http.StatusCreated, &created)
	assert.Equal(t, "Renata Alves", created.RelatedObjectName)

	var tasks []task.Task
	do(t, server, http.MethodGet, "/api/tasks", nil, http.StatusOK, &tasks)
	require.NotEmpty(t, tasks)
	assert.Equal(t, created.ID, tasks[0].ID)

	runHTTPTests(t, server, []httpTest{
		{
			name:     "toggle unknown",
			method:   http.MethodPost,
			path:     "/api/tasks/nope/toggle",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, errNotFound),
		},
		{
			name:     "unknown relation type",
			method:   http.MethodPost,
			path:     "/api/tasks",
			body:     []byte(`{"title": "x", "related_object_type": "invoice", "related_object_id": "i1"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"related_object_type": "unknown related object type"}`),
		},
	})
}

func Test_collectionApis(t *testing.T) {
	server, _ := setup(t)

	runHTTPTests(t, server, []httpTest{
		{name: "accounts", method: http.MethodGet, path: "/api/accounts", wantCode: http.StatusOK},
		{name: "account", method: http.MethodGet, path: "/api/accounts/acc-1", wantCode: http.StatusOK},
		{name: "contact", method: http.MethodGet, path: "/api/contacts/ct-1", wantCode: http.StatusOK},
		{name: "student", method: http.MethodGet, path: "/api/students/st-1", wantCode: http.StatusOK},
		{
			name:     "invalid contact email",
			method:   http.MethodPost,
			path:     "/api/contacts",
			body:     []byte(`{"name": "Ana", "email": "not-an-email"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "update unknown student",
			method:   http.MethodPut,
			path:     "/api/students/nope",
			body:     []byte(`{"name": "Ana"}`),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, errNotFound),
		},
		{name: "delete account", method: http.MethodDelete, path: "/api/accounts/acc-2", wantCode: http.StatusNoContent},
		{name: "delete account twice", method: http.MethodDelete, path: "/api/accounts/acc-2", wantCode: http.StatusNotFound},
		{name: "deleted account", method: http.MethodGet, path: "/api/accounts/acc-2", wantCode: http.StatusNotFound},
	})

	// the account main contact follows the contact
	do(t, server, http.MethodPut, "/api/contacts/ct-1", map[string]string{"name": "Marina S. Souza", "account_id": "acc-1"}, http.StatusOK, nil)
	var acc struct {
		MainContact string `json:"main_contact"`
	}
	do(t, server, http.MethodGet, "/api/accounts/acc-1", nil, http.StatusOK, &acc)
	assert.Equal(t, "Marina S. Souza", acc.MainContact)
}

func Test_leadApi(t *testing.T) {
	server, _ := setup(t)

	var created lead.Card
	do(t, server, http.MethodPost, "/api/leads", lead.Card{Name: "Carlos", Source: "site"}, http.StatusCreated, &created)
	assert.Equal(t, lead.StageNew, created.Stage)

	var moved struct {
		Card  lead.Card `json:"card"`
		Stage string    `json:"stage"`
	}
	do(t, server, http.MethodPost, "/api/leads/"+created.ID+"/move", lead.MoveCard{From: lead.StageNew, To: lead.StageQualified}, http.StatusOK, &moved)
	assert.Equal(t, lead.StageQualified, moved.Stage)

	var cols []pipeline.Column[lead.Card]
	do(t, server, http.MethodGet, "/api/leads", nil, http.StatusOK, &cols)
	for _, col := range cols {
		if col.Title == lead.StageQualified {
			require.Len(t, col.Cards, 1)
			assert.Equal(t, created.ID, col.Cards[0].ID)
		}
	}

	do(t, server, http.MethodPost, "/api/leads/"+created.ID+"/move", lead.MoveCard{From: lead.StageNew, To: "Hot"}, http.StatusBadRequest, nil)
	do(t, server, http.MethodDelete, "/api/leads/"+created.ID, nil, http.StatusNoContent, nil)
}

func TestMetrics(t *testing.T) {
	server, _ := setup(t)
	do(t, server, http.MethodPost, "/api/tasks/task-1/toggle", nil, http.StatusOK, nil)

	req, rec := newRequest(http.MethodGet, "/metrics")
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `funil_store_mutations_total{entity="task",matched="true",op="toggle"} 1`), body)
	assert.True(t, strings.Contains(body, `funil_pipeline_cards{column="Accepted",pipeline="proposals"} 1`), body)
}
