package proposal

import (
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/funil/core"
	"github.com/trezcool/funil/core/contact"
	"github.com/trezcool/funil/core/opportunity"
	"github.com/trezcool/funil/core/pipeline"
)

const entity = "proposal"

var (
	ErrUnknownOpportunity = errors.New("unknown opportunity")
	ErrDuplicateID        = errors.New("proposal already exists")
	ErrUnknownStatus      = errors.New("unknown proposal status")
)

type (
	// Repository is the proposal pipeline store. Every method runs as one serialized
	// transaction, so the single Accepted rule holds under concurrent callers.
	Repository interface {
		QueryColumns() []pipeline.Column[Proposal]
		QueryByOpportunity(opportunityID string) []Proposal
		GetProposal(id string) (p Proposal, status string, ok bool)
		CreateProposal(p Proposal) (created Proposal, demoted []Proposal, ok bool)
		UpdateProposal(pt Patch) (updated Proposal, demoted []Proposal, ok bool)
		MoveProposal(id, from, to string) (updated Proposal, demoted []Proposal, ok bool)
	}

	OpportunityFinder interface {
		GetByID(id string) (card opportunity.Card, stage string, ok bool)
	}

	ContactFinder interface {
		GetByID(id string) (contact.Contact, bool)
	}

	Service struct {
		repo          Repository
		opportunities OpportunityFinder
		contacts      ContactFinder
		logger        core.Logger
		metrics       core.Metrics
	}
)

func NewService(
	repo Repository,
	opportunities OpportunityFinder,
	contacts ContactFinder,
	logger core.Logger,
	metrics core.Metrics,
) *Service {
	return &Service{
		repo:          repo,
		opportunities: opportunities,
		contacts:      contacts,
		logger:        logger,
		metrics:       metrics,
	}
}

// names resolves display names from the live entities, caching per call.
type names struct {
	svc           *Service
	opportunities map[string]opportunity.Card
	contacts      map[string]string
}

func (svc *Service) newNames() *names {
	return &names{
		svc:           svc,
		opportunities: make(map[string]opportunity.Card),
		contacts:      make(map[string]string),
	}
}

func (n *names) opportunity(id string) (opportunity.Card, bool) {
	if card, ok := n.opportunities[id]; ok {
		return card, true
	}
	card, _, ok := n.svc.opportunities.GetByID(id)
	if ok {
		n.opportunities[id] = card
	}
	return card, ok
}

func (n *names) contact(id string) (string, bool) {
	if id == "" {
		return "", false
	}
	if name, ok := n.contacts[id]; ok {
		return name, true
	}
	ct, ok := n.svc.contacts.GetByID(id)
	if ok {
		n.contacts[id] = ct.Name
	}
	return ct.Name, ok
}

// project refreshes the denormalized fields; snapshots are kept when the referenced entity is gone.
func (n *names) project(p Proposal) Proposal {
	opp, oppOK := n.opportunity(p.OpportunityID)
	if oppOK {
		p.OpportunityName = opp.Name
	}
	contactID := p.ContactID
	if contactID == "" && oppOK {
		contactID = opp.ContactID
	}
	if name, ok := n.contact(contactID); ok {
		p.ContactName = name
	} else if p.ContactName == "" && oppOK {
		p.ContactName = opp.ContactName
	}
	return p
}

func (svc *Service) Columns() []pipeline.Column[Proposal] {
	n := svc.newNames()
	cols := svc.repo.QueryColumns()
	for i := range cols {
		for j := range cols[i].Cards {
			cols[i].Cards[j] = n.project(cols[i].Cards[j])
		}
	}
	return cols
}

func (svc *Service) ByOpportunity(opportunityID string) []Proposal {
	n := svc.newNames()
	proposals := svc.repo.QueryByOpportunity(opportunityID)
	for i := range proposals {
		proposals[i] = n.project(proposals[i])
	}
	return proposals
}

func (svc *Service) GetByID(id string) (Proposal, bool) {
	p, _, ok := svc.repo.GetProposal(id)
	if !ok {
		return Proposal{}, false
	}
	return svc.newNames().project(p), true
}

// Create attaches a proposal to its opportunity, stamping the opportunity and contact names.
// Nothing is stored when the opportunity does not exist, the id is taken or the status is unknown.
func (svc *Service) Create(p Proposal) (Proposal, error) {
	n := svc.newNames()
	opp, ok := n.opportunity(p.OpportunityID)
	if !ok {
		svc.metrics.Mutation(entity, "create", false)
		return Proposal{}, ErrUnknownOpportunity
	}

	now := time.Now().UTC()
	p.ID = core.EnsureID(p.ID)
	if p.Status == "" {
		p.Status = StatusDraft
	}
	if p.ContactID == "" {
		p.ContactID = opp.ContactID
	}
	if p.Products == nil {
		p.Products = []Product{}
	}
	if p.Tasks == nil {
		p.Tasks = []Task{}
	}
	for i := range p.Products {
		p.Products[i].ID = core.EnsureID(p.Products[i].ID)
	}
	for i := range p.Tasks {
		p.Tasks[i].ID = core.EnsureID(p.Tasks[i].ID)
	}
	p.ContactName = ""
	p = n.project(p)
	p.CreatedAt = now
	p.UpdatedAt = now

	created, demoted, ok := svc.repo.CreateProposal(p)
	svc.metrics.Mutation(entity, "create", ok)
	if !ok {
		if _, _, exists := svc.repo.GetProposal(p.ID); exists {
			return Proposal{}, ErrDuplicateID
		}
		return Proposal{}, ErrUnknownStatus
	}
	svc.demoted(created, demoted)
	return created, nil
}

// Update merges the patch onto the stored proposal. Accepting a proposal supersedes
// the previously accepted one of the same opportunity.
func (svc *Service) Update(pt Patch) (Proposal, bool) {
	for i := range pt.Products {
		pt.Products[i].ID = core.EnsureID(pt.Products[i].ID)
	}
	for i := range pt.Tasks {
		pt.Tasks[i].ID = core.EnsureID(pt.Tasks[i].ID)
	}
	updated, demoted, ok := svc.repo.UpdateProposal(pt)
	svc.metrics.Mutation(entity, "update", ok)
	if !ok {
		return Proposal{}, false
	}
	svc.demoted(updated, demoted)
	return svc.newNames().project(updated), true
}

// Move changes the status through the same path as Update.
func (svc *Service) Move(id, from, to string) (Proposal, bool) {
	updated, demoted, ok := svc.repo.MoveProposal(id, from, to)
	svc.metrics.Mutation(entity, "move", ok)
	if !ok {
		return Proposal{}, false
	}
	svc.demoted(updated, demoted)
	return svc.newNames().project(updated), true
}

func (svc *Service) demoted(accepted Proposal, demoted []Proposal) {
	if len(demoted) == 0 {
		return
	}
	svc.metrics.Demoted(len(demoted))
	for _, p := range demoted {
		svc.logger.Info("proposal superseded", map[string]interface{}{
			"id":             p.ID,
			"opportunity_id": p.OpportunityID,
			"accepted_id":    accepted.ID,
		})
	}
}
