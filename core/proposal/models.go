package proposal

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/funil/core"
)

// Statuses
const (
	StatusDraft      = "Draft"
	StatusSent       = "Sent"
	StatusReview     = "Review"
	StatusAccepted   = "Accepted" // at most one per opportunity
	StatusRejected   = "Rejected"
	StatusCancelled  = "Cancelled"
	StatusSuperseded = "Superseded" // a formerly Accepted proposal replaced by a sibling
)

// Statuses lists the board columns in display order.
var Statuses = []string{
	StatusDraft,
	StatusSent,
	StatusReview,
	StatusAccepted,
	StatusRejected,
	StatusCancelled,
	StatusSuperseded,
}

type Product struct {
	ID        string  `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name" validate:"required,notblank"`
	Quantity  int     `json:"quantity" yaml:"quantity" validate:"gte=0"`
	UnitPrice float64 `json:"unit_price" yaml:"unitPrice" validate:"gte=0"`
}

// Task is a follow-up attached to a proposal.
type Task struct {
	ID      string    `json:"id" yaml:"id"`
	Title   string    `json:"title" yaml:"title" validate:"required,notblank"`
	Done    bool      `json:"done" yaml:"done"`
	DueDate time.Time `json:"due_date" yaml:"dueDate,omitempty"`
}

type Proposal struct {
	ID            string    `json:"id" yaml:"id"`
	OpportunityID string    `json:"opportunity_id" yaml:"opportunityId" validate:"required,notblank"`
	ContactID     string    `json:"contact_id,omitempty" yaml:"contactId,omitempty"`
	Status        string    `json:"status" yaml:"status" validate:"propstatus"`
	Value         float64   `json:"value" yaml:"value" validate:"gte=0"`
	Products      []Product `json:"products" yaml:"products,omitempty" validate:"dive"`
	Tasks         []Task    `json:"tasks" yaml:"tasks,omitempty" validate:"dive"`
	Notes         string    `json:"notes,omitempty" yaml:"notes,omitempty"`

	// denormalized display fields: snapshots taken on creation, refreshed by read views
	OpportunityName string `json:"opportunity_name" yaml:"opportunityName,omitempty"`
	ContactName     string `json:"contact_name" yaml:"contactName,omitempty"`

	CreatedAt time.Time `json:"created_at" yaml:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updatedAt,omitempty"`
}

func (p Proposal) EntityID() string { return p.ID }

// Clone copies the proposal; missing product and task lists become empty ones.
func (p Proposal) Clone() Proposal {
	p.Products = append(make([]Product, 0, len(p.Products)), p.Products...)
	p.Tasks = append(make([]Task, 0, len(p.Tasks)), p.Tasks...)
	return p
}

// IsAccepted reports whether the proposal counts against the single Accepted rule.
func (p Proposal) IsAccepted() bool { return p.Status == StatusAccepted }

func (p *Proposal) Validate(validate *validator.Validate) error {
	p.OpportunityID = core.CleanString(p.OpportunityID)
	p.ContactID = core.CleanString(p.ContactID)
	p.Status = core.CleanString(p.Status)
	p.Notes = core.CleanString(p.Notes)
	return validate.Struct(p)
}

// AsPatch turns a full proposal into a patch overriding every mutable field.
func (p Proposal) AsPatch() Patch {
	p = p.Clone()
	return Patch{
		ID:        p.ID,
		ContactID: &p.ContactID,
		Status:    &p.Status,
		Value:     &p.Value,
		Products:  p.Products,
		Tasks:     p.Tasks,
		Notes:     &p.Notes,
	}
}

// Patch defines what may be modified on an existing proposal. Nil fields keep their previous value.
// The opportunity a proposal belongs to never changes.
type Patch struct {
	ID        string    `json:"-"`
	ContactID *string   `json:"contact_id"`
	Status    *string   `json:"status" validate:"omitempty,propstatus"`
	Value     *float64  `json:"value" validate:"omitempty,gte=0"`
	Products  []Product `json:"products" validate:"omitempty,dive"`
	Tasks     []Task    `json:"tasks" validate:"omitempty,dive"`
	Notes     *string   `json:"notes"`
}

func (pt *Patch) Validate(validate *validator.Validate) error {
	if pt.Status != nil {
		status := core.CleanString(*pt.Status)
		pt.Status = &status
	}
	return validate.Struct(pt)
}

// Merge applies the patch onto the previous card data. Identity, ownership,
// creation time and denormalized fields are carried over from prev.
func (pt Patch) Merge(prev Proposal) Proposal {
	next := prev.Clone()
	if pt.ContactID != nil {
		next.ContactID = core.CleanString(*pt.ContactID)
	}
	if pt.Status != nil && *pt.Status != "" {
		next.Status = *pt.Status
	}
	if pt.Value != nil {
		next.Value = *pt.Value
	}
	if pt.Products != nil {
		next.Products = append(make([]Product, 0, len(pt.Products)), pt.Products...)
	}
	if pt.Tasks != nil {
		next.Tasks = append(make([]Task, 0, len(pt.Tasks)), pt.Tasks...)
	}
	if pt.Notes != nil {
		next.Notes = core.CleanString(*pt.Notes)
	}
	return next
}

// MoveProposal describes a drag and drop between status columns.
type MoveProposal struct {
	From string `json:"from" validate:"required,propstatus"`
	To   string `json:"to" validate:"required,propstatus"`
}

func (mp *MoveProposal) Validate(validate *validator.Validate) error {
	mp.From = core.CleanString(mp.From)
	mp.To = core.CleanString(mp.To)
	return validate.Struct(mp)
}
