package opportunity

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/funil/core"
)

// Stages
const (
	StageNew               = "New Opportunity" // cards are always created here
	StageQualification     = "Qualification"
	StageExperimentalClass = "Experimental Class"
	StageProposal          = "Proposal"
	StageNegotiation       = "Negotiation"
	StageWon               = "Won"
	StageLost              = "Lost"
)

// Stages lists the board columns in display order.
var Stages = []string{
	StageNew,
	StageQualification,
	StageExperimentalClass,
	StageProposal,
	StageNegotiation,
	StageWon,
	StageLost,
}

// ExperimentalClass is a trial class booked for a prospective student.
type ExperimentalClass struct {
	ID        string    `json:"id" yaml:"id"`
	StudentID string    `json:"student_id,omitempty" yaml:"studentId,omitempty"`
	Date      time.Time `json:"date" yaml:"date"`
	Teacher   string    `json:"teacher,omitempty" yaml:"teacher,omitempty"`
	Attended  bool      `json:"attended" yaml:"attended"`
	Notes     string    `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Card is the pipeline projection of an Opportunity.
// Its stage is the title of the column holding it; Stage is only filled on reads.
type Card struct {
	ID                  string              `json:"id" yaml:"id"`
	Name                string              `json:"name" yaml:"name" validate:"required,notblank"`
	Amount              float64             `json:"amount" yaml:"amount" validate:"gte=0"`
	AccountID           string              `json:"account_id,omitempty" yaml:"accountId,omitempty"`
	ContactID           string              `json:"contact_id,omitempty" yaml:"contactId,omitempty"`
	ContactName         string              `json:"contact_name,omitempty" yaml:"contactName,omitempty"`
	LossReason          string              `json:"loss_reason,omitempty" yaml:"lossReason,omitempty"`
	ExperimentalClasses []ExperimentalClass `json:"experimental_classes" yaml:"experimentalClasses,omitempty" validate:"dive"`
	Stage               string              `json:"stage,omitempty" yaml:"-"`
	CreatedAt           time.Time           `json:"created_at" yaml:"createdAt,omitempty"`
	UpdatedAt           time.Time           `json:"updated_at" yaml:"updatedAt,omitempty"`
}

func (c Card) EntityID() string { return c.ID }

// Clone copies the card; a missing class list becomes an empty one.
func (c Card) Clone() Card {
	c.ExperimentalClasses = append(make([]ExperimentalClass, 0, len(c.ExperimentalClasses)), c.ExperimentalClasses...)
	return c
}

func (c *Card) Validate(validate *validator.Validate) error {
	c.Name = core.CleanString(c.Name)
	c.LossReason = core.CleanString(c.LossReason)
	return validate.Struct(c)
}

// Patch holds the optional fields applied to a card while it moves. Nil fields are left untouched.
type Patch struct {
	Name                *string             `json:"name"`
	Amount              *float64            `json:"amount" validate:"omitempty,gte=0"`
	LossReason          *string             `json:"loss_reason"`
	ExperimentalClasses []ExperimentalClass `json:"experimental_classes"`
}

func (p *Patch) Apply(c Card) Card {
	if p == nil {
		return c
	}
	if p.Name != nil {
		c.Name = core.CleanString(*p.Name)
	}
	if p.Amount != nil {
		c.Amount = *p.Amount
	}
	if p.LossReason != nil {
		c.LossReason = core.CleanString(*p.LossReason)
	}
	if p.ExperimentalClasses != nil {
		c.ExperimentalClasses = append(make([]ExperimentalClass, 0, len(p.ExperimentalClasses)), p.ExperimentalClasses...)
	}
	return c
}

// MoveCard describes a stage transition requested by a collaborator.
type MoveCard struct {
	From  string `json:"from" validate:"required,oppstage"`
	To    string `json:"to" validate:"required,oppstage"`
	Patch *Patch `json:"patch"`
}

func (mc *MoveCard) Validate(validate *validator.Validate) error {
	mc.From = core.CleanString(mc.From)
	mc.To = core.CleanString(mc.To)
	if err := validate.Struct(mc); err != nil {
		return err
	}
	// a lost opportunity must say why
	if mc.To == StageLost && mc.From != StageLost && (mc.Patch == nil || mc.Patch.LossReason == nil || core.CleanString(*mc.Patch.LossReason) == "") {
		return core.NewValidationError(nil, core.FieldError{Field: "loss_reason", Error: "a loss reason is required"})
	}
	return nil
}
