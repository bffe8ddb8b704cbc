package lead

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/funil/core"
)

// Stages
const (
	StageNew          = "New Lead" // leads are always created here
	StageContacted    = "Contacted"
	StageQualified    = "Qualified"
	StageDisqualified = "Disqualified"
)

var Stages = []string{StageNew, StageContacted, StageQualified, StageDisqualified}

type Card struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name" validate:"required,notblank"`
	Source    string    `json:"source,omitempty" yaml:"source,omitempty"`
	Phone     string    `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email     string    `json:"email,omitempty" yaml:"email,omitempty" validate:"omitempty,email"`
	Notes     string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	Stage     string    `json:"stage,omitempty" yaml:"-"`
	CreatedAt time.Time `json:"created_at" yaml:"createdAt,omitempty"`
}

func (c Card) EntityID() string { return c.ID }
func (c Card) Clone() Card      { return c }

func (c *Card) Validate(validate *validator.Validate) error {
	c.Name = core.CleanString(c.Name)
	c.Source = core.CleanString(c.Source)
	c.Phone = core.CleanString(c.Phone)
	c.Email = core.CleanString(c.Email, true)
	c.Notes = core.CleanString(c.Notes)
	return validate.Struct(c)
}

type MoveCard struct {
	From string `json:"from" validate:"required,leadstage"`
	To   string `json:"to" validate:"required,leadstage"`
}

func (mc *MoveCard) Validate(validate *validator.Validate) error {
	mc.From = core.CleanString(mc.From)
	mc.To = core.CleanString(mc.To)
	return validate.Struct(mc)
}
