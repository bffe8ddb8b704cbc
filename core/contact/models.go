package contact

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/funil/core"
)

type Contact struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name" validate:"required,notblank"`
	AccountID string `json:"account_id,omitempty" yaml:"accountId,omitempty"`
	Role      string `json:"role,omitempty" yaml:"role,omitempty"`
	Phone     string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email     string `json:"email,omitempty" yaml:"email,omitempty" validate:"omitempty,email"`
}

func (c Contact) EntityID() string { return c.ID }
func (c Contact) Clone() Contact   { return c }

func (c *Contact) Validate(validate *validator.Validate) error {
	c.Name = core.CleanString(c.Name)
	c.AccountID = core.CleanString(c.AccountID)
	c.Role = core.CleanString(c.Role)
	c.Phone = core.CleanString(c.Phone)
	c.Email = core.CleanString(c.Email, true)
	return validate.Struct(c)
}
