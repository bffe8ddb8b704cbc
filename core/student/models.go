package student

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/funil/core"
)

type Student struct {
	ID         string    `json:"id" yaml:"id"`
	Name       string    `json:"name" yaml:"name" validate:"required,notblank"`
	AccountID  string    `json:"account_id,omitempty" yaml:"accountId,omitempty"`
	ContactID  string    `json:"contact_id,omitempty" yaml:"contactId,omitempty"`
	Course     string    `json:"course,omitempty" yaml:"course,omitempty"`
	EnrolledAt time.Time `json:"enrolled_at" yaml:"enrolledAt,omitempty"`
	IsActive   bool      `json:"is_active" yaml:"isActive"`
}

func (s Student) EntityID() string { return s.ID }
func (s Student) Clone() Student   { return s }

func (s *Student) Validate(validate *validator.Validate) error {
	s.Name = core.CleanString(s.Name)
	s.AccountID = core.CleanString(s.AccountID)
	s.ContactID = core.CleanString(s.ContactID)
	s.Course = core.CleanString(s.Course)
	return validate.Struct(s)
}
