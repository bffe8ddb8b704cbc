package account

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/funil/core"
)

// Account types
const (
	TypePerson  = "person"
	TypeCompany = "company"
)

var Types = []string{TypePerson, TypeCompany}

type Account struct {
	ID            string `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name" validate:"required,notblank"`
	Type          string `json:"type" yaml:"type" validate:"accounttype"`
	CPFCNPJ       string `json:"cpf_cnpj,omitempty" yaml:"cpfCnpj,omitempty"`
	MainContactID string `json:"main_contact_id,omitempty" yaml:"mainContactId,omitempty"`
	MainContact   string `json:"main_contact,omitempty" yaml:"mainContact,omitempty"`
	Phone         string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email         string `json:"email,omitempty" yaml:"email,omitempty" validate:"omitempty,email"`
}

func (a Account) EntityID() string { return a.ID }
func (a Account) Clone() Account   { return a }

func (a *Account) Validate(validate *validator.Validate) error {
	a.Name = core.CleanString(a.Name)
	a.Type = core.CleanString(a.Type, true)
	a.CPFCNPJ = core.CleanString(a.CPFCNPJ)
	a.MainContactID = core.CleanString(a.MainContactID)
	a.Phone = core.CleanString(a.Phone)
	a.Email = core.CleanString(a.Email, true)
	return validate.Struct(a)
}
