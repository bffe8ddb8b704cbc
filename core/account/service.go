package account

import (
	"github.com/trezcool/funil/core"
	"github.com/trezcool/funil/core/contact"
)

const entity = "account"

type (
	Repository interface {
		QueryAllAccounts() []Account
		GetAccountByID(id string) (Account, bool)
		CreateAccount(a Account) Account
		UpdateAccount(a Account) bool
		DeleteAccount(id string) bool
	}

	ContactFinder interface {
		GetByID(id string) (contact.Contact, bool)
	}

	Service struct {
		repo     Repository
		contacts ContactFinder
		metrics  core.Metrics
	}
)

func NewService(repo Repository, contacts ContactFinder, metrics core.Metrics) *Service {
	return &Service{repo: repo, contacts: contacts, metrics: metrics}
}

// project refreshes the main contact name from the live contact, keeping the snapshot when it is gone.
func (svc *Service) project(a Account) Account {
	if a.MainContactID == "" {
		return a
	}
	if ct, ok := svc.contacts.GetByID(a.MainContactID); ok {
		a.MainContact = ct.Name
	}
	return a
}

func (svc *Service) QueryAll() []Account {
	accounts := svc.repo.QueryAllAccounts()
	for i := range accounts {
		accounts[i] = svc.project(accounts[i])
	}
	return accounts
}

func (svc *Service) GetByID(id string) (Account, bool) {
	a, ok := svc.repo.GetAccountByID(id)
	if !ok {
		return Account{}, false
	}
	return svc.project(a), true
}

func (svc *Service) Create(a Account) Account {
	a.ID = core.EnsureID(a.ID)
	if a.Type == "" {
		a.Type = TypePerson
	}
	a = svc.repo.CreateAccount(svc.project(a))
	svc.metrics.Mutation(entity, "create", true)
	return a
}

func (svc *Service) Update(a Account) (Account, bool) {
	ok := svc.repo.UpdateAccount(svc.project(a))
	svc.metrics.Mutation(entity, "update", ok)
	if !ok {
		return Account{}, false
	}
	return svc.GetByID(a.ID)
}

func (svc *Service) Delete(id string) bool {
	ok := svc.repo.DeleteAccount(id)
	svc.metrics.Mutation(entity, "delete", ok)
	return ok
}
