package contact

import (
	"github.com/trezcool/funil/core"
)

const entity = "contact"

type (
	Repository interface {
		QueryAllContacts() []Contact
		GetContactByID(id string) (Contact, bool)
		CreateContact(c Contact) Contact
		UpdateContact(c Contact) bool
		DeleteContact(id string) bool
	}

	Service struct {
		repo    Repository
		metrics core.Metrics
	}
)

func NewService(repo Repository, metrics core.Metrics) *Service {
	return &Service{repo: repo, metrics: metrics}
}

func (svc *Service) QueryAll() []Contact {
	return svc.repo.QueryAllContacts()
}

func (svc *Service) GetByID(id string) (Contact, bool) {
	return svc.repo.GetContactByID(id)
}

func (svc *Service) Create(c Contact) Contact {
	c.ID = core.EnsureID(c.ID)
	c = svc.repo.CreateContact(c)
	svc.metrics.Mutation(entity, "create", true)
	return c
}

func (svc *Service) Update(c Contact) (Contact, bool) {
	ok := svc.repo.UpdateContact(c)
	svc.metrics.Mutation(entity, "update", ok)
	if !ok {
		return Contact{}, false
	}
	return svc.repo.GetContactByID(c.ID)
}

func (svc *Service) Delete(id string) bool {
	ok := svc.repo.DeleteContact(id)
	svc.metrics.Mutation(entity, "delete", ok)
	return ok
}
