package inmemdb

import (
	"github.com/trezcool/funil/core/contact"
)

type contactRepository struct {
	db *DB
}

var _ contact.Repository = (*contactRepository)(nil)

func NewContactRepository(db *DB) contact.Repository {
	return &contactRepository{db: db}
}

func (repo *contactRepository) QueryAllContacts() []contact.Contact {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.db.contacts.All()
}

func (repo *contactRepository) GetContactByID(id string) (contact.Contact, bool) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.db.contacts.Get(id)
}

func (repo *contactRepository) CreateContact(c contact.Contact) contact.Contact {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	repo.db.contacts.Add(c)
	return c
}

func (repo *contactRepository) UpdateContact(c contact.Contact) bool {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	return repo.db.contacts.Update(c)
}

func (repo *contactRepository) DeleteContact(id string) bool {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	return repo.db.contacts.Delete(id) > 0
}
