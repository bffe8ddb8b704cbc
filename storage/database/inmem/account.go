package inmemdb

import (
	"github.com/trezcool/funil/core/account"
)

type accountRepository struct {
	db *DB
}

var _ account.Repository = (*accountRepository)(nil)

func NewAccountRepository(db *DB) account.Repository {
	return &accountRepository{db: db}
}

func (repo *accountRepository) QueryAllAccounts() []account.Account {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.db.accounts.All()
}

func (repo *accountRepository) GetAccountByID(id string) (account.Account, bool) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.db.accounts.Get(id)
}

func (repo *accountRepository) CreateAccount(a account.Account) account.Account {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	repo.db.accounts.Add(a)
	return a
}

func (repo *accountRepository) UpdateAccount(a account.Account) bool {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	return repo.db.accounts.Update(a)
}

func (repo *accountRepository) DeleteAccount(id string) bool {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	return repo.db.accounts.Delete(id) > 0
}
