package inmemdb

import (
	"github.com/trezcool/funil/core/student"
)

type studentRepository struct {
	db *DB
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) QueryAllStudents() []student.Student {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.db.students.All()
}

func (repo *studentRepository) GetStudentByID(id string) (student.Student, bool) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.db.students.Get(id)
}

func (repo *studentRepository) CreateStudent(s student.Student) student.Student {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	repo.db.students.Add(s)
	return s
}

func (repo *studentRepository) UpdateStudent(s student.Student) bool {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	return repo.db.students.Update(s)
}

func (repo *studentRepository) DeleteStudent(id string) bool {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	return repo.db.students.Delete(id) > 0
}
