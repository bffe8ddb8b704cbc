package student

import (
	"time"

	"github.com/trezcool/funil/core"
)

const entity = "student"

type (
	Repository interface {
		QueryAllStudents() []Student
		GetStudentByID(id string) (Student, bool)
		CreateStudent(s Student) Student
		UpdateStudent(s Student) bool
		DeleteStudent(id string) bool
	}

	Service struct {
		repo    Repository
		metrics core.Metrics
	}
)

func NewService(repo Repository, metrics core.Metrics) *Service {
	return &Service{repo: repo, metrics: metrics}
}

func (svc *Service) QueryAll() []Student {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) GetByID(id string) (Student, bool) {
	return svc.repo.GetStudentByID(id)
}

// Create enrolls the student today unless an enrollment date is given.
func (svc *Service) Create(s Student) Student {
	s.ID = core.EnsureID(s.ID)
	if s.EnrolledAt.IsZero() {
		s.EnrolledAt = time.Now().UTC()
	}
	s = svc.repo.CreateStudent(s)
	svc.metrics.Mutation(entity, "create", true)
	return s
}

func (svc *Service) Update(s Student) (Student, bool) {
	ok := svc.repo.UpdateStudent(s)
	svc.metrics.Mutation(entity, "update", ok)
	if !ok {
		return Student{}, false
	}
	return svc.repo.GetStudentByID(s.ID)
}

func (svc *Service) Delete(id string) bool {
	ok := svc.repo.DeleteStudent(id)
	svc.metrics.Mutation(entity, "delete", ok)
	return ok
}
