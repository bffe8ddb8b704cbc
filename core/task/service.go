package task

import (
	"time"

	"github.com/trezcool/funil/core"
)

const entity = "task"

type (
	Repository interface {
		QueryAllTasks() []Task
		GetTaskByID(id string) (Task, bool)
		CreateTask(t Task) Task
		UpdateTask(t Task) bool
		DeleteTask(id string) bool
		// ToggleTaskCompletion flips IsCompleted and returns the stored task.
		ToggleTaskCompletion(id string) (Task, bool)
	}

	// NameFinder resolves the display name of a related entity by id.
	NameFinder func(id string) (name string, ok bool)

	Service struct {
		repo    Repository
		finders map[string]NameFinder
		metrics core.Metrics
	}
)

// NewService wires the task service. `finders` maps a related object type to its name lookup;
// types without a finder resolve to an empty name.
func NewService(repo Repository, finders map[string]NameFinder, metrics core.Metrics) *Service {
	return &Service{repo: repo, finders: finders, metrics: metrics}
}

func (svc *Service) project(t Task) Task {
	t.RelatedObjectName = ""
	if t.RelatedObjectID == "" {
		return t
	}
	if find, ok := svc.finders[t.RelatedObjectType]; ok {
		if name, ok := find(t.RelatedObjectID); ok {
			t.RelatedObjectName = name
		}
	}
	return t
}

func (svc *Service) QueryAll() []Task {
	tasks := svc.repo.QueryAllTasks()
	for i := range tasks {
		tasks[i] = svc.project(tasks[i])
	}
	return tasks
}

func (svc *Service) GetByID(id string) (Task, bool) {
	t, ok := svc.repo.GetTaskByID(id)
	if !ok {
		return Task{}, false
	}
	return svc.project(t), true
}

func (svc *Service) Create(t Task) Task {
	t.ID = core.EnsureID(t.ID)
	t.RelatedObjectName = ""
	t.CreatedAt = time.Now().UTC()
	t = svc.repo.CreateTask(t)
	svc.metrics.Mutation(entity, "create", true)
	return svc.project(t)
}

// Update replaces the task. Its creation time is kept.
func (svc *Service) Update(t Task) (Task, bool) {
	t.RelatedObjectName = ""
	ok := svc.repo.UpdateTask(t)
	svc.metrics.Mutation(entity, "update", ok)
	if !ok {
		return Task{}, false
	}
	return svc.GetByID(t.ID)
}

func (svc *Service) Delete(id string) bool {
	ok := svc.repo.DeleteTask(id)
	svc.metrics.Mutation(entity, "delete", ok)
	return ok
}

func (svc *Service) ToggleCompletion(id string) (Task, bool) {
	t, ok := svc.repo.ToggleTaskCompletion(id)
	svc.metrics.Mutation(entity, "toggle", ok)
	if !ok {
		return Task{}, false
	}
	return svc.project(t), true
}
