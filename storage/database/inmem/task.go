package inmemdb

import (
	"github.com/trezcool/funil/core/task"
)

type taskRepository struct {
	db *DB
}

var _ task.Repository = (*taskRepository)(nil)

func NewTaskRepository(db *DB) task.Repository {
	return &taskRepository{db: db}
}

func (repo *taskRepository) QueryAllTasks() []task.Task {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.db.tasks.All()
}

func (repo *taskRepository) GetTaskByID(id string) (task.Task, bool) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.db.tasks.Get(id)
}

func (repo *taskRepository) CreateTask(t task.Task) task.Task {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	repo.db.tasks.Add(t)
	return t
}

// UpdateTask keeps the creation time of the stored task.
func (repo *taskRepository) UpdateTask(t task.Task) bool {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	_, ok := repo.db.tasks.Modify(t.ID, func(prev task.Task) task.Task {
		t.CreatedAt = prev.CreatedAt
		return t
	})
	return ok
}

func (repo *taskRepository) DeleteTask(id string) bool {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	return repo.db.tasks.Delete(id) > 0
}

func (repo *taskRepository) ToggleTaskCompletion(id string) (task.Task, bool) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	return repo.db.tasks.Modify(id, func(t task.Task) task.Task {
		t.IsCompleted = !t.IsCompleted
		return t
	})
}
