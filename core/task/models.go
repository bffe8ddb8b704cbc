package task

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/funil/core"
)

// Related object types
const (
	RelatedAccount     = "account"
	RelatedContact     = "contact"
	RelatedOpportunity = "opportunity"
	RelatedLead        = "lead"
)

var RelatedTypes = []string{RelatedAccount, RelatedContact, RelatedOpportunity, RelatedLead}

// Task is a global to-do, optionally related to another entity by (type, id).
// RelatedObjectName is derived from the live entity on every read.
type Task struct {
	ID                string    `json:"id" yaml:"id"`
	Title             string    `json:"title" yaml:"title" validate:"required,notblank"`
	DueDate           time.Time `json:"due_date" yaml:"dueDate,omitempty"`
	IsCompleted       bool      `json:"is_completed" yaml:"isCompleted"`
	Assignee          string    `json:"assignee,omitempty" yaml:"assignee,omitempty"`
	RelatedObjectType string    `json:"related_object_type,omitempty" yaml:"relatedObjectType,omitempty" validate:"required_with=RelatedObjectID,taskrelation"`
	RelatedObjectID   string    `json:"related_object_id,omitempty" yaml:"relatedObjectId,omitempty" validate:"required_with=RelatedObjectType"`
	RelatedObjectName string    `json:"related_object_name,omitempty" yaml:"-"`
	CreatedAt         time.Time `json:"created_at" yaml:"createdAt,omitempty"`
}

func (t Task) EntityID() string { return t.ID }
func (t Task) Clone() Task      { return t }

func (t *Task) Validate(validate *validator.Validate) error {
	t.Title = core.CleanString(t.Title)
	t.Assignee = core.CleanString(t.Assignee)
	t.RelatedObjectType = core.CleanString(t.RelatedObjectType, true)
	t.RelatedObjectID = core.CleanString(t.RelatedObjectID)
	return validate.Struct(t)
}
