package search

import "sync"

// Static search declaration for the tasks entity. Excluded fields cover
// identifiers, timestamps, nested documents and attributes that are
// filtered by exact match elsewhere (tags, priority, completed).
var (
	taskSchema = EntitySchema{
		Name: "tasks",
		Attributes: []string{
			"title", "description", "dueDate", "priority",
			"tags", "attachments", "notes", "subtasks",
			"completed", "projectId", "assignedTo",
			"createdAt", "updatedAt",
		},
	}

	excludedTaskFields = []string{
		"subtasks", "attachments", "notes",
		"dueDate", "priority", "tags", "completed",
		"projectId", "assignedTo", "createdAt", "updatedAt",
	}

	// Paths on the joined project and user sub-documents.
	joinedTaskFields = []string{
		"project.name",
		"project.description",
		"assignedUser.name",
		"assignedUser.email",
		"assignedUser.role",
	}

	// Column expressions valid in queries that join tasks t with
	// projects p and users u.
	taskColumns = map[string]string{
		"title":               "t.title",
		"description":         "t.description",
		"project.name":        "p.name",
		"project.description": "p.description",
		"assignedUser.name":   "u.name",
		"assignedUser.email":  "u.email",
		"assignedUser.role":   "u.role",
	}
)

// TaskFields returns the searchable field set for tasks, computed once.
var TaskFields = sync.OnceValue(func() []string {
	return SearchableFields(taskSchema, excludedTaskFields, joinedTaskFields)
})

// NewTaskPredicateBuilder builds predicates over the denormalized task view.
func NewTaskPredicateBuilder() *PredicateBuilder {
	return NewPredicateBuilder(taskColumns)
}
