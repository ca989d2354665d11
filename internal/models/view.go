package models

// TaskView is a task with its foreign keys expanded into the referenced
// entities. A dangling or null reference leaves the sub-document nil.
type TaskView struct {
	Task
	Project  *Project `json:"project"`
	Assignee *User    `json:"assignedUser"`
}

// TaskPage is the uniform result envelope for user task queries.
type TaskPage struct {
	Items []*TaskView `json:"items"`
	Total int         `json:"total"`
	Page  int         `json:"page"`
	Pages int         `json:"pages"`
	Note  string      `json:"note"`
}
