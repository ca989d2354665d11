package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchableFields(t *testing.T) {
	schema := EntitySchema{
		Name:       "things",
		Attributes: []string{"title", "description", "status", "ownerId", "createdAt"},
	}

	t.Run("excludes listed fields", func(t *testing.T) {
		fields := SearchableFields(schema, []string{"ownerId", "createdAt"}, nil)
		assert.ElementsMatch(t, []string{"title", "description", "status"}, fields)
	})

	t.Run("drops nested attribute paths", func(t *testing.T) {
		nested := EntitySchema{
			Name:       "things",
			Attributes: []string{"title", "subtasks.title", "project.name"},
		}
		fields := SearchableFields(nested, nil, nil)
		assert.ElementsMatch(t, []string{"title"}, fields)
	})

	t.Run("unions joined paths verbatim", func(t *testing.T) {
		fields := SearchableFields(schema,
			[]string{"status", "ownerId", "createdAt"},
			[]string{"project.name", "assignedUser.email"})
		assert.ElementsMatch(t,
			[]string{"title", "description", "project.name", "assignedUser.email"},
			fields)
	})

	t.Run("deduplicates", func(t *testing.T) {
		dup := EntitySchema{Name: "things", Attributes: []string{"title", "title"}}
		fields := SearchableFields(dup, nil, []string{"title", "project.name", "project.name"})
		assert.ElementsMatch(t, []string{"title", "project.name"}, fields)
	})

	t.Run("empty schema yields empty set", func(t *testing.T) {
		fields := SearchableFields(EntitySchema{Name: "empty"}, nil, nil)
		assert.Empty(t, fields)
	})
}

func TestTaskFields(t *testing.T) {
	fields := TaskFields()

	assert.ElementsMatch(t, []string{
		"title", "description",
		"project.name", "project.description",
		"assignedUser.name", "assignedUser.email", "assignedUser.role",
	}, fields)

	// stable across calls within the process
	assert.Equal(t, fields, TaskFields())
}
