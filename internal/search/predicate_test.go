package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBuilder() *PredicateBuilder {
	return NewPredicateBuilder(map[string]string{
		"title":        "t.title",
		"project.name": "p.name",
	})
}

func TestPredicateBuilder_EmptyTerm(t *testing.T) {
	cond, args := testBuilder().Build("", []string{"title"}, 1)
	assert.Empty(t, cond)
	assert.Empty(t, args)
}

func TestPredicateBuilder_EmptyFieldSet(t *testing.T) {
	cond, args := testBuilder().Build("anything", nil, 1)
	assert.Equal(t, "1 = 0", cond)
	assert.Empty(t, args)
}

func TestPredicateBuilder_UnmappedFieldsOnly(t *testing.T) {
	// a path with no mapped column cannot match anything
	cond, args := testBuilder().Build("x", []string{"project.code"}, 1)
	assert.Equal(t, "1 = 0", cond)
	assert.Empty(t, args)
}

func TestPredicateBuilder_OrAcrossFields(t *testing.T) {
	cond, args := testBuilder().Build("Alpha", []string{"title", "project.code", "project.name"}, 3)

	require.Len(t, args, 2)
	assert.Equal(t, "%alpha%", args[0])
	assert.Equal(t, "%alpha%", args[1])

	assert.Contains(t, cond, `LOWER(t.title) LIKE $3 ESCAPE '\'`)
	assert.Contains(t, cond, `LOWER(p.name) LIKE $4 ESCAPE '\'`)
	assert.Contains(t, cond, " OR ")
	assert.True(t, strings.HasPrefix(cond, "("))
	assert.True(t, strings.HasSuffix(cond, ")"))
}

func TestPredicateBuilder_EscapesLikeWildcards(t *testing.T) {
	cond, args := testBuilder().Build(`50%_done\`, []string{"title"}, 1)

	require.Len(t, args, 1)
	assert.Equal(t, `%50\%\_done\\%`, args[0])
	assert.Contains(t, cond, "LOWER(t.title)")
}
