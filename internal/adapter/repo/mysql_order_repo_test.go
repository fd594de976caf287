package repo

import (
	"testing"

	"github.com/quocluongg/telectric-web-sub001/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterClauseEmpty(t *testing.T) {
	where, args := filterClause(usecase.OrderFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestFilterClauseSearchAndStatus(t *testing.T) {
	where, args := filterClause(usecase.OrderFilter{Search: "Nguyễn", Status: "pending"})

	assert.Contains(t, where, "LOWER(customer_name) LIKE ?")
	assert.Contains(t, where, "status = ?")
	require.Len(t, args, 3)
	assert.Equal(t, "%nguyễn%", args[0])
	assert.Equal(t, "%nguyễn%", args[1])
	assert.Equal(t, "pending", args[2])
}

func TestFilterClauseEscapesLikeMetacharacters(t *testing.T) {
	cases := map[string]string{
		"%":       `%\%%`,
		"50%":     `%50\%%`,
		"a_b":     `%a\_b%`,
		`c:\temp`: `%c:\\temp%`,
	}
	for search, want := range cases {
		_, args := filterClause(usecase.OrderFilter{Search: search})
		require.Len(t, args, 2, "search %q", search)
		assert.Equal(t, want, args[0], "search %q", search)
	}
}
