package postgres

import (
	"regexp"
	"testing"

	"github.com/mufaddal-lashkar/safirah-server/internal/domain"

	"github.com/stretchr/testify/require"
)

// jammedKeyword matches an identifier running straight into a SQL
// keyword, the breakage a missing space in string concatenation causes.
var jammedKeyword = regexp.MustCompile(`[a-z_0-9](SELECT|FROM|WHERE|ORDER|GROUP|LIMIT|OFFSET|AND)\b`)

func TestGetIncidentQueryWellFormed(t *testing.T) {
	require.NotRegexp(t, jammedKeyword, getIncidentQuery)
	require.Regexp(t, `created_at\s+FROM incidents`, getIncidentQuery)
	require.Contains(t, getIncidentQuery, "WHERE id = $1")
}

func TestListWindowQuery(t *testing.T) {
	query, args := listWindowQuery(domain.IncidentFilter{City: "mumbai"}, 30, 30)
	require.NotRegexp(t, jammedKeyword, query)
	require.Contains(t, query, " FROM incidents WHERE city = $1 ORDER BY created_at DESC, id ASC LIMIT $2 OFFSET $3")
	require.Equal(t, []any{"mumbai", 30, 30}, args)

	query, args = listWindowQuery(domain.IncidentFilter{
		City:     "mumbai",
		Type:     domain.IncidentHarassment,
		Severity: domain.SeverityHigh,
	}, 0, 30)
	require.NotRegexp(t, jammedKeyword, query)
	require.Contains(t, query, "WHERE city = $1 AND type = $2 AND severity = $3")
	require.Contains(t, query, "LIMIT $4 OFFSET $5")
	require.Equal(t, []any{"mumbai", domain.IncidentHarassment, domain.SeverityHigh, 30, 0}, args)
}

func TestFilterClause(t *testing.T) {
	clause, args := filterClause(domain.IncidentFilter{City: "pune", Severity: domain.SeverityLow})
	require.Equal(t, ` WHERE city = $1 AND severity = $2`, clause)
	require.Equal(t, []any{"pune", domain.SeverityLow}, args)
}
