package database

import (
	"reflect"
	"testing"

	"github.com/Alias1177/TradeVault/internal/vault"
)

func TestListQuery(t *testing.T) {
	tests := []struct {
		name      string
		filter    vault.Filter
		wantQuery string
		wantArgs  []any
	}{
		{
			name:      "no filter",
			filter:    vault.Filter{},
			wantQuery: "SELECT id, title, category, content, source, note_date FROM vault_notes ORDER BY seq DESC",
		},
		{
			name:      "All category is ignored",
			filter:    vault.Filter{Category: "All", Limit: 8},
			wantQuery: "SELECT id, title, category, content, source, note_date FROM vault_notes ORDER BY seq DESC LIMIT $1",
			wantArgs:  []any{8},
		},
		{
			name:   "category and query",
			filter: vault.Filter{Category: "Strategy", Query: " rsi "},
			wantQuery: "SELECT id, title, category, content, source, note_date FROM vault_notes" +
				" WHERE category = $1 AND (title ILIKE $2 OR content ILIKE $2) ORDER BY seq DESC",
			wantArgs: []any{"Strategy", "%rsi%"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, args := listQuery(tt.filter)
			if q != tt.wantQuery {
				t.Errorf("query:\n%s\nwant:\n%s", q, tt.wantQuery)
			}
			if len(args) != len(tt.wantArgs) || (len(args) > 0 && !reflect.DeepEqual(args, tt.wantArgs)) {
				t.Errorf("args = %v, want %v", args, tt.wantArgs)
			}
		})
	}
}

func TestLikePattern(t *testing.T) {
	if got := likePattern(`1%_risk\`); got != `%1\%\_risk\\%` {
		t.Errorf("got %q", got)
	}
}

func TestDSN(t *testing.T) {
	p := ConnectionParams{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "vault", SSLMode: "disable"}
	want := "host=db port=5432 user=u password=p dbname=vault sslmode=disable"
	if got := p.DSN(); got != want {
		t.Errorf("got %q", got)
	}
}
