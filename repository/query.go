package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// clauseBuilder collects SQL fragments with numbered $N placeholders. Each
// fragment is written with %d verbs that receive the next argument indexes.
type clauseBuilder struct {
	parts []string
	args  []any
}

func (b *clauseBuilder) add(fragment string, args ...any) {
	idx := make([]any, len(args))
	for i := range args {
		idx[i] = len(b.args) + i + 1
	}
	b.parts = append(b.parts, fmt.Sprintf(fragment, idx...))
	b.args = append(b.args, args...)
}

func (b *clauseBuilder) empty() bool {
	return len(b.parts) == 0
}

// where renders " WHERE a AND b", or "" when nothing was added
func (b *clauseBuilder) where() string {
	if b.empty() {
		return ""
	}
	return " WHERE " + strings.Join(b.parts, " AND ")
}

// set renders "a = $1, b = $2" for UPDATE statements
func (b *clauseBuilder) set() string {
	return strings.Join(b.parts, ", ")
}

// next returns the placeholder index for an argument appended after the built ones
func (b *clauseBuilder) next() int {
	return len(b.args) + 1
}

func offset(page, pageSize int) int {
	return (page - 1) * pageSize
}

// ensureExists returns notFound unless query (SELECT EXISTS ...) is true for key.
// An empty PATCH still has to answer 404 for a missing row.
func ensureExists(ctx context.Context, db *sqlx.DB, query string, key any, notFound error) error {
	var exists bool
	if err := db.GetContext(ctx, &exists, query, key); err != nil {
		return fmt.Errorf("failed to check row: %w", err)
	}
	if !exists {
		return notFound
	}
	return nil
}
