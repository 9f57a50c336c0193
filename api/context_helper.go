package api

import (
	"context"
	"time"
)

// QueryTimeout is the default timeout for store queries issued outside a
// request context (sweeper runs, startup index creation)
const QueryTimeout = 10 * time.Second

// WithQueryTimeout creates a context with the query timeout applied
func WithQueryTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, QueryTimeout)
}
