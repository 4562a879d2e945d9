// Package noop provides an insight generator that never elaborates.
package noop

import (
	"context"

	"github.com/beydemirfurkan/seo-analyze/internal/seo"
)

// Generator satisfies seo.InsightGenerator without any external dependency.
// Findings keep their original messages.
type Generator struct{}

// New returns a noop Generator.
func New() *Generator {
	return &Generator{}
}

// Elaborate returns no enrichment and no error.
func (Generator) Elaborate(_ context.Context, _ seo.Finding) (string, error) {
	return "", nil
}
