// Package scenario defines the SourceUnit record and the three providers
// that produce them: the built-in library, the generative model client,
// and the file importer. The host treats all three identically.
package scenario

import (
	"fmt"
	"hash/fnv"
)

// Link is a citation attached to a generated scenario.
type Link struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// SourceUnit is one candidate scenario: source text plus descriptive
// metadata. Units are immutable; a "modification" is always a brand-new
// unit, never a patch to an existing one.
type SourceUnit struct {
	ID          string
	Title       string
	Source      string
	Explanation string
	Links       []Link
}

// New derives the unit's ID from its source text, so identical text from
// any provider compares equal in diagnostics.
func New(title, source, explanation string) *SourceUnit {
	h := fnv.New64a()
	h.Write([]byte(source))
	return &SourceUnit{
		ID:          fmt.Sprintf("%016x", h.Sum64()),
		Title:       title,
		Source:      source,
		Explanation: explanation,
	}
}
