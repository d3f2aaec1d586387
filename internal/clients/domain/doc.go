// Package domain holds the client-management entities for Kingston's Portal:
// product owners, special relationships, legal documents, and health and
// vulnerability records, together with their status lifecycles.
//
// Each entity family keeps its own closed status enum and transition table.
// The sets and transition graphs genuinely differ between families, so they
// are deliberately not unified behind one shared status type.
package domain
