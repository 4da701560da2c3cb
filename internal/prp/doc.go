// Package prp materializes PRP documents from a {{TOKEN}} template.
//
// Substitution is literal and single-pass: replacement values are never
// rescanned, and placeholders with no value are left in place. Unconsumed
// reports the leftovers so callers can warn about them.
package prp
