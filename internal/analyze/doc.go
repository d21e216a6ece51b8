// Package analyze audits local theme files against library metadata. It
// classifies every movie as having no theme file, a theme the server already
// knows about, or an orphaned theme, and can delete the orphans after the
// caller confirms.
package analyze
