// Package orchestrator wires the catalog, the AI description provider and the
// template engine into a single Generate call:
//
//	validate → describe (only when ai_generate is set) → transform → render → list files
//
// Every collaborator is an interface with a built-in default, so callers can
// start from New() and inject fakes or alternatives where needed.
package orchestrator
