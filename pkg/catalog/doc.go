// Package catalog holds the registry of supported project types, the tech
// stacks available for each type, and the libraries available for each stack.
//
// A Catalog is built once from a Definition (YAML, JSON or TOML) and never
// changes afterwards; callers pass it explicitly to whatever needs it. Validate
// is the only way to turn a raw model.ProjectConfig into a model.Project.
package catalog
