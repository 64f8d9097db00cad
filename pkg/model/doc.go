// Package model defines the request and result types that flow through the
// generation pipeline. ProjectConfig is the raw, loosely typed payload accepted
// from callers (REST body, project file or CLI flags); Project is the validated
// form produced by the catalog and is the only shape the AI provider and the
// template engine ever see; GeneratedProject lists what ended up on disk.
package model
