// Package ai fills in project descriptions with an OpenAI-compatible chat
// model through eino. Availability is a local check on configuration, and each
// Describe call performs exactly one completion request.
package ai
