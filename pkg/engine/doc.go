// Package engine renders a validated model.Project into documentation files
// under an output root.
//
// Which documents exist is data: manifest.yaml in the template source lists
// every document, the template it renders, its output path (itself a
// template), optional project type and stack filters, the placeholders it
// requires, and the merge strategy used in update mode. Rendering is
// deterministic and every file is written atomically.
package engine
