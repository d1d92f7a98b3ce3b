// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The matching engine lives here: Normalize and Matches are pure
// functions, Scanner evaluates materialised documents, and
// RetrievalService ties the archive, the scanner and file-name
// matching together.
//
// Services are pure Go with no CGO or external dependencies.
package services
