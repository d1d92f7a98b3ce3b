// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Archive / ArchiveSession: Remote document storage (FTP or local directory)
//   - Extractor: Turns a locally cached document into plain text
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - TextRecognizer: OCR for photographed documents. Image search is disabled without it.
//   - SessionStore: Per-chat state. Only the chat transport needs it.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, extractor, or driving package
package driven
