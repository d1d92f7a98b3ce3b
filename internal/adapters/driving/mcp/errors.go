// Package mcp provides an MCP (Model Context Protocol) server adapter for docseek.
// It lets AI assistants search the document archive and read its files.
package mcp

import "errors"

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")
