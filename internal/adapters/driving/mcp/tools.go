package mcp

import (
	"context"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docseek/internal/core/domain"
)

// RetrieveInput is the input schema for the retrieve tool.
type RetrieveInput struct {
	Query string `json:"query" jsonschema:"text to look for in file names and document content"`
}

// RetrieveOutput is the output schema for the retrieve tool.
type RetrieveOutput struct {
	Matches []MatchOutput `json:"matches"`
	Count   int           `json:"count"`
	Skipped []string      `json:"skipped,omitempty"`
}

// MatchOutput is one matched archive document.
type MatchOutput struct {
	DocumentID string `json:"document_id"`
	Name       string `json:"name"`
	ByName     bool   `json:"by_name"`
	ByContent  bool   `json:"by_content"`
}

// SearchImageInput is the input schema for the search_image tool.
type SearchImageInput struct {
	ImagePath string `json:"image_path" jsonschema:"local path of a photographed document"`
}

// SearchImageOutput is the output schema for the search_image tool.
type SearchImageOutput struct {
	RecognizedText string         `json:"recognized_text"`
	NoText         bool           `json:"no_text"`
	Result         RetrieveOutput `json:"result"`
}

// ListFilesOutput is the output schema for the list_files tool.
type ListFilesOutput struct {
	Files []string `json:"files"`
	Count int      `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve",
		Description: "Find archive documents whose name or content matches the query",
	}, s.handleRetrieve)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_image",
		Description: "Recognise text in a document photo and find matching archive documents",
	}, s.handleSearchImage)

	if s.ports.Archive != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_files",
			Description: "List every document in the watched archive directory",
		}, s.handleListFiles)
	}
}

// handleRetrieve handles the retrieve tool invocation.
func (s *Server) handleRetrieve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	result, err := s.ports.Retrieval.Retrieve(ctx, input.Query)
	if err != nil {
		return nil, RetrieveOutput{}, err
	}
	return nil, toRetrieveOutput(result), nil
}

// handleSearchImage handles the search_image tool invocation.
func (s *Server) handleSearchImage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchImageInput,
) (*mcp.CallToolResult, SearchImageOutput, error) {
	result, err := s.ports.Retrieval.SearchImage(ctx, input.ImagePath)
	if err != nil {
		return nil, SearchImageOutput{}, err
	}

	output := SearchImageOutput{
		RecognizedText: result.Text,
		NoText:         result.NoText,
		Result:         toRetrieveOutput(result.Retrieval),
	}
	return nil, output, nil
}

// handleListFiles handles the list_files tool invocation.
func (s *Server) handleListFiles(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, ListFilesOutput, error) {
	listing, err := s.ports.Archive.ListFiles(ctx)
	if err != nil {
		return nil, ListFilesOutput{}, err
	}

	output := ListFilesOutput{
		Files: make([]string, len(listing)),
		Count: len(listing),
	}
	for i, id := range listing {
		output.Files[i] = id.String()
	}
	return nil, output, nil
}

func toRetrieveOutput(result *domain.RetrievalResult) RetrieveOutput {
	output := RetrieveOutput{Matches: []MatchOutput{}}
	if result == nil {
		return output
	}

	for _, id := range result.Matches.Sorted() {
		output.Matches = append(output.Matches, MatchOutput{
			DocumentID: id.String(),
			Name:       id.Name(),
			ByName:     result.NameMatches.Has(id),
			ByContent:  result.ContentMatches.Has(id),
		})
	}
	output.Count = len(output.Matches)

	for id := range result.Skipped {
		output.Skipped = append(output.Skipped, id.String())
	}
	sort.Strings(output.Skipped)
	return output
}
