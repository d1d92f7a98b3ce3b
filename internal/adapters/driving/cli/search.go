package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docseek/internal/core/domain"
)

var (
	searchJSON  bool
	searchFetch string
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search archive documents",
	Long: `Searches every document in the watched archive directory.

A document matches when its file name contains the query, when its text
contains the whole query, or when its text contains any word of the query.
Matching ignores case and extra whitespace.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var imageCmd = &cobra.Command{
	Use:   "image [path]",
	Short: "Search archive documents with a photo",
	Long: `Recognises the text in a photographed document and searches the archive
with it. Requires the tesseract OCR engine.`,
	Args: cobra.ExactArgs(1),
	RunE: runImage,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringVar(&searchFetch, "fetch", "", "download matched documents into this directory")
	imageCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	imageCmd.Flags().StringVar(&searchFetch, "fetch", "", "download matched documents into this directory")
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(imageCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	query := strings.Join(args, " ")
	result, err := retrievalService.Retrieve(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	return reportRetrieval(cmd, query, result)
}

func runImage(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	result, err := retrievalService.SearchImage(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("image search failed: %w", err)
	}

	if result.NoText {
		cmd.Println("No text recognised. Try a clearer photo of the document.")
		return nil
	}

	if !searchJSON {
		cmd.Printf("Recognised text: %s\n\n", strings.Join(strings.Fields(result.Text), " "))
	}
	return reportRetrieval(cmd, result.Text, result.Retrieval)
}

func reportRetrieval(cmd *cobra.Command, query string, result *domain.RetrievalResult) error {
	if searchJSON {
		if err := outputSearchJSON(cmd, query, result); err != nil {
			return err
		}
	} else {
		outputSearchTable(cmd, result)
	}

	if searchFetch != "" {
		return fetchMatches(cmd, result, searchFetch)
	}
	return nil
}

type searchJSONOutput struct {
	Query   string            `json:"query"`
	Matches []searchJSONMatch `json:"matches"`
	Skipped map[string]string `json:"skipped,omitempty"`
}

type searchJSONMatch struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ByName    bool   `json:"by_name"`
	ByContent bool   `json:"by_content"`
}

func outputSearchJSON(cmd *cobra.Command, query string, result *domain.RetrievalResult) error {
	out := searchJSONOutput{Query: query, Matches: []searchJSONMatch{}}
	for _, id := range result.Matches.Sorted() {
		out.Matches = append(out.Matches, searchJSONMatch{
			ID:        id.String(),
			Name:      id.Name(),
			ByName:    result.NameMatches.Has(id),
			ByContent: result.ContentMatches.Has(id),
		})
	}
	if len(result.Skipped) > 0 {
		out.Skipped = make(map[string]string, len(result.Skipped))
		for id, err := range result.Skipped {
			out.Skipped[id.String()] = err.Error()
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, result *domain.RetrievalResult) {
	if result.Matches.Len() == 0 {
		cmd.Println("No documents found.")
	} else {
		cmd.Printf("Found %d document(s):\n", result.Matches.Len())
		for _, id := range result.Matches.Sorted() {
			cmd.Printf("  %s  [%s]\n", id, matchTiers(result, id))
		}
	}

	if len(result.Skipped) == 0 {
		return
	}
	skipped := make([]domain.DocumentID, 0, len(result.Skipped))
	for id := range result.Skipped {
		skipped = append(skipped, id)
	}
	sort.Slice(skipped, func(i, j int) bool { return skipped[i] < skipped[j] })

	cmd.Println()
	cmd.Printf("Could not read %d document(s):\n", len(skipped))
	for _, id := range skipped {
		cmd.Printf("  %s: %v\n", id, result.Skipped[id])
	}
}

func matchTiers(result *domain.RetrievalResult, id domain.DocumentID) string {
	var tiers []string
	if result.NameMatches.Has(id) {
		tiers = append(tiers, "name")
	}
	if result.ContentMatches.Has(id) {
		tiers = append(tiers, "content")
	}
	return strings.Join(tiers, ", ")
}

func fetchMatches(cmd *cobra.Command, result *domain.RetrievalResult, dir string) error {
	if archiveService == nil {
		return errors.New("archive service not configured")
	}
	for _, id := range result.Matches.Sorted() {
		local, err := archiveService.Fetch(cmd.Context(), id, dir)
		if err != nil {
			return fmt.Errorf("fetch failed: %w", err)
		}
		cmd.Printf("Saved %s\n", local)
	}
	return nil
}
