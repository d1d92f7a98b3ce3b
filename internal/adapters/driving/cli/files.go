package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docseek/internal/core/domain"
)

var (
	fetchDest  string
	uploadName string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List files on the server",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [document-id]",
	Short: "Download a document from the server",
	Long: `Downloads a document by its archive identifier, as shown by
"docseek list" or "docseek search", e.g. /upload/report.pdf.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a document to the server",
	Long: `Uploads a local file into the watched archive directory.

If the server reports an error the listing is checked. An upload that is
present in the listing is reported as verified.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchDest, "dest", "d", ".", "destination directory")
	uploadCmd.Flags().StringVar(&uploadName, "name", "", "name to store the file under (default: the file's name)")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(uploadCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if archiveService == nil {
		return errors.New("archive service not configured")
	}

	listing, err := archiveService.ListFiles(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing failed: %w", err)
	}

	if len(listing) == 0 {
		cmd.Println("No files on the server.")
		return nil
	}

	cmd.Println("Files on server:")
	for _, id := range listing {
		cmd.Println(id.String())
	}
	return nil
}

func runFetch(cmd *cobra.Command, args []string) error {
	if archiveService == nil {
		return errors.New("archive service not configured")
	}

	local, err := archiveService.Fetch(cmd.Context(), domain.DocumentID(args[0]), fetchDest)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}
	cmd.Printf("Saved %s\n", local)
	return nil
}

func runUpload(cmd *cobra.Command, args []string) error {
	if archiveService == nil {
		return errors.New("archive service not configured")
	}

	name := uploadName
	if name == "" {
		name = filepath.Base(args[0])
	}

	result, err := archiveService.Upload(cmd.Context(), args[0], name)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	printUpload(cmd, result)
	return nil
}

func printUpload(cmd *cobra.Command, result domain.UploadResult) {
	switch result.Status {
	case domain.UploadVerified:
		cmd.Printf("Uploaded %s (server reported: %v)\n", result.ID, result.TransferErr)
	default:
		cmd.Printf("Uploaded %s\n", result.ID)
	}
}
