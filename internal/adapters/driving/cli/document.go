package cli

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ragchat/internal/connectors/filesystem"
	"github.com/custodia-labs/ragchat/internal/core/domain"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage uploaded documents",
	Long:  `Upload, list, view or remove the documents questions are answered from.`,
}

var documentAddCmd = &cobra.Command{
	Use:   "add [file...]",
	Short: "Upload files",
	Long: `Extracts the text of each file and stores it as a document.

Supported formats are plain text (.txt), Word (.docx) and PDF (.pdf).
A file that cannot be read or parsed is reported and skipped; the
remaining files are still added.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDocumentAdd,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentShowCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentShow,
}

var documentRemoveCmd = &cobra.Command{
	Use:   "remove [doc-id...]",
	Short: "Remove documents",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDocumentRemove,
}

var documentClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentClear,
}

var documentWatchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Keep a directory in sync",
	Long: `Watches a directory and uploads files as they are created or changed.
A changed file replaces the document previously uploaded for it and a
deleted file removes it. Hidden files and directories are ignored.

Use --initial to upload the files already in the directory first.
Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentWatch,
}

var (
	documentAddJSON  bool
	documentListJSON bool
	documentShowText bool
	watchInitial     bool
)

func init() {
	documentAddCmd.Flags().BoolVar(&documentAddJSON, "json", false, "output results as JSON")
	documentListCmd.Flags().BoolVar(&documentListJSON, "json", false, "output documents as JSON")
	documentShowCmd.Flags().BoolVarP(&documentShowText, "text", "t", false, "print the extracted text")
	documentWatchCmd.Flags().BoolVar(&watchInitial, "initial", false, "upload existing files before watching")

	documentCmd.AddCommand(documentAddCmd)
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentShowCmd)
	documentCmd.AddCommand(documentRemoveCmd)
	documentCmd.AddCommand(documentClearCmd)
	documentCmd.AddCommand(documentWatchCmd)
	rootCmd.AddCommand(documentCmd)
}

// documentDescriptor is a document without its text.
type documentDescriptor struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Extension  domain.Extension `json:"extension"`
	SizeBytes  int64            `json:"sizeBytes"`
	UploadedAt time.Time        `json:"uploadedAt"`
}

// addFailure is the JSON form of a file that was not added.
type addFailure struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

func describe(doc *domain.Document) documentDescriptor {
	return documentDescriptor{
		ID:         doc.ID,
		Name:       doc.Name,
		Extension:  doc.Extension,
		SizeBytes:  doc.SizeBytes,
		UploadedAt: doc.UploadedAt,
	}
}

func runDocumentAdd(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	files := make([]domain.File, 0, len(args))
	var unreadable []domain.FileError
	for _, path := range args {
		file, err := filesystem.LoadFile(path)
		if err != nil {
			unreadable = append(unreadable, domain.FileError{Name: path, Err: err})
			continue
		}
		files = append(files, file)
	}

	result := &domain.AddResult{}
	if len(files) > 0 {
		var err error
		result, err = documentService.Add(cmd.Context(), files)
		if err = storageWarning(cmd, err); err != nil {
			return fmt.Errorf("failed to add documents: %w", err)
		}
	}
	failures := append(unreadable, result.Failures...)

	if documentAddJSON {
		out := make([]any, 0, len(result.Added)+len(failures))
		for i := range result.Added {
			out = append(out, describe(&result.Added[i]))
		}
		for _, f := range failures {
			out = append(out, addFailure{Name: f.Name, Error: f.Err.Error()})
		}
		if err := printJSON(cmd, out); err != nil {
			return err
		}
	} else {
		for i := range result.Added {
			cmd.Printf("Added %s (%s)\n", result.Added[i].Name, result.Added[i].ID)
		}
		for _, f := range failures {
			cmd.PrintErrf("Failed %s\n", f.Error())
		}
	}

	if len(result.Added) == 0 {
		return errors.New("no documents added")
	}
	return nil
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if documentListJSON {
		out := make([]documentDescriptor, len(docs))
		for i := range docs {
			out[i] = describe(&docs[i])
		}
		return printJSON(cmd, map[string]any{"documents": out})
	}

	if len(docs) == 0 {
		cmd.Println("No documents uploaded.")
		return nil
	}

	cmd.Println("Documents:")
	cmd.Println()
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Name: %s\n", docs[i].Name)
		cmd.Printf("    Size: %d bytes\n", docs[i].SizeBytes)
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentShow(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	if documentShowText {
		cmd.Println(doc.Text)
		return nil
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  Name:      %s\n", doc.Name)
	cmd.Printf("  Format:    %s\n", doc.Extension)
	cmd.Printf("  Size:      %d bytes\n", doc.SizeBytes)
	cmd.Printf("  Text:      %d characters\n", len([]rune(doc.Text)))
	cmd.Printf("  Uploaded:  %s\n", doc.UploadedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func runDocumentRemove(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	for _, id := range args {
		if err := storageWarning(cmd, documentService.Remove(cmd.Context(), id)); err != nil {
			return fmt.Errorf("failed to remove document: %w", err)
		}
		cmd.Printf("Document %s removed.\n", id)
	}
	return nil
}

func runDocumentClear(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := storageWarning(cmd, documentService.Clear(cmd.Context())); err != nil {
		return fmt.Errorf("failed to clear documents: %w", err)
	}
	cmd.Println("All documents removed.")
	return nil
}

func runDocumentWatch(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	root := args[0]
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracker := filesystem.NewTracker(documentService)

	if watchInitial {
		paths, err := filesystem.Scan(root)
		if err != nil {
			return err
		}
		for _, path := range paths {
			result, err := tracker.Ingest(ctx, path)
			reportChange(cmd, path, result, err)
		}
	}

	watcher := filesystem.NewWatcher(root)
	changes, err := watcher.Watch(ctx)
	if err != nil {
		return err
	}
	defer watcher.Close()

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", root)
	for change := range changes {
		result, err := tracker.Apply(ctx, change)
		if change.Type == filesystem.ChangeRemoved {
			if err = storageWarning(cmd, err); err != nil {
				cmd.PrintErrf("Failed %s: %v\n", change.Path, err)
			} else {
				cmd.Printf("Removed %s\n", change.Path)
			}
			continue
		}
		reportChange(cmd, change.Path, result, err)
	}
	return nil
}

// reportChange prints the outcome of uploading one watched file.
func reportChange(cmd *cobra.Command, path string, result *domain.AddResult, err error) {
	if err = storageWarning(cmd, err); err != nil {
		cmd.PrintErrf("Failed %s: %v\n", path, err)
		return
	}
	if result == nil {
		return
	}
	for i := range result.Added {
		cmd.Printf("Added %s (%s)\n", path, result.Added[i].ID)
	}
	for _, f := range result.Failures {
		cmd.PrintErrf("Failed %s: %v\n", path, f.Err)
	}
}
