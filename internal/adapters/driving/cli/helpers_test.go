package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ragchat/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ragchat/internal/core/domain"
	"github.com/custodia-labs/ragchat/internal/core/services"
	"github.com/custodia-labs/ragchat/internal/extractors"
)

// setupTestServices configures the commands with real services over
// in-memory storage and restores the previous services on cleanup.
func setupTestServices(t *testing.T) Services {
	t.Helper()

	prev := Services{
		Document: documentService,
		Session:  sessionService,
		Chat:     chatService,
		Settings: settingsService,
	}
	t.Cleanup(func() { Configure(prev) })

	cfg := domain.DefaultConfig()
	storage := memory.NewStorage()
	docs := services.NewDocumentService(storage, extractors.Default(), cfg.Documents)
	sessions := services.NewSessionService(storage)
	settings := services.NewSettingsService(storage)
	chat := services.NewChatService(docs, sessions, settings, services.NewComposer(cfg.Composer),
		domain.StreamConfig{ChunkSize: 10})

	s := Services{Document: docs, Session: sessions, Chat: chat, Settings: settings}
	Configure(s)
	return s
}

// clearServices unsets all services for the duration of the test.
func clearServices(t *testing.T) {
	t.Helper()
	setupTestServices(t)
	Configure(Services{})
}

// execute runs the root command with args and returns its stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	resetFlags(rootCmd)
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// resetFlags restores every flag to its default so package-level flag
// variables do not leak between runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// writeFile creates a file under a temp dir and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// addDocument uploads a text document through the service.
func addDocument(t *testing.T, s Services, name, text string) domain.Document {
	t.Helper()
	result, err := s.Document.Add(context.Background(), []domain.File{{Name: name, Content: []byte(text)}})
	require.NoError(t, err)
	require.Len(t, result.Added, 1)
	return result.Added[0]
}

// askQuestion records a question and its answer in a new session.
func askQuestion(t *testing.T, s Services, question string) string {
	t.Helper()
	panel := s.Chat.OpenPanel("")
	reply, err := panel.Send(context.Background(), question)
	require.NoError(t, err)
	require.NoError(t, reply.Stream.Wait())
	panel.Close()
	return reply.SessionID
}
