package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask questions about your documents",
}

var chatAskCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question",
	Long: `Answers a question from the uploaded documents and saves both the
question and the answer to a chat session.

Without --session a new session is started. The answer is streamed when
writing to a terminal.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChatAsk,
}

var chatSessionID string

func init() {
	chatAskCmd.Flags().StringVarP(&chatSessionID, "session", "s", "", "session to continue")
	chatCmd.AddCommand(chatAskCmd)
	rootCmd.AddCommand(chatCmd)
}

func runChatAsk(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	panel := chatService.OpenPanel(chatSessionID)
	defer panel.Close()

	reply, err := panel.Send(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("failed to ask: %w", err)
	}

	out := cmd.OutOrStdout()
	if isTerminal(out) {
		printed := 0
		for prefix := range reply.Stream.Events() {
			fmt.Fprint(out, prefix[printed:])
			printed = len(prefix)
		}
		fmt.Fprintln(out)
		if err := reply.Stream.Wait(); err != nil {
			return fmt.Errorf("answer interrupted: %w", err)
		}
	} else {
		// The full answer is recorded when the stream ends, cancelled or not.
		reply.Stream.Cancel()
		_ = reply.Stream.Wait()
		cmd.Println(reply.Text)
	}

	if len(reply.Matches) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for _, m := range reply.Matches {
			cmd.Printf("  %s (score %d)\n", m.Document.Name, m.Score)
		}
	}
	cmd.Printf("\nSession: %s\n", reply.SessionID)
	return nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
