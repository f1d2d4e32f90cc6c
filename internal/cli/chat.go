package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"agency-chatbot/internal/domain"
	"agency-chatbot/internal/pacing"
)

var showIntent bool

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation",
	Long: `Start an interactive conversation with the chatbot.

Each reply is held back for a typing delay proportional to its length,
as the web widget does. Use --no-delay to print replies immediately.
Type "exit" or "quit", or press Ctrl-D, to leave.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireEngine(); err != nil {
			return err
		}
		return runChat(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), !cfg.NoDelay)
	},
}

func init() {
	chatCmd.Flags().Bool("no-delay", false, "print replies without the typing delay")
	chatCmd.Flags().BoolVar(&showIntent, "show-intent", false, "print the classified intent with each reply")
	rootCmd.AddCommand(chatCmd)
}

func runChat(ctx context.Context, in io.Reader, out io.Writer, delay bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	_, greeting := engine.Reply("hello")
	fmt.Fprintf(out, "bot> %s\n", greeting.Text)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "you> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		intent, resp := engine.Reply(line)
		if delay {
			fmt.Fprint(out, "bot is typing...\r")
			if err := pacing.Wait(ctx, resp.Text); err != nil {
				if errors.Is(err, context.Canceled) {
					fmt.Fprintln(out)
					return nil
				}
				return err
			}
		}
		fmt.Fprintf(out, "bot> %s\n", resp.Text)
		if resp.Action != nil {
			fmt.Fprintf(out, "     %s\n", formatAction(resp.Action))
		}
		if showIntent {
			fmt.Fprintf(out, "     (intent: %s)\n", intent)
		}
	}
}

func formatAction(a *domain.Action) string {
	return fmt.Sprintf("[%s] %s", a.Label, a.URL)
}
