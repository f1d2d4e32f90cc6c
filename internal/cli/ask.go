package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"agency-chatbot/internal/domain"
	"agency-chatbot/internal/pacing"
)

type askOutput struct {
	Intent        string         `json:"intent"`
	Text          string         `json:"text"`
	Action        *domain.Action `json:"action,omitempty"`
	TypingDelayMs int64          `json:"typingDelayMs"`
}

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Answer one message and print the reply as JSON",
	Example: `  chatcli ask "Who founded the company?"
  chatcli ask what is your pricing`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireEngine(); err != nil {
			return err
		}
		intent, resp := engine.Reply(strings.Join(args, " "))
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(askOutput{
			Intent:        intent.String(),
			Text:          resp.Text,
			Action:        resp.Action,
			TypingDelayMs: pacing.Delay(resp.Text).Milliseconds(),
		}); err != nil {
			return fmt.Errorf("encoding reply: %w", err)
		}
		return nil
	},
}

var classifyCmd = &cobra.Command{
	Use:   "classify <message>",
	Short: "Print the intent a message is classified as",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireEngine(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), engine.Classify(strings.Join(args, " ")))
		return nil
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List classification rules in evaluation order",
	Long: `List classification rules in the order they are evaluated.
The first rule that matches a message decides its intent.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireEngine(); err != nil {
			return err
		}
		for i, name := range engine.RuleOrder() {
			fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s\n", i+1, name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(rulesCmd)
}
