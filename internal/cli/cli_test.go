package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"agency-chatbot/internal/knowledge"
	"agency-chatbot/internal/triage"
)

const acmeYAML = `
company:
  name: Acme
contact:
  email: hi@acme.test
services:
  - name: Mobile App Development
    description: We build apps.
faq:
  - question: What do you do?
    answer: Apps.
`

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		_ = rootCmd.PersistentFlags().Set("kb", "")
		cfgFile = ""
		engine, cfg = nil, nil
	})
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCommands_Registered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"chat", "ask", "classify", "rules"} {
		require.True(t, names[want], "missing command %q", want)
	}
}

func TestAsk_PrintsJSON(t *testing.T) {
	out, err := execute(t, "", "ask", "Who", "founded", "JOMIEZ?")
	require.NoError(t, err)

	var got askOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, "founder_info", got.Intent)
	require.Contains(t, got.Text, "Jomi Ezekiel")
	require.Nil(t, got.Action)
	require.GreaterOrEqual(t, got.TypingDelayMs, int64(1000))
	require.LessOrEqual(t, got.TypingDelayMs, int64(3500))
}

func TestAsk_IncludesAction(t *testing.T) {
	out, err := execute(t, "", "ask", "What's your pricing?")
	require.NoError(t, err)

	var got askOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, "question", got.Intent)
	require.NotNil(t, got.Action)
	require.Equal(t, "whatsapp", string(got.Action.Kind))
}

func TestAsk_RequiresMessage(t *testing.T) {
	_, err := execute(t, "", "ask")
	require.Error(t, err)
}

func TestClassify(t *testing.T) {
	out, err := execute(t, "", "classify", "hi there")
	require.NoError(t, err)
	require.Equal(t, "greeting\n", out)
}

func TestRules_ListsEvaluationOrder(t *testing.T) {
	out, err := execute(t, "", "rules")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	order := triage.NewClassifier(nil).RuleOrder()
	require.Len(t, lines, len(order))
	require.Equal(t, " 1. founder_info", lines[0])
	require.Equal(t, "18. general", lines[len(lines)-1])
}

func TestChat_NoDelay(t *testing.T) {
	out, err := execute(t, "Who founded JOMIEZ?\n\nCan I email you?\nexit\nhi\n", "chat", "--no-delay")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "bot> Hello! Welcome to JOMIEZ."), out)
	require.Contains(t, out, "Jomi Ezekiel")
	require.Contains(t, out, "[Email us] mailto:hello@jomiez.com")
	// Input after "exit" is not answered.
	require.Equal(t, 1, strings.Count(out, "Welcome to JOMIEZ"))
}

func TestChat_EOFEndsSession(t *testing.T) {
	out, err := execute(t, "hello", "chat", "--no-delay")
	require.NoError(t, err)
	require.Equal(t, 2, strings.Count(out, "Welcome to JOMIEZ"))
}

func TestRunChat_CancelledWhileTyping(t *testing.T) {
	engine = triage.NewEngine(knowledge.Default())
	t.Cleanup(func() { engine = nil })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	err := runChat(ctx, strings.NewReader("hi\nWho founded JOMIEZ?\n"), &out, true)
	require.NoError(t, err)
	require.NotContains(t, out.String(), "Jomi Ezekiel")
}

func TestKBFlag_LoadsFile(t *testing.T) {
	path := writeFile(t, "kb.yaml", acmeYAML)
	out, err := execute(t, "", "ask", "--kb", path, "hello")
	require.NoError(t, err)
	require.Contains(t, out, "Welcome to Acme")
}

func TestKBFlag_MissingFile(t *testing.T) {
	_, err := execute(t, "", "classify", "--kb", filepath.Join(t.TempDir(), "nope.yaml"), "hi")
	require.Error(t, err)
	require.Contains(t, err.Error(), "read")
}

func TestLoadConfig_Defaults(t *testing.T) {
	c, err := LoadConfig("", nil)
	require.NoError(t, err)
	require.Empty(t, c.KBPath)
	require.False(t, c.NoDelay)
	require.Equal(t, "built-in", c.Source())

	kb, err := c.KnowledgeBase()
	require.NoError(t, err)
	require.Equal(t, "JOMIEZ", kb.Company.Name)
}

func TestLoadConfig_FileEnvAndFlagPrecedence(t *testing.T) {
	kbFile := writeFile(t, "kb.yaml", acmeYAML)
	conf := writeFile(t, "chatcli.yaml", "kb: /from/file.yaml\nno_delay: true\ncontact:\n  email: sales@acme.test\n")

	c, err := LoadConfig(conf, nil)
	require.NoError(t, err)
	require.Equal(t, "/from/file.yaml", c.KBPath)
	require.True(t, c.NoDelay)
	require.Equal(t, "sales@acme.test", c.Contact.Email)

	t.Setenv("CHATCLI_KB", "/from/env.yaml")
	t.Setenv("CHATCLI_CONTACT_WHATSAPP_NUMBER", "+1 555 0100")
	c, err = LoadConfig(conf, nil)
	require.NoError(t, err)
	require.Equal(t, "/from/env.yaml", c.KBPath)
	require.Equal(t, "+1 555 0100", c.Contact.WhatsAppNumber)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("kb", "", "")
	require.NoError(t, flags.Parse([]string{"--kb", kbFile}))
	c, err = LoadConfig(conf, flags)
	require.NoError(t, err)
	require.Equal(t, kbFile, c.KBPath)

	kb, err := c.KnowledgeBase()
	require.NoError(t, err)
	require.Equal(t, "Acme", kb.Company.Name)
	require.Equal(t, "sales@acme.test", kb.Contact.Email)
	require.Equal(t, "+1 555 0100", kb.Contact.WhatsAppNumber)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "reading config")
}
