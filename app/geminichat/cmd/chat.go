package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cchalm/geminichat/internal/ai"
	"github.com/cchalm/geminichat/internal/config"
	"github.com/cchalm/geminichat/internal/logging"
	"github.com/cchalm/geminichat/internal/roles"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation",
	Long: `Starts an interactive conversation. Each line read from standard input is sent as a
question. Lines starting with a slash are commands:

  /role <name>  choose a preset system role (only before the first question)
  /history      print the conversation so far
  /new          start over with an empty conversation and an unlocked system role
  /quit         end the conversation`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().String("role", "", "Preset system role, see 'geminichat roles'")
	chatCmd.Flags().String("system", "", "Free-text system role ("+config.KeySystemRole+")")
	chatCmd.Flags().Bool("show-json", false, "Print the request and response JSON of each exchange")
	chatCmd.MarkFlagsMutuallyExclusive("role", "system")

	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := createLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := setupContext(logger)

	provider, err := createTelemetryProvider(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create telemetry provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			logger.Warn("Failed to shut down telemetry", zap.Error(err))
		}
	}()

	client, err := createTransport(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create transport: %w", err)
	}

	systemRole := cfg.SystemRole
	if name, _ := cmd.Flags().GetString("role"); name != "" {
		r, err := roles.Lookup(name)
		if err != nil {
			return err
		}
		systemRole = r.Text
	}
	if text, _ := cmd.Flags().GetString("system"); text != "" {
		systemRole = text
	}

	newConversation := func() *ai.Conversation {
		conv := ai.NewConversation(client,
			ai.WithLogger(logger),
			ai.WithTracer(provider.Tracer()),
		)
		conv.SetSystemRole(systemRole)
		logger.Debug("Starting conversation",
			zap.String("conversation_id", conv.ID()),
			zap.String("model", cfg.Model),
			zap.String("endpoint", client.Endpoint()),
		)
		return conv
	}

	showJSON, _ := cmd.Flags().GetBool("show-json")

	return repl(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), newConversation, showJSON)
}

var (
	userColor      = color.New(color.FgGreen, color.Bold)
	assistantColor = color.New(color.FgCyan, color.Bold)
	errorColor     = color.New(color.FgRed)
	dimColor       = color.New(color.Faint)
)

// repl reads questions from in until EOF, /quit or cancellation of ctx. newConversation is called once at the start
// and again for every /new command.
func repl(ctx context.Context, in io.Reader, out io.Writer, newConversation func() *ai.Conversation, showJSON bool) error {
	logger := logging.FromContext(ctx)
	conv := newConversation()
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		if ctx.Err() != nil {
			return nil
		}
		userColor.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}
		line := scanner.Text()

		if strings.HasPrefix(line, "/") {
			next, quit := runCommand(out, conv, newConversation, line)
			if quit {
				return nil
			}
			conv = next
			continue
		}

		interaction, err := conv.SendPrompt(ctx, line)
		if err != nil {
			logger.Debug("Prompt failed", zap.Error(err))
			printError(out, err)
			continue
		}

		if showJSON {
			dimColor.Fprintf(out, "Request:\n%s\nResponse:\n%s\n", interaction.RequestText, interaction.ResponseText)
		}
		assistantColor.Fprintln(out, "== Assistant:")
		fmt.Fprintln(out, interaction.Answer)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

// runCommand executes a slash command. It returns the conversation to continue with and whether the session should
// end.
func runCommand(out io.Writer, conv *ai.Conversation, newConversation func() *ai.Conversation, line string) (*ai.Conversation, bool) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return conv, true
	case "/new":
		conv = newConversation()
		fmt.Fprintln(out, "Started a new conversation")
	case "/history":
		transcript, err := conv.Transcript()
		if err != nil {
			printError(out, err)
			return conv, false
		}
		fmt.Fprint(out, transcript)
	case "/role":
		if conv.Active() {
			errorColor.Fprintln(out, "The system role cannot be changed once the conversation has started, use /new to start over")
			return conv, false
		}
		if len(fields) != 2 {
			errorColor.Fprintln(out, "Usage: /role <name>")
			return conv, false
		}
		r, err := roles.Lookup(fields[1])
		if err != nil {
			printError(out, err)
			return conv, false
		}
		conv.SetSystemRole(r.Text)
		fmt.Fprintf(out, "System role set to %s\n", r.Label)
	default:
		errorColor.Fprintf(out, "Unknown command %s\n", fields[0])
	}
	return conv, false
}

func printError(out io.Writer, err error) {
	switch ai.KindOf(err) {
	case ai.KindEmptyQuestion:
		errorColor.Fprintln(out, "The question is empty")
		return
	case ai.KindAPIRejected:
		var rejected *ai.APIRejectedError
		if errors.As(err, &rejected) {
			errorColor.Fprintf(out, "ERROR: the API rejected the request with status %d\n", rejected.StatusCode)
			fmt.Fprintln(out, rejected.Body)
			dimColor.Fprintf(out, "Request:\n%s\n", rejected.Request)
			return
		}
	}
	errorColor.Fprintf(out, "ERROR: %v\n", err)
}
