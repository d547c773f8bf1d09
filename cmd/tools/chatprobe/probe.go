package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/flaminghawk1207/mindmirror/backend/internal/config"
	"github.com/flaminghawk1207/mindmirror/backend/internal/logging"
	"github.com/flaminghawk1207/mindmirror/backend/internal/model/chat"
	"github.com/flaminghawk1207/mindmirror/backend/internal/service/ai"
)

type probeOptions struct {
	message      string
	mood         string
	intensity    float64
	hasIntensity bool
	historyFile  string
	printPrompt  bool
	timeout      time.Duration
}

func newRootCmd() *cobra.Command {
	var opts probeOptions

	cmd := &cobra.Command{
		Use:   "chatprobe",
		Short: "Send one message through the coaching pipeline",
		Long: `Send one message through the same prompt assembly, model call and reply
parsing as POST /api/chat, then print the parsed reply as JSON.

Examples:
  chatprobe --message "I can't sleep again"
  chatprobe --message "better today" --mood Sad --intensity 4
  chatprobe --history convo.json --message "still here" --print-prompt`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			logger, err := logging.New(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			svc, err := ai.NewService(ctx, cfg.AI, logging.Component(logger, "chatprobe"))
			if err != nil {
				return err
			}

			opts.hasIntensity = cmd.Flags().Changed("intensity")
			return runProbe(ctx, svc, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&opts.message, "message", "", "Message to send (required)")
	cmd.Flags().StringVar(&opts.mood, "mood", "", "Prior mood label")
	cmd.Flags().Float64Var(&opts.intensity, "intensity", 0, "Prior mood intensity")
	cmd.Flags().StringVar(&opts.historyFile, "history", "", "JSON file with [{\"role\",\"text\"}] turns")
	cmd.Flags().BoolVar(&opts.printPrompt, "print-prompt", false, "Print the assembled conversation to stderr before calling the model")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 60*time.Second, "Overall request timeout")
	cmd.MarkFlagRequired("message")

	return cmd
}

func runProbe(ctx context.Context, svc *ai.Service, opts probeOptions, out, errOut io.Writer) error {
	req, err := buildRequest(opts)
	if err != nil {
		return err
	}

	if opts.printPrompt {
		if err := printPrompt(errOut, svc, req); err != nil {
			return err
		}
	}

	reply, err := svc.Chat(ctx, req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(reply)
}

func buildRequest(opts probeOptions) (ai.ChatRequest, error) {
	req := ai.ChatRequest{Message: opts.message}

	if mood := strings.TrimSpace(opts.mood); mood != "" {
		req.Prior.Mood = &mood
	}
	if opts.hasIntensity {
		intensity := opts.intensity
		req.Prior.Intensity = &intensity
	}

	if opts.historyFile != "" {
		history, err := readHistory(opts.historyFile)
		if err != nil {
			return ai.ChatRequest{}, err
		}
		req.History = history
	}

	return req, nil
}

func readHistory(path string) ([]chat.Turn, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read history %s: %w", path, err)
	}

	var turns []chat.Turn
	if err := json.Unmarshal(data, &turns); err != nil {
		return nil, fmt.Errorf("parse history %s: %w", path, err)
	}
	return turns, nil
}

func printPrompt(w io.Writer, svc *ai.Service, req ai.ChatRequest) error {
	for i, msg := range svc.Preview(req) {
		if _, err := fmt.Fprintf(w, "--- [%d] %s\n%s\n", i, msg.Role, msg.Content); err != nil {
			return err
		}
	}
	return nil
}
