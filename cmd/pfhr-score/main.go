package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pfhr-workers/internal/common/logger"
	"pfhr-workers/internal/pfhr"
	computescore "pfhr-workers/internal/workers/pfhr/compute-pfhr-score"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pfhr-score [file]",
		Short: "Compute a PFHR score from a JSON inputs document",
		Long: `Reads PFHR inputs (monetary fields in cents) from a file, or from stdin when the
file is omitted or "-", validates them and prints the score, breakdown, risk level
and recommendations as JSON.

Examples:
  pfhr-score inputs.json --pretty
  cat inputs.json | pfhr-score`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runScore,
	}

	f := cmd.Flags()
	f.Bool("pretty", false, "indent the JSON output")
	f.String("log-level", "warn", "log level: debug, info, warn or error")
	return cmd
}

func runScore(cmd *cobra.Command, args []string) error {
	level, _ := cmd.Flags().GetString("log-level")
	pretty, _ := cmd.Flags().GetBool("pretty")
	log := logger.New(level, "console").With(zap.String("command", "pfhr-score"))
	defer func() { _ = log.Sync() }()

	raw, source, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	log.Debug("inputs read", zap.String("source", source), zap.Int("bytes", len(raw)))

	violations, err := computescore.ValidateInputs(raw)
	if err != nil {
		return fmt.Errorf("parse inputs: %w", err)
	}
	if len(violations) > 0 {
		return fmt.Errorf("invalid inputs:\n  %s", strings.Join(violations, "\n  "))
	}

	var in pfhr.Inputs
	if err := json.Unmarshal(raw, &in); err != nil {
		return fmt.Errorf("decode inputs: %w", err)
	}

	result, err := pfhr.Compute(in)
	if err != nil {
		return err
	}
	log.Info("score computed", zap.Float64("score", result.Score), zap.String("riskLevel", string(result.RiskLevel)))

	enc := json.NewEncoder(cmd.OutOrStdout())
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}

func readInput(stdin io.Reader, args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == "-" {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return bytes.TrimSpace(raw), "stdin", nil
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return bytes.TrimSpace(raw), args[0], nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
