package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/textinsight/backend/internal/batch"
	"github.com/textinsight/backend/internal/engine"
	"github.com/textinsight/backend/internal/storage"
)

// errFailedBatch makes the process exit non-zero on a failing verdict.
var errFailedBatch = errors.New("batch failed")

func newAnalyzeCmd() *cobra.Command {
	var mode, in, out, keyword string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run one batch file through the sentiment or topic pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, entry, err := setup()
			if err != nil {
				return err
			}
			eng, err := engine.NewEngine(cfg, entry)
			if err != nil {
				return err
			}

			body, err := readInput(in, cmd.InOrStdin())
			if err != nil {
				return err
			}

			ctx, stop := withSignals(cmd.Context())
			defer stop()

			resp, err := analyzeBatch(ctx, eng, mode, body, keyword)
			if err != nil {
				return err
			}
			if err := writeOutput(out, resultName(in, mode), resp.Payload, cmd.OutOrStdout()); err != nil {
				return err
			}
			if resp.Status != http.StatusOK {
				return fmt.Errorf("%w: status %d", errFailedBatch, resp.Status)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "sentiment", "analysis mode: sentiment or topics")
	cmd.Flags().StringVarP(&in, "in", "i", "-", "batch request file, - for stdin")
	cmd.Flags().StringVarP(&out, "out", "o", "", "result file or directory, stdout when empty")
	cmd.Flags().StringVarP(&keyword, "keyword", "k", "", "keyword overriding options.search")
	return cmd
}

// analyzeBatch runs body through the pipeline named by mode.
func analyzeBatch(ctx context.Context, eng *engine.Engine, mode string, body []byte, keyword string) (batch.Response, error) {
	var pipeline batch.Pipeline
	switch mode {
	case "sentiment":
		pipeline = eng.Sentiment
	case "topics":
		pipeline = eng.Topics
	default:
		return batch.Response{}, fmt.Errorf("unknown mode %q", mode)
	}
	return batch.Handle(ctx, body, keyword, pipeline), nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch: %w", err)
	}
	return data, nil
}

// writeOutput writes payload to path as written, or through a result store
// named after the batch when path is a directory.
func writeOutput(path, batchName string, payload any, stdout io.Writer) error {
	if path == "" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		store, err := storage.NewFileStorage(path)
		if err != nil {
			return err
		}
		saved, err := store.Save(batchName, payload)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "wrote", saved)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	fmt.Fprintln(os.Stderr, "wrote", path)
	return nil
}

// resultName names a stored result after its input file.
func resultName(in, mode string) string {
	if in == "" || in == "-" {
		return mode
	}
	base := filepath.Base(in)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "-" + mode
}
