// Command recipeparse parses recipe text files and prints the results as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-import/backend/internal/logger"
	"github.com/pageza/alchemorsel-import/backend/internal/metrics"
	"github.com/pageza/alchemorsel-import/backend/internal/service"
)

func main() {
	log, err := logger.New(logger.Config{Level: "warn", Format: "console", ServiceName: "recipeparse"})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := newCommand(log, os.Stdin, os.Stdout).Run(context.Background(), os.Args); err != nil {
		log.Error("parse failed", zap.Error(err))
		os.Exit(1)
	}
}

func newCommand(log *zap.Logger, stdin io.Reader, stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "recipeparse",
		Usage:     "Parse pasted recipe text into structured JSON",
		ArgsUsage: "[FILE...]",
		Description: `Parses each FILE, or standard input when no file is given,
and writes a JSON array with one recipe per input to standard output.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "number of parallel parses (0 uses GOMAXPROCS)",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "indent the JSON output",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			texts, err := readInputs(cmd.Args().Slice(), stdin)
			if err != nil {
				return err
			}

			parseService := service.NewParseService(nil, metrics.New(), log, 0)
			recipes, err := parseService.ParseBatch(ctx, texts, cmd.Int("concurrency"))
			if err != nil {
				return fmt.Errorf("failed to parse: %w", err)
			}

			enc := json.NewEncoder(stdout)
			if cmd.Bool("pretty") {
				enc.SetIndent("", "  ")
			}
			if err := enc.Encode(recipes); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		},
	}
}

func readInputs(paths []string, stdin io.Reader) ([]string, error) {
	if len(paths) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return []string{string(data)}, nil
	}

	texts := make([]string, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", path, err)
		}
		texts = append(texts, string(data))
	}
	return texts, nil
}
