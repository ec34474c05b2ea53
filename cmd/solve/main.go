package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/letmevibethatforyou/wordsearchx"
	"github.com/letmevibethatforyou/wordsearchx/inmemory"
	"github.com/urfave/cli/v2"
)

const (
	defaultTimeout = 30 * time.Second
	cliPuzzleID    = "cli"
)

func main() {
	if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" || os.Getenv("AWS_REGION") != "" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}

	if err := newApp().Run(os.Args); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "solve",
		Usage: "Find words in a letter grid along any of the eight directions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "puzzle",
				Aliases: []string{"p"},
				Usage:   `Path to a puzzle JSON file ({"rows": [...], "words": [...]}); "-" reads stdin`,
			},
			&cli.StringSliceFlag{
				Name:    "row",
				Aliases: []string{"r"},
				Usage:   "Grid row; repeat once per row (ignored when --puzzle is set)",
			},
			&cli.StringSliceFlag{
				Name:    "word",
				Aliases: []string{"w"},
				Usage:   "Word to find; repeatable, appended to any words in the puzzle file",
			},
			&cli.IntFlag{
				Name:    "threads",
				Aliases: []string{"t"},
				Usage:   "Number of parallel workers",
				EnvVars: []string{"WORDSEARCH_THREADS"},
				Value:   runtime.NumCPU(),
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Timeout for the whole solve",
				Value: defaultTimeout,
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log solver diagnostics",
			},
		},
		Action: runAction,
	}
}

func runAction(c *cli.Context) error {
	ctx := c.Context

	threads := c.Int("threads")
	if threads <= 0 {
		slog.WarnContext(ctx, "threads must be positive; falling back to default", "threads", threads, "default", runtime.NumCPU())
		threads = runtime.NumCPU()
	}

	timeout := c.Duration("timeout")
	if timeout <= 0 {
		slog.WarnContext(ctx, "timeout must be positive; using default", "timeout", timeout, "default", defaultTimeout)
		timeout = defaultTimeout
	}

	data, err := loadPuzzle(c.String("puzzle"), c.StringSlice("row"), c.StringSlice("word"))
	if err != nil {
		return fmt.Errorf("invalid puzzle: %w", err)
	}

	store := inmemory.New()
	if err := store.AddJSON(cliPuzzleID, data); err != nil {
		return fmt.Errorf("invalid puzzle: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := []wordsearchx.SolveOption{wordsearchx.WithThreads(threads)}
	if c.Bool("verbose") {
		opts = append(opts, wordsearchx.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	}

	sol, err := store.Solve(ctx, cliPuzzleID, opts...)
	if err != nil {
		return fmt.Errorf("solve failed: %w", err)
	}

	if missing := sol.Missing(); len(missing) > 0 {
		slog.WarnContext(ctx, "some words were not found", "missing", missing)
	}

	if err := printSolution(c.App.Writer, sol); err != nil {
		return fmt.Errorf("failed to serialize solution: %w", err)
	}

	return nil
}

// loadPuzzle returns the puzzle JSON from a file, or builds it from flags.
// Words given on the command line are appended to those in the file.
func loadPuzzle(path string, rows, words []string) ([]byte, error) {
	var puzzle struct {
		Rows  []string   `json:"rows,omitempty"`
		Cells [][]string `json:"cells,omitempty"`
		Words []string   `json:"words"`
	}

	switch path = strings.TrimSpace(path); path {
	case "":
		if len(rows) == 0 {
			return nil, fmt.Errorf("either --puzzle or at least one --row is required")
		}
		puzzle.Rows = rows
	default:
		var (
			raw []byte
			err error
		)
		if path == "-" {
			raw, err = io.ReadAll(os.Stdin)
		} else {
			raw, err = os.ReadFile(path)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read puzzle %s: %w", path, err)
		}
		if err := json.Unmarshal(raw, &puzzle); err != nil {
			return nil, fmt.Errorf("failed to parse puzzle %s: %w", path, err)
		}
	}

	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			return nil, fmt.Errorf("word cannot be empty")
		}
		puzzle.Words = append(puzzle.Words, w)
	}

	return json.Marshal(puzzle)
}

func printSolution(w io.Writer, sol *wordsearchx.Solution) error {
	data, err := json.MarshalIndent(sol, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal solution: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))
	return err
}
