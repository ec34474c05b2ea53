package main

import (
	"context"
	"log/slog"
	"os"
	"runtime"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/cockroachdb/errors"
	"github.com/letmevibethatforyou/wordsearchx"
	"github.com/letmevibethatforyou/wordsearchx/algolia"
	"github.com/letmevibethatforyou/wordsearchx/board"
	"github.com/letmevibethatforyou/wordsearchx/internal/ddb"
	"github.com/urfave/cli/v2"
)

// SolutionPublisher stores and removes solved puzzles.
type SolutionPublisher interface {
	SaveSolution(ctx context.Context, indexName string, sol *wordsearchx.Solution) error
	DeleteSolution(ctx context.Context, indexName, puzzleID string) error
}

// Handler solves puzzles arriving on the table stream and publishes their solutions.
type Handler struct {
	indexName string
	threads   int
	publisher SolutionPublisher
}

// NewHandler creates a Handler that solves with threads workers and writes to indexName.
func NewHandler(indexName string, threads int, publisher SolutionPublisher) *Handler {
	return &Handler{
		indexName: indexName,
		threads:   threads,
		publisher: publisher,
	}
}

// HandleDynamoDBEvent processes every record of a stream batch in order.
func (h *Handler) HandleDynamoDBEvent(ctx context.Context, e events.DynamoDBEvent) error {
	slog.InfoContext(ctx, "Processing DynamoDB stream records", "record_count", len(e.Records))

	for _, record := range e.Records {
		if err := h.processRecord(ctx, record); err != nil {
			slog.ErrorContext(ctx, "Error processing record", "error", err, "event_id", record.EventID)
			return err
		}
	}

	return nil
}

func (h *Handler) processRecord(ctx context.Context, record events.DynamoDBEventRecord) error {
	switch events.DynamoDBOperationType(record.EventName) {
	case events.DynamoDBOperationTypeInsert, events.DynamoDBOperationTypeModify:
		if len(record.Change.NewImage) == 0 {
			slog.WarnContext(ctx, "No new image for insert/modify operation, skipping record")
			return nil
		}

		parsed, err := ddb.UnmarshalStreamRecord(record.Change.NewImage)
		if err != nil {
			slog.WarnContext(ctx, "Failed to unmarshal record, skipping", "error", err)
			return nil
		}

		if parsed.ID == "" {
			slog.WarnContext(ctx, "Missing ID (pk) in record, skipping record")
			return nil
		}
		if !parsed.IsPuzzle() {
			slog.InfoContext(ctx, "Ignoring non-puzzle item", "id", parsed.ID, "kind", parsed.Kind)
			return nil
		}

		return h.handleUpsert(ctx, parsed)

	case events.DynamoDBOperationTypeRemove:
		// For delete operations, we only need the keys
		parsed, err := ddb.UnmarshalStreamRecord(record.Change.Keys)
		if err != nil {
			slog.WarnContext(ctx, "Failed to unmarshal keys for delete operation, skipping", "error", err)
			return nil
		}

		if parsed.ID == "" || !parsed.IsPuzzle() {
			slog.WarnContext(ctx, "Missing ID or non-puzzle key in delete record, skipping record")
			return nil
		}

		slog.InfoContext(ctx, "Deleting solution from Algolia", "puzzle_id", parsed.ID, "index", h.indexName)
		return h.publisher.DeleteSolution(ctx, h.indexName, parsed.ID)

	default:
		slog.InfoContext(ctx, "Ignoring event type", "event_type", record.EventName)
		return nil
	}
}

func (h *Handler) handleUpsert(ctx context.Context, record ddb.PuzzleRecord) error {
	g, err := board.FromRows(record.Object.Rows)
	if err != nil {
		slog.WarnContext(ctx, "Invalid puzzle grid, skipping record", "puzzle_id", record.ID, "error", err)
		return nil
	}

	words := record.Object.Words
	results := board.AllocateResults(words)

	found, err := wordsearchx.Solve(ctx, g, words, results, h.threads)
	if err != nil {
		return errors.Wrapf(err, "solve puzzle %s", record.ID)
	}

	sol := wordsearchx.NewSolution(g, words, results, found)
	sol.PuzzleID = record.ID
	sol.Threads = h.threads

	slog.InfoContext(ctx, "Saving solution to Algolia",
		"puzzle_id", record.ID,
		"index", h.indexName,
		"words", len(words),
		"found", sol.FoundCount(),
	)
	return h.publisher.SaveSolution(ctx, h.indexName, sol)
}

func main() {
	app := &cli.App{
		Name:  "solve-puzzle",
		Usage: "Solve puzzles from a DynamoDB stream and publish the solutions to Algolia",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "index-name",
				Usage:    "Algolia index receiving solutions",
				EnvVars:  []string{"ALGOLIA_INDEX"},
				Required: true,
			},
			&cli.IntFlag{
				Name:    "threads",
				Usage:   "Workers per solve",
				EnvVars: []string{"WORDSEARCH_THREADS"},
				Value:   runtime.NumCPU(),
			},
			&cli.StringFlag{
				Name:    "env",
				Usage:   "Environment name for AWS Secrets Manager (takes precedence over API key/ID flags)",
				EnvVars: []string{"ENV", "ENVIRONMENT"},
			},
			&cli.StringFlag{
				Name:    "algolia-app-id",
				Usage:   "Algolia application ID",
				EnvVars: []string{"ALGOLIA_APP_ID"},
			},
			&cli.StringFlag{
				Name:    "algolia-api-key",
				Usage:   "Algolia API key",
				EnvVars: []string{"ALGOLIA_API_KEY"},
			},
		},
		Action: runAction,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func runAction(c *cli.Context) error {
	ctx := c.Context
	indexName := c.String("index-name")
	env := c.String("env")
	algoliaAppID := c.String("algolia-app-id")
	algoliaAPIKey := c.String("algolia-api-key")

	threads := c.Int("threads")
	if threads <= 0 {
		slog.WarnContext(ctx, "threads must be positive; falling back to default", "threads", threads)
		threads = runtime.NumCPU()
	}

	slog.InfoContext(ctx, "Starting puzzle solver", "index", indexName, "environment", env, "threads", threads)

	var fetchSecrets algolia.FetchSecrets

	switch {
	case env != "":
		slog.InfoContext(ctx, "Using AWS Secrets Manager for credentials", "environment", env)

		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to load AWS config", "error", err)
			return err
		}

		fetchSecrets = algolia.AWSSecrets(ctx, secretsmanager.NewFromConfig(cfg), env)
	case algoliaAppID != "" && algoliaAPIKey != "":
		slog.InfoContext(ctx, "Using static credentials from flags")
		fetchSecrets = algolia.StaticSecrets(algoliaAppID, algoliaAPIKey)
	default:
		slog.InfoContext(ctx, "Using environment variables for credentials")
		fetchSecrets = algolia.EnvSecrets()
	}

	handler := NewHandler(indexName, threads, algolia.NewClient(fetchSecrets))

	if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
		slog.InfoContext(ctx, "Running in Lambda environment")
		lambda.Start(handler.HandleDynamoDBEvent)
	} else {
		slog.InfoContext(ctx, "Function cannot run outside of AWS Lambda environment")
	}

	return nil
}
