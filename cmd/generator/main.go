package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/letmevibethatforyou/wordsearchx"
	"github.com/letmevibethatforyou/wordsearchx/internal/ddb"
	"github.com/segmentio/ksuid"
	"github.com/urfave/cli/v2"
)

// PutItemAPI is the DynamoDB operation the generator needs.
type PutItemAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

var dictionary = []string{
	"GOPHER", "CHANNEL", "MUTEX", "SLICE", "STRUCT", "INTERFACE", "DEFER", "PANIC",
	"RANGE", "SELECT", "BUFFER", "CONTEXT", "TICKER", "WAITGROUP", "POINTER", "STRING",
	"MODULE", "VENDOR", "ERRGROUP", "LAMBDA", "STREAM", "BITMAP", "INDEX", "GRID",
}

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// generatePuzzle places up to wordCount dictionary words on a size x size
// board along random directions, then fills the remaining cells with random
// letters. Words that cannot be placed after a few attempts are skipped.
func generatePuzzle(rng *rand.Rand, size, wordCount int) ddb.PuzzleObject {
	board := make([][]byte, size)
	for r := range board {
		board[r] = make([]byte, size)
	}

	var placed []string
	for _, i := range rng.Perm(len(dictionary)) {
		if len(placed) == wordCount {
			break
		}
		word := dictionary[i]
		if len(word) > size {
			continue
		}
		if placeWord(rng, board, word) {
			placed = append(placed, word)
		}
	}

	rows := make([]string, size)
	for r := range board {
		for c := range board[r] {
			if board[r][c] == 0 {
				board[r][c] = alphabet[rng.IntN(len(alphabet))]
			}
		}
		rows[r] = string(board[r])
	}

	return ddb.PuzzleObject{Rows: rows, Words: placed}
}

func placeWord(rng *rand.Rand, board [][]byte, word string) bool {
	size := len(board)
	for attempt := 0; attempt < 50; attempt++ {
		d := wordsearchx.Directions[rng.IntN(len(wordsearchx.Directions))]
		r, c := rng.IntN(size), rng.IntN(size)

		if !fits(board, word, r, c, d) {
			continue
		}
		for k := 0; k < len(word); k++ {
			board[r+k*d.DRow][c+k*d.DCol] = word[k]
		}
		return true
	}
	return false
}

func fits(board [][]byte, word string, r, c int, d wordsearchx.Direction) bool {
	size := len(board)
	for k := 0; k < len(word); k++ {
		rr, cc := r+k*d.DRow, c+k*d.DCol
		if rr < 0 || rr >= size || cc < 0 || cc >= size {
			return false
		}
		if cell := board[rr][cc]; cell != 0 && cell != word[k] {
			return false
		}
	}
	return true
}

func insertPuzzle(ctx context.Context, client PutItemAPI, tableName string, puzzle ddb.PuzzleObject) (string, error) {
	id := ksuid.New().String()

	item, err := ddb.MarshalRecord(ddb.PuzzleRecord{
		ID:     id,
		Kind:   ddb.KindPuzzle,
		Object: puzzle,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal puzzle record: %w", err)
	}

	_, err = client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(tableName),
		Item:      item,
	})
	if err != nil {
		return "", fmt.Errorf("failed to put item in DynamoDB: %w", err)
	}

	slog.InfoContext(ctx, "Successfully inserted puzzle",
		"id", id,
		"size", len(puzzle.Rows),
		"words", strings.Join(puzzle.Words, ","),
	)

	return id, nil
}

func runAction(c *cli.Context) error {
	ctx := c.Context
	env := c.String("env")
	tableName := c.String("table-name")
	count := c.Int("count")
	size := c.Int("size")
	words := c.Int("words")

	if size <= 0 || words < 0 {
		return fmt.Errorf("size must be positive and words non-negative, got size=%d words=%d", size, words)
	}

	slog.InfoContext(ctx, "Starting puzzle generator",
		"environment", env,
		"table", tableName,
		"count", count,
		"size", size,
		"words", words,
	)

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := dynamodb.NewFromConfig(cfg)
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))

	for i := 0; i < count; i++ {
		puzzle := generatePuzzle(rng, size, words)
		if _, err := insertPuzzle(ctx, client, tableName, puzzle); err != nil {
			return fmt.Errorf("failed to insert puzzle %d: %w", i+1, err)
		}
	}

	slog.InfoContext(ctx, "Successfully generated and inserted all puzzles", "count", count)
	return nil
}

func main() {
	// Configure JSON logging for AWS environments
	if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" || os.Getenv("AWS_REGION") != "" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}

	app := &cli.App{
		Name:  "generator",
		Usage: "Generate random word-search puzzles and insert them into DynamoDB",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "env",
				Aliases:  []string{"e"},
				Usage:    "Environment name",
				EnvVars:  []string{"ENVIRONMENT"},
				Required: true,
			},
			&cli.StringFlag{
				Name:     "table-name",
				Aliases:  []string{"t"},
				Usage:    "DynamoDB table name",
				EnvVars:  []string{"TABLE_NAME"},
				Required: true,
			},
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"c"},
				Usage:   "Number of puzzles to generate",
				Value:   1,
			},
			&cli.IntFlag{
				Name:  "size",
				Usage: "Grid side length",
				Value: 12,
			},
			&cli.IntFlag{
				Name:  "words",
				Usage: "Number of words to hide per puzzle",
				Value: 8,
			},
		},
		Action: runAction,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}
