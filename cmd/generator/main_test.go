package main

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/letmevibethatforyou/wordsearchx"
	"github.com/letmevibethatforyou/wordsearchx/board"
	"github.com/letmevibethatforyou/wordsearchx/internal/ddb"
)

type mockPutItem struct {
	input *dynamodb.PutItemInput
	err   error
}

func (m *mockPutItem) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.input = params
	if m.err != nil {
		return nil, m.err
	}
	return &dynamodb.PutItemOutput{}, nil
}

func TestGeneratePuzzle_WordsAreFindable(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 1))

	for i := 0; i < 20; i++ {
		puzzle := generatePuzzle(rng, 12, 8)

		if len(puzzle.Rows) != 12 {
			t.Fatalf("Expected 12 rows, got %d", len(puzzle.Rows))
		}
		if len(puzzle.Words) == 0 || len(puzzle.Words) > 8 {
			t.Fatalf("Expected 1-8 placed words, got %d", len(puzzle.Words))
		}

		g, err := board.FromRows(puzzle.Rows)
		if err != nil {
			t.Fatalf("generated grid is invalid: %v", err)
		}

		results := board.AllocateResults(puzzle.Words)
		found, err := wordsearchx.Solve(context.Background(), g, puzzle.Words, results, 4)
		if err != nil {
			t.Fatalf("Solve failed: %v", err)
		}
		if int(found.GetCardinality()) != len(puzzle.Words) {
			t.Errorf("puzzle %d: found %d of %d placed words\n%s", i, found.GetCardinality(), len(puzzle.Words), g)
		}
	}
}

func TestGeneratePuzzle_SmallBoardSkipsLongWords(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 5))
	puzzle := generatePuzzle(rng, 4, 30)

	for _, w := range puzzle.Words {
		if len(w) > 4 {
			t.Errorf("word %q does not fit a 4x4 board", w)
		}
	}
}

func TestInsertPuzzle(t *testing.T) {
	client := &mockPutItem{}
	puzzle := ddb.PuzzleObject{Rows: []string{"GO", "OD"}, Words: []string{"GO"}}

	id, err := insertPuzzle(context.Background(), client, "puzzles", puzzle)
	if err != nil {
		t.Fatalf("insertPuzzle failed: %v", err)
	}
	if id == "" {
		t.Fatal("Expected a generated id")
	}
	if aws.ToString(client.input.TableName) != "puzzles" {
		t.Errorf("Expected table 'puzzles', got %q", aws.ToString(client.input.TableName))
	}

	rec, err := ddb.UnmarshalRecord(client.input.Item)
	if err != nil {
		t.Fatalf("UnmarshalRecord failed: %v", err)
	}
	if rec.ID != id || !rec.IsPuzzle() || len(rec.Object.Rows) != 2 {
		t.Errorf("Unexpected stored record %+v", rec)
	}

	client = &mockPutItem{err: errors.New("throttled")}
	if _, err := insertPuzzle(context.Background(), client, "puzzles", puzzle); err == nil {
		t.Error("Expected error from PutItem")
	}
}
