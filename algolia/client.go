// Package algolia publishes solved word-search puzzles to an Algolia index so
// word paths can be looked up without re-solving.
package algolia

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/algolia/algoliasearch-client-go/v3/algolia/opt"
	"github.com/algolia/algoliasearch-client-go/v3/algolia/search"
	"github.com/cockroachdb/errors"
	"github.com/letmevibethatforyou/wordsearchx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Secrets holds the Algolia application credentials.
type Secrets struct {
	// AppID is the Algolia application ID.
	AppID string `json:"app_id"`
	// WriteApiKey is the Algolia write API key.
	WriteApiKey string `json:"write_api_key"`
}

// FetchSecrets is a function type that retrieves Algolia credentials.
type FetchSecrets func() (Secrets, error)

// StaticSecrets returns a FetchSecrets function that provides static credentials.
func StaticSecrets(appID, writeApiKey string) FetchSecrets {
	return func() (Secrets, error) {
		return Secrets{
			AppID:       appID,
			WriteApiKey: writeApiKey,
		}, nil
	}
}

// EnvSecrets reads credentials from ALGOLIA_APP_ID and ALGOLIA_API_KEY.
func EnvSecrets() FetchSecrets {
	return func() (Secrets, error) {
		appID := os.Getenv("ALGOLIA_APP_ID")
		if appID == "" {
			return Secrets{}, errors.New("ALGOLIA_APP_ID environment variable is not set")
		}

		apiKey := os.Getenv("ALGOLIA_API_KEY")
		if apiKey == "" {
			return Secrets{}, errors.New("ALGOLIA_API_KEY environment variable is not set")
		}

		return Secrets{
			AppID:       appID,
			WriteApiKey: apiKey,
		}, nil
	}
}

// indexWriter is the subset of index operations the publisher needs.
// The v3 SDK takes no context, so lazyWriter ignores ctx.
type indexWriter interface {
	saveObjects(ctx context.Context, indexName string, objects []map[string]interface{}) error
	deleteBy(ctx context.Context, indexName, filter string) error
}

// lazyWriter builds the Algolia client on first use.
type lazyWriter struct {
	getClient func() (*search.Client, error)
}

func newLazyWriter(fetchSecrets FetchSecrets) *lazyWriter {
	getClient := sync.OnceValues(func() (*search.Client, error) {
		secrets, err := fetchSecrets()
		if err != nil {
			return nil, errors.Wrap(err, "failed to fetch secrets")
		}

		if secrets.AppID == "" {
			return nil, errors.New("AppID is empty")
		}

		if secrets.WriteApiKey == "" {
			return nil, errors.New("WriteApiKey is empty")
		}

		return search.NewClient(secrets.AppID, secrets.WriteApiKey), nil
	})
	return &lazyWriter{getClient: getClient}
}

func (w *lazyWriter) saveObjects(ctx context.Context, indexName string, objects []map[string]interface{}) error {
	client, err := w.getClient()
	if err != nil {
		return err
	}
	_, err = client.InitIndex(indexName).SaveObjects(objects)
	return err
}

func (w *lazyWriter) deleteBy(ctx context.Context, indexName, filter string) error {
	client, err := w.getClient()
	if err != nil {
		return err
	}
	_, err = client.InitIndex(indexName).DeleteBy(opt.Filters(filter))
	return err
}

// Client publishes puzzle solutions to Algolia.
type Client struct {
	writer indexWriter
	tracer trace.Tracer
}

// NewClient creates a Client. Credentials are fetched on the first write.
func NewClient(fetchSecrets FetchSecrets) *Client {
	return newClient(newLazyWriter(fetchSecrets))
}

func newClient(w indexWriter) *Client {
	return &Client{
		writer: w,
		tracer: otel.Tracer("wordsearchx-algolia"),
	}
}

// SolutionObjects converts a solution into one Algolia object per word.
// Object IDs are "<puzzle>#<word index>".
func SolutionObjects(sol *wordsearchx.Solution) []map[string]interface{} {
	objects := make([]map[string]interface{}, 0, len(sol.Matches))
	for i, m := range sol.Matches {
		obj := map[string]interface{}{
			"objectID":   fmt.Sprintf("%s#%d", sol.PuzzleID, i),
			"puzzle_id":  sol.PuzzleID,
			"word_index": i,
			"word":       m.Word,
			"found":      m.Found,
		}
		if m.Found {
			obj["path"] = m.Path
			obj["start"] = m.Path[0]
		}
		objects = append(objects, obj)
	}
	return objects
}

// SaveSolution replaces the objects of sol.PuzzleID in indexName with one
// object per word of sol. Objects left over from an earlier, longer word
// list are deleted first.
func (c *Client) SaveSolution(ctx context.Context, indexName string, sol *wordsearchx.Solution) error {
	if sol == nil {
		return nil
	}

	ctx, span := c.tracer.Start(ctx, "algolia.save_solution",
		trace.WithAttributes(
			attribute.String("algolia.index_name", indexName),
			attribute.String("wordsearch.puzzle_id", sol.PuzzleID),
			attribute.Int("wordsearch.word_count", len(sol.Matches)),
			attribute.Int("wordsearch.found_count", sol.FoundCount()),
		),
	)
	defer span.End()

	if err := c.writer.deleteBy(ctx, indexName, puzzleFilter(sol.PuzzleID)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, fmt.Sprintf("failed to clear previous solution in index %s", indexName))
		return errors.Wrapf(err, "failed to clear previous solution %s in Algolia index %s", sol.PuzzleID, indexName)
	}

	if len(sol.Matches) == 0 {
		span.SetStatus(codes.Ok, "solution cleared")
		return nil
	}

	if err := c.writer.saveObjects(ctx, indexName, SolutionObjects(sol)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, fmt.Sprintf("failed to save solution to index %s", indexName))
		return errors.Wrapf(err, "failed to save solution %s to Algolia index %s", sol.PuzzleID, indexName)
	}

	span.SetStatus(codes.Ok, "solution saved successfully")
	return nil
}

// DeleteSolution removes every object of puzzleID from indexName.
// puzzle_id must be declared in the index's attributesForFaceting.
func (c *Client) DeleteSolution(ctx context.Context, indexName, puzzleID string) error {
	ctx, span := c.tracer.Start(ctx, "algolia.delete_solution",
		trace.WithAttributes(
			attribute.String("algolia.index_name", indexName),
			attribute.String("wordsearch.puzzle_id", puzzleID),
		),
	)
	defer span.End()

	if err := c.writer.deleteBy(ctx, indexName, puzzleFilter(puzzleID)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, fmt.Sprintf("failed to delete solution from index %s", indexName))
		return errors.Wrapf(err, "failed to delete solution %s from Algolia index %s", puzzleID, indexName)
	}

	span.SetStatus(codes.Ok, "solution deleted successfully")
	return nil
}

func puzzleFilter(puzzleID string) string {
	return fmt.Sprintf("puzzle_id:%q", puzzleID)
}
