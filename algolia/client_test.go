package algolia

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/letmevibethatforyou/wordsearchx"
)

type fakeWriter struct {
	savedIndex string
	saved      []map[string]interface{}
	deletedIdx string
	filter     string
	calls      []string
	saveErr    error
	deleteErr  error
}

func (f *fakeWriter) saveObjects(ctx context.Context, indexName string, objects []map[string]interface{}) error {
	f.calls = append(f.calls, "save")
	f.savedIndex = indexName
	f.saved = objects
	return f.saveErr
}

func (f *fakeWriter) deleteBy(ctx context.Context, indexName, filter string) error {
	f.calls = append(f.calls, "delete "+filter)
	f.deletedIdx = indexName
	f.filter = filter
	return f.deleteErr
}

func testSolution() *wordsearchx.Solution {
	return &wordsearchx.Solution{
		PuzzleID: "p1",
		Rows:     3,
		Cols:     3,
		Matches: []wordsearchx.Match{
			{Word: "ABC", Found: true, Path: []wordsearchx.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}},
			{Word: "SEE"},
		},
	}
}

func TestSolutionObjects(t *testing.T) {
	objects := SolutionObjects(testSolution())

	if len(objects) != 2 {
		t.Fatalf("Expected 2 objects, got %d", len(objects))
	}

	first := objects[0]
	if first["objectID"] != "p1#0" {
		t.Errorf("Expected objectID p1#0, got %v", first["objectID"])
	}
	if first["puzzle_id"] != "p1" || first["word"] != "ABC" || first["found"] != true {
		t.Errorf("Unexpected first object %v", first)
	}
	if start, ok := first["start"].(wordsearchx.Coord); !ok || start != (wordsearchx.Coord{Row: 0, Col: 0}) {
		t.Errorf("Unexpected start %v", first["start"])
	}

	second := objects[1]
	if second["objectID"] != "p1#1" || second["found"] != false {
		t.Errorf("Unexpected second object %v", second)
	}
	if _, ok := second["path"]; ok {
		t.Error("Missing word should not carry a path")
	}
}

func TestClient_SaveSolution(t *testing.T) {
	w := &fakeWriter{}
	client := newClient(w)

	if err := client.SaveSolution(context.Background(), "solutions", testSolution()); err != nil {
		t.Fatalf("SaveSolution failed: %v", err)
	}
	if w.savedIndex != "solutions" {
		t.Errorf("Expected index 'solutions', got %q", w.savedIndex)
	}
	if len(w.saved) != 2 {
		t.Errorf("Expected 2 objects saved, got %d", len(w.saved))
	}

	// An empty word list only clears what was there before.
	w = &fakeWriter{}
	client = newClient(w)
	if err := client.SaveSolution(context.Background(), "solutions", &wordsearchx.Solution{PuzzleID: "empty"}); err != nil {
		t.Fatalf("SaveSolution failed: %v", err)
	}
	if w.saved != nil {
		t.Error("Empty solution should not be written")
	}
	if want := `puzzle_id:"empty"`; w.filter != want {
		t.Errorf("Expected filter %s, got %s", want, w.filter)
	}
}

func TestClient_SaveSolution_ShrinkingWordList(t *testing.T) {
	w := &fakeWriter{}
	client := newClient(w)

	sol := testSolution()
	sol.Matches = append(sol.Matches, wordsearchx.Match{Word: "FED"})
	if err := client.SaveSolution(context.Background(), "solutions", sol); err != nil {
		t.Fatalf("SaveSolution failed: %v", err)
	}

	w.calls = nil
	if err := client.SaveSolution(context.Background(), "solutions", testSolution()); err != nil {
		t.Fatalf("SaveSolution failed: %v", err)
	}

	want := []string{`delete puzzle_id:"p1"`, "save"}
	if !slices.Equal(w.calls, want) {
		t.Errorf("Expected calls %v, got %v", want, w.calls)
	}
	if len(w.saved) != 2 {
		t.Errorf("Expected 2 objects saved, got %d", len(w.saved))
	}
}

func TestClient_Errors(t *testing.T) {
	w := &fakeWriter{saveErr: errors.New("boom")}
	client := newClient(w)

	err := client.SaveSolution(context.Background(), "solutions", testSolution())
	if err == nil || !strings.Contains(err.Error(), "failed to save solution p1 to Algolia index solutions") {
		t.Errorf("Unexpected save error: %v", err)
	}

	w = &fakeWriter{deleteErr: errors.New("boom")}
	client = newClient(w)

	err = client.SaveSolution(context.Background(), "solutions", testSolution())
	if err == nil || !strings.Contains(err.Error(), "failed to clear previous solution p1") {
		t.Errorf("Unexpected clear error: %v", err)
	}
	if w.saved != nil {
		t.Error("Objects should not be saved when clearing fails")
	}

	err = client.DeleteSolution(context.Background(), "solutions", "p1")
	if err == nil || !strings.Contains(err.Error(), "failed to delete solution p1") {
		t.Errorf("Unexpected delete error: %v", err)
	}
}

func TestClient_DeleteSolution(t *testing.T) {
	w := &fakeWriter{}
	client := newClient(w)

	if err := client.DeleteSolution(context.Background(), "solutions", `odd"id`); err != nil {
		t.Fatalf("DeleteSolution failed: %v", err)
	}
	if w.deletedIdx != "solutions" {
		t.Errorf("Expected index 'solutions', got %q", w.deletedIdx)
	}
	if want := `puzzle_id:"odd\"id"`; w.filter != want {
		t.Errorf("Expected filter %s, got %s", want, w.filter)
	}
}

func TestNewClient_MissingCredentials(t *testing.T) {
	tests := map[string]struct {
		fetch   FetchSecrets
		wantErr string
	}{
		"empty app id": {
			fetch:   StaticSecrets("", "key"),
			wantErr: "AppID is empty",
		},
		"empty api key": {
			fetch:   StaticSecrets("app", ""),
			wantErr: "WriteApiKey is empty",
		},
		"fetch failure": {
			fetch: func() (Secrets, error) {
				return Secrets{}, errors.New("vault sealed")
			},
			wantErr: "failed to fetch secrets",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			client := NewClient(tt.fetch)
			err := client.SaveSolution(context.Background(), "solutions", testSolution())
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestEnvSecrets(t *testing.T) {
	t.Setenv("ALGOLIA_APP_ID", "")
	t.Setenv("ALGOLIA_API_KEY", "")
	if _, err := EnvSecrets()(); err == nil {
		t.Error("Expected error when ALGOLIA_APP_ID is unset")
	}

	t.Setenv("ALGOLIA_APP_ID", "env-app")
	if _, err := EnvSecrets()(); err == nil {
		t.Error("Expected error when ALGOLIA_API_KEY is unset")
	}

	t.Setenv("ALGOLIA_API_KEY", "env-key")
	secrets, err := EnvSecrets()()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if secrets.AppID != "env-app" || secrets.WriteApiKey != "env-key" {
		t.Errorf("Unexpected secrets %+v", secrets)
	}
}
