package rag

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lexumbra/lexumbra/internal/errors"
)

const testRulebook = `{
  "rules": [
    {
      "id": "FRCP 12(b)(6)",
      "title": "Motion to Dismiss",
      "text": "A party may move to dismiss for failure to state a claim upon which relief can be granted.",
      "keywords": ["dismiss", "failure to state a claim"]
    },
    {
      "id": "FRCP 56",
      "title": "Summary Judgment",
      "text": "The court shall grant summary judgment if there is no genuine dispute as to any material fact.",
      "keywords": ["summary judgment", "material fact"]
    },
    {
      "id": "FRE 403",
      "title": "Excluding Relevant Evidence",
      "text": "The court may exclude relevant evidence if its probative value is substantially outweighed by unfair prejudice.",
      "keywords": ["prejudice", "probative", "exclude evidence"]
    }
  ]
}`

func writeRulebook(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rulebook.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("writing rulebook fixture: %v", err)
	}
	return path
}

func TestLoadMissingRulebook(t *testing.T) {
	_, err := Load("/nonexistent/rulebook.json", 16, nil)
	if err == nil {
		t.Fatal("expected error for missing rulebook")
	}
	if !errors.IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestLoadMalformedRulebook(t *testing.T) {
	path := writeRulebook(t, "{bad")
	if _, err := Load(path, 16, nil); err == nil {
		t.Fatal("expected error for malformed rulebook")
	}
}

func TestSearchRanksKeywordMatchesFirst(t *testing.T) {
	rb, err := Load(writeRulebook(t, testRulebook), 16, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rb.Len() != 3 {
		t.Fatalf("Len = %d, want 3", rb.Len())
	}

	results := rb.Search("motion to dismiss the case", 3)
	if len(results) == 0 {
		t.Fatal("expected results for dismiss query")
	}
	if got := results[0]; got[:len("FRCP 12(b)(6)")] != "FRCP 12(b)(6)" {
		t.Errorf("top result = %q, want the dismissal rule first", got)
	}
}

func TestSearchRespectsLimit(t *testing.T) {
	rb, err := Load(writeRulebook(t, testRulebook), 16, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// "court" appears in the text of two rules.
	if got := rb.Search("court", 1); len(got) != 1 {
		t.Errorf("limit 1 returned %d results", len(got))
	}
	if got := rb.Search("court", 0); got != nil {
		t.Errorf("limit 0 returned %v", got)
	}
}

func TestSearchNoMatches(t *testing.T) {
	rb, err := Load(writeRulebook(t, testRulebook), 16, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := rb.Search("maritime salvage rights", 3); len(got) != 0 {
		t.Errorf("expected no results, got %v", got)
	}
	if got := rb.Search("   ", 3); got != nil {
		t.Errorf("blank query returned %v", got)
	}
}

func TestSearchCachesRepeatQueries(t *testing.T) {
	rb, err := Load(writeRulebook(t, testRulebook), 16, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	first := rb.Search("summary judgment", 2)
	if len(first) == 0 {
		t.Fatal("expected results")
	}
	if _, ok := rb.cache.Get("2|summary judgment"); !ok {
		t.Error("query result not cached")
	}
	second := rb.Search("Summary Judgment", 2)
	if len(second) != len(first) || second[0] != first[0] {
		t.Errorf("cache-normalized query diverged: %v vs %v", first, second)
	}
}
