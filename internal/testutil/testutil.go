// Package testutil provides testing utilities for Lex Umbra tests.
package testutil

import (
	"context"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/lexumbra/lexumbra/internal/llm"
)

// FakeCompleter is a scripted llm.Completer for tests. If Script is set it
// decides every response; otherwise responses are served from the Responses
// queue in order, repeating the last entry once the queue is exhausted.
// It records every request and is safe for concurrent use.
type FakeCompleter struct {
	mu        sync.Mutex
	Script    func(req llm.Request) (string, error)
	Responses []string
	next      int
	calls     []llm.Request
}

// Complete implements llm.Completer.
func (f *FakeCompleter) Complete(_ context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, req)

	if f.Script != nil {
		return f.Script(req)
	}
	if len(f.Responses) == 0 {
		return "", nil
	}
	resp := f.Responses[min(f.next, len(f.Responses)-1)]
	f.next++
	return resp, nil
}

// CompleteStream implements llm.Completer by chunking the scripted response
// into word-sized fragments.
func (f *FakeCompleter) CompleteStream(ctx context.Context, req llm.Request) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		text, err := f.Complete(ctx, req)
		if err != nil {
			yield("", err)
			return
		}
		for i, word := range strings.Fields(text) {
			chunk := word
			if i > 0 {
				chunk = " " + word
			}
			if !yield(chunk, nil) {
				return
			}
		}
	}
}

// Calls returns a copy of every request received so far.
func (f *FakeCompleter) Calls() []llm.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]llm.Request, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns how many requests have been received.
func (f *FakeCompleter) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// LastCall returns the most recent request, or a zero Request if none.
func (f *FakeCompleter) LastCall() llm.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return llm.Request{}
	}
	return f.calls[len(f.calls)-1]
}

// WriteProfileStore writes a juror profile store JSON document into a temp
// directory and returns its path. The document is cleaned up with the test.
func WriteProfileStore(t *testing.T, doc string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "jurors.json")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("failed to write profile store: %v", err)
	}
	return path
}

// SixJurorProfiles is a profile store document seating six jurors with
// varied starting biases. Mirrors the shape of data/jurors.json.
const SixJurorProfiles = `{
  "jurors": [
    {
      "id": 1, "name": "Marcus", "occupation": "Construction Foreman", "age": 48,
      "background": "Runs framing crews on commercial sites.",
      "education": "High school diploma",
      "personality_traits": ["blunt", "practical"],
      "decision_style": "Trusts what he can verify with his own eyes.",
      "hidden_biases": {"pro": ["working people"], "anti": ["corporate lawyers"]},
      "initial_bias_score": 45
    },
    {
      "id": 2, "name": "Elena", "occupation": "High School Teacher", "age": 39,
      "background": "Teaches civics and debate.",
      "education": "M.Ed.",
      "personality_traits": ["empathetic", "organized"],
      "decision_style": "Weighs both sides carefully before committing.",
      "hidden_biases": {"pro": ["underdogs"], "anti": ["bullying tactics"]},
      "initial_bias_score": 62
    },
    {
      "id": 3, "name": "Raymond", "occupation": "Retired Accountant", "age": 67,
      "background": "Thirty years of corporate audits.",
      "education": "B.S. Accounting",
      "personality_traits": ["skeptical", "meticulous"],
      "decision_style": "Needs to see the numbers himself.",
      "hidden_biases": {"pro": ["documentation"], "anti": ["emotional appeals"]},
      "initial_bias_score": 38
    },
    {
      "id": 4, "name": "Destiny", "occupation": "Emergency Room Nurse", "age": 33,
      "background": "Night shifts in a county trauma center.",
      "education": "B.S.N.",
      "personality_traits": ["decisive", "compassionate"],
      "decision_style": "Triage instincts: act on the strongest signal.",
      "hidden_biases": {"pro": ["injury victims"], "anti": ["negligence"]},
      "initial_bias_score": 55
    },
    {
      "id": 5, "name": "Chen", "occupation": "Software Engineer", "age": 29,
      "background": "Builds distributed systems.",
      "education": "B.S. Computer Science",
      "personality_traits": ["analytical", "quiet"],
      "decision_style": "Looks for inconsistencies in the timeline.",
      "hidden_biases": {"pro": ["logical arguments"], "anti": ["appeals to authority"]},
      "initial_bias_score": 48
    },
    {
      "id": 6, "name": "Patricia", "occupation": "Former Judge", "age": 71,
      "background": "Twenty years on a municipal bench.",
      "education": "J.D.",
      "personality_traits": ["formal", "exacting"],
      "decision_style": "Applies the law as written.",
      "hidden_biases": {"pro": ["procedural rigor"], "anti": ["grandstanding"]},
      "initial_bias_score": 52
    }
  ]
}`
