// Package rag provides keyword retrieval over the legal rulebook. The
// judge consults it when ruling on procedural matters; lookups are cached
// since rulings tend to revisit the same few rules.
package rag

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/lexumbra/lexumbra/internal/errors"
	"github.com/lexumbra/lexumbra/internal/logging"
)

// Rule is one entry in the legal rulebook.
type Rule struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Text     string   `json:"text"`
	Keywords []string `json:"keywords"`
}

type ruleStore struct {
	Rules []Rule `json:"rules"`
}

// Rulebook answers keyword queries over the loaded rules. Safe for
// concurrent use: rules are immutable after load and the cache locks
// internally.
type Rulebook struct {
	rules  []Rule
	cache  *lru.Cache[string, []string]
	logger *logging.Logger
}

// Load reads a rulebook document. The trial runs without one, so callers
// are expected to treat a NotFoundError as a degraded mode rather than
// fatal.
func Load(path string, cacheSize int, logger *logging.Logger) (*Rulebook, error) {
	if logger == nil {
		logger = logging.NopLogger()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("legal rulebook", path)
		}
		return nil, fmt.Errorf("reading rulebook: %w", err)
	}
	var store ruleStore
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("parsing rulebook: %w", err)
	}
	if cacheSize <= 0 {
		cacheSize = 128
	}
	cache, err := lru.New[string, []string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating rulebook cache: %w", err)
	}
	logger.Info("rulebook loaded", "rules", len(store.Rules), "path", path)
	return &Rulebook{rules: store.Rules, cache: cache, logger: logger}, nil
}

// Len returns the number of loaded rules.
func (r *Rulebook) Len() int { return len(r.rules) }

// Search returns up to limit formatted rule entries relevant to the query,
// most relevant first. An empty result means nothing matched.
func (r *Rulebook) Search(query string, limit int) []string {
	if limit <= 0 || len(r.rules) == 0 {
		return nil
	}
	key := strconv.Itoa(limit) + "|" + strings.ToLower(strings.TrimSpace(query))
	if hit, ok := r.cache.Get(key); ok {
		return hit
	}

	tokens := tokenize(query)
	if len(tokens) == 0 {
		return nil
	}

	type scored struct {
		idx   int
		score int
	}
	var matches []scored
	for i, rule := range r.rules {
		if s := scoreRule(rule, tokens); s > 0 {
			matches = append(matches, scored{idx: i, score: s})
		}
	}
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].score > matches[b].score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	results := make([]string, len(matches))
	for i, m := range matches {
		rule := r.rules[m.idx]
		results[i] = fmt.Sprintf("%s (%s): %s", rule.ID, rule.Title, rule.Text)
	}
	r.cache.Add(key, results)
	return results
}

// scoreRule weighs keyword hits over title hits over body hits.
func scoreRule(rule Rule, tokens []string) int {
	keywords := strings.ToLower(strings.Join(rule.Keywords, " "))
	title := strings.ToLower(rule.Title)
	body := strings.ToLower(rule.ID + " " + rule.Text)
	score := 0
	for _, tok := range tokens {
		if strings.Contains(keywords, tok) {
			score += 3
		}
		if strings.Contains(title, tok) {
			score += 2
		}
		if strings.Contains(body, tok) {
			score++
		}
	}
	return score
}

// stopwords are query tokens too common to discriminate between rules.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "for": true, "in": true,
	"is": true, "of": true, "on": true, "or": true, "the": true, "to": true,
}

func tokenize(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	var tokens []string
	for _, f := range fields {
		if len(f) > 1 && !stopwords[f] {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
