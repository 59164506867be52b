package scorer

import (
	"context"
	"strings"

	"github.com/umputun/feedpulse/pkg/domain"
)

//go:generate moq -out mocks/scorer.go -pkg mocks -skip-ensure -fmt goimports . Scorer

// Scorer assigns a significance score to an item. Implementations are
// swappable without touching callers.
type Scorer interface {
	Score(ctx context.Context, item domain.Item) (float64, error)
}

// score bounds shared by all scorers
const (
	MinScore = 1.0
	MaxScore = 10.0
)

// default keyword sets, tuned for AI/tech industry news
var (
	defaultHighImpact   = []string{"breakthrough", "launch", "gpt", "openai", "google", "microsoft"}
	defaultMediumImpact = []string{"update", "research", "model", "ai"}
)

// KeywordScorer rates items by keyword hits in the title. Deterministic
// and stateless, the same item always gets the same score.
type KeywordScorer struct {
	highImpact   []string
	mediumImpact []string
}

// NewKeywordScorer creates a scorer with the given keyword sets, empty
// sets fall back to the defaults.
func NewKeywordScorer(highImpact, mediumImpact []string) *KeywordScorer {
	if len(highImpact) == 0 {
		highImpact = defaultHighImpact
	}
	if len(mediumImpact) == 0 {
		mediumImpact = defaultMediumImpact
	}
	return &KeywordScorer{highImpact: lowerAll(highImpact), mediumImpact: lowerAll(mediumImpact)}
}

// Score starts at 5.0 and adds 1.5 per high-impact keyword and 0.5 per
// medium-impact keyword found in the lowercased title. Keywords match as
// substrings, so "launches" counts for "launch". The result is clamped
// to [1, 10].
func (s *KeywordScorer) Score(_ context.Context, item domain.Item) (float64, error) {
	title := strings.ToLower(item.Title)

	score := 5.0
	for _, kw := range s.highImpact {
		if strings.Contains(title, kw) {
			score += 1.5
		}
	}
	for _, kw := range s.mediumImpact {
		if strings.Contains(title, kw) {
			score += 0.5
		}
	}

	return clamp(score), nil
}

// Summarize builds a short summary from the first two meaningful
// sentences of content, capped at 200 characters. Sentences of 20
// characters or less are treated as noise and skipped.
func Summarize(content string) string {
	picked := make([]string, 0, 2)
	for _, sentence := range strings.Split(content, ". ") {
		sentence = strings.TrimSpace(sentence)
		if len([]rune(sentence)) > 20 {
			picked = append(picked, sentence)
		}
		if len(picked) == 2 {
			break
		}
	}

	summary := strings.Join(picked, ". ")
	if runes := []rune(summary); len(runes) > 200 {
		summary = string(runes[:200]) + "..."
	}
	return summary
}

func clamp(v float64) float64 {
	switch {
	case v < MinScore:
		return MinScore
	case v > MaxScore:
		return MaxScore
	}
	return v
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
