package scorer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedpulse/pkg/domain"
)

func TestKeywordScorer_Score(t *testing.T) {
	scorer := NewKeywordScorer(nil, nil)
	ctx := context.Background()

	t.Run("neutral title gets the base score", func(t *testing.T) {
		score, err := scorer.Score(ctx, domain.Item{Title: "Weekly roundup of community events"})
		require.NoError(t, err)
		assert.InEpsilon(t, 5.0, score, 0.001)
	})

	t.Run("major announcement scores above the top-story bar", func(t *testing.T) {
		// "openai" and "launch" are high impact, "model" and the "ai"
		// inside "openai" are medium: 5 + 1.5 + 1.5 + 0.5 + 0.5 = 9
		score, err := scorer.Score(ctx, domain.Item{Title: "OpenAI launches new model"})
		require.NoError(t, err)
		assert.InEpsilon(t, 9.0, score, 0.001)
		assert.Greater(t, score, 7.0)
	})

	t.Run("matching is case insensitive", func(t *testing.T) {
		upper, err := scorer.Score(ctx, domain.Item{Title: "GOOGLE RESEARCH BREAKTHROUGH"})
		require.NoError(t, err)
		lower, err := scorer.Score(ctx, domain.Item{Title: "google research breakthrough"})
		require.NoError(t, err)
		assert.InEpsilon(t, upper, lower, 0.001)
	})

	t.Run("keywords match as substrings", func(t *testing.T) {
		score, err := scorer.Score(ctx, domain.Item{Title: "GPT-5 benchmarks released"})
		require.NoError(t, err)
		assert.InEpsilon(t, 6.5, score, 0.001) // "gpt" high impact only
	})

	t.Run("score never exceeds the maximum", func(t *testing.T) {
		score, err := scorer.Score(ctx, domain.Item{
			Title: "Breakthrough: OpenAI, Google and Microsoft launch GPT research model update",
		})
		require.NoError(t, err)
		assert.InEpsilon(t, MaxScore, score, 0.001)
	})

	t.Run("score stays within bounds for any title", func(t *testing.T) {
		titles := []string{
			"",
			"a",
			strings.Repeat("breakthrough launch gpt openai google microsoft ", 10),
			"Совершенно нейтральный заголовок",
			"mixed CASE Update AI model Research",
		}
		for _, title := range titles {
			score, err := scorer.Score(ctx, domain.Item{Title: title})
			require.NoError(t, err)
			assert.GreaterOrEqual(t, score, MinScore, "title %q", title)
			assert.LessOrEqual(t, score, MaxScore, "title %q", title)
		}
	})

	t.Run("custom keyword sets", func(t *testing.T) {
		custom := NewKeywordScorer([]string{"quantum"}, []string{"chip"})
		score, err := custom.Score(ctx, domain.Item{Title: "Quantum chip announced"})
		require.NoError(t, err)
		assert.InEpsilon(t, 7.0, score, 0.001) // 5 + 1.5 + 0.5

		// default keywords are not in play for a custom scorer
		score, err = custom.Score(ctx, domain.Item{Title: "OpenAI launches new model"})
		require.NoError(t, err)
		assert.InEpsilon(t, 5.0, score, 0.001)
	})
}

func TestSummarize(t *testing.T) {
	t.Run("takes the first two meaningful sentences", func(t *testing.T) {
		content := "This is the very first sentence of the article. Here comes the second sentence with more detail. The third one should not appear."
		summary := Summarize(content)
		assert.Equal(t, "This is the very first sentence of the article. Here comes the second sentence with more detail", summary)
	})

	t.Run("skips short fragments", func(t *testing.T) {
		content := "Hi. Ok. This sentence is long enough to make it into the summary. So is this other one right here."
		summary := Summarize(content)
		assert.Equal(t, "This sentence is long enough to make it into the summary. So is this other one right here.", summary)
	})

	t.Run("caps at 200 characters", func(t *testing.T) {
		content := strings.Repeat("word ", 60) + "end. " + strings.Repeat("more ", 60) + "done."
		summary := Summarize(content)
		assert.True(t, strings.HasSuffix(summary, "..."))
		assert.LessOrEqual(t, len([]rune(summary)), 203)
	})

	t.Run("empty content gives empty summary", func(t *testing.T) {
		assert.Empty(t, Summarize(""))
	})

	t.Run("all-noise content gives empty summary", func(t *testing.T) {
		assert.Empty(t, Summarize("Hm. Ok. No."))
	})
}
