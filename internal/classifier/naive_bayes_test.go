package classifier

import (
	"errors"
	"math"
	"testing"

	"earnershub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedReviews() []models.Review {
	return []models.Review{
		{Date: "2024-01-01", Text: "great app", Sentiment: "positive"},
		{Date: "2024-01-02", Text: "scam stole money", Sentiment: "negative"},
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"lowercases and drops punctuation", "Great APP, it's a 10/10!", []string{"great", "app", "it", "10", "10"}},
		{"drops single characters", "a b cd", []string{"cd"}},
		{"keeps unicode words", "Отличное приложение", []string{"отличное", "приложение"}},
		{"empty", "   ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.text))
		})
	}
}

func TestTrainRejectsEmptyDataset(t *testing.T) {
	_, err := TrainOnReviews(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInsufficientData))

	_, err = Train([]string{"no label here"}, []string{""})
	assert.True(t, errors.Is(err, models.ErrInsufficientData))
}

func TestTrainRejectsMismatchedInput(t *testing.T) {
	_, err := Train([]string{"a", "b"}, []string{"positive"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, models.ErrInsufficientData))
}

func TestClassifyUsesTokenEvidence(t *testing.T) {
	model, err := TrainOnReviews(seedReviews())
	require.NoError(t, err)

	assert.Equal(t, "positive", model.Classify("great payouts"))
	assert.Equal(t, "negative", model.Classify("money scam"))
	assert.Equal(t, []string{"negative", "positive"}, model.Labels())
	assert.Equal(t, 5, model.VocabularySize())
	assert.Equal(t, 2, model.TrainingRows())
}

func TestClassifyUnseenTokensFallsBackToPrior(t *testing.T) {
	model, err := TrainOnReviews([]models.Review{
		{Text: "fast withdrawal", Sentiment: "positive"},
		{Text: "paid on time", Sentiment: "positive"},
		{Text: "never paid", Sentiment: "negative"},
	})
	require.NoError(t, err)

	// No token of the input is in the vocabulary, so the majority prior decides.
	assert.Equal(t, "positive", model.Classify("zzz qqq"))
}

func TestClassifyTieIsDeterministic(t *testing.T) {
	model, err := TrainOnReviews(seedReviews())
	require.NoError(t, err)

	// Equal priors and no known tokens: the lexically first label wins.
	assert.Equal(t, "negative", model.Classify("amazing payouts"))
}

func TestTrainingIsDeterministic(t *testing.T) {
	reviews := append(seedReviews(),
		models.Review{Text: "withdrawal worked, great support", Sentiment: "positive"},
		models.Review{Text: "they stole my deposit", Sentiment: "negative"},
		models.Review{Text: "meh", Sentiment: "neutral"},
	)
	inputs := []string{"great support", "stole deposit", "neutral meh app", "", "unknown words only"}

	first, err := TrainOnReviews(reviews)
	require.NoError(t, err)
	second, err := TrainOnReviews(reviews)
	require.NoError(t, err)

	for _, in := range inputs {
		assert.Equal(t, first.Classify(in), second.Classify(in), "input %q", in)
	}
}

func TestTrainSkipsUnlabeledRows(t *testing.T) {
	model, err := Train(
		[]string{"great app", "orphan text", "scam"},
		[]string{"positive", "", "negative"},
	)
	require.NoError(t, err)

	assert.Equal(t, 2, model.TrainingRows())
	// orphan and text still widen the vocabulary
	assert.Equal(t, 5, model.VocabularySize())
	assert.Contains(t, model.vocabulary, "orphan")
}

func TestUnlabeledRowsChangeSmoothing(t *testing.T) {
	labeled, err := Train([]string{"great app", "scam"}, []string{"positive", "negative"})
	require.NoError(t, err)
	withOrphans, err := Train(
		[]string{"great app", "orphan text here", "scam"},
		[]string{"positive", "", "negative"},
	)
	require.NoError(t, err)

	assert.Equal(t, 3, labeled.VocabularySize())
	assert.Equal(t, 6, withOrphans.VocabularySize())
	pos := 1 // labels sort as negative, positive
	great := labeled.vocabulary["great"]
	assert.InDelta(t, math.Log(2.0/5.0), labeled.logLikely[pos][great], 1e-12)
	great = withOrphans.vocabulary["great"]
	assert.InDelta(t, math.Log(2.0/8.0), withOrphans.logLikely[pos][great], 1e-12)
}
