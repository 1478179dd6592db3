// Package classifier implements the review sentiment model: a bag-of-words
// vocabulary with a multinomial Naive Bayes fit on top of it.
package classifier

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"earnershub/internal/models"
)

// Smoothing is the additive (Laplace) smoothing constant.
const Smoothing = 1.0

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize lowercases text and splits it into tokens of two or more word characters.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// Model is a trained multinomial Naive Bayes classifier
type Model struct {
	vocabulary map[string]int
	labels     []string    // sorted, ties resolve to the first
	logPrior   []float64   // per label
	logLikely  [][]float64 // per label, per vocabulary index
	rows       int
}

// Train fits a model on parallel slices of texts and labels.
// Every text feeds the vocabulary; rows with an empty label are not counted
// as training documents.
func Train(texts, labels []string) (*Model, error) {
	if len(texts) != len(labels) {
		return nil, fmt.Errorf("train: %d texts but %d labels", len(texts), len(labels))
	}

	vocabulary := make(map[string]int)
	docs := make([][]string, 0, len(texts))
	docLabels := make([]string, 0, len(texts))
	for i, text := range texts {
		tokens := Tokenize(text)
		for _, tok := range tokens {
			if _, ok := vocabulary[tok]; !ok {
				vocabulary[tok] = len(vocabulary)
			}
		}
		if labels[i] == "" {
			continue
		}
		docs = append(docs, tokens)
		docLabels = append(docLabels, labels[i])
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("train on %d rows: %w", len(texts), models.ErrInsufficientData)
	}

	labelIndex := make(map[string]int)
	for _, l := range docLabels {
		labelIndex[l] = 0
	}
	sorted := make([]string, 0, len(labelIndex))
	for l := range labelIndex {
		sorted = append(sorted, l)
	}
	sort.Strings(sorted)
	for i, l := range sorted {
		labelIndex[l] = i
	}

	docCount := make([]int, len(sorted))
	tokenCount := make([][]float64, len(sorted))
	tokenTotal := make([]float64, len(sorted))
	for i := range sorted {
		tokenCount[i] = make([]float64, len(vocabulary))
	}
	for i, tokens := range docs {
		li := labelIndex[docLabels[i]]
		docCount[li]++
		for _, tok := range tokens {
			tokenCount[li][vocabulary[tok]]++
			tokenTotal[li]++
		}
	}

	m := &Model{
		vocabulary: vocabulary,
		labels:     sorted,
		logPrior:   make([]float64, len(sorted)),
		logLikely:  make([][]float64, len(sorted)),
		rows:       len(docs),
	}
	vocabSize := float64(len(vocabulary))
	for li := range sorted {
		m.logPrior[li] = math.Log(float64(docCount[li]) / float64(len(docs)))
		denom := math.Log(tokenTotal[li] + Smoothing*vocabSize)
		m.logLikely[li] = make([]float64, len(vocabulary))
		for vi, c := range tokenCount[li] {
			m.logLikely[li][vi] = math.Log(c+Smoothing) - denom
		}
	}
	return m, nil
}

// Classify returns the label with the highest posterior for text.
// Tokens outside the training vocabulary are ignored.
func (m *Model) Classify(text string) string {
	indexes := m.vectorize(text)
	best := 0
	bestScore := math.Inf(-1)
	for li := range m.labels {
		score := m.logPrior[li]
		for _, vi := range indexes {
			score += m.logLikely[li][vi]
		}
		if score > bestScore {
			best, bestScore = li, score
		}
	}
	return m.labels[best]
}

// vectorize maps text to vocabulary indexes in token order, one entry per occurrence.
func (m *Model) vectorize(text string) []int {
	var indexes []int
	for _, tok := range Tokenize(text) {
		if vi, ok := m.vocabulary[tok]; ok {
			indexes = append(indexes, vi)
		}
	}
	return indexes
}

// Labels returns the labels the model can predict, sorted.
func (m *Model) Labels() []string {
	out := make([]string, len(m.labels))
	copy(out, m.labels)
	return out
}

func (m *Model) VocabularySize() int { return len(m.vocabulary) }

func (m *Model) TrainingRows() int { return m.rows }

// TrainOnReviews fits a model on every review in the dataset.
func TrainOnReviews(reviews []models.Review) (*Model, error) {
	texts := make([]string, len(reviews))
	labels := make([]string, len(reviews))
	for i, r := range reviews {
		texts[i] = r.Text
		labels[i] = r.Sentiment
	}
	return Train(texts, labels)
}
