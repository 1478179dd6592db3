package handler

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"earnershub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitPages(t *testing.T) {
	s := newTestServer(t, seedReviews(), nil)

	w := s.do(http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Analyze &amp; Save")

	w = s.postForm("/", url.Values{"text": {"great app"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sentiment: <strong>POSITIVE</strong>")

	w = s.postForm("/", url.Values{"text": {"  "}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Please write a review first.")

	reviews, err := s.reviewStore.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, reviews, 3)
}

func TestSubmitPageWithoutData(t *testing.T) {
	s := newTestServer(t, nil, nil)

	w := s.postForm("/", url.Values{"text": {"<b>is it legit</b>"}})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Not enough data to train model.")
	assert.Contains(t, w.Body.String(), "&lt;b&gt;is it legit&lt;/b&gt;")
}

func TestReviewsPage(t *testing.T) {
	s := newTestServer(t, nil, nil)

	w := s.do(http.MethodGet, "/reviews", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No reviews yet.")

	require.NoError(t, s.reviewStore.Persist(context.Background(), seedReviews()))
	w = s.do(http.MethodGet, "/reviews", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "scam stole money")
	assert.NotContains(t, w.Body.String(), "No reviews yet.")
}

func TestCredibilityPage(t *testing.T) {
	s := newTestServer(t, nil, nil)

	w := s.do(http.MethodGet, "/credibility", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Not enough reviews yet")

	require.NoError(t, s.reviewStore.Persist(context.Background(), seedReviews()))
	w = s.do(http.MethodGet, "/credibility", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "RISKY App")
	assert.Contains(t, body, `fill="green"`)
	assert.Contains(t, body, `fill="red"`)
	assert.Contains(t, body, "50.0% positive")
}

func TestSourcesPages(t *testing.T) {
	s := newTestServer(t, nil, nil)

	w := s.postForm("/sources", url.Values{
		"name":         {"Quick Tasks"},
		"type":         {"Telegram Group"},
		"link":         {"https://t.me/quick"},
		"submitted_by": {"cy"},
		"trust_status": {"Scam"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Quick Tasks added to the directory.")

	w = s.postForm("/sources", url.Values{"name": {"Half"}, "type": {"App"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `value="Half"`)

	sources, err := s.sourceStore.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, models.Source{
		Date:        sources[0].Date,
		Name:        "Quick Tasks",
		Type:        "Telegram Group",
		Link:        "https://t.me/quick",
		SubmittedBy: "cy",
		TrustStatus: "Scam",
	}, sources[0])

	w = s.do(http.MethodGet, "/sources?type=Website", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No sources listed for Website yet.")

	w = s.do(http.MethodGet, "/sources?type=Telegram+Group", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://t.me/quick")

	w = s.do(http.MethodGet, "/sources?type=Podcast", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAboutPage(t *testing.T) {
	s := newTestServer(t, nil, nil)

	w := s.do(http.MethodGet, "/about", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Naive Bayes")
}
