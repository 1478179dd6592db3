package handler

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"earnershub/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.New("").Funcs(template.FuncMap{
	"upper": strings.ToUpper,
	"tierClass": func(tier models.CredibilityTier) string {
		return strings.ToLower(string(tier))
	},
}).ParseFS(templateFS, "templates/*.html"))

// pageData is shared by every HTML page; each page fills what it shows.
type pageData struct {
	Title   string
	Active  string
	Error   string
	Warning string
	Success string

	// submit page
	Text      string
	Sentiment string

	Reviews []models.Review

	// credibility page
	Report models.CredibilityReport
	Pie    PieChart

	// sources page
	Sources       []models.Source
	Selector      string
	Selectors     []string
	SourceTypes   []string
	TrustStatuses []string
	Form          models.SourceRequest
}

func (h *Handler) registerPages(r *gin.Engine) {
	r.SetHTMLTemplate(pageTemplates)

	r.GET("/", h.SubmitPage)
	r.POST("/", h.SubmitForm)
	r.GET("/reviews", h.ReviewsPage)
	r.GET("/credibility", h.CredibilityPage)
	r.GET("/sources", h.SourcesPage)
	r.POST("/sources", h.AddSourceForm)
	r.GET("/about", h.AboutPage)
}

// SubmitPage shows the review form
func (h *Handler) SubmitPage(c *gin.Context) {
	c.HTML(http.StatusOK, "submit.html", pageData{Title: "Submit a Review", Active: "submit"})
}

// SubmitForm analyzes and saves a review posted from the form
func (h *Handler) SubmitForm(c *gin.Context) {
	data := pageData{Title: "Submit a Review", Active: "submit"}

	var req models.ReviewRequest
	if err := c.ShouldBind(&req); err != nil {
		data.Error = "Could not read the form."
		c.HTML(http.StatusBadRequest, "submit.html", data)
		return
	}

	result, err := h.reviews.Submit(c.Request.Context(), req.Text)
	if err != nil {
		data.Text = req.Text
		status := h.pageError(&data, err)
		c.HTML(status, "submit.html", data)
		return
	}

	data.Sentiment = result.Sentiment
	data.Success = "Review saved."
	c.HTML(http.StatusOK, "submit.html", data)
}

// ReviewsPage lists every submitted review
func (h *Handler) ReviewsPage(c *gin.Context) {
	data := pageData{Title: "All Submitted Reviews", Active: "reviews"}

	reviews, err := h.reviews.List(c.Request.Context())
	if err != nil {
		c.HTML(h.pageError(&data, err), "reviews.html", data)
		return
	}

	data.Reviews = reviews
	c.HTML(http.StatusOK, "reviews.html", data)
}

// CredibilityPage shows the credibility tier and the sentiment pie chart
func (h *Handler) CredibilityPage(c *gin.Context) {
	data := pageData{Title: "App Credibility Score", Active: "credibility"}

	report, err := h.reviews.Credibility(c.Request.Context())
	if err != nil {
		c.HTML(h.pageError(&data, err), "credibility.html", data)
		return
	}

	data.Report = report
	data.Pie = NewSentimentPie(report)
	c.HTML(http.StatusOK, "credibility.html", data)
}

// SourcesPage browses the earning sources directory
func (h *Handler) SourcesPage(c *gin.Context) {
	data := h.sourcesPageData()

	sources, selector, err := h.sources.Browse(c.Request.Context(), c.Query("type"))
	if err != nil {
		c.HTML(h.pageError(&data, err), "sources.html", data)
		return
	}

	data.Sources = sources
	data.Selector = selector
	c.HTML(http.StatusOK, "sources.html", data)
}

// AddSourceForm adds a source posted from the directory form
func (h *Handler) AddSourceForm(c *gin.Context) {
	data := h.sourcesPageData()

	var req models.SourceRequest
	if err := c.ShouldBind(&req); err != nil {
		data.Error = "Could not read the form."
		c.HTML(http.StatusBadRequest, "sources.html", data)
		return
	}

	status := http.StatusOK
	if source, err := h.sources.Add(c.Request.Context(), req); err != nil {
		data.Form = req
		status = h.pageError(&data, err)
	} else {
		data.Success = source.Name + " added to the directory."
	}

	sources, _, err := h.sources.Browse(c.Request.Context(), models.SourceTypeAll)
	if err != nil {
		status = h.pageError(&data, err)
	}
	data.Sources = sources
	c.HTML(status, "sources.html", data)
}

// AboutPage describes the application
func (h *Handler) AboutPage(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", pageData{Title: "About EarnersHub", Active: "about"})
}

func (h *Handler) sourcesPageData() pageData {
	return pageData{
		Title:         "Earning Sources",
		Active:        "sources",
		Selector:      models.SourceTypeAll,
		Selectors:     append([]string{models.SourceTypeAll}, models.SourceTypes...),
		SourceTypes:   models.SourceTypes,
		TrustStatuses: models.TrustStatuses,
	}
}

// pageError puts a user-facing message on the page and returns the status to render with.
func (h *Handler) pageError(data *pageData, err error) int {
	var fieldErr *models.FieldError
	switch {
	case errors.As(err, &fieldErr):
		if fieldErr.Field == "text" {
			data.Warning = "Please write a review first."
		} else {
			data.Warning = "Check " + fieldErr.Field + ": " + fieldErr.Reason + "."
		}
		return http.StatusBadRequest
	case errors.Is(err, models.ErrValidation):
		data.Warning = err.Error()
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInsufficientData):
		data.Error = "Not enough data to train model. Add a few demo reviews first."
		return http.StatusConflict
	default:
		h.logger.Error("Page failed", zap.String("page", data.Active), zap.Error(err))
		data.Error = "Something went wrong reading the data files. Please try again later."
		return http.StatusInternalServerError
	}
}
