package models

// SourceColumns is the header row of the earning sources file.
var SourceColumns = []string{"Date", "Name", "Type", "Link", "Submitted_By", "Trust_Status"}

// SourceTypeAll is the browse selector that matches every source.
const SourceTypeAll = "All"

// SourceTypes lists the directory types in display order.
var SourceTypes = []string{"App", "YouTube Channel", "Website", "Telegram Group"}

// TrustStatuses lists the trust statuses a submitter can pick.
var TrustStatuses = []string{"Trusted", "Risky", "Scam"}

// TrustStatusScam marks a source reported as a scam.
const TrustStatusScam = "Scam"

// Source is one entry in the earning sources directory
type Source struct {
	Date        string `json:"date"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Link        string `json:"link"`
	SubmittedBy string `json:"submitted_by"`
	TrustStatus string `json:"trust_status"`
}

// SourceRequest for adding a source to the directory
type SourceRequest struct {
	Name        string `json:"name" form:"name"`
	Type        string `json:"type" form:"type"`
	Link        string `json:"link" form:"link"`
	SubmittedBy string `json:"submitted_by" form:"submitted_by"`
	TrustStatus string `json:"trust_status" form:"trust_status"`
}
