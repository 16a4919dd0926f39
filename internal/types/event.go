package types

import "encoding/json"

// Status classifies a progress event from the scrape pipeline.
type Status string

const (
	StatusInfo     Status = "info"
	StatusVisiting Status = "visiting"
	StatusSkipped  Status = "skipped"
	StatusWarning  Status = "warning"
	StatusSuccess  Status = "success"
	StatusError    Status = "error"
	StatusComplete Status = "complete"
)

// Event is a single progress update emitted while scraping. Events are
// streamed to the consumer in emission order and never persisted.
// The final event of a run has StatusComplete and carries the total
// number of newly stored articles.
type Event struct {
	Status        Status `json:"status"`
	Message       string `json:"message,omitempty"`
	URL           string `json:"url,omitempty"`
	ArticlesAdded int    `json:"articles_added"`
}

// ToJSON serializes the event for line-delimited streaming.
func (e Event) ToJSON() ([]byte, error) {
	if e.Status == StatusComplete {
		return json.Marshal(e)
	}
	// Non-terminal events omit the aggregate count.
	return json.Marshal(struct {
		Status  Status `json:"status"`
		Message string `json:"message,omitempty"`
		URL     string `json:"url,omitempty"`
	}{e.Status, e.Message, e.URL})
}
