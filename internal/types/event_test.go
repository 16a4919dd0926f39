package types

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestEventToJSON(t *testing.T) {
	ev := Event{Status: StatusSuccess, Message: "Saved: headline...", URL: "https://a.example/1"}
	b, err := ev.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	// Intermediate events never carry the counter field.
	if strings.Contains(string(b), "articles_added") {
		t.Errorf("unexpected articles_added in %s", b)
	}

	var round map[string]any
	if err := json.Unmarshal(b, &round); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if round["status"] != "success" {
		t.Errorf("status = %v", round["status"])
	}
}

func TestEventToJSONComplete(t *testing.T) {
	ev := Event{Status: StatusComplete, ArticlesAdded: 7}
	b, err := ev.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var round struct {
		Status        string `json:"status"`
		ArticlesAdded int    `json:"articles_added"`
	}
	if err := json.Unmarshal(b, &round); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if round.Status != "complete" || round.ArticlesAdded != 7 {
		t.Errorf("got %+v", round)
	}
}

func TestQueryText(t *testing.T) {
	cases := []struct {
		q    Query
		want string
	}{
		{Query{Topic: "GDP", Country: "India"}, "GDP India news"},
		{Query{Topic: "GDP", Country: CountryGlobal}, "GDP news"},
		{Query{Topic: "Inflation"}, "Inflation news"},
	}
	for _, c := range cases {
		if got := c.q.Text(); got != c.want {
			t.Errorf("Text(%+v) = %q, want %q", c.q, got, c.want)
		}
	}
}
