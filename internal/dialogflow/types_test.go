package dialogflow

import (
	"encoding/json"
	"testing"
)

func TestStopParameter(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "string parameter", body: `{"queryResult":{"action":"call_busstop_api","parameters":{"stop":"46A"}}}`, want: "46A"},
		{name: "numeric parameter", body: `{"queryResult":{"action":"call_busstop_api","parameters":{"stop":2472}}}`, want: "2472"},
		{name: "decimal parameter", body: `{"queryResult":{"action":"call_busstop_api","parameters":{"stop":12.5}}}`, want: "12.5"},
		{name: "missing parameter", body: `{"queryResult":{"action":"call_busstop_api","parameters":{}}}`, want: ""},
		{name: "no parameters at all", body: `{"queryResult":{"action":"call_busstop_api"}}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req WebhookRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := req.QueryResult.StopParameter(); got != tt.want {
				t.Errorf("StopParameter() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewResponse(t *testing.T) {
	resp := NewResponse("The 46A is due.", true)

	if resp.FulfillmentText != "The 46A is due." {
		t.Errorf("FulfillmentText = %q", resp.FulfillmentText)
	}
	if !resp.Payload.Google.ExpectUserResponse {
		t.Error("ExpectUserResponse = false, want true")
	}
	items := resp.Payload.Google.RichResponse.Items
	if len(items) != 1 || items[0].SimpleResponse == nil {
		t.Fatalf("want exactly one simple response item, got %+v", items)
	}
	if items[0].SimpleResponse.TextToSpeech != items[0].SimpleResponse.DisplayText {
		t.Error("spoken and display text should match")
	}
}
