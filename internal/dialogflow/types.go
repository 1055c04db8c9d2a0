// Package dialogflow holds the Dialogflow v2 fulfillment webhook envelope.
package dialogflow

import "strconv"

// ActionBusStop is the intent action this service fulfils.
const ActionBusStop = "call_busstop_api"

// WebhookRequest is the fulfillment request sent by Dialogflow.
type WebhookRequest struct {
	ResponseID  string      `json:"responseId"`
	Session     string      `json:"session"`
	QueryResult QueryResult `json:"queryResult"`
}

// QueryResult carries the matched intent details.
type QueryResult struct {
	QueryText  string         `json:"queryText"`
	Action     string         `json:"action"`
	Parameters map[string]any `json:"parameters"`
}

// StopParameter returns the "stop" intent parameter as text. Dialogflow
// sends it as a string or, when the number entity matched, as a JSON number;
// both are tolerated. Returns "" when absent.
func (q QueryResult) StopParameter() string {
	switch v := q.Parameters["stop"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// WebhookResponse is the fulfillment reply. FulfillmentText covers plain
// text integrations; the Google payload carries the Assistant-specific
// spoken response and the expect-user-response flag.
type WebhookResponse struct {
	FulfillmentText string   `json:"fulfillmentText"`
	Payload         *Payload `json:"payload,omitempty"`
}

type Payload struct {
	Google GooglePayload `json:"google"`
}

type GooglePayload struct {
	ExpectUserResponse bool         `json:"expectUserResponse"`
	RichResponse       RichResponse `json:"richResponse"`
}

type RichResponse struct {
	Items []Item `json:"items"`
}

type Item struct {
	SimpleResponse *SimpleResponse `json:"simpleResponse,omitempty"`
}

type SimpleResponse struct {
	TextToSpeech string `json:"textToSpeech"`
	DisplayText  string `json:"displayText"`
}

// NewResponse wraps spoken text in the full fulfillment envelope.
func NewResponse(text string, expectUserResponse bool) WebhookResponse {
	return WebhookResponse{
		FulfillmentText: text,
		Payload: &Payload{
			Google: GooglePayload{
				ExpectUserResponse: expectUserResponse,
				RichResponse: RichResponse{
					Items: []Item{
						{SimpleResponse: &SimpleResponse{
							TextToSpeech: text,
							DisplayText:  text,
						}},
					},
				},
			},
		},
	}
}
