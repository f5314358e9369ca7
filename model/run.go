package model

type ChannelOutcome string

const (
	OutcomeCollected ChannelOutcome = "collected"
	OutcomeEmpty     ChannelOutcome = "empty"
	OutcomeFailed    ChannelOutcome = "failed"
)

// ChannelResult is the per-channel entry in a run summary. Outcome is the
// discriminator; the other fields are filled according to it.
type ChannelResult struct {
	Channel   string         `json:"channel"`
	Outcome   ChannelOutcome `json:"outcome"`
	Collected int            `json:"collected,omitempty"`
	Titles    []string       `json:"titles,omitempty"`
	Message   string         `json:"message,omitempty"`
	Error     string         `json:"error,omitempty"`
}

type RunSummary struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Results   []ChannelResult `json:"results"`
	Timestamp string          `json:"timestamp"`
}
