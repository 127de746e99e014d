package models

// SpeechDocument is the canonical structure indexed into Elasticsearch for
// full-text speech search. Flattened from SpeechRecord plus member context.
type SpeechDocument struct {
	ID            string `json:"id"`
	Slug          string `json:"slug"`
	MemberName    string `json:"member_name"`
	Party         string `json:"party,omitempty"`
	Date          string `json:"date"`
	NameOfMeeting string `json:"nameOfMeeting"`
	Issue         string `json:"issue,omitempty"`
	Session       int    `json:"session,omitempty"`
	Speech        string `json:"speech"`
	Summary       string `json:"summary,omitempty"`
	SpeechURL     string `json:"speechURL,omitempty"`
	MeetingURL    string `json:"meetingURL,omitempty"`
}
