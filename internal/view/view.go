// Package view turns the aggregated member data into HTML. Templates are
// deliberately dumb; every derived value is computed into a view model here.
package view

import (
	"html/template"
	"io"
	"strings"

	"github.com/Design-for-Changes/visualization/internal/aggregate"
	"github.com/Design-for-Changes/visualization/internal/dataset"
	"github.com/Design-for-Changes/visualization/internal/models"
	"github.com/Design-for-Changes/visualization/internal/roster"
	"github.com/Design-for-Changes/visualization/internal/summarize"
)

// User-facing placeholder messages for the expected-absence states.
const (
	MsgNoSlug        = "議員が指定されていません。"
	MsgNotRegistered = "この議員の発言データはまだ登録されていません。"
	MsgNoSpeechText  = "（本文なし）"
	MsgNoMembers     = "該当する議員が見つかりませんでした。"
)

// SpeechView is one rendered utterance row.
type SpeechView struct {
	Order   int
	Summary string
	URL     string
}

// MeetingView is one rendered meeting cluster.
type MeetingView struct {
	Date       string
	Name       string
	Issue      string
	Session    int
	MeetingURL string
	Speeches   []SpeechView
}

// BuildMeetings prepares meetings for display: speeches ordered by their
// speech order, each summarized with the character-truncation policy, empty
// texts replaced by the no-text placeholder.
func BuildMeetings(meetings []models.Meeting) []MeetingView {
	out := make([]MeetingView, 0, len(meetings))
	for _, meeting := range meetings {
		mv := MeetingView{
			Date:       meeting.Date,
			Name:       meeting.NameOfMeeting,
			Issue:      meeting.Issue,
			Session:    meeting.Session,
			MeetingURL: firstMeetingURL(meeting),
		}
		for _, speech := range aggregate.OrderedSpeeches(meeting) {
			summary := summarize.Summary(speech.Speech)
			if summary == "" {
				summary = MsgNoSpeechText
			}
			mv.Speeches = append(mv.Speeches, SpeechView{
				Order:   speech.SpeechOrder,
				Summary: summary,
				URL:     speech.SpeechURL,
			})
		}
		out = append(out, mv)
	}
	return out
}

func firstMeetingURL(meeting models.Meeting) string {
	for _, speech := range meeting.Speeches {
		if speech.MeetingURL != "" {
			return speech.MeetingURL
		}
	}
	return ""
}

// SampleRow is one row of the flat sample table, summarized with the
// lead-sentences policy.
type SampleRow struct {
	Date    string
	Meeting string
	Issue   string
	Summary string
	URL     string
}

// BuildSampleRows renders the flat sample dataset.
func BuildSampleRows(records []models.SpeechRecord) []SampleRow {
	rows := make([]SampleRow, 0, len(records))
	for _, rec := range records {
		summary := summarize.LeadSentences(rec.Speech, 2)
		if summary == "" {
			summary = MsgNoSpeechText
		}
		rows = append(rows, SampleRow{
			Date:    rec.Date,
			Meeting: rec.NameOfMeeting,
			Issue:   rec.Issue,
			Summary: summary,
			URL:     rec.SpeechURL,
		})
	}
	return rows
}

// DirectoryData feeds the member directory template.
type DirectoryData struct {
	Query   string
	Entries []dataset.DirectoryEntry
	Empty   bool
}

// FilterDirectory keeps entries whose name or kana contains the query.
func FilterDirectory(entries []dataset.DirectoryEntry, query string) []dataset.DirectoryEntry {
	query = strings.TrimSpace(query)
	if query == "" {
		return entries
	}
	out := make([]dataset.DirectoryEntry, 0, len(entries))
	for _, entry := range entries {
		if strings.Contains(entry.Name, query) || strings.Contains(entry.Kana, query) {
			out = append(out, entry)
		}
	}
	return out
}

// MemberData feeds the member detail template.
type MemberData struct {
	Slug          string
	Display       roster.Display
	Meetings      []MeetingView
	TotalMeetings int
	Questions     []models.WrittenQuestion
	NotFound      bool
	ShowMore      bool
	NextShow      int
	Notice        string
}

// SampleData feeds the sample table template.
type SampleData struct {
	Rows []SampleRow
}

// SearchRow is one search hit row.
type SearchRow struct {
	Date    string
	Member  string
	Meeting string
	Summary string
	URL     string
}

// SearchData feeds the search template.
type SearchData struct {
	Query       string
	Rows        []SearchRow
	Total       int64
	Unavailable bool
}

// ErrorData feeds the error template; the message embeds the cause.
type ErrorData struct {
	Message string
}

// Renderer holds the parsed template set.
type Renderer struct {
	tpl *template.Template
}

// New parses the embedded templates.
func New() *Renderer {
	return &Renderer{tpl: template.Must(template.New("site").Parse(siteTemplates))}
}

// Directory renders the member directory page.
func (r *Renderer) Directory(w io.Writer, data DirectoryData) error {
	data.Empty = len(data.Entries) == 0
	return r.tpl.ExecuteTemplate(w, "directory", data)
}

// Member renders a member detail page.
func (r *Renderer) Member(w io.Writer, data MemberData) error {
	return r.tpl.ExecuteTemplate(w, "member", data)
}

// Sample renders the flat sample table page.
func (r *Renderer) Sample(w io.Writer, data SampleData) error {
	return r.tpl.ExecuteTemplate(w, "sample", data)
}

// Search renders the speech search page.
func (r *Renderer) Search(w io.Writer, data SearchData) error {
	return r.tpl.ExecuteTemplate(w, "search", data)
}

// Error renders the generic failure page.
func (r *Renderer) Error(w io.Writer, data ErrorData) error {
	return r.tpl.ExecuteTemplate(w, "error", data)
}
