package models

// SpeechRecord is one utterance by a member within a meeting, as produced
// by the upstream fetch pipeline. Immutable once decoded.
type SpeechRecord struct {
	SpeechID      string `json:"speechID,omitempty"`
	Date          string `json:"date"`
	NameOfMeeting string `json:"nameOfMeeting"`
	Issue         string `json:"issue"`
	IssueID       string `json:"issueID,omitempty"`
	Session       int    `json:"session,omitempty"`
	SpeechOrder   int    `json:"speechOrder"`
	Speaker       string `json:"speaker,omitempty"`
	SpeakerGroup  string `json:"speakerGroup,omitempty"`
	Speech        string `json:"speech"`
	SpeechURL     string `json:"speechURL"`
	MeetingURL    string `json:"meetingURL"`
}

// Meeting is a single proceeding session with the member's speeches in it.
type Meeting struct {
	IssueID       string         `json:"issueID,omitempty"`
	Date          string         `json:"date"`
	NameOfMeeting string         `json:"nameOfMeeting"`
	Issue         string         `json:"issue"`
	Session       int            `json:"session,omitempty"`
	Speeches      []SpeechRecord `json:"speeches"`
}

// WrittenQuestion is a formal written inquiry (質問主意書) submitted by a member.
type WrittenQuestion struct {
	Title           string   `json:"title"`
	Session         int      `json:"session,omitempty"`
	Number          int      `json:"number,omitempty"`
	Status          string   `json:"status,omitempty"`
	QuestionHTMLURL string   `json:"question_html_url,omitempty"`
	QuestionPDFURL  string   `json:"question_pdf_url,omitempty"`
	AnswerHTMLURL   string   `json:"answer_html_url,omitempty"`
	AnswerPDFURL    string   `json:"answer_pdf_url,omitempty"`
	MatchedKeywords []string `json:"matched_keywords,omitempty"`
}

// MemberSpeeches is the per-slug payload under data/member_speeches/.
type MemberSpeeches struct {
	MemberName       string            `json:"member_name,omitempty"`
	Kana             string            `json:"kana,omitempty"`
	GeneratedAt      string            `json:"generated_at,omitempty"`
	Keywords         []string          `json:"keywords,omitempty"`
	Meetings         []Meeting         `json:"meetings"`
	WrittenQuestions []WrittenQuestion `json:"written_questions,omitempty"`
}

// Platform identifies a social-media service in a roster entry.
type Platform string

const (
	PlatformX         Platform = "x"
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformYouTube   Platform = "youtube"
	PlatformLine      Platform = "line"
	PlatformTikTok    Platform = "tiktok"
	PlatformOther     Platform = "other"
)

// SocialLink is one raw platform/url pair from the roster file.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// MemberProfile is one roster entry from diet_members_socials_enriched.json.
type MemberProfile struct {
	Slug                  string       `json:"slug"`
	MemberName            string       `json:"member_name"`
	Kana                  string       `json:"kana,omitempty"`
	Party                 string       `json:"party,omitempty"`
	Chamber               string       `json:"chamber,omitempty"`
	Homepage              string       `json:"homepage,omitempty"`
	ProfileURL            string       `json:"profile_url,omitempty"`
	Socials               []SocialLink `json:"socials,omitempty"`
	DisabilityLeagueCount int          `json:"disability_league_count,omitempty"`
	DisabilityLeagues     []string     `json:"disability_leagues,omitempty"`
}

// IndexEntry carries the per-member counts from member_speeches_index.json.
type IndexEntry struct {
	Meetings         int `json:"meetings,omitempty"`
	Speeches         int `json:"speeches,omitempty"`
	WrittenQuestions int `json:"written_questions,omitempty"`
}

// SpeechIndex is the directory-level count index keyed by slug.
type SpeechIndex struct {
	GeneratedAt string                `json:"generated_at,omitempty"`
	Index       map[string]IndexEntry `json:"index"`
}
