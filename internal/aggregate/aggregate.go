package aggregate

import (
	"fmt"
	"sort"

	"github.com/Design-for-Changes/visualization/internal/models"
)

// GroupKey computes the meeting identity of a record: the issue ID when the
// minutes API provided one, else a composite of date, meeting name and issue.
func GroupKey(rec models.SpeechRecord) string {
	if rec.IssueID != "" {
		return rec.IssueID
	}
	return fmt.Sprintf("%s_%s_%s", rec.Date, rec.NameOfMeeting, rec.Issue)
}

// GroupSpeeches folds a flat record list into one Meeting per distinct key.
// The first record seen for a key supplies the meeting metadata; later
// records only append to its speech list. The result is sorted by date
// descending, with missing dates last.
func GroupSpeeches(records []models.SpeechRecord) []models.Meeting {
	byKey := make(map[string]*models.Meeting, len(records))
	order := make([]string, 0, len(records))

	for _, rec := range records {
		key := GroupKey(rec)
		meeting, ok := byKey[key]
		if !ok {
			meeting = &models.Meeting{
				IssueID:       rec.IssueID,
				Date:          rec.Date,
				NameOfMeeting: rec.NameOfMeeting,
				Issue:         rec.Issue,
				Session:       rec.Session,
			}
			byKey[key] = meeting
			order = append(order, key)
		}
		meeting.Speeches = append(meeting.Speeches, rec)
	}

	meetings := make([]models.Meeting, 0, len(order))
	for _, key := range order {
		meetings = append(meetings, *byKey[key])
	}
	SortByDateDesc(meetings)
	return meetings
}

// Normalize brings a pre-grouped meetings payload to the same canonical form
// GroupSpeeches produces: nil speech lists become empty slices and the list
// is sorted by date descending. Downstream code never branches on which
// payload shape the data came in.
func Normalize(meetings []models.Meeting) []models.Meeting {
	out := make([]models.Meeting, len(meetings))
	copy(out, meetings)
	for i := range out {
		if out[i].Speeches == nil {
			out[i].Speeches = []models.SpeechRecord{}
		}
	}
	SortByDateDesc(out)
	return out
}

// SortByDateDesc orders meetings newest first by plain string comparison of
// their ISO-style date fields. A missing date compares as the empty string
// and therefore sinks to the end.
func SortByDateDesc(meetings []models.Meeting) {
	sort.SliceStable(meetings, func(i, j int) bool {
		return meetings[i].Date > meetings[j].Date
	})
}

// OrderedSpeeches returns the meeting's speeches sorted by speechOrder
// ascending, missing orders treated as zero. The meeting itself is left
// untouched; ordering happens when a meeting is prepared for display.
func OrderedSpeeches(meeting models.Meeting) []models.SpeechRecord {
	speeches := make([]models.SpeechRecord, len(meeting.Speeches))
	copy(speeches, meeting.Speeches)
	sort.SliceStable(speeches, func(i, j int) bool {
		return speeches[i].SpeechOrder < speeches[j].SpeechOrder
	})
	return speeches
}
