package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"github.com/Design-for-Changes/visualization/internal/dedupe"
	"github.com/Design-for-Changes/visualization/internal/models"
)

type stubIndexer struct {
	docs []models.SpeechDocument
}

func (s *stubIndexer) IndexSpeech(_ context.Context, doc models.SpeechDocument) error {
	s.docs = append(s.docs, doc)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProcessMessageIndexesSpeech(t *testing.T) {
	tracker := dedupe.NewTracker(100, time.Hour)
	idx := &stubIndexer{}

	payload := rawSpeech{
		Slug:       "yamadataro",
		MemberName: "山田　太郎君",
		Party:      "無所属",
		Record: models.SpeechRecord{
			SpeechID:      "121714024X01220250610_005",
			Date:          "2025-06-10",
			NameOfMeeting: "厚生労働委員会",
			Issue:         "第12号",
			Session:       217,
			SpeechOrder:   5,
			Speech:        "○山田　医療的ケア児への支援について伺います。",
		},
	}
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	msg := kafka.Message{Value: data}
	require.NoError(t, processMessage(context.Background(), discardLogger(), idx, tracker, msg))

	require.Len(t, idx.docs, 1)
	doc := idx.docs[0]
	require.Equal(t, "121714024X01220250610_005", doc.ID)
	require.Equal(t, "山田太郎", doc.MemberName, "honorific and spaces stripped")
	require.Equal(t, "医療的ケア児への支援について伺います。", doc.Summary)
	require.Equal(t, 217, doc.Session)

	// duplicate delivery is dropped
	require.NoError(t, processMessage(context.Background(), discardLogger(), idx, tracker, msg))
	require.Len(t, idx.docs, 1)
}

func TestProcessMessageRejectsEmptyPayload(t *testing.T) {
	tracker := dedupe.NewTracker(100, time.Hour)
	idx := &stubIndexer{}

	data, err := json.Marshal(rawSpeech{Slug: "yamadataro"})
	require.NoError(t, err)

	require.Error(t, processMessage(context.Background(), discardLogger(), idx, tracker, kafka.Message{Value: data}))
	require.Empty(t, idx.docs)
}

func TestProcessMessageRequiresSlug(t *testing.T) {
	tracker := dedupe.NewTracker(100, time.Hour)
	idx := &stubIndexer{}

	payload := rawSpeech{Record: models.SpeechRecord{SpeechID: "x", Speech: "本文"}}
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	require.Error(t, processMessage(context.Background(), discardLogger(), idx, tracker, kafka.Message{Value: data}))
}

func TestDocumentID(t *testing.T) {
	withID := rawSpeech{Record: models.SpeechRecord{SpeechID: "abc"}}
	require.Equal(t, "abc", documentID(withID))

	hashed := rawSpeech{
		Slug:   "yamadataro",
		Record: models.SpeechRecord{Date: "2025-06-10", NameOfMeeting: "本会議", SpeechOrder: 3},
	}
	require.Equal(t, documentID(hashed), documentID(hashed), "hash is deterministic")
	require.NotEmpty(t, documentID(hashed))

	random := rawSpeech{Record: models.SpeechRecord{Speech: "本文だけ"}}
	require.NotEqual(t, documentID(random), documentID(random), "no stable fields mints random IDs")
}
