package main

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/Design-for-Changes/visualization/internal/config"
	"github.com/Design-for-Changes/visualization/internal/dedupe"
	"github.com/Design-for-Changes/visualization/internal/kana"
	"github.com/Design-for-Changes/visualization/internal/logger"
	"github.com/Design-for-Changes/visualization/internal/models"
	"github.com/Design-for-Changes/visualization/internal/search"
	"github.com/Design-for-Changes/visualization/internal/summarize"
)

// rawSpeech is one message on the speeches_raw topic: a speech record the
// fetch pipeline pulled from the minutes API, tagged with its member.
type rawSpeech struct {
	Slug       string              `json:"slug"`
	MemberName string              `json:"member_name"`
	Party      string              `json:"party,omitempty"`
	Record     models.SpeechRecord `json:"record"`
}

type speechIndexer interface {
	IndexSpeech(ctx context.Context, doc models.SpeechDocument) error
}

func main() {
	log := logger.New("worker")
	cfg, err := config.LoadWorker()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	esClient, err := search.New(cfg.ElasticsearchAddr, cfg.ElasticsearchIndex, log)
	if err != nil {
		log.Error("init elasticsearch", slog.Any("err", err))
		os.Exit(1)
	}

	tracker := dedupe.NewTracker(cfg.DedupeCapacity, cfg.DedupeTTL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.KafkaBrokers,
		Topic:          cfg.KafkaTopic,
		GroupID:        cfg.KafkaConsumer,
		QueueCapacity:  cfg.BatchSize,
		MinBytes:       1e3,
		MaxBytes:       10e6,
		CommitInterval: 0, // manual commit only
	})
	defer reader.Close()

	dlqWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers:     cfg.KafkaBrokers,
		Topic:       cfg.KafkaTopic + "_dlq",
		MaxAttempts: 3,
	})
	defer dlqWriter.Close()

	log.Info("worker started",
		slog.String("topic", cfg.KafkaTopic),
		slog.String("group", cfg.KafkaConsumer),
		slog.String("dlq_topic", cfg.KafkaTopic+"_dlq"),
	)

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Info("context canceled, stopping")
				return
			}
			log.Error("fetch message", slog.Any("err", err))
			continue
		}

		if err := processMessage(ctx, log, esClient, tracker, msg); err != nil {
			log.Warn("process message failed, sending to DLQ",
				slog.Any("err", err),
				slog.Int("partition", msg.Partition),
				slog.Int64("offset", msg.Offset),
			)

			if sendToDLQ(ctx, log, dlqWriter, msg, err) {
				if err := reader.CommitMessages(ctx, msg); err != nil {
					log.Error("commit failed message to dlq", slog.Any("err", err))
				}
			} else {
				log.Error("DLQ write exhausted retries, message may be lost if later messages commit",
					slog.Int("partition", msg.Partition),
					slog.Int64("offset", msg.Offset),
				)
			}
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message", slog.Any("err", err))
		}
	}
}

// sendToDLQ writes a poison message to the DLQ topic with error context,
// retrying with exponential backoff. Returns false when every attempt failed.
func sendToDLQ(ctx context.Context, log *slog.Logger, writer *kafka.Writer, msg kafka.Message, cause error) bool {
	dlqMsg := kafka.Message{
		Value: msg.Value,
		Headers: append(msg.Headers,
			kafka.Header{Key: "original_partition", Value: []byte(fmt.Sprintf("%d", msg.Partition))},
			kafka.Header{Key: "original_offset", Value: []byte(fmt.Sprintf("%d", msg.Offset))},
			kafka.Header{Key: "error", Value: []byte(cause.Error())},
			kafka.Header{Key: "timestamp", Value: []byte(time.Now().UTC().Format(time.RFC3339))},
		),
	}

	for attempt := 0; attempt < 5; attempt++ {
		if err := writer.WriteMessages(ctx, dlqMsg); err == nil {
			log.Info("message sent to DLQ",
				slog.Int("partition", msg.Partition),
				slog.Int64("offset", msg.Offset),
				slog.Int("attempt", attempt+1),
			)
			return true
		} else {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			log.Warn("DLQ write failed, retrying",
				slog.Any("err", err),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
			)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return false
			}
		}
	}
	return false
}

func processMessage(ctx context.Context, log *slog.Logger, indexer speechIndexer, tracker *dedupe.Tracker, msg kafka.Message) error {
	var payload rawSpeech
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		return err
	}

	rec := payload.Record
	text := strings.TrimSpace(rec.Speech)
	if text == "" && rec.SpeechID == "" {
		return errors.New("empty payload")
	}

	doc := models.SpeechDocument{
		ID:            documentID(payload),
		Slug:          strings.TrimSpace(payload.Slug),
		MemberName:    kana.NormalizeName(payload.MemberName),
		Party:         strings.TrimSpace(payload.Party),
		Date:          rec.Date,
		NameOfMeeting: rec.NameOfMeeting,
		Issue:         rec.Issue,
		Session:       rec.Session,
		Speech:        text,
		Summary:       summarize.Summary(text),
		SpeechURL:     rec.SpeechURL,
		MeetingURL:    rec.MeetingURL,
	}

	if doc.Slug == "" {
		return errors.New("missing member slug")
	}

	if tracker.Seen(doc.ID) {
		log.Debug("duplicate speech", slog.String("id", doc.ID))
		return nil
	}

	if err := indexer.IndexSpeech(ctx, doc); err != nil {
		return err
	}

	tracker.Record(doc.ID)
	log.Info("indexed speech",
		slog.String("id", doc.ID),
		slog.String("slug", doc.Slug),
		slog.String("date", doc.Date),
	)
	return nil
}

// documentID prefers the minutes API's own speech ID, falls back to a hash
// of the stable fields, and as a last resort mints a random ID.
func documentID(payload rawSpeech) string {
	if payload.Record.SpeechID != "" {
		return payload.Record.SpeechID
	}
	rec := payload.Record
	if payload.Slug != "" && rec.Date != "" {
		s := sha1.Sum([]byte(fmt.Sprintf("%s|%s|%s|%s|%d",
			payload.Slug, rec.Date, rec.NameOfMeeting, rec.Issue, rec.SpeechOrder)))
		return hex.EncodeToString(s[:])
	}
	return uuid.NewString()
}
