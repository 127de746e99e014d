// The indexer periodically rebuilds the Elasticsearch speech index from the
// published dataset files, so the search view catches up with members whose
// data was regenerated outside the Kafka pipeline.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Design-for-Changes/visualization/internal/aggregate"
	"github.com/Design-for-Changes/visualization/internal/config"
	"github.com/Design-for-Changes/visualization/internal/dataset"
	"github.com/Design-for-Changes/visualization/internal/kana"
	"github.com/Design-for-Changes/visualization/internal/logger"
	"github.com/Design-for-Changes/visualization/internal/models"
	"github.com/Design-for-Changes/visualization/internal/search"
	"github.com/Design-for-Changes/visualization/internal/summarize"
)

func main() {
	log := logger.New("indexer")
	cfg, err := config.LoadIndexer()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Retry Elasticsearch connection with backoff; the cluster usually comes
	// up after this container.
	var esClient *search.Client
	retryDelay := 2 * time.Second
	for attempt := 0; attempt < 10; attempt++ {
		esClient, err = search.New(cfg.ElasticsearchAddr, cfg.ElasticsearchIndex, log)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			pingErr := esClient.Ping(pingCtx)
			cancel()
			if pingErr == nil {
				break
			}
			log.Warn("elasticsearch ping failed, retrying",
				slog.Any("err", pingErr),
				slog.Int("attempt", attempt+1),
				slog.Duration("retry_in", retryDelay),
			)
		} else {
			log.Warn("failed to create elasticsearch client, retrying",
				slog.Any("err", err),
				slog.Int("attempt", attempt+1),
			)
		}

		select {
		case <-time.After(retryDelay):
		case <-ctx.Done():
			log.Info("shutdown signal received during startup")
			os.Exit(0)
		}
		retryDelay = min(retryDelay*2, 30*time.Second)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if esClient == nil || esClient.Ping(pingCtx) != nil {
		log.Error("failed to connect to elasticsearch after retries")
		os.Exit(1)
	}

	log.Info("connected to elasticsearch")

	store := dataset.New(cfg.DataBaseURL, log)

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	log.Info("indexer running", slog.Duration("interval", cfg.Interval))

	runOnce(ctx, log, store, esClient)

	for {
		select {
		case <-ctx.Done():
			log.Info("shutdown signal received")
			return
		case <-ticker.C:
			runOnce(ctx, log, store, esClient)
		}
	}
}

func runOnce(ctx context.Context, log *slog.Logger, store *dataset.Store, esClient *search.Client) {
	subCtx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	members, err := store.Roster(subCtx)
	if err != nil {
		log.Warn("index run failed: roster unavailable (will retry on next interval)", slog.Any("err", err))
		return
	}

	indexed := 0
	for _, member := range members {
		if member.Slug == "" {
			continue
		}
		n, err := reindexMember(subCtx, store, esClient, member)
		if errors.Is(err, dataset.ErrNotFound) {
			continue // member has no speech file yet
		}
		if err != nil {
			log.Warn("reindex member failed",
				slog.String("slug", member.Slug),
				slog.Any("err", err),
			)
			continue
		}
		indexed += n
	}

	log.Info("index run completed",
		slog.Int("members", len(members)),
		slog.Int("speeches", indexed),
	)
}

// reindexMember replaces every indexed speech for one member with the
// current contents of their dataset file.
func reindexMember(ctx context.Context, store *dataset.Store, esClient *search.Client, member models.MemberProfile) (int, error) {
	payload, err := store.MemberSpeeches(ctx, member.Slug)
	if err != nil {
		return 0, err
	}

	if _, err := esClient.DeleteBySlug(ctx, member.Slug); err != nil {
		return 0, err
	}

	name := payload.MemberName
	if name == "" {
		name = member.MemberName
	}

	indexed := 0
	for _, meeting := range payload.Meetings {
		for _, speech := range aggregate.OrderedSpeeches(meeting) {
			doc := models.SpeechDocument{
				ID:            speech.SpeechID,
				Slug:          member.Slug,
				MemberName:    kana.NormalizeName(name),
				Party:         member.Party,
				Date:          meeting.Date,
				NameOfMeeting: meeting.NameOfMeeting,
				Issue:         meeting.Issue,
				Session:       meeting.Session,
				Speech:        speech.Speech,
				Summary:       summarize.Summary(speech.Speech),
				SpeechURL:     speech.SpeechURL,
				MeetingURL:    speech.MeetingURL,
			}
			if doc.ID == "" {
				doc.ID = fmt.Sprintf("%s_%s_%s_%d", member.Slug, meeting.Date, meeting.NameOfMeeting, speech.SpeechOrder)
			}
			if err := esClient.IndexSpeech(ctx, doc); err != nil {
				return indexed, err
			}
			indexed++
		}
	}
	return indexed, nil
}
