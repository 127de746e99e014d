// Package dataset fetches the static JSON files the site is generated from
// and normalizes their ad-hoc payload shapes into the canonical model right
// at the boundary.
package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Design-for-Changes/visualization/internal/aggregate"
	"github.com/Design-for-Changes/visualization/internal/models"
	"github.com/Design-for-Changes/visualization/internal/roster"
)

// ErrNotFound marks the expected-absence outcome: the requested file does
// not exist at the origin. Any other non-OK status is an unexpected failure.
var ErrNotFound = errors.New("dataset: not found")

const (
	memberSpeechesPath = "data/member_speeches/%s.json"
	rosterPath         = "data/diet_members_socials_enriched.json"
	indexPath          = "data/member_speeches_index.json"
	samplePath         = "data/speech_hino_sample.json"
)

// Store fetches dataset files from a static-file origin. One attempt per
// file per request; there are no retries.
type Store struct {
	baseURL string
	client  *http.Client
	log     *slog.Logger
}

// New creates a Store rooted at baseURL.
func New(baseURL string, log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
}

func (s *Store) get(ctx context.Context, path string) ([]byte, error) {
	url := s.baseURL + "/" + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", path, err)
	}

	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", path, res.Status)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return body, nil
}

// MemberSpeeches loads the per-slug payload. Both historical shapes are
// accepted: a flat array of speech records (grouped here into meetings) and
// the current {meetings: [...]} object. Either way the meetings come back
// canonical, sorted newest first.
func (s *Store) MemberSpeeches(ctx context.Context, slug string) (*models.MemberSpeeches, error) {
	data, err := s.get(ctx, fmt.Sprintf(memberSpeechesPath, slug))
	if err != nil {
		return nil, err
	}
	return decodeMemberSpeeches(data)
}

func decodeMemberSpeeches(data []byte) (*models.MemberSpeeches, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []models.SpeechRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("decode speech list: %w", err)
		}
		return &models.MemberSpeeches{Meetings: aggregate.GroupSpeeches(records)}, nil
	}

	var payload models.MemberSpeeches
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return nil, fmt.Errorf("decode member speeches: %w", err)
	}
	payload.Meetings = aggregate.Normalize(payload.Meetings)
	return &payload, nil
}

// Roster loads the enriched member roster, accepting both the bare-array
// and the {members: [...]} shape.
func (s *Store) Roster(ctx context.Context) ([]models.MemberProfile, error) {
	data, err := s.get(ctx, rosterPath)
	if err != nil {
		return nil, err
	}
	return roster.ParseMembers(data)
}

// Index loads the per-member speech and question counts.
func (s *Store) Index(ctx context.Context) (*models.SpeechIndex, error) {
	data, err := s.get(ctx, indexPath)
	if err != nil {
		return nil, err
	}
	var idx models.SpeechIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("decode index: %w", err)
	}
	if idx.Index == nil {
		idx.Index = map[string]models.IndexEntry{}
	}
	return &idx, nil
}

// SampleSpeeches loads the flat sample table dataset.
func (s *Store) SampleSpeeches(ctx context.Context) ([]models.SpeechRecord, error) {
	data, err := s.get(ctx, samplePath)
	if err != nil {
		return nil, err
	}
	var records []models.SpeechRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode sample speeches: %w", err)
	}
	return records, nil
}

// MemberPage is everything a member detail view needs, fetched jointly.
type MemberPage struct {
	Slug string `json:"slug"`
	// History is nil when the per-slug file returned 404.
	History *models.MemberSpeeches `json:"history,omitempty"`
	// Profile is nil when the roster is unavailable or has no entry.
	Profile  *models.MemberProfile `json:"profile,omitempty"`
	NotFound bool                  `json:"not_found,omitempty"`
}

// MemberPage fetches the speech history and the roster concurrently. The
// roster fetch is best-effort: its failure collapses to a nil profile and is
// never reported to the caller. A 404 on the speech history is the normal
// "not yet registered" state, not an error; any other history failure aborts
// the page.
func (s *Store) MemberPage(ctx context.Context, slug string) (*MemberPage, error) {
	page := &MemberPage{Slug: slug}

	var members []models.MemberProfile

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		history, err := s.MemberSpeeches(gctx, slug)
		if errors.Is(err, ErrNotFound) {
			page.NotFound = true
			return nil
		}
		if err != nil {
			return err
		}
		page.History = history
		return nil
	})
	g.Go(func() error {
		entries, err := s.Roster(gctx)
		if err != nil {
			s.log.Warn("roster unavailable", slog.Any("err", err))
			return nil
		}
		members = entries
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	page.Profile = roster.Find(members, slug)
	return page, nil
}
