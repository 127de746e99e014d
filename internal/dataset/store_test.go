package dataset_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Design-for-Changes/visualization/internal/dataset"
	"github.com/stretchr/testify/require"
)

func newOrigin(t *testing.T, files map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

const rosterJSON = `{"members":[
	{"slug":"yamadataro","member_name":"山田太郎","kana":"やまだたろう","party":"無所属",
	 "disability_leagues":["障害児福祉議連"]},
	{"slug":"satohanako","member_name":"佐藤花子","kana":"さとうはなこ"}
]}`

func TestMemberSpeechesObjectShape(t *testing.T) {
	srv := newOrigin(t, map[string]string{
		"/data/member_speeches/yamadataro.json": `{
			"member_name":"山田太郎",
			"meetings":[
				{"issueID":"old","date":"2023-01-01"},
				{"issueID":"new","date":"2025-03-03","speeches":[{"speechOrder":1,"speech":"発言"}]}
			]
		}`,
	})

	store := dataset.New(srv.URL, nil)
	payload, err := store.MemberSpeeches(context.Background(), "yamadataro")
	require.NoError(t, err)
	require.Equal(t, "山田太郎", payload.MemberName)
	require.Equal(t, "new", payload.Meetings[0].IssueID, "sorted date descending")
	require.NotNil(t, payload.Meetings[1].Speeches, "nil speeches normalized to empty")
}

func TestMemberSpeechesFlatArrayShape(t *testing.T) {
	srv := newOrigin(t, map[string]string{
		"/data/member_speeches/yamadataro.json": `[
			{"issueID":"A","date":"2024-01-10","speechOrder":2,"speech":"二番目"},
			{"issueID":"A","date":"2024-01-10","speechOrder":1,"speech":"最初"},
			{"issueID":"B","date":"2024-02-20","speechOrder":1,"speech":"別の会議"}
		]`,
	})

	store := dataset.New(srv.URL, nil)
	payload, err := store.MemberSpeeches(context.Background(), "yamadataro")
	require.NoError(t, err)
	require.Len(t, payload.Meetings, 2)
	require.Equal(t, "B", payload.Meetings[0].IssueID)
	require.Len(t, payload.Meetings[1].Speeches, 2)
}

func TestMemberSpeechesNotFound(t *testing.T) {
	srv := newOrigin(t, nil)
	store := dataset.New(srv.URL, nil)

	_, err := store.MemberSpeeches(context.Background(), "nobody")
	require.ErrorIs(t, err, dataset.ErrNotFound)
}

func TestMemberSpeechesUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	store := dataset.New(srv.URL, nil)
	_, err := store.MemberSpeeches(context.Background(), "yamadataro")
	require.Error(t, err)
	require.NotErrorIs(t, err, dataset.ErrNotFound)
}

func TestMemberPageJointFetch(t *testing.T) {
	srv := newOrigin(t, map[string]string{
		"/data/member_speeches/yamadataro.json":    `{"member_name":"山田太郎","meetings":[]}`,
		"/data/diet_members_socials_enriched.json": rosterJSON,
	})

	store := dataset.New(srv.URL, nil)
	page, err := store.MemberPage(context.Background(), "yamadataro")
	require.NoError(t, err)
	require.False(t, page.NotFound)
	require.NotNil(t, page.History)
	require.NotNil(t, page.Profile)
	require.Equal(t, "無所属", page.Profile.Party)
}

func TestMemberPageRosterFailureIsIsolated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/data/member_speeches/yamadataro.json" {
			_, _ = w.Write([]byte(`{"member_name":"山田太郎","meetings":[]}`))
			return
		}
		http.Error(w, "roster down", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	store := dataset.New(srv.URL, nil)
	page, err := store.MemberPage(context.Background(), "yamadataro")
	require.NoError(t, err, "roster failure must not abort the page")
	require.NotNil(t, page.History)
	require.Nil(t, page.Profile)
}

func TestMemberPageHistory404FallsBackToProfile(t *testing.T) {
	srv := newOrigin(t, map[string]string{
		"/data/diet_members_socials_enriched.json": rosterJSON,
	})

	store := dataset.New(srv.URL, nil)
	page, err := store.MemberPage(context.Background(), "yamadataro")
	require.NoError(t, err)
	require.True(t, page.NotFound)
	require.Nil(t, page.History)
	require.NotNil(t, page.Profile)
	require.Equal(t, []string{"障害児福祉議連"}, page.Profile.DisabilityLeagues)
}

func TestMemberPageHistoryErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/data/diet_members_socials_enriched.json" {
			_, _ = w.Write([]byte(rosterJSON))
			return
		}
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	store := dataset.New(srv.URL, nil)
	_, err := store.MemberPage(context.Background(), "yamadataro")
	require.Error(t, err)
}

func TestIndexAndSample(t *testing.T) {
	srv := newOrigin(t, map[string]string{
		"/data/member_speeches_index.json": `{"index":{"yamadataro":{"speeches":12,"written_questions":2}}}`,
		"/data/speech_hino_sample.json":    `[{"date":"2024-05-01","speech":"サンプル"}]`,
	})

	store := dataset.New(srv.URL, nil)

	idx, err := store.Index(context.Background())
	require.NoError(t, err)
	require.Equal(t, 12, idx.Index["yamadataro"].Speeches)

	sample, err := store.SampleSpeeches(context.Background())
	require.NoError(t, err)
	require.Len(t, sample, 1)
}
