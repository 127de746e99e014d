package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Design-for-Changes/visualization/internal/config"
	"github.com/Design-for-Changes/visualization/internal/dataset"
	"github.com/Design-for-Changes/visualization/internal/logger"
	"github.com/Design-for-Changes/visualization/internal/pager"
	"github.com/Design-for-Changes/visualization/internal/roster"
	"github.com/Design-for-Changes/visualization/internal/search"
	"github.com/Design-for-Changes/visualization/internal/view"
)

func main() {
	log := logger.New("api")
	cfg, err := config.LoadAPI()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	store := dataset.New(cfg.DataBaseURL, log)
	cache := dataset.NewCache(store, log)

	var esClient *search.Client
	if cfg.ElasticsearchAddr != "" {
		esClient, err = search.New(cfg.ElasticsearchAddr, cfg.ElasticsearchIndex, log)
		if err != nil {
			log.Error("init elasticsearch", slog.Any("err", err))
			os.Exit(1)
		}
	}

	srv := &server{log: log, cfg: cfg, store: store, cache: cache, es: esClient, render: view.New()}

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := cache.Refresh(startupCtx); err != nil {
		// The directory retries lazily on first request.
		log.Warn("initial snapshot load failed", slog.Any("err", err))
	}
	cancel()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", srv.handleHealth)
	r.Get("/", srv.handleDirectory)
	r.Get("/member", srv.handleMemberQuery)
	r.Get("/members/{slug}", srv.handleMember)
	r.Get("/sample", srv.handleSample)
	r.Get("/search", srv.handleSearch)
	r.Get("/static/site.css", srv.handleCSS)
	r.Get("/api/members", srv.handleMembersJSON)
	r.Get("/api/members/{slug}", srv.handleMemberJSON)

	httpServer := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Periodic snapshot reload so regenerated dataset files show up without
	// a restart.
	go func() {
		ticker := time.NewTicker(cfg.RefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				refreshCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
				if err := cache.Refresh(refreshCtx); err != nil {
					log.Warn("snapshot refresh failed", slog.Any("err", err))
				}
				cancel()
			}
		}
	}()

	go func() {
		log.Info("api server starting", slog.String("addr", cfg.BindAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", slog.Any("err", err))
	}
}

type server struct {
	log    *slog.Logger
	cfg    *config.API
	store  *dataset.Store
	cache  *dataset.Cache
	es     *search.Client
	render *view.Renderer
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if s.es != nil {
		if err := s.es.Health(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleDirectory(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshot(r.Context())
	if err != nil {
		s.renderError(w, err)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	entries := view.FilterDirectory(snap.Directory(), query)

	writeHTML(w, http.StatusOK)
	if err := s.render.Directory(w, view.DirectoryData{Query: query, Entries: entries}); err != nil {
		s.log.Error("render directory", slog.Any("err", err))
	}
}

// handleMemberQuery keeps the legacy ?slug= entry point working. A missing
// slug is a handled state with its own message, not an error.
func (s *server) handleMemberQuery(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(r.URL.Query().Get("slug"))
	if slug == "" {
		writeHTML(w, http.StatusOK)
		data := view.MemberData{Display: roster.Merge(nil, nil, ""), Notice: view.MsgNoSlug}
		if err := s.render.Member(w, data); err != nil {
			s.log.Error("render member", slog.Any("err", err))
		}
		return
	}
	http.Redirect(w, r, "/members/"+slug, http.StatusMovedPermanently)
}

func (s *server) handleMember(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	slug := chi.URLParam(r, "slug")
	page, err := s.store.MemberPage(ctx, slug)
	if err != nil {
		s.renderError(w, err)
		return
	}

	data := view.MemberData{
		Slug:    slug,
		Display: roster.Merge(page.History, page.Profile, slug),
	}

	if page.NotFound {
		data.NotFound = true
		data.Notice = view.MsgNotRegistered
	}

	if page.History != nil {
		meetings := page.History.Meetings
		data.TotalMeetings = len(meetings)
		data.Questions = page.History.WrittenQuestions

		p := pager.New(s.cfg.PageSize)
		p.Reset(len(meetings))
		show := clampInt(r.URL.Query().Get("show"), p.Visible(), len(meetings))
		for p.Visible() < show && p.HasMore() {
			p.Advance()
		}

		data.Meetings = view.BuildMeetings(meetings[:p.Visible()])
		data.ShowMore = p.ShowControl() && p.HasMore()
		data.NextShow = min(p.Visible()+s.cfg.PageSize, len(meetings))
	}

	writeHTML(w, http.StatusOK)
	if err := s.render.Member(w, data); err != nil {
		s.log.Error("render member", slog.Any("err", err))
	}
}

func (s *server) handleSample(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	records, err := s.store.SampleSpeeches(ctx)
	if err != nil && !errors.Is(err, dataset.ErrNotFound) {
		s.renderError(w, err)
		return
	}

	writeHTML(w, http.StatusOK)
	if err := s.render.Sample(w, view.SampleData{Rows: view.BuildSampleRows(records)}); err != nil {
		s.log.Error("render sample", slog.Any("err", err))
	}
}

func (s *server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.es == nil {
		writeHTML(w, http.StatusOK)
		if err := s.render.Search(w, view.SearchData{Unavailable: true}); err != nil {
			s.log.Error("render search", slog.Any("err", err))
		}
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q := r.URL.Query()
	params := search.Params{
		Query:   strings.TrimSpace(q.Get("q")),
		Slug:    strings.TrimSpace(q.Get("member")),
		Party:   strings.TrimSpace(q.Get("party")),
		Session: clampInt(q.Get("session"), 0, 10_000),
		From:    clampInt(q.Get("from"), 0, 10_000),
		Size:    clampInt(q.Get("size"), 20, 100),
		Start:   strings.TrimSpace(q.Get("start")),
		End:     strings.TrimSpace(q.Get("end")),
	}

	data := view.SearchData{Query: params.Query}
	if params.Query != "" || params.Slug != "" || params.Party != "" {
		result, err := s.es.SearchSpeeches(ctx, params)
		if err != nil {
			s.renderError(w, err)
			return
		}
		data.Total = result.Total
		for _, doc := range result.Items {
			summary := doc.Summary
			if summary == "" {
				summary = doc.Speech
			}
			data.Rows = append(data.Rows, view.SearchRow{
				Date:    doc.Date,
				Member:  doc.MemberName,
				Meeting: doc.NameOfMeeting,
				Summary: summary,
				URL:     doc.SpeechURL,
			})
		}
	}

	writeHTML(w, http.StatusOK)
	if err := s.render.Search(w, data); err != nil {
		s.log.Error("render search", slog.Any("err", err))
	}
}

func (s *server) handleMembersJSON(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshot(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, snap.Directory())
}

func (s *server) handleMemberJSON(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	slug := chi.URLParam(r, "slug")
	page, err := s.store.MemberPage(ctx, slug)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if page.NotFound && page.Profile == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "member not found"})
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// snapshot returns the current snapshot, loading it on demand when the
// startup refresh failed.
func (s *server) snapshot(ctx context.Context) (*dataset.Snapshot, error) {
	if snap := s.cache.Current(); snap != nil {
		return snap, nil
	}
	refreshCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()
	if err := s.cache.Refresh(refreshCtx); err != nil {
		return nil, err
	}
	return s.cache.Current(), nil
}

func (s *server) renderError(w http.ResponseWriter, err error) {
	s.log.Error("page failed", slog.Any("err", err))
	writeHTML(w, http.StatusInternalServerError)
	if rerr := s.render.Error(w, view.ErrorData{Message: err.Error()}); rerr != nil {
		s.log.Error("render error page", slog.Any("err", rerr))
	}
}

func (s *server) handleCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write([]byte(siteCSS))
}

const siteCSS = `body{font-family:sans-serif;margin:0;color:#222}
header,footer{background:#1a3c6e;color:#fff;padding:.5rem 1rem}
header a{color:#fff;text-decoration:none;font-weight:bold}
main{max-width:60rem;margin:0 auto;padding:1rem}
table{border-collapse:collapse;width:100%}
th,td{border-bottom:1px solid #ddd;padding:.4rem;text-align:left}
.kana{color:#666;font-size:.85em;margin-left:.25em}
.placeholder{color:#666;background:#f4f4f4;padding:.75rem}
.error{color:#a00}
.meeting{border-left:3px solid #1a3c6e;padding-left:.75rem;margin:.75rem 0}
.socials{list-style:none;padding:0;display:flex;gap:.75rem}
.load-more{display:inline-block;padding:.4rem .8rem;border:1px solid #1a3c6e}`

func clampInt(raw string, fallback, max int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	if value <= 0 {
		return fallback
	}
	if value > max {
		return max
	}
	return value
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// nothing better to do
	}
}

func writeHTML(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
}
