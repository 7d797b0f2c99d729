package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pasika/internal/core"
	"pasika/internal/i18n"
	"pasika/internal/log"
	"pasika/internal/view"
)

// localizer negotiates the request language and persists an explicit
// ?lang= choice as a cookie.
func (s *Server) localizer(w http.ResponseWriter, r *http.Request) *i18n.Localizer {
	tag, persist := s.bundle.ResolveTag(r, s.defaultLang)
	if persist {
		i18n.SetLanguageCookie(w, tag)
	}
	return s.bundle.Localizer(tag)
}

// pageKey identifies a built page model. The dataset is fixed for the life of
// the server, so locale and state fully determine it.
type pageKey struct {
	locale string
	state  view.State
}

func (s *Server) page(w http.ResponseWriter, r *http.Request, st view.State) view.Page {
	l := s.localizer(w, r)
	p, hit := s.pages.GetOrCreate(pageKey{locale: l.Locale(), state: st}, func() view.Page {
		return view.Build(s.dataset, st, l).WithLanguages(s.bundle)
	})
	s.metrics.RecordPageCache(hit)
	return p
}

// transition applies e and records it; invalid events keep from.
func (s *Server) transition(ctx context.Context, from view.State, e view.Event) (view.State, error) {
	to, err := view.Transition(from, e)
	if err != nil {
		return from, err
	}
	s.metrics.RecordTransition(e.Kind.String(), string(to.Tab))
	s.structured.LogTransition(ctx, e.Kind.String(), string(to.Tab), to.CreateDialogOpen)
	return to, nil
}

func (s *Server) writeHTML(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	body, err := s.render(r.Context(), name, data)
	if err != nil {
		InternalServerError("render failed").Write(w)
		return
	}
	NewHTMXResponse().Status(status).BodyHTML(body).Write(w)
}

// handleIndex renders the whole dashboard for the state in the query string.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	st := view.StateFromQuery(r.URL.Query())
	s.writeHTML(w, r, http.StatusOK, "page", s.page(w, r, st))
}

// handleTab renders the tab panel fragment for the selected tab.
func (s *Server) handleTab(w http.ResponseWriter, r *http.Request) {
	tab, err := view.ParseTab(r.PathValue("tab"))
	if err != nil {
		NotFoundError("unknown tab").Write(w)
		return
	}
	st, err := s.transition(r.Context(), view.StateFromQuery(r.URL.Query()), view.SelectTab(tab))
	if err != nil {
		NotFoundError("unknown tab").Write(w)
		return
	}

	body, err := s.render(r.Context(), "tab_panel", s.page(w, r, st))
	if err != nil {
		InternalServerError("render failed").Write(w)
		return
	}
	NewHTMXResponse().PushURL(st.Href()).BodyHTML(body).Write(w)
}

// handleOpenDialog renders the create-apiary dialog. Without htmx it falls
// back to the full page with the dialog open.
func (s *Server) handleOpenDialog(w http.ResponseWriter, r *http.Request) {
	st, _ := s.transition(r.Context(), view.StateFromQuery(r.URL.Query()), view.OpenCreateDialog())
	if !isHTMX(r) {
		http.Redirect(w, r, st.Href(), http.StatusSeeOther)
		return
	}

	body, err := s.render(r.Context(), "dialog", s.page(w, r, st))
	if err != nil {
		InternalServerError("render failed").Write(w)
		return
	}
	NewHTMXResponse().PushURL(st.Href()).BodyHTML(body).Write(w)
}

// handleCloseDialog answers with an empty fragment that clears the dialog.
func (s *Server) handleCloseDialog(w http.ResponseWriter, r *http.Request) {
	from := view.StateFromQuery(r.URL.Query())
	from.CreateDialogOpen = true
	st, _ := s.transition(r.Context(), from, view.CloseCreateDialog())
	NewHTMXResponse().TriggerDialogClosed().PushURL(st.Href()).Write(w)
}

// handleCreateApiary validates the dialog form. Nothing is stored: a valid
// submission only closes the dialog.
func (s *Server) handleCreateApiary(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.logger.WarnContext(r.Context(), "Parse form error", log.FieldError, err)
		BadRequestError("invalid form").Write(w)
		return
	}

	from := view.StateFromQuery(r.PostForm)
	from.CreateDialogOpen = true
	form := view.ApiaryForm{
		Name:     sanitizeInput(r.PostForm.Get("name")),
		Location: sanitizeInput(r.PostForm.Get("location")),
	}

	if errs := form.Validate(); len(errs) > 0 {
		for field := range errs {
			s.metrics.RecordFormRejection(field)
		}
		name := "page"
		if isHTMX(r) {
			name = "dialog"
		}
		s.writeHTML(w, r, http.StatusUnprocessableEntity, name, s.page(w, r, from).WithForm(form, errs))
		return
	}

	st, _ := s.transition(r.Context(), from, view.SubmitCreateDialog())
	s.logger.InfoContext(r.Context(), "Create apiary form accepted", log.FieldTab, string(st.Tab))
	if !isHTMX(r) {
		http.Redirect(w, r, st.Href(), http.StatusSeeOther)
		return
	}
	NewHTMXResponse().TriggerDialogClosed().PushURL(st.Href()).Write(w)
}

func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	s.logger.WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldClientIP, s.detector.ExtractClientIP(r),
		log.FieldPath, r.URL.Path)
	ErrorResponse(http.StatusTooManyRequests, "too many requests").Write(w)
}

type seasonSummary struct {
	Season   core.Season `json:"season"`
	TotalKg  float64     `json:"total_kg"`
	Count    int         `json:"count"`
	Progress int         `json:"progress"`
}

type summaryResponse struct {
	Apiaries     int             `json:"apiaries"`
	ActiveCount  int             `json:"active_apiaries"`
	TotalHives   int             `json:"total_hives"`
	TotalHoneyKg float64         `json:"total_honey_kg"`
	Seasons      []seasonSummary `json:"seasons"`
}

func buildSummary(ds core.Dataset, totals core.FleetTotals) summaryResponse {
	out := summaryResponse{
		Apiaries:     len(ds.Apiaries()),
		ActiveCount:  totals.ActiveCount,
		TotalHives:   totals.TotalHives,
		TotalHoneyKg: totals.TotalHoney,
	}
	for _, st := range core.ComputeSeasonStats(ds.Harvests(), core.Seasons()) {
		out.Seasons = append(out.Seasons, seasonSummary{
			Season:   st.Season,
			TotalKg:  st.Total,
			Count:    st.Count,
			Progress: core.SeasonProgress(st.Total, core.SeasonScaleKg),
		})
	}
	return out
}

// handleSummary returns fleet totals and season statistics as JSON.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, buildSummary(s.dataset, s.totals))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
	})
}

// handleReady reports 503 once shutdown has begun.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status, code := "ready", http.StatusOK
	if !s.ready.Load() {
		status, code = "not_ready", http.StatusServiceUnavailable
	}
	stats := s.pages.Stats()
	s.writeJSON(w, r, code, map[string]any{
		"status": status,
		"checks": map[string]any{
			"templates": "ok",
			"dataset": map[string]int{
				"apiaries": len(s.dataset.Apiaries()),
				"hives":    len(s.dataset.Hives()),
			},
			"rate_limiter": map[string]int{"active_clients": s.limiter.ActiveClients()},
			"page_cache": map[string]any{
				"size":   stats.Size,
				"hits":   stats.Hits,
				"misses": stats.Misses,
			},
		},
	})
}

// writeJSON encodes v before writing the status so an encoding failure still
// becomes a 500.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.structured.LogError(r.Context(), "JSON encoding failed", err, log.ComponentHTTP, log.OpRender)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// sanitizeInput trims and drops control characters except tab and newlines.
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}
