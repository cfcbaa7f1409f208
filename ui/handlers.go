package ui

import (
	"errors"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"burntest/internal/dashboard"
	"burntest/internal/session"
	"burntest/ports"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxUploadBytes = 32 << 20

// controller returns the session's controller, starting a session (and running Init)
// on first visit. The cookie is reissued on every request so its lifetime tracks the
// session's idle TTL.
func (a *App) controller(w http.ResponseWriter, r *http.Request) *dashboard.Controller {
	var id string
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		id = cookie.Value
	}

	id, c, created := a.sessions.Get(id)
	cookie := &http.Cookie{
		Name:     session.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if a.cookieTTL > 0 {
		cookie.MaxAge = int(a.cookieTTL / time.Second)
	}
	http.SetCookie(w, cookie)

	if created {
		c.Init(r.Context())
	}
	return c
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	c := a.controller(w, r)
	a.renderTemplate(w, "dashboard.html", pageData{
		State:    c.Snapshot(),
		Sections: sectionTabs,
		Download: c.TakeDownload(),
	})
}

// handleAction dispatches one form post and redirects back to the page
func (a *App) handleAction(w http.ResponseWriter, r *http.Request) {
	c := a.controller(w, r)

	action, cleanup, err := parseAction(r, dashboard.ActionKind(chi.URLParam(r, "action")))
	if err != nil {
		a.logger.Warn("malformed action", zap.Error(err))
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	defer cleanup()

	if err := c.Dispatch(r.Context(), action); err != nil {
		a.logger.Warn("unknown action", zap.String("action", string(action.Kind)))
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// parseAction reads the fields an action may carry from the posted form. The returned
// cleanup closes any uploaded file.
func parseAction(r *http.Request, kind dashboard.ActionKind) (dashboard.Action, func(), error) {
	cleanup := func() {}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return dashboard.Action{}, cleanup, err
	}

	action := dashboard.Action{
		Kind:     kind,
		Section:  r.FormValue("section"),
		OrderID:  r.FormValue("order_id"),
		Filename: r.FormValue("filename"),
	}
	if v := r.FormValue("alert_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return dashboard.Action{}, cleanup, err
		}
		action.AlertID = id
	}
	if v := r.FormValue("confirmed"); v != "" {
		confirmed, err := strconv.ParseBool(v)
		if err != nil {
			return dashboard.Action{}, cleanup, err
		}
		action.Confirmed = confirmed
	}

	// an empty file input still posts a part with no filename
	if file, header, err := r.FormFile("file"); err == nil {
		if header.Filename == "" {
			file.Close()
		} else {
			action.Upload = &ports.Upload{Filename: header.Filename, Content: file}
			cleanup = func() { file.Close() }
		}
	}
	return action, cleanup, nil
}

// handleDownload proxies a report file from the backend
func (a *App) handleDownload(w http.ResponseWriter, r *http.Request) {
	fileURL := r.URL.Query().Get("url")
	target, err := a.downloader.ResolveURL(fileURL)
	if err != nil || fileURL == "" {
		http.Error(w, "File không tồn tại", http.StatusNotFound)
		return
	}

	name := "report.xlsx"
	if u, err := url.Parse(target); err == nil {
		if base := path.Base(u.Path); base != "/" && base != "." {
			name = base
		}
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))

	if _, err := a.downloader.Download(r.Context(), fileURL, w); err != nil {
		a.logger.Error("download failed", zap.String("url", fileURL), zap.Error(err))
		w.Header().Del("Content-Disposition")
		http.Error(w, "File không tồn tại", http.StatusBadGateway)
	}
}
