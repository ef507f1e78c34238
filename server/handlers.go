package server

import (
	"crypto/subtle"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	mess "github.com/sudharshan-del/Hostel-Management"
	"github.com/sudharshan-del/Hostel-Management/catalog"
	"github.com/sudharshan-del/Hostel-Management/internal/validation"
	"go.uber.org/zap"
)

const maxBodySize = 4 << 10

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	vote, err := mess.ParseVote(string(body))
	if err != nil {
		writeError(w, http.StatusBadRequest, "vote must be 0, 1 or 2")
		return
	}

	if err := s.svc.Vote(r.Context(), vote); err != nil {
		s.logger.Error("record vote",
			zap.String("request_id", RequestID(r.Context())),
			zap.Stringer("vote", vote),
			zap.Error(err),
		)
		writeError(w, http.StatusServiceUnavailable, "vote not recorded")
		return
	}

	writeText(w, http.StatusOK, "Vote Received")
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Stats(r.Context())
	if err != nil {
		s.logger.Error("read stats", zap.String("request_id", RequestID(r.Context())), zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "stats unavailable")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	day, err := mess.ParseDay(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	menu, err := s.svc.Menu(r.Context(), day)
	if err != nil {
		s.logger.Error("read menu", zap.String("request_id", RequestID(r.Context())), zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "menu unavailable")
		return
	}
	writeJSON(w, http.StatusOK, menu)
}

// updateRequest is the admin menu edit, accepted either as JSON or as
// DAY|MEAL|item|carbs|fat|protein.
type updateRequest struct {
	Day     string `json:"day" validate:"required"`
	Meal    string `json:"meal" validate:"required"`
	Item    string `json:"item" validate:"required,max=120"`
	Carbs   string `json:"carbs" validate:"max=32"`
	Fat     string `json:"fat" validate:"max=32"`
	Protein string `json:"protein" validate:"max=32"`
}

func parseUpdate(contentType string, body []byte) (updateRequest, error) {
	var req updateRequest

	mt, _, _ := mime.ParseMediaType(contentType)
	if mt == "application/json" {
		if err := json.Unmarshal(body, &req); err != nil {
			return updateRequest{}, err
		}
	} else {
		parts := strings.Split(strings.TrimSpace(string(body)), "|")
		if len(parts) != 6 {
			return updateRequest{}, errors.New("want DAY|MEAL|item|carbs|fat|protein")
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		req = updateRequest{
			Day: parts[0], Meal: parts[1], Item: parts[2],
			Carbs: parts[3], Fat: parts[4], Protein: parts[5],
		}
	}

	if err := validation.Struct(req); err != nil {
		return updateRequest{}, err
	}
	return req, nil
}

func (s *Server) handleAdminUpdate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	req, err := parseUpdate(r.Header.Get("Content-Type"), body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	day, err := catalog.ParseWeekday(req.Day)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown day")
		return
	}
	meal, err := catalog.ParseMeal(req.Meal)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown meal")
		return
	}

	item := catalog.Item{Item: req.Item, Carbs: req.Carbs, Fat: req.Fat, Protein: req.Protein}
	if err := s.svc.UpdateMenu(r.Context(), day, meal, item); err != nil {
		s.logger.Error("update menu", zap.String("request_id", RequestID(r.Context())), zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "menu not updated")
		return
	}
	writeText(w, http.StatusOK, "Updated")
}

func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.AdminToken == "" {
			next(w, r)
			return
		}

		got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(s.cfg.AdminToken)) != 1 {
			w.Header().Set("WWW-Authenticate", `Bearer realm="mess-admin"`)
			writeError(w, http.StatusUnauthorized, "admin token required")
			return
		}
		next(w, r)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Ready(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "counter store unreadable")
		return
	}
	writeText(w, http.StatusOK, "ok")
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Stats(r.Context())
	if err != nil {
		s.logger.Error("read stats for stream", zap.String("request_id", RequestID(r.Context())), zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "stats unavailable")
		return
	}

	if err := s.hub.serve(w, r, stats); err != nil {
		s.logger.Debug("stats stream ended", zap.String("request_id", RequestID(r.Context())), zap.Error(err))
	}
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, msg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "encode response")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	b, _ := json.Marshal(map[string]string{"error": msg})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
