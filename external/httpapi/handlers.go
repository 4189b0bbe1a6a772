package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/foxseedlab/focus-cockpit/internal/session"
	"github.com/foxseedlab/focus-cockpit/internal/store"
)

const maxBodyBytes = 1 << 20

type handler struct {
	svc SessionService
}

type sessionRequest struct {
	StartTime int64  `json:"startTime"`
	EndTime   int64  `json:"endTime"`
	Type      string `json:"type"`
	TaskName  string `json:"taskName"`
	Reason    string `json:"reason"`
}

type manualSessionRequest struct {
	sessionRequest
	Predicted  float64 `json:"predicted"`
	IsDeepWork bool    `json:"isDeepWork"`
	Status     string  `json:"status"`
	Memo       string  `json:"memo"`
}

type updateSessionRequest struct {
	sessionRequest
	EventID string `json:"eventId"`
}

type summaryRequest struct {
	TaskName            string   `json:"taskName"`
	WorkMs              int64    `json:"workMs"`
	BreakMs             int64    `json:"breakMs"`
	Predicted           float64  `json:"predicted"`
	IsDeepWork          bool     `json:"isDeepWork"`
	Status              string   `json:"status"`
	SwitchCount         int      `json:"switchCount"`
	InterruptionReasons []string `json:"interruptionReasons"`
	Memo                string   `json:"memo"`
}

type feedbackRequest struct {
	Comment string `json:"comment"`
}

type timelineRowResponse struct {
	RowIndex  int     `json:"rowIndex"`
	StartTime int64   `json:"startTime"`
	EndTime   int64   `json:"endTime"`
	Duration  float64 `json:"duration"`
	Type      string  `json:"type"`
	TaskName  string  `json:"taskName"`
	Reason    string  `json:"reason"`
	EventID   string  `json:"eventId"`
}

func (h *handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res := h.svc.CreateSession(r.Context(), session.CreateInput{
		StartTime: time.UnixMilli(req.StartTime),
		EndTime:   time.UnixMilli(req.EndTime),
		Type:      store.SessionType(req.Type),
		TaskName:  req.TaskName,
		Reason:    req.Reason,
	})
	writeResult(w, res)
}

func (h *handler) createManualSession(w http.ResponseWriter, r *http.Request) {
	var req manualSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res := h.svc.CreateManualSession(r.Context(), session.ManualCreateInput{
		CreateInput: session.CreateInput{
			StartTime: time.UnixMilli(req.StartTime),
			EndTime:   time.UnixMilli(req.EndTime),
			Type:      store.SessionType(req.Type),
			TaskName:  req.TaskName,
			Reason:    req.Reason,
		},
		PredictedMin: req.Predicted,
		IsDeepWork:   req.IsDeepWork,
		Status:       req.Status,
		Memo:         req.Memo,
	})
	writeResult(w, res)
}

func (h *handler) updateSession(w http.ResponseWriter, r *http.Request) {
	rowIndex, ok := pathRowIndex(w, r)
	if !ok {
		return
	}
	var req updateSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res := h.svc.UpdateSession(r.Context(), session.UpdateInput{
		RowIndex:  rowIndex,
		EventID:   req.EventID,
		StartTime: time.UnixMilli(req.StartTime),
		EndTime:   time.UnixMilli(req.EndTime),
		Type:      store.SessionType(req.Type),
		TaskName:  req.TaskName,
		Reason:    req.Reason,
	})
	writeResult(w, res)
}

func (h *handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	rowIndex, ok := pathRowIndex(w, r)
	if !ok {
		return
	}
	res := h.svc.DeleteSession(r.Context(), rowIndex, r.URL.Query().Get("eventId"))
	writeResult(w, res)
}

func (h *handler) logSummary(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res := h.svc.LogSummary(r.Context(), session.SummaryInput{
		TaskName:            req.TaskName,
		WorkDuration:        time.Duration(req.WorkMs) * time.Millisecond,
		BreakDuration:       time.Duration(req.BreakMs) * time.Millisecond,
		PredictedMin:        req.Predicted,
		IsDeepWork:          req.IsDeepWork,
		Status:              req.Status,
		SwitchCount:         req.SwitchCount,
		InterruptionReasons: req.InterruptionReasons,
		Memo:                req.Memo,
	})
	writeResult(w, res)
}

func (h *handler) recentTaskNames(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.RecentTaskNames(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": names})
}

func (h *handler) timelineWindow(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.TimelineWindow(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]timelineRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, timelineRowResponse{
			RowIndex:  row.RowIndex,
			StartTime: row.StartTime.UnixMilli(),
			EndTime:   row.EndTime.UnixMilli(),
			Duration:  row.DurationMin,
			Type:      string(row.Type),
			TaskName:  row.TaskName,
			Reason:    row.Reason,
			EventID:   row.EventID,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"logs": out})
}

func (h *handler) timelineICal(w http.ResponseWriter, r *http.Request) {
	feed, err := h.svc.TimelineICal(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(feed)
}

func (h *handler) saveState(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromRequest(w, r)
	if !ok {
		return
	}
	blob, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	status, err := h.svc.SaveState(r.Context(), userID, blob)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": status})
}

func (h *handler) loadState(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromRequest(w, r)
	if !ok {
		return
	}
	blob, err := h.svc.LoadState(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if blob == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(blob)
}

func (h *handler) saveFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	status, err := h.svc.SaveFeedback(r.Context(), req.Comment)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": status})
}

func pathRowIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	rowIndex, err := strconv.Atoi(r.PathValue("rowIndex"))
	if err != nil || rowIndex < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": "Error: invalid row index"})
		return 0, false
	}
	return rowIndex, true
}

func userFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": "Error: X-User-ID header is required"})
		return "", false
	}
	return userID, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": "Error: invalid request body"})
		return false
	}
	return true
}

// writeResult maps a manager result onto an HTTP response. The body
// always carries the textual status clients branch on; the HTTP code
// mirrors the failure kind.
func writeResult(w http.ResponseWriter, res session.Result) {
	code := http.StatusOK
	if !res.OK {
		switch res.Kind {
		case session.FailureInvalidDuration:
			code = http.StatusUnprocessableEntity
		case session.FailureNotFound:
			code = http.StatusNotFound
		case session.FailureExternalService:
			code = http.StatusBadGateway
		default:
			code = http.StatusInternalServerError
		}
	}
	writeJSON(w, code, map[string]any{"status": res.Status()})
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]any{"status": "Error: " + err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
