package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/foxseedlab/focus-cockpit/internal/session"
	"github.com/foxseedlab/focus-cockpit/internal/store"
)

type mockService struct {
	createInput  session.CreateInput
	manualInput  session.ManualCreateInput
	updateInput  session.UpdateInput
	summaryInput session.SummaryInput
	deleteRow    int
	deleteEvent  string
	feedback     string
	stateSlots   map[string][]byte

	createResult session.Result
	deleteResult session.Result
	tasks        []string
	rows         []store.TimelineRow
}

func (m *mockService) CreateSession(_ context.Context, input session.CreateInput) session.Result {
	m.createInput = input
	return m.createResult
}

func (m *mockService) CreateManualSession(_ context.Context, input session.ManualCreateInput) session.Result {
	m.manualInput = input
	return session.Result{OK: true, Message: "Manual Entry Saved 📝"}
}

func (m *mockService) UpdateSession(_ context.Context, input session.UpdateInput) session.Result {
	m.updateInput = input
	return session.Result{OK: true, Message: "Updated & Synced 🔄"}
}

func (m *mockService) DeleteSession(_ context.Context, rowIndex int, eventID string) session.Result {
	m.deleteRow = rowIndex
	m.deleteEvent = eventID
	return m.deleteResult
}

func (m *mockService) LogSummary(_ context.Context, input session.SummaryInput) session.Result {
	m.summaryInput = input
	return session.Result{OK: true, Message: "OK"}
}

func (m *mockService) RecentTaskNames(_ context.Context) ([]string, error) {
	return m.tasks, nil
}

func (m *mockService) TimelineWindow(_ context.Context) ([]store.TimelineRow, error) {
	return m.rows, nil
}

func (m *mockService) TimelineICal(_ context.Context) ([]byte, error) {
	return []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"), nil
}

func (m *mockService) SaveState(_ context.Context, userID string, blob []byte) (string, error) {
	if m.stateSlots == nil {
		m.stateSlots = make(map[string][]byte)
	}
	m.stateSlots[userID] = blob
	return "Synced", nil
}

func (m *mockService) LoadState(_ context.Context, userID string) ([]byte, error) {
	return m.stateSlots[userID], nil
}

func (m *mockService) SaveFeedback(_ context.Context, comment string) (string, error) {
	m.feedback = comment
	return "Feedback Sent!", nil
}

func newTestServer(svc *mockService) *httptest.Server {
	h := &handler{svc: svc}
	return httptest.NewServer(withRequestLog(h.routes()))
}

func decodeStatus(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer func() {
		_ = resp.Body.Close()
	}()
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return body.Status
}

func TestCreateSession(t *testing.T) {
	svc := &mockService{createResult: session.Result{OK: true, Message: "Synced 📅"}}
	srv := newTestServer(svc)
	defer srv.Close()

	payload := `{"startTime":1756540800000,"endTime":1756542300000,"type":"Task","taskName":"Write report","reason":"Pomodoro finished"}`
	resp, err := http.Post(srv.URL+"/api/sessions", "application/json", strings.NewReader(payload))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatal("expected a request id header")
	}
	if got := decodeStatus(t, resp); got != "Synced 📅" {
		t.Fatalf("unexpected status %q", got)
	}
	if svc.createInput.StartTime.UnixMilli() != 1756540800000 {
		t.Fatalf("start time not parsed, got %v", svc.createInput.StartTime)
	}
	if svc.createInput.Type != store.SessionTypeTask {
		t.Fatalf("unexpected type %q", svc.createInput.Type)
	}
}

func TestCreateSession_InvalidBody(t *testing.T) {
	svc := &mockService{}
	srv := newTestServer(svc)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/sessions", "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if got := decodeStatus(t, resp); !strings.HasPrefix(got, "Error: ") {
		t.Fatalf("expected Error status, got %q", got)
	}
}

func TestCreateSession_FailureKindMapsToStatusCode(t *testing.T) {
	svc := &mockService{createResult: session.Result{
		Kind: session.FailureInvalidDuration,
		Err:  context.DeadlineExceeded,
	}}
	srv := newTestServer(svc)
	defer srv.Close()

	payload := `{"startTime":2,"endTime":1,"type":"Task","taskName":"x"}`
	resp, err := http.Post(srv.URL+"/api/sessions", "application/json", strings.NewReader(payload))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	if got := decodeStatus(t, resp); !strings.HasPrefix(got, "Error: ") {
		t.Fatalf("expected Error status, got %q", got)
	}
}

func TestUpdateSession(t *testing.T) {
	svc := &mockService{}
	srv := newTestServer(svc)
	defer srv.Close()

	payload := `{"eventId":"evt-9","startTime":1000,"endTime":61000,"type":"Break","taskName":"Recovery","reason":"edited"}`
	req, _ := http.NewRequest(http.MethodPatch, srv.URL+"/api/sessions/4", strings.NewReader(payload))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := decodeStatus(t, resp); got != "Updated & Synced 🔄" {
		t.Fatalf("unexpected status %q", got)
	}
	if svc.updateInput.RowIndex != 4 || svc.updateInput.EventID != "evt-9" {
		t.Fatalf("unexpected update input %+v", svc.updateInput)
	}
}

func TestDeleteSession(t *testing.T) {
	svc := &mockService{deleteResult: session.Result{OK: true, Message: "Deleted from All Sheets & Calendar 🗑️"}}
	srv := newTestServer(svc)
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/sessions/3?eventId=evt-7", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	_ = resp.Body.Close()
	if svc.deleteRow != 3 || svc.deleteEvent != "evt-7" {
		t.Fatalf("unexpected delete args row=%d event=%q", svc.deleteRow, svc.deleteEvent)
	}
}

func TestDeleteSession_InvalidRowIndex(t *testing.T) {
	svc := &mockService{}
	srv := newTestServer(svc)
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/sessions/zero", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	_ = resp.Body.Close()
}

func TestLogSummary(t *testing.T) {
	svc := &mockService{}
	srv := newTestServer(svc)
	defer srv.Close()

	payload := `{"taskName":"Write","workMs":3000000,"breakMs":600000,"predicted":40,"switchCount":2,"interruptionReasons":["Phone"],"status":"Done"}`
	resp, err := http.Post(srv.URL+"/api/summaries", "application/json", strings.NewReader(payload))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	_ = resp.Body.Close()
	if svc.summaryInput.WorkDuration != 50*time.Minute {
		t.Fatalf("work duration not parsed, got %v", svc.summaryInput.WorkDuration)
	}
	if svc.summaryInput.BreakDuration != 10*time.Minute {
		t.Fatalf("break duration not parsed, got %v", svc.summaryInput.BreakDuration)
	}
}

func TestRecentTaskNames(t *testing.T) {
	svc := &mockService{tasks: []string{"Old A", "Old B"}}
	srv := newTestServer(svc)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/tasks/recent")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	var body struct {
		Tasks []string `json:"tasks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body.Tasks) != 2 || body.Tasks[0] != "Old A" {
		t.Fatalf("unexpected tasks %v", body.Tasks)
	}
}

func TestTimelineWindow(t *testing.T) {
	start := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	svc := &mockService{rows: []store.TimelineRow{{
		RowIndex:    2,
		StartTime:   start,
		EndTime:     start.Add(25 * time.Minute),
		DurationMin: 25,
		Type:        store.SessionTypeTask,
		TaskName:    "Write",
		EventID:     "evt-1",
	}}}
	srv := newTestServer(svc)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/timeline")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	var body struct {
		Logs []timelineRowResponse `json:"logs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body.Logs) != 1 {
		t.Fatalf("expected 1 row, got %d", len(body.Logs))
	}
	row := body.Logs[0]
	if row.RowIndex != 2 || row.StartTime != start.UnixMilli() || row.EventID != "evt-1" {
		t.Fatalf("unexpected row %+v", row)
	}
}

func TestTimelineICalFeed(t *testing.T) {
	svc := &mockService{}
	srv := newTestServer(svc)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/timeline.ics")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Fatalf("unexpected content type %q", ct)
	}
	feed, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(feed), "BEGIN:VCALENDAR") {
		t.Fatal("expected an iCalendar body")
	}
}

func TestStateRoundTrip(t *testing.T) {
	svc := &mockService{}
	srv := newTestServer(svc)
	defer srv.Close()

	get := func() *http.Response {
		req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/state", nil)
		req.Header.Set("X-User-ID", "user-1")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		return resp
	}

	resp := get()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 for an unwritten slot, got %d", resp.StatusCode)
	}
	_ = resp.Body.Close()

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/state", bytes.NewReader([]byte(`{"timer":"running"}`)))
	req.Header.Set("X-User-ID", "user-1")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := decodeStatus(t, resp); got != "Synced" {
		t.Fatalf("unexpected status %q", got)
	}

	resp = get()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	blob, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(blob) != `{"timer":"running"}` {
		t.Fatalf("unexpected state blob %q", blob)
	}
}

func TestState_MissingUserHeader(t *testing.T) {
	svc := &mockService{}
	srv := newTestServer(svc)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/state")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	_ = resp.Body.Close()
}

func TestSaveFeedback(t *testing.T) {
	svc := &mockService{}
	srv := newTestServer(svc)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/feedback", "application/json", strings.NewReader(`{"comment":"more colors"}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := decodeStatus(t, resp); got != "Feedback Sent!" {
		t.Fatalf("unexpected status %q", got)
	}
	if svc.feedback != "more colors" {
		t.Fatalf("feedback not forwarded, got %q", svc.feedback)
	}
}

func TestHealthz(t *testing.T) {
	svc := &mockService{}
	srv := newTestServer(svc)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	_ = resp.Body.Close()
}
