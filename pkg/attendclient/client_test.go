package attendclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendterm/internal/infrastructure/logger"
	"attendterm/internal/stubserver"
	"attendterm/pkg/attendclient"
)

type staticConn bool

func (c staticConn) Connected() bool { return bool(c) }

// countingDoer считает запросы и отвечает заданной функцией
type countingDoer struct {
	calls int
	onDo  func(req *http.Request) (*http.Response, error)
}

func (d *countingDoer) Do(req *http.Request) (*http.Response, error) {
	d.calls++
	return d.onDo(req)
}

var monday9 = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func TestReportAgainstStub(t *testing.T) {
	stub := stubserver.New(stubserver.Config{DeleteToken: "tok"}, logger.Nop())
	stub.AddStudent(stubserver.Student{FingerID: 3, Name: "Ann", Active: true})
	stub.AddClass(stubserver.Class{Weekday: time.Monday, Start: 9 * time.Hour, End: 10 * time.Hour})
	ts := httptest.NewServer(stub.Router())
	defer ts.Close()

	client := attendclient.New(attendclient.Config{BaseURL: ts.URL + "/", DeleteToken: "tok"}, staticConn(true))
	ctx := context.Background()

	res := client.Report(ctx, attendclient.CaptureEvent{Slot: 3, CapturedAt: monday9})
	assert.Equal(t, attendclient.OutcomeOnTime, res.Outcome)
	assert.Equal(t, "Attendance Marked", res.Message)
	assert.Equal(t, 200, res.Status)
	assert.NoError(t, res.Err)

	res = client.Report(ctx, attendclient.CaptureEvent{Slot: 3, CapturedAt: monday9.Add(time.Minute)})
	assert.Equal(t, attendclient.OutcomeConflict, res.Outcome)

	res = client.Report(ctx, attendclient.CaptureEvent{Slot: 4, CapturedAt: monday9})
	assert.Equal(t, attendclient.OutcomeNotFound, res.Outcome)

	res = client.DeleteAll(ctx)
	assert.Equal(t, attendclient.OutcomeDeleted, res.Outcome)
	assert.Equal(t, "Student Data Deleted", res.Message)
	assert.True(t, res.Success())
}

func TestReportRequestShape(t *testing.T) {
	var got attendclient.CapturePayload
	var reqID string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/capture", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		reqID = r.Header.Get(attendclient.HeaderRequestID)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	sim := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
	client := attendclient.New(attendclient.Config{
		BaseURL:       ts.URL,
		CapturePath:   "/capture",
		SimulatedTime: sim,
	}, staticConn(true))

	res := client.Report(context.Background(), attendclient.CaptureEvent{Slot: 12, CapturedAt: monday9})
	assert.Equal(t, attendclient.OutcomeLate, res.Outcome)
	assert.Equal(t, 12, got.FingerID)
	assert.Equal(t, "2026-10-19T09:00:00Z", got.Timestamp)
	assert.Equal(t, "2026-10-19T09:30:00Z", got.CurrentDateTime)
	_, err := uuid.Parse(reqID)
	assert.NoError(t, err)
}

func TestReportOmitsCurrentDateTimeByDefault(t *testing.T) {
	var raw map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
	}))
	defer ts.Close()

	client := attendclient.New(attendclient.Config{BaseURL: ts.URL}, nil)
	client.Report(context.Background(), attendclient.CaptureEvent{Slot: 1, CapturedAt: monday9})

	assert.NotContains(t, raw, "currentDateTime")
	assert.Contains(t, raw, "fingerId")
}

func TestOfflineIssuesNoRequest(t *testing.T) {
	doer := &countingDoer{onDo: func(*http.Request) (*http.Response, error) {
		t.Fatal("request must not be sent while offline")
		return nil, nil
	}}
	client := attendclient.NewWithDoer(attendclient.Config{BaseURL: "http://service"}, staticConn(false), doer)

	res := client.Report(context.Background(), attendclient.CaptureEvent{Slot: 1, CapturedAt: monday9})
	assert.Equal(t, attendclient.OutcomeOffline, res.Outcome)
	assert.ErrorIs(t, res.Err, attendclient.ErrOffline)

	res = client.DeleteAll(context.Background())
	assert.Equal(t, attendclient.OutcomeOffline, res.Outcome)
	assert.Zero(t, doer.calls)
}

func TestUnreachableIsNotRetried(t *testing.T) {
	doer := &countingDoer{onDo: func(*http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	}}
	client := attendclient.NewWithDoer(attendclient.Config{BaseURL: "http://service"}, staticConn(true), doer)

	res := client.Report(context.Background(), attendclient.CaptureEvent{Slot: 1, CapturedAt: monday9})
	assert.Equal(t, attendclient.OutcomeUnreachable, res.Outcome)
	assert.ErrorIs(t, res.Err, attendclient.ErrUnreachable)
	assert.Equal(t, 1, doer.calls)
}

func TestDeleteAllSendsToken(t *testing.T) {
	var logged []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		if r.URL.Query().Get("confirm") != "s3cret" {
			w.Header().Set("Content-Type", "text/plain; charset=windows-1251")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte{0xCE, 0xF2, 0xEA, 0xE0, 0xE7}) // "Отказ" в windows-1251
			return
		}
	}))
	defer ts.Close()

	logf := func(s string) { logged = append(logged, s) }
	ok := attendclient.New(attendclient.Config{BaseURL: ts.URL, DeleteToken: "s3cret", Logger: logf}, staticConn(true))
	assert.Equal(t, attendclient.OutcomeDeleted, ok.DeleteAll(context.Background()).Outcome)

	bad := attendclient.New(attendclient.Config{BaseURL: ts.URL, DeleteToken: "wrong", Logger: logf}, staticConn(true))
	res := bad.DeleteAll(context.Background())
	assert.Equal(t, attendclient.OutcomeDeleteFailed, res.Outcome)
	assert.Equal(t, "Delete Failed 403", res.Message)
	assert.True(t, strings.Contains(strings.Join(logged, "\n"), "Отказ"))
}
