package attendclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/html/charset"
)

// Ограничение на чтение тела ответа для журнала
const maxBodyLog = 512

// New создает клиент с http.Client на таймаут из конфигурации
func New(cfg Config, conn Connectivity) Client {
	cfg = withDefaults(cfg)
	return NewWithDoer(cfg, conn, &http.Client{Timeout: cfg.Timeout})
}

// NewWithDoer создает клиент с пользовательским исполнителем запросов (для тестов)
func NewWithDoer(cfg Config, conn Connectivity, doer Doer) Client {
	return &httpClient{cfg: withDefaults(cfg), conn: conn, doer: doer}
}

func withDefaults(cfg Config) Config {
	if cfg.CapturePath == "" {
		cfg.CapturePath = DefaultCapturePath
	}
	if cfg.DeletePath == "" {
		cfg.DeletePath = DefaultDeletePath
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg
}

type httpClient struct {
	cfg  Config
	conn Connectivity
	doer Doer
}

// Report отправляет отметку; повторов нет
func (c *httpClient) Report(ctx context.Context, ev CaptureEvent) Result {
	if !c.online() {
		return Result{Outcome: OutcomeOffline, Message: msgOffline, Err: ErrOffline}
	}

	payload := CapturePayload{
		FingerID:  ev.Slot,
		Timestamp: ev.CapturedAt.Format(time.RFC3339),
	}
	if !c.cfg.SimulatedTime.IsZero() {
		payload.CurrentDateTime = c.cfg.SimulatedTime.Format(time.RFC3339)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Result{Outcome: OutcomeHTTPError, Message: "Encode Error", Err: fmt.Errorf("attendclient: encode payload: %w", err)}
	}

	status, err := c.do(ctx, http.MethodPost, c.cfg.BaseURL+c.cfg.CapturePath, body)
	if err != nil {
		return Result{Outcome: OutcomeUnreachable, Message: msgUnreachable, Err: err}
	}
	outcome, msg := Classify(status)
	c.logf("Capture slot %d reported: %d %s", ev.Slot, status, outcome)
	return Result{Outcome: outcome, Status: status, Message: msg}
}

// DeleteAll отправляет запрос удаления всех записей с токеном подтверждения
func (c *httpClient) DeleteAll(ctx context.Context) Result {
	if !c.online() {
		return Result{Outcome: OutcomeOffline, Message: msgOffline, Err: ErrOffline}
	}

	u, err := url.Parse(c.cfg.BaseURL + c.cfg.DeletePath)
	if err != nil {
		return Result{Outcome: OutcomeDeleteFailed, Message: "Delete Failed", Err: fmt.Errorf("%w: %v", ErrBadConfig, err)}
	}
	q := u.Query()
	q.Set("confirm", c.cfg.DeleteToken)
	u.RawQuery = q.Encode()

	status, err := c.do(ctx, http.MethodDelete, u.String(), nil)
	if err != nil {
		return Result{Outcome: OutcomeUnreachable, Message: msgUnreachable, Err: err}
	}
	outcome, msg := ClassifyDelete(status)
	c.logf("Remote delete: %d %s", status, outcome)
	return Result{Outcome: outcome, Status: status, Message: msg}
}

func (c *httpClient) online() bool {
	return c.conn == nil || c.conn.Connected()
}

// do выполняет один запрос и возвращает статус ответа
func (c *httpClient) do(ctx context.Context, method, target string, body []byte) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, rd)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadConfig, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	id := uuid.NewString()
	req.Header.Set(HeaderRequestID, id)

	c.logf("%s %s [%s]", method, target, id)
	resp, err := c.doer.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if text := readBody(resp); text != "" {
			c.logf("Response %d [%s]: %s", resp.StatusCode, id, text)
		}
	} else {
		_, _ = io.Copy(io.Discard, resp.Body)
	}
	return resp.StatusCode, nil
}

// readBody читает начало тела ответа в кодировке из Content-Type
func readBody(resp *http.Response) string {
	limited := io.LimitReader(resp.Body, maxBodyLog)
	r, err := charset.NewReader(limited, resp.Header.Get("Content-Type"))
	if err != nil {
		r = limited
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (c *httpClient) logf(format string, args ...any) {
	if c.cfg.Logger != nil {
		c.cfg.Logger(fmt.Sprintf(format, args...))
	}
}
