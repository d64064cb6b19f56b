package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/mmynk/innkeeper/internal/api"
)

const echoProcedure = "/innkeeper.test.EchoService/Echo"

type echoMessage struct {
	Text string `json:"text"`
}

// captureLogs routes the default logger to a JSON buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

// rpcRecords returns the interceptor's log records from buf.
func rpcRecords(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var records []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var rec map[string]any
		if err := dec.Decode(&rec); err != nil {
			t.Fatalf("decode log record: %v", err)
		}
		if rec["procedure"] != nil {
			records = append(records, rec)
		}
	}
	return records
}

func newEchoServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.Handle(echoProcedure, connect.NewUnaryHandler(echoProcedure,
		func(ctx context.Context, req *connect.Request[echoMessage]) (*connect.Response[echoMessage], error) {
			switch req.Msg.Text {
			case "missing":
				return nil, connect.NewError(connect.CodeNotFound, errors.New("hotel ID H9 does not exist"))
			case "boom":
				return nil, errors.New("disk on fire")
			}
			return connect.NewResponse(&echoMessage{Text: req.Msg.Text}), nil
		},
		connect.WithCodec(api.Codec{}),
		connect.WithInterceptors(LoggingInterceptor()),
	))
	srv := httptest.NewServer(Logging(mux))
	t.Cleanup(srv.Close)
	return srv
}

func callEcho(t *testing.T, srv *httptest.Server, text, requestID string) error {
	t.Helper()
	client := connect.NewClient[echoMessage, echoMessage](srv.Client(), srv.URL+echoProcedure, connect.WithCodec(api.Codec{}))
	req := connect.NewRequest(&echoMessage{Text: text})
	req.Header().Set(RequestIDHeader, requestID)
	_, err := client.CallUnary(context.Background(), req)
	return err
}

func TestLogging_AssignsRequestID(t *testing.T) {
	var seen string
	h := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/innkeeper.v1.HotelService/DisplayHotel", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status: expected %d, got %d", http.StatusTeapot, rec.Code)
	}
	if _, err := uuid.Parse(seen); err != nil {
		t.Errorf("expected generated UUID in context, got %q", seen)
	}
	if got := rec.Header().Get(RequestIDHeader); got != seen {
		t.Errorf("header: expected %q, got %q", seen, got)
	}
}

func TestLogging_KeepsIncomingRequestID(t *testing.T) {
	var seen string
	h := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "abc-123" {
		t.Errorf("expected incoming request ID, got %q", seen)
	}
}

func TestCORS_Preflight(t *testing.T) {
	called := false
	h := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/innkeeper.v1.HotelService/CreateHotel", nil))

	if called {
		t.Error("preflight must not reach the next handler")
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing Access-Control-Allow-Origin")
	}
}

func TestLoggingInterceptor_LogsRequestID(t *testing.T) {
	buf := captureLogs(t)
	srv := newEchoServer(t)

	if err := callEcho(t, srv, "hello", "req-ok"); err != nil {
		t.Fatalf("call: %v", err)
	}

	records := rpcRecords(t, buf)
	if len(records) != 1 {
		t.Fatalf("expected 1 RPC record, got %d", len(records))
	}
	rec := records[0]
	if rec["msg"] != "RPC ok" || rec["level"] != "INFO" {
		t.Errorf("unexpected record: %v", rec)
	}
	if rec["procedure"] != echoProcedure {
		t.Errorf("procedure: expected %q, got %v", echoProcedure, rec["procedure"])
	}
	if rec["request_id"] != "req-ok" {
		t.Errorf("request_id: expected %q, got %v", "req-ok", rec["request_id"])
	}
}

func TestLoggingInterceptor_ErrorLevels(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		level string
		code  connect.Code
	}{
		{name: "client error", text: "missing", level: "WARN", code: connect.CodeNotFound},
		{name: "server error", text: "boom", level: "ERROR", code: connect.CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)
			srv := newEchoServer(t)

			err := callEcho(t, srv, tt.text, "req-"+tt.text)
			if connect.CodeOf(err) != tt.code {
				t.Fatalf("code: expected %v, got %v (%v)", tt.code, connect.CodeOf(err), err)
			}

			records := rpcRecords(t, buf)
			if len(records) != 1 {
				t.Fatalf("expected 1 RPC record, got %d", len(records))
			}
			if records[0]["level"] != tt.level {
				t.Errorf("level: expected %s, got %v", tt.level, records[0]["level"])
			}
			if records[0]["request_id"] != "req-"+tt.text {
				t.Errorf("request_id: expected %q, got %v", "req-"+tt.text, records[0]["request_id"])
			}
		})
	}
}
