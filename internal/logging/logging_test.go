package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(buf *bytes.Buffer) *logrus.Logger {
	logger := SetupLogging("debug")
	logger.SetOutput(buf)
	return logger
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestSetupLogging_Level(t *testing.T) {
	assert.Equal(t, logrus.WarnLevel, SetupLogging("warn").Level)
	assert.Equal(t, logrus.InfoLevel, SetupLogging("loud").Level)
	SetupLogging("info")
}

func TestLogData_FieldsAndLevelKey(t *testing.T) {
	var buf bytes.Buffer
	logData := NewLogData(newBufferedLogger(&buf))
	logData.AddData("userId", "u1")
	logData.AddTiming("storeMs")()
	stop := logData.AddToExistingTiming("storeMs")
	stop()

	logData.Log().Info("done")

	entry := lastEntry(t, &buf)
	assert.Equal(t, "info", entry["loglevel"])
	assert.Equal(t, "u1", entry["userId"])
	assert.Contains(t, entry, "storeMs")
}

func TestGetLogData(t *testing.T) {
	assert.Nil(t, GetLogData(context.Background()))

	logData := NewLogData(logrus.New())
	assert.Same(t, logData, GetLogData(WithLogData(context.Background(), logData)))
}

func TestLoggingWrapper_PerRequestData(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferedLogger(&buf)

	calls := 0
	wrapped := LoggingWrapper("Test", logger, func(w http.ResponseWriter, req *http.Request, logData *LogData) error {
		calls++
		assert.Same(t, logData, GetLogData(req.Context()))
		if calls == 1 {
			logData.AddData("first", true)
		}
		w.WriteHeader(http.StatusOK)
		return nil
	})

	wrapped(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, true, lastEntry(t, &buf)["first"])

	wrapped(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	entry := lastEntry(t, &buf)
	assert.NotContains(t, entry, "first")
	assert.Contains(t, entry, "duration")
}

func TestLoggingWrapper_Error(t *testing.T) {
	var buf bytes.Buffer
	wrapped := LoggingWrapper("Test", newBufferedLogger(&buf), func(w http.ResponseWriter, _ *http.Request, _ *LogData) error {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("bad method")
	})

	wrapped(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))

	entry := lastEntry(t, &buf)
	assert.Equal(t, "error", entry["loglevel"])
	assert.Equal(t, "bad method", entry["error"])
	assert.Equal(t, "Handler.Test.Error", entry["msg"])
}

type pingOutput struct {
	Body struct {
		HasLogData bool `json:"hasLogData"`
	}
}

func TestHumaMiddleware(t *testing.T) {
	var buf bytes.Buffer
	_, api := humatest.New(t)
	api.UseMiddleware(HumaMiddleware(newBufferedLogger(&buf)))

	huma.Register(api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
	}, func(ctx context.Context, _ *struct{}) (*pingOutput, error) {
		out := &pingOutput{}
		if logData := GetLogData(ctx); logData != nil {
			logData.AddData("pinged", true)
			out.Body.HasLogData = true
		}
		return out, nil
	})

	resp := api.Get("/ping")
	require.Equal(t, http.StatusOK, resp.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, true, body["hasLogData"])

	entry := lastEntry(t, &buf)
	assert.Equal(t, "Handler.ping.Complete", entry["msg"])
	assert.Equal(t, true, entry["pinged"])
	assert.Equal(t, "/ping", entry["path"])
	assert.EqualValues(t, http.StatusOK, entry["status"])
}
