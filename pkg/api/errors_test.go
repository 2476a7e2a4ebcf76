package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseError_UsesBackendMessage(t *testing.T) {
	e := responseError(401, "Unauthorized", []byte(`{"success":false,"message":"Invalid credentials"}`))

	assert.Equal(t, "Invalid credentials", e.Message)
	assert.Equal(t, 401, e.Status)
	assert.True(t, e.HasStatus)
	assert.JSONEq(t, `{"success":false,"message":"Invalid credentials"}`, string(e.Data))
}

func TestResponseError_SynthesizesMessageWhenBodyHasNone(t *testing.T) {
	e := responseError(502, "Bad Gateway", []byte(`{"detail":"upstream"}`))

	assert.Equal(t, "API接続エラー: Bad Gateway", e.Message)
	assert.Equal(t, 502, e.Status)
}

func TestTransportError_FixedMessageNoStatus(t *testing.T) {
	e := transportError()

	assert.Equal(t, connectFailedMessage, e.Message)
	assert.False(t, e.HasStatus)
	assert.Nil(t, e.Data)
}

func TestRequestError_PrefixesClientSideFailure(t *testing.T) {
	e := requestError(errors.New("invalid URL"))

	assert.Equal(t, "API接続エラー: invalid URL", e.Message)
	assert.False(t, e.HasStatus)
}

func TestDecodeBlobError(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantMessage string
		wantData    bool
	}{
		{
			name:        "structured message decodes",
			body:        `{"message":"no data"}`,
			wantMessage: "no data",
			wantData:    true,
		},
		{
			name:        "decodable body without message falls back",
			body:        `{"detail":"x"}`,
			wantMessage: "API接続エラー: Internal Server Error",
			wantData:    true,
		},
		{
			name:        "binary garbage falls back with null data",
			body:        "\x89PNG\r\n\x1a\n",
			wantMessage: "API接続エラー: Internal Server Error",
			wantData:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := decodeBlobError(500, "Internal Server Error", []byte(tt.body))

			assert.Equal(t, tt.wantMessage, e.Message)
			assert.Equal(t, 500, e.Status)
			if tt.wantData {
				assert.NotEmpty(t, e.Data)
			} else {
				assert.Nil(t, e.Data)
			}
		})
	}
}

func TestError_MarshalJSON(t *testing.T) {
	e := transportError()
	data, err := json.Marshal(e)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, false, decoded["success"])
	assert.Equal(t, connectFailedMessage, decoded["message"])
	assert.Nil(t, decoded["status"])
	assert.Nil(t, decoded["data"])
}

// Every rejection reaching a caller must be a *Error with a non-empty
// message, never a raw transport error.
func TestRejectionsAlwaysNormalized(t *testing.T) {
	t.Run("http error", func(t *testing.T) {
		srv := httptest.NewServer(jsonHandler(&requestRecorder{}, 403, `{"message":"forbidden"}`))
		t.Cleanup(srv.Close)

		c := newTestClient(t, srv)
		_, err := c.Students().List(context.Background(), StudentFilters{})
		require.Error(t, err)

		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "forbidden", apiErr.Message)
		assert.Equal(t, 403, apiErr.Status)
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		addr := srv.URL
		srv.Close() // nothing listens anymore

		c, err := NewClient(addr, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
		require.NoError(t, err)
		_, err = c.Groups().List(context.Background(), 0)
		require.Error(t, err)

		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, connectFailedMessage, apiErr.Message)
		assert.False(t, apiErr.HasStatus)
	})

	t.Run("client-side validation", func(t *testing.T) {
		c, err := newQuietClient()
		require.NoError(t, err)

		_, callErr := c.Attendance().Record(context.Background(), RecordInput{})
		require.Error(t, callErr)

		var apiErr *Error
		require.ErrorAs(t, callErr, &apiErr)
		assert.NotEmpty(t, apiErr.Message)
		assert.False(t, apiErr.HasStatus)
	})
}

func TestExport_BlobErrorDecoded(t *testing.T) {
	rec := &requestRecorder{}
	srv := httptest.NewServer(func() http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			rec.record(r)
			w.Header().Set("Content-Type", "application/octet-stream")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"no data"}`))
		}
	}())
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv)
	_, err := c.Attendance().ExportCSV(context.Background(), ListFilters{UserID: 7})
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "no data", apiErr.Message)
	assert.Equal(t, 500, apiErr.Status)
}

func TestExport_SuccessReturnsBytes(t *testing.T) {
	csv := "date,status\n2025-11-10,present\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(csv))
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv)
	data, err := c.Attendance().ExportCSV(context.Background(), ListFilters{})
	require.NoError(t, err)
	assert.Equal(t, csv, string(data))
}
