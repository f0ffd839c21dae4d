package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emi-calculator/service"
)

func startSession(t *testing.T, router http.Handler) sessionResponse {
	t.Helper()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sessions", nil))
	require.Equal(t, http.StatusCreated, w.Code)

	var resp sessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func editSession(t *testing.T, router http.Handler, id, body string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sessions/"+id+"/edit", bytes.NewBufferString(body))
	router.ServeHTTP(w, req)
	return w
}

func TestSessionHandler_Start(t *testing.T) {
	router := newTestRouter(t, 600, 100)

	resp := startSession(t, router)

	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, service.DefaultParameters(), resp.Summary.Parameters)
	assert.Equal(t, "₹19,566", resp.Summary.Display.MonthlyInstallment)
	assert.Equal(t, "₹11,73,969", resp.Summary.Display.TotalPayment)
}

func TestSessionHandler_EditFlow(t *testing.T) {
	router := newTestRouter(t, 600, 100)
	id := startSession(t, router).SessionID

	w := editSession(t, router, id, `{"field": "principal", "text": "50000"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var edit editResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &edit))
	assert.True(t, edit.Accepted)
	assert.Equal(t, 50_000.0, edit.Summary.Parameters.Principal)

	w = editSession(t, router, id, `{"field": "term_years", "text": "31"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &edit))
	assert.False(t, edit.Accepted)
	assert.Equal(t, service.DefaultTermYears, edit.Summary.Parameters.TermYears)

	w = editSession(t, router, id, `{"field": "annual_rate_percent", "value": 7.5}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &edit))
	assert.True(t, edit.Accepted)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/"+id, nil))
	require.Equal(t, http.StatusOK, w.Code)
	var got sessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 50_000.0, got.Summary.Parameters.Principal)
	assert.Equal(t, 7.5, got.Summary.Parameters.AnnualRatePercent)
	assert.Equal(t, "7.5%", got.Summary.Display.AnnualRate)
}

func TestSessionHandler_SliderOutOfRangeIsIgnored(t *testing.T) {
	router := newTestRouter(t, 600, 100)
	id := startSession(t, router).SessionID

	for _, body := range []string{
		`{"field": "principal", "value": 5000}`,
		`{"field": "principal", "value": 10004999}`,
		`{"field": "annual_rate_percent", "value": 0.95}`,
		`{"field": "term_years", "value": 30.4}`,
	} {
		w := editSession(t, router, id, body)
		require.Equal(t, http.StatusOK, w.Code, body)

		var edit editResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &edit))
		assert.False(t, edit.Accepted, body)
		assert.Equal(t, service.DefaultParameters(), edit.Summary.Parameters, body)
	}
}

func TestSessionHandler_EditErrors(t *testing.T) {
	router := newTestRouter(t, 600, 100)
	id := startSession(t, router).SessionID

	tests := []struct {
		name string
		id   string
		body string
		want int
	}{
		{"invalid json", id, `{`, http.StatusBadRequest},
		{"unknown field", id, `{"field": "colour", "text": "red"}`, http.StatusBadRequest},
		{"neither text nor value", id, `{"field": "principal"}`, http.StatusBadRequest},
		{"unknown session", "missing", `{"field": "principal", "text": "50000"}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := editSession(t, router, tt.id, tt.body)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestSessionHandler_End(t *testing.T) {
	router := newTestRouter(t, 600, 100)
	id := startSession(t, router).SessionID

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/sessions/"+id, nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/"+id, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/sessions/"+id, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
