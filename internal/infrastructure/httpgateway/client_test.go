package httpgateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-asistencia/internal/domain"
	"github.com/jhoicas/portal-asistencia/internal/domain/entity"
	"github.com/jhoicas/portal-asistencia/internal/infrastructure/httpgateway"
)

func newServer(t *testing.T, h http.HandlerFunc) *httpgateway.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return httpgateway.New(srv.URL+"/", 2*time.Second, nil)
}

func TestFetchAttendance_DecodificaFormatoDelAPI(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/attendance", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":"att-1","ownerId":"emp-1","date":"2024-07-28","timestamp":"2024-07-28T09:15:00Z","status":"pending"}]`)
	})

	recs, err := c.FetchAttendance(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "emp-1", recs[0].UserID)
	assert.Equal(t, "2024-07-28", recs[0].Date)
	assert.Equal(t, entity.AttendancePending, recs[0].Status)
}

func TestCreateAttendance_EnviaOwnerID(t *testing.T) {
	ts := time.Date(2024, 7, 28, 9, 15, 0, 0, time.UTC)
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/attendance", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "emp-1", body["ownerId"])
		assert.Equal(t, "2024-07-28", body["date"])

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"att-9","ownerId":"emp-1","date":"2024-07-28","timestamp":"2024-07-28T09:15:00Z","status":"pending"}`)
	})

	rec, err := c.CreateAttendance(context.Background(), &entity.AttendanceRecord{UserID: "emp-1", Date: "2024-07-28", Timestamp: ts})
	require.NoError(t, err)
	assert.Equal(t, "att-9", rec.ID)
	assert.True(t, rec.Timestamp.Equal(ts))
}

func TestUpdateAttendanceStatus_EnviaStatus(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/attendance/att-3", r.URL.Path)
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"status": "approved"}, body)
		_, _ = io.WriteString(w, `{"id":"att-3","ownerId":"emp-2","date":"2024-07-27","timestamp":"2024-07-27T12:58:00Z","status":"approved"}`)
	})

	rec, err := c.UpdateAttendanceStatus(context.Background(), "att-3", entity.AttendanceApproved)
	require.NoError(t, err)
	assert.Equal(t, entity.AttendanceApproved, rec.Status)
}

func TestRespuestaNoExitosa_PasaElMensaje(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"code":"ALREADY_MARKED","message":"la asistencia de hoy ya fue registrada"}`)
	})

	_, err := c.CreateAttendance(context.Background(), &entity.AttendanceRecord{UserID: "emp-1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrGateway))

	var ge *domain.GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, http.StatusConflict, ge.StatusCode)
	assert.Equal(t, "la asistencia de hoy ya fue registrada", ge.Message)
	assert.Equal(t, "create attendance", ge.Op)
}

func TestRespuestaNoExitosa_SinCuerpoJSON(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream caído", http.StatusBadGateway)
	})

	_, err := c.FetchUsers(context.Background())
	var ge *domain.GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, http.StatusBadGateway, ge.StatusCode)
	assert.Empty(t, ge.Message)
}

func TestFalloDeTransporte(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	c := httpgateway.New(url, time.Second, nil)

	_, err := c.FetchInventory(context.Background())
	assert.ErrorIs(t, err, domain.ErrGateway)
}

func TestFetchInventory_Decimales(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":"inv-3","sku":"CAF-002","name":"Café","category":"Cafetería","quantity":"12","unitPrice":"24900.50"}]`)
	})

	items, err := c.FetchInventory(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].UnitPrice.Equal(decimal.RequireFromString("24900.5")))
}

func TestUpdateInventoryItem_EscapaID(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/inventory/inv%2F1", r.URL.EscapedPath())
		_, _ = io.WriteString(w, `{"id":"inv/1","sku":"X","name":"X","category":"","quantity":"1","unitPrice":"0"}`)
	})

	out, err := c.UpdateInventoryItem(context.Background(), &entity.InventoryItem{ID: "inv/1", SKU: "X", Name: "X"})
	require.NoError(t, err)
	assert.Equal(t, "inv/1", out.ID)
}
