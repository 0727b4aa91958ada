package httpapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/windtunnel-io/promreg"
	"github.com/windtunnel-io/promreg/httpapi"
	"github.com/windtunnel-io/promreg/wire"
)

func TestHandleListReturnsAllLiveRecords(t *testing.T) {
	dir := promreg.NewDirectory()
	tr := promreg.NewThreadRegistry("worker-1")
	dir.Register(tr)

	h, err := tr.NewHandle(promreg.SourceLocation{FileName: "f.go", FunctionName: "g", Line: 1})
	require.NoError(t, err)
	defer h.Close()

	srv := httpapi.NewServer(dir, nil)
	router := srv.Router()

	req := httptest.NewRequest(http.MethodGet, "/debug/promises", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var promises []wire.Promise
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &promises))
	require.Len(t, promises, 1)
	assert.Equal(t, h.ID(), promises[0].ID)
	assert.Equal(t, "worker-1", promises[0].OwningThread.Name)
}

func TestHandleGetByID(t *testing.T) {
	dir := promreg.NewDirectory()
	tr := promreg.NewThreadRegistry("worker-1")
	dir.Register(tr)

	h, err := tr.NewHandle(promreg.SourceLocation{FileName: "f.go", FunctionName: "g", Line: 1})
	require.NoError(t, err)
	defer h.Close()

	srv := httpapi.NewServer(dir, nil)
	router := srv.Router()

	req := httptest.NewRequest(http.MethodGet, "/debug/promises/"+strconv.FormatUint(h.ID(), 10), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var promises []wire.Promise
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &promises))
	require.Len(t, promises, 1)
	assert.Equal(t, h.ID(), promises[0].ID)
}

func TestHandleGetUnknownIDReturns404(t *testing.T) {
	dir := promreg.NewDirectory()
	srv := httpapi.NewServer(dir, nil)
	router := srv.Router()

	req := httptest.NewRequest(http.MethodGet, "/debug/promises/999999", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGetInvalidIDReturns400(t *testing.T) {
	dir := promreg.NewDirectory()
	srv := httpapi.NewServer(dir, nil)
	router := srv.Router()

	req := httptest.NewRequest(http.MethodGet, "/debug/promises/not-a-number", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
