package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/brisinga/pkg/storage"
)

const testAPIKey = "test-key"

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	buffers, err := storage.OpenMem()
	require.NoError(t, err)
	t.Cleanup(func() { _ = buffers.Close() })

	// Metrics are nil: promauto registers on the global registry, and
	// re-registering per test would panic.
	server := NewServer(buffers, ServerConfig{APIKey: testAPIKey}, nil)
	return Router(server, nil, testAPIKey)
}

func doRequest(t *testing.T, r chi.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("X-API-Key", testAPIKey)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var resp struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success, "error: %s", resp.Error)
	require.NoError(t, json.Unmarshal(resp.Data, out))
}

func createVector(t *testing.T, r chi.Router, capacity int) string {
	t.Helper()
	rec := doRequest(t, r, http.MethodPost, "/api/v1/vectors", CreateVectorRequest{Capacity: capacity})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created VectorResponse
	decodeData(t, rec, &created)
	require.NotEmpty(t, created.ID)
	return created.ID
}

func TestAPI_RequiresAPIKey(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req.Header.Set("X-API-Key", "wrong")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, r, http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPI_VectorLifecycle(t *testing.T) {
	r := newTestRouter(t)
	id := createVector(t, r, 8)

	// Sorted inserts in arbitrary arrival order.
	for _, value := range []uint64{6, 2, 8, 4} {
		rec := doRequest(t, r, http.MethodPost,
			fmt.Sprintf("/api/v1/vectors/%s/elements", id),
			InsertElementRequest{Value: value})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := doRequest(t, r, http.MethodGet, "/api/v1/vectors/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var vec VectorResponse
	decodeData(t, rec, &vec)
	assert.Equal(t, 4, vec.Length)
	assert.Equal(t, 8, vec.Capacity)
	assert.Equal(t, []uint64{2, 4, 6, 8}, vec.Elements)

	t.Run("duplicate insert conflicts", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodPost,
			fmt.Sprintf("/api/v1/vectors/%s/elements", id),
			InsertElementRequest{Value: 6})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("find", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodGet,
			fmt.Sprintf("/api/v1/vectors/%s/elements/4", id), nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = doRequest(t, r, http.MethodGet,
			fmt.Sprintf("/api/v1/vectors/%s/elements/5", id), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("retain a range", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodPost,
			fmt.Sprintf("/api/v1/vectors/%s/retain", id),
			RetainRequest{Min: 4, Max: 6})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doRequest(t, r, http.MethodGet, "/api/v1/vectors/"+id, nil)
		var after VectorResponse
		decodeData(t, rec, &after)
		assert.Equal(t, []uint64{4, 6}, after.Elements)
	})

	t.Run("delete", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodDelete, "/api/v1/vectors/"+id, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doRequest(t, r, http.MethodGet, "/api/v1/vectors/"+id, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAPI_CapacityExceeded(t *testing.T) {
	r := newTestRouter(t)
	id := createVector(t, r, 2)

	for _, value := range []uint64{1, 2} {
		rec := doRequest(t, r, http.MethodPost,
			fmt.Sprintf("/api/v1/vectors/%s/elements", id),
			InsertElementRequest{Value: value})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doRequest(t, r, http.MethodPost,
		fmt.Sprintf("/api/v1/vectors/%s/elements", id),
		InsertElementRequest{Value: 3})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	t.Run("grow makes room", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodPost,
			fmt.Sprintf("/api/v1/vectors/%s/grow", id),
			GrowRequest{Capacity: 4})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = doRequest(t, r, http.MethodPost,
			fmt.Sprintf("/api/v1/vectors/%s/elements", id),
			InsertElementRequest{Value: 3})
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAPI_ListVectors(t *testing.T) {
	r := newTestRouter(t)
	createVector(t, r, 4)
	createVector(t, r, 16)

	rec := doRequest(t, r, http.MethodGet, "/api/v1/vectors", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var infos []storage.BufferInfo
	decodeData(t, rec, &infos)
	assert.Len(t, infos, 2)
}

func TestAPI_BadVectorID(t *testing.T) {
	r := newTestRouter(t)

	rec := doRequest(t, r, http.MethodGet, "/api/v1/vectors/not-a-ksuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_Fees(t *testing.T) {
	r := newTestRouter(t)

	t.Run("apply", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodPost, "/api/v1/fees/apply", FeeApplyRequest{
			Fee:    FeeRatio{Numerator: 1, Denominator: 4},
			Amount: 100,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp FeeApplyResponse
		decodeData(t, rec, &resp)
		assert.Equal(t, uint64(25), resp.Charged)
		assert.Equal(t, uint64(75), resp.Remainder)
	})

	t.Run("apply rejects invalid ratios", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodPost, "/api/v1/fees/apply", FeeApplyRequest{
			Fee:    FeeRatio{Numerator: 5, Denominator: 4},
			Amount: 100,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("compose", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodPost, "/api/v1/fees/compose", FeeComposeRequest{
			First:  FeeRatio{Numerator: 1, Denominator: 2},
			Second: FeeRatio{Numerator: 2, Denominator: 3},
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var composed FeeRatio
		decodeData(t, rec, &composed)
		assert.Equal(t, uint64(2), composed.Numerator)
		assert.Equal(t, uint64(6), composed.Denominator)
	})
}
