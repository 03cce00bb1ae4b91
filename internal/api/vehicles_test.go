package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental_gateway/internal/api"
)

func TestDeleteVehiclesHandlerBatchSemantics(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("first failure aborts, earlier deletes stand, later ids untouched", func(t *testing.T) {
		var deletedOnBackend []string
		mux := http.NewServeMux()
		mux.HandleFunc("DELETE /vehicles/{id}", func(w http.ResponseWriter, r *http.Request) {
			id := r.PathValue("id")
			if id == "2" {
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Delete failed for id 2"})
				return
			}
			deletedOnBackend = append(deletedOnBackend, id)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "deleted"})
		})
		client := newBackendClient(t, mux)

		r := gin.New()
		r.DELETE("/admin/vehicles", api.DeleteVehiclesHandler(client))
		req := httptest.NewRequest(http.MethodDelete, "/admin/vehicles", strings.NewReader(`{"ids":[1,2,3]}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusInternalServerError, w.Code)
		// the 1st delete happened and is not rolled back; the 3rd never ran
		assert.Equal(t, []string{"1"}, deletedOnBackend)

		var resp struct {
			Error    string `json:"error"`
			FailedID int    `json:"failed_id"`
			Deleted  []int  `json:"deleted"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Delete failed for id 2", resp.Error)
		assert.Equal(t, 2, resp.FailedID)
		assert.Equal(t, []int{1}, resp.Deleted)
	})

	t.Run("all ids delete in order", func(t *testing.T) {
		var deletedOnBackend []string
		mux := http.NewServeMux()
		mux.HandleFunc("DELETE /vehicles/{id}", func(w http.ResponseWriter, r *http.Request) {
			deletedOnBackend = append(deletedOnBackend, r.PathValue("id"))
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "deleted"})
		})
		client := newBackendClient(t, mux)

		r := gin.New()
		r.DELETE("/admin/vehicles", api.DeleteVehiclesHandler(client))
		req := httptest.NewRequest(http.MethodDelete, "/admin/vehicles", strings.NewReader(`{"ids":[5,6]}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"5", "6"}, deletedOnBackend)
	})

	t.Run("empty batch is rejected before any call", func(t *testing.T) {
		backendCalls := 0
		client := newBackendClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			backendCalls++
		}))

		r := gin.New()
		r.DELETE("/admin/vehicles", api.DeleteVehiclesHandler(client))
		req := httptest.NewRequest(http.MethodDelete, "/admin/vehicles", strings.NewReader(`{"ids":[]}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, backendCalls)
	})
}

func TestListVehiclesHandlerForwardsFilters(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var query map[string]string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /vehicles", func(w http.ResponseWriter, r *http.Request) {
		query = map[string]string{
			"type_of_car": r.URL.Query().Get("type_of_car"),
			"brand":       r.URL.Query().Get("brand"),
			"from_date":   r.URL.Query().Get("from_date"),
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "type_of_car": "Car", "brand": "Toyota", "model": "Yaris"},
		})
	})
	client := newBackendClient(t, mux)

	r := gin.New()
	r.GET("/vehicles", api.ListVehiclesHandler(client))
	req := httptest.NewRequest(http.MethodGet, "/vehicles?type_of_car=Car&brand=Toyota&from_date=2025-06-01", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Car", query["type_of_car"])
	assert.Equal(t, "Toyota", query["brand"])
	assert.Equal(t, "2025-06-01", query["from_date"])
	assert.Contains(t, w.Body.String(), "Yaris")
}

func TestGetVehicleHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /vehicles/7", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 7, "type_of_car": "Car", "brand": "Honda", "model": "City"})
	})
	mux.HandleFunc("GET /vehicles/99", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Vehicle not found"})
	})
	client := newBackendClient(t, mux)

	r := gin.New()
	r.GET("/vehicles/:id", api.GetVehicleHandler(client))

	t.Run("found", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vehicles/7", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "City")
	})

	t.Run("not found passes through", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vehicles/99", nil))
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Vehicle not found")
	})

	t.Run("non-numeric id is rejected locally", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vehicles/abc", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
