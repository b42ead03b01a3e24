package products

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/perfumaria/catalog-api/internal/auth"
)

func newProductsRouter(t *testing.T) http.Handler {
	t.Helper()
	service, _ := newTestService()
	handler := NewHandler(nil, service)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		handler.MountRoutes(r)
	})
	return r
}

func productRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func TestProductRoutesRequireToken(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	tokens := auth.NewTokenManager("test-secret", time.Hour, client)

	service, repo := newTestService()
	handler := NewHandler(nil, service)

	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.NewMiddleware(nil, tokens).RequireAuth)
			handler.MountRoutes(r)
		})
	})

	routes := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/products", ""},
		{http.MethodGet, "/api/products/1", ""},
		{http.MethodPost, "/api/products", `{"name":"Product","price":10,"product_type_id":1}`},
		{http.MethodPut, "/api/products/1", `{"name":"Product","price":10,"product_type_id":1}`},
	}
	for _, route := range routes {
		res := productRequest(t, router, route.method, route.path, route.body)
		require.Equal(t, http.StatusUnauthorized, res.Code, "%s %s", route.method, route.path)
		require.JSONEq(t, `{"message":"Unauthenticated."}`, res.Body.String())
	}
	require.Empty(t, repo.items)
}

func TestShowUnknownProduct(t *testing.T) {
	router := newProductsRouter(t)

	res := productRequest(t, router, http.MethodGet, "/api/products/999999", "")
	require.Equal(t, http.StatusNotFound, res.Code)
	require.JSONEq(t, `{"message":"Product not found"}`, res.Body.String())
}

func TestCreateReturns201(t *testing.T) {
	router := newProductsRouter(t)

	res := productRequest(t, router, http.MethodPost, "/api/products",
		`{"name":"New Product","price":99.99,"product_type_id":1}`)
	require.Equal(t, http.StatusCreated, res.Code)

	var created struct {
		ID            int64   `json:"id"`
		Name          string  `json:"name"`
		Price         float64 `json:"price"`
		ProductTypeID int64   `json:"product_type_id"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &created))
	require.NotZero(t, created.ID)
	require.Equal(t, "New Product", created.Name)
	require.Equal(t, 99.99, created.Price)
	require.Equal(t, int64(1), created.ProductTypeID)

	show := productRequest(t, router, http.MethodGet, "/api/products/1", "")
	require.Equal(t, http.StatusOK, show.Code)
}

func TestCreateValidationFailure(t *testing.T) {
	router := newProductsRouter(t)

	res := productRequest(t, router, http.MethodPost, "/api/products",
		`{"name":"Product","price":-1,"product_type_id":1}`)
	require.Equal(t, http.StatusUnprocessableEntity, res.Code)

	var payload struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &payload))
	require.Equal(t, "The given data was invalid.", payload.Message)
	require.Equal(t, "The price field must be at least 0.", payload.Errors["price"])

	list := productRequest(t, router, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, list.Code)
	require.JSONEq(t, `[]`, list.Body.String())
}

func TestUpdateUnknownProduct(t *testing.T) {
	router := newProductsRouter(t)

	res := productRequest(t, router, http.MethodPut, "/api/products/424242",
		`{"name":"Updated","price":10,"product_type_id":1}`)
	require.Equal(t, http.StatusNotFound, res.Code)
	require.JSONEq(t, `{"message":"Product not found"}`, res.Body.String())
}

func TestUpdateReturnsUpdatedRecord(t *testing.T) {
	router := newProductsRouter(t)

	created := productRequest(t, router, http.MethodPost, "/api/products",
		`{"name":"Old Product","description":"Old Product Description","price":50,"product_type_id":1}`)
	require.Equal(t, http.StatusCreated, created.Code)

	res := productRequest(t, router, http.MethodPut, "/api/products/1",
		`{"name":"Updated Product","description":"Updated Product Description","price":75,"product_type_id":1}`)
	require.Equal(t, http.StatusOK, res.Code)

	var updated struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &updated))
	require.Equal(t, "Updated Product", updated.Name)
	require.Equal(t, "Updated Product Description", updated.Description)
	require.Equal(t, float64(75), updated.Price)
}

func TestListAttachesProductType(t *testing.T) {
	router := newProductsRouter(t)

	created := productRequest(t, router, http.MethodPost, "/api/products",
		`{"name":"Product","price":10,"product_type_id":1}`)
	require.Equal(t, http.StatusCreated, created.Code)

	res := productRequest(t, router, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, res.Code)

	var list []struct {
		Name        string `json:"name"`
		ProductType *struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"product_type"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.NotNil(t, list[0].ProductType)
	require.Equal(t, "Electronics", list[0].ProductType.Name)
}
