package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPResolver_Resuelve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/variants/search", r.URL.Path)
		assert.Equal(t, "Model Y", r.URL.Query().Get("keyword"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"variant_ids":[3,1,2]}`))
	}))
	defer srv.Close()

	ids, err := NewHTTPResolver(srv.URL+"/", time.Second).ResolveVariantIDs(context.Background(), "Model Y")
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 2}, ids)
}

func TestHTTPResolver_SinCoincidencias(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ids, err := NewHTTPResolver(srv.URL, time.Second).ResolveVariantIDs(context.Background(), "Model Z")
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}

func TestHTTPResolver_ErrorNoEsVacio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ids, err := NewHTTPResolver(srv.URL, time.Second).ResolveVariantIDs(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Nil(t, ids)
}

func TestHTTPResolver_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := NewHTTPResolver(srv.URL, 20*time.Millisecond).ResolveVariantIDs(context.Background(), "x")
	require.Error(t, err)
}

type countingResolver struct {
	ids      []int64
	calls    int
	keywords []string
}

func (c *countingResolver) ResolveVariantIDs(_ context.Context, keyword string) ([]int64, error) {
	c.calls++
	c.keywords = append(c.keywords, keyword)
	return c.ids, nil
}

func TestCachedResolver_RedisCaidoConsultaEnVivo(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	next := &countingResolver{ids: []int64{9}}
	r := NewCachedResolver(next, client, time.Minute, nil)

	ids, err := r.ResolveVariantIDs(context.Background(), "Sedan")
	require.NoError(t, err)
	assert.Equal(t, []int64{9}, ids)
	assert.Equal(t, 1, next.calls)
}

func TestCachedResolver_ConsultaConLaMismaFormaQueLaClave(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	next := &countingResolver{ids: []int64{9}}
	r := NewCachedResolver(next, client, time.Minute, nil)

	for _, kw := range []string{"  Sedan Rojo ", "SEDAN ROJO", "sedan rojo"} {
		_, err := r.ResolveVariantIDs(context.Background(), kw)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"sedan rojo", "sedan rojo", "sedan rojo"}, next.keywords)
	assert.Equal(t, "catalog:variants:sedan rojo", cacheKey("SEDAN ROJO"))
}

func TestCacheKey_Normaliza(t *testing.T) {
	assert.Equal(t, "catalog:variants:model z", cacheKey("  Model Z "))
}
