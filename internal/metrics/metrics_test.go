package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iyhunko/product-service/internal/config"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestProductCounters(t *testing.T) {
	before := testutil.ToFloat64(ProductsCreated)
	ProductsCreated.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(ProductsCreated))

	failuresBefore := testutil.ToFloat64(DatabaseFailures.WithLabelValues("list"))
	DatabaseFailures.WithLabelValues("list").Inc()
	assert.Equal(t, failuresBefore+1, testutil.ToFloat64(DatabaseFailures.WithLabelValues("list")))
}

func TestNewServer(t *testing.T) {
	conf := &config.Config{MetricsServer: config.Server{Port: "9191"}}

	srv := NewServer(conf)
	assert.Equal(t, ":9191", srv.Addr)

	ProductsDeleted.Inc()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "products_deleted_total")
}
