package metricsvc

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics(t *testing.T) {
	m := NewPrometheusMetrics("Funil", func() map[string]map[string]int {
		return map[string]map[string]int{"proposals": {"Accepted": 1, "Draft": 3}}
	})

	m.Mutation("proposal", "update", true)
	m.Mutation("proposal", "update", true)
	m.Mutation("proposal", "update", false)
	m.Demoted(2)
	m.Demoted(0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.mutations.WithLabelValues("proposal", "update", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.mutations.WithLabelValues("proposal", "update", "false")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.demotions))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `funil_pipeline_cards{column="Draft",pipeline="proposals"} 3`), body)
	assert.True(t, strings.Contains(body, "funil_proposal_demotions_total 2"), body)
}
