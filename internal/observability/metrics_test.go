package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetrics(t *testing.T) {
	Convey("Given a metrics manager on a private registry", t, func() {
		m := NewMetrics(WithRegistry(prometheus.NewRegistry()), WithNamespace("test"))

		Convey("When aggregate signals are recorded", func() {
			m.ObserveAggregateOperation("Scouting.Evaluation.Create", "success", 5*time.Millisecond)
			m.ObserveAggregateOperation("Scouting.Evaluation.Create", "success", 7*time.Millisecond)
			m.IncAggregateConflict("Scouting.Evaluation.Update")

			Convey("Then the counters reflect them", func() {
				So(testutil.ToFloat64(m.aggOps.WithLabelValues("Scouting.Evaluation.Create", "success")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.aggConflicts.WithLabelValues("Scouting.Evaluation.Update")), ShouldEqual, 1)
			})
		})

		Convey("When an API request is observed", func() {
			m.ObserveAPI("GET", "/api/evaluations/:id", 404, time.Millisecond)

			Convey("Then the handler exposes it", func() {
				rec := httptest.NewRecorder()
				m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(strings.Contains(rec.Body.String(), `test_api_requests_total{method="GET",route="/api/evaluations/:id",status="404"} 1`), ShouldBeTrue)
			})
		})
	})

	Convey("Given a nil metrics manager", t, func() {
		var m *Metrics

		Convey("Then every method is a no-op", func() {
			So(func() {
				m.ObserveAPI("GET", "/", 200, time.Millisecond)
				m.ObserveAggregateOperation("op", "success", time.Millisecond)
				m.IncAggregateConflict("op")
				m.IncAggregateRetry("op")
				m.IncReportGenerated("statistics")
				m.IncRateLimited()
				m.APIInflightInc()
				m.APIInflightDec()
			}, ShouldNotPanic)
			So(m.Registry(), ShouldBeNil)
		})
	})
}
