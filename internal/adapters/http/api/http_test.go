package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/adapters/http/api"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

type stubDeps struct {
	alerts  []model.Alert
	cycles  []model.CycleSummary
	stats   map[string]any
	gotSev  model.Severity
	gotLim  int
	gotCLim int
}

func (s *stubDeps) RecentAlerts(limit int, severity model.Severity) []model.Alert {
	s.gotLim = limit
	s.gotSev = severity
	return s.alerts
}

func (s *stubDeps) CycleSummaries(limit int) []model.CycleSummary {
	s.gotCLim = limit
	return s.cycles
}

func (s *stubDeps) Stats() map[string]any { return s.stats }

func TestServer_Routes(t *testing.T) {
	Convey("Given a server over stub dependencies", t, func() {
		deps := &stubDeps{
			alerts: []model.Alert{{
				ID:        "a-1",
				Severity:  model.SeverityCritical,
				MarketID:  "mkt-1",
				CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			}},
			cycles: []model.CycleSummary{{Cycle: 7, AlertsEmitted: 1}},
			stats:  map[string]any{"started": true, "cycles": 7},
		}
		ts := httptest.NewServer(api.NewServer(deps).Router())
		defer ts.Close()

		Convey("When hitting /healthz", func() {
			resp, err := http.Get(ts.URL + "/healthz")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then it reports ok", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var body map[string]string
				So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
				So(body["status"], ShouldEqual, "ok")
			})
		})

		Convey("When listing alerts with a severity filter", func() {
			resp, err := http.Get(ts.URL + "/alerts?limit=5&severity=critical")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the filter reaches the service and alerts come back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(deps.gotLim, ShouldEqual, 5)
				So(deps.gotSev, ShouldEqual, model.SeverityCritical)

				var body struct {
					Alerts []model.Alert `json:"alerts"`
					Count  int           `json:"count"`
				}
				So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
				So(body.Count, ShouldEqual, 1)
				So(body.Alerts[0].ID, ShouldEqual, "a-1")
			})
		})

		Convey("When listing alerts with a bad severity", func() {
			resp, err := http.Get(ts.URL + "/alerts?severity=loud")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the request is rejected", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When listing alerts with a bad limit", func() {
			resp, err := http.Get(ts.URL + "/alerts?limit=-1")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the request is rejected", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When fetching /status", func() {
			resp, err := http.Get(ts.URL + "/status")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the service counters are exposed", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var body map[string]any
				So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
				So(body["started"], ShouldEqual, true)
			})
		})

		Convey("When fetching /cycles", func() {
			resp, err := http.Get(ts.URL + "/cycles?limit=3")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then recent summaries come back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(deps.gotCLim, ShouldEqual, 3)
				var body struct {
					Cycles []model.CycleSummary `json:"cycles"`
					Count  int                  `json:"count"`
				}
				So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
				So(body.Count, ShouldEqual, 1)
				So(body.Cycles[0].Cycle, ShouldEqual, 7)
			})
		})

		Convey("When scraping /metrics", func() {
			resp, err := http.Get(ts.URL + "/metrics")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the Prometheus endpoint responds", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
			})
		})
	})
}
