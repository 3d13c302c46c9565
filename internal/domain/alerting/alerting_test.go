package alerting_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/alerting"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func opportunity(marketID string, confidence, current, expected float64) model.Opportunity {
	d := expected - current
	if d < 0 {
		d = -d
	}
	return model.Opportunity{
		NewsURL:       "https://example.com/n",
		MarketID:      marketID,
		CurrentPrice:  current,
		ExpectedPrice: expected,
		Discrepancy:   d,
		Confidence:    confidence,
		Action:        "watch",
	}
}

func TestClassify(t *testing.T) {
	Convey("Given the severity table", t, func() {
		Convey("Then boundaries are strict greater-or-equal per field", func() {
			So(alerting.Classify(0.80, 0.10), ShouldEqual, model.SeverityCritical)
			So(alerting.Classify(0.79, 0.10), ShouldEqual, model.SeverityWarning)
			So(alerting.Classify(0.80, 0.09), ShouldEqual, model.SeverityWarning)
			So(alerting.Classify(0.70, 0.05), ShouldEqual, model.SeverityWarning)
			So(alerting.Classify(0.69, 0.20), ShouldEqual, model.SeverityInfo)
			So(alerting.Classify(0.90, 0.01), ShouldEqual, model.SeverityInfo)
		})
	})
}

func TestManager_Process(t *testing.T) {
	news := model.NewsItem{URL: "https://example.com/n", Headline: "Central bank raises rates unexpectedly"}
	market := model.MarketSnapshot{MarketID: "mkt-1", Question: "Will rates stay flat?", YesPrice: 0.60}

	Convey("Given a manager with a controlled clock", t, func() {
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		m := alerting.New(
			alerting.WithCooldown(5*time.Minute),
			alerting.WithClock(func() time.Time { return now }),
		)

		Convey("When processing a critical-grade opportunity", func() {
			alert, ok := m.Process(opportunity("mkt-1", 0.85, 0.60, 0.30), news, market)

			Convey("Then a CRITICAL alert is emitted", func() {
				So(ok, ShouldBeTrue)
				So(alert.Severity, ShouldEqual, model.SeverityCritical)
				So(alert.ID, ShouldNotBeEmpty)
				So(alert.Message, ShouldContainSubstring, "move down")
				So(alert.CreatedAt, ShouldEqual, now)
			})

			Convey("And a second opportunity inside the cooldown window", func() {
				now = now.Add(2 * time.Minute)
				_, ok2 := m.Process(opportunity("mkt-1", 0.85, 0.55, 0.30), news, market)

				Convey("Then it is suppressed", func() {
					So(ok2, ShouldBeFalse)
					So(m.HistorySize(), ShouldEqual, 1)
				})

				Convey("And a third one after the window elapses", func() {
					now = now.Add(10 * time.Minute)
					_, ok3 := m.Process(opportunity("mkt-1", 0.85, 0.55, 0.30), news, market)

					Convey("Then it produces a second alert", func() {
						So(ok3, ShouldBeTrue)
						So(m.HistorySize(), ShouldEqual, 2)
					})
				})
			})

			Convey("And an opportunity for a different market", func() {
				_, ok2 := m.Process(opportunity("mkt-2", 0.85, 0.55, 0.30), news, market)

				Convey("Then the cooldown does not apply across markets", func() {
					So(ok2, ShouldBeTrue)
				})
			})
		})

		Convey("When the expected price is above the current price", func() {
			alert, ok := m.Process(opportunity("mkt-3", 0.75, 0.40, 0.48), news, market)

			Convey("Then the message reflects the up direction", func() {
				So(ok, ShouldBeTrue)
				So(alert.Message, ShouldContainSubstring, "move up")
				So(alert.Severity, ShouldEqual, model.SeverityWarning)
			})
		})
	})
}

func TestManager_History(t *testing.T) {
	Convey("Given a manager with capacity 3 and zero cooldown", t, func() {
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		m := alerting.New(
			alerting.WithHistoryCapacity(3),
			alerting.WithCooldown(0),
			alerting.WithClock(func() time.Time { return now }),
		)
		news := model.NewsItem{URL: "https://example.com/n", Headline: "headline"}

		Convey("When emitting capacity+1 alerts", func() {
			for i := 0; i < 4; i++ {
				id := fmt.Sprintf("mkt-%d", i)
				mkt := model.MarketSnapshot{MarketID: id, Question: "q"}
				_, ok := m.Process(opportunity(id, 0.75, 0.50, 0.60), news, mkt)
				So(ok, ShouldBeTrue)
				now = now.Add(time.Second)
			}

			Convey("Then the oldest alert is evicted", func() {
				So(m.HistorySize(), ShouldEqual, 3)
				recent := m.Recent(10, "")
				So(len(recent), ShouldEqual, 3)
				So(recent[0].MarketID, ShouldEqual, "mkt-3")
				So(recent[2].MarketID, ShouldEqual, "mkt-1")
				for _, a := range recent {
					So(strings.HasPrefix(a.MarketID, "mkt-"), ShouldBeTrue)
					So(a.MarketID, ShouldNotEqual, "mkt-0")
				}
			})

			Convey("And Recent honors the severity filter", func() {
				warnings := m.Recent(10, model.SeverityWarning)
				So(len(warnings), ShouldEqual, 3)
				criticals := m.Recent(10, model.SeverityCritical)
				So(len(criticals), ShouldEqual, 0)
			})

			Convey("And Counts aggregates by severity", func() {
				counts := m.Counts()
				So(counts[model.SeverityWarning], ShouldEqual, 3)
			})
		})
	})
}

func TestManager_ActiveCooldowns(t *testing.T) {
	Convey("Given alerts on two markets at different times", t, func() {
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		m := alerting.New(
			alerting.WithCooldown(5*time.Minute),
			alerting.WithClock(func() time.Time { return now }),
		)
		news := model.NewsItem{URL: "https://example.com/n", Headline: "h"}
		mkt := model.MarketSnapshot{Question: "q"}

		_, ok := m.Process(opportunity("mkt-1", 0.75, 0.50, 0.60), news, mkt)
		So(ok, ShouldBeTrue)
		now = now.Add(4 * time.Minute)
		_, ok = m.Process(opportunity("mkt-2", 0.75, 0.50, 0.60), news, mkt)
		So(ok, ShouldBeTrue)

		Convey("When time advances past the first window only", func() {
			now = now.Add(2 * time.Minute)

			Convey("Then only the second cooldown is active", func() {
				So(m.ActiveCooldowns(), ShouldEqual, 1)
			})
		})
	})
}
