package reasoning_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/model"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/reasoning"
	. "github.com/smartystreets/goconvey/convey"
)

type stubProvider struct {
	verdict reasoning.Verdict
	err     error
	block   bool
}

func (s *stubProvider) Assess(ctx context.Context, _ model.NewsItem, _ model.MarketSnapshot) (reasoning.Verdict, error) {
	if s.block {
		<-ctx.Done()
		return reasoning.Verdict{}, ctx.Err()
	}
	return s.verdict, s.err
}

func TestReasoner_Assess(t *testing.T) {
	news := model.NewsItem{URL: "https://example.com/n", Headline: "Central bank raises rates unexpectedly"}
	market := model.MarketSnapshot{MarketID: "mkt-1", Question: "Will rates stay flat?", YesPrice: 0.60, NoPrice: 0.40}

	Convey("Given a reasoner with a healthy primary provider", t, func() {
		primary := &stubProvider{verdict: reasoning.Verdict{
			Relevance:  0.9,
			Direction:  model.DirectionDown,
			Confidence: 0.85,
			Magnitude:  0.30,
			Reasoning:  "rate hike contradicts market",
		}}
		r := reasoning.New(primary)

		Convey("When assessing a pair", func() {
			a := r.Assess(context.Background(), news, market)

			Convey("Then the result carries the primary tag and derived price", func() {
				So(a.Source, ShouldEqual, model.SourcePrimary)
				So(a.ExpectedPrice, ShouldAlmostEqual, 0.30, 1e-9)
				So(a.Confidence, ShouldEqual, 0.85)
				So(a.NewsURL, ShouldEqual, news.URL)
				So(a.MarketID, ShouldEqual, market.MarketID)
			})
		})
	})

	Convey("Given a primary provider that fails", t, func() {
		r := reasoning.New(&stubProvider{err: errors.New("upstream 503")})

		Convey("When assessing a pair", func() {
			a := r.Assess(context.Background(), news, market)

			Convey("Then the result degrades to the fallback tag, never an error", func() {
				So(a.Source, ShouldEqual, model.SourceFallback)
				So(a.Confidence, ShouldEqual, 0.4)
			})
		})
	})

	Convey("Given a primary provider that hangs past the timeout", t, func() {
		r := reasoning.New(&stubProvider{block: true}, reasoning.WithTimeout(20*time.Millisecond))

		Convey("When assessing a pair", func() {
			a := r.Assess(context.Background(), news, market)

			Convey("Then the fallback answers", func() {
				So(a.Source, ShouldEqual, model.SourceFallback)
			})
		})
	})

	Convey("Given a primary provider returning out-of-range output", t, func() {
		r := reasoning.New(&stubProvider{verdict: reasoning.Verdict{
			Relevance: 1.7, Direction: model.DirectionUp, Confidence: 0.9, Magnitude: 0.1,
		}})

		Convey("When assessing a pair", func() {
			a := r.Assess(context.Background(), news, market)

			Convey("Then the malformed verdict routes to the fallback", func() {
				So(a.Source, ShouldEqual, model.SourceFallback)
			})
		})
	})

	Convey("Given no primary provider at all", t, func() {
		r := reasoning.New(nil)

		Convey("When assessing a pair", func() {
			a := r.Assess(context.Background(), news, market)

			Convey("Then the fallback answers", func() {
				So(a.Source, ShouldEqual, model.SourceFallback)
			})
		})
	})
}

func TestExpectedPrice(t *testing.T) {
	Convey("Given a current price and a direction", t, func() {
		Convey("Then the shift is signed and clamped to [0,1]", func() {
			So(reasoning.ExpectedPrice(0.60, model.DirectionDown, 0.30), ShouldAlmostEqual, 0.30, 1e-9)
			So(reasoning.ExpectedPrice(0.60, model.DirectionUp, 0.30), ShouldAlmostEqual, 0.90, 1e-9)
			So(reasoning.ExpectedPrice(0.60, model.DirectionNeutral, 0.30), ShouldAlmostEqual, 0.60, 1e-9)
			So(reasoning.ExpectedPrice(0.95, model.DirectionUp, 0.30), ShouldEqual, 1.0)
			So(reasoning.ExpectedPrice(0.10, model.DirectionDown, 0.30), ShouldEqual, 0.0)
		})
	})
}
