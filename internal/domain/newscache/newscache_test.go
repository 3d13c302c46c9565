package newscache_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/model"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/newscache"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCache_Put(t *testing.T) {
	Convey("Given a news cache with a controlled clock", t, func() {
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		c := newscache.New(newscache.WithClock(func() time.Time { return now }))

		Convey("When inserting two items with the same URL", func() {
			c.Put(model.NewsItem{URL: "https://example.com/a", Headline: "first"})
			now = now.Add(time.Minute)
			c.Put(model.NewsItem{URL: "https://example.com/a", Headline: "second"})

			Convey("Then exactly one item is stored and the latest wins", func() {
				So(c.Len(), ShouldEqual, 1)
				it, ok := c.Get("https://example.com/a")
				So(ok, ShouldBeTrue)
				So(it.Headline, ShouldEqual, "second")
				So(it.FetchedAt, ShouldEqual, now)
			})
		})

		Convey("When inserting capacity+1 items", func() {
			small := newscache.New(
				newscache.WithCapacity(3),
				newscache.WithClock(func() time.Time { return now }),
			)
			for i := 0; i < 4; i++ {
				small.Put(model.NewsItem{URL: fmt.Sprintf("https://example.com/%d", i)})
				now = now.Add(time.Second)
			}

			Convey("Then exactly the single oldest entry is evicted", func() {
				So(small.Len(), ShouldEqual, 3)
				_, ok := small.Get("https://example.com/0")
				So(ok, ShouldBeFalse)
				for i := 1; i < 4; i++ {
					_, ok := small.Get(fmt.Sprintf("https://example.com/%d", i))
					So(ok, ShouldBeTrue)
				}
			})
		})
	})
}

func TestCache_EvictExpired(t *testing.T) {
	Convey("Given a cache with a 1h TTL", t, func() {
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		c := newscache.New(
			newscache.WithTTL(time.Hour),
			newscache.WithClock(func() time.Time { return now }),
		)

		c.Put(model.NewsItem{URL: "https://example.com/old"})
		now = now.Add(30 * time.Minute)
		c.Put(model.NewsItem{URL: "https://example.com/new"})

		Convey("When time passes beyond the old item's TTL", func() {
			now = now.Add(45 * time.Minute)
			evicted := c.EvictExpired()

			Convey("Then only the expired item is removed", func() {
				So(evicted, ShouldEqual, 1)
				_, ok := c.Get("https://example.com/old")
				So(ok, ShouldBeFalse)
				_, ok = c.Get("https://example.com/new")
				So(ok, ShouldBeTrue)
			})
		})
	})
}

func TestCache_Unconsumed(t *testing.T) {
	Convey("Given a cache with consumed and unconsumed items", t, func() {
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		c := newscache.New(newscache.WithClock(func() time.Time { return now }))

		c.Put(model.NewsItem{URL: "https://example.com/b"})
		now = now.Add(time.Second)
		c.Put(model.NewsItem{URL: "https://example.com/a"})
		c.MarkConsumed("https://example.com/b")

		Convey("When listing unconsumed items", func() {
			items := c.Unconsumed()

			Convey("Then only unconsumed items are returned", func() {
				So(len(items), ShouldEqual, 1)
				So(items[0].URL, ShouldEqual, "https://example.com/a")
			})
		})

		Convey("When a consumed item's URL is re-inserted", func() {
			c.Put(model.NewsItem{URL: "https://example.com/b", Headline: "updated"})

			Convey("Then it becomes unconsumed again", func() {
				items := c.Unconsumed()
				So(len(items), ShouldEqual, 2)
			})
		})
	})

	Convey("Given items fetched at different times", t, func() {
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		c := newscache.New(newscache.WithClock(func() time.Time { return now }))

		c.Put(model.NewsItem{URL: "https://example.com/late"})
		now = now.Add(-time.Minute)
		c.Put(model.NewsItem{URL: "https://example.com/early"})

		Convey("Then Unconsumed orders oldest-fetched-first", func() {
			items := c.Unconsumed()
			So(len(items), ShouldEqual, 2)
			So(items[0].URL, ShouldEqual, "https://example.com/early")
			So(items[1].URL, ShouldEqual, "https://example.com/late")
		})
	})
}
