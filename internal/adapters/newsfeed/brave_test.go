package newsfeed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/adapters/newsfeed"
	. "github.com/smartystreets/goconvey/convey"
)

const braveBody = `{
	"news": {
		"results": [
			{
				"url": "https://news.example.com/rates",
				"title": "Central bank raises rates unexpectedly",
				"description": "A surprise hike of 50 basis points.",
				"page_age": "2025-06-01T09:30:00Z"
			},
			{
				"url": "",
				"title": "malformed entry without url"
			}
		]
	}
}`

func TestBraveClient_Search(t *testing.T) {
	Convey("Given a search API stub", t, func() {
		var gotToken, gotQuery, gotFreshness string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotToken = r.Header.Get("X-Subscription-Token")
			gotQuery = r.URL.Query().Get("q")
			gotFreshness = r.URL.Query().Get("freshness")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(braveBody))
		}))
		defer srv.Close()

		client := newsfeed.NewBraveClient("secret-key",
			newsfeed.WithBraveEndpoint(srv.URL),
			newsfeed.WithBraveMaxResults(5),
		)

		Convey("When searching", func() {
			items, err := client.Search(context.Background(), "prediction market news", "pd")

			Convey("Then the request carries the key and query parameters", func() {
				So(err, ShouldBeNil)
				So(gotToken, ShouldEqual, "secret-key")
				So(gotQuery, ShouldEqual, "prediction market news")
				So(gotFreshness, ShouldEqual, "pd")
			})

			Convey("Then well-formed results are mapped and malformed ones skipped", func() {
				So(err, ShouldBeNil)
				So(len(items), ShouldEqual, 1)
				So(items[0].URL, ShouldEqual, "https://news.example.com/rates")
				So(items[0].Headline, ShouldEqual, "Central bank raises rates unexpectedly")
				So(items[0].Source, ShouldEqual, "news.example.com")
				So(items[0].PublishedAt.IsZero(), ShouldBeFalse)
			})
		})
	})

	Convey("Given a server returning an error status", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		client := newsfeed.NewBraveClient("secret-key", newsfeed.WithBraveEndpoint(srv.URL))

		Convey("When searching", func() {
			_, err := client.Search(context.Background(), "anything", "pd")

			Convey("Then a search failure is reported", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "status 429")
			})
		})
	})

	Convey("Given a client without an API key", t, func() {
		client := newsfeed.NewBraveClient("")

		Convey("When searching", func() {
			_, err := client.Search(context.Background(), "anything", "pd")

			Convey("Then the missing key is reported without a network call", func() {
				So(err, ShouldEqual, newsfeed.ErrNoAPIKey)
			})
		})
	})
}
