package notify_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/adapters/notify"
	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleAlert(severity model.Severity) model.Alert {
	return model.Alert{
		ID:             "a-1",
		Severity:       severity,
		MarketID:       "mkt-1",
		MarketQuestion: "Will rates stay flat?",
		NewsHeadline:   "Central bank raises rates unexpectedly",
		Confidence:     0.85,
		Discrepancy:    0.30,
		CurrentPrice:   0.60,
		ExpectedPrice:  0.30,
		Reasoning:      "Rate hike contradicts the market.",
	}
}

func TestTelegram_Send(t *testing.T) {
	Convey("Given a bot API stub", t, func() {
		var gotPath, gotChatID, gotText string
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			gotPath = r.URL.Path
			_ = r.ParseForm()
			gotChatID = r.PostForm.Get("chat_id")
			gotText = r.PostForm.Get("text")
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		n := notify.NewTelegram("bot-token", "chat-42",
			notify.WithTelegramBaseURL(srv.URL),
			notify.WithMinSeverity(model.SeverityWarning),
		)

		Convey("When sending a critical alert", func() {
			err := n.Send(context.Background(), sampleAlert(model.SeverityCritical))

			Convey("Then the bot endpoint receives the formatted message", func() {
				So(err, ShouldBeNil)
				So(gotPath, ShouldEqual, "/botbot-token/sendMessage")
				So(gotChatID, ShouldEqual, "chat-42")
				So(gotText, ShouldContainSubstring, "[CRITICAL]")
				So(gotText, ShouldContainSubstring, "Will rates stay flat?")
				So(gotText, ShouldContainSubstring, "Discrepancy: 30.0%")
			})
		})

		Convey("When sending an alert below the minimum severity", func() {
			err := n.Send(context.Background(), sampleAlert(model.SeverityInfo))

			Convey("Then it is dropped without a network call", func() {
				So(err, ShouldBeNil)
				So(calls, ShouldEqual, 0)
			})
		})
	})

	Convey("Given a bot API returning an error status", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		n := notify.NewTelegram("bot-token", "chat-42", notify.WithTelegramBaseURL(srv.URL))

		Convey("When sending", func() {
			err := n.Send(context.Background(), sampleAlert(model.SeverityCritical))

			Convey("Then the failure is reported for the caller to log", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "status 403")
			})
		})
	})
}

func TestFormat(t *testing.T) {
	Convey("Given an alert with reasoning", t, func() {
		text := notify.Format(sampleAlert(model.SeverityWarning))

		Convey("Then every field the operator needs is present", func() {
			So(text, ShouldContainSubstring, "[WARNING]")
			So(text, ShouldContainSubstring, "Current price: 0.60")
			So(text, ShouldContainSubstring, "Expected price: 0.30")
			So(text, ShouldContainSubstring, "Confidence: 85%")
			So(text, ShouldContainSubstring, "Rate hike contradicts the market.")
		})
	})
}
