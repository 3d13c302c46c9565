package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nebellleben/capstone-polymarket-arbitrage-agent-sub000/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given no overrides", t, func() {
		os.Unsetenv("ARBITRAGE_CONFIG")

		Convey("When loading", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then defaults apply", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":8080")
				So(cfg.NewsTTLSeconds, ShouldEqual, 86_400)
				So(cfg.MarketTTLSeconds, ShouldEqual, 300)
				So(cfg.ConfidenceThreshold, ShouldEqual, 0.7)
				So(cfg.MinMargin, ShouldEqual, 0.05)
				So(cfg.CooldownSeconds, ShouldEqual, 300)
				So(cfg.AlertHistory, ShouldEqual, 100)
			})
		})
	})

	Convey("Given a YAML file and an env override on top", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		So(os.WriteFile(path, []byte("min_margin: 0.10\naddr: \":9000\"\n"), 0o600), ShouldBeNil)
		t.Setenv("ARBITRAGE_CONFIG", path)
		t.Setenv("ARBITRAGE_ADDR", ":9100")

		Convey("When loading", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then env wins over file which wins over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.MinMargin, ShouldEqual, 0.10)
				So(cfg.Addr, ShouldEqual, ":9100")
				So(cfg.ConfidenceThreshold, ShouldEqual, 0.7)
			})
		})
	})

	Convey("Given an out-of-range threshold", t, func() {
		os.Unsetenv("ARBITRAGE_CONFIG")
		t.Setenv("ARBITRAGE_CONFIDENCE_THRESHOLD", "1.5")

		Convey("When loading", func() {
			_, err := config.Load(context.Background())

			Convey("Then loading fails fast", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "confidence_threshold")
			})
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Given a default config", t, func() {
		cfg := config.New()

		Convey("Then it validates", func() {
			So(cfg.Validate(), ShouldBeNil)
		})

		Convey("When the cooldown is negative", func() {
			cfg.CooldownSeconds = -1

			Convey("Then validation rejects it", func() {
				So(cfg.Validate(), ShouldNotBeNil)
			})
		})

		Convey("When an interval is zero", func() {
			cfg.CycleIntervalSeconds = 0

			Convey("Then validation rejects it", func() {
				So(cfg.Validate(), ShouldNotBeNil)
			})
		})

		Convey("When the notifier severity is unknown", func() {
			cfg.TelegramMinSeverity = "LOUD"

			Convey("Then validation rejects it", func() {
				So(cfg.Validate(), ShouldNotBeNil)
			})
		})
	})
}
