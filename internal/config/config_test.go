package config_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/okian/buildermatch/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.UpdateQueueSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*2)
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 50_000)
			convey.So(cfg.DefaultMatchLimit, convey.ShouldEqual, 10)
			convey.So(cfg.MaxMatchLimit, convey.ShouldEqual, 20)
			convey.So(cfg.ProjectCandidateCap, convey.ShouldEqual, 50)
			convey.So(cfg.MemberCandidateCap, convey.ShouldEqual, 100)
			convey.So(cfg.CacheEnabled, convey.ShouldBeFalse)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := config.New()

		cases := map[string]func(c *config.Config){
			"empty addr":               func(c *config.Config) { c.Addr = "" },
			"zero max limit":           func(c *config.Config) { c.MaxMatchLimit = 0 },
			"default above max":        func(c *config.Config) { c.DefaultMatchLimit = c.MaxMatchLimit + 1 },
			"zero default limit":       func(c *config.Config) { c.DefaultMatchLimit = 0 },
			"negative ttl":             func(c *config.Config) { c.CacheTTLSeconds = -1 },
			"cache without redis addr": func(c *config.Config) { c.CacheEnabled = true; c.RedisAddr = "" },
		}
		for name, mutate := range cases {
			convey.Convey("When it has "+name, func() {
				mutate(cfg)
				err := cfg.Validate()

				convey.Convey("Then validation fails with ErrInvalidConfig", func() {
					convey.So(err, convey.ShouldNotBeNil)
					convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				})
			})
		}
	})
}
