package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nlsvndrp/aperowo-nils/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaults(t *testing.T) {
	Convey("Given a fresh config", t, func() {
		cfg := config.New(context.Background())

		Convey("Then the defaults are sensible", func() {
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.Addr, ShouldEqual, ":8080")
			So(cfg.BaseURL, ShouldEqual, "https://amiv.ethz.ch")
			So(cfg.DataDir, ShouldEqual, "data")
			So(cfg.Sources, ShouldResemble, []string{"data/apero_results_amiv.json"})
			So(cfg.Keywords, ShouldContain, "apero")
			So(cfg.RefreshMinutes, ShouldEqual, 0)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given the environment", t, func() {
		ctx := context.Background()

		// goconvey re-runs this block once per leaf within the same *testing.T,
		// but t.Setenv only restores at test end, so clear any values set by a
		// previously executed branch.
		os.Unsetenv("APEROWO_ADDR")
		os.Unsetenv("APEROWO_LOG_LEVEL")
		os.Unsetenv("APEROWO_CONFIG")

		Convey("When nothing is set", func() {
			cfg, err := config.Load(ctx)

			Convey("Then the defaults load", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":8080")
			})
		})

		Convey("When env vars override", func() {
			t.Setenv("APEROWO_ADDR", ":9090")
			t.Setenv("APEROWO_LOG_LEVEL", "debug")
			cfg, err := config.Load(ctx)

			Convey("Then the overrides win over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9090")
				So(cfg.LogLevel, ShouldEqual, "debug")
				So(cfg.DataDir, ShouldEqual, "data")
			})
		})

		Convey("When a YAML file is configured", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			So(os.WriteFile(path, []byte("addr: \":7070\"\nbase_url: https://example.org\n"), 0o644), ShouldBeNil)
			t.Setenv("APEROWO_CONFIG", path)

			Convey("Then the file layers over defaults", func() {
				cfg, err := config.Load(ctx)
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.BaseURL, ShouldEqual, "https://example.org")
			})

			Convey("And env vars still win over the file", func() {
				t.Setenv("APEROWO_ADDR", ":9090")
				cfg, err := config.Load(ctx)
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9090")
			})
		})

		Convey("When the configured file is missing", func() {
			t.Setenv("APEROWO_CONFIG", "does/not/exist.yaml")
			_, err := config.Load(ctx)

			Convey("Then loading fails with ErrLoadConfig", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
			})
		})

		Convey("When the address is blanked out", func() {
			t.Setenv("APEROWO_ADDR", "")
			_, err := config.Load(ctx)

			Convey("Then validation rejects the config", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})
	})
}
