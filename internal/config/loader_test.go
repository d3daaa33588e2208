package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/LeifStrom/hiring/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

// clearEnv snapshots and unsets a variable for the duration of the test.
func clearEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t, "HIRING_CONFIG")
	t.Setenv("HIRING_SPREADSHEET_ID", "sheet-123")

	Convey("Given only the required environment", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then defaults fill the rest", func() {
			So(err, ShouldBeNil)
			So(cfg.SpreadsheetID, ShouldEqual, "sheet-123")
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.CacheTTLSeconds, ShouldEqual, 30)
			So(cfg.ActiveWorksheet, ShouldEqual, "active")
			So(cfg.TopNDefault, ShouldEqual, 5)
		})
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t, "HIRING_CONFIG")
	t.Setenv("HIRING_SPREADSHEET_ID", "sheet-123")
	t.Setenv("HIRING_ADDR", ":7000")
	t.Setenv("HIRING_CACHE_TTL_SECONDS", "60")
	t.Setenv("HIRING_DENIED_WORKSHEET", "Denied Applicants")

	Convey("Given env overrides", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then env wins over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7000")
			So(cfg.CacheTTLSeconds, ShouldEqual, 60)
			So(cfg.DeniedWorksheet, ShouldEqual, "Denied Applicants")
		})
	})
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hiring.yaml")
	yaml := "spreadsheet_id: from-file\naddr: \":7100\"\ntop_n_default: 3\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("HIRING_CONFIG", path)
	clearEnv(t, "HIRING_SPREADSHEET_ID")

	Convey("Given a YAML config file", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then file values layer over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.SpreadsheetID, ShouldEqual, "from-file")
			So(cfg.Addr, ShouldEqual, ":7100")
			So(cfg.TopNDefault, ShouldEqual, 3)
		})
	})
}

func TestLoadFileThenEnvWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hiring.yaml")
	yaml := "spreadsheet_id: from-file\naddr: \":7100\"\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("HIRING_CONFIG", path)
	clearEnv(t, "HIRING_SPREADSHEET_ID")
	t.Setenv("HIRING_ADDR", ":7200")

	Convey("Given both a file and env", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then env wins over the file", func() {
			So(err, ShouldBeNil)
			So(cfg.SpreadsheetID, ShouldEqual, "from-file")
			So(cfg.Addr, ShouldEqual, ":7200")
		})
	})
}

func TestLoadRequiresSpreadsheetID(t *testing.T) {
	clearEnv(t, "HIRING_CONFIG")
	clearEnv(t, "HIRING_SPREADSHEET_ID")

	Convey("Given no spreadsheet id anywhere", t, func() {
		_, err := config.Load(context.Background())

		Convey("Then loading fails with ErrInvalidConfig", func() {
			So(err, ShouldNotBeNil)
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})
	})
}
