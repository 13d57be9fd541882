package feed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/nlsvndrp/aperowo-nils/internal/domain/model"
	"github.com/nlsvndrp/aperowo-nils/internal/feed"
	. "github.com/smartystreets/goconvey/convey"
)

func loadFixture() []model.RawEntry {
	return []model.RawEntry{
		{
			ID:        "abc",
			Title:     "Pi day apero",
			Date:      "2024-03-14",
			StartTime: "15:09",
			EndTime:   "17:00",
			Location:  "CAB E 31",
			URL:       "/en/events/42",
		},
		{
			Title:    "Untitled leftovers",
			Date:     "2024-03-15",
			Location: "HXE foyer",
		},
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	Convey("Given a feed loader", t, func() {
		dir := t.TempDir()
		ctx := context.Background()

		Convey("When loading an array payload from a file", func() {
			path := writeFile(t, dir, "apero_results_amiv.json",
				`[{"date":"2024-03-14","title":"A"},{"date":"2024-03-15","title":"B"}]`)
			l := feed.New(feed.WithSources([]string{path}))
			res, err := l.Load(ctx)

			Convey("Then all records load under the source tag", func() {
				So(err, ShouldBeNil)
				So(res.Sources, ShouldHaveLength, 1)
				So(res.Sources[0].Source, ShouldEqual, "amiv")
				So(res.Sources[0].Records, ShouldHaveLength, 2)
				So(res.Total(), ShouldEqual, 2)
			})
		})

		Convey("When the payload is a single object", func() {
			obj := writeFile(t, dir, "single.json", `{"date":"2024-03-14","title":"A"}`)
			arr := writeFile(t, dir, "wrapped.json", `[{"date":"2024-03-14","title":"A"}]`)

			lObj := feed.New(feed.WithSources([]string{obj}))
			lArr := feed.New(feed.WithSources([]string{arr}))
			resObj, errObj := lObj.Load(ctx)
			resArr, errArr := lArr.Load(ctx)

			Convey("Then it loads exactly like a one-element array", func() {
				So(errObj, ShouldBeNil)
				So(errArr, ShouldBeNil)
				So(resObj.Sources[0].Records, ShouldResemble, resArr.Sources[0].Records)
			})
		})

		Convey("When a source is an HTTP URL", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[{"date":"2024-03-14"}]`))
			}))
			defer srv.Close()

			l := feed.New(feed.WithSources([]string{srv.URL + "/feed.json"}))
			res, err := l.Load(ctx)

			Convey("Then it loads over the network", func() {
				So(err, ShouldBeNil)
				So(res.Sources[0].Records, ShouldHaveLength, 1)
			})
		})

		Convey("When a source returns a non-success status", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer srv.Close()

			l := feed.New(feed.WithSources([]string{srv.URL}))
			_, err := l.Load(ctx)

			Convey("Then the whole load fails", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When one of several sources is missing", func() {
			good := writeFile(t, dir, "good.json", `[]`)
			l := feed.New(feed.WithSources([]string{good, filepath.Join(dir, "missing.json")}))
			_, err := l.Load(ctx)

			Convey("Then the whole load fails with no partial result", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When the payload is not JSON", func() {
			bad := writeFile(t, dir, "bad.json", `hello`)
			l := feed.New(feed.WithSources([]string{bad}))
			_, err := l.Load(ctx)

			Convey("Then decoding fails", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When no sources are configured", func() {
			l := feed.New()
			_, err := l.Load(ctx)

			Convey("Then loading fails with ErrNoSources", func() {
				So(err, ShouldEqual, feed.ErrNoSources)
			})
		})
	})
}

func TestTag(t *testing.T) {
	Convey("Given source identifiers", t, func() {
		Convey("File names lose the well-known prefix", func() {
			So(feed.Tag("data/apero_results_amiv.json"), ShouldEqual, "amiv")
			So(feed.Tag("data/apero_results.json"), ShouldEqual, "web")
		})

		Convey("URLs tag with their host", func() {
			So(feed.Tag("https://example.org/feed.json"), ShouldEqual, "example.org")
		})
	})
}

func TestWriteRoundtrip(t *testing.T) {
	Convey("Given records written by the crawler", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "out", "feed.json")

		records := loadFixture()
		err := feed.Write(path, records)
		So(err, ShouldBeNil)

		Convey("When loading them back", func() {
			l := feed.New(feed.WithSources([]string{path}))
			res, err := l.Load(context.Background())

			Convey("Then fields survive the roundtrip", func() {
				So(err, ShouldBeNil)
				got := res.Sources[0].Records
				So(got, ShouldHaveLength, 2)
				So(got[0].Title, ShouldEqual, "Pi day apero")
				So(got[0].StartTime, ShouldEqual, "15:09")
				So(got[1].Date, ShouldEqual, "2024-03-15")
			})
		})
	})
}
