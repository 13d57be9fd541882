package data_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/nlsvndrp/aperowo-nils/internal/adapters/http/data"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServeData(t *testing.T) {
	Convey("Given a data directory with one feed file", t, func() {
		dir := t.TempDir()
		feedJSON := `[{"date":"2024-03-14","title":"Pi day apero"}]`
		So(os.WriteFile(filepath.Join(dir, "apero_results_amiv.json"), []byte(feedJSON), 0o644), ShouldBeNil)

		// A secret outside the served root.
		outside := filepath.Join(dir, "..", "secret.txt")
		So(os.WriteFile(outside, []byte("nope"), 0o644), ShouldBeNil)
		defer os.Remove(outside)

		mux := http.NewServeMux()
		data.Register(context.Background(), mux, dir)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		fetch := func(path string) (int, string) {
			resp, err := http.Get(srv.URL + path)
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			So(err, ShouldBeNil)
			return resp.StatusCode, string(body)
		}

		Convey("When requesting an existing file", func() {
			status, body := fetch("/data/apero_results_amiv.json")

			Convey("Then the file is served", func() {
				So(status, ShouldEqual, http.StatusOK)
				So(body, ShouldEqual, feedJSON)
			})
		})

		Convey("When requesting a missing file", func() {
			status, _ := fetch("/data/missing.json")
			So(status, ShouldEqual, http.StatusNotFound)
		})

		Convey("When requesting the directory itself", func() {
			status, _ := fetch("/data/")
			So(status, ShouldEqual, http.StatusNotFound)
		})

		Convey("When trying to climb out of the root", func() {
			for _, path := range []string{
				"/data/../secret.txt",
				"/data/..%2fsecret.txt",
				"/data/subdir/../../secret.txt",
			} {
				status, body := fetch(path)
				So(status, ShouldEqual, http.StatusNotFound)
				So(body, ShouldNotContainSubstring, "nope")
			}
		})

		Convey("When using a write method", func() {
			req, err := http.NewRequest(http.MethodPost, srv.URL+"/data/apero_results_amiv.json", nil)
			So(err, ShouldBeNil)
			resp, err := http.DefaultClient.Do(req)
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})
}
