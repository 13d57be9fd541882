package normalize_test

import (
	"context"
	"os"
	"testing"

	"github.com/nlsvndrp/aperowo-nils/internal/domain/model"
	"github.com/nlsvndrp/aperowo-nils/internal/domain/normalize"
	"github.com/nlsvndrp/aperowo-nils/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func TestEntry(t *testing.T) {
	Convey("Given a normalizer", t, func() {
		n := normalize.New(nil)

		Convey("When the record has all fields", func() {
			ease := 0.5
			ev, err := n.Entry(model.RawEntry{
				ID:          "abc",
				Date:        "2024-03-14",
				Title:       "Pi day apero",
				StartTime:   "15:09",
				EndTime:     "17:00",
				Location:    "CAB E 31",
				URL:         "/en/events/42",
				EaseOfEntry: &ease,
			}, "amiv")

			Convey("Then the event should mirror them", func() {
				So(err, ShouldBeNil)
				So(ev.ID, ShouldEqual, "amiv:abc")
				So(ev.Title, ShouldEqual, "Pi day apero")
				So(ev.Date, ShouldEqual, "2024-03-14")
				So(ev.Source, ShouldEqual, "amiv")
				So(*ev.EaseOfEntry, ShouldEqual, 0.5)
			})
		})

		Convey("When the record has no date", func() {
			_, err := n.Entry(model.RawEntry{Title: "no date"}, "amiv")

			Convey("Then it should fail with ErrMissingDate", func() {
				So(err, ShouldEqual, normalize.ErrMissingDate)
			})
		})

		Convey("When the date carries a time component", func() {
			ev, err := n.Entry(model.RawEntry{Date: "2024-03-14T18:30:00Z"}, "amiv")

			Convey("Then the event date should be the 10-char day", func() {
				So(err, ShouldBeNil)
				So(ev.Date, ShouldEqual, "2024-03-14")
			})
		})

		Convey("When the record has no title", func() {
			ev, err := n.Entry(model.RawEntry{Date: "2024-03-14"}, "amiv")

			Convey("Then the title should default", func() {
				So(err, ShouldBeNil)
				So(ev.Title, ShouldEqual, normalize.DefaultTitle)
			})
		})

		Convey("When the record has no id", func() {
			ev, err := n.Entry(model.RawEntry{Date: "2024-03-14", Title: "Apero"}, "web")

			Convey("Then the id should derive from title and date", func() {
				So(err, ShouldBeNil)
				So(ev.ID, ShouldEqual, "web:Apero@2024-03-14")
			})
		})

		Convey("When two identical records are normalized", func() {
			first, err1 := n.Entry(model.RawEntry{Date: "2024-03-14", Title: "Apero"}, "web")
			second, err2 := n.Entry(model.RawEntry{Date: "2024-03-14", Title: "Apero"}, "web")

			Convey("Then their ids should still differ", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(first.ID, ShouldNotEqual, second.ID)
			})
		})
	})
}

func TestBatch(t *testing.T) {
	Convey("Given a batch of raw records", t, func() {
		n := normalize.New(nil)
		raws := []model.RawEntry{
			{Date: "2024-03-14", Title: "Keep me"},
			{Title: "I have no date"},
			{Date: "2024-03-15"},
			{},
		}

		Convey("When normalizing the batch", func() {
			events, skipped := n.Batch(context.Background(), raws, "amiv")

			Convey("Then dated records produce exactly one event each", func() {
				So(events, ShouldHaveLength, 2)
				So(events[0].Title, ShouldEqual, "Keep me")
			})

			Convey("And dateless records are skipped and counted", func() {
				So(skipped, ShouldEqual, 2)
			})
		})
	})
}
