package calendar_test

import (
	"testing"
	"time"

	"github.com/nlsvndrp/aperowo-nils/internal/domain/calendar"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMatrix(t *testing.T) {
	Convey("Given month grids", t, func() {
		Convey("January 2024 starts on a Monday", func() {
			weeks := calendar.Matrix(2024, time.January)

			Convey("So the first cell is Jan 1 and in-month", func() {
				So(weeks[0][0].ISO, ShouldEqual, "2024-01-01")
				So(weeks[0][0].InMonth, ShouldBeTrue)
				So(weeks[0][0].Day, ShouldEqual, 1)
			})

			Convey("And every week has seven cells", func() {
				for _, week := range weeks {
					So(week, ShouldHaveLength, 7)
				}
			})

			Convey("And the grid ends on a Sunday cell", func() {
				last := weeks[len(weeks)-1][6]
				So(last.Date.Weekday(), ShouldEqual, time.Sunday)
			})
		})

		Convey("February 2024 is a leap February", func() {
			weeks := calendar.Matrix(2024, time.February)

			var leapDay *calendar.Cell
			for i := range weeks {
				for j := range weeks[i] {
					if weeks[i][j].ISO == "2024-02-29" {
						leapDay = &weeks[i][j]
					}
				}
			}

			Convey("So the grid contains Feb 29 marked in-month", func() {
				So(leapDay, ShouldNotBeNil)
				So(leapDay.InMonth, ShouldBeTrue)
			})
		})

		Convey("September 2024 ends on a Monday-started final week", func() {
			// Sep 1, 2024 is a Sunday, so the first week is mostly padding.
			weeks := calendar.Matrix(2024, time.September)

			Convey("So the first cell is an out-of-month Monday", func() {
				So(weeks[0][0].ISO, ShouldEqual, "2024-08-26")
				So(weeks[0][0].InMonth, ShouldBeFalse)
			})

			Convey("And Sep 1 sits in the Sunday column", func() {
				So(weeks[0][6].ISO, ShouldEqual, "2024-09-01")
				So(weeks[0][6].InMonth, ShouldBeTrue)
			})
		})

		Convey("The grid length varies with the month", func() {
			// Feb 2021 fits exactly four Monday weeks.
			So(calendar.Matrix(2021, time.February), ShouldHaveLength, 4)
			// Dec 2024 needs six rows.
			So(calendar.Matrix(2024, time.December), ShouldHaveLength, 6)
		})
	})
}

func TestAddMonths(t *testing.T) {
	Convey("Given month arithmetic", t, func() {
		Convey("Stepping forward across a year boundary", func() {
			year, month := calendar.AddMonths(2023, time.December, 1)
			So(year, ShouldEqual, 2024)
			So(month, ShouldEqual, time.January)
		})

		Convey("Stepping backward across a year boundary", func() {
			year, month := calendar.AddMonths(2024, time.January, -1)
			So(year, ShouldEqual, 2023)
			So(month, ShouldEqual, time.December)
		})

		Convey("Large deltas normalize multiple years", func() {
			year, month := calendar.AddMonths(2024, time.January, 25)
			So(year, ShouldEqual, 2026)
			So(month, ShouldEqual, time.February)
		})
	})
}

func TestParseDay(t *testing.T) {
	Convey("Given day strings", t, func() {
		Convey("A plain day parses", func() {
			d, err := calendar.ParseDay("2024-02-29")
			So(err, ShouldBeNil)
			So(d.Day(), ShouldEqual, 29)
		})

		Convey("A timestamp is clipped before parsing", func() {
			d, err := calendar.ParseDay("2024-02-29T18:30:00Z")
			So(err, ShouldBeNil)
			So(d.Month(), ShouldEqual, time.February)
		})

		Convey("Garbage is rejected", func() {
			_, err := calendar.ParseDay("not-a-day")
			So(err, ShouldNotBeNil)
		})
	})
}
