package amiv_test

import (
	"encoding/json"
	"testing"

	"github.com/nlsvndrp/aperowo-nils/internal/sources/amiv"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFold(t *testing.T) {
	Convey("Given accented text", t, func() {
		Convey("Diacritics are stripped and case lowered", func() {
			So(amiv.Fold("Apéro"), ShouldEqual, "apero")
			So(amiv.Fold("APÉRITIF"), ShouldEqual, "aperitif")
			So(amiv.Fold("Müsli-Essen"), ShouldEqual, "musli-essen")
		})

		Convey("Plain ASCII passes through", func() {
			So(amiv.Fold("free food"), ShouldEqual, "free food")
		})
	})
}

func TestMatches(t *testing.T) {
	Convey("Given upstream events", t, func() {
		keywords := []string{"apero", "food"}

		Convey("A match in any language field counts", func() {
			So(amiv.Event{TitleEN: "Semester Apéro"}.Matches(keywords), ShouldBeTrue)
			So(amiv.Event{DescriptionDE: "Es gibt FOOD für alle"}.Matches(keywords), ShouldBeTrue)
			So(amiv.Event{CatchphraseEN: "come hungry, free apero"}.Matches(keywords), ShouldBeTrue)
		})

		Convey("Events without a keyword are dropped", func() {
			So(amiv.Event{TitleEN: "Linear algebra exam"}.Matches(keywords), ShouldBeFalse)
		})

		Convey("No keywords matches nothing", func() {
			So(amiv.Event{TitleEN: "Apero"}.Matches(nil), ShouldBeFalse)
		})
	})
}

func TestWhere(t *testing.T) {
	Convey("Given keyword filters", t, func() {
		Convey("The where document ORs every field and keyword", func() {
			doc := amiv.Where([]string{"apero"})
			So(doc, ShouldNotBeEmpty)

			var parsed map[string][]map[string]map[string]string
			So(json.Unmarshal([]byte(doc), &parsed), ShouldBeNil)
			clauses := parsed["$or"]
			So(clauses, ShouldHaveLength, 6) // six text fields, one keyword

			found := false
			for _, c := range clauses {
				if re, ok := c["title_de"]; ok {
					So(re["$regex"], ShouldEqual, "apero")
					So(re["$options"], ShouldEqual, "i")
					found = true
				}
			}
			So(found, ShouldBeTrue)
		})

		Convey("No keywords yields no filter", func() {
			So(amiv.Where(nil), ShouldBeEmpty)
			So(amiv.Where([]string{""}), ShouldBeEmpty)
		})
	})
}
