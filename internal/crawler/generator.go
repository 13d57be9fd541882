package crawler

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/nlsvndrp/aperowo-nils/internal/domain/model"
)

var sampleTitles = []string{
	"Semester opening apero",
	"Board game night with snacks",
	"Thesis defense apero",
	"Exchange students welcome apero",
	"Friday beer and pretzels",
	"Alumni networking apero",
}

var sampleLocations = []string{
	"CAB E 31",
	"ETZ F-floor lounge",
	"HXE foyer",
	"StuZ2",
	"ML H 44",
}

// SampleRecords generates n plausible feed records spread over the current
// and the next month. Every record gets a fresh UUID; a few are left
// without a start time or a title to exercise the normalizer defaults.
func SampleRecords(n int) []model.RawEntry {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	records := make([]model.RawEntry, 0, n)
	for i := 0; i < n; i++ {
		day := first.AddDate(0, 0, rng.Intn(60))
		rec := model.RawEntry{
			ID:       uuid.New().String(),
			Title:    sampleTitles[rng.Intn(len(sampleTitles))],
			Date:     day.Format("2006-01-02"),
			Location: sampleLocations[rng.Intn(len(sampleLocations))],
			URL:      fmt.Sprintf("/en/events/sample-%d", i),
		}
		if rng.Intn(5) != 0 { // most events carry times
			startHour := 17 + rng.Intn(3)
			rec.StartTime = fmt.Sprintf("%02d:%02d", startHour, 15*rng.Intn(4))
			rec.EndTime = fmt.Sprintf("%02d:00", startHour+2)
		}
		if rng.Intn(10) == 0 {
			rec.Title = ""
		}
		ease := float64(rng.Intn(11)) / 10
		rec.EaseOfEntry = &ease
		rec.Refreshments = "drinks and snacks"
		records = append(records, rec)
	}
	return records
}
