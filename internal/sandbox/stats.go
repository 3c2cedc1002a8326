package sandbox

import (
	"hash/fnv"
)

// lowVolumeShows is the threshold under which the service leaves
// SearchedAlso out of a report entry
const lowVolumeShows = 1000

var (
	refinements = []string{"online", "price", "review", "buy", "free", "how to", "near me", "2026"}
	neighbours  = []string{"tutorial", "course", "alternative", "vs", "download", "guide"}
)

type keywordRecord struct {
	Phrase string `json:"Phrase"`
	Shows  int64  `json:"Shows"`
}

type entryRecord struct {
	Phrase       string          `json:"Phrase"`
	GeoID        []int64         `json:"GeoID"`
	SearchedWith []keywordRecord `json:"SearchedWith"`
	SearchedAlso []keywordRecord `json:"SearchedAlso,omitempty"`
}

func phraseHash(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}

// monthlyShows derives a stable pseudo volume for a phrase. Phrases with
// more words get less traffic, as they do on the real service.
func monthlyShows(phrase string) int64 {
	words := int64(1)
	for _, r := range phrase {
		if r == ' ' {
			words++
		}
	}
	return int64(phraseHash(phrase)%400000)/(words*words) + 1
}

// buildEntry generates the statistics the sandbox reports for one phrase
func buildEntry(phrase string, geoIDs []int64) entryRecord {
	shows := monthlyShows(phrase)
	h := phraseHash(phrase)

	entry := entryRecord{
		Phrase:       phrase,
		GeoID:        append([]int64{}, geoIDs...),
		SearchedWith: []keywordRecord{{Phrase: phrase, Shows: shows}},
	}

	for i := 0; i < 3; i++ {
		word := refinements[(h+uint32(i))%uint32(len(refinements))]
		entry.SearchedWith = append(entry.SearchedWith, keywordRecord{
			Phrase: phrase + " " + word,
			Shows:  shows / int64(i+2),
		})
	}

	if shows >= lowVolumeShows {
		for i := 0; i < 2; i++ {
			word := neighbours[(h>>8+uint32(i))%uint32(len(neighbours))]
			related := word + " " + phrase
			entry.SearchedAlso = append(entry.SearchedAlso, keywordRecord{
				Phrase: related,
				Shows:  monthlyShows(related),
			})
		}
	}
	return entry
}
