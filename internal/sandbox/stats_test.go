package sandbox

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMonthlyShows_Stable(t *testing.T) {
	if monthlyShows("golang") != monthlyShows("golang") {
		t.Error("shows must be deterministic")
	}
	for _, phrase := range []string{"a", "golang", "how to learn go", "!exact +phrase"} {
		if shows := monthlyShows(phrase); shows < 1 {
			t.Errorf("monthlyShows(%q) = %d", phrase, shows)
		}
	}
}

func TestBuildEntry_Shape(t *testing.T) {
	entry := buildEntry("golang", []int64{225, 1})

	if entry.Phrase != "golang" {
		t.Errorf("Phrase = %q", entry.Phrase)
	}
	if diff := cmp.Diff([]int64{225, 1}, entry.GeoID); diff != "" {
		t.Errorf("GeoID (-want +got):\n%s", diff)
	}
	if len(entry.SearchedWith) != 4 {
		t.Fatalf("expected 4 SearchedWith items, got %d", len(entry.SearchedWith))
	}
	if entry.SearchedWith[0].Phrase != "golang" || entry.SearchedWith[0].Shows != monthlyShows("golang") {
		t.Errorf("first item should be the phrase itself, got %+v", entry.SearchedWith[0])
	}
	for _, item := range entry.SearchedWith[1:] {
		if !strings.HasPrefix(item.Phrase, "golang ") {
			t.Errorf("refinement %q does not extend the phrase", item.Phrase)
		}
		if item.Shows > entry.SearchedWith[0].Shows {
			t.Errorf("refinement %q has more shows than the phrase", item.Phrase)
		}
	}
}

func TestBuildEntry_NilGeoIDs(t *testing.T) {
	entry := buildEntry("golang", nil)
	if entry.GeoID == nil {
		t.Error("GeoID must encode as an empty array, not null")
	}
}

func TestBuildEntry_SearchedAlsoByVolume(t *testing.T) {
	var low, high string
	for i := 0; i < 10000 && (low == "" || high == ""); i++ {
		phrase := fmt.Sprintf("w%d x y z", i)
		if monthlyShows(phrase) < lowVolumeShows {
			if low == "" {
				low = phrase
			}
		} else if high == "" {
			high = phrase
		}
	}
	if low == "" || high == "" {
		t.Fatal("could not find both a low and a high volume phrase")
	}

	if entry := buildEntry(low, nil); entry.SearchedAlso != nil {
		t.Errorf("low volume phrase %q got SearchedAlso %+v", low, entry.SearchedAlso)
	}
	entry := buildEntry(high, nil)
	if len(entry.SearchedAlso) != 2 {
		t.Fatalf("high volume phrase %q got %d SearchedAlso items", high, len(entry.SearchedAlso))
	}
	for _, item := range entry.SearchedAlso {
		if !strings.HasSuffix(item.Phrase, " "+high) {
			t.Errorf("neighbour %q does not mention %q", item.Phrase, high)
		}
	}
}
