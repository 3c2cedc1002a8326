package wordstat

import "fmt"

// KeywordItem is a single search-volume data point
type KeywordItem struct {
	Phrase       string `json:"phrase"`
	MonthlyShows int64  `json:"monthly_shows"`
}

// ReportEntry holds the statistics for one requested phrase.
// RelatedPhrases are the queries that contained the phrase (SearchedWith),
// SimilarPhrases are other queries of the same users (SearchedAlso).
type ReportEntry struct {
	Phrase         string        `json:"phrase"`
	RegionIDs      []int64       `json:"region_ids"`
	RelatedPhrases []KeywordItem `json:"related_phrases"`
	SimilarPhrases []KeywordItem `json:"similar_phrases"`
}

// DecodeReportEntries converts a GetWordstatReport response envelope
func DecodeReportEntries(envelope any) ([]ReportEntry, error) {
	items, err := dataArray(envelope)
	if err != nil {
		return nil, err
	}
	return decodeList(items, decodeReportEntry)
}

// DecodeReportID reads the id returned by CreateNewWordstatReport
func DecodeReportID(envelope any) (int64, error) {
	return requireInt64(envelope, "data")
}

// DecodeDeleteResult checks the result of DeleteWordstatReport.
// The service answers 1 on success; any other integer is ErrUnexpectedResult.
func DecodeDeleteResult(envelope any) error {
	code, err := requireInt64(envelope, "data")
	if err != nil {
		return err
	}
	if code != 1 {
		return &Error{Kind: KindUnexpectedResult, Code: code, Reason: fmt.Sprintf("delete returned %d", code)}
	}
	return nil
}

func decodeReportEntry(v any) (ReportEntry, error) {
	phrase, err := requireString(v, "Phrase")
	if err != nil {
		return ReportEntry{}, err
	}

	geoArr, err := requireArray(v, "GeoID")
	if err != nil {
		return ReportEntry{}, err
	}
	regionIDs, err := decodeList(geoArr, decodeGeoID)
	if err != nil {
		return ReportEntry{}, err
	}

	withArr, err := requireArray(v, "SearchedWith")
	if err != nil {
		return ReportEntry{}, err
	}
	related, err := decodeList(withArr, decodeKeywordItem)
	if err != nil {
		return ReportEntry{}, err
	}

	// SearchedAlso is left out by the service for low-volume phrases
	similar := []KeywordItem{}
	if _, ok := lookup(v, "SearchedAlso"); ok {
		alsoArr, err := requireArray(v, "SearchedAlso")
		if err != nil {
			return ReportEntry{}, err
		}
		if similar, err = decodeList(alsoArr, decodeKeywordItem); err != nil {
			return ReportEntry{}, err
		}
	}

	return ReportEntry{
		Phrase:         phrase,
		RegionIDs:      regionIDs,
		RelatedPhrases: related,
		SimilarPhrases: similar,
	}, nil
}

func decodeGeoID(v any) (int64, error) {
	id, ok := asInt64(v)
	if !ok {
		return 0, malformed("GeoID element is not an integer")
	}
	return id, nil
}

func decodeKeywordItem(v any) (KeywordItem, error) {
	phrase, err := requireString(v, "Phrase")
	if err != nil {
		return KeywordItem{}, err
	}
	shows, err := requireInt64(v, "Shows")
	if err != nil {
		return KeywordItem{}, err
	}
	return KeywordItem{Phrase: phrase, MonthlyShows: shows}, nil
}
