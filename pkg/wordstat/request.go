package wordstat

import (
	"encoding/json"
	"slices"
	"strings"
)

// MaxPhrases is the number of keyphrases the service accepts in one report
const MaxPhrases = 10

// forbiddenSequences are checked in order; the first match is reported
var forbiddenSequences = []struct {
	seq    string
	reason string
}{
	{"&", "can't use '&' in keyphrases"},
	{"%", "can't use '%' in keyphrases"},
	{"+", "can't use '+' in keyphrases"},
	{" - ", "can't use ' - ' in keyphrases"},
	{":", "can't use ':' in keyphrases"},
}

// ReportRequest describes the phrases and regions of a new report.
//
// It is a persistent value: every Add/With method returns a new request and
// leaves the receiver untouched, including when validation fails.
//
//	req, err := wordstat.NewReportRequest().AddPhrase("golang")
//	req = req.AddRegion(225)
//
// Region IDs are optional. To exclude a word prefix it with '-' ("go -game"),
// to exclude a phrase use parentheses ("car -(diesel engine) repair").
type ReportRequest struct {
	phrases   []string
	regionIDs []int64
}

// NewReportRequest returns an empty request
func NewReportRequest() ReportRequest {
	return ReportRequest{}
}

// ValidatePhrase reports whether phrase can be sent to the service.
// Phrases may not contain '&', '%', '+', ':' or a minus surrounded by spaces.
func ValidatePhrase(phrase string) error {
	for _, f := range forbiddenSequences {
		if strings.Contains(phrase, f.seq) {
			return invalidKeyphrase(f.reason)
		}
	}
	return nil
}

// AddPhrase returns a copy of r with phrase appended.
// Fails with ErrTooManyKeyphrases when r already holds MaxPhrases phrases
// and with ErrInvalidKeyphrase when ValidatePhrase rejects the phrase.
func (r ReportRequest) AddPhrase(phrase string) (ReportRequest, error) {
	if len(r.phrases) >= MaxPhrases {
		return r, &Error{Kind: KindTooManyKeyphrases}
	}
	if err := ValidatePhrase(phrase); err != nil {
		return r, err
	}
	return ReportRequest{
		phrases:   append(slices.Clip(r.phrases), phrase),
		regionIDs: r.regionIDs,
	}, nil
}

// WithPhrases adds every phrase in order, stopping at the first error.
func (r ReportRequest) WithPhrases(phrases []string) (ReportRequest, error) {
	next := r
	for _, phrase := range phrases {
		var err error
		if next, err = next.AddPhrase(phrase); err != nil {
			return r, err
		}
	}
	return next, nil
}

// AddRegion returns a copy of r with the region ID appended.
// Use Client.GetRegions to list the available IDs.
func (r ReportRequest) AddRegion(id int64) ReportRequest {
	return ReportRequest{
		phrases:   r.phrases,
		regionIDs: append(slices.Clip(r.regionIDs), id),
	}
}

// WithRegionIDs adds every region ID in order
func (r ReportRequest) WithRegionIDs(ids []int64) ReportRequest {
	next := r
	for _, id := range ids {
		next = next.AddRegion(id)
	}
	return next
}

// Phrases returns a copy of the phrases held by the request
func (r ReportRequest) Phrases() []string {
	return slices.Clone(r.phrases)
}

// RegionIDs returns a copy of the region IDs held by the request
func (r ReportRequest) RegionIDs() []int64 {
	return slices.Clone(r.regionIDs)
}

// reportRequestParam is the wire form of CreateNewWordstatReport's param.
// Both keys are always present, empty lists included.
type reportRequestParam struct {
	Phrases []string `json:"Phrases"`
	GeoID   []int64  `json:"GeoID"`
}

// MarshalJSON encodes the request as {"Phrases":[...],"GeoID":[...]}
func (r ReportRequest) MarshalJSON() ([]byte, error) {
	p := reportRequestParam{Phrases: r.phrases, GeoID: r.regionIDs}
	if p.Phrases == nil {
		p.Phrases = []string{}
	}
	if p.GeoID == nil {
		p.GeoID = []int64{}
	}
	return json.Marshal(p)
}
