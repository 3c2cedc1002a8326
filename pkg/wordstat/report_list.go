package wordstat

// ReportState is the processing state of a server-side report
type ReportState int

const (
	// ReportStateUnrecognized covers states this client does not know about yet
	ReportStateUnrecognized ReportState = iota
	ReportStateDone
	ReportStatePending
	ReportStateFailed
)

func (s ReportState) String() string {
	switch s {
	case ReportStateDone:
		return "Done"
	case ReportStatePending:
		return "Pending"
	case ReportStateFailed:
		return "Failed"
	default:
		return "Unrecognized"
	}
}

// MarshalText lets ReportState print by name in JSON output
func (s ReportState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseReportState maps the service's StatusReport text to a ReportState.
// Unknown text is not an error; the service may add states.
func ParseReportState(text string) ReportState {
	switch text {
	case "Done":
		return ReportStateDone
	case "Pending":
		return ReportStatePending
	case "Failed":
		return ReportStateFailed
	default:
		return ReportStateUnrecognized
	}
}

// ReportStatus is one element of GetWordstatReportList
type ReportStatus struct {
	ReportID int64       `json:"report_id"`
	State    ReportState `json:"state"`
}

// DecodeReportStatuses converts a GetWordstatReportList response envelope
func DecodeReportStatuses(envelope any) ([]ReportStatus, error) {
	items, err := dataArray(envelope)
	if err != nil {
		return nil, err
	}
	return decodeList(items, decodeReportStatus)
}

func decodeReportStatus(v any) (ReportStatus, error) {
	id, err := requireInt64(v, "ReportID")
	if err != nil {
		return ReportStatus{}, err
	}
	text, err := requireString(v, "StatusReport")
	if err != nil {
		return ReportStatus{}, err
	}
	return ReportStatus{ReportID: id, State: ParseReportState(text)}, nil
}
