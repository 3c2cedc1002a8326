package wordstat

// Region is a geographic targeting unit. ParentID is nil for the root region.
type Region struct {
	Name     string `json:"name"`
	ID       int64  `json:"id"`
	ParentID *int64 `json:"parent_id"`
}

// DecodeRegions converts a GetRegions response envelope into regions
func DecodeRegions(envelope any) ([]Region, error) {
	items, err := dataArray(envelope)
	if err != nil {
		return nil, err
	}
	return decodeList(items, decodeRegion)
}

func decodeRegion(v any) (Region, error) {
	name, err := requireString(v, "RegionName")
	if err != nil {
		return Region{}, err
	}
	id, err := requireInt64(v, "RegionID")
	if err != nil {
		return Region{}, err
	}

	parentVal, err := requireField(v, "ParentID")
	if err != nil {
		return Region{}, err
	}
	var parentID *int64
	if parentVal != nil {
		p, ok := asInt64(parentVal)
		if !ok {
			return Region{}, malformed("ParentID field is not null and not an integer")
		}
		parentID = &p
	}

	return Region{Name: name, ID: id, ParentID: parentID}, nil
}
