package sandbox

// regionRecord mirrors one element of the GetRegions payload
type regionRecord struct {
	RegionName string `json:"RegionName"`
	RegionID   int64  `json:"RegionID"`
	ParentID   *int64 `json:"ParentID"`
}

func parent(id int64) *int64 { return &id }

// regionTree is a trimmed copy of the production region list
var regionTree = []regionRecord{
	{RegionName: "All", RegionID: 0, ParentID: nil},
	{RegionName: "Europe", RegionID: 111, ParentID: parent(0)},
	{RegionName: "Australia and Oceania", RegionID: 138, ParentID: parent(0)},
	{RegionName: "CIS (except Russia)", RegionID: 166, ParentID: parent(0)},
	{RegionName: "Asia", RegionID: 183, ParentID: parent(0)},
	{RegionName: "Russia", RegionID: 225, ParentID: parent(0)},
	{RegionName: "Africa", RegionID: 241, ParentID: parent(0)},
	{RegionName: "Republic of Crimea", RegionID: 977, ParentID: parent(0)},
	{RegionName: "North America", RegionID: 10002, ParentID: parent(0)},
	{RegionName: "South America", RegionID: 10003, ParentID: parent(0)},
	{RegionName: "Moscow and Moscow region", RegionID: 1, ParentID: parent(225)},
	{RegionName: "Moscow", RegionID: 213, ParentID: parent(1)},
	{RegionName: "Saint Petersburg", RegionID: 2, ParentID: parent(225)},
	{RegionName: "Kazakhstan", RegionID: 159, ParentID: parent(166)},
	{RegionName: "Belarus", RegionID: 149, ParentID: parent(166)},
	{RegionName: "Germany", RegionID: 96, ParentID: parent(111)},
}

var knownRegions = func() map[int64]struct{} {
	m := make(map[int64]struct{}, len(regionTree))
	for _, r := range regionTree {
		m[r.RegionID] = struct{}{}
	}
	return m
}()
