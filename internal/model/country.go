package model

// Country is one normalized entry of the country directory.
// Values are never mutated after the loader builds them.
type Country struct {
	Name       string `json:"name"`
	Population int64  `json:"population"`
	Region     string `json:"region"`
	Capital    string `json:"capital"`
	Flag       string `json:"flag"`
	Code       string `json:"code"`
}

// Fallbacks used when the provider omits a field.
const (
	UnknownName     = "Unknown"
	UnknownRegion   = "Unknown"
	UnknownCapital  = "N/A"
	PlaceholderFlag = "/placeholder.svg"
)

// RegionAll disables the region restriction.
const RegionAll = "all"

// Regions lists the selectable region filters, RegionAll first.
var Regions = []string{RegionAll, "Africa", "Americas", "Asia", "Europe", "Oceania"}

// ValidRegion reports whether r is one of Regions.
func ValidRegion(r string) bool {
	for _, x := range Regions {
		if x == r {
			return true
		}
	}
	return false
}

// RegionLabel is the human label of a region filter value.
func RegionLabel(r string) string {
	if r == RegionAll {
		return "Filter by Region"
	}
	return r
}
