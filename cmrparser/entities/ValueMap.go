package entities

// Semantic keys of the extracted values.
const (
	KeyLVEDV     = "LVedv"
	KeyLVEDVBSA  = "LVedvbsa"
	KeyLVMass    = "LVmass"
	KeyLVMassBSA = "LVmassbsa"
	KeyLVEF      = "LVEF"
	KeyRVEDV     = "RVedv"
	KeyRVEDVBSA  = "RVedvbsa"
	KeyRVEF      = "RVEF"
	KeyLA        = "LA"
	KeyLABSA     = "LAbsa"
	KeyRA        = "RA"
	KeyRABSA     = "RAbsa"
	KeyT1Native  = "T1_native"
	KeyECV       = "ECV"
	KeyT2        = "T2"
)

// ValueMap holds extracted values by semantic key. Keys that were not found are absent.
type ValueMap map[string]string

// Get returns the value for key or the empty string.
func (v ValueMap) Get(key string) string {
	return v[key]
}

// Extraction is the outcome of parsing one report.
type Extraction struct {
	Values   ValueMap `json:"values"`
	LV       *Table   `json:"lv,omitempty"`
	RV       *Table   `json:"rv,omitempty"`
	Sections []string `json:"sections"`
}
