package normals

import "sort"

// keyToVariable translates report placeholders into reference table variables.
var keyToVariable = map[string]string{
	"LVedv":     "LVEDV (ml)",
	"LVedvbsa":  "LVEDVi (ml/m2)",
	"LVmass":    "LVM diast (g)",
	"LVmassbsa": "LVMi diast (g/m2)",
	"LVEF":      "LVEF (%)",
	"RVedv":     "RVEDV (ml)",
	"RVedvbsa":  "RVEDVi (ml/m2)",
	"RVEF":      "RVEF (%)",
	"LA":        "LAESV (ml)",
	"LAbsa":     "LAESVi (ml/m2)",
	"RA":        "RAESV (ml)",
	"RAbsa":     "RAESVi (ml/m2)",
}

// VariableFor returns the reference variable behind a semantic key.
func VariableFor(key string) (string, bool) {
	v, ok := keyToVariable[key]
	return v, ok
}

// Keys returns the semantic keys that have a reference variable, sorted.
func Keys() []string {
	keys := make([]string, 0, len(keyToVariable))
	for k := range keyToVariable {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
