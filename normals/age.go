package normals

// Age bracket column labels, exactly as they appear in the reference tables.
const (
	Bracket18to29 = "18- 29"
	Bracket30to39 = "30- 39"
	Bracket40to49 = "40- 49"
	Bracket50to59 = "50- 59"
	Bracket60to69 = "60- 69"
	Bracket70Plus = "70+"
)

// AgeColumns lists the age brackets from youngest to oldest.
var AgeColumns = []string{
	Bracket18to29,
	Bracket30to39,
	Bracket40to49,
	Bracket50to59,
	Bracket60to69,
	Bracket70Plus,
}

// BracketFor maps an age to its reference column. The tables start at 18, so
// younger patients are compared with the 18-29 bracket.
func BracketFor(age int) string {
	switch {
	case age < 30:
		return Bracket18to29
	case age < 40:
		return Bracket30to39
	case age < 50:
		return Bracket40to49
	case age < 60:
		return Bracket50to59
	case age < 70:
		return Bracket60to69
	default:
		return Bracket70Plus
	}
}
