package catalogue

// GoldRange is the per-grade victory gold draw.
type GoldRange struct {
	Min int
	Max int
}

// ExpByGrade is the base EXP for defeating a monster of a grade.
// Bosses pay triple.
var ExpByGrade = map[string]int64{
	"E": 15, "D": 35, "C": 70, "B": 150, "A": 300, "S": 600,
}

// GoldByGrade is the victory gold range per grade. Boss draws are
// uniform in [2*Min, 3*Max].
var GoldByGrade = map[string]GoldRange{
	"E": {10, 25},
	"D": {30, 60},
	"C": {70, 120},
	"B": {150, 250},
	"A": {300, 500},
	"S": {600, 1000},
}

// CRRange bounds the challenge rating of monsters drawn for a grade.
type CRRange struct {
	Min float64
	Max float64
}

// GradeCR maps overworld grades to challenge rating bands.
var GradeCR = map[string]CRRange{
	"E": {0, 0.5},
	"D": {1, 2},
	"C": {3, 5},
	"B": {6, 9},
	"A": {10, 15},
	"S": {16, 24},
}

// GradeForCR maps a challenge rating back to a grade letter.
func GradeForCR(cr float64) string {
	switch {
	case cr <= 0.5:
		return "E"
	case cr <= 2:
		return "D"
	case cr <= 5:
		return "C"
	case cr <= 10:
		return "B"
	case cr <= 17:
		return "A"
	default:
		return "S"
	}
}

// FloorCR returns the challenge rating band for a dungeon floor.
func FloorCR(floor int) CRRange {
	switch {
	case floor <= 20:
		return CRRange{0, 2}
	case floor <= 40:
		return CRRange{1, 5}
	case floor <= 60:
		return CRRange{4, 9}
	case floor <= 80:
		return CRRange{8, 14}
	default:
		return CRRange{13, 30}
	}
}
