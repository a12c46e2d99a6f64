package valueobject

// Grade представляет итоговую оценку качества печати (Value Object)
type Grade string

const (
	GradeCritical  Grade = "Critical"
	GradePoor      Grade = "Poor"
	GradeFair      Grade = "Fair"
	GradeGood      Grade = "Good"
	GradeExcellent Grade = "Excellent"
)

// GradeForScore возвращает оценку для итогового балла [0,100].
// Границы полузакрытые: score >= 90 это Excellent, score == 89.999 это Good.
func GradeForScore(score float64) Grade {
	switch {
	case score >= 90:
		return GradeExcellent
	case score >= 80:
		return GradeGood
	case score >= 70:
		return GradeFair
	case score >= 60:
		return GradePoor
	default:
		return GradeCritical
	}
}

// String возвращает строковое представление оценки
func (g Grade) String() string {
	return string(g)
}
