package entity

import "time"

// VisualSignal представляет сигнал внешнего визуального коллаборатора.
// Ядро не делает предположений о его реализации: только confidence и
// список обнаруженных паттернов.
type VisualSignal struct {
	Confidence float64
	Patterns   []string
	ReportedAt time.Time
}

// Normalize клампит confidence к [0,1]
func (v VisualSignal) Normalize() VisualSignal {
	if v.Confidence < 0 {
		v.Confidence = 0
	}
	if v.Confidence > 1 {
		v.Confidence = 1
	}
	return v
}
