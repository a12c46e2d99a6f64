package entity

// StructuralSnapshot представляет структурные метаданные риска для одного
// слоя. Поставляется внешним slicing/geometry коллаборатором; ядро
// рассматривает его как read-only факт.
type StructuralSnapshot struct {
	OverhangCount      int
	BridgeCount        int
	SmallFeatureCount  int
	SolidInfillFrac    float64
	HasSupportMaterial bool
}

// Normalize клампит доли к допустимым диапазонам
func (s StructuralSnapshot) Normalize() StructuralSnapshot {
	if s.SolidInfillFrac < 0 {
		s.SolidInfillFrac = 0
	}
	if s.SolidInfillFrac > 1 {
		s.SolidInfillFrac = 1
	}
	if s.OverhangCount < 0 {
		s.OverhangCount = 0
	}
	if s.BridgeCount < 0 {
		s.BridgeCount = 0
	}
	if s.SmallFeatureCount < 0 {
		s.SmallFeatureCount = 0
	}
	return s
}

// IsEmpty проверяет, что snapshot не содержит ни одного структурного признака
func (s StructuralSnapshot) IsEmpty() bool {
	return s.OverhangCount == 0 &&
		s.BridgeCount == 0 &&
		s.SmallFeatureCount == 0 &&
		s.SolidInfillFrac == 0 &&
		!s.HasSupportMaterial
}
