package port

import "github.com/Ofr3d/FADA/internal/domain/entity"

// StructuralRegistry принимает послойные структурные snapshots от внешнего
// geometry/slicing коллаборатора (Port)
type StructuralRegistry interface {
	// Register сохраняет snapshot для слоя
	Register(layer int, snapshot entity.StructuralSnapshot)
}

// VisualRegistry принимает сигналы внешнего визуального коллаборатора (Port)
type VisualRegistry interface {
	// Push сохраняет последний визуальный сигнал
	Push(signal entity.VisualSignal)
}
