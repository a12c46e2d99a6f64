package structural

import (
	"sync"

	"github.com/Ofr3d/FADA/internal/domain/entity"
)

// Registry хранит послойные структурные snapshots, полученные от внешнего
// geometry/slicing коллаборатора. Реализует port.StructuralRegistry на
// прием и service.StructuralSource на чтение.
type Registry struct {
	mu        sync.RWMutex
	snapshots map[int]entity.StructuralSnapshot
}

// NewRegistry создает новый пустой registry
func NewRegistry() *Registry {
	return &Registry{
		snapshots: make(map[int]entity.StructuralSnapshot),
	}
}

// Register сохраняет snapshot для слоя
func (r *Registry) Register(layer int, snapshot entity.StructuralSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots[layer] = snapshot.Normalize()
}

// SnapshotForLayer возвращает snapshot слоя.
// Для слоя без данных возвращается пустой snapshot: отсутствие метаданных
// не срывает оценку риска.
func (r *Registry) SnapshotForLayer(layer int) entity.StructuralSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshots[layer]
}
