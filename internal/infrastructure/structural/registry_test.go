package structural

import (
	"testing"

	"github.com/Ofr3d/FADA/internal/domain/entity"
)

func TestRegistry_RegisterAndRead(t *testing.T) {
	registry := NewRegistry()

	registry.Register(5, entity.StructuralSnapshot{OverhangCount: 4, SolidInfillFrac: -0.5})

	snapshot := registry.SnapshotForLayer(5)
	if snapshot.OverhangCount != 4 {
		t.Errorf("OverhangCount = %d, want 4", snapshot.OverhangCount)
	}
	if snapshot.SolidInfillFrac != 0 {
		t.Errorf("SolidInfillFrac = %v, want clamp to 0", snapshot.SolidInfillFrac)
	}
}

func TestRegistry_UnknownLayerIsEmpty(t *testing.T) {
	registry := NewRegistry()

	if snapshot := registry.SnapshotForLayer(42); !snapshot.IsEmpty() {
		t.Errorf("SnapshotForLayer(42) = %+v, want empty snapshot", snapshot)
	}
}
