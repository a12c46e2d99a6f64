package visual

import (
	"testing"

	"github.com/Ofr3d/FADA/internal/domain/entity"
)

func TestRegistry_PushAndRead(t *testing.T) {
	registry := NewRegistry()

	if signal := registry.LatestSignal(); signal.Confidence != 0 {
		t.Errorf("initial Confidence = %v, want 0", signal.Confidence)
	}

	registry.Push(entity.VisualSignal{Confidence: 1.5, Patterns: []string{"layer_shift"}})

	signal := registry.LatestSignal()
	if signal.Confidence != 1 {
		t.Errorf("Confidence = %v, want clamp to 1", signal.Confidence)
	}
	if len(signal.Patterns) != 1 || signal.Patterns[0] != "layer_shift" {
		t.Errorf("Patterns = %v, want [layer_shift]", signal.Patterns)
	}
}

func TestStubSource_LatestSignal(t *testing.T) {
	stub := StubSource{Signal: entity.VisualSignal{Confidence: 0.4}}

	if got := stub.LatestSignal().Confidence; got != 0.4 {
		t.Errorf("Confidence = %v, want 0.4", got)
	}
}
