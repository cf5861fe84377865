package models

import "testing"

func TestNewElementSampleRejectsBadDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 4}, {4, 0}, {-1, 4}, {4, -3}} {
		if _, err := NewElementSample(dims[0], dims[1]); err == nil {
			t.Errorf("NewElementSample(%d, %d) should fail", dims[0], dims[1])
		}
	}
}

func TestElementSampleChannelAccess(t *testing.T) {
	s, err := NewElementSample(3, 2)
	if err != nil {
		t.Fatalf("NewElementSample: %v", err)
	}
	s.SetChannel(2, 1, ChFe, 42)
	if got := s.At(2, 1)[ChFe]; got != 42 {
		t.Errorf("Fe at (2,1) = %v, want 42", got)
	}
	if got := s.At(0, 0)[ChFe]; got != 0 {
		t.Errorf("Fe at (0,0) = %v, want 0", got)
	}
}

func TestPhaseMapDefaultsToPore(t *testing.T) {
	m, err := NewPhaseMap(4, 4)
	if err != nil {
		t.Fatalf("NewPhaseMap: %v", err)
	}
	for i, p := range m.Cells {
		if p != Pore {
			t.Fatalf("cell %d = %v, want Pore", i, p)
		}
	}
}

func TestPhaseMapCloneIsIndependent(t *testing.T) {
	m, _ := NewPhaseMap(2, 2)
	m.Set(0, 0, C3S)

	c := m.Clone()
	c.Set(0, 0, C2S)
	if m.At(0, 0) != C3S {
		t.Error("mutating the clone changed the original")
	}
}

func TestPhaseMapCopyFromSizeMismatch(t *testing.T) {
	a, _ := NewPhaseMap(2, 2)
	b, _ := NewPhaseMap(3, 2)
	if err := a.CopyFrom(b); err == nil {
		t.Error("CopyFrom with mismatched sizes should fail")
	}
}

func TestPhaseMapCount(t *testing.T) {
	m, _ := NewPhaseMap(3, 3)
	m.Set(0, 0, Gypsum)
	m.Set(1, 1, Gypsum)
	m.Set(2, 2, C3A)
	if got := m.Count(Gypsum); got != 2 {
		t.Errorf("Count(Gypsum) = %d, want 2", got)
	}
	if got := m.Count(Pore); got != 6 {
		t.Errorf("Count(Pore) = %d, want 6", got)
	}
}
