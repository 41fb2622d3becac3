package utils

import (
	"math"
	"testing"
)

func TestNormalizeL2(t *testing.T) {
	v := []float32{3, 4}
	NormalizeL2(v)
	if math.Abs(float64(v[0])-0.6) > 1e-6 || math.Abs(float64(v[1])-0.8) > 1e-6 {
		t.Errorf("got %v", v)
	}
}

func TestNormalizeL2_zero(t *testing.T) {
	v := []float32{0, 0, 0}
	NormalizeL2(v)
	for i, x := range v {
		if x != 0 {
			t.Errorf("index %d changed: %v", i, x)
		}
	}
}

func TestNewLogger(t *testing.T) {
	for _, debug := range []bool{true, false} {
		logger, err := NewLogger(debug)
		if err != nil {
			t.Fatalf("NewLogger(%t) error: %v", debug, err)
		}
		if logger == nil {
			t.Fatalf("NewLogger(%t) returned nil", debug)
		}
		_ = logger.Sync()
	}
}
