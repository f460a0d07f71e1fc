package omath

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func TestFloorMod(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{a: 5, b: 3, want: 2},
		{a: -1, b: 4, want: 3},
		{a: 240, b: 120, want: 0},
		{a: 0, b: 120, want: 0},
	}
	for _, tt := range tests {
		if got := FloorMod(tt.a, tt.b); got != tt.want {
			t.Fatalf("FloorMod(%v, %v): expected %v, got %v", tt.a, tt.b, tt.want, got)
		}
	}
}

func TestSmoothstep(t *testing.T) {
	if v := Smoothstep(0, 1, -1); v != 0 {
		t.Fatalf("expected 0 below edge0, got %v", v)
	}
	if v := Smoothstep(0, 1, 2); v != 1 {
		t.Fatalf("expected 1 above edge1, got %v", v)
	}
	if v := Smoothstep(0, 1, 0.5); v != 0.5 {
		t.Fatalf("expected 0.5 at midpoint, got %v", v)
	}
}

func TestSafeNormalize(t *testing.T) {
	fallback := mgl32.Vec3{0, 0, -1}
	if v := SafeNormalize(mgl32.Vec3{}, fallback); v != fallback {
		t.Fatalf("expected fallback for zero vector, got %v", v)
	}
	if v := SafeNormalize(mgl32.Vec3{3, 0, 4}, fallback); !Vec3ApproxEq(v, mgl32.Vec3{0.6, 0, 0.8}) {
		t.Fatalf("unexpected normalized vector %v", v)
	}
}

func TestPerspectiveDepthModes(t *testing.T) {
	near, far := float32(0.1), float32(100)
	project := func(m mgl32.Mat4, z float32) float32 {
		clip := m.Mul4x1(mgl32.Vec4{0, 0, z, 1})
		return clip[2] / clip[3]
	}

	zo := Perspective(math32.Pi/3, 16.0/9.0, near, far, DepthZeroToOne)
	if d := project(zo, -near); math32.Abs(d) > 1e-4 {
		t.Fatalf("zero-to-one: expected near plane at 0, got %v", d)
	}
	if d := project(zo, -far); math32.Abs(d-1) > 1e-4 {
		t.Fatalf("zero-to-one: expected far plane at 1, got %v", d)
	}

	no := Perspective(math32.Pi/3, 16.0/9.0, near, far, DepthNegOneToOne)
	if d := project(no, -near); math32.Abs(d+1) > 1e-4 {
		t.Fatalf("neg-one-to-one: expected near plane at -1, got %v", d)
	}
	if d := project(no, -far); math32.Abs(d-1) > 1e-4 {
		t.Fatalf("neg-one-to-one: expected far plane at 1, got %v", d)
	}
}

func TestYawPitchQuat(t *testing.T) {
	if v := YawPitchQuat(0, 0).Rotate(Forward); !Vec3ApproxEq(v, Forward) {
		t.Fatalf("expected identity orientation to look down -Z, got %v", v)
	}
	if v := YawPitchQuat(math32.Pi/2, 0).Rotate(Forward); !Vec3ApproxEq(v, mgl32.Vec3{1, 0, 0}) {
		t.Fatalf("expected positive yaw to turn towards +X, got %v", v)
	}
	if v := YawPitchQuat(0, 0.5).Rotate(Forward); v.Y() <= 0 {
		t.Fatalf("expected positive pitch to look up, got %v", v)
	}
}

func TestStatistics(t *testing.T) {
	data := []float64{1, 2, 3, 4}
	if m := Mean(data); m != 2.5 {
		t.Fatalf("expected mean 2.5, got %v", m)
	}
	if m := Max(data); m != 4 {
		t.Fatalf("expected max 4, got %v", m)
	}
	if v := Variance(data); v != 1.25 {
		t.Fatalf("expected variance 1.25, got %v", v)
	}
	if m := Mean([]float32{}); m != 0 {
		t.Fatalf("expected 0 for empty data, got %v", m)
	}
}
