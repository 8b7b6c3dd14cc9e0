package dynamo

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewStore_Empty(t *testing.T) {
	_, err := NewStore(nil)
	if !errors.Is(err, ErrBodyCount) {
		t.Errorf("expected ErrBodyCount, got %v", err)
	}
}

func TestNewStore_Copies(t *testing.T) {
	src := []Body{NewBody(mgl64.Vec3{1, 2, 3}, 0.5, ColorSkin(0xff0000))}
	s, err := NewStore(src)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	src[0].Position = mgl64.Vec3{}
	if s.At(0).Position != (mgl64.Vec3{1, 2, 3}) {
		t.Error("store shares memory with caller slice")
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 body, got %d", s.Len())
	}
}

func TestBody_Radius(t *testing.T) {
	b := NewBody(mgl64.Vec3{}, 0.7, TextureSkin(2))
	if math.Abs(b.Radius()-0.7*UnitRadius) > 1e-12 {
		t.Errorf("expected radius %.2f, got %.2f", 0.7*UnitRadius, b.Radius())
	}
	if !b.Skin.Textured() {
		t.Error("texture skin reported as untextured")
	}
}

func TestStore_Validate(t *testing.T) {
	tests := []struct {
		name  string
		pos   mgl64.Vec3
		valid bool
	}{
		{"finite", mgl64.Vec3{1, 2, 3}, true},
		{"zeros", mgl64.Vec3{}, true},
		{"with NaN", mgl64.Vec3{math.NaN(), 0, 0}, false},
		{"with +Inf", mgl64.Vec3{0, math.Inf(1), 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := NewStore([]Body{NewBody(mgl64.Vec3{}, 1, ColorSkin(0)), NewBody(tt.pos, 1, ColorSkin(0))})
			err := s.Validate()
			if tt.valid && err != nil {
				t.Errorf("expected valid store, got %v", err)
			}
			if !tt.valid {
				var be *BodyError
				if !errors.As(err, &be) || be.Index != 1 {
					t.Errorf("expected BodyError for index 1, got %v", err)
				}
				if !errors.Is(err, ErrInvalidState) {
					t.Error("BodyError does not unwrap to ErrInvalidState")
				}
			}
		})
	}
}

func TestRandomUnit(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		v := RandomUnit(rng)
		if math.Abs(v.Len()-1) > 1e-9 {
			t.Fatalf("expected unit length, got %v", v.Len())
		}
	}
}

func TestDirection_Degenerate(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	d := Direction(mgl64.Vec3{}, rng)
	if !IsFinite(d) || math.Abs(d.Len()-1) > 1e-9 {
		t.Errorf("expected random unit vector, got %v", d)
	}

	d = Direction(mgl64.Vec3{0, 0, 4}, rng)
	if d != (mgl64.Vec3{0, 0, 1}) {
		t.Errorf("expected +z, got %v", d)
	}
}

func TestClampLength(t *testing.T) {
	tests := []struct {
		in   mgl64.Vec3
		max  float64
		want float64
	}{
		{mgl64.Vec3{3, 4, 0}, 1, 1},
		{mgl64.Vec3{0.1, 0, 0}, 1, 0.1},
		{mgl64.Vec3{}, 1, 0},
	}

	for _, tt := range tests {
		if got := ClampLength(tt.in, tt.max).Len(); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("ClampLength(%v, %v) length = %v, want %v", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestJitter_Range(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		v := Jitter(rng, 0.01)
		for _, c := range v {
			if c < -0.01 || c >= 0.01 {
				t.Fatalf("component %v outside [-0.01, 0.01)", c)
			}
		}
	}
}
