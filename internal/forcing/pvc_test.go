package forcing

import (
	"math"
	"testing"
)

func TestViscosityBranches(t *testing.T) {
	p := Params{KMin: 5, KMax: 10, V0: 1, VRatio: 2}
	kNorm := [][]float64{{0, 3, 4.999, 5, 7, 10, 10.001, 20}}

	veff := Viscosity(kNorm, p)

	want := []float64{1, 1, 1, -2, -2, -2, 10, 10}
	for j, w := range want {
		if math.Abs(veff[0][j]-w) > 1e-12 {
			t.Errorf("k=%g: expected veff %g, got %g", kNorm[0][j], w, veff[0][j])
		}
	}
}

func TestViscosityScaling(t *testing.T) {
	p := Params{KMin: 2, KMax: 4, V0: 0.5, VRatio: 3}
	kNorm := [][]float64{{1, 3, 8}}

	veff := Viscosity(kNorm, p)

	if veff[0][0] != 0.5 {
		t.Errorf("below the band: expected V0, got %g", veff[0][0])
	}
	if veff[0][1] != -1.5 {
		t.Errorf("inside the band: expected -VRatio*V0, got %g", veff[0][1])
	}
	if veff[0][2] != 5 {
		t.Errorf("above the band: expected 10*V0, got %g", veff[0][2])
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		p       Params
		wantErr bool
	}{
		{"valid", Params{KMin: 5, KMax: 10, V0: 1, VRatio: 2}, false},
		{"zero v0", Params{KMin: 5, KMax: 10, V0: 0, VRatio: 2}, true},
		{"negative ratio", Params{KMin: 5, KMax: 10, V0: 1, VRatio: -1}, true},
		{"inverted band", Params{KMin: 10, KMax: 5, V0: 1, VRatio: 2}, true},
		{"empty band", Params{KMin: 5, KMax: 5, V0: 1, VRatio: 2}, true},
		{"zero kmin", Params{KMin: 0, KMax: 10, V0: 1, VRatio: 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
