package typing

import "testing"

func TestSignatureEquals(t *testing.T) {
	a := Signature{Return: Int, Params: []CXType{Int, Double}}

	tests := []struct {
		other Signature
		want  bool
	}{
		{Signature{Return: Int, Params: []CXType{Int, Double}}, true},
		{Signature{Return: Bool, Params: []CXType{Int, Double}}, false},
		{Signature{Return: Int, Params: []CXType{Double, Int}}, false},
		{Signature{Return: Int, Params: []CXType{Int}}, false},
	}

	for _, tt := range tests {
		if got := a.Equals(tt.other); got != tt.want {
			t.Errorf("%s == %s: got %v, want %v", a, tt.other, got, tt.want)
		}
	}
}

func TestTypeNames(t *testing.T) {
	if Int.String() != "int" || Bool.String() != "bool" || Double.String() != "double" {
		t.Fatalf("unexpected type names: %s %s %s", Int, Bool, Double)
	}

	if Error.IsValid() || !Double.IsValid() {
		t.Fatalf("unexpected validity for Error/Double")
	}

	if got := (Signature{Return: Bool, Params: []CXType{Int, Int}}).String(); got != "(int, int) -> bool" {
		t.Fatalf("unexpected signature string: %s", got)
	}
}
