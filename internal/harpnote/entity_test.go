package harpnote

import "testing"

func TestNewOriginValidatesRange(t *testing.T) {
	if _, err := NewOrigin(5, 2, "x"); err == nil {
		t.Fatal("expected error for startChar > endChar")
	}
	o, err := NewOrigin(2, 5, "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.StartChar != 2 || o.EndChar != 5 {
		t.Fatalf("unexpected origin: %+v", o)
	}
}

func TestZnIDIsStableAcrossCalls(t *testing.T) {
	a := ZnID(4, 10)
	b := ZnID(4, 10)
	if a != b {
		t.Fatalf("expected stable znid, got %q and %q", a, b)
	}
	if ZnID(4, 11) == a {
		t.Fatal("znid should differ when time differs")
	}
}

func TestNormalizeDurationClampsToNearestBucket(t *testing.T) {
	cases := map[int]int{
		0:   1,
		5:   4,
		7:   6,
		100: 64,
		200: 64,
	}
	for in, want := range cases {
		if got := NormalizeDuration(in); got != want {
			t.Errorf("NormalizeDuration(%d) = %d, want %d", in, got, want)
		}
	}
}
