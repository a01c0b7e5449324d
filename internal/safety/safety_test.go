package safety

import "testing"

func TestDepthGuardAllowsWithinLimit(t *testing.T) {
	g := NewDepthGuardWithLimit(3)
	for i := 0; i < 3; i++ {
		if !g.Enter() {
			t.Fatalf("Enter() failed within limit at iteration %d", i)
		}
	}
	g.Exit()
	g.Exit()
	g.Exit()
}

func TestDepthGuardTripsPastLimit(t *testing.T) {
	g := NewDepthGuardWithLimit(2)
	if !g.Enter() {
		t.Fatal("Enter() 1 should succeed")
	}
	if !g.Enter() {
		t.Fatal("Enter() 2 should succeed")
	}
	if g.Enter() {
		t.Fatal("Enter() 3 should fail past the limit")
	}
	g.Exit()
	g.Exit()
	g.Exit()
}

func TestCheckInputSize(t *testing.T) {
	if err := CheckInputSize(make([]byte, MaxJSONInputSize)); err != nil {
		t.Errorf("CheckInputSize at exactly the limit: %v", err)
	}
	if err := CheckInputSize(make([]byte, MaxJSONInputSize+1)); err == nil {
		t.Error("CheckInputSize one byte over the limit: want error, got nil")
	}
}

func TestParseArrayIndex(t *testing.T) {
	cases := []struct {
		token   string
		wantIdx int
		wantOK  bool
	}{
		{"0", 0, true},
		{"42", 42, true},
		{"-1", 0, false},
		{"", 0, false},
		{"abc", 0, false},
		{"99999999999999999999", 0, false},
	}
	for _, tc := range cases {
		idx, ok := ParseArrayIndex(tc.token)
		if ok != tc.wantOK || (ok && idx != tc.wantIdx) {
			t.Errorf("ParseArrayIndex(%q) = (%d, %v), want (%d, %v)", tc.token, idx, ok, tc.wantIdx, tc.wantOK)
		}
	}
}
