package weather

import "testing"

var knownCodes = []int{0, 1, 2, 3, 45, 48, 51, 53, 55, 61, 63, 65, 80, 81, 82, 95}

func TestDescribeKnownCodes(t *testing.T) {
	for _, code := range knownCodes {
		c := Describe(code)
		if c.Description == "" {
			t.Errorf("code %d: empty description", code)
		}
		if c.IconKey == "" {
			t.Errorf("code %d: empty icon key", code)
		}
		if c.Category == CategoryUnknown {
			t.Errorf("code %d: mapped to unknown category", code)
		}
	}
}

func TestDescribeUnknownCodes(t *testing.T) {
	for _, code := range []int{-1, 4, 42, 71, 100, 9999} {
		c := Describe(code)
		if c != defaultCondition {
			t.Errorf("code %d: expected default condition, got %+v", code, c)
		}
	}
}

func TestDescribeIdempotent(t *testing.T) {
	for _, code := range []int{0, 61, 95, 12345} {
		first := Describe(code)
		second := Describe(code)
		if first != second {
			t.Errorf("code %d: Describe is not idempotent: %+v vs %+v", code, first, second)
		}
	}
}
