package ecourts

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseComplexCode(t *testing.T) {
	testCases := []struct {
		code     string
		expected ComplexCode
	}{
		{
			code: "101@12,34@Y",
			expected: ComplexCode{
				ID:       "101",
				EstCodes: []string{"12", "34"},
				Flag:     "Y",
			},
		},
		{
			code:     "101",
			expected: ComplexCode{ID: "101"},
		},
		{
			code: "7@22",
			expected: ComplexCode{
				ID:       "7",
				EstCodes: []string{"22"},
			},
		},
		{
			// blank establishment segments are dropped, flag survives
			code: "7@ , 22 @N",
			expected: ComplexCode{
				ID:       "7",
				EstCodes: []string{"22"},
				Flag:     "N",
			},
		},
		{
			code:     "",
			expected: ComplexCode{},
		},
	}

	for _, test := range testCases {
		got := ParseComplexCode(test.code)
		if diff := cmp.Diff(test.expected, got); diff != "" {
			t.Fatalf("ParseComplexCode(%q) mismatch (-want +got):\n%s", test.code, diff)
		}
	}
}
