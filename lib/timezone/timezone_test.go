package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDay(t *testing.T) {
	cases := []struct {
		now    time.Time
		expect time.Time
	}{
		{
			now:    time.Date(2024, time.June, 10, 14, 30, 59, 12, Location),
			expect: time.Date(2024, time.June, 10, 0, 0, 0, 0, Location),
		},
		{
			now:    time.Date(2024, time.June, 10, 0, 0, 0, 0, Location),
			expect: time.Date(2024, time.June, 10, 0, 0, 0, 0, Location),
		},
		{
			// 10 june 01:00 UTC is already 06:30 on the 10th in IST
			now:    time.Date(2024, time.June, 10, 1, 0, 0, 0, time.UTC),
			expect: time.Date(2024, time.June, 10, 0, 0, 0, 0, Location),
		},
		{
			// 9 june 20:00 UTC rolls over to the 10th in IST
			now:    time.Date(2024, time.June, 9, 20, 0, 0, 0, time.UTC),
			expect: time.Date(2024, time.June, 10, 0, 0, 0, 0, Location),
		},
	}

	for _, test := range cases {
		require.Equal(t, test.expect, Day(test.now))
	}
}
