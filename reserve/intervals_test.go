// White-box tests for the interval storage primitives.
package reserve

import (
	"errors"
	"testing"

	"github.com/katalvlaran/trackway/core"
)

func TestIntervalSet_PlaceRejectsOverlap(t *testing.T) {
	is := newIntervalSet()
	if err := is.place(10, 20, "s1"); err != nil {
		t.Fatalf("place: %v", err)
	}
	if err := is.place(30, 40, "s2"); err != nil {
		t.Fatalf("place: %v", err)
	}

	cases := []struct {
		name      string
		low, high int64
	}{
		{"InsideExisting", 12, 18},
		{"OverlapLowSide", 5, 11},
		{"OverlapHighSide", 19, 25},
		{"Spanning", 0, 50},
		{"ExactDuplicate", 10, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := is.place(tc.low, tc.high, "s3"); !errors.Is(err, ErrIntervalConflict) {
				t.Errorf("place(%d,%d) error = %v; want ErrIntervalConflict", tc.low, tc.high, err)
			}
		})
	}

	// Touching is not overlapping.
	if err := is.place(20, 30, "s3"); err != nil {
		t.Fatalf("place touching span: %v", err)
	}
}

func TestIntervalSet_CoalescesSameSnake(t *testing.T) {
	is := newIntervalSet()
	for _, span := range [][2]int64{{10, 20}, {20, 30}, {40, 50}, {30, 40}} {
		if err := is.place(span[0], span[1], "s1"); err != nil {
			t.Fatalf("place(%v): %v", span, err)
		}
	}
	got := is.snapshot()
	if len(got) != 1 || got[0] != (Interval{Low: 10, High: 50, Snake: "s1"}) {
		t.Fatalf("snapshot = %v; want one coalesced [10,50)", got)
	}

	// Different owners never coalesce.
	if err := is.place(50, 60, "s2"); err != nil {
		t.Fatalf("place: %v", err)
	}
	if got = is.snapshot(); len(got) != 2 {
		t.Fatalf("snapshot = %v; want two intervals", got)
	}
}

func TestIntervalSet_ReleaseSplitsInterior(t *testing.T) {
	is := newIntervalSet()
	if err := is.place(10, 50, "s1"); err != nil {
		t.Fatalf("place: %v", err)
	}
	if err := is.release(20, 30, "s1"); err != nil {
		t.Fatalf("release: %v", err)
	}
	got := is.snapshot()
	want := []Interval{{Low: 10, High: 20, Snake: "s1"}, {Low: 30, High: 50, Snake: "s1"}}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("snapshot = %v; want %v", got, want)
	}

	// Releasing someone else's span is a bookkeeping bug.
	if err := is.release(30, 40, "s2"); err == nil {
		t.Fatalf("release of foreign span must fail")
	}
}

func TestIntervalSet_GapToward(t *testing.T) {
	is := newIntervalSet()
	if err := is.place(20, 40, "s1"); err != nil {
		t.Fatalf("place: %v", err)
	}
	if err := is.place(60, 80, "s2"); err != nil {
		t.Fatalf("place: %v", err)
	}

	cases := []struct {
		name  string
		from  int64
		dir   core.Sign
		limit int64
		want  int64
	}{
		{"UpToNext", 40, +1, 100, 20},
		{"UpLimited", 40, +1, 5, 5},
		{"UpFromInside", 25, +1, 100, 0},
		{"UpUnobstructed", 80, +1, 20, 20},
		{"DownToPrev", 60, -1, 100, 20},
		{"DownLimited", 60, -1, 7, 7},
		{"DownFromInside", 35, -1, 100, 0},
		{"DownUnobstructed", 20, -1, 100, 20},
		{"ZeroLimit", 40, +1, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := is.gapToward(tc.from, tc.dir, tc.limit); got != tc.want {
				t.Errorf("gapToward(%d,%d,%d) = %d; want %d", tc.from, tc.dir, tc.limit, got, tc.want)
			}
		})
	}
}
