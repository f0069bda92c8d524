package results

import (
	"fmt"
	"math"
)

const (
	// NoGap marks entries without a meaningful gap to the leader.
	NoGap = "-"
	// ZeroTime is the rendering of a non-positive or absent race time.
	ZeroTime = "00:00.000"
)

// FormatRaceTime renders a duration in seconds as MM:SS.mmm.
// Non-positive durations render as ZeroTime. Gap formatting uses the
// distinct NoGap marker instead; the two must not be conflated.
func FormatRaceTime(seconds float64) string {
	if seconds <= 0 {
		return ZeroTime
	}
	minutes := int(seconds / 60)
	rem := seconds - float64(minutes*60)
	whole := int(rem)
	millis := int(math.Round((rem - float64(whole)) * 1000))
	if millis == 1000 {
		// rounding may spill over into the next second
		millis = 0
		whole++
		if whole == 60 {
			whole = 0
			minutes++
		}
	}
	return fmt.Sprintf("%02d:%02d.%03d", minutes, whole, millis)
}

// points by finishing position, 1-indexed
var pointsTable = []int{25, 18, 15, 12, 10, 8, 6, 4, 2, 1}

// PointsForPosition returns the points awarded for a finishing position.
// Positions beyond 10 (and missing positions) score zero. The table is
// applied regardless of retirement status.
func PointsForPosition(position int) int {
	if position < 1 || position > len(pointsTable) {
		return 0
	}
	return pointsTable[position-1]
}
