package gitops

import (
	"fmt"
	"sort"
	"time"
)

// NextVersion computes the YY.M.index release tag following tags at the given
// time. The index increments only when the latest tag shares both year and
// month; any rollover resets it to zero. Tags that do not parse as three
// numeric components are skipped.
func NextVersion(tags []string, now time.Time) string {
	year := now.Year() % 100
	month := int(now.Month())

	index := 0
	if latest, ok := latestVersion(tags); ok && latest[0] == year && latest[1] == month {
		index = latest[2] + 1
	}
	return fmt.Sprintf("%d.%d.%d", year, month, index)
}

// latestVersion returns the numerically greatest year/month/index triple
// among tags. Numeric, not lexicographic: 9.1.0 sorts before 10.1.0.
func latestVersion(tags []string) ([3]int, bool) {
	var versions [][3]int
	for _, tag := range tags {
		var v [3]int
		if n, err := fmt.Sscanf(tag, "%d.%d.%d", &v[0], &v[1], &v[2]); err != nil || n != 3 {
			continue
		}
		versions = append(versions, v)
	}
	if len(versions) == 0 {
		return [3]int{}, false
	}
	sort.Slice(versions, func(i, j int) bool {
		a, b := versions[i], versions[j]
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		if a[1] != b[1] {
			return a[1] < b[1]
		}
		return a[2] < b[2]
	})
	return versions[len(versions)-1], true
}
