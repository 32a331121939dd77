package recipe

import (
	"os"
	"time"
)

// FileCondition returns the canonical file-staleness predicate: true iff
// any target is missing, or the newest modification time among sources is
// strictly newer than the oldest modification time among targets.
//
// A single stale target among many forces a rebuild even if the other
// targets are fresh. Sources that do not exist are ignored when comparing
// modification times: a recipe whose sources were all removed reports
// fresh as long as its targets are present.
func FileCondition(sources, targets []string) Condition {
	return func() bool {
		var oldestTarget time.Time
		for i, target := range targets {
			info, err := os.Stat(target)
			if err != nil {
				// Missing (or unreadable) target: always stale.
				return true
			}
			if i == 0 || info.ModTime().Before(oldestTarget) {
				oldestTarget = info.ModTime()
			}
		}
		if len(targets) == 0 {
			return false
		}

		var newestSource time.Time
		for _, source := range sources {
			info, err := os.Stat(source)
			if err != nil {
				continue
			}
			if info.ModTime().After(newestSource) {
				newestSource = info.ModTime()
			}
		}
		return newestSource.After(oldestTarget)
	}
}
