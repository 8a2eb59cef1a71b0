package redis

import "fmt"

// Key prefix for all leaderboard data
const keyPrefix = "minerace"

// winsKey returns the key of the sorted set ranking names by win count
func winsKey() string {
	return fmt.Sprintf("%s:leaderboard:wins", keyPrefix)
}

// statsKey returns the key of the per-name stats hash
func statsKey(name string) string {
	return fmt.Sprintf("%s:leaderboard:stats:%s", keyPrefix, name)
}
