package domain

import "time"

// ServerStats holds the server-wide figures for one report run.
type ServerStats struct {
	// StatisticsSince is the caller-supplied cutoff, or the date of the
	// earliest log file when no cutoff was given.
	StatisticsSince time.Time

	// TotalTimePlayed sums every user's TotalOnlineTime. This double-counts
	// intervals where several players were online at once; it is the sum of
	// player time, not wall-clock server uptime. Kept that way so reports
	// stay comparable with earlier ones.
	TotalTimePlayed time.Duration

	// MaxConcurrentPlayers is the largest online-set size ever observed,
	// updated only when a login strictly exceeds the previous maximum.
	MaxConcurrentPlayers   int
	MaxConcurrentPlayersAt time.Time
}
