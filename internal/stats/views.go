// Package stats derives the read-only display values the report renders:
// per-login and per-day averages, ordered death causes, formatted durations.
// Nothing here mutates tracker state.
package stats

import (
	"sort"
	"time"

	"github.com/craftstats/mclogalyzer/internal/domain"
)

// Placeholder marks values with no meaningful figure, e.g. time per message
// for a player who never chatted.
const Placeholder = "-"

// DeathTypeCount is one cause with its tally, for ordered display.
type DeathTypeCount struct {
	Cause string
	Count int
}

// UserView exposes one user's statistics plus derived values.
type UserView struct {
	*domain.UserStats
}

// UserViews wraps a result slice for rendering, preserving order.
func UserViews(users []*domain.UserStats) []UserView {
	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, UserView{u})
	}
	return views
}

// OnlineTime renders the cumulative online time with a day prefix.
func (v UserView) OnlineTime() string {
	return FormatDuration(v.TotalOnlineTime, true, false)
}

// LongestSessionTime renders the longest closed session.
func (v UserView) LongestSessionTime() string {
	return FormatDuration(v.LongestSession, false, false)
}

// TimePerLogin is the average session length; zero when the user never
// logged in.
func (v UserView) TimePerLogin() string {
	var per time.Duration
	if v.Logins > 0 {
		per = v.TotalOnlineTime / time.Duration(v.Logins)
	}
	return FormatDuration(per, false, false)
}

// ActiveDayCount is the number of distinct calendar days with activity.
func (v UserView) ActiveDayCount() int {
	return len(v.ActiveDays)
}

// TimePerActiveDay is the average online time per active day.
func (v UserView) TimePerActiveDay() string {
	var per time.Duration
	if n := len(v.ActiveDays); n > 0 {
		per = v.TotalOnlineTime / time.Duration(n)
	}
	return FormatDuration(per, false, false)
}

// TimePerMessage is the average online time per chat message, or the
// placeholder for players who never wrote one.
func (v UserView) TimePerMessage() string {
	if v.Messages == 0 {
		return Placeholder
	}
	return FormatDuration(v.TotalOnlineTime/time.Duration(v.Messages), true, false)
}

// DeathTypeCounts lists causes ordered ascending by count, ties by cause
// name so rendering is stable.
func (v UserView) DeathTypeCounts() []DeathTypeCount {
	counts := make([]DeathTypeCount, 0, len(v.DeathTypes))
	for cause, count := range v.DeathTypes {
		counts = append(counts, DeathTypeCount{Cause: cause, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count < counts[j].Count
		}
		return counts[i].Cause < counts[j].Cause
	})
	return counts
}

// AchievementsSorted lists achievements lexicographically for display; the
// underlying slice keeps earned order.
func (v UserView) AchievementsSorted() []string {
	sorted := make([]string, len(v.Achievements))
	copy(sorted, v.Achievements)
	sort.Strings(sorted)
	return sorted
}

// FirstLoginTime renders the first login or the placeholder.
func (v UserView) FirstLoginTime() string {
	return formatTime(v.FirstLogin)
}

// LastLoginTime renders the last login or the placeholder.
func (v UserView) LastLoginTime() string {
	return formatTime(v.LastLogin)
}

// ServerView exposes the server-wide statistics for rendering.
type ServerView struct {
	*domain.ServerStats
}

// TimePlayed renders the summed player time, year-aware.
func (v ServerView) TimePlayed() string {
	return FormatDuration(v.TotalTimePlayed, true, true)
}

// Since renders the statistics-since date.
func (v ServerView) Since() string {
	return formatTime(v.StatisticsSince)
}

// MaxPlayersAt renders when the concurrency peak was reached.
func (v ServerView) MaxPlayersAt() string {
	return formatTime(v.MaxConcurrentPlayersAt)
}
