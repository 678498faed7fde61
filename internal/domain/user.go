package domain

import "time"

// Day identifies one calendar day. Used as the set key for active-day
// tracking so that a session spanning midnight counts both days.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf returns the calendar day of the given timestamp.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Day: d}
}

// UserStats accumulates one player's statistics over a single report run.
// It is a two-state session machine: offline (no open session) and online
// (sessionStart set). All mutation goes through the methods below; the
// aggregator owns the only reference.
type UserStats struct {
	Username string

	Logins   int
	Messages int

	DeathCount int
	DeathTypes map[string]int

	AchievementCount int
	Achievements     []string // append order = earned order

	ActiveDays map[Day]struct{}

	TotalOnlineTime time.Duration
	LongestSession  time.Duration

	FirstLogin time.Time // zero until the first login is seen
	LastLogin  time.Time

	sessionStart time.Time // zero while offline
}

// NewUserStats returns an all-zero stats record for the given username.
func NewUserStats(username string) *UserStats {
	return &UserStats{
		Username:   username,
		DeathTypes: make(map[string]int),
		ActiveDays: make(map[Day]struct{}),
	}
}

// Online reports whether the user currently has an open session.
func (u *UserStats) Online() bool {
	return !u.sessionStart.IsZero()
}

// Login opens a session at ts. A login while already online restarts the
// open session; the earlier part is discarded, matching the server's own
// behavior when it drops a ghost connection without a logout line.
func (u *UserStats) Login(ts time.Time) {
	u.ActiveDays[DayOf(ts)] = struct{}{}
	u.Logins++
	u.LastLogin = ts
	u.sessionStart = ts
	if u.FirstLogin.IsZero() {
		u.FirstLogin = ts
	}
}

// Logout records the active day for ts and closes the open session, if any.
// A logout with no open session still counts the day: the player was online
// for at least that moment even if the matching login fell outside the logs.
func (u *UserStats) Logout(ts time.Time) {
	u.ActiveDays[DayOf(ts)] = struct{}{}
	u.CloseSession(ts)
}

// CloseSession ends the open session at ts and adds its duration to the
// totals. It is a no-op while offline. TotalOnlineTime only ever grows here,
// so an unmatched trailing login contributes nothing.
func (u *UserStats) CloseSession(ts time.Time) {
	if u.sessionStart.IsZero() {
		return
	}
	session := ts.Sub(u.sessionStart)
	u.TotalOnlineTime += session
	if session > u.LongestSession {
		u.LongestSession = session
	}
	u.sessionStart = time.Time{}
}

// RecordDeath tallies one death with the given cause.
func (u *UserStats) RecordDeath(cause string) {
	u.DeathCount++
	u.DeathTypes[cause]++
}

// RecordAchievement appends one earned achievement.
func (u *UserStats) RecordAchievement(name string) {
	u.AchievementCount++
	u.Achievements = append(u.Achievements, name)
}

// RecordMessage tallies one chat message.
func (u *UserStats) RecordMessage() {
	u.Messages++
}
