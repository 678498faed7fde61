package analyzer

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftstats/mclogalyzer/internal/classify"
	"github.com/craftstats/mclogalyzer/internal/domain"
)

func writeLog(t *testing.T, dir, name string, lines ...string) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(strings.Join(lines, "\n") + "\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
}

func newService(t *testing.T, opts Options) Service {
	t.Helper()
	classifier, err := classify.New(classify.Options{})
	require.NoError(t, err)
	return NewService(classifier, opts)
}

func analyze(t *testing.T, dir string, opts Options) *Result {
	t.Helper()
	res, err := newService(t, opts).Analyze(context.Background(), dir)
	require.NoError(t, err)
	return res
}

func login(clock, name string) string {
	return "[" + clock + "] [Server thread/INFO]: " + name + "[/1.2.3.4:5] logged in with entity id 1"
}

func logout(clock, name string) string {
	return "[" + clock + "] [Server thread/INFO]: " + name + " lost connection: Disconnected"
}

func findUser(t *testing.T, res *Result, name string) *domain.UserStats {
	t.Helper()
	for _, u := range res.Users {
		if u.Username == name {
			return u
		}
	}
	t.Fatalf("user %s not in result", name)
	return nil
}

func TestAnalyze_SingleSession(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "2020-01-01-0.log.gz",
		login("10:00:00", "Alice"),
		logout("10:30:00", "Alice"),
	)

	res := analyze(t, dir, Options{})

	require.Len(t, res.Users, 1)
	alice := res.Users[0]
	assert.Equal(t, "Alice", alice.Username)
	assert.Equal(t, 1, alice.Logins)
	assert.Equal(t, 30*time.Minute, alice.TotalOnlineTime)
	assert.Equal(t, 30*time.Minute, alice.LongestSession)
	assert.Equal(t, 30*time.Minute, res.Server.TotalTimePlayed)
	assert.Equal(t,
		time.Date(2020, time.January, 1, 0, 0, 0, 0, time.Local),
		res.Server.StatisticsSince, "defaults to the earliest file's date")
}

func TestAnalyze_OpenSessionContributesNothing(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "2020-01-01-0.log.gz",
		login("10:00:00", "Alice"),
	)

	res := analyze(t, dir, Options{})

	alice := findUser(t, res, "Alice")
	assert.Equal(t, 1, alice.Logins)
	assert.Zero(t, alice.TotalOnlineTime, "only a logout or stop closes a session")
}

func TestAnalyze_ServerStopClosesAllSessions(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "2020-01-01-0.log.gz",
		login("10:00:00", "Alice"),
		login("10:10:00", "Bob"),
		"[11:00:00] [INFO] Stopping server",
		// After the restart the online set must be empty, so Carol's login
		// may not inherit Alice or Bob toward the concurrency peak.
		login("12:00:00", "Carol"),
	)

	res := analyze(t, dir, Options{})

	assert.Equal(t, time.Hour, findUser(t, res, "Alice").TotalOnlineTime)
	assert.Equal(t, 50*time.Minute, findUser(t, res, "Bob").TotalOnlineTime)
	assert.Equal(t, 2, res.Server.MaxConcurrentPlayers)
	assert.Equal(t,
		time.Date(2020, time.January, 1, 10, 10, 0, 0, time.Local),
		res.Server.MaxConcurrentPlayersAt)
}

func TestAnalyze_PeakConcurrency(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "2020-01-01-0.log.gz",
		login("10:00:00", "Alice"),
		login("10:05:00", "Bob"),
		logout("10:10:00", "Alice"),
		login("10:15:00", "Carol"),
		login("10:20:00", "Dave"),  // peak of 3 first reached here
		login("10:25:00", "Alice"), // 4 online now
		logout("10:30:00", "Alice"),
		logout("10:31:00", "Bob"),
		logout("10:32:00", "Carol"),
		logout("10:33:00", "Dave"),
	)

	res := analyze(t, dir, Options{})

	assert.Equal(t, 4, res.Server.MaxConcurrentPlayers)
	assert.Equal(t,
		time.Date(2020, time.January, 1, 10, 25, 0, 0, time.Local),
		res.Server.MaxConcurrentPlayersAt,
		"peak timestamp is the login that first reached the maximum")
}

func TestAnalyze_Cutoff(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "2020-01-01-0.log.gz",
		login("10:00:00", "Alice"),
		logout("11:00:00", "Alice"),
	)
	writeLog(t, dir, "2020-01-02-0.log.gz",
		login("10:00:00", "Alice"),
		logout("10:30:00", "Alice"),
	)

	cutoff := time.Date(2020, time.January, 2, 0, 0, 0, 0, time.Local)
	res := analyze(t, dir, Options{Cutoff: cutoff})

	alice := findUser(t, res, "Alice")
	assert.Equal(t, 1, alice.Logins, "day-one events fall before the cutoff")
	assert.Equal(t, 30*time.Minute, alice.TotalOnlineTime)
	assert.Equal(t, cutoff, res.Server.StatisticsSince)

	t.Run("monotonicity", func(t *testing.T) {
		unfiltered := analyze(t, dir, Options{})
		assert.GreaterOrEqual(t,
			findUser(t, unfiltered, "Alice").Logins, alice.Logins)
		assert.GreaterOrEqual(t,
			findUser(t, unfiltered, "Alice").TotalOnlineTime, alice.TotalOnlineTime)
	})
}

func TestAnalyze_CutoffDoesNotFilterUntimestampedEvents(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "2020-01-02-0.log.gz",
		login("10:00:00", "Alice"),
		"[10:05:00] [Server thread/INFO]: Alice drowned",
		"[10:06:00] [Server thread/INFO]: Alice has just earned the achievement [The End?]",
		"[10:07:00] [Server thread/INFO]: <Alice> hello",
		logout("10:30:00", "Alice"),
	)

	// Cutoff before everything in the file; deaths, achievements and chat
	// carry no timestamp so the tracker existence check alone gates them.
	res := analyze(t, dir, Options{Cutoff: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.Local)})

	alice := findUser(t, res, "Alice")
	assert.Equal(t, 1, alice.DeathCount)
	assert.Equal(t, 1, alice.AchievementCount)
	assert.Equal(t, 1, alice.Messages)
}

func TestAnalyze_Whitelist(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "2020-01-01-0.log.gz",
		login("10:00:00", "Alice"),
		login("10:05:00", "Mallory"),
		logout("10:30:00", "Alice"),
		logout("10:35:00", "Mallory"),
	)

	res := analyze(t, dir, Options{Whitelist: []string{"Alice", "Silent"}})

	require.Len(t, res.Users, 2, "every whitelist name appears exactly once")
	alice := findUser(t, res, "Alice")
	assert.Equal(t, 30*time.Minute, alice.TotalOnlineTime)

	silent := findUser(t, res, "Silent")
	assert.Zero(t, silent.Logins, "whitelisted but absent from logs")
	assert.Zero(t, silent.TotalOnlineTime)

	assert.Equal(t, 1, res.Server.MaxConcurrentPlayers,
		"non-whitelisted logins never enter the online set")
}

func TestAnalyze_UnknownChatUserIgnored(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "2020-01-01-0.log.gz",
		login("10:00:00", "Alice"),
		"[10:05:00] [Server thread/INFO]: <Bob> hello",
		logout("10:30:00", "Alice"),
	)

	res := analyze(t, dir, Options{})

	require.Len(t, res.Users, 1, "chat lines never create a tracker")
	assert.Zero(t, findUser(t, res, "Alice").Messages)
}

func TestAnalyze_AchievementScenario(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "2020-01-01-0.log.gz",
		login("10:00:00", "Alice"),
		"[10:05:00] [Server thread/INFO]: Alice has just earned the achievement [The End?]",
	)

	res := analyze(t, dir, Options{})

	alice := findUser(t, res, "Alice")
	assert.Equal(t, 1, alice.AchievementCount)
	assert.Equal(t, []string{"The End?"}, alice.Achievements)
}

func TestAnalyze_KickClosesSession(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "2020-01-01-0.log.gz",
		login("10:00:00", "Alice"),
		"[10:20:00] [INFO] CONSOLE: Kicked player Alice.",
	)

	res := analyze(t, dir, Options{})
	assert.Equal(t, 20*time.Minute, findUser(t, res, "Alice").TotalOnlineTime)
}

func TestAnalyze_SortsByOnlineTimeDescending(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "2020-01-01-0.log.gz",
		login("10:00:00", "Short"),
		logout("10:10:00", "Short"),
		login("11:00:00", "Long"),
		logout("12:00:00", "Long"),
	)

	res := analyze(t, dir, Options{})

	require.Len(t, res.Users, 2)
	assert.Equal(t, "Long", res.Users[0].Username)
	assert.Equal(t, "Short", res.Users[1].Username)
}

func TestAnalyze_SkipsUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "2020-01-01-0.log.gz",
		login("10:00:00", "Alice"),
		logout("10:30:00", "Alice"),
	)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "latest.log"), []byte(login("11:00:00", "Ghost")+"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "crash-2020-01-01.txt"), []byte("boom"), 0o644))

	res := analyze(t, dir, Options{})

	require.Len(t, res.Users, 1)
	assert.Equal(t, "Alice", res.Users[0].Username)
}

func TestAnalyze_EmptyDirectory(t *testing.T) {
	res := analyze(t, t.TempDir(), Options{})

	assert.Empty(t, res.Users)
	assert.True(t, res.Server.StatisticsSince.IsZero())
	assert.Zero(t, res.Server.TotalTimePlayed)
}

func TestAnalyze_MissingDirectoryFails(t *testing.T) {
	_, err := newService(t, Options{}).Analyze(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrMsgLogDirUnreadable)
}

func TestAnalyze_CorruptArchiveFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2020-01-01-0.log.gz"), []byte("not gzip"), 0o644))

	_, err := newService(t, Options{}).Analyze(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrMsgLogFileCorrupt)
}

func TestAnalyze_OverlongLineSkipped(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "2020-01-01-0.log.gz",
		login("10:00:00", "Alice"),
		"[10:10:00] [Server thread/INFO]: "+strings.Repeat("x", maxLineBytes+16),
		logout("10:30:00", "Alice"),
	)

	res := analyze(t, dir, Options{})

	alice := findUser(t, res, "Alice")
	assert.Equal(t, 30*time.Minute, alice.TotalOnlineTime,
		"lines after the oversized one are still processed")
}

func TestAnalyze_Idempotent(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "2020-01-01-0.log.gz",
		login("10:00:00", "Alice"),
		login("10:00:00", "Bob"),
		logout("11:00:00", "Alice"),
		logout("12:00:00", "Bob"),
		"[12:05:00] [Server thread/INFO]: <Alice> bye",
	)

	first := analyze(t, dir, Options{})
	second := analyze(t, dir, Options{})

	assert.Equal(t, first, second)
}

func TestAnalyze_FilesProcessedInChronologicalOrder(t *testing.T) {
	dir := t.TempDir()
	// Session spans a log rotation: login in one file, logout in the next.
	writeLog(t, dir, "2020-01-02-0.log.gz",
		logout("00:30:00", "Alice"),
	)
	writeLog(t, dir, "2020-01-01-0.log.gz",
		login("23:30:00", "Alice"),
	)

	res := analyze(t, dir, Options{})
	assert.Equal(t, time.Hour, findUser(t, res, "Alice").TotalOnlineTime)
}
