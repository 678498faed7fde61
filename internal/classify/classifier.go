// Package classify turns raw server console lines into typed log events.
//
// Matching is order-sensitive and mutually exclusive: the first category
// whose marker phrase appears in the line wins, so a login line can never
// also count as a chat message. The calendar date comes from the log file's
// name; lines only carry a time of day.
package classify

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/craftstats/mclogalyzer/internal/domain"
)

// Marker phrases checked before any regex runs. Substring checks are cheap
// and reject the bulk of lines early.
const (
	markerLogin       = "logged in with entity id"
	markerLostConn    = "lost connection"
	markerKick        = "[INFO] CONSOLE: Kicked player"
	markerServerStop  = "[INFO] Stopping server"
	markerAchievement = "earned the achievement"
)

// DefaultChatPattern matches chat lines of the form "<prefix username> text".
// Servers with plugin-decorated chat prefixes need their own pattern; the
// username must be the second capture group.
const DefaultChatPattern = `\[Server thread/INFO\]: <([^>]* )?([^ ]*)>`

var (
	reLoginUsername = regexp.MustCompile(`\[Server thread/INFO\]: ([^]]+)\[`)
	// The server emits either a plain "name lost connection" line or a
	// GameProfile object with the name embedded; try the plain form first.
	reLogoutUsername        = regexp.MustCompile(`\[Server thread/INFO\]: ([^ ]+) lost connection`)
	reLogoutProfileUsername = regexp.MustCompile(`\[Server thread/INFO\]:.*GameProfile.*name='?([^ ,']+)'?.* lost connection`)
	reKickUsername          = regexp.MustCompile(`\[INFO\] CONSOLE: Kicked player ([^ ]*)`)
	reAchievement           = regexp.MustCompile(`\[Server thread/INFO\]: ([^ ]+) has just earned the achievement \[(.*)\]`)
)

// size of the sanitized-username memo; a server sees a few hundred distinct
// names per season while the same names repeat across millions of lines.
const usernameCacheSize = 512

// Options configures a Classifier.
type Options struct {
	// ChatPattern overrides DefaultChatPattern.
	ChatPattern string
	// Logger receives extraction warnings; defaults to slog.Default().
	Logger *slog.Logger
}

// Classifier classifies single log lines. Safe for sequential reuse across
// files; not safe for concurrent use.
type Classifier struct {
	chat  *regexp.Regexp
	names *lru.Cache[string, string]
	log   *slog.Logger
}

// New builds a Classifier. An invalid chat pattern is a configuration error.
func New(opts Options) (*Classifier, error) {
	pattern := opts.ChatPattern
	if pattern == "" {
		pattern = DefaultChatPattern
	}
	chat, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid chat pattern %q: %w", pattern, err)
	}
	if chat.NumSubexp() < 2 {
		return nil, fmt.Errorf("invalid chat pattern %q: the username must be the second capture group", pattern)
	}

	names, err := lru.New[string, string](usernameCacheSize)
	if err != nil {
		return nil, fmt.Errorf("username cache: %w", err)
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Classifier{chat: chat, names: names, log: log}, nil
}

// Classify maps one log line to an event. day supplies the calendar date the
// line belongs to; a line whose time of day fails to parse is unrecognized
// regardless of category.
func (c *Classifier) Classify(day time.Time, line string) domain.LogEvent {
	switch {
	case strings.Contains(line, markerLogin):
		return c.classifyLogin(day, line)
	case strings.Contains(line, markerLostConn), strings.Contains(line, markerKick):
		return c.classifyLogout(day, line)
	case strings.Contains(line, markerServerStop):
		ts, ok := c.lineTime(day, line)
		if !ok {
			return domain.Unrecognized
		}
		return domain.LogEvent{Type: domain.EventServerStop, Timestamp: ts}
	case strings.Contains(line, markerAchievement):
		return c.classifyAchievement(line)
	}

	if ev, ok := c.classifyDeath(line); ok {
		return ev
	}
	if m := c.chat.FindStringSubmatch(line); m != nil {
		username := c.sanitize(m[2])
		if username == "" {
			return domain.Unrecognized
		}
		return domain.LogEvent{Type: domain.EventChatMessage, Username: username}
	}
	return domain.Unrecognized
}

func (c *Classifier) classifyLogin(day time.Time, line string) domain.LogEvent {
	ts, ok := c.lineTime(day, line)
	if !ok {
		return domain.Unrecognized
	}
	m := reLoginUsername.FindStringSubmatch(line)
	if m == nil {
		c.log.Warn("unable to find login username", "line", line)
		return domain.Unrecognized
	}
	username := c.sanitize(m[1])
	if username == "" {
		return domain.Unrecognized
	}
	return domain.LogEvent{Type: domain.EventLogin, Username: username, Timestamp: ts}
}

func (c *Classifier) classifyLogout(day time.Time, line string) domain.LogEvent {
	ts, ok := c.lineTime(day, line)
	if !ok {
		return domain.Unrecognized
	}

	var username string
	if strings.Contains(line, markerLostConn) {
		m := reLogoutUsername.FindStringSubmatch(line)
		if m == nil {
			m = reLogoutProfileUsername.FindStringSubmatch(line)
		}
		if m == nil {
			c.log.Warn("unable to find logout username", "line", line)
			return domain.Unrecognized
		}
		username = c.sanitize(m[1])
	} else {
		m := reKickUsername.FindStringSubmatch(line)
		if m == nil {
			c.log.Warn("unable to find kicked username", "line", line)
			return domain.Unrecognized
		}
		// The console kick format carries one trailing punctuation mark on
		// the name.
		name := m[1]
		if len(name) > 0 {
			name = name[:len(name)-1]
		}
		username = c.sanitize(name)
	}

	// Names starting with "/" are IP placeholders for connections that were
	// dropped before authenticating; they never map to a player.
	if username == "" || strings.HasPrefix(username, "/") {
		return domain.Unrecognized
	}
	return domain.LogEvent{Type: domain.EventLogout, Username: username, Timestamp: ts}
}

func (c *Classifier) classifyAchievement(line string) domain.LogEvent {
	m := reAchievement.FindStringSubmatch(line)
	if m == nil {
		c.log.Warn("unable to find achievement username or title", "line", line)
		return domain.Unrecognized
	}
	username := c.sanitize(m[1])
	if username == "" {
		return domain.Unrecognized
	}
	return domain.LogEvent{Type: domain.EventAchievement, Username: username, Achievement: m[2]}
}

func (c *Classifier) classifyDeath(line string) (domain.LogEvent, bool) {
	for _, re := range deathPatterns {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		username := c.sanitize(m[1])
		if username == "" {
			return domain.Unrecognized, true
		}
		return domain.LogEvent{
			Type:       domain.EventDeath,
			Username:   username,
			DeathCause: capitalizeFirst(m[2]),
		}, true
	}
	return domain.Unrecognized, false
}

// lineTime reconstructs the full timestamp from the file date and the
// leading "[HH:MM:SS]" token of the line.
func (c *Classifier) lineTime(day time.Time, line string) (time.Time, bool) {
	token, _, _ := strings.Cut(line, " ")
	t, err := time.Parse("[15:04:05]", token)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, time.Local), true
}

func capitalizeFirst(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
