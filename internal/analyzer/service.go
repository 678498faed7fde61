// Package analyzer replays a directory of rotated server logs and builds
// per-player and server-wide statistics.
//
// Files are processed strictly in lexicographic (= chronological) order and
// lines strictly in file order; session accounting depends on that causal
// ordering. A run either completes or fails outright: an unreadable
// directory or a corrupt archive aborts the whole run, while individual
// unparseable lines are skipped.
package analyzer

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/craftstats/mclogalyzer/internal/classify"
	"github.com/craftstats/mclogalyzer/internal/domain"
	"github.com/craftstats/mclogalyzer/internal/logger"
	"github.com/craftstats/mclogalyzer/internal/metrics"
)

// Options configures one analyzer run.
type Options struct {
	// Cutoff discards timestamped events (login, logout, server stop) that
	// happened before it. Zero means no cutoff. Untimestamped events
	// (achievement, death, chat) are never filtered.
	Cutoff time.Time
	// Whitelist restricts tracked players to these names; nil tracks
	// everyone. Whitelisted names never seen in the logs still appear in
	// the result with all-zero stats.
	Whitelist []string
}

// Result is the outcome of one run: users sorted by descending online time
// plus the server-wide totals.
type Result struct {
	Users  []*domain.UserStats
	Server *domain.ServerStats
}

// Service defines the interface for log aggregation
type Service interface {
	Analyze(ctx context.Context, logDir string) (*Result, error)
}

// run bundles the mutable replay state: the tracker map and the set of
// players currently believed online. Scoped to one Analyze call so nothing
// leaks between runs.
type run struct {
	users  map[string]*domain.UserStats
	online map[string]struct{}
	server *domain.ServerStats
}

type service struct {
	classifier *classify.Classifier
	cutoff     time.Time
	whitelist  map[string]struct{}
	names      []string // whitelist in input order, for the backfill pass
}

// NewService creates a new analyzer service
func NewService(classifier *classify.Classifier, opts Options) Service {
	s := &service{
		classifier: classifier,
		cutoff:     opts.Cutoff,
	}
	if opts.Whitelist != nil {
		s.whitelist = make(map[string]struct{}, len(opts.Whitelist))
		for _, name := range opts.Whitelist {
			s.whitelist[name] = struct{}{}
		}
		s.names = opts.Whitelist
	}
	return s
}

// Analyze replays every matching log file under logDir and returns the
// aggregated statistics.
func (s *service) Analyze(ctx context.Context, logDir string) (*Result, error) {
	log := logger.FromContext(ctx)

	entries, err := os.ReadDir(logDir)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", domain.ErrMsgLogDirUnreadable, logDir, err)
	}

	r := &run{
		users:  make(map[string]*domain.UserStats),
		online: make(map[string]struct{}),
		server: &domain.ServerStats{},
	}

	var firstDate time.Time
	for _, entry := range entries {
		name := entry.Name()
		day, ok := logFileDate(name)
		if !ok {
			log.Debug("skipping non-log file", "file", name)
			continue
		}
		if firstDate.IsZero() {
			firstDate = day
		}

		log.Info("parsing log file", "file", name, "date", day.Format("2006-01-02"))
		if err := s.parseFile(ctx, filepath.Join(logDir, name), day, r); err != nil {
			return nil, err
		}
	}

	return s.finalize(r, firstDate), nil
}

// logFilePattern matches rotated archives named YYYY-MM-DD-N.log.gz.
// Anything else in the directory (latest.log, crash reports) is skipped.
var logFilePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-\d+\.log\.gz$`)

// logFileDate extracts the calendar date from a rotated log file name.
func logFileDate(name string) (time.Time, bool) {
	if !logFilePattern.MatchString(name) {
		return time.Time{}, false
	}
	day, err := time.ParseInLocation("2006-01-02", name[:10], time.Local)
	if err != nil {
		// Pattern-shaped but impossible date, e.g. month 13.
		return time.Time{}, false
	}
	return day, true
}

func (s *service) parseFile(ctx context.Context, path string, day time.Time, r *run) error {
	log := logger.FromContext(ctx)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("%s %s: %w", domain.ErrMsgLogFileCorrupt, path, err)
	}
	defer gz.Close()

	reader := bufio.NewReader(gz)
	for {
		line, truncated, err := readLine(reader)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s %s: %w", domain.ErrMsgLogFileCorrupt, path, err)
		}

		metrics.LinesProcessed.Inc()
		if truncated {
			log.Warn("skipping overlong log line", "file", path, "limit", maxLineBytes)
			continue
		}
		s.dispatch(r, s.classifier.Classify(day, strings.TrimRight(line, " \t\r")))
	}
}

// readLine returns the next line of r. A line longer than maxLineBytes is
// reported as truncated and the remainder is discarded, so one oversized
// line (a plugin stack trace dumped without newlines) cannot abort the run.
func readLine(r *bufio.Reader) (line string, truncated bool, err error) {
	var buf []byte
	for {
		frag, isPrefix, err := r.ReadLine()
		if err != nil {
			return string(buf), truncated, err
		}
		if !truncated {
			if len(buf)+len(frag) > maxLineBytes {
				truncated = true
				frag = frag[:maxLineBytes-len(buf)]
			}
			buf = append(buf, frag...)
		}
		if !isPrefix {
			return string(buf), truncated, nil
		}
	}
}

// dispatch applies one classified event to the replay state.
func (s *service) dispatch(r *run, ev domain.LogEvent) {
	switch ev.Type {
	case domain.EventLogin:
		if s.beforeCutoff(ev.Timestamp) {
			return
		}
		if s.whitelist != nil {
			if _, ok := s.whitelist[ev.Username]; !ok {
				return
			}
		}
		user, ok := r.users[ev.Username]
		if !ok {
			user = domain.NewUserStats(ev.Username)
			r.users[ev.Username] = user
		}
		user.Login(ev.Timestamp)

		r.online[ev.Username] = struct{}{}
		if len(r.online) > r.server.MaxConcurrentPlayers {
			r.server.MaxConcurrentPlayers = len(r.online)
			r.server.MaxConcurrentPlayersAt = ev.Timestamp
		}

	case domain.EventLogout:
		if s.beforeCutoff(ev.Timestamp) {
			return
		}
		// No tracker means the login was never accepted (cutoff, whitelist,
		// or a connection that never authenticated); nothing to close.
		user, ok := r.users[ev.Username]
		if !ok {
			return
		}
		user.Logout(ev.Timestamp)
		delete(r.online, ev.Username)

	case domain.EventServerStop:
		if s.beforeCutoff(ev.Timestamp) {
			return
		}
		// The server dropped everyone without per-player logout lines.
		for _, user := range r.users {
			user.CloseSession(ev.Timestamp)
		}
		clear(r.online)

	case domain.EventAchievement:
		if user, ok := r.users[ev.Username]; ok {
			user.RecordAchievement(ev.Achievement)
		}

	case domain.EventDeath:
		if user, ok := r.users[ev.Username]; ok {
			user.RecordDeath(ev.DeathCause)
		}

	case domain.EventChatMessage:
		// Chat lines are not proof of a login; unknown names are dropped
		// rather than creating a tracker.
		if user, ok := r.users[ev.Username]; ok {
			user.RecordMessage()
		}

	case domain.EventUnrecognized:
		return
	}

	metrics.EventsDispatched.WithLabelValues(string(ev.Type)).Inc()
}

func (s *service) beforeCutoff(ts time.Time) bool {
	return !s.cutoff.IsZero() && ts.Before(s.cutoff)
}

// finalize backfills silent whitelist entries, orders the users and computes
// the server totals.
func (s *service) finalize(r *run, firstDate time.Time) *Result {
	for _, name := range s.names {
		if _, ok := r.users[name]; !ok {
			r.users[name] = domain.NewUserStats(name)
		}
	}

	users := make([]*domain.UserStats, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	// Descending online time; ties broken by name so runs over identical
	// input produce identical output.
	sort.Slice(users, func(i, j int) bool {
		if users[i].TotalOnlineTime != users[j].TotalOnlineTime {
			return users[i].TotalOnlineTime > users[j].TotalOnlineTime
		}
		return users[i].Username < users[j].Username
	})

	r.server.StatisticsSince = s.cutoff
	if r.server.StatisticsSince.IsZero() {
		r.server.StatisticsSince = firstDate
	}
	for _, user := range users {
		r.server.TotalTimePlayed += user.TotalOnlineTime
	}

	return &Result{Users: users, Server: r.server}
}
