package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"assethub.dev/pkg/assethub/internal/adapter"
	"assethub.dev/pkg/assethub/internal/domain/rules"
	m "assethub.dev/pkg/assethub/internal/model"
	"assethub.dev/pkg/assethub/pkg"
)

// ErrNoActivity is returned when a timeline finds no file it could analyze.
var ErrNoActivity = errors.New("no files found or analyzed")

const (
	kib = 1024
	mib = 1024 * kib

	maxFilenameConfidence = 0.6
	topProjectDates       = 5
)

// Date pattern names as written into FilenameDate.PatternType.
const (
	PatternArtDate       = "art_date"
	PatternDraftDate     = "draft_date"
	PatternVersionDate   = "version_date"
	PatternISODate       = "iso_date"
	PatternCompactDate   = "compact_date"
	PatternMonthYear     = "month_year"
	PatternMonthYearFull = "month_year_full"
)

type datePattern struct {
	name       string
	re         *regexp.Regexp
	confidence float64
}

// datePatterns are tried in this order; ties in confidence keep it.
var datePatterns = []datePattern{
	{PatternArtDate, regexp.MustCompile(`ART(?:M)?(\d{2})Y(\d{2})`), 0.4},
	{PatternDraftDate, regexp.MustCompile(`DRAFT\d+\s*(\d{2})(\d{2})(\d{2})`), 0.5},
	{PatternVersionDate, regexp.MustCompile(`(\d{2})[.-](\d{2})(?:[.-](\d{2,4}))?`), 0.3},
	{PatternISODate, regexp.MustCompile(`(\d{4})[.-](\d{1,2})[.-](\d{1,2})`), 0.4},
	{PatternCompactDate, regexp.MustCompile(`(\d{4})(\d{2})(\d{2})`), 0.3},
	{PatternMonthYear, regexp.MustCompile(`M(\d{2})Y(\d{2})`), 0.4},
	{PatternMonthYearFull, regexp.MustCompile(`(\d{2})(\d{4})`), 0.3},
}

var (
	sourceDesignExtensions = []string{".psd", ".ai", ".indd"}
	rasterExtensions       = []string{".png", ".jpg", ".jpeg"}
)

// TemporalAnalyzer derives work-activity signals from filenames and file timestamps.
type TemporalAnalyzer interface {
	// ExtractFilenameDates returns every date found in filename, most confident first.
	ExtractFilenameDates(filename string) []m.FilenameDate
	// BestProjectDate returns the most confident filename date, or nil.
	BestProjectDate(filename string) *m.FilenameDate
	AnalyzeFileActivity(ctx context.Context, path m.Path) (m.FileActivity, error)
	// AnalyzeDirectoryTimeline summarises every file below dir. The top most
	// active files are returned in TopFiles.
	AnalyzeDirectoryTimeline(ctx context.Context, dir m.Path, top int) (m.DirectoryTimeline, error)
}

// TemporalOption configures a TemporalAnalyzer.
type TemporalOption func(*temporalAnalyzer)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(now func() time.Time) TemporalOption {
	return func(a *temporalAnalyzer) { a.now = now }
}

// WithSpillDir sets where directory timelines spill per-file results.
func WithSpillDir(dir string) TemporalOption {
	return func(a *temporalAnalyzer) { a.spillDir = dir }
}

type temporalAnalyzer struct {
	adapter.AssetFSAdapter
	now      func() time.Time
	spillDir string
}

// NewTemporalAnalyzer creates a TemporalAnalyzer reading timestamps through fsAdapter.
func NewTemporalAnalyzer(fsAdapter adapter.AssetFSAdapter, opts ...TemporalOption) TemporalAnalyzer {
	a := &temporalAnalyzer{AssetFSAdapter: fsAdapter, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

func (a *temporalAnalyzer) ExtractFilenameDates(filename string) []m.FilenameDate {
	lower := strings.ToLower(filename)
	loc := a.now().Location()

	var dates []m.FilenameDate

	for _, pattern := range datePatterns {
		for _, idx := range pattern.re.FindAllStringSubmatchIndex(filename, -1) {
			groups := submatches(filename, idx)

			date, ok := a.parseDate(pattern.name, groups, loc)
			if !ok {
				slog.Debug("discarded filename date", "filename", filename, "match", filename[idx[0]:idx[1]], "pattern", pattern.name)
				continue
			}

			dates = append(dates, m.FilenameDate{
				Date:        date,
				PatternType: pattern.name,
				MatchText:   filename[idx[0]:idx[1]],
				Confidence:  filenameConfidence(pattern.confidence, lower),
				Position:    idx[0],
			})
		}
	}

	sort.SliceStable(dates, func(i, j int) bool {
		return dates[i].Confidence > dates[j].Confidence
	})

	return dates
}

func (a *temporalAnalyzer) BestProjectDate(filename string) *m.FilenameDate {
	dates := a.ExtractFilenameDates(filename)
	if len(dates) == 0 {
		return nil
	}

	best := dates[0]

	return &best
}

// submatches returns the capture groups of one match; unmatched groups are "".
func submatches(s string, idx []int) []string {
	groups := make([]string, 0, len(idx)/2-1)

	for i := 2; i+1 < len(idx); i += 2 {
		if idx[i] < 0 {
			groups = append(groups, "")
			continue
		}

		groups = append(groups, s[idx[i]:idx[i+1]])
	}

	return groups
}

func (a *temporalAnalyzer) parseDate(pattern string, groups []string, loc *time.Location) (time.Time, bool) {
	n := make([]int, len(groups))

	for i, g := range groups {
		if g == "" {
			continue
		}

		v, err := strconv.Atoi(g)
		if err != nil {
			return time.Time{}, false
		}

		n[i] = v
	}

	var year, month, day int

	switch pattern {
	case PatternArtDate, PatternMonthYear:
		year, month, day = 2000+n[1], n[0], 1
	case PatternDraftDate:
		year, month, day = 2000+n[0], n[1], n[2]
	case PatternVersionDate:
		switch {
		case groups[2] != "":
			year, month, day = n[2], n[0], n[1]
			if year < 100 {
				year += 2000
			}
		case n[1] > 12:
			// A second number above 12 cannot be a day of "MM-DD", so read "MM-YY".
			year, month, day = 2000+n[1], n[0], 1
		default:
			year, month, day = a.now().Year(), n[0], n[1]
		}
	case PatternISODate, PatternCompactDate:
		year, month, day = n[0], n[1], n[2]
	case PatternMonthYearFull:
		year, month, day = n[1], n[0], 1
	default:
		return time.Time{}, false
	}

	if !validDate(year, month, day) {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), true
}

// validDate rejects values time.Date would silently normalise.
func validDate(year, month, day int) bool {
	if year < 1 || year > 9999 || month < 1 || month > 12 || day < 1 {
		return false
	}

	daysInMonth := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()

	return day <= daysInMonth
}

func filenameConfidence(base float64, lowerName string) float64 {
	confidence := base

	if strings.Contains(lowerName, "draft") {
		confidence += 0.1
	}

	if strings.Contains(lowerName, "final") || strings.Contains(lowerName, "print ready") {
		confidence += 0.05
	}

	return math.Min(confidence, maxFilenameConfidence)
}

func (a *temporalAnalyzer) AnalyzeFileActivity(ctx context.Context, path m.Path) (m.FileActivity, error) {
	if err := ctx.Err(); err != nil {
		return m.FileActivity{}, err
	}

	info, err := a.FileInfo(path)
	if err != nil {
		return m.FileActivity{}, fmt.Errorf("stat %s: %w", path, err)
	}

	ts, err := a.FileTimes(path)
	if err != nil {
		return m.FileActivity{}, fmt.Errorf("read times of %s: %w", path, err)
	}

	name := filepath.Base(string(path))
	dates := a.ExtractFilenameDates(name)

	var best *m.FilenameDate
	if len(dates) > 0 {
		first := dates[0]
		best = &first
	}

	if dates == nil {
		dates = []m.FilenameDate{}
	}

	return m.FileActivity{
		Path:            string(path),
		Modified:        ts.Modified,
		Created:         ts.Created,
		Accessed:        ts.Accessed,
		FilenameDates:   dates,
		BestProjectDate: best,
		ActivityScore:   a.activityScore(string(path), info.Size(), ts.Modified, best),
		Size:            info.Size(),
		IsRecentWork:    a.isRecentWork(info.Size(), ts.Modified, best),
	}, nil
}

// daysSince counts whole days, flooring like a calendar difference.
func (a *temporalAnalyzer) daysSince(t time.Time) int {
	return int(math.Floor(a.now().Sub(t).Hours() / 24))
}

func (a *temporalAnalyzer) activityScore(path string, size int64, modified time.Time, best *m.FilenameDate) float64 {
	score := 0.0

	switch {
	case size > 50*mib:
		score += 0.4
	case size > 10*mib:
		score += 0.3
	case size > mib:
		score += 0.2
	case size > 100*kib:
		score += 0.1
	}

	switch days := a.daysSince(modified); {
	case days < 3:
		score += 0.4
	case days < 7:
		score += 0.3
	case days < 30:
		score += 0.2
	case days < 90:
		score += 0.1
	}

	ext := m.FileExtension(filepath.Base(path))

	switch {
	case rules.HasExtension(ext, sourceDesignExtensions):
		score += 0.3
	case ext == ".pdf":
		score += 0.2
	case rules.HasExtension(ext, rasterExtensions):
		score += 0.1
	}

	// Context cues only look at the file and its folder so share mount points
	// such as /home/bold do not leak into the score.
	lower := strings.ToLower(filepath.Join(filepath.Base(filepath.Dir(path)), filepath.Base(path)))

	switch {
	case strings.Contains(lower, "print ready") || strings.Contains(lower, "final"):
		score += 0.2
	case strings.Contains(lower, "draft") || strings.Contains(lower, "work in progress"):
		score += 0.15
	case strings.Contains(lower, "old") || strings.Contains(lower, "archive") || strings.Contains(lower, "backup"):
		score *= 0.5
	}

	if best != nil {
		score += 0.05 * best.Confidence
	}

	return math.Max(0, math.Min(score, 1.0))
}

func (a *temporalAnalyzer) isRecentWork(size int64, modified time.Time, best *m.FilenameDate) bool {
	days := a.daysSince(modified)

	switch {
	case size > 10*mib && days < 7:
		return true
	case size > mib && days < 3:
		return true
	case size > 100*kib && days < 1:
		return true
	}

	if best != nil && best.Confidence > 0.5 {
		return a.daysSince(best.Date) < 30 && days < 14 && size > 500*kib
	}

	return false
}

func (a *temporalAnalyzer) AnalyzeDirectoryTimeline(ctx context.Context, dir m.Path, top int) (m.DirectoryTimeline, error) {
	spill, err := pkg.NewFileSpill[m.FileActivity](a.spillDir)
	if err != nil {
		return m.DirectoryTimeline{}, fmt.Errorf("create spill: %w", err)
	}

	defer func() {
		if err := spill.Remove(); err != nil {
			slog.Warn("failed to remove spill", "path", spill.Path(), "error", err)
		}
	}()

	err = a.Walk(dir, func(path string, info os.FileInfo, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if path == string(dir) {
				return walkErr
			}

			slog.Warn("skipping unreadable entry", "path", path, "error", walkErr)

			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		activity, err := a.AnalyzeFileActivity(ctx, m.Path(path))
		if err != nil {
			slog.Warn("failed to analyze file", "path", path, "error", err)
			return nil
		}

		return spill.Append(activity)
	})
	if err != nil {
		return m.DirectoryTimeline{}, fmt.Errorf("walk %s: %w", dir, err)
	}

	if spill.Len() == 0 {
		return m.DirectoryTimeline{}, fmt.Errorf("%s: %w", dir, ErrNoActivity)
	}

	return summarizeTimeline(dir, spill, top)
}

func summarizeTimeline(dir m.Path, spill pkg.FileSpill[m.FileActivity], top int) (m.DirectoryTimeline, error) {
	timeline := m.DirectoryTimeline{
		Directory:  string(dir),
		TotalFiles: int(spill.Len()),
	}

	var (
		projectDates []m.FilenameDate
		topFiles     []m.FileActivity
	)

	err := spill.Range(func(_ uint64, activity m.FileActivity) error {
		if activity.IsRecentWork {
			timeline.RecentWorkFiles++
		}

		if activity.Modified.After(timeline.LatestActivity) {
			timeline.LatestActivity = activity.Modified
		}

		if activity.BestProjectDate != nil {
			projectDates = append(projectDates, *activity.BestProjectDate)
		}

		switch {
		case activity.ActivityScore > 0.7:
			timeline.Activity.High++
		case activity.ActivityScore > 0.3:
			timeline.Activity.Medium++
		default:
			timeline.Activity.Low++
		}

		if top > 0 {
			topFiles = insertTopFile(topFiles, activity, top)
		}

		return nil
	})
	if err != nil {
		return m.DirectoryTimeline{}, fmt.Errorf("read spill: %w", err)
	}

	sort.SliceStable(projectDates, func(i, j int) bool {
		if projectDates[i].Confidence != projectDates[j].Confidence {
			return projectDates[i].Confidence > projectDates[j].Confidence
		}

		return projectDates[i].Date.After(projectDates[j].Date)
	})

	for _, date := range projectDates {
		if timeline.EarliestProjectDate == nil || date.Date.Before(*timeline.EarliestProjectDate) {
			earliest := date.Date
			timeline.EarliestProjectDate = &earliest
		}
	}

	if len(projectDates) > topProjectDates {
		projectDates = projectDates[:topProjectDates]
	}

	timeline.BestProjectDates = projectDates
	if timeline.BestProjectDates == nil {
		timeline.BestProjectDates = []m.FilenameDate{}
	}

	timeline.TopFiles = topFiles

	return timeline, nil
}

// insertTopFile keeps files ordered by activity score, highest first, capped at limit.
func insertTopFile(files []m.FileActivity, activity m.FileActivity, limit int) []m.FileActivity {
	pos := sort.Search(len(files), func(i int) bool {
		return files[i].ActivityScore < activity.ActivityScore
	})

	if pos >= limit {
		return files
	}

	files = append(files, m.FileActivity{})
	copy(files[pos+1:], files[pos:])
	files[pos] = activity

	if len(files) > limit {
		files = files[:limit]
	}

	return files
}
