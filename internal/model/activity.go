package model

import "time"

// FilenameDate is a date recognised inside a filename.
type FilenameDate struct {
	Date        time.Time `json:"date"`
	PatternType string    `json:"pattern_type"`
	MatchText   string    `json:"match_text"`
	// Confidence is in [0, 0.6]: filename dates mark project versions, not work activity.
	Confidence float64 `json:"confidence"`
	Position   int     `json:"position"`
}

// FileActivity is the temporal signature of one file.
type FileActivity struct {
	Path            string         `json:"file_path"`
	Modified        time.Time      `json:"modified"`
	Created         *time.Time     `json:"created,omitempty"`
	Accessed        time.Time      `json:"accessed"`
	FilenameDates   []FilenameDate `json:"filename_dates"`
	BestProjectDate *FilenameDate  `json:"best_project_date"`
	ActivityScore   float64        `json:"activity_score"`
	Size            int64          `json:"file_size"`
	IsRecentWork    bool           `json:"is_recent_work"`
}

// Summary condenses the activity for storage on an asset.
func (a FileActivity) Summary() *ActivitySummary {
	return &ActivitySummary{
		ActivityScore:   a.ActivityScore,
		IsRecentWork:    a.IsRecentWork,
		BestProjectDate: a.BestProjectDate,
	}
}

// ActivityBuckets counts files by activity score band.
type ActivityBuckets struct {
	High   int `json:"high_activity"`
	Medium int `json:"medium_activity"`
	Low    int `json:"low_activity"`
}

// DirectoryTimeline summarises the activity of every file below a directory.
type DirectoryTimeline struct {
	Directory           string          `json:"directory"`
	TotalFiles          int             `json:"total_files"`
	RecentWorkFiles     int             `json:"recent_work_files"`
	BestProjectDates    []FilenameDate  `json:"best_project_dates"`
	LatestActivity      time.Time       `json:"latest_activity"`
	EarliestProjectDate *time.Time      `json:"earliest_project_date"`
	Activity            ActivityBuckets `json:"activity_summary"`
	TopFiles            []FileActivity  `json:"top_files,omitempty"`
}
