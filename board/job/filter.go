package job

import (
	"regexp"
	"strings"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/daterange"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

// SearchFilter holds the raw, optional search criteria as received from clients
type SearchFilter struct {
	Title             string `query:"title" json:"title,omitempty"`
	CategoryID        string `query:"categoryId" json:"categoryId,omitempty"`
	ShiftTiming       string `query:"shiftTiming" json:"shiftTiming,omitempty"`
	WorkMode          string `query:"workMode" json:"workMode,omitempty"`
	YearsOfExperience string `query:"yearsOfExperience" json:"yearsOfExperience,omitempty"`
	CreatedAt         string `query:"createdAtFilter" json:"createdAtFilter,omitempty"`
}

// Query is the normalized search predicate. Every set field is ANDed.
// Results are always ordered by creation time, newest first.
type Query struct {
	Published         bool
	TitleContains     string
	CategoryID        kernel.CategoryID
	ShiftTiming       kernel.ShiftTiming
	WorkMode          kernel.WorkMode
	YearsOfExperience kernel.ExperienceBracket
	CreatedBetween    *daterange.Interval
}

var objectIDWrapper = regexp.MustCompile(`^ObjectId\((.*)\)$`)

// CleanCategoryID strips serialization noise such as ObjectId("...") and quotes
func CleanCategoryID(raw string) string {
	cleaned := objectIDWrapper.ReplaceAllString(strings.TrimSpace(raw), "$1")
	cleaned = strings.NewReplacer(`"`, "", `'`, "").Replace(cleaned)
	return strings.TrimSpace(cleaned)
}

// BuildQuery normalizes a filter into a Query evaluated relative to now.
// An unknown date bucket adds no date constraint.
func BuildQuery(f SearchFilter, now time.Time) Query {
	q := Query{
		Published:         true,
		TitleContains:     strings.TrimSpace(f.Title),
		CategoryID:        kernel.CategoryID(CleanCategoryID(f.CategoryID)),
		ShiftTiming:       kernel.ShiftTiming(strings.TrimSpace(f.ShiftTiming)),
		WorkMode:          kernel.WorkMode(strings.TrimSpace(f.WorkMode)),
		YearsOfExperience: kernel.ExperienceBracket(strings.TrimSpace(f.YearsOfExperience)),
	}

	if bucket := strings.TrimSpace(f.CreatedAt); bucket != "" {
		if interval, ok := daterange.Resolve(daterange.Bucket(bucket), now); ok {
			q.CreatedBetween = &interval
		}
	}

	return q
}

// Matches evaluates the query against a single job in memory
func (q Query) Matches(j *Job) bool {
	if q.Published && !j.IsPublished {
		return false
	}
	if q.TitleContains != "" && !strings.Contains(strings.ToLower(string(j.Title)), strings.ToLower(q.TitleContains)) {
		return false
	}
	if q.CategoryID != "" && (j.CategoryID == nil || *j.CategoryID != q.CategoryID) {
		return false
	}
	if q.ShiftTiming != "" && j.ShiftTiming != q.ShiftTiming {
		return false
	}
	if q.WorkMode != "" && j.WorkMode != q.WorkMode {
		return false
	}
	if q.YearsOfExperience != "" && j.YearsOfExperience != q.YearsOfExperience {
		return false
	}
	if q.CreatedBetween != nil && !q.CreatedBetween.Contains(j.CreatedAt) {
		return false
	}
	return true
}
