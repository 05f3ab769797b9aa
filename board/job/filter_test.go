package job

import (
	"testing"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

func TestCleanCategoryID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"665f1c2a9b1e8a0012345678", "665f1c2a9b1e8a0012345678"},
		{`"665f1c2a9b1e8a0012345678"`, "665f1c2a9b1e8a0012345678"},
		{`'abc'`, "abc"},
		{`ObjectId("665f1c2a9b1e8a0012345678")`, "665f1c2a9b1e8a0012345678"},
		{`ObjectId('abc')`, "abc"},
		{` ObjectId(abc) `, "abc"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CleanCategoryID(tt.in); got != tt.want {
			t.Fatalf("CleanCategoryID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildQueryAlwaysPublished(t *testing.T) {
	q := BuildQuery(SearchFilter{}, time.Now())
	if !q.Published {
		t.Fatalf("BuildQuery(empty).Published = false")
	}
	if q.CreatedBetween != nil || q.TitleContains != "" || q.CategoryID != "" {
		t.Fatalf("BuildQuery(empty) = %+v, want open filter", q)
	}
}

func TestBuildQueryDateBucket(t *testing.T) {
	wednesday := time.Date(2026, time.October, 21, 10, 0, 0, 0, time.UTC)

	q := BuildQuery(SearchFilter{CreatedAt: "thisWeek"}, wednesday)
	if q.CreatedBetween == nil {
		t.Fatalf("BuildQuery(thisWeek).CreatedBetween = nil")
	}
	wantFrom := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	if !q.CreatedBetween.From.Equal(wantFrom) {
		t.Fatalf("From = %v, want %v", q.CreatedBetween.From, wantFrom)
	}

	unknown := BuildQuery(SearchFilter{CreatedAt: "someday"}, wednesday)
	if unknown.CreatedBetween != nil {
		t.Fatalf("BuildQuery(unknown bucket).CreatedBetween = %v, want nil", unknown.CreatedBetween)
	}
}

func catID(s string) *kernel.CategoryID {
	id := kernel.CategoryID(s)
	return &id
}

func sampleJobs(now time.Time) []*Job {
	return []*Job{
		{ID: "1", Title: "Software Engineer", WorkMode: kernel.WorkModeRemote, IsPublished: true, CategoryID: catID("c1"), ShiftTiming: "full-time", YearsOfExperience: "1-3", CreatedAt: now},
		{ID: "2", Title: "Sales Engineer", WorkMode: kernel.WorkModeOnSite, IsPublished: true, CategoryID: catID("c2"), CreatedAt: now.AddDate(0, 0, -20)},
		{ID: "3", Title: "Senior engineer", WorkMode: kernel.WorkModeRemote, IsPublished: false, CategoryID: catID("c1"), CreatedAt: now},
		{ID: "4", Title: "Designer", WorkMode: kernel.WorkModeHybrid, IsPublished: true, CreatedAt: now.AddDate(0, 0, -1)},
	}
}

func matchIDs(q Query, jobs []*Job) []kernel.JobID {
	var ids []kernel.JobID
	for _, j := range jobs {
		if q.Matches(j) {
			ids = append(ids, j.ID)
		}
	}
	return ids
}

func TestQueryMatches(t *testing.T) {
	now := time.Date(2026, time.October, 21, 10, 0, 0, 0, time.UTC)
	jobs := sampleJobs(now)

	tests := []struct {
		name   string
		filter SearchFilter
		want   []kernel.JobID
	}{
		{"open filter hides unpublished", SearchFilter{}, []kernel.JobID{"1", "2", "4"}},
		{"title and work mode", SearchFilter{Title: "Engineer", WorkMode: "remote"}, []kernel.JobID{"1"}},
		{"title is case insensitive", SearchFilter{Title: "ENGINEER"}, []kernel.JobID{"1", "2"}},
		{"wrapped category", SearchFilter{CategoryID: `ObjectId("c2")`}, []kernel.JobID{"2"}},
		{"shift and experience", SearchFilter{ShiftTiming: "full-time", YearsOfExperience: "1-3"}, []kernel.JobID{"1"}},
		{"today", SearchFilter{CreatedAt: "today"}, []kernel.JobID{"1"}},
		{"yesterday", SearchFilter{CreatedAt: "yesterday"}, []kernel.JobID{"4"}},
		{"unknown bucket equals no bucket", SearchFilter{CreatedAt: "fortnight"}, []kernel.JobID{"1", "2", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchIDs(BuildQuery(tt.filter, now), jobs)
			if len(got) != len(tt.want) {
				t.Fatalf("matched %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("matched %v, want %v", got, tt.want)
				}
			}
		})
	}
}
