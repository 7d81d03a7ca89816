package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-jobmarket-scraper/internal/models"
)

var now = time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func day(d int) *time.Time {
	t := time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func sampleJobs() []models.NormalizedJob {
	return []models.NormalizedJob{
		{URL: "1", Role: "Data Analyst", CleanLocation: "Bengaluru, Pune", CleanSkills: "Python, Sql",
			AvgSalary: ptr(int64(1250000)), YearsExp: ptr(3.5), PostedDate: day(19)},
		{URL: "2", Role: "Data Scientist", CleanLocation: "Remote", CleanSkills: "Python, Machine Learning",
			YearsExp: ptr(2.0), PostedDate: day(1)},
		{URL: "3", Role: "Data Analyst", CleanLocation: "N/A", CleanSkills: "",
			AvgSalary: ptr(int64(600000))},
		{URL: "4", Role: "Data Engineer", CleanLocation: "Hyderabad", CleanSkills: "Spark, Sql",
			AvgSalary: ptr(int64(2000000)), YearsExp: ptr(6.0), PostedDate: day(20)},
	}
}

func urls(jobs []models.NormalizedJob) []string {
	out := []string{}
	for _, j := range jobs {
		out = append(out, j.URL)
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		expected []string
	}{
		{"Empty criteria keeps all", Criteria{}, []string{"1", "2", "3", "4"}},
		{"Role", Criteria{Roles: []string{"data analyst"}}, []string{"1", "3"}},
		{"Location item match", Criteria{Locations: []string{"Pune"}}, []string{"1"}},
		{"Location list is OR", Criteria{Locations: []string{"Pune", "Remote"}}, []string{"1", "2"}},
		{"N/A is never a location", Criteria{Locations: []string{"N/A"}}, []string{}},
		{"Skill", Criteria{Skills: []string{"Sql"}}, []string{"1", "4"}},
		{"With salary needs salary and experience", Criteria{WithSalary: true}, []string{"1", "4"}},
		{"Combined", Criteria{Roles: []string{"Data Analyst", "Data Engineer"}, Skills: []string{"Sql"}, WithSalary: true}, []string{"1", "4"}},
		{"Posted within a week keeps undated", Criteria{PostedWithin: 7 * 24 * time.Hour}, []string{"1", "3", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(sampleJobs(), tt.criteria, now)
			assert.Equal(t, tt.expected, urls(got))
		})
	}
}

func TestCriteria_IsEmpty(t *testing.T) {
	assert.True(t, Criteria{}.IsEmpty())
	assert.False(t, Criteria{WithSalary: true}.IsEmpty())
	assert.False(t, Criteria{Skills: []string{"Go"}}.IsEmpty())
}

func TestIsRecentJob(t *testing.T) {
	week := 7 * 24 * time.Hour
	assert.True(t, IsRecentJob(nil, now, week))
	assert.True(t, IsRecentJob(day(15), now, week))
	assert.False(t, IsRecentJob(day(1), now, week))
	assert.True(t, IsRecentJob(day(21), now, week), "a day ahead is tolerated")
	assert.False(t, IsRecentJob(day(28), now, week))
}

func TestDateRange(t *testing.T) {
	first, last := DateRange(sampleJobs())
	require.NotNil(t, first)
	require.NotNil(t, last)
	assert.Equal(t, *day(1), *first)
	assert.Equal(t, *day(20), *last)

	first, last = DateRange([]models.NormalizedJob{{URL: "x"}})
	assert.Nil(t, first)
	assert.Nil(t, last)
}

func TestPostedWithinDays(t *testing.T) {
	tests := []struct {
		name     string
		days     int
		expected time.Duration
		wantErr  bool
	}{
		{"One day", 1, 24 * time.Hour, false},
		{"Upper bound", MaxPostedWithinDays, time.Duration(MaxPostedWithinDays) * 24 * time.Hour, false},
		{"Zero", 0, 0, true},
		{"Negative", -3, 0, true},
		{"Past bound", 200000, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PostedWithinDays(tt.days)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Positive(t, got)
		})
	}
}
