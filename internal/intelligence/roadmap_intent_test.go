package intelligence

import (
	"fmt"
	"testing"

	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoadmapIntent_Phrasings(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		skill string
		level domain.Level
		weeks int
	}{
		{"vietnamese", "Tạo lộ trình Python trong 8 tuần", "Python", domain.LevelBeginner, 8},
		{"vietnamese helper verb", "giúp tạo roadmap tiếng Anh giao tiếp 12 tuần", "tiếng Anh giao tiếp", domain.LevelBeginner, 12},
		{"vietnamese level", "lập kế hoạch học React nâng cao trong 6 tuần", "React", domain.LevelAdvanced, 6},
		{"english", "Create a roadmap for Go in 10 weeks", "Go", domain.LevelBeginner, 10},
		{"english no article", "build roadmap Kubernetes 4w", "Kubernetes", domain.LevelBeginner, 4},
		{"english level", "generate a roadmap for SQL intermediate for 5 weeks", "SQL", domain.LevelIntermediate, 5},
		{"simple", "roadmap React 8 tuần", "React", domain.LevelBeginner, 8},
		{"simple advanced", "roadmap Rust advanced 3 weeks", "Rust", domain.LevelAdvanced, 3},
		{"boundary 52", "create roadmap for piano 52 weeks", "piano", domain.LevelBeginner, 52},
		{"boundary 1", "roadmap chess 1 week", "chess", domain.LevelBeginner, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := ParseRoadmapIntent(tt.text)
			require.NotNil(t, a)
			assert.Equal(t, ActionCreateRoadmap, a.Type)
			assert.Equal(t, tt.skill, a.Skill)
			assert.Equal(t, tt.level, a.Level)
			assert.Equal(t, tt.weeks, a.Weeks)
		})
	}
}

func TestParseRoadmapIntent_Rejections(t *testing.T) {
	for _, text := range []string{
		"",
		"hello there",
		"roadmap React",
		"create a roadmap for Go in 0 weeks",
		"roadmap React 53 tuần",
		"tạo lộ trình Python trong 100 tuần",
		"I need a plan for 8 weeks",
	} {
		assert.Nil(t, ParseRoadmapIntent(text), "text %q", text)
	}
}

func TestParseRoadmapIntent_InvalidMatchFallsThrough(t *testing.T) {
	a := ParseRoadmapIntent("lên lộ trình Python 100 tuần, roadmap Go 8 tuần")
	require.NotNil(t, a)
	assert.Equal(t, "Go", a.Skill)
	assert.Equal(t, 8, a.Weeks)
	assert.Equal(t, domain.LevelBeginner, a.Level)
}

func TestParseRoadmapIntent_AnyWeekInRange(t *testing.T) {
	for w := 1; w <= domain.MaxGoalWeeks; w++ {
		a := ParseRoadmapIntent(fmt.Sprintf("roadmap Docker %d weeks", w))
		require.NotNil(t, a, "weeks %d", w)
		assert.Equal(t, w, a.Weeks)
		assert.Equal(t, "Docker", a.Skill)
	}
}

func TestParseRoadmapIntent_LevelWordsStrippedFromSkill(t *testing.T) {
	a := ParseRoadmapIntent("roadmap Python cơ bản 4 tuần")
	require.NotNil(t, a)
	assert.Equal(t, "Python", a.Skill)
	assert.Equal(t, domain.LevelBeginner, a.Level)

	a = ParseRoadmapIntent("roadmap Python trung bình 4 tuần")
	require.NotNil(t, a)
	assert.Equal(t, "Python", a.Skill)
	assert.Equal(t, domain.LevelIntermediate, a.Level)
}

func TestParseRoadmapIntent_AdvancedWinsOverIntermediate(t *testing.T) {
	a := ParseRoadmapIntent("roadmap Go intermediate to advanced 6 weeks")
	require.NotNil(t, a)
	assert.Equal(t, domain.LevelAdvanced, a.Level)
}
