package intelligence

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alexanderramin/neuroplan/internal/domain"
)

// ActionCreateRoadmap is the only action the master channel recognises.
const ActionCreateRoadmap = "create_roadmap"

// RoadmapAction is a roadmap request extracted from a chat message.
type RoadmapAction struct {
	Type   string       `json:"type"`
	Skill  string       `json:"skill"`
	Level  domain.Level `json:"level"`
	Weeks  int          `json:"weeks"`
	GoalID string       `json:"goal_id,omitempty"`
}

// Patterns are tried in order: Vietnamese phrasing, English phrasing, then
// the bare "roadmap <skill> <N> weeks" form. Group 1 is the skill, group 2
// the week count.
var roadmapPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:tạo|lập|xây dựng|tạo giúp|giúp tạo|lên)\s+(?:roadmap|lộ trình|kế hoạch học)\s+(.+?)(?:\s+trong\s+|\s+)(\d+)\s*(?:tuần|weeks?|w)\b`),
	regexp.MustCompile(`(?i)(?:create|make|build|generate)\s+(?:a\s+)?roadmap\s+(?:for\s+)?(.+?)(?:\s+in\s+|\s+for\s+|\s+)(\d+)\s*(?:weeks?|w|tuần)\b`),
	regexp.MustCompile(`(?i)roadmap\s+(.+?)\s+(\d+)\s*(?:tuần|weeks?|w)\b`),
}

var levelPatterns = []struct {
	re    *regexp.Regexp
	level domain.Level
}{
	{regexp.MustCompile(`(?i)\b(?:advanced|nâng cao|cao cấp)\b`), domain.LevelAdvanced},
	{regexp.MustCompile(`(?i)\b(?:intermediate|trung bình|trung cấp)\b`), domain.LevelIntermediate},
}

var levelWords = regexp.MustCompile(`(?i)\s+(?:beginner|intermediate|advanced|nâng cao|trung bình|cơ bản)`)

// ParseRoadmapIntent extracts a roadmap request from free text. Patterns are
// tried in order; a match with an empty skill or a week count outside 1..52
// falls through to the next pattern.
func ParseRoadmapIntent(text string) *RoadmapAction {
	for _, re := range roadmapPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		skill := strings.TrimSpace(levelWords.ReplaceAllString(strings.TrimSpace(m[1]), ""))
		weeks, err := strconv.Atoi(m[2])
		if err != nil || skill == "" || weeks < 1 || weeks > domain.MaxGoalWeeks {
			continue
		}
		return &RoadmapAction{
			Type:  ActionCreateRoadmap,
			Skill: skill,
			Level: detectLevel(text),
			Weeks: weeks,
		}
	}
	return nil
}

func detectLevel(text string) domain.Level {
	for _, lp := range levelPatterns {
		if lp.re.MatchString(text) {
			return lp.level
		}
	}
	return domain.LevelBeginner
}
