package intelligence

import (
	"fmt"

	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/tmc/langchaingo/prompts"
)

// roadmapSystemPrompt instructs the LLM to emit a roadmap document.
const roadmapSystemPrompt = `You are NeuroPlan AI Roadmap Generator. Generate a detailed study roadmap in JSON format.

OUTPUT FORMAT (strict JSON, no markdown):
{
  "goal": "string - main learning goal",
  "outcome": "string - expected outcome after completion",
  "milestones": [
    {
      "id": "m1",
      "title": "string",
      "description": "string",
      "week_start": 1,
      "week_end": 2,
      "kpis": ["string"],
      "resources": ["string - links or book names"],
      "tasks": ["string - specific actionable tasks"]
    }
  ],
  "risks": [
    {
      "risk": "string - potential risk",
      "mitigation": "string - how to mitigate"
    }
  ],
  "total_weeks": number,
  "difficulty": "beginner|intermediate|advanced"
}

Rules:
- Create 3-6 milestones depending on duration
- Each milestone should have 2-4 KPIs
- Include realistic resources (free ones preferred)
- Tasks should be specific and actionable
- Risks should be practical (burnout, complexity, etc.)
- Respond ONLY with valid JSON, no explanation text`

var roadmapUserTemplate = prompts.NewPromptTemplate(`Create a detailed study roadmap for:
- Skill: {{.skill}}
- Level: {{.level}}
- Duration: {{.weeks}} weeks

Generate a comprehensive roadmap with milestones, KPIs, resources, and risk analysis.`,
	[]string{"skill", "level", "weeks"})

const (
	masterContext = "You are the Master Control AI for NeuroPlan. You can help create roadmaps, manage schedules, control prompts, and give strategic guidance. Respond in the user's language."
	mentorContext = "You are NeuroPlan AI Mentor. Help with studying and learning. Respond in the user's language."
)

var tutorTemplate = prompts.NewPromptTemplate(
	`You are an AI tutor specializing in "{{.skill}}". Focus your responses on this skill area. Respond in the user's language.`,
	[]string{"skill"})

// RoadmapUserPrompt renders the user turn for a roadmap generation call.
func RoadmapUserPrompt(skill string, level domain.Level, weeks int) (string, error) {
	out, err := roadmapUserTemplate.Format(map[string]any{
		"skill": skill,
		"level": string(level),
		"weeks": weeks,
	})
	if err != nil {
		return "", fmt.Errorf("rendering roadmap prompt: %w", err)
	}
	return out, nil
}

// SystemContext returns the base system prompt for a conversation: master
// control, a skill tutor, or the general mentor.
func SystemContext(conv *domain.Conversation) (string, error) {
	switch {
	case conv == nil:
		return mentorContext, nil
	case conv.IsMaster():
		return masterContext, nil
	case conv.SkillName() != "":
		out, err := tutorTemplate.Format(map[string]any{"skill": conv.SkillName()})
		if err != nil {
			return "", fmt.Errorf("rendering tutor prompt: %w", err)
		}
		return out, nil
	default:
		return mentorContext, nil
	}
}

var toneHints = map[domain.Sentiment]string{
	domain.SentimentOverwhelmed: "The user feels overwhelmed. Break the answer into very small steps, suggest doing only the next one, and keep it short.",
	domain.SentimentStressed:    "The user sounds stressed. Be calm and reassuring, and offer one concrete action they can take now.",
	domain.SentimentDemotivated: "The user seems demotivated. Be warm and encouraging, remind them of progress, and suggest a tiny quick win.",
}

// ToneHint returns the guidance appended for a non-neutral sentiment.
func ToneHint(s domain.Sentiment) string {
	return toneHints[s]
}

// ActionOutcome describes the result of a master-channel action for the
// system prompt so the model can report it to the user.
func ActionOutcome(a *RoadmapAction, goalID string, err error) string {
	if err != nil {
		if goalID != "" {
			return fmt.Sprintf("[Action] Goal %q (%s, %d weeks) was created as %s but roadmap generation failed: %v. Tell the user they can retry from the roadmap page.",
				a.Skill, a.Level, a.Weeks, goalID, err)
		}
		return fmt.Sprintf("[Action] Creating a roadmap for %q failed: %v. Tell the user.", a.Skill, err)
	}
	return fmt.Sprintf("[Action] A %d-week %s roadmap for %q was created (goal %s). Confirm this to the user and summarise the next step.",
		a.Weeks, a.Level, a.Skill, goalID)
}
