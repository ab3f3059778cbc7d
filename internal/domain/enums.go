package domain

type ConversationType string

const (
	ConversationMaster ConversationType = "master"
	ConversationSkill  ConversationType = "skill"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Sentiment labels a user message. Positive is a valid stored label but the
// keyword classifier never produces it.
type Sentiment string

const (
	SentimentPositive    Sentiment = "positive"
	SentimentNeutral     Sentiment = "neutral"
	SentimentStressed    Sentiment = "stressed"
	SentimentOverwhelmed Sentiment = "overwhelmed"
	SentimentDemotivated Sentiment = "demotivated"
)

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// ValidLevels is the canonical set of accepted goal levels.
var ValidLevels = map[Level]bool{
	LevelBeginner: true, LevelIntermediate: true, LevelAdvanced: true,
}

type TaskStatus string

const (
	TaskPending TaskStatus = "pending"
	TaskDone    TaskStatus = "done"
)

// VaultCategories lists the prompt vault categories in display order.
var VaultCategories = []string{"general", "study", "motivation", "coding", "writing", "exam"}

// DefaultVaultCategory is applied when a prompt is saved without a category.
const DefaultVaultCategory = "general"

// IsVaultCategory reports whether c is one of VaultCategories.
func IsVaultCategory(c string) bool {
	for _, v := range VaultCategories {
		if v == c {
			return true
		}
	}
	return false
}
