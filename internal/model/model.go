package model

import "time"

// Sentiment 舆情倾向
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentMixed    Sentiment = "mixed"
)

// Valid 判断是否为合法的舆情取值
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentMixed:
		return true
	}
	return false
}

// RawData 采集阶段产出的原始资料
type RawData struct {
	CompanyName   string `json:"company_name"`
	SearchSummary string `json:"search_summary"`
}

// Analysis 分析阶段产出的结构化结论
type Analysis struct {
	CompanyName string    `json:"company_name" yaml:"company_name"`
	Industry    string    `json:"industry" yaml:"industry"`
	Summary     string    `json:"summary" yaml:"summary"`
	Strengths   []string  `json:"strengths" yaml:"strengths"`
	Risks       []string  `json:"risks" yaml:"risks"`
	Sentiment   Sentiment `json:"sentiment" yaml:"sentiment"`
}

// HistoryEntry 一次流水线执行的记录
type HistoryEntry struct {
	CompanyName string    `json:"company_name"`
	RawData     RawData   `json:"raw_data"`
	Analysis    Analysis  `json:"analysis"`
	CreatedAt   time.Time `json:"created_at"`
}

// Role 对话角色
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message 对话记录中的一条消息
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
