package prompts

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iWorld-y/company_intel/internal/model"
)

// BuildChatPrompt 把完整对话拼进 prompt，模型的记忆只来源于此
func BuildChatPrompt(messages []model.Message) string {
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		lines = append(lines, fmt.Sprintf("%s: %s", capitalize(string(m.Role)), m.Content))
	}

	return fmt.Sprintf(`You are a helpful conversational AI assistant. Maintain memory based ONLY on the full conversation below.
Never repeat the user's name unless asked.
Never say you forget anything — memory is provided.
Keep responses short and clear.

Conversation:
%s

Assistant:
`, strings.Join(lines, "\n"))
}

// capitalize 首字母大写，其余小写
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
