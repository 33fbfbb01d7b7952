package ai

import (
	"context"
	"strings"
	"time"

	"github.com/bfbl/moneyglow/internal/model"
)

// DailyAdvice generates one personalized tip for the calendar day of now.
func (c *Client) DailyAdvice(ctx context.Context, u *model.User, now time.Time) (string, error) {
	system := "You are MoneyGlow AI, a friendly Filipino financial literacy coach for young digital creators. Give one daily money tip. " + languageLine(u.LanguagePref)
	return c.complete(ctx, system, []Message{
		{Role: "user", Content: advicePrompt(u, topicForDay(now))},
	}, 400)
}

// Chat answers the user's message with the stored history as context. The
// caller persists both sides of the exchange.
func (c *Client) Chat(ctx context.Context, u *model.User, history []*model.ChatMessage, userMessage string) (string, error) {
	messages := make([]Message, 0, len(history)+1)
	for _, m := range history {
		messages = append(messages, Message{
			Role:    strings.ToLower(m.Role),
			Content: m.Content,
		})
	}
	messages = append(messages, Message{Role: "user", Content: userMessage})

	return c.complete(ctx, chatSystemPrompt(u), messages, 1024)
}

// QuizChallenge generates a 30-day challenge for a quiz personality.
func (c *Client) QuizChallenge(ctx context.Context, u *model.User, quizResult string) (string, error) {
	system := "You are MoneyGlow AI, a Filipino financial literacy coach. Generate a personalized 30-day money challenge. " + languageLine(u.LanguagePref)
	return c.complete(ctx, system, []Message{
		{Role: "user", Content: challengePrompt(u, quizResult)},
	}, 1500)
}
