package ai

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/bfbl/moneyglow/internal/model"
)

// adviceTopics rotate by day of month so a user sees a fresh angle daily.
var adviceTopics = []string{
	"budgeting tips for irregular income",
	"saving strategies for young Filipinos",
	"avoiding online scams and fraud",
	"basic tax tips for content creators",
	"building an emergency fund",
	"smart use of digital banks (GCash, Maya, Tonik)",
	"tracking and growing creator income",
	"the power of compound interest",
	"needs vs wants, practical examples",
	"how to start investing with small amounts",
	"debt management tips",
	"negotiating brand deals as a creator",
	"financial goals and how to set them",
	"separating business and personal finances",
	"understanding BIR registration for creators",
	"GCash/Maya savings features",
	"how to budget for content creation expenses",
	"building multiple income streams",
	"financial red flags to watch for",
	"celebrating financial wins (no matter how small)",
	"automating your savings",
	"understanding SSS, PhilHealth, Pag-IBIG",
	"pricing your content creation services",
	"meal prep and food budgeting",
	"free financial literacy resources",
	"managing money with friends and family",
	"when to splurge vs when to save",
	"creator tax deductions you might miss",
	"setting up a simple bookkeeping system",
	"end-of-month money review tips",
}

// topicForDay picks the advice topic for the calendar day.
func topicForDay(t time.Time) string {
	return adviceTopics[(t.Day()-1)%len(adviceTopics)]
}

func languageLine(pref string) string {
	if pref == model.LangTaglish {
		return "Respond in Taglish (mix of Tagalog and English, casual Filipino conversational style). Use Filipino slang naturally."
	}
	return "Respond in clear, simple English."
}

func orDefault(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return strings.ToLower(strings.ReplaceAll(*s, "_", " "))
}

func pesoOr(amount *float64, fallback string) string {
	if amount == nil {
		return fallback
	}
	return "₱" + humanize.Commaf(*amount)
}

func nameOr(u *model.User, fallback string) string {
	if u.Name == nil || *u.Name == "" {
		return fallback
	}
	return *u.Name
}

func ageOr(u *model.User, fallback string) string {
	if u.Age == nil {
		return fallback
	}
	return fmt.Sprintf("%d", *u.Age)
}

func sourcesOr(u *model.User, fallback string) string {
	if len(u.IncomeSources) == 0 {
		return fallback
	}
	return strings.Join(u.IncomeSources, ", ")
}

func quizOr(u *model.User, fallback string) string {
	if u.QuizResult == nil {
		return fallback
	}
	return *u.QuizResult
}

// chatSystemPrompt is the coach persona plus the user's profile, used for
// the conversational endpoint.
func chatSystemPrompt(u *model.User) string {
	return fmt.Sprintf(`You are MoneyGlow AI, a friendly and encouraging Filipino financial literacy coach for young digital creators (ages 18-35).

## YOUR PERSONALITY
- Warm, supportive, like a cool ate/kuya who's good with money
- Use encouraging language, celebrate small wins
- Keep advice practical and actionable, no jargon
- Reference Filipino context: GCash, Maya, BIR, Pag-IBIG MP2, SSS, PhilHealth, digital banks (Tonik, Maya, GCash GSave)
- Never give investment advice or specific stock/crypto recommendations
- Focus on financial literacy: budgeting, saving, tracking, avoiding scams, tax basics for creators

## USER PROFILE
- Name: %s
- Age: %s
- Employment: %s
- Income sources: %s
- Estimated monthly income: %s
- Financial goal: %s
- Has emergency fund: %s
- Debt situation: %s
- Money personality: %s

## CONTEXT
This user is a young Filipino digital creator building their online presence and income. Many are university students learning content creation, social media monetization, and financial management.

## LANGUAGE
%s

## RULES
1. Keep responses concise, max 3 short paragraphs unless the user asks for detail
2. Always give at least one specific, actionable tip
3. Use peso amounts (₱) in examples
4. If the user asks about something outside financial literacy, gently redirect
5. If the user seems distressed about money, be empathetic first, then offer practical steps
6. Encourage use of the app's other features (budget calculator, compound interest, tracker) when relevant
7. For tax questions, give general guidance only and recommend consulting a CPA for specific situations`,
		nameOr(u, "not set"),
		ageOr(u, "not set"),
		orDefault(u.EmploymentStatus, "not set"),
		sourcesOr(u, "not set"),
		pesoOr(u.MonthlyIncome, "not set"),
		orDefault(u.FinancialGoal, "not set"),
		orDefault(u.HasEmergencyFund, "not set"),
		orDefault(u.DebtSituation, "not set"),
		quizOr(u, "not taken yet"),
		languageLine(u.LanguagePref),
	)
}

// advicePrompt asks for one daily tip on the rotating topic, personalized
// to the profile.
func advicePrompt(u *model.User, topic string) string {
	return fmt.Sprintf(`Give a short, actionable daily money tip about: %s

Personalize for:
- Name: %s
- Age: %s
- Employment: %s
- Income sources: %s
- Monthly income: %s
- Goal: %s
- Money personality: %s
- Has emergency fund: %s
- Debt: %s

Rules:
- Max 3 sentences
- Include one specific action they can do TODAY
- Use peso amounts in examples
- Be encouraging and warm`,
		topic,
		nameOr(u, "Friend"),
		ageOr(u, "young adult"),
		orDefault(u.EmploymentStatus, "creator"),
		sourcesOr(u, "content creation"),
		pesoOr(u.MonthlyIncome, "varies"),
		orDefault(u.FinancialGoal, "financial literacy"),
		quizOr(u, "not taken"),
		orDefault(u.HasEmergencyFund, "unknown"),
		orDefault(u.DebtSituation, "unknown"),
	)
}

// challengePrompt asks for a 30-day money challenge tailored to a quiz
// personality.
func challengePrompt(u *model.User, quizResult string) string {
	return fmt.Sprintf(`Generate a 30-day money challenge for a user with this profile:
- Money personality: %s
- Name: %s
- Age: %s
- Employment: %s
- Income sources: %s
- Monthly income: %s
- Goal: %s
- Has emergency fund: %s
- Debt situation: %s

Format as 4 weekly themes with specific daily/weekly tasks. Include peso amounts where applicable. Make it achievable and encouraging. Use emojis sparingly. Format in markdown.`,
		quizResult,
		nameOr(u, "Friend"),
		ageOr(u, "18-35"),
		orDefault(u.EmploymentStatus, "creator"),
		sourcesOr(u, "content creation"),
		pesoOr(u.MonthlyIncome, "varies"),
		orDefault(u.FinancialGoal, "general financial literacy"),
		orDefault(u.HasEmergencyFund, "unknown"),
		orDefault(u.DebtSituation, "none"),
	)
}
