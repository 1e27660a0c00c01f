// ABOUTME: Canned intent rules for the Social Pulse copilot
// ABOUTME: Declaration order is match priority; the first rule that fires wins
package copilot

// Rule maps a keyword test to a canned response.
type Rule struct {
	Name     string
	Keywords []string
	// RequireAll makes the rule fire only when every keyword is present.
	// Otherwise any single keyword is enough.
	RequireAll bool
	Response   string
}

// Welcome is the first assistant message of every session.
const Welcome = "Hello! 👋 I'm your Social Pulse 360 AI assistant. I can help you understand the platform features, explain analytics, or answer questions about your social media monitoring. What would you like to know?"

// DefaultResponse is returned when no rule matches.
const DefaultResponse = "I understand you're asking about Social Pulse 360. This platform helps you monitor social media mentions, analyze sentiment, track influencers, manage crises, and automate your social media workflows. Could you be more specific about what you'd like to know?"

// Rule names.
const (
	RuleGreeting   = "greeting"
	RuleMorning    = "good-morning"
	RuleAfternoon  = "good-afternoon"
	RuleGratitude  = "gratitude"
	RuleFarewell   = "farewell"
	RuleCurrent    = "current-insights"
	RuleDashboard  = "dashboard-overview"
	RuleCrisis     = "crisis"
	RuleAnalytics  = "analytics"
	RuleAutomation = "automation"
	RuleBusiness   = "business"
	RuleSentiment  = "sentiment"
	RuleInfluencer = "influencer"
	RuleHelp       = "help"
	RuleWhatDo     = "what-do-you-do"
	RuleHowAreYou  = "how-are-you"
)

// DefaultRules returns the copilot rule table in priority order.
//
// Matching is plain substring containment, so short keywords such as "hi"
// and "now" also fire inside longer words ("this", "know"). The greeting
// rule sits first and therefore wins over "help" for input like
// "hello, can you help me?". The how-are-you rule is shadowed by the help
// rule's "how" keyword and is kept for parity with the rule catalogue.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     RuleGreeting,
			Keywords: []string{"hello", "hi", "hey"},
			Response: "Hello! 😊 Great to see you here! I'm your Social Pulse 360 assistant. I can help you navigate the platform, explain features, or answer questions about your social media analytics. What would you like to explore?",
		},
		{
			Name:     RuleMorning,
			Keywords: []string{"good morning"},
			Response: "Good morning! ☀️ Ready to dive into your social media insights? Your current sentiment score is at 84% - that's excellent! What would you like to focus on today?",
		},
		{
			Name:     RuleAfternoon,
			Keywords: []string{"good afternoon", "good evening"},
			Response: "Good afternoon! 🌅 Hope you're having a productive day! Your brand mentions are up 12.5% this week. Is there anything specific you'd like to know about your social media performance?",
		},
		{
			Name:     RuleGratitude,
			Keywords: []string{"thank", "thanks"},
			Response: "You're very welcome! 😊 I'm always here to help you get the most out of Social Pulse 360. Feel free to ask me anything else!",
		},
		{
			Name:     RuleFarewell,
			Keywords: []string{"bye", "goodbye"},
			Response: "Goodbye! 👋 Have a great day managing your social media presence. Remember, I'm always here when you need assistance with Social Pulse 360!",
		},
		{
			Name:     RuleCurrent,
			Keywords: []string{"current", "today", "now", "latest"},
			Response: "Here are your current insights:\n• Total Mentions: 24,891 (+12.5% from last week)\n• Sentiment Score: 84% (excellent!)\n• Influencer Reach: 2.3M (+15.8% growth)\n• Campaign ROI: 340% (+24% this month)\n\nAll metrics are trending positively! 📈",
		},
		{
			Name:     RuleDashboard,
			Keywords: []string{"dashboard", "overview"},
			Response: "The Social Pulse 360 dashboard shows key metrics like Total Mentions (24,891), Sentiment Score (84%), Influencer Reach (2.3M), and Campaign ROI (340%). You can view real-time sentiment analysis, platform feeds, and AI predictions here.",
		},
		{
			Name:     RuleCrisis,
			Keywords: []string{"crisis", "alert"},
			Response: "The Crisis Room monitors negative sentiment spikes and potential PR issues. It provides real-time alerts, suggested responses, and escalation protocols to help you manage brand reputation effectively.",
		},
		{
			Name:     RuleAnalytics,
			Keywords: []string{"analytics", "metrics"},
			Response: "Analytics section provides deep insights into your social media performance, including engagement trends, audience demographics, competitor analysis, and custom reporting features.",
		},
		{
			Name:     RuleAutomation,
			Keywords: []string{"automation", "workflow"},
			Response: "Automation tools help you create workflows for posting, responding to mentions, and managing your social media presence. You can set up triggers based on sentiment, keywords, or engagement levels.",
		},
		{
			Name:     RuleBusiness,
			Keywords: []string{"business", "crm", "nps"},
			Response: "Business Development section includes CRM for managing contacts and opportunities, plus NPS surveys to measure customer satisfaction. Track your sales pipeline and gather valuable feedback.",
		},
		{
			Name:     RuleSentiment,
			Keywords: []string{"sentiment", "mood"},
			Response: "Sentiment analysis tracks how people feel about your brand across platforms. We analyze mentions in real-time and categorize them as positive, negative, or neutral, helping you understand public perception.",
		},
		{
			Name:     RuleInfluencer,
			Keywords: []string{"influencer"},
			Response: "The Influencer Hub helps you discover, track, and collaborate with key influencers in your industry. View their reach, engagement rates, and recent activity to make informed partnership decisions.",
		},
		{
			Name:     RuleHelp,
			Keywords: []string{"help", "how"},
			Response: "I can help you with:\n• Understanding dashboard metrics\n• Navigating different sections\n• Explaining analytics features\n• Crisis management tools\n• Automation workflows\n• Business development features\n\nWhat specific area would you like to explore?",
		},
		{
			Name:       RuleWhatDo,
			Keywords:   []string{"what", "do"},
			RequireAll: true,
			Response:   "Social Pulse 360 helps you monitor social media mentions, analyze sentiment, track influencers, manage potential crises, automate workflows, and handle business development with CRM and NPS tools. What specific feature interests you most?",
		},
		{
			Name:     RuleHowAreYou,
			Keywords: []string{"how are you", "how's it going"},
			Response: "I'm doing great, thank you for asking! 😊 I'm here and ready to help you make the most of Social Pulse 360. Your social media metrics are looking strong today!",
		},
	}
}
