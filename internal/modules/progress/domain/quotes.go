package domain

import "time"

var Quotes = []string{
	"The only way to do great work is to love what you do. - Steve Jobs",
	"Believe you can and you're halfway there. - Theodore Roosevelt",
	"Don't watch the clock; do what it does. Keep going. - Sam Levenson",
	"The future depends on what you do today. - Mahatma Gandhi",
	"Success is not final, failure is not fatal: it is the courage to continue. - Winston Churchill",
	"It always seems impossible until it's done. - Nelson Mandela",
	"Act as if what you do makes a difference. It does. - William James",
	"Discipline is doing what needs to be done, even if you don't want to do it.",
	"The pain of discipline is far less than the pain of regret.",
	"Don't stop when you're tired. Stop when you're done.",
	"Small progress is still progress. Keep moving forward.",
	"Amateurs wait for inspiration. Professionals get to work.",
	"Consistency is the bridge between goals and accomplishment. - Jim Rohn",
	"Either you run the day or the day runs you. - Jim Rohn",
	"The secret of getting ahead is getting started. - Mark Twain",
	"Motivation gets you going, but discipline keeps you growing. - John Maxwell",
	"Excellence is not a gift, but a skill that takes practice. - Plato",
	"Be so good they can't ignore you. - Steve Martin",
}

// QuoteOfTheDay rotates through Quotes once per calendar day.
func QuoteOfTheDay(now time.Time) string {
	day := int(civil(now).Unix() / 86400)
	if day < 0 {
		day = -day
	}
	return Quotes[day%len(Quotes)]
}
