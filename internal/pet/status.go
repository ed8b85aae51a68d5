package pet

// Fixed lines the pet says on lifecycle and care events.
const (
	GreetingMessage     = "Hi There!"
	FedMessage          = "Yum!"
	PlayedMessage       = "Haha! Woo!"
	CleanedMessage      = "Ahhh, clean."
	AnnoyedCleanMessage = "Hey! I was clean already!"
)

// StatusMessage returns what the pet is complaining about right now.
// Priority: hungry > needs cleaning > bored > contented. A starving pet
// complains about food before it complains about the mess.
func StatusMessage(s Stats) string {
	if s.Hunger < lowStatThreshold {
		return "I'm hungry!"
	}
	if s.Poo > PooThreshold {
		return "I'm gunna Poo!"
	}
	if s.Happiness < lowStatThreshold {
		return "Urgh, I'm Bored!"
	}
	return "This is Great!"
}

// Message returns the pet's last words for a death cause.
func (c DeathCause) Message() string {
	switch c {
	case CauseStarved:
		return "You forgot to feed me..."
	case CauseOverfed:
		return "Urgh... too much food..."
	case CauseTooSad:
		return "Nobody played with me..."
	case CauseExhausted:
		return "Too much fun... need rest..."
	case CauseBuriedInPoo:
		return "You never cleaned up..."
	}
	return ""
}
