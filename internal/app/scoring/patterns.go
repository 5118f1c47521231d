package scoring

// Heuristic category names. The set is closed; scores and flags are keyed by
// these values.
const (
	CategoryUrgency          = "urgency"
	CategoryFinancial        = "financial"
	CategoryPersonalInfo     = "personal-info-request"
	CategoryPhishing         = "phishing-phrase"
	CategoryImpersonation    = "impersonation"
	CategoryTechnicalPretext = "technical-pretext"
)

// pattern couples a category's trigger list with its per-match weight and the
// flag template rendered when at least one trigger matches.
type pattern struct {
	category     string
	weight       int
	flagTemplate string
	triggers     []string
}

// patterns is evaluated in declaration order. Triggers are matched as
// case-insensitive substrings of the normalized text; each distinct trigger
// counts once.
var patterns = []pattern{
	{
		category:     CategoryUrgency,
		weight:       15,
		flagTemplate: "Urgent language detected: %s",
		triggers: []string{
			"urgent", "immediately", "act now", "right away", "hurry",
			"limited time", "last chance", "final notice", "last warning",
			"within 24 hours", "today only", "don't delay", "act fast",
			"time sensitive", "expire",
		},
	},
	{
		category:     CategoryFinancial,
		weight:       20,
		flagTemplate: "Money-related terms detected: %s",
		triggers: []string{
			"money", "cash", "reward", "prize", "winner", "lottery",
			"inheritance", "refund", "compensation", "wire transfer",
			"gift card", "bitcoin", "cryptocurrency", "western union",
			"moneygram", "jackpot", "processing fee",
		},
	},
	{
		category:     CategoryPersonalInfo,
		weight:       25,
		flagTemplate: "Requests personal information: %s",
		triggers: []string{
			"otp", "password", "pin", "cvv", "card number", "account number",
			"routing number", "aadhaar", "social security", "ssn",
			"date of birth", "mother's maiden", "security question",
			"credentials", "personal details",
		},
	},
	{
		category:     CategoryPhishing,
		weight:       30,
		flagTemplate: "Phishing indicators found: %s",
		triggers: []string{
			"click here", "verify account", "verify your account",
			"confirm identity", "confirm your identity", "update information",
			"update your information", "suspicious activity",
			"unusual activity", "account suspended", "account blocked",
			"login here", "reactivate",
		},
	},
	{
		category:     CategoryImpersonation,
		weight:       20,
		flagTemplate: "Impersonates trusted entities: %s",
		triggers: []string{
			"income tax", "tax department", "police", "government official",
			"reserve bank", "rbi", "customs", "tech support", "microsoft",
			"amazon", "on behalf of", "customer care", "calling from your bank",
			"federal agent",
		},
	},
	{
		category:     CategoryTechnicalPretext,
		weight:       30,
		flagTemplate: "Technical pretext detected: %s",
		triggers: []string{
			"remote access", "teamviewer", "anydesk", "screen share",
			"install the app", "install software", "computer virus",
			"virus detected", "malware", "hacked", "security breach",
			"ip address compromised",
		},
	},
}

// archetype is one scam classification bucket.
type archetype struct {
	name     string
	triggers []string
}

// archetypes is evaluated in declaration order; the first archetype with at
// least one matched trigger wins. Order is part of the contract.
var archetypes = []archetype{
	{"lottery", []string{
		"lottery", "jackpot", "lucky draw", "prize money", "you have won",
		"congratulations you", "sweepstakes",
	}},
	{"phishing", []string{
		"verify account", "verify your account", "account suspended",
		"account blocked", "confirm identity", "unusual activity",
		"click here",
	}},
	{"investment", []string{
		"investment", "guaranteed returns", "double your money",
		"trading profit", "stock tips", "high returns",
	}},
	{"romance", []string{
		"lonely", "soulmate", "true love", "marriage proposal", "visa fees",
	}},
	{"job-offer", []string{
		"work from home", "part time job", "earning opportunity",
		"registration fee", "we are hiring", "job offer",
	}},
	{"tech-support", []string{
		"remote access", "teamviewer", "anydesk", "computer virus",
		"tech support", "virus detected",
	}},
}

// ScamTypeUnknown is reported when no archetype matches.
const ScamTypeUnknown = "unknown"
