package corpus

import "hinglishgen/internal/models"

// builtinLexicon maps romanized Hindi tokens to Devanagari.
var builtinLexicon = map[string]string{
	"bhai":  "भाई",
	"yaar":  "यार",
	"haan":  "हाँ",
	"arre":  "अरे",
	"accha": "अच्छा",
	"theek": "ठीक",
	"bas":   "बस",
	"kal":   "कल",
	"parso": "परसो",
	"aaj":   "आज",
	"subah": "सुबह",
	"shaam": "शाम",
	"jaldi": "जल्दी",
	"thoda": "थोड़ा",
	"yaad":  "याद",
	"dila":  "दिला",
	"dena":  "देना",
	"kar":   "कर",
	"karo":  "करो",
	"do":    "दो",
	"rakh":  "रख",
	"lo":    "लो",
	"nahi":  "नहीं",
	"ka":    "का",
	"ki":    "की",
	"ke":    "के",
	"pe":    "पर",
	"aage":  "आगे",
	"kuch":  "कुछ",
	"din":   "दिन",
	"liye":  "लिए",
	"me":    "में",
	"kya":   "क्या",
	"hain":  "हैं",
	"mujhe": "मुझे",
	"kab":   "कब",
	"sakte": "सकते",
	"baje":  "बजे",
	"wali":  "वाली",
	"ho":    "हो",
	"sakti": "सकती",
	"yeh":   "यह",
	"galat": "गलत",
	"ek":    "एक",
	"baar":  "बार",
	"na":    "ना",
	"pakka": "पक्का",
	"se":    "से",
	"hai":   "है",
	"aaya":  "आया",
}

// builtinFrames is the fixed frame pool. Order matters: it is part of the
// seeded draw sequence.
var builtinFrames = []models.Frame{
	{
		Intent: "set_reminder",
		Slots:  models.Slots{{Name: "time", Value: "कल सुबह"}, {Name: "task", Value: "call"}},
		Type:   "reminder",
	},
	{
		Intent: "reschedule_meeting",
		Slots:  models.Slots{{Name: "original_time", Value: "कल"}, {Name: "new_time", Value: "Friday 4pm"}},
		Type:   "reschedule",
	},
	{
		Intent: "query_charges",
		Slots:  models.Slots{{Name: "amount", Value: "1.25 lakh"}, {Name: "institution", Value: "HDFC"}},
		Type:   "finance",
	},
	{
		Intent: "schedule_meeting",
		Slots:  models.Slots{{Name: "time", Value: "कल"}, {Name: "requires_clarification", Value: true}},
		Type:   "ambiguous",
	},
	{
		Intent: "cancel_meeting",
		Slots:  models.Slots{{Name: "meeting", Value: "team sync"}, {Name: "reason", Value: "urgent work"}},
		Type:   "cancel",
	},
	{
		Intent: "request_callback",
		Slots:  models.Slots{{Name: "time", Value: "आज शाम"}, {Name: "priority", Value: "high"}},
		Type:   "callback",
	},
	{
		Intent: "billing_inquiry",
		Slots:  models.Slots{{Name: "amount", Value: "5000"}, {Name: "description", Value: "subscription"}},
		Type:   "billing",
	},
	{
		Intent: "confirm_appointment",
		Slots:  models.Slots{{Name: "date", Value: "परसो"}, {Name: "time", Value: "2pm"}},
		Type:   "confirmation",
	},
}

var builtinRealizations = map[string][]string{
	"reminder": {
		"bhai kal subah call yaad dila",
		"kal subah call reminder set kar",
		"haan kal subah call yaad dila dena",
		"pls kal subah call yaad dila",
		"mujhe kal 9am pe call ka reminder de",
		"reminder set kar kal morning 10 baje ke liye",
		"kal jaldi subah mujhe call karna yaad rakhna",
	},
	"reschedule": {
		"bhai kal meeting Friday 4pm pe shift kar do",
		"kal wali meeting Friday 4pm move kar do",
		"haan kal nahi Friday 4pm rakh lo meeting",
		"meeting ko kal se Friday 4pm kar do",
		"kal meeting ko aage postpone kar do",
		"meeting kal se parso shift kar do please",
		"can we reschedule kal ki meeting Friday ko",
	},
	"finance": {
		"HDFC ka 1.25 lakh loan foreclosure charges batao",
		"1.25 lakh loan ke charges HDFC me kya hain",
		"bhai HDFC loan 1.25 lakh charges",
		"HDFC me 5000 ka charge aaya hai kya",
		"loan closure ke liye kitne charges honge",
		"bhai monthly fee kitni hai bank me",
	},
	"ambiguous": {
		"kal thoda jaldi meeting rakh lo",
		"haan kal ya parso meeting rakhte hain",
		"kal meeting rakh lo thoda early",
		"timing fix kar do please",
		"kab time available hai next week",
	},
	"cancel": {
		"kal ki meeting cancel kar do bhai",
		"team sync cancel kar dena please",
		"haan kal meeting nahi ho sakti cancel kar do",
		"meeting postpone kar do kuch din ke liye",
		"urgent kaam hai cancel kar do kal ki meeting",
	},
	"callback": {
		"mujhe aaj shaam ko callback de do",
		"please kal morning call kar dena",
		"urgent hai callback immediately karo",
		"kab callback kar sakte ho",
		"aaj hi call back karna important hai",
	},
	"billing": {
		"5000 ka charge kya hai",
		"subscription ki cost kitni hai monthly",
		"bill me 2000 extra charge kyu aaya",
		"refund kar do yeh charge galat hai",
		"invoice check kar ek baar",
	},
	"confirmation": {
		"parso 2pm appointment confirm hai na",
		"haan kal 3 baje appointment fixed hai",
		"confirm kar do meeting kal 4pm",
		"appointment time confirm kar",
		"theek hai parso meeting pakka hai",
	},
}

var builtinNoise = NoiseProfile{
	PrefixProbability: 0.4,
	Prefixes:          []string{"haan ", "bhai ", ""},
	SuffixProbability: 0.3,
	Suffixes:          []string{"", "…", ",", " pls", " yaar"},
}
