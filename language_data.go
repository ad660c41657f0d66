package msgfmt

// Built-in locale table. Each entry is pure data: ordered plural rules,
// grammar-case substitutions and a numeral spec. Locales outside this table
// come from a ProfileSource or fall back through their parent chain.

var defaultProfile = &LanguageProfile{
	Locale: "en",
	Name:   "English",
	Rules: []PluralRule{
		{Category: PluralOne, Groups: [][]PluralCondition{{
			{Operand: "n", Operator: OperatorEquals, Values: []float64{1}},
		}}},
		{Category: PluralOther},
	},
}

// DefaultProfile returns the English-like profile used when a locale is
// unknown: one/other plurals, identity grammar, ASCII numerals with a "."
// decimal point and no grouping.
func DefaultProfile() *LanguageProfile {
	return defaultProfile
}

var builtinProfiles = map[string]*LanguageProfile{
	"en": defaultProfile,

	"es": {
		Locale: "es",
		Name:   "español",
		Rules: []PluralRule{
			{Category: PluralOne, Groups: [][]PluralCondition{{
				{Operand: "n", Operator: OperatorEquals, Values: []float64{1}},
			}}},
			{Category: PluralOther},
		},
		Numerals: NumeralSpec{DecimalSep: ",", GroupSep: "."},
	},

	"de": {
		Locale: "de",
		Name:   "Deutsch",
		Rules: []PluralRule{
			{Category: PluralOne, Groups: [][]PluralCondition{{
				{Operand: "n", Operator: OperatorEquals, Values: []float64{1}},
			}}},
			{Category: PluralOther},
		},
		Numerals: NumeralSpec{DecimalSep: ",", GroupSep: "."},
	},

	"fr": {
		Locale: "fr",
		Name:   "français",
		Rules: []PluralRule{
			{Category: PluralOne, Groups: [][]PluralCondition{{
				{Operand: "i", Operator: OperatorIn, Values: []float64{0, 1}},
			}}},
			{Category: PluralOther},
		},
		Numerals: NumeralSpec{DecimalSep: ",", GroupSep: " "},
	},

	"ru": {
		Locale: "ru",
		Name:   "русский",
		Rules: []PluralRule{
			{Category: PluralOne, Groups: [][]PluralCondition{{
				{Operand: "i", Mod: 10, Operator: OperatorEquals, Values: []float64{1}},
				{Operand: "i", Mod: 100, Operator: OperatorNotEquals, Values: []float64{11}},
			}}},
			{Category: PluralFew, Groups: [][]PluralCondition{{
				{Operand: "i", Mod: 10, Operator: OperatorWithin, Ranges: []PluralRange{{Start: 2, End: 4}}},
				{Operand: "i", Mod: 100, Operator: OperatorNotWithin, Ranges: []PluralRange{{Start: 12, End: 14}}},
			}}},
			{Category: PluralMany, Groups: [][]PluralCondition{
				{{Operand: "i", Mod: 10, Operator: OperatorEquals, Values: []float64{0}}},
				{{Operand: "i", Mod: 10, Operator: OperatorWithin, Ranges: []PluralRange{{Start: 5, End: 9}}}},
				{{Operand: "i", Mod: 100, Operator: OperatorWithin, Ranges: []PluralRange{{Start: 11, End: 14}}}},
			}},
			{Category: PluralOther},
		},
		Grammar: map[string]map[string]string{
			"genitive": {
				"Википедия": "Википедии",
				"вики":      "вики",
			},
			"prepositional": {
				"Википедия": "Википедии",
			},
		},
		Numerals: NumeralSpec{DecimalSep: ",", GroupSep: " "},
	},

	"fi": {
		Locale: "fi",
		Name:   "suomi",
		Rules: []PluralRule{
			{Category: PluralOne, Groups: [][]PluralCondition{{
				{Operand: "n", Operator: OperatorEquals, Values: []float64{1}},
			}}},
			{Category: PluralOther},
		},
		Grammar: map[string]map[string]string{
			"genitive": {
				"Wikipedia": "Wikipedian",
				"wiki":      "wikin",
			},
			"elative": {
				"Wikipedia": "Wikipediasta",
			},
			"partitive": {
				"Wikipedia": "Wikipediaa",
			},
		},
		Numerals: NumeralSpec{DecimalSep: ",", GroupSep: " "},
	},

	"he": {
		Locale: "he",
		Name:   "עברית",
		Rules: []PluralRule{
			{Category: PluralOne, Groups: [][]PluralCondition{{
				{Operand: "n", Operator: OperatorEquals, Values: []float64{1}},
			}}},
			{Category: PluralTwo, Groups: [][]PluralCondition{{
				{Operand: "n", Operator: OperatorEquals, Values: []float64{2}},
			}}},
			{Category: PluralOther},
		},
	},

	"ar": {
		Locale: "ar",
		Name:   "العربية",
		Rules: []PluralRule{
			{Category: PluralZero, Groups: [][]PluralCondition{{
				{Operand: "n", Operator: OperatorEquals, Values: []float64{0}},
			}}},
			{Category: PluralOne, Groups: [][]PluralCondition{{
				{Operand: "n", Operator: OperatorEquals, Values: []float64{1}},
			}}},
			{Category: PluralTwo, Groups: [][]PluralCondition{{
				{Operand: "n", Operator: OperatorEquals, Values: []float64{2}},
			}}},
			{Category: PluralFew, Groups: [][]PluralCondition{{
				{Operand: "n", Mod: 100, Operator: OperatorWithin, Ranges: []PluralRange{{Start: 3, End: 10}}},
			}}},
			{Category: PluralMany, Groups: [][]PluralCondition{{
				{Operand: "n", Mod: 100, Operator: OperatorWithin, Ranges: []PluralRange{{Start: 11, End: 99}}},
			}}},
			{Category: PluralOther},
		},
		Numerals: NumeralSpec{
			Digits:     "٠١٢٣٤٥٦٧٨٩",
			DecimalSep: "٫",
			GroupSep:   "٬",
		},
	},

	"fa": {
		Locale: "fa",
		Name:   "فارسی",
		Rules: []PluralRule{
			{Category: PluralOne, Groups: [][]PluralCondition{
				{{Operand: "i", Operator: OperatorEquals, Values: []float64{0}}},
				{{Operand: "n", Operator: OperatorEquals, Values: []float64{1}}},
			}},
			{Category: PluralOther},
		},
		Numerals: NumeralSpec{
			Digits:     "۰۱۲۳۴۵۶۷۸۹",
			DecimalSep: "٫",
			GroupSep:   "٬",
		},
	},
}
