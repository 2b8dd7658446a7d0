package rules

import "github.com/leapstack-labs/phraselint/pkg/lint/phraseset"

// manyToManyDef is a rule whose groups offer every good form for any bad form.
type manyToManyDef struct {
	Name        string
	Groups      []phraseset.GroupDef
	Message     string
	Description string
}

var manyToManyRules = []manyToManyDef{
	{
		Name: "ChangeTack",
		Groups: []phraseset.GroupDef{
			// verb
			{Bad: []string{"change tact", "change tacks", "change tacts"}, Good: []string{"change tack"}},
			{Bad: []string{"changed tact", "changed tacks", "changed tacts"}, Good: []string{"changed tack"}},
			{Bad: []string{"changes tact", "changes tacks", "changes tacts"}, Good: []string{"changes tack"}},
			{Bad: []string{"changing tact", "changing tacks", "changing tacts"}, Good: []string{"changing tack"}},
			// noun
			{Bad: []string{"change of tact", "change of tacks", "change of tacts"}, Good: []string{"change of tack"}},
			{Bad: []string{"changes of tact", "changes of tacks", "changes of tacts"}, Good: []string{"changes of tack"}},
			{Bad: []string{"changing of tact", "changing of tacks", "changing of tacts"}, Good: []string{"changing of tack"}},
		},
		Message:     "A change in direction or approach is a change of `tack`. Not `tact` (or `tacks` or `tacts`).",
		Description: "Locates errors in the idioms `to change tack` and `change of tack` to convey the correct meaning of altering one's course or strategy.",
	},
	{
		Name: "GetRidOf",
		Groups: []phraseset.GroupDef{
			{Bad: []string{"get rid off", "get ride of", "get ride off"}, Good: []string{"get rid of"}},
			{Bad: []string{"gets rid off", "gets ride of", "gets ride off"}, Good: []string{"gets rid of"}},
			{Bad: []string{"getting rid off", "getting ride of", "getting ride off"}, Good: []string{"getting rid of"}},
			{Bad: []string{"got rid off", "got ride of", "got ride off"}, Good: []string{"got rid of"}},
			{Bad: []string{"gotten rid off", "gotten ride of", "gotten ride off"}, Good: []string{"gotten rid of"}},
		},
		Message:     "The idiom is `to get rid of`, not `off` or `ride`.",
		Description: "Corrects common misspellings of the idiom `get rid of`.",
	},
	{
		Name: "HowItLooksLike",
		Groups: []phraseset.GroupDef{
			{Bad: []string{"how he looks like"}, Good: []string{"how he looks", "what he looks like"}},
			{Bad: []string{"how it looks like", "how it look like", "how it look's like"}, Good: []string{"how it looks", "what it looks like"}},
			{Bad: []string{"how she looks like"}, Good: []string{"how she looks", "what she looks like"}},
			{Bad: []string{"how they look like", "how they looks like"}, Good: []string{"how they look", "what they look like"}},
		},
		Message:     "Don't use both `how` and `like` together to express similarity.",
		Description: "Corrects `how ... looks like` to `how ... looks` or `what ... looks like`.",
	},
	{
		Name: "RiseTheQuestion",
		Groups: []phraseset.GroupDef{
			{Bad: []string{"rise the question"}, Good: []string{"raise the question"}},
			{Bad: []string{"rises the question"}, Good: []string{"raises the question"}},
		},
		Message:     "Use `raise` instead of `rise` when referring to the act of asking a question.",
		Description: "Corrects `rise the question` to `raise the question`.",
	},
	{
		Name: "WholeEntire",
		Groups: []phraseset.GroupDef{
			{Bad: []string{"whole entire"}, Good: []string{"whole", "entire"}},
			// "an entire", never "a entire"
			{Bad: []string{"a whole entire"}, Good: []string{"a whole", "an entire"}},
		},
		Message:     "Avoid redundancy. Use either `whole` or `entire` for referring to the complete amount or extent.",
		Description: "Corrects the redundancy in `whole entire` to `whole` or `entire`.",
	},
	{
		Name: "WorseOrWorst",
		Groups: []phraseset.GroupDef{
			// worst -> worse
			{Bad: []string{"a lot worst", "alot worst"}, Good: []string{"a lot worse"}},
			{Bad: []string{"far worst"}, Good: []string{"far worse"}},
			{Bad: []string{"much worst"}, Good: []string{"much worse"}},
			{Bad: []string{"turn for the worst"}, Good: []string{"turn for the worse"}},
			{Bad: []string{"worst and worst", "worse and worst", "worst and worse"}, Good: []string{"worse and worse"}},
			{Bad: []string{"worst than"}, Good: []string{"worse than"}},
			// worse -> worst
			{Bad: []string{"worse case scenario", "worse-case scenario", "worse-case-scenario"}, Good: []string{"worst-case scenario"}},
			{Bad: []string{"worse ever"}, Good: []string{"worst ever"}},
		},
		Message:     "`Worse` is for comparing and `worst` is for the extreme case.",
		Description: "Corrects `worse` and `worst` used in contexts where the other belongs.",
	},
}
