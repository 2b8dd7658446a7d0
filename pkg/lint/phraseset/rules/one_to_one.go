package rules

import "github.com/leapstack-labs/phraselint/pkg/lint/phraseset"

// oneToOneDef is a rule whose pairs each have one bad and one good form.
type oneToOneDef struct {
	Name        string
	Pairs       []phraseset.Pair
	Message     string
	Description string
}

var oneToOneRules = []oneToOneDef{
	{
		Name: "Ado",
		Pairs: []phraseset.Pair{
			{Bad: "further adieu", Good: "further ado"},
			{Bad: "much adieu", Good: "much ado"},
		},
		Message:     "Don't confuse the French/German `adieu`, meaning `farewell`, with the English `ado`, meaning `fuss`.",
		Description: "Corrects `adieu` to `ado`.",
	},
	{
		Name: "ClientOrServerSide",
		Pairs: []phraseset.Pair{
			{Bad: "client's side", Good: "client-side"},
			{Bad: "server's side", Good: "server-side"},
		},
		Message:     "`Client-side` and `server-side` do not use an apostrophe.",
		Description: "Corrects extraneous apostrophe in `client's side` and `server's side`.",
	},
	{
		Name: "DefiniteArticle",
		Pairs: []phraseset.Pair{
			{Bad: "definitive article", Good: "definite article"},
			{Bad: "definitive articles", Good: "definite articles"},
		},
		Message:     "The correct term for `the` is `definite article`.",
		Description: "The name of the word `the` is `definite article`.",
	},
	{
		Name: "Discuss",
		Pairs: []phraseset.Pair{
			{Bad: "discuss about", Good: "discuss"},
			{Bad: "discussed about", Good: "discussed"},
			{Bad: "discusses about", Good: "discusses"},
			{Bad: "discussing about", Good: "discussing"},
		},
		Message:     "`About` is redundant",
		Description: "Removes unnecessary `about` after `discuss`.",
	},
	{
		Name: "ExpandArgument",
		Pairs: []phraseset.Pair{
			{Bad: "arg", Good: "argument"},
			{Bad: "args", Good: "arguments"},
		},
		Message:     "Use `argument` instead of `arg`",
		Description: "Expands the abbreviation `arg` to the full word `argument` for clarity.",
	},
	{
		Name: "ExpandDependencies",
		Pairs: []phraseset.Pair{
			{Bad: "deps", Good: "dependencies"},
			{Bad: "dep", Good: "dependency"},
		},
		Message:     "Use `dependencies` instead of `deps`",
		Description: "Expands the abbreviation `deps` to the full word `dependencies` for clarity.",
	},
	{
		Name: "ExpandStandardInputAndOutput",
		Pairs: []phraseset.Pair{
			{Bad: "stdin", Good: "standard input"},
			{Bad: "stdout", Good: "standard output"},
			{Bad: "stderr", Good: "standard error"},
		},
		Message:     "Use `standard input`, `standard output`, and `standard error` instead of `stdin`, `stdout`, and `stderr`",
		Description: "Expands the abbreviations `stdin`, `stdout`, and `stderr` to the full words `standard input`, etc. for clarity.",
	},
	{
		Name: "ExplanationMark",
		Pairs: []phraseset.Pair{
			{Bad: "explanation mark", Good: "exclamation mark"},
			{Bad: "explanation marks", Good: "exclamation marks"},
			{Bad: "explanation point", Good: "exclamation point"},
		},
		Message:     "The correct names for the `!` punctuation are `exclamation mark` and `exclamation point`.",
		Description: "Corrects the eggcorn `explanation mark/point` to `exclamation mark/point`.",
	},
	{
		Name: "HaveGone",
		Pairs: []phraseset.Pair{
			{Bad: "had went", Good: "had gone"},
			{Bad: "has went", Good: "has gone"},
			{Bad: "have went", Good: "have gone"},
			{Bad: "having went", Good: "having gone"},
		},
		Message:     "`Have gone` is the correct form.",
		Description: "Corrects `have went` to `have gone`.",
	},
	{
		Name: "HavePassed",
		Pairs: []phraseset.Pair{
			{Bad: "had past", Good: "had passed"},
			{Bad: "has past", Good: "has passed"},
			{Bad: "have past", Good: "have passed"},
			{Bad: "having past", Good: "having passed"},
		},
		Message:     "Did you mean the verb `passed`?",
		Description: "Suggests `past` for `passed` in case a verb was intended.",
	},
	{
		Name: "HomeInOn",
		Pairs: []phraseset.Pair{
			{Bad: "hone in on", Good: "home in on"},
			{Bad: "honed in on", Good: "homed in on"},
			{Bad: "hones in on", Good: "homes in on"},
			{Bad: "honing in on", Good: "homing in on"},
		},
		Message:     "Use `home in on` rather than `hone in on`",
		Description: "Corrects `hone in on` to `home in on`.",
	},
	{
		Name: "InDetail",
		Pairs: []phraseset.Pair{
			{Bad: "in details", Good: "in detail"},
			{Bad: "in more details", Good: "in more detail"},
		},
		Message:     "Use singular `in detail` for referring to a detailed description.",
		Description: "Corrects unidiomatic plural `in details` to `in detail`.",
	},
	{
		Name: "InvestIn",
		Pairs: []phraseset.Pair{
			{Bad: "invest into", Good: "invest in"},
			{Bad: "invested into", Good: "invested in"},
			{Bad: "investing into", Good: "investing in"},
			{Bad: "invests into", Good: "invests in"},
		},
		Message:     "Traditionally `invest` uses the preposition `in`.",
		Description: "`Invest` is traditionally followed by 'in,' not `into.`",
	},
	{
		Name: "MootPoint",
		Pairs: []phraseset.Pair{
			{Bad: "mute point", Good: "moot point"},
			{Bad: "point is mute", Good: "point is moot"},
		},
		Message:     "Use `moot` instead of `mute` when referring to a debatable or irrelevant point.",
		Description: "Corrects `mute` to `moot` in the phrase `moot point`.",
	},
	{
		Name: "OperatingSystem",
		Pairs: []phraseset.Pair{
			{Bad: "operative system", Good: "operating system"},
			{Bad: "operative systems", Good: "operating systems"},
		},
		Message:     "Did you mean `operating system`?",
		Description: "Ensures `operating system` is used correctly instead of `operative system`.",
	},
	{
		Name: "Piggyback",
		Pairs: []phraseset.Pair{
			{Bad: "piggy bag", Good: "piggyback"},
			{Bad: "piggy bagged", Good: "piggybacked"},
			{Bad: "piggy bagging", Good: "piggybacking"},
		},
		Message:     "Did you mean `piggyback`?",
		Description: "Corrects the eggcorn `piggy bag` to `piggyback`, which is the proper term for riding on someone’s back or using an existing system.",
	},
}
