package tui

import (
	"github.com/leonelquinteros/gotext"
)

// englishPo holds the built-in English labels
const englishPo = `
msgid ""
msgstr ""
"Content-Type: text/plain; charset=UTF-8\n"
"Language: en\n"

msgid "ITERATION"
msgstr "Iteration %d of %d"

msgid "TEAMS_LEFT"
msgstr "%d teams left"

msgid "TEAM"
msgstr "Team %d"

msgid "SOLDIER"
msgstr "%s %-9s hp %3d/%-3d bullets %-2d grenades %-2d %s"

msgid "MESSAGES"
msgstr "Messages"

msgid "WINNER"
msgstr "Team %d wins"

msgid "DRAW"
msgstr "No team survived"

msgid "TOO_SMALL"
msgstr "Terminal is %dx%d, the map needs %dx%d"
`

// loadLabels parses the built-in label catalogue
func loadLabels() *gotext.Po {
	po := gotext.NewPo()
	po.Parse([]byte(englishPo))
	return po
}
