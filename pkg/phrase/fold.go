package phrase

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Casers are stateful and must not be shared between goroutines.
var folderPool = sync.Pool{
	New: func() any {
		c := cases.Fold()
		return &c
	},
}

// apostrophes lists characters normalized to an ASCII apostrophe.
var apostrophes = strings.NewReplacer(
	"’", "'", // right single quotation mark
	"‘", "'", // left single quotation mark
	"ʼ", "'", // modifier letter apostrophe
	"＇", "'", // fullwidth apostrophe
)

// Fold returns the comparison form of a token: NFC-normalized, Unicode
// case-folded, with typographic apostrophes replaced by "'".
func Fold(s string) string {
	if isFoldedASCII(s) {
		return s
	}
	c := folderPool.Get().(*cases.Caser)
	defer folderPool.Put(c)
	return apostrophes.Replace(c.String(norm.NFC.String(s)))
}

// isFoldedASCII reports whether s is already in folded form.
func isFoldedASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b >= 0x80 || (b >= 'A' && b <= 'Z') {
			return false
		}
	}
	return true
}
