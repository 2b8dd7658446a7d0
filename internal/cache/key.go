package cache

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/leapstack-labs/phraselint/pkg/core"
)

// Key returns the cache key for content linted under fingerprint.
func Key(content []byte, fingerprint string) string {
	d := xxhash.New()
	_, _ = d.WriteString(fingerprint)
	_, _ = d.Write([]byte{0})
	_, _ = d.Write(content)
	return strconv.FormatUint(d.Sum64(), 16)
}

// Fingerprint summarises the lint ordering policy, the enabled rules, their
// severities and their phrase tables. Disabled rules do not contribute.
func Fingerprint(order string, rules []core.RuleInfo) string {
	enabled := make([]core.RuleInfo, 0, len(rules))
	for _, r := range rules {
		if r.Enabled {
			enabled = append(enabled, r)
		}
	}
	sort.Slice(enabled, func(i, j int) bool { return enabled[i].Name < enabled[j].Name })

	d := xxhash.New()
	_, _ = d.WriteString("order=" + order + "\n")
	for _, r := range enabled {
		_, _ = d.WriteString(r.Name)
		_, _ = d.WriteString("\x1f" + r.DefaultSeverity.String())
		_, _ = d.WriteString("\x1f" + r.Message)
		_, _ = d.WriteString("\x1f" + strings.Join(r.BadExamples, "\x1e"))
		_, _ = d.WriteString("\x1f" + strings.Join(r.GoodExamples, "\x1e"))
		_, _ = d.Write([]byte{'\n'})
	}
	return strconv.FormatUint(d.Sum64(), 16)
}
