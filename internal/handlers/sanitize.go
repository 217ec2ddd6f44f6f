package handlers

import (
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy     *bluemonday.Policy
	strictPolicyOnce sync.Once
)

// clean strips markup from a posted value. The policy escapes what it keeps,
// so the result is unescaped again to compare against the input.
func clean(s string) string {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return html.UnescapeString(strictPolicy.Sanitize(s))
}

// hasMarkup reports whether the policy would alter s.
func hasMarkup(s string) bool {
	return clean(s) != s
}
