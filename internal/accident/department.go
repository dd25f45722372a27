package accident

import (
	"regexp"
	"strings"
)

// departmentPattern matches a canonical department code: two digits, or
// the Corsican codes 2A/2B.
var departmentPattern = regexp.MustCompile(`^\d{2}$|^2[AB]$`)

// NormalizeDepartment converts a raw department value to its canonical
// 2-character form: numeric codes are left-padded ("1" -> "01"), "2A"
// and "2B" pass through, and case is folded for the Corsican codes.
// The second return value is false when the input does not normalize;
// the record is still usable for non-geographic analysis.
// Normalization is idempotent: a canonical code maps to itself.
func NormalizeDepartment(raw string) (string, bool) {
	dep := strings.ToUpper(strings.TrimSpace(raw))
	if dep == "" {
		return "", false
	}
	if len(dep) == 1 && dep[0] >= '0' && dep[0] <= '9' {
		dep = "0" + dep
	}
	if !departmentPattern.MatchString(dep) {
		return dep, false
	}
	return dep, true
}
