package nlp

import "strings"

// Lemma returns a normalized form of a token: lowercased with common
// inflectional suffixes removed. It is intentionally rough: interpretation
// only needs stems stable enough for substring checks ("exceeds",
// "exceeded", "exceeding" all stem to "exceed").
func Lemma(text string) string {
	w := strings.ToLower(text)
	switch {
	case strings.HasSuffix(w, "ies") && len(w) > 4:
		return w[:len(w)-3] + "y"
	case strings.HasSuffix(w, "ing") && len(w) > 5:
		return w[:len(w)-3]
	case strings.HasSuffix(w, "ed") && len(w) > 4:
		return w[:len(w)-2]
	case strings.HasSuffix(w, "es") && len(w) > 4:
		return w[:len(w)-2]
	case strings.HasSuffix(w, "s") && len(w) > 3 && !strings.HasSuffix(w, "ss"):
		return w[:len(w)-1]
	}
	return w
}
