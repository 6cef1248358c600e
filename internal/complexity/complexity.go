// Package complexity computes per-file cyclomatic complexity (C4): one plus
// the count of decision points in the source, after comments and string
// literals have been stripped.
package complexity

import "regexp"

var cLikeDecisionRe = regexp.MustCompile(`\b(if|for|while|do|case|catch)\b|&&|\|\||\?`)
var goExtraDecisionRe = regexp.MustCompile(`\b(switch|select)\b`)
var csharpExtraDecisionRe = regexp.MustCompile(`\bforeach\b`)
var pythonDecisionRe = regexp.MustCompile(`\b(if|elif|for|while|except|and|or|else)\b`)

// jsFunctionRe approximates a function boundary: named/anonymous function
// declarations, expressions, arrow functions, and class methods.
var jsFunctionRe = regexp.MustCompile(`\bfunction\b[^{]*\{|=>\s*\{|\)\s*\{`)
var jsDecisionRe = regexp.MustCompile(`\b(if|for|while|do|catch)\b|&&|\|\||\?(?:[^:]*:)`)
var jsSwitchCaseRe = regexp.MustCompile(`\bcase\s+[^:]+:`)

// Compute returns the cyclomatic complexity of source for the given
// language tag. An empty source yields 0; otherwise the result is always
// >= 1 for a successfully-scored file.
func Compute(language, source string) int {
	if source == "" {
		return 0
	}
	stripped := StripCommentsAndStrings(language, source)
	switch language {
	case "go":
		return 1 + len(cLikeDecisionRe.FindAllString(stripped, -1)) + len(goExtraDecisionRe.FindAllString(stripped, -1))
	case "c", "cpp", "java":
		return 1 + len(cLikeDecisionRe.FindAllString(stripped, -1))
	case "csharp":
		return 1 + len(cLikeDecisionRe.FindAllString(stripped, -1)) + len(csharpExtraDecisionRe.FindAllString(stripped, -1))
	case "python":
		return 1 + len(pythonDecisionRe.FindAllString(stripped, -1))
	case "javascript":
		return computeJS(stripped)
	default:
		return 0
	}
}

// computeJS sums a per-function score across the file, each function
// starting at 1. A file with no recognizable function boundaries scores as
// one implicit top-level function.
func computeJS(source string) int {
	bounds := jsFunctionRe.FindAllStringIndex(source, -1)
	if len(bounds) == 0 {
		return 1 + jsBodyScore(source)
	}
	total := 0
	for i, b := range bounds {
		end := len(source)
		if i+1 < len(bounds) {
			end = bounds[i+1][0]
		}
		body := source[b[1]:end]
		total += 1 + jsBodyScore(body)
	}
	if total < 1 {
		total = 1
	}
	return total
}

func jsBodyScore(body string) int {
	score := len(jsDecisionRe.FindAllString(body, -1))
	score += len(jsSwitchCaseRe.FindAllString(body, -1))
	return score
}
