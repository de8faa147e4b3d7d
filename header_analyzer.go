// header_analyzer.go
package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
)

// HeaderAnalysis describes what the first line of an uploaded file turned
// out to be: either a header row, or data under generated column names.
type HeaderAnalysis struct {
	Headers        []string
	FirstRowIsData bool
	FirstDataRow   []string
}

// AnalyzeHeaders inspects the first record of a file and decides whether it
// is a header row. When most fields look like headers they are cleaned and
// deduplicated; otherwise column_N names are generated and the record is
// treated as data.
func AnalyzeHeaders(firstRow []string) *HeaderAnalysis {
	if len(firstRow) == 0 {
		return nil
	}

	result := &HeaderAnalysis{
		Headers:      make([]string, len(firstRow)),
		FirstDataRow: firstRow,
	}

	headerLikeCount := 0
	for _, field := range firstRow {
		if isLikelyHeader(field) {
			headerLikeCount++
		}
	}

	if float64(headerLikeCount)/float64(len(firstRow)) >= 0.5 {
		for i, header := range firstRow {
			result.Headers[i] = cleanHeaderName(header, i)
		}
	} else {
		result.FirstRowIsData = true
		for i := range firstRow {
			result.Headers[i] = generateColumnName(i)
		}
	}

	result.Headers = ValidateHeaders(result.Headers)
	return result
}

var headerDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
	regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`),
	regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`),
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\s\d{2}:\d{2}:\d{2}$`),
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\s\d{2}:\d{2}:\d{2}\.\d+$`),
}

// isLikelyHeader reports whether a field reads like a column title rather
// than a data value: not a number, not a date, and mostly letters.
func isLikelyHeader(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return false
	}
	for _, pattern := range headerDatePatterns {
		if pattern.MatchString(text) {
			return false
		}
	}

	letters, digits, specials := 0, 0, 0
	for _, r := range text {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r):
			digits++
		case unicode.IsSpace(r):
		default:
			specials++
		}
	}
	totalChars := letters + digits + specials
	if totalChars == 0 {
		return false
	}
	return letters > 0 && float64(letters)/float64(totalChars) >= 0.3
}

func generateColumnName(index int) string {
	return fmt.Sprintf("column_%d", index+1)
}

// ValidateHeaders suffixes duplicate names with a counter so every column
// name stays unique within the dataset.
func ValidateHeaders(headers []string) []string {
	seen := make(map[string]int)
	result := make([]string, len(headers))

	for i, header := range headers {
		originalHeader := header
		counter := 1
		for {
			if count, exists := seen[header]; exists {
				header = fmt.Sprintf("%s_%d", originalHeader, counter)
				counter++
			} else {
				seen[header] = count + 1
				break
			}
		}
		result[i] = header
	}
	return result
}

var specialSymbolPattern = regexp.MustCompile("[^a-zA-Z0-9]+")

// replaceSpecialSymbols collapses anything outside [a-zA-Z0-9] into single
// underscores; non-latin letters are transliterated first so they survive.
func replaceSpecialSymbols(input string) string {
	input = unidecode.Unidecode(input)
	processed := specialSymbolPattern.ReplaceAllString(input, "_")
	processed = strings.ReplaceAll(processed, "__", "_")
	return strings.Trim(processed, "_")
}

func cleanHeaderName(header string, index int) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return generateColumnName(index)
	}
	cleaned := replaceSpecialSymbols(header)
	if cleaned == "" || !isLikelyHeader(header) {
		return generateColumnName(index)
	}
	return strings.ToLower(cleaned)
}
