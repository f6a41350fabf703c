package statement

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Accepted header names per required field, matched case-insensitively as
// substrings. Covers the Portuguese and English variants of bank exports.
var (
	dateHeaders        = []string{"data", "date"}
	amountHeaders      = []string{"valor", "amount", "quantia"}
	identifierHeaders  = []string{"identificador", "identifier", "id"}
	descriptionHeaders = []string{"descrição", "description", "descricao", "histórico", "historico"}
)

var (
	dateSlash  = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`) // dd/mm/yyyy
	dateISO    = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`) // yyyy-mm-dd
	dateDash   = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})$`) // dd-mm-yyyy
	commaCents = regexp.MustCompile(`,\d{1,2}$`)
	amountJunk = regexp.MustCompile(`[^0-9.\-]`)
)

// Parse turns raw statement file text into one Candidate per data row.
// A structural problem (too-short file, required columns missing) returns an
// error and no candidates; a malformed row only marks that row invalid.
func Parse(content string) ([]Candidate, error) {
	content = strings.TrimPrefix(content, "\uFEFF")
	lines := strings.Split(strings.TrimSpace(content), "\n")

	if len(lines) < 2 {
		return nil, fmt.Errorf("statement file must have at least 2 lines (header + data)")
	}

	// The whole file uses one separator, decided by the header line.
	separator := ","
	if strings.Contains(lines[0], ";") {
		separator = ";"
	}

	headers := splitQuoted(lines[0], separator)
	for i := range headers {
		headers[i] = strings.TrimSpace(strings.ReplaceAll(headers[i], `"`, ""))
	}

	dateIdx := findColumn(headers, dateHeaders)
	amountIdx := findColumn(headers, amountHeaders)
	identifierIdx := findColumn(headers, identifierHeaders)
	descriptionIdx := findColumn(headers, descriptionHeaders)

	if dateIdx == -1 || descriptionIdx == -1 || amountIdx == -1 {
		return nil, fmt.Errorf(
			"could not identify required columns. Found: %s. Required: date, description, amount",
			strings.Join(headers, ", "))
	}

	minFields := dateIdx
	for _, idx := range []int{descriptionIdx, amountIdx, identifierIdx} {
		if idx > minFields {
			minFields = idx
		}
	}
	minFields++

	var candidates []Candidate
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		candidates = append(candidates, parseRow(line, separator, i+1, minFields, dateIdx, amountIdx, identifierIdx, descriptionIdx))
	}

	return candidates, nil
}

func parseRow(line, separator string, rowNum, minFields, dateIdx, amountIdx, identifierIdx, descriptionIdx int) Candidate {
	values := splitQuoted(line, separator)

	if len(values) < minFields {
		return Candidate{
			TransactionType: "expense",
			Category:        DefaultTag,
			PaymentMethod:   DefaultTag,
			Errors:          []string{fmt.Sprintf("Line %d: insufficient number of columns", rowNum)},
			OriginalRow:     rowNum,
		}
	}

	dateStr := cleanField(values[dateIdx])
	amountStr := cleanField(values[amountIdx])
	description := cleanField(values[descriptionIdx])
	identifier := ""
	if identifierIdx >= 0 {
		identifier = cleanField(values[identifierIdx])
	}

	var errors []string

	date := ""
	if dateStr == "" {
		errors = append(errors, "Date is required")
	} else if normalized, ok := normalizeDate(dateStr); !ok {
		errors = append(errors, "Invalid date format. Use dd/mm/yyyy, dd-mm-yyyy or yyyy-mm-dd")
	} else if _, err := time.Parse("2006-01-02", normalized); err != nil {
		errors = append(errors, "Invalid date")
	} else {
		date = normalized
	}

	if description == "" {
		errors = append(errors, "Description is required")
	}

	amount := 0.0
	if amountStr == "" {
		errors = append(errors, "Amount is required")
	} else {
		parsed, err := normalizeAmount(amountStr)
		if err != nil {
			errors = append(errors, "Amount must be a valid number")
		} else {
			amount = parsed
		}
	}

	transactionType := "income"
	if amount < 0 {
		transactionType = "expense"
	}

	return Candidate{
		Date:            date,
		Description:     description,
		Amount:          math.Abs(amount),
		TransactionType: transactionType,
		Identifier:      identifier,
		Category:        Categorize(description),
		PaymentMethod:   PaymentMethod(description),
		IsValid:         len(errors) == 0,
		Errors:          errors,
		OriginalRow:     rowNum,
	}
}

// splitQuoted splits on the separator while respecting double-quoted fields,
// which may contain the separator themselves.
func splitQuoted(line, separator string) []string {
	sep := rune(separator[0])
	var values []string
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == sep && !inQuotes:
			values = append(values, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	values = append(values, strings.TrimSpace(current.String()))
	return values
}

func cleanField(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, `"`, ""))
}

func findColumn(headers, names []string) int {
	for i, header := range headers {
		lower := strings.ToLower(header)
		for _, name := range names {
			if strings.Contains(lower, name) {
				return i
			}
		}
	}
	return -1
}

// normalizeDate converts the accepted date formats to yyyy-mm-dd. The
// returned bool reports whether any format matched; calendar validity is
// checked separately by the caller.
func normalizeDate(s string) (string, bool) {
	if m := dateSlash.FindStringSubmatch(s); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1]), true
	}
	if dateISO.MatchString(s) {
		return s, true
	}
	if m := dateDash.FindStringSubmatch(s); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1]), true
	}
	return "", false
}

// normalizeAmount parses both "1234.56" and the Brazilian "1.234,56" form,
// keeping the sign. Currency symbols and other junk are stripped.
func normalizeAmount(s string) (float64, error) {
	clean := strings.TrimSpace(s)

	if commaCents.MatchString(clean) {
		// Brazilian format: periods are thousands separators.
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	}

	clean = amountJunk.ReplaceAllString(clean, "")

	return strconv.ParseFloat(clean, 64)
}
