package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteErrorReport serializes the failed candidates of an import run as CSV
// with columns Row, Error, Date, Description, Amount, for download by the
// user. Per-candidate errors are joined with "; ".
func WriteErrorReport(out io.Writer, failed []Candidate) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	if err := w.Write([]string{"Row", "Error", "Date", "Description", "Amount"}); err != nil {
		return fmt.Errorf("write error report header: %w", err)
	}

	for _, c := range failed {
		row := []string{
			strconv.Itoa(c.OriginalRow),
			strings.Join(c.Errors, "; "),
			c.Date,
			c.Description,
			strconv.FormatFloat(c.Amount, 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write error report row %d: %w", c.OriginalRow, err)
		}
	}

	w.Flush()
	return w.Error()
}
