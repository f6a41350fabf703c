// Package statement implements the bank statement import pipeline: parsing
// a delimited export into candidate transactions, classifying them by
// keyword, and committing the user-approved subset as bills with duplicate
// detection.
package statement

// Candidate is one parsed row of a statement file, not yet committed.
type Candidate struct {
	Date            string   `json:"date"` // YYYY-MM-DD, empty when unparseable
	Description     string   `json:"description"`
	Amount          float64  `json:"amount"` // magnitude; sign lives in TransactionType
	TransactionType string   `json:"transaction_type"`
	Identifier      string   `json:"identifier,omitempty"` // bank-supplied unique token
	Category        string   `json:"category"`
	PaymentMethod   string   `json:"paymentMethod"`
	IsValid         bool     `json:"isValid"`
	Errors          []string `json:"errors"`
	OriginalRow     int      `json:"originalRow"` // 1-based line in the source file
}

// Result tallies one commit run. Every submitted candidate lands in exactly
// one bucket, so Success+Errors+Duplicates == Total.
type Result struct {
	Success    int           `json:"success"`
	Errors     int           `json:"errors"`
	Duplicates int           `json:"duplicates"`
	Total      int           `json:"total"`
	Details    ResultDetails `json:"details"`
}

// ResultDetails holds the per-bucket candidates in input order.
type ResultDetails struct {
	Imported   []Candidate `json:"imported"`
	Failed     []Candidate `json:"failed"`
	Duplicates []Candidate `json:"duplicates"`
}
