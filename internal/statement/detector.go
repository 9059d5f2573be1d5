// Package statement turns heterogeneous bank-statement CSV exports into
// canonical parsed transactions: schema detection, merchant extraction, and
// amount/date normalization.
package statement

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jmwalsh/budgetbook/internal/apperrors"
)

const (
	// maxBannerLines bounds how many leading informational lines are skipped
	// before giving up on finding a header.
	maxBannerLines = 10

	// sniffSampleSize is how much of the remaining stream the delimiter
	// sniffer looks at.
	sniffSampleSize = 4096
)

// delimiterCandidates is the fixed set the sniffer chooses from.
var delimiterCandidates = []rune{',', ';', '\t'}

// RawRow is one data row of an input file with its originating line number.
type RawRow struct {
	Line  int
	Cells []string
}

// Field returns the cell at idx, or "" when idx is out of range or unmapped.
func (r RawRow) Field(idx int) string {
	if idx < 0 || idx >= len(r.Cells) {
		return ""
	}
	return strings.TrimSpace(r.Cells[idx])
}

// SchemaMapping associates semantic roles with column positions for one file.
// A value of -1 means the role was not resolved. Built once per file by
// NewReader and immutable afterward.
type SchemaMapping struct {
	Delimiter  rune
	Positional bool // header-less file: column 0 = description, column 1 = amount
	Headers    []string

	Date         int
	Description  int
	Amount       int
	Debit        int
	Credit       int
	CategoryHint int
	TypeHint     int
}

// HasSplitColumns reports whether the file carries separate debit/credit
// columns instead of a single signed amount column.
func (m SchemaMapping) HasSplitColumns() bool {
	return m.Debit >= 0 || m.Credit >= 0
}

// AmountColumnName returns the header of the single amount column, used for
// the debit*/credit* column-name classification override. Empty for
// positional files or split columns.
func (m SchemaMapping) AmountColumnName() string {
	if m.Amount < 0 || m.Amount >= len(m.Headers) {
		return ""
	}
	return m.Headers[m.Amount]
}

// headerAliases maps semantic roles to known header spellings, matched
// case-insensitively after trimming.
var headerAliases = map[string][]string{
	"date":          {"date", "transaction date", "posted date", "post date", "posted", "run date", "settlement date"},
	"description":   {"description", "details", "memo", "payee", "merchant", "name"},
	"amount":        {"amount", "transaction amount", "value"},
	"debit":         {"debit", "debit amount", "withdrawal", "withdrawals"},
	"credit":        {"credit", "credit amount", "deposit", "deposits"},
	"category_hint": {"category", "classification"},
	"type_hint":     {"transaction type", "type", "tx_type"},
}

// headerFragments is the substring-containment fallback applied per role when
// no alias matched. Order matters: debit/credit are tried before amount so a
// "Debit Amount" header does not land on the amount role.
var headerFragments = []struct {
	role     string
	fragment string
}{
	{"date", "date"},
	{"debit", "debit"},
	{"credit", "credit"},
	{"amount", "amount"},
	{"description", "desc"},
	{"description", "memo"},
	{"description", "payee"},
	{"description", "merchant"},
	{"category_hint", "categ"},
	{"type_hint", "type"},
}

// Reader streams data rows of one statement file after schema detection.
type Reader struct {
	mapping SchemaMapping
	cr      *csv.Reader
	line    int
	pending *RawRow // set when the header candidate turned out to be data
}

// NewReader consumes the leading portion of r (banner lines plus header),
// detects the file's schema, and returns a Reader positioned at the first
// data row. It fails with apperrors.ErrSchema when fewer than two usable
// columns can be resolved.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReaderSize(r, sniffSampleSize*2)

	line := 0
	skipped := 0
	var headerLine string
	for {
		raw, err := br.ReadString('\n')
		if raw == "" && err != nil {
			return nil, fmt.Errorf("%w: no header line found", apperrors.ErrSchema)
		}
		line++
		trimmed := strings.TrimRight(raw, "\r\n")
		if isBannerLine(trimmed) {
			skipped++
			if skipped > maxBannerLines {
				return nil, fmt.Errorf("%w: more than %d leading banner lines", apperrors.ErrSchema, maxBannerLines)
			}
			continue
		}
		headerLine = trimmed
		break
	}

	sample, _ := br.Peek(sniffSampleSize)
	delim := sniffDelimiter(headerLine, string(sample))

	fields, err := splitLine(headerLine, delim)
	if err != nil || len(fields) == 0 {
		return nil, fmt.Errorf("%w: unparseable header line", apperrors.ErrSchema)
	}

	sr := &Reader{line: line}
	if looksLikeData(fields) {
		// The candidate header is already a data row: fall back to positional
		// mapping and re-serve this line as the first data row.
		sr.mapping = SchemaMapping{
			Delimiter:    delim,
			Positional:   true,
			Description:  0,
			Amount:       1,
			Date:         -1,
			Debit:        -1,
			Credit:       -1,
			CategoryHint: -1,
			TypeHint:     -1,
		}
		sr.pending = &RawRow{Line: line, Cells: fields}
	} else {
		mapping, err := mapHeader(fields, delim)
		if err != nil {
			return nil, err
		}
		sr.mapping = mapping
	}

	cr := csv.NewReader(br)
	cr.Comma = delim
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	sr.cr = cr
	return sr, nil
}

// Mapping returns the detected schema for this file.
func (r *Reader) Mapping() SchemaMapping {
	return r.mapping
}

// Next returns the next data row, or io.EOF when the file is exhausted.
// Blank lines are skipped.
func (r *Reader) Next() (RawRow, error) {
	if r.pending != nil {
		row := *r.pending
		r.pending = nil
		return row, nil
	}
	for {
		cells, err := r.cr.Read()
		if err == io.EOF {
			return RawRow{}, io.EOF
		}
		if err != nil {
			return RawRow{}, fmt.Errorf("%w: %v", apperrors.ErrSchema, err)
		}
		r.line++
		if allEmpty(cells) {
			continue
		}
		return RawRow{Line: r.line, Cells: cells}, nil
	}
}

// isBannerLine reports whether a line is empty, whitespace-only, or consists
// solely of delimiter/quote characters. Bank exports commonly open with such
// informational filler before the real header.
func isBannerLine(line string) bool {
	for _, r := range line {
		switch r {
		case ' ', '\t', ',', ';', '"', '\'':
		default:
			return false
		}
	}
	return true
}

// sniffDelimiter picks the candidate whose per-line count is consistent and
// highest across the sample, falling back to comma.
func sniffDelimiter(headerLine, sample string) rune {
	lines := []string{headerLine}
	for _, l := range strings.Split(sample, "\n") {
		l = strings.TrimRight(l, "\r")
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, l)
		if len(lines) >= 10 {
			break
		}
	}

	best := ','
	bestScore := 0
	for _, cand := range delimiterCandidates {
		minCount := -1
		total := 0
		for _, l := range lines {
			n := strings.Count(l, string(cand))
			if minCount < 0 || n < minCount {
				minCount = n
			}
			total += n
		}
		// Every sampled line must contain the delimiter at least once.
		if minCount < 1 {
			continue
		}
		if total > bestScore {
			best = cand
			bestScore = total
		}
	}
	return best
}

// looksLikeData reports whether a candidate header line is actually a data
// row: its second field parses as a plain number.
func looksLikeData(fields []string) bool {
	if len(fields) < 2 {
		return false
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	return err == nil
}

// mapHeader resolves header names to semantic roles via alias lists, then
// substring containment for roles still unresolved.
func mapHeader(headers []string, delim rune) (SchemaMapping, error) {
	m := SchemaMapping{
		Delimiter:    delim,
		Headers:      headers,
		Date:         -1,
		Description:  -1,
		Amount:       -1,
		Debit:        -1,
		Credit:       -1,
		CategoryHint: -1,
		TypeHint:     -1,
	}

	roles := make(map[string]int)
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	for role, aliases := range headerAliases {
		for i, h := range normalized {
			if _, taken := roles[role]; taken {
				break
			}
			for _, alias := range aliases {
				if h == alias {
					roles[role] = i
					break
				}
			}
		}
	}

	for _, f := range headerFragments {
		if _, resolved := roles[f.role]; resolved {
			continue
		}
		for i, h := range normalized {
			if columnTaken(roles, i) {
				continue
			}
			if strings.Contains(h, f.fragment) {
				roles[f.role] = i
				break
			}
		}
	}

	assign := func(role string) int {
		if i, ok := roles[role]; ok {
			return i
		}
		return -1
	}
	m.Date = assign("date")
	m.Description = assign("description")
	m.Amount = assign("amount")
	m.Debit = assign("debit")
	m.Credit = assign("credit")
	m.CategoryHint = assign("category_hint")
	m.TypeHint = assign("type_hint")

	if m.Description < 0 || (m.Amount < 0 && !m.HasSplitColumns()) {
		return SchemaMapping{}, fmt.Errorf("%w: could not resolve description and amount columns", apperrors.ErrSchema)
	}
	return m, nil
}

func columnTaken(roles map[string]int, col int) bool {
	for _, i := range roles {
		if i == col {
			return true
		}
	}
	return false
}

// splitLine parses one physical line as a CSV record.
func splitLine(line string, delim rune) ([]string, error) {
	cr := csv.NewReader(strings.NewReader(line))
	cr.Comma = delim
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	fields, err := cr.Read()
	if err != nil {
		return nil, err
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields, nil
}

func allEmpty(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
