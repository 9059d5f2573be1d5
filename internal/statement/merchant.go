package statement

import (
	"regexp"
	"strings"
)

// Components are the tokens peeled off a raw statement description while
// isolating the merchant.
type Components struct {
	Description string // description with tokens removed, trimmed
	Time        string // HH:MM:SS, if present
	Date        string // MM/DD, if present
	Phone       string // NNN-NNN-NNNN, if present
	Country     string // trailing "US", if present
	State       string // trailing two-letter US state, if present
	Merchant    string // canonical merchant token, never empty
}

var (
	timeRe      = regexp.MustCompile(`[0-9]{2}:[0-9]{2}:[0-9]{2}`)
	shortDateRe = regexp.MustCompile(`[0-1][0-9]/[0-3][0-9]`)
	cashRe      = regexp.MustCompile(`(?i)Branch Cash Withdrawal`)
	phoneRe     = regexp.MustCompile(`[0-9]{3}-[0-9]{3}-[0-9]{4}`)
	countryRe   = regexp.MustCompile(`(US)$`)
	stateRe     = regexp.MustCompile(`(AL|AK|AZ|AR|CA|CO|CT|DE|FL|GA|HI|ID|IL|IN|IA|KS|KY|LA|ME|MD|MA|MI|MN|MS|MO|MT|NE|NV|NH|NJ|NM|NY|NC|ND|OH|OK|OR|PA|RI|SC|SD|TN|TX|UT|VT|VA|WA|WV|WI|WY)$`)
)

// merchantSteps is the ordered tail of the pipeline, applied to the uppercased
// merchant candidate. The order is load-bearing: e.g. masked card numbers must
// go before the trailing-number strip, and the double-space cut before both.
var merchantSteps = []struct {
	name string
	fn   func(string) string
}{
	{"third_party_prefix", reSub(`^(...?\*|LEVELUP\*|PAYPAL \*)`)},
	{"double_space_tail", reSub(`\s\s+.+$`)},
	{"masked_card", reSub(`X+-?X+`)},
	{"id_suffix", reSub(` ID:.*| PAYMENT ID:.*| PMT ID:.*`)},
	{"trim", strings.TrimSpace},
	{"trailing_number", reSub(`[#]?[ ]?[0-9]+$`)},
	{"trim", strings.TrimSpace},
	{"separators", reSub(`( ?- ?|_)`)},
	{"trim", strings.TrimSpace},
	{"dot_com_tail", reSub(`(?i)[.]com.*$`)},
	{"trim", strings.TrimSpace},
	{"stray_trailing_char", reSub(` .$`)},
	{"trim", strings.TrimSpace},
}

func reSub(pattern string) func(string) string {
	re := regexp.MustCompile(pattern)
	return func(s string) string {
		return re.ReplaceAllString(s, "")
	}
}

// extractFirst removes the first occurrence of re from s and returns the
// matched token and the remainder.
func extractFirst(re *regexp.Regexp, s string) (token, rest string) {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return "", s
	}
	return s[loc[0]:loc[1]], s[:loc[0]] + s[loc[1]:]
}

// ParseDescription splits a raw statement description into its components,
// applying the fixed transform sequence. It is a pure function.
func ParseDescription(raw string) Components {
	var c Components
	desc := raw

	c.Time, desc = extractFirst(timeRe, desc)
	c.Date, desc = extractFirst(shortDateRe, desc)
	desc = cashRe.ReplaceAllString(desc, "")
	c.Phone, desc = extractFirst(phoneRe, desc)

	desc = strings.TrimSpace(desc)
	desc = strings.TrimPrefix(desc, "POS ")

	if loc := countryRe.FindStringIndex(desc); loc != nil {
		c.Country = desc[loc[0]:loc[1]]
		desc = strings.TrimSpace(desc[:loc[0]])
	}
	if loc := stateRe.FindStringIndex(desc); loc != nil {
		c.State = desc[loc[0]:loc[1]]
		desc = strings.TrimSpace(desc[:loc[0]])
	}

	merchant := strings.ToUpper(desc)
	for _, s := range merchantSteps {
		merchant = s.fn(merchant)
	}
	if merchant == "" {
		merchant = " "
	}

	c.Description = strings.TrimSpace(desc)
	c.Merchant = merchant
	return c
}

// NormalizeMerchant returns the canonical merchant token for a raw statement
// description. Never empty: an empty result collapses to a single space.
func NormalizeMerchant(raw string) string {
	return ParseDescription(raw).Merchant
}
