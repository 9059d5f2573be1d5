package statement_test

import (
	"testing"

	"github.com/jmwalsh/budgetbook/internal/statement"
	"github.com/stretchr/testify/assert"
)

func TestParseDescription_FullPipeline(t *testing.T) {
	c := statement.ParseDescription("Branch Cash Withdrawal 07/01 12:00:00 POS WALMART 123 GA")

	assert.Equal(t, "12:00:00", c.Time)
	assert.Equal(t, "07/01", c.Date)
	assert.Equal(t, "GA", c.State)
	assert.Equal(t, "WALMART", c.Merchant)
}

func TestNormalizeMerchant(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "STARBUCKS", "STARBUCKS"},
		{"pos prefix", "POS TRADER JOES", "TRADER JOES"},
		{"trailing store number", "KROGER #1234", "KROGER"},
		{"trailing state and country", "SHELL OIL 5752 ATLANTA GA US", "SHELL OIL 5752 ATLANTA"},
		{"third party processor", "SQ *COFFEE CART", "COFFEE CART"},
		{"paypal processor", "PAYPAL *SPOTIFY", "SPOTIFY"},
		{"masked card", "AMAZON XXXX-XXXX", "AMAZON"},
		{"payment id suffix", "COMCAST PAYMENT ID:998877", "COMCAST"},
		{"id suffix", "VERIZON ID:12345", "VERIZON"},
		{"double space tail", "DELTA AIR LINES   ATL1234 TICKET", "DELTA AIR LINES"},
		{"dot com tail", "NEWEGG.COM/PURCHASE", "NEWEGG"},
		{"phone number", "GODADDY 480-505-8855", "GODADDY"},
		{"underscores", "NET_FLIX", "NETFLIX"},
		{"empty collapses to space", "", " "},
		{"only removable tokens", "12:00:00 07/01", " "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statement.NormalizeMerchant(tt.raw))
		})
	}
}

// NormalizeMerchant must be pure: identical input, identical output,
// regardless of call order.
func TestNormalizeMerchant_Deterministic(t *testing.T) {
	inputs := []string{
		"Branch Cash Withdrawal 07/01 12:00:00 POS WALMART 123 GA",
		"PAYPAL *SPOTIFY",
		"KROGER #1234",
		"",
	}
	first := make([]string, len(inputs))
	for i, in := range inputs {
		first[i] = statement.NormalizeMerchant(in)
	}
	for n := 0; n < 50; n++ {
		for i, in := range inputs {
			assert.Equal(t, first[i], statement.NormalizeMerchant(in))
		}
	}
}

func TestParseDescription_RemovesFirstOccurrenceOnly(t *testing.T) {
	c := statement.ParseDescription("STORE 11:22:33 CAFE 44:55:66")
	assert.Equal(t, "11:22:33", c.Time)
	// Second time token survives extraction and is cut by the double-space rule
	// or kept, but the first one must be gone from the description.
	assert.NotContains(t, c.Description, "11:22:33")
}
