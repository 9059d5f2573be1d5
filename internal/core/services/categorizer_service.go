package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jmwalsh/budgetbook/internal/apperrors"
	"github.com/jmwalsh/budgetbook/internal/core/domain"
	portsrepo "github.com/jmwalsh/budgetbook/internal/core/ports/repositories"
	portssvc "github.com/jmwalsh/budgetbook/internal/core/ports/services"
	"github.com/jmwalsh/budgetbook/internal/middleware"
)

// seedKeyword pairs a merchant keyword with its category. The slice below is
// ordered; earlier entries win when several keywords match one merchant, so
// position matters and is preserved when seeding.
type seedKeyword struct {
	keyword  string
	category string
}

var defaultKeywords = []seedKeyword{
	{"GROCERY", "Groceries"},
	{"WALMART", "Groceries"},
	{"KROGER", "Groceries"},
	{"SAFEWAY", "Groceries"},
	{"WHOLE FOODS", "Groceries"},
	{"TRADER JOE", "Groceries"},
	{"COSTCO", "Groceries"},
	{"ALDI", "Groceries"},
	{"TARGET", "Groceries"},
	{"PUBLIX", "Groceries"},
	{"CVS", "Pharmacy"},
	{"WALGREENS", "Pharmacy"},
	{"RITE AID", "Pharmacy"},
	{"STARBUCKS", "Coffee"},
	{"DUNKIN", "Coffee"},
	{"MCDONALD", "Fast Food"},
	{"BURGER KING", "Fast Food"},
	{"CHICK-FIL-A", "Fast Food"},
	{"TACO BELL", "Fast Food"},
	{"SUBWAY", "Fast Food"},
	{"PIZZA HUT", "Dining"},
	{"DOMINOS", "Dining"},
	{"UBER EATS", "Dining"},
	{"DOORDASH", "Dining"},
	{"GRUBHUB", "Dining"},
	{"EXXON", "Gas"},
	{"SHELL", "Gas"},
	{"CHEVRON", "Gas"},
	{"BP", "Gas"},
	{"SUNOCO", "Gas"},
	{"7-ELEVEN", "Gas"},
	{"UBER", "Transportation"},
	{"LYFT", "Transportation"},
	{"RENT", "Rent/Mortgage"},
	{"MORTGAGE", "Rent/Mortgage"},
	{"APARTMENTS", "Rent/Mortgage"},
	{"LEASE", "Rent/Mortgage"},
	{"UTILITIES", "Utilities"},
	{"ELECTRIC", "Utilities"},
	{"WATER", "Utilities"},
	{"GAS CO", "Utilities"},
	{"COMCAST", "Internet"},
	{"XFINITY", "Internet"},
	{"SPECTRUM", "Internet"},
	{"VERIZON", "Phone"},
	{"AT&T", "Phone"},
	{"T-MOBILE", "Phone"},
	{"SPRINT", "Phone"},
	{"NETFLIX", "Entertainment"},
	{"HULU", "Entertainment"},
	{"SPOTIFY", "Entertainment"},
	{"DISNEY+", "Entertainment"},
	{"ADOBE", "Subscriptions"},
	{"GITHUB", "Subscriptions"},
	{"PATREON", "Donations"},
	{"AMAZON", "Shopping"},
	{"EBAY", "Shopping"},
	{"APPLE", "Shopping"},
	{"BEST BUY", "Electronics"},
	{"IKEA", "Home Improvement"},
	{"HOME DEPOT", "Home Improvement"},
	{"LOWES", "Home Improvement"},
	{"GAMESTOP", "Entertainment"},
	{"DELTA", "Travel"},
	{"UNITED", "Travel"},
	{"AMERICAN AIRLINES", "Travel"},
	{"SOUTHWEST", "Travel"},
	{"MARRIOTT", "Travel"},
	{"HILTON", "Travel"},
	{"HOLIDAY INN", "Travel"},
	{"AIRBNB", "Travel"},
	{"PAYPAL", "Finance"},
	{"VENMO", "Finance"},
	{"SQUARE", "Finance"},
	{"INTUIT", "Finance"},
	{"INSURANCE", "Insurance"},
	{"PROGRESSIVE", "Insurance"},
	{"GEICO", "Insurance"},
	{"STATE FARM", "Insurance"},
	{"ALLSTATE", "Insurance"},
	{"HOSPITAL", "Healthcare"},
	{"MEDICAL", "Healthcare"},
	{"DENTAL", "Healthcare"},
	{"PHARMACY", "Pharmacy"},
	{"CHARITY", "Donations"},
	{"TAX", "Taxes"},
	{"IRS", "Taxes"},
	{"GOVERNMENT", "Government"},
	{"COLLEGE", "Education"},
	{"UNIVERSITY", "Education"},
	{"BOOKS", "Education"},
}

// categorizerService maps merchants to categories through the persistent
// keyword table. Lookup scans keywords in stored order and returns the first
// whose text is contained in the uppercased merchant.
type categorizerService struct {
	keywordRepo portsrepo.KeywordRepositoryFacade

	// mu serializes read-modify-write mutations of the keyword table so two
	// concurrent AddKeyword calls cannot race on positions.
	mu sync.Mutex
}

// NewCategorizerService creates a new CategorizerService.
func NewCategorizerService(keywordRepo portsrepo.KeywordRepositoryFacade) portssvc.CategorizerSvcFacade {
	return &categorizerService{keywordRepo: keywordRepo}
}

var _ portssvc.CategorizerSvcFacade = (*categorizerService)(nil)

func (s *categorizerService) Categorize(ctx context.Context, merchant string) (string, bool, error) {
	mappings, err := s.keywordRepo.ListKeywords(ctx)
	if err != nil {
		return "", false, fmt.Errorf("failed to load keyword table: %w", err)
	}
	upper := strings.ToUpper(merchant)
	for _, m := range mappings {
		if strings.Contains(upper, m.Keyword) {
			return m.Category, true, nil
		}
	}
	return "", false, nil
}

func (s *categorizerService) AddKeyword(ctx context.Context, keyword, category string) error {
	kw := strings.ToUpper(strings.TrimSpace(keyword))
	cat := strings.TrimSpace(category)
	if kw == "" || cat == "" {
		return fmt.Errorf("%w: keyword and category are required", apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.keywordRepo.UpsertKeyword(ctx, kw, cat); err != nil {
		return fmt.Errorf("failed to save keyword %q: %w", kw, err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("keyword mapping added", "keyword", kw, "category", cat)
	return nil
}

func (s *categorizerService) ListKeywords(ctx context.Context) ([]domain.KeywordMapping, error) {
	return s.keywordRepo.ListKeywords(ctx)
}

// SeedDefaults installs the built-in keyword table on first run. A non-empty
// table is left untouched.
func (s *categorizerService) SeedDefaults(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.keywordRepo.ListKeywords(ctx)
	if err != nil {
		return fmt.Errorf("failed to check keyword table: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	mappings := make([]domain.KeywordMapping, len(defaultKeywords))
	for i, kw := range defaultKeywords {
		mappings[i] = domain.KeywordMapping{
			Keyword:  kw.keyword,
			Category: kw.category,
			Position: i,
		}
	}
	if err := s.keywordRepo.SaveKeywords(ctx, mappings); err != nil {
		return fmt.Errorf("failed to seed keyword table: %w", err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("seeded default keyword table", "count", len(mappings))
	return nil
}
