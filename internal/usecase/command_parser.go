package usecase

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/invoicebot/backend/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Compiled regex patterns for command parsing
var (
	// Matches the overall command shape: customer segment before the first
	// colon, items segment after it
	commandPattern = regexp.MustCompile(`(?i)^/generate\s+invoice\s+for\s+(.+?)\s*:\s*(.+)$`)

	// Marks an item boundary: a comma followed by a digit run and whitespace.
	// Commas inside product names are not followed by a quantity, so they
	// survive the split. The digit run is captured because the next item
	// resumes at its first digit.
	itemBoundaryPattern = regexp.MustCompile(`,\s*(\d+\s)`)

	// Matches one candidate item: quantity, whitespace, product name
	itemPattern = regexp.MustCompile(`(?s)^(\d+)\s+(.+)$`)

	// Multiple spaces cleanup
	spaceRunPattern = regexp.MustCompile(`\s+`)
)

// CommandParser turns raw /generate command text into a ParsedRequest.
// The top-level shape is strict: a command that does not match the grammar
// fails as a whole. Individual malformed items inside a well-shaped command
// are skipped instead, so one bad item does not reject the rest.
type CommandParser struct {
	enableDebugLogging bool
}

// NewCommandParser creates a new command parser
func NewCommandParser(enableDebugLogging bool) *CommandParser {
	return &CommandParser{
		enableDebugLogging: enableDebugLogging,
	}
}

// Parse extracts the customer name and ordered item list from a command.
// Grammar: /generate invoice for <customer> : <qty> <product>, <qty> <product>, ...
// Returns domain.ErrInvalidCommand when the shape does not match, the customer
// segment is empty, no valid item could be extracted, or an item carries a
// zero quantity.
func (p *CommandParser) Parse(text string) (*domain.ParsedRequest, error) {
	match := commandPattern.FindStringSubmatch(text)
	if match == nil {
		if p.enableDebugLogging {
			log.Printf("[PARSER] Shape mismatch: %q", text)
		}
		return nil, domain.ErrInvalidCommand
	}

	customer := normalizeCustomerName(match[1])
	if customer == "" {
		return nil, domain.ErrInvalidCommand
	}

	var items []domain.RequestItem
	for _, candidate := range splitItems(match[2]) {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}

		itemMatch := itemPattern.FindStringSubmatch(candidate)
		if itemMatch == nil {
			// Malformed item inside a well-shaped command: skip, keep going.
			if p.enableDebugLogging {
				log.Printf("[PARSER] Skipping malformed item: %q", candidate)
			}
			continue
		}

		quantity, err := strconv.Atoi(itemMatch[1])
		if err != nil || quantity < 1 {
			return nil, domain.ErrInvalidCommand
		}

		items = append(items, domain.RequestItem{
			ProductName: strings.TrimSpace(itemMatch[2]),
			Quantity:    quantity,
		})
	}

	if len(items) == 0 {
		return nil, domain.ErrInvalidCommand
	}

	if p.enableDebugLogging {
		log.Printf("[PARSER] Parsed customer=%q items=%d", customer, len(items))
	}

	return &domain.ParsedRequest{
		CustomerName: customer,
		Items:        items,
	}, nil
}

// normalizeCustomerName collapses whitespace runs, trims, and title-cases.
// Idempotent: normalizing an already-normalized name returns it unchanged.
func normalizeCustomerName(s string) string {
	collapsed := strings.TrimSpace(spaceRunPattern.ReplaceAllString(s, " "))
	if collapsed == "" {
		return ""
	}
	return cases.Title(language.Und).String(collapsed)
}

// splitItems cuts the items segment at each comma that is immediately
// followed by a quantity (digit run plus whitespace). The comma and the
// spaces after it are dropped; the next part resumes at the first digit.
func splitItems(segment string) []string {
	boundaries := itemBoundaryPattern.FindAllStringSubmatchIndex(segment, -1)

	parts := make([]string, 0, len(boundaries)+1)
	prev := 0
	for _, loc := range boundaries {
		parts = append(parts, segment[prev:loc[0]])
		prev = loc[2]
	}
	parts = append(parts, segment[prev:])

	return parts
}
