package usecase

import (
	"errors"
	"testing"

	"github.com/invoicebot/backend/internal/domain"
)

func TestNewCommandParser(t *testing.T) {
	t.Run("creates parser with debug logging disabled", func(t *testing.T) {
		p := NewCommandParser(false)
		if p.enableDebugLogging {
			t.Error("expected debug logging to be disabled")
		}
	})

	t.Run("creates parser with debug logging enabled", func(t *testing.T) {
		p := NewCommandParser(true)
		if !p.enableDebugLogging {
			t.Error("expected debug logging to be enabled")
		}
	})
}

func TestParse(t *testing.T) {
	p := NewCommandParser(false)

	testCases := []struct {
		name         string
		text         string
		wantCustomer string
		wantItems    []domain.RequestItem
	}{
		{
			name:         "single item",
			text:         "/generate invoice for Bob: 1 Pen",
			wantCustomer: "Bob",
			wantItems:    []domain.RequestItem{{ProductName: "Pen", Quantity: 1}},
		},
		{
			name:         "multiple items",
			text:         "/generate invoice for Jane Doe: 2 Aspirin, 1 Bandage",
			wantCustomer: "Jane Doe",
			wantItems: []domain.RequestItem{
				{ProductName: "Aspirin", Quantity: 2},
				{ProductName: "Bandage", Quantity: 1},
			},
		},
		{
			name:         "title-cases and collapses customer whitespace",
			text:         "/generate invoice for   jane    doe : 3 Stapler",
			wantCustomer: "Jane Doe",
			wantItems:    []domain.RequestItem{{ProductName: "Stapler", Quantity: 3}},
		},
		{
			name:         "case-insensitive command keyword",
			text:         "/GENERATE INVOICE FOR bob: 1 Pen",
			wantCustomer: "Bob",
			wantItems:    []domain.RequestItem{{ProductName: "Pen", Quantity: 1}},
		},
		{
			name:         "multi-word product names preserved",
			text:         "/generate invoice for Bob: 2 Blue Ball Pen, 1 A4 Paper Ream",
			wantCustomer: "Bob",
			wantItems: []domain.RequestItem{
				{ProductName: "Blue Ball Pen", Quantity: 2},
				{ProductName: "A4 Paper Ream", Quantity: 1},
			},
		},
		{
			name:         "comma inside product name is not a split point",
			text:         "/generate invoice for Bob: 2 Widget, Deluxe Model",
			wantCustomer: "Bob",
			wantItems:    []domain.RequestItem{{ProductName: "Widget, Deluxe Model", Quantity: 2}},
		},
		{
			name:         "comma followed by quantity is a split point",
			text:         "/generate invoice for Bob: 2 Widget, 3 Deluxe Model",
			wantCustomer: "Bob",
			wantItems: []domain.RequestItem{
				{ProductName: "Widget", Quantity: 2},
				{ProductName: "Deluxe Model", Quantity: 3},
			},
		},
		{
			name:         "malformed leading item is skipped without poisoning the rest",
			text:         "/generate invoice for Bob: assorted pens, 2 Pencil",
			wantCustomer: "Bob",
			wantItems: []domain.RequestItem{
				{ProductName: "Pencil", Quantity: 2},
			},
		},
		{
			name:         "comma item without quantity merges into previous name",
			text:         "/generate invoice for Bob: 2 Pen, fine tip, 3 Pencil",
			wantCustomer: "Bob",
			wantItems: []domain.RequestItem{
				{ProductName: "Pen, fine tip", Quantity: 2},
				{ProductName: "Pencil", Quantity: 3},
			},
		},
		{
			name:         "extra whitespace around colon and commas",
			text:         "/generate invoice for Bob :  2 Pen ,  1 Pencil",
			wantCustomer: "Bob",
			wantItems: []domain.RequestItem{
				{ProductName: "Pen", Quantity: 2},
				{ProductName: "Pencil", Quantity: 1},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := p.Parse(tc.text)
			if err != nil {
				t.Fatalf("Parse() error = %v, want nil", err)
			}
			if got.CustomerName != tc.wantCustomer {
				t.Errorf("CustomerName = %q, want %q", got.CustomerName, tc.wantCustomer)
			}
			if len(got.Items) != len(tc.wantItems) {
				t.Fatalf("len(Items) = %d, want %d (%v)", len(got.Items), len(tc.wantItems), got.Items)
			}
			for i, want := range tc.wantItems {
				if got.Items[i] != want {
					t.Errorf("Items[%d] = %+v, want %+v", i, got.Items[i], want)
				}
			}
		})
	}
}

func TestParse_Failures(t *testing.T) {
	p := NewCommandParser(false)

	testCases := []struct {
		name string
		text string
	}{
		{name: "empty input", text: ""},
		{name: "unrelated text", text: "hello there"},
		{name: "wrong command prefix", text: "/invoice for Bob: 1 Pen"},
		{name: "missing colon", text: "/generate invoice for Bob 1 Pen"},
		{name: "blank items segment", text: "/generate invoice for Bob:   "},
		{name: "no valid items", text: "/generate invoice for Bob: pens and pencils"},
		{name: "zero quantity aborts the parse", text: "/generate invoice for Bob: 0 Pen"},
		{name: "zero quantity among valid items aborts", text: "/generate invoice for Bob: 2 Pen, 0 Pencil"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := p.Parse(tc.text)
			if !errors.Is(err, domain.ErrInvalidCommand) {
				t.Errorf("Parse() error = %v, want ErrInvalidCommand", err)
			}
			if got != nil {
				t.Errorf("Parse() = %+v, want nil", got)
			}
		})
	}
}

func TestNormalizeCustomerName(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercases then title-cases", input: "jane doe", want: "Jane Doe"},
		{name: "collapses internal whitespace", input: "  jane \t  doe ", want: "Jane Doe"},
		{name: "all caps", input: "JANE DOE", want: "Jane Doe"},
		{name: "empty", input: "   ", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := normalizeCustomerName(tc.input)
			if got != tc.want {
				t.Errorf("normalizeCustomerName(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}

	t.Run("idempotent on normalized input", func(t *testing.T) {
		once := normalizeCustomerName("jane   doe")
		twice := normalizeCustomerName(once)
		if once != twice {
			t.Errorf("second normalization changed result: %q -> %q", once, twice)
		}
	})
}

func TestSplitItems(t *testing.T) {
	testCases := []struct {
		name    string
		segment string
		want    []string
	}{
		{name: "single item", segment: "2 Pen", want: []string{"2 Pen"}},
		{name: "two items", segment: "2 Pen, 3 Pencil", want: []string{"2 Pen", "3 Pencil"}},
		{name: "comma without quantity stays", segment: "2 Widget, Deluxe Model", want: []string{"2 Widget, Deluxe Model"}},
		{name: "comma directly before digits", segment: "2 Pen,3 Pencil", want: []string{"2 Pen", "3 Pencil"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := splitItems(tc.segment)
			if len(got) != len(tc.want) {
				t.Fatalf("splitItems(%q) = %v, want %v", tc.segment, got, tc.want)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Errorf("part[%d] = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}
