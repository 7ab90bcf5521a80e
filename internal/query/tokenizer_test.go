package query

import (
	"errors"
	"testing"
)

func TestTokenizer(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenType
	}{
		{
			name:  "Simple comparison",
			input: ".avg >= 0.5",
			expected: []TokenType{
				TokenAttribute,
				TokenComparison,
				TokenNumber,
				TokenEOF,
			},
		},
		{
			name:  "With parentheses",
			input: "(.avg >= 0.5)",
			expected: []TokenType{
				TokenLParen,
				TokenAttribute,
				TokenComparison,
				TokenNumber,
				TokenRParen,
				TokenEOF,
			},
		},
		{
			name:  "Logical AND keyword",
			input: ".avg >= 0.5 AND .active == true",
			expected: []TokenType{
				TokenAttribute,
				TokenComparison,
				TokenNumber,
				TokenLogical,
				TokenAttribute,
				TokenComparison,
				TokenString,
				TokenEOF,
			},
		},
		{
			name:  "Symbolic operators",
			input: ".a == 1 && .b == 2 || .c == 3 ^ .d == 4",
			expected: []TokenType{
				TokenAttribute, TokenComparison, TokenNumber,
				TokenLogical,
				TokenAttribute, TokenComparison, TokenNumber,
				TokenLogical,
				TokenAttribute, TokenComparison, TokenNumber,
				TokenLogical,
				TokenAttribute, TokenComparison, TokenNumber,
				TokenEOF,
			},
		},
		{
			name:  "NOT keyword and symbol",
			input: "NOT .a == 1 && ! .b == 2",
			expected: []TokenType{
				TokenNot,
				TokenAttribute,
				TokenComparison,
				TokenNumber,
				TokenLogical,
				TokenNot,
				TokenAttribute,
				TokenComparison,
				TokenNumber,
				TokenEOF,
			},
		},
		{
			name:  "Quoted strings",
			input: `.name == 'hello' || .name == "world"`,
			expected: []TokenType{
				TokenAttribute,
				TokenComparison,
				TokenString,
				TokenLogical,
				TokenAttribute,
				TokenComparison,
				TokenString,
				TokenEOF,
			},
		},
		{
			name:  "Negative number",
			input: ".delta < -12",
			expected: []TokenType{
				TokenAttribute,
				TokenComparison,
				TokenNumber,
				TokenEOF,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenizer := NewTokenizer(tt.input)
			tokens, err := tokenizer.TokenizeAll()
			if err != nil {
				t.Fatalf("TokenizeAll failed: %v", err)
			}

			if len(tokens) != len(tt.expected) {
				t.Fatalf("expected %d tokens, got %d", len(tt.expected), len(tokens))
			}

			for i, token := range tokens {
				if token.Type != tt.expected[i] {
					t.Errorf("token %d: expected type %v, got %v (value %q)",
						i, tt.expected[i], token.Type, token.Value)
				}
			}
		})
	}
}

func TestTokenizerValues(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		index    int
		expected string
	}{
		{"Attribute name", ".avg >= 0.5", 0, "avg"},
		{"Quoted attribute name", `."total score" == 1`, 0, "total score"},
		{"Float literal", ".avg >= 0.5", 2, "0.5"},
		{"Float with exponent", ".avg >= 1.5e3", 2, "1.5e3"},
		{"Float with signed exponent", ".avg >= 1.5E-3", 2, "1.5E-3"},
		{"Trailing dot float", ".avg >= 1.", 2, "1."},
		{"Signed integer", ".delta == -42", 2, "-42"},
		{"Bare word string", ".active == true", 2, "true"},
		{"Empty quoted string", ".name == ''", 2, ""},
		{"Symbolic AND normalized", ".a == 1 && .b == 2", 3, "and"},
		{"Keyword case folded", ".a == 1 Or .b == 2", 3, "or"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := NewTokenizer(tt.input).TokenizeAll()
			if err != nil {
				t.Fatalf("TokenizeAll failed: %v", err)
			}
			if tt.index >= len(tokens) {
				t.Fatalf("token index %d out of range (%d tokens)", tt.index, len(tokens))
			}
			if got := tokens[tt.index].Value; got != tt.expected {
				t.Errorf("token %d: expected value %q, got %q", tt.index, tt.expected, got)
			}
		})
	}
}

func TestTokenizerExponentNeedsDecimalPoint(t *testing.T) {
	// "1e5" is the integer 1 followed by the bare word "e5".
	tokens, err := NewTokenizer("1e5").TokenizeAll()
	if err != nil {
		t.Fatalf("TokenizeAll failed: %v", err)
	}
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(tokens))
	}
	if tokens[0].Type != TokenNumber || tokens[0].Value != "1" {
		t.Errorf("expected number \"1\", got %v %q", tokens[0].Type, tokens[0].Value)
	}
	if tokens[1].Type != TokenString || tokens[1].Value != "e5" {
		t.Errorf("expected string \"e5\", got %v %q", tokens[1].Type, tokens[1].Value)
	}
}

func TestTokenizerErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		line   int
		column int
	}{
		{"Lone equals", ".avg = 0.5", 1, 6},
		{"Attribute starting with digit", ".123 == 0.5", 1, 1},
		{"Attribute starting with plus", ".+avg == 0.5", 1, 1},
		{"Lone ampersand", ".a == 1 & .b == 2", 1, 9},
		{"Lone pipe", ".a == 1 | .b == 2", 1, 9},
		{"Unterminated string", ".name == 'oops", 1, 10},
		{"Unexpected character", ".a == 1 # comment", 1, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTokenizer(tt.input).TokenizeAll()
			if err == nil {
				t.Fatal("expected a tokenization error")
			}

			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("expected *SyntaxError, got %T: %v", err, err)
			}
			if syntaxErr.Line != tt.line || syntaxErr.Column != tt.column {
				t.Errorf("expected position %d:%d, got %d:%d",
					tt.line, tt.column, syntaxErr.Line, syntaxErr.Column)
			}
			if syntaxErr.SourceLine != tt.input {
				t.Errorf("expected source line %q, got %q", tt.input, syntaxErr.SourceLine)
			}
		})
	}
}
