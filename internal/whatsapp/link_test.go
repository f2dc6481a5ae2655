package whatsapp

import (
	"errors"
	"net/url"
	"strings"
	"testing"
)

func TestEscapeComponent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "Henna", "Henna"},
		{"space", "Lash Lifting", "Lash%20Lifting"},
		{"newline", "a\nb", "a%0Ab"},
		{"accented", "Manhã", "Manh%C3%A3"},
		{"punctuation kept", "um(a)!", "um(a)!"},
		{"reserved escaped", "a&b=c/d?", "a%26b%3Dc%2Fd%3F"},
		{"plus escaped", "1+1", "1%2B1"},
		{"colon and comma", "Nome: A, B", "Nome%3A%20A%2C%20B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeComponent(tt.input); got != tt.expected {
				t.Errorf("EscapeComponent(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLink(t *testing.T) {
	message := "Olá! Gostaria de agendar um horário.\n\nNome: Maria"
	link := Link("42999722042", message)

	if !strings.HasPrefix(link, "https://wa.me/42999722042?text=") {
		t.Fatalf("unexpected link prefix: %s", link)
	}

	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse link: %v", err)
	}
	if got := parsed.Query().Get("text"); got != message {
		t.Fatalf("round-tripped text = %q, want %q", got, message)
	}
}

func TestLinkStripsSeparators(t *testing.T) {
	link := Link("(42) 99972-2042", "oi")
	if link != "https://wa.me/42999722042?text=oi" {
		t.Fatalf("unexpected link: %s", link)
	}
}

func TestNormalizeNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"studio number", "42999722042", "42999722042", false},
		{"formatted", "(41) 98871-0303", "41988710303", false},
		{"empty", "", "", true},
		{"too short", "123", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeNumber(tt.input, "BR")
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidNumber) {
					t.Fatalf("expected ErrInvalidNumber, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("NormalizeNumber(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDisplayNumber(t *testing.T) {
	if got := DisplayNumber("42999722042", "BR"); !strings.HasPrefix(got, "+55 42") {
		t.Fatalf("unexpected display number: %q", got)
	}
	if got := DisplayNumber("abc", "BR"); got != "abc" {
		t.Fatalf("expected raw fallback, got %q", got)
	}
}
