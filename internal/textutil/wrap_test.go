package textutil

import (
	"reflect"
	"testing"
)

func TestWrapLines(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{
			name:  "short line untouched",
			text:  "hello",
			width: 20,
			want:  []string{"hello"},
		},
		{
			name:  "word wrap at spaces",
			text:  "the quick brown fox",
			width: 10,
			want:  []string{"the quick", "brown fox"},
		},
		{
			name:  "hard wrap spaceless run",
			text:  "abcdefghij",
			width: 4,
			want:  []string{"abcd", "efgh", "ij"},
		},
		{
			name:  "empty paragraphs preserved",
			text:  "a\n\nb",
			width: 10,
			want:  []string{"a", "", "b"},
		},
		{
			name:  "carriage returns stripped",
			text:  "a\r\nb",
			width: 10,
			want:  []string{"a", "b"},
		},
		{
			name:  "cjk hard wrap respects cell width",
			text:  "中文中文中",
			width: 4,
			want:  []string{"中文", "中文", "中"},
		},
		{
			name:  "zero width",
			text:  "anything",
			width: 0,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapLines(tt.text, tt.width)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("WrapLines(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestExpandTabs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"no tabs", "plain", "plain"},
		{"leading tab", "\tx", "    x"},
		{"tab after text", "ab\tc", "ab  c"},
		{"tab after wide rune", "中\tx", "中  x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandTabs(tt.text, DefaultTabWidth); got != tt.want {
				t.Fatalf("ExpandTabs(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
