package strings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	platformstrings "registrar/pkg/platform/strings"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "nil input",
			in:   nil,
			want: nil,
		},
		{
			name: "trims whitespace",
			in:   []string{"  kafka-1:9092 ", "\tkafka-2:9092"},
			want: []string{"kafka-1:9092", "kafka-2:9092"},
		},
		{
			name: "drops empties",
			in:   []string{"", "  ", "kafka-1:9092"},
			want: []string{"kafka-1:9092"},
		},
		{
			name: "keeps first occurrence order",
			in:   []string{"b", "a", "b ", " a", "c"},
			want: []string{"b", "a", "c"},
		},
		{
			name: "all blank collapses to empty",
			in:   []string{"", "   "},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, platformstrings.DedupeAndTrim(tt.in))
		})
	}
}
