package pdftext_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vibecheck/internal/pdftext"
)

func TestShouldMerge(t *testing.T) {
	tests := []struct {
		prev, next string
		want       bool
	}{
		{"Wij", "willen", true},
		{"een twee drie vier", "vijf", true},
		{"een", "twee drie vier vijf", true},
		{"een twee drie vier", "vijf zes zeven acht", false},
		{"Dit is een zin.", "En", false},
		{"Vraag?", "antwoord", false},
		{"Nou!", "ja", false},
	}
	for _, tt := range tests {
		t.Run(tt.prev+"|"+tt.next, func(t *testing.T) {
			assert.Equal(t, tt.want, pdftext.ShouldMerge(tt.prev, tt.next))
		})
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "word per line",
			in:   "Wij\nwillen\neen\ngroene\nstad.\n\nNieuwe alinea hier.",
			want: "Wij willen een groene stad.\n\nNieuwe alinea hier.",
		},
		{
			name: "sentence end stops merge",
			in:   "Dit is het einde.\nVolgende",
			want: "Dit is het einde.\nVolgende",
		},
		{
			name: "long lines stay apart",
			in:   "Dit is een lange regel met veel woorden\nen nog een lange regel met veel woorden",
			want: "Dit is een lange regel met veel woorden\nen nog een lange regel met veel woorden",
		},
		{
			name: "short tail joins long line",
			in:   "Dit is een lange regel met veel woorden\nerbij",
			want: "Dit is een lange regel met veel woorden erbij",
		},
		{
			name: "blank runs collapse and leading blanks drop",
			in:   "\n\n\nA.\n\n\n\nB.",
			want: "A.\n\nB.",
		},
		{
			name: "hyphenated wrap rejoined",
			in:   "Dit zijn lange woorden die afge-\nbroken zijn op de regel daarna ook.",
			want: "Dit zijn lange woorden die afgebroken zijn op de regel daarna ook.",
		},
		{
			name: "unicode line and paragraph separators",
			in:   "Dit is het einde.\u2028Volgende regel.\u2029Daarna.\u0085Slot.\x1eKlaar.",
			want: "Dit is het einde.\nVolgende regel.\nDaarna.\nSlot.\nKlaar.",
		},
		{
			name: "multiple spaces collapse",
			in:   "Twee   spaties",
			want: "Twee spaties",
		},
		{
			name: "windows line endings",
			in:   "Wij\r\nwillen\r\n",
			want: "Wij willen",
		},
		{
			name: "merge rule looks at the last physical line",
			in:   "a b c d e\nf g\nh i j k l",
			want: "a b c d e f g h i j k l",
		},
		{
			name: "punctuation on merged line ends the run",
			in:   "Een twee\ndrie vier vijf zes.\nZeven acht",
			want: "Een twee drie vier vijf zes.\nZeven acht",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
		{
			name: "whitespace only",
			in:   "   \n \t \n",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pdftext.CleanText(tt.in))
		})
	}
}
