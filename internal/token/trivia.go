package token

import "mojomls/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
)

var triviaKindNames = map[TriviaKind]string{
	TriviaSpace:        "Space",
	TriviaNewline:      "Newline",
	TriviaLineComment:  "LineComment",
	TriviaBlockComment: "BlockComment",
}

func (k TriviaKind) String() string {
	if name, ok := triviaKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Trivia is whitespace or a comment attached to the following token.
// Grammar matching ignores trivia but spans are preserved for diagnostics.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
