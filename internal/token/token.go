package token

import (
	"mojomls/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, boolean, string or
// 'default' literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, TrueLit, FalseLit, DefaultLit:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a declaration or type keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwModule, KwImport, KwStruct, KwUnion, KwInterface, KwEnum, KwConst,
		KwArray, KwMap, KwHandle, KwAssociated:
		return true
	default:
		return false
	}
}

// IsPunct reports whether the token is punctuation.
func (t Token) IsPunct() bool {
	switch t.Kind {
	case Amp, FatArrow, Comma, Assign, Lt, Gt, LBrace, RBrace, LBracket,
		RBracket, LParen, RParen, Question, Semicolon, At, Dot:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// StartsStatement reports whether the token kind may begin a top-level
// statement (a declaration keyword or an attribute section opener).
func (t Token) StartsStatement() bool {
	switch t.Kind {
	case KwModule, KwImport, KwStruct, KwUnion, KwInterface, KwEnum, KwConst, LBracket:
		return true
	default:
		return false
	}
}
