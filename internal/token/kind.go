package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// KwModule represents the 'module' keyword.
	KwModule // module
	// KwImport represents the 'import' keyword.
	KwImport // import
	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwUnion represents the 'union' keyword.
	KwUnion // union
	// KwInterface represents the 'interface' keyword.
	KwInterface // interface
	// KwEnum represents the 'enum' keyword.
	KwEnum // enum
	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwArray represents the 'array' keyword.
	KwArray // array
	// KwMap represents the 'map' keyword.
	KwMap // map
	// KwHandle represents the 'handle' keyword.
	KwHandle // handle
	// KwAssociated represents the 'associated' keyword.
	KwAssociated // associated

	// TrueLit represents the 'true' literal.
	TrueLit // true
	// FalseLit represents the 'false' literal.
	FalseLit // false
	// DefaultLit represents the 'default' literal.
	DefaultLit // default
	// IntLit represents an integer literal (decimal or hex).
	IntLit
	// FloatLit represents a floating point literal.
	FloatLit
	// StringLit represents a double-quoted string literal.
	StringLit

	// Amp represents '&'.
	Amp // &
	// FatArrow represents '=>'.
	FatArrow // =>
	// Comma represents ','.
	Comma // ,
	// Assign represents '='.
	Assign // =
	// Lt represents '<'.
	Lt // <
	// Gt represents '>'.
	Gt // >
	// LBrace represents '{'.
	LBrace // {
	// RBrace represents '}'.
	RBrace // }
	// LBracket represents '['.
	LBracket // [
	// RBracket represents ']'.
	RBracket // ]
	// LParen represents '('.
	LParen // (
	// RParen represents ')'.
	RParen // )
	// Question represents '?'.
	Question // ?
	// Semicolon represents ';'.
	Semicolon // ;
	// At represents '@'.
	At // @
	// Dot represents '.'.
	Dot // .
)

var kindNames = map[Kind]string{
	Invalid:      "Invalid",
	EOF:          "EOF",
	Ident:        "Ident",
	KwModule:     "module",
	KwImport:     "import",
	KwStruct:     "struct",
	KwUnion:      "union",
	KwInterface:  "interface",
	KwEnum:       "enum",
	KwConst:      "const",
	KwArray:      "array",
	KwMap:        "map",
	KwHandle:     "handle",
	KwAssociated: "associated",
	TrueLit:      "true",
	FalseLit:     "false",
	DefaultLit:   "default",
	IntLit:       "IntLit",
	FloatLit:     "FloatLit",
	StringLit:    "StringLit",
	Amp:          "&",
	FatArrow:     "=>",
	Comma:        ",",
	Assign:       "=",
	Lt:           "<",
	Gt:           ">",
	LBrace:       "{",
	RBrace:       "}",
	LBracket:     "[",
	RBracket:     "]",
	LParen:       "(",
	RParen:       ")",
	Question:     "?",
	Semicolon:    ";",
	At:           "@",
	Dot:          ".",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}
