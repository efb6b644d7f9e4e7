package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexBadEscape                Code = 1005

	// Syntactic
	SynInfo                Code = 2000
	SynUnexpectedToken     Code = 2001
	SynUnexpectedTopLevel  Code = 2002
	SynExpectIdentifier    Code = 2003
	SynExpectSemicolon     Code = 2004
	SynExpectType          Code = 2005
	SynExpectLiteral       Code = 2006
	SynUnclosedBrace       Code = 2007
	SynUnclosedParen       Code = 2008
	SynUnclosedBracket     Code = 2009
	SynUnclosedAngle       Code = 2010
	SynBadOrdinal          Code = 2011
	SynBadArraySize        Code = 2012
	SynBadMapKey           Code = 2013
	SynBodyRequired        Code = 2014
	SynExpectStringLiteral Code = 2015

	// Semantic
	SemInfo                 Code = 3000
	SemDuplicateDeclaration Code = 3001
	SemDuplicateModule      Code = 3002
	SemUnresolvedImport     Code = 3003
	SemUnresolvedSymbol     Code = 3004

	// Project / workspace
	ProjInfo          Code = 5000
	ProjNoRoot        Code = 5001
	ProjBadManifest   Code = 5002
	ProjLoadFileError Code = 5003
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed numeric literal",
	LexBadEscape:                "Invalid escape sequence",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnexpectedTopLevel:       "Unexpected top-level construct",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectSemicolon:          "Expected ';'",
	SynExpectType:               "Expected type",
	SynExpectLiteral:            "Expected literal value",
	SynUnclosedBrace:            "Expected '}'",
	SynUnclosedParen:            "Expected ')'",
	SynUnclosedBracket:          "Expected ']'",
	SynUnclosedAngle:            "Expected '>'",
	SynBadOrdinal:               "Malformed ordinal",
	SynBadArraySize:             "Fixed array size must be a non-negative integer",
	SynBadMapKey:                "Invalid map key type",
	SynBodyRequired:             "Declaration requires a body",
	SynExpectStringLiteral:      "Expected string literal",
	SemInfo:                     "Semantic information",
	SemDuplicateDeclaration:     "Duplicate declaration",
	SemDuplicateModule:          "More than one module statement",
	SemUnresolvedImport:         "Unresolved import",
	SemUnresolvedSymbol:         "Unresolved symbol",
	ProjInfo:                    "Project information",
	ProjNoRoot:                  "No workspace root configured",
	ProjBadManifest:             "Malformed project manifest",
	ProjLoadFileError:           "I/O load file error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
