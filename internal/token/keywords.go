package token

var keywords = map[string]Kind{
	"module":     KwModule,
	"import":     KwImport,
	"struct":     KwStruct,
	"union":      KwUnion,
	"interface":  KwInterface,
	"enum":       KwEnum,
	"const":      KwConst,
	"array":      KwArray,
	"map":        KwMap,
	"handle":     KwHandle,
	"associated": KwAssociated,
	"true":       TrueLit,
	"false":      FalseLit,
	"default":    DefaultLit,
}

// LookupKeyword returns the keyword kind for ident, if it is one.
// Keywords are case sensitive; only lowercase spellings are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
