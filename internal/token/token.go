package token

// Type is the type of a token.
type Type string

// Token represents a lexical token.
type Token struct {
	Type    Type
	Literal string
	Line    int
	Column  int
}

const (
	// Special tokens
	ILLEGAL Type = "ILLEGAL" // An unknown or invalid token
	EOF     Type = "EOF"     // End of input

	// Literals
	IDENT  Type = "IDENT"  // int8, tuple, list
	NUMBER Type = "NUMBER" // 12, -3.5, 1e9
	STRING Type = "STRING" // "hello world"

	// Delimiters
	LBRACK Type = "["
	RBRACK Type = "]"
	LPAREN Type = "("
	RPAREN Type = ")"
	COMMA  Type = ","

	// Keywords
	TRUE  Type = "TRUE"
	FALSE Type = "FALSE"

	// Comments and Whitespace
	COMMENT Type = "COMMENT" // # a comment
	NEWLINE Type = "NEWLINE" // \n
)

var keywords = map[string]Type{
	"true":  TRUE,
	"false": FALSE,
}

// LookupIdent checks the keywords table for an identifier.
// If the identifier is a keyword, it returns the keyword's token type.
// Otherwise, it returns IDENT.
func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
