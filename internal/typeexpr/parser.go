package typeexpr

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Expr is a parsed type expression: a constructor name plus its argument
// expressions. "Map<String, List<Int>>" parses to
//
//	Expr{Name: "Map", Args: [Expr{Name: "String"}, Expr{Name: "List", Args: [...]}]}
//
// Nesting depth is bounded only by the input, so arbitrarily deep
// generics parse without special handling.
//
//nolint:govet // participle grammar tags are not standard struct tags
type Expr struct {
	Name string  `@Ident`
	Args []*Expr `( "<" @@ ( "," @@ )* ">" )?`
}

// String renders the expression back in source form.
func (e *Expr) String() string {
	if len(e.Args) == 0 {
		return e.Name
	}
	parts := make([]string, len(e.Args))
	for i, arg := range e.Args {
		parts[i] = arg.String()
	}
	return e.Name + "<" + strings.Join(parts, ", ") + ">"
}

// exprLexer tokenizes type expressions. Identifiers cover constructor
// names and the dotted/underscored keys used by bundle references.
var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.-]*`},
	{Name: "Punct", Pattern: `[<>,]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var exprParser = participle.MustBuild[Expr](
	participle.Lexer(exprLexer),
	participle.Elide("Whitespace"),
)

// Parse parses a type expression string into an Expr. Any lexing or
// grammar failure is reported as a MALFORMED_TYPE_EXPRESSION error; Parse
// never panics on bad input.
func Parse(input string) (*Expr, error) {
	expr, err := exprParser.ParseString("", input)
	if err != nil {
		return nil, &Error{
			Code:    CodeMalformed,
			Expr:    input,
			Message: "invalid type expression",
			Err:     err,
		}
	}
	return expr, nil
}
