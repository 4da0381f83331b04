// Package signature parses compact Go method signatures such as
// `Stat(path string) (NodeInfo, bool, error)` into model parameters and
// return types.
package signature

import (
	stderrors "errors"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/weave/internal/errors"
	"github.com/toyz/weave/internal/models"
)

// Signature is the root of a parsed method signature
type Signature struct {
	Name    string   `parser:"@Ident"`
	Params  []*Param `parser:"'(' ( @@ ( ',' @@ )* )? ')'"`
	Results *Results `parser:"@@?"`
}

// Param is a named parameter, optionally variadic
type Param struct {
	Name     string `parser:"@Ident"`
	Variadic bool   `parser:"@'...'?"`
	Type     *Type  `parser:"@@"`
}

// Results is either a parenthesized type list or a single bare type
type Results struct {
	List   []*Type `parser:"  '(' ( @@ ( ',' @@ )* )? ')'"`
	Single *Type   `parser:"| @@"`
}

// Type is a Go type expression
type Type struct {
	Pointer   *Type     `parser:"  '*' @@"`
	Seq       *SeqType  `parser:"| @@"`
	Map       *MapType  `parser:"| @@"`
	Chan      *ChanType `parser:"| @@"`
	Func      *FuncType `parser:"| @@"`
	Interface bool      `parser:"| @( 'interface' '{' '}' )"`
	Struct    bool      `parser:"| @( 'struct' '{' '}' )"`
	Named     []string  `parser:"| @Ident ( '.' @Ident )?"`
}

// SeqType is a slice, or an array when Len is set
type SeqType struct {
	Len  string `parser:"'[' @Int? ']'"`
	Elem *Type  `parser:"@@"`
}

// MapType is map[Key]Value
type MapType struct {
	Key   *Type `parser:"'map' '[' @@ ']'"`
	Value *Type `parser:"@@"`
}

// ChanType is a channel with an optional direction
type ChanType struct {
	RecvOnly bool  `parser:"(  @'<-' 'chan'"`
	SendOnly bool  `parser:"| 'chan' @'<-'? )"`
	Elem     *Type `parser:"@@"`
}

// FuncType is a function type with unnamed parameters
type FuncType struct {
	Params  []*FuncParam `parser:"'func' '(' ( @@ ( ',' @@ )* )? ')'"`
	Results *Results     `parser:"@@?"`
}

// FuncParam is a parameter of a function type
type FuncParam struct {
	Variadic bool  `parser:"@'...'?"`
	Type     *Type `parser:"@@"`
}

// Parser parses method signatures
type Parser struct {
	parser *participle.Parser[Signature]
}

// NewParser creates a new signature parser
func NewParser() *Parser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Ellipsis", Pattern: `\.\.\.`},
		{Name: "Arrow", Pattern: `<-`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Int", Pattern: `[0-9]+`},
		{Name: "Punct", Pattern: `[()\[\]{}*,.]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	return &Parser{
		parser: participle.MustBuild[Signature](
			participle.Lexer(lex),
			participle.Elide("Whitespace"),
			participle.UseLookahead(2),
		),
	}
}

// Parse parses a single signature. Failures are returned as
// *errors.SyntaxError positioned at the offending column.
func (p *Parser) Parse(text string) (*Signature, error) {
	sig, err := p.parser.ParseString("", text)
	if err != nil {
		return nil, syntaxError(text, err)
	}
	return sig, nil
}

var defaultParser = NewParser()

// Parse parses text with the shared parser
func Parse(text string) (*Signature, error) {
	return defaultParser.Parse(text)
}

func syntaxError(text string, err error) *errors.SyntaxError {
	var perr participle.Error
	if !stderrors.As(err, &perr) {
		return errors.WrapParseError("signature", err)
	}

	token := ""
	var unexpected *participle.UnexpectedTokenError
	if stderrors.As(err, &unexpected) && !unexpected.Unexpected.EOF() {
		token = unexpected.Unexpected.Value
	}

	pos := perr.Position()
	return errors.NewSyntaxError("invalid signature: "+perr.Message(), token, pos.Offset).
		WithLocation(errors.SourceLocation{Line: pos.Line, Column: pos.Column}).
		WithCause(err).
		WithSuggestion("signatures look like: Read(path string, dest []byte) (int, error)")
}

// ModelParams converts the parameter list to model parameters
func (s *Signature) ModelParams() []models.Param {
	if len(s.Params) == 0 {
		return nil
	}
	params := make([]models.Param, len(s.Params))
	for i, p := range s.Params {
		params[i] = models.Param{Name: p.Name, Type: p.typeString()}
	}
	return params
}

// ReturnTypes returns the rendered result types in order
func (s *Signature) ReturnTypes() []string {
	return s.Results.types()
}

// MethodSpec converts the signature into a method without a body
func (s *Signature) MethodSpec() models.MethodSpec {
	return models.MethodSpec{
		Name:    s.Name,
		Params:  s.ModelParams(),
		Returns: s.ReturnTypes(),
	}
}

// String renders the signature in canonical form. A parenthesized single
// result is rendered bare.
func (s *Signature) String() string {
	parts := make([]string, len(s.Params))
	for i, p := range s.Params {
		parts[i] = p.String()
	}
	return s.Name + "(" + strings.Join(parts, ", ") + ")" + s.Results.suffix()
}

func (p *Param) String() string {
	return p.Name + " " + p.typeString()
}

func (p *Param) typeString() string {
	if p.Variadic {
		return "..." + p.Type.String()
	}
	return p.Type.String()
}

func (r *Results) types() []string {
	if r == nil {
		return nil
	}
	if r.Single != nil {
		return []string{r.Single.String()}
	}
	if len(r.List) == 0 {
		return nil
	}
	out := make([]string, len(r.List))
	for i, t := range r.List {
		out[i] = t.String()
	}
	return out
}

func (r *Results) suffix() string {
	types := r.types()
	switch len(types) {
	case 0:
		return ""
	case 1:
		return " " + types[0]
	default:
		return " (" + strings.Join(types, ", ") + ")"
	}
}

func (t *Type) String() string {
	switch {
	case t.Pointer != nil:
		return "*" + t.Pointer.String()
	case t.Seq != nil:
		return "[" + t.Seq.Len + "]" + t.Seq.Elem.String()
	case t.Map != nil:
		return "map[" + t.Map.Key.String() + "]" + t.Map.Value.String()
	case t.Chan != nil:
		switch {
		case t.Chan.RecvOnly:
			return "<-chan " + t.Chan.Elem.String()
		case t.Chan.SendOnly:
			return "chan<- " + t.Chan.Elem.String()
		default:
			return "chan " + t.Chan.Elem.String()
		}
	case t.Func != nil:
		params := make([]string, len(t.Func.Params))
		for i, p := range t.Func.Params {
			params[i] = p.Type.String()
			if p.Variadic {
				params[i] = "..." + params[i]
			}
		}
		return "func(" + strings.Join(params, ", ") + ")" + t.Func.Results.suffix()
	case t.Interface:
		return "interface{}"
	case t.Struct:
		return "struct{}"
	default:
		return strings.Join(t.Named, ".")
	}
}
