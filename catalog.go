package cfgconv

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/KimNorgaard/go-cfgconv/internal/lexer"
	"github.com/KimNorgaard/go-cfgconv/internal/token"
	"github.com/KimNorgaard/go-cfgconv/value"
)

// ErrUnknownType is returned by Resolve for a type name that was never
// registered.
var ErrUnknownType = errors.New("cfgconv: unknown type")

// CompositeFunc builds the parser for a composite type from the parsers of
// its already resolved components.
type CompositeFunc func(args []Parser[any]) (Parser[any], error)

type composite struct {
	minArgs, maxArgs int
	ctor             CompositeFunc
}

// Catalog maps type expressions such as "uint16" or
// "list(tuple(string, int8))" to parsers. Register everything at startup;
// a Catalog is safe for concurrent use.
type Catalog struct {
	mu         sync.RWMutex
	leaves     map[string]Parser[any]
	composites map[string]composite
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		leaves:     make(map[string]Parser[any]),
		composites: make(map[string]composite),
	}
}

// DefaultCatalog returns a catalog holding every built-in conversion under
// its type name, the tuple composite (2 to 4 components, strict) and the
// list composite (one component, see SliceOf).
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	Register(c, Bool())
	Register(c, String())
	Register(c, Rune())
	Register(c, Decimal())
	Register(c, Int())
	Register(c, Int8())
	Register(c, Int16())
	Register(c, Int32())
	Register(c, Int64())
	Register(c, Uint())
	Register(c, Uint8())
	Register(c, Uint16())
	Register(c, Uint32())
	Register(c, Uint64())
	Register(c, BigInt())
	Register(c, Float32())
	Register(c, Float64())
	Register(c, Duration())
	c.RegisterComposite("tuple", 2, 4, tupleOf)
	c.RegisterComposite("list", 1, 1, func(args []Parser[any]) (Parser[any], error) {
		return Erase(SliceOf(args[0])), nil
	})
	return c
}

// Erase widens p to a Parser[any] with the same type descriptor.
func Erase[T any](p Parser[T]) Parser[any] {
	return Map(p, func(t T) any { return t })
}

// Register adds p to c under the name of its type descriptor.
func Register[T any](c *Catalog, p Parser[T]) {
	c.Register(string(p.typ), Erase(p))
}

// Register adds p to c under name, replacing any earlier registration.
func (c *Catalog) Register(name string, p Parser[any]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.leaves[name] = p.Named(Type(name))
}

// RegisterComposite adds a composite type constructor taking between
// minArgs and maxArgs components.
func (c *Catalog) RegisterComposite(name string, minArgs, maxArgs int, ctor CompositeFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.composites[name] = composite{minArgs: minArgs, maxArgs: maxArgs, ctor: ctor}
}

// Resolve parses the type expression expr and returns its parser. The
// parser reports the canonical form of expr as its type.
func (c *Catalog) Resolve(expr string) (Parser[any], error) {
	tp := &typeParser{l: lexer.New(expr), expr: expr}
	tp.nextToken()
	node, err := tp.parse()
	if err != nil {
		return Parser[any]{}, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.build(node)
}

// Lookup resolves expr in c and narrows the result to T. A payload of any
// other Go type fails with a TypeMismatch diagnostic.
func Lookup[T any](c *Catalog, expr string) (Parser[T], error) {
	p, err := c.Resolve(expr)
	if err != nil {
		return Parser[T]{}, err
	}
	return Bind(p, func(x any) Parser[T] {
		if t, ok := x.(T); ok {
			return Pure(t)
		}
		return New(p.typ, func(v value.Value) Result[T] {
			return Failed[T](Single(ConversionError{
				Location: "Lookup",
				Kind:     TypeMismatch,
				Value:    v,
				Type:     p.typ,
				Message:  fmt.Sprintf("catalog produced %T", x),
			}))
		})
	}), nil
}

func (c *Catalog) build(n *typeNode) (Parser[any], error) {
	if n.args == nil {
		p, ok := c.leaves[n.name]
		if !ok {
			if _, isComposite := c.composites[n.name]; isComposite {
				return Parser[any]{}, fmt.Errorf("cfgconv: type %q needs arguments", n.name)
			}
			return Parser[any]{}, fmt.Errorf("%w %q", ErrUnknownType, n.name)
		}
		return p, nil
	}
	comp, ok := c.composites[n.name]
	if !ok {
		return Parser[any]{}, fmt.Errorf("%w %q", ErrUnknownType, n.name+"(..)")
	}
	if len(n.args) < comp.minArgs || len(n.args) > comp.maxArgs {
		return Parser[any]{}, fmt.Errorf("cfgconv: type %q takes %s, got %d", n.name, arity(comp.minArgs, comp.maxArgs), len(n.args))
	}
	args := make([]Parser[any], len(n.args))
	for i, a := range n.args {
		p, err := c.build(a)
		if err != nil {
			return Parser[any]{}, err
		}
		args[i] = p
	}
	p, err := comp.ctor(args)
	if err != nil {
		return Parser[any]{}, fmt.Errorf("cfgconv: type %s: %w", n, err)
	}
	return p.Named(Type(n.String())), nil
}

func arity(lo, hi int) string {
	switch {
	case lo == hi && lo == 1:
		return "1 argument"
	case lo == hi:
		return fmt.Sprintf("%d arguments", lo)
	}
	return fmt.Sprintf("%d to %d arguments", lo, hi)
}

// tupleOf decodes a list of exactly len(args) elements into a []any.
func tupleOf(args []Parser[any]) (Parser[any], error) {
	seq := PureList([]any{})
	for _, a := range args {
		prev := seq
		seq = BindList(prev, func(xs []any) ListParser[[]any] {
			return MapList(Element(a), func(x any) []any {
				return append(xs[:len(xs):len(xs)], x)
			})
		})
	}
	types := make([]Type, len(args))
	for i, a := range args {
		types[i] = a.typ
	}
	return Erase(seq.Named(tupleType(types...)).Strict()), nil
}

type typeNode struct {
	name string
	args []*typeNode // nil for a plain name
}

func (n *typeNode) String() string {
	if n.args == nil {
		return n.name
	}
	parts := make([]string, len(n.args))
	for i, a := range n.args {
		parts[i] = a.String()
	}
	return n.name + "(" + strings.Join(parts, ", ") + ")"
}

// typeParser reads expressions of the form name or name(expr, ...).
type typeParser struct {
	l    *lexer.Lexer
	expr string
	cur  token.Token
}

func (tp *typeParser) nextToken() {
	tp.cur = tp.l.NextToken()
	for tp.cur.Type == token.NEWLINE || tp.cur.Type == token.COMMENT {
		tp.cur = tp.l.NextToken()
	}
}

func (tp *typeParser) errorf(format string, args ...any) error {
	return fmt.Errorf("cfgconv: type expression %q, column %d: %s", tp.expr, tp.cur.Column, fmt.Sprintf(format, args...))
}

func (tp *typeParser) parse() (*typeNode, error) {
	n, err := tp.parseNode()
	if err != nil {
		return nil, err
	}
	if tp.cur.Type != token.EOF {
		return nil, tp.errorf("unexpected %q after type", tp.cur.Literal)
	}
	return n, nil
}

func (tp *typeParser) parseNode() (*typeNode, error) {
	if tp.cur.Type != token.IDENT {
		if tp.cur.Type == token.EOF {
			return nil, tp.errorf("expected a type name")
		}
		return nil, tp.errorf("expected a type name, got %q", tp.cur.Literal)
	}
	n := &typeNode{name: tp.cur.Literal}
	tp.nextToken()
	if tp.cur.Type != token.LPAREN {
		return n, nil
	}
	tp.nextToken()
	n.args = []*typeNode{}
	for {
		arg, err := tp.parseNode()
		if err != nil {
			return nil, err
		}
		n.args = append(n.args, arg)
		switch tp.cur.Type {
		case token.COMMA:
			tp.nextToken()
		case token.RPAREN:
			tp.nextToken()
			return n, nil
		default:
			return nil, tp.errorf("expected ',' or ')', got %q", tp.cur.Literal)
		}
	}
}
