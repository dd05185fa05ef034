/*
Package parser provides a lisp parser.

	expr    := '(' <expr>* ')' | <token>
	token   := ( <escape> | <verbatim> | /[^[:space:]()"\\]/ )+
	escape  := '\' <any character>
	verbatim := '"' ( /[^"\\]/ | <escape> )* '"'

Quote characters are removed from a token and escaped characters are taken
literally.  A token which then parses as a floating point number is a number,
any other token is a symbol.
*/
package parser

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/WilhelmBerggren/rs-lisp/lisp"
	parsec "github.com/prataprc/goparsec"
)

const (
	nodeInvalid nodeType = iota
	nodeTerm
	nodeSExpr
)

var nodeTypeStrings = []string{
	nodeInvalid: "INVALID",
	nodeTerm:    "TERM",
	nodeSExpr:   "SEXPR",
}

// tokenPattern matches a single atom.  An unterminated verbatim section runs
// to the end of the input.
const tokenPattern = `(?s)(?:\\.?|"(?:[^"\\]|\\.?)*"?|[^\s()"\\])+`

type reader struct {
}

// NewReader returns a lisp.Reader to use in a lisp.Runtime.
func NewReader() lisp.Reader {
	return &reader{}
}

// Read implements lisp.Reader.
func (*reader) Read(source []byte) (*lisp.LVal, error) {
	return Read(source)
}

// Read parses text, which must contain exactly one expression, and returns
// the expression.
func Read(text []byte) (*lisp.LVal, error) {
	parser := newParsecParser()
	root, s := parser(parsec.NewScanner(text))
	v := getLVal(root)
	if v == nil {
		return nil, syntaxError(text, 0)
	}
	rest := bytes.TrimSpace(text[s.GetCursor():])
	if len(rest) != 0 {
		return nil, lisp.Errorf(lisp.ErrnoSyntax, "unexpected tokens at end of input: %s", truncate(rest))
	}
	return v, nil
}

// ReadAll parses all of the expressions contained in text and returns them
// in order.
func ReadAll(text []byte) ([]*lisp.LVal, error) {
	var exprs []*lisp.LVal
	parser := newParsecParser()
	s := parsec.NewScanner(text)
	for {
		cursor := s.GetCursor()
		if len(bytes.TrimSpace(text[cursor:])) == 0 {
			return exprs, nil
		}
		var root parsec.ParsecNode
		root, s = parser(s)
		v := getLVal(root)
		if v == nil {
			return nil, syntaxError(text, cursor)
		}
		exprs = append(exprs, v)
	}
}

func syntaxError(text []byte, cursor int) error {
	rest := bytes.TrimSpace(text[cursor:])
	if bytes.HasPrefix(rest, []byte(")")) {
		return lisp.Errorf(lisp.ErrnoSyntax, "unexpected ')'")
	}
	return lisp.Errorf(lisp.ErrnoSyntax, "unexpected end of input")
}

func truncate(b []byte) string {
	const max = 20
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}

func newParsecParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	token := parsec.Token(tokenPattern, "TOKEN")
	term := parsec.OrdChoice(astNode(nodeTerm), token)
	var expr parsec.Parser // forward declaration allows for recursive parsing
	exprList := parsec.Kleene(nil, &expr)
	sexpr := parsec.And(astNode(nodeSExpr), openP, exprList, closeP)
	expr = parsec.OrdChoice(nil, sexpr, term)
	return expr
}

type nodeType uint

func (t nodeType) String() string {
	if int(t) >= len(nodeTypeStrings) {
		return "INVALID"
	}
	return nodeTypeStrings[t]
}

func newAST(typ nodeType, nodes []parsec.ParsecNode) parsec.ParsecNode {
	nodes = cleanParsecNodeList(nodes)
	switch typ {
	case nodeTerm:
		for _, n := range nodes {
			if term, ok := n.(*parsec.Terminal); ok {
				return atom(unquoteToken(term.Value))
			}
		}
		panic("terminal node without a token")
	case nodeSExpr:
		cells := []*lisp.LVal{}
		// We don't want terminal parsec nodes '(' and ')'
		for _, c := range nodes {
			if v, ok := c.(*lisp.LVal); ok {
				cells = append(cells, v)
			}
		}
		return lisp.SExpr(cells)
	default:
		panic(fmt.Sprintf("unknown nodeType: %s (%d)", typ, typ))
	}
}

// atom converts the text of a token into a number when possible and a symbol
// otherwise.  Numbers too large for a float64 become infinite.
func atom(text string) *lisp.LVal {
	x, err := strconv.ParseFloat(text, 64)
	if err == nil {
		return lisp.Number(x)
	}
	if nerr, ok := err.(*strconv.NumError); ok && nerr.Err == strconv.ErrRange {
		return lisp.Number(x)
	}
	return lisp.Symbol(text)
}

// unquoteToken removes verbatim quotes from a token and resolves escapes.
func unquoteToken(tok string) string {
	var buf strings.Builder
	escaped := false
	for _, c := range tok {
		switch {
		case escaped:
			buf.WriteRune(c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
		default:
			buf.WriteRune(c)
		}
	}
	return buf.String()
}

func cleanParsecNodeList(lis []parsec.ParsecNode) []parsec.ParsecNode {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch node := n.(type) {
		case []parsec.ParsecNode:
			nodes = append(nodes, cleanParsecNodeList(node)...)
		default:
			nodes = append(nodes, node)
		}
	}
	return nodes
}

func astNode(t nodeType) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		return newAST(t, nodes)
	}
}

func getLVal(root parsec.ParsecNode) *lisp.LVal {
	if root == nil {
		return nil
	}
	nodes := cleanParsecNodeList([]parsec.ParsecNode{root})
	if len(nodes) == 0 {
		return nil
	}
	lval, ok := nodes[0].(*lisp.LVal)
	if !ok {
		return nil
	}
	return lval
}
