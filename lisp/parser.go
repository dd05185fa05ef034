package lisp

// Reader abstracts a parser implementation so that it may be implemented in a
// separate package as an optional/swappable component.
type Reader interface {
	// Read the contents of source and return the single expression that it
	// contains.  Input that is not exactly one complete expression is a
	// syntax error.
	Read(source []byte) (*LVal, error)
}
