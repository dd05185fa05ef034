package lisp

// VarArgSymbol is the symbol that indicates a variadic function argument in a
// builtin's list of formal arguments.
const VarArgSymbol = "&"
