package ast

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// Variable references a local variable or parameter by name.
type Variable struct {
	Position Position
	Name     string
}

func (v *Variable) expressionNode() {}
func (v *Variable) Pos() Position {
	if v == nil {
		return Position{}
	}
	return v.Position
}

// IntLit is an integer literal.
type IntLit struct {
	Position Position
	Value    int64
}

func (il *IntLit) expressionNode() {}
func (il *IntLit) Pos() Position {
	if il == nil {
		return Position{}
	}
	return il.Position
}

// DoubleLit is a floating point literal.
type DoubleLit struct {
	Position Position
	Value    float64
}

func (dl *DoubleLit) expressionNode() {}
func (dl *DoubleLit) Pos() Position {
	if dl == nil {
		return Position{}
	}
	return dl.Position
}

// StringLit is a string literal. Value holds the decoded text; escaping for
// the output language happens at emission time.
type StringLit struct {
	Position Position
	Value    string
}

func (sl *StringLit) expressionNode() {}
func (sl *StringLit) Pos() Position {
	if sl == nil {
		return Position{}
	}
	return sl.Position
}

// BoolLit is a boolean literal.
type BoolLit struct {
	Position Position
	Value    bool
}

func (bl *BoolLit) expressionNode() {}
func (bl *BoolLit) Pos() Position {
	if bl == nil {
		return Position{}
	}
	return bl.Position
}

// NullLit is the null literal.
type NullLit struct {
	Position Position
}

func (nl *NullLit) expressionNode() {}
func (nl *NullLit) Pos() Position {
	if nl == nil {
		return Position{}
	}
	return nl.Position
}

// FunctionCall is a free function call: cos(x), my_helper(a, b).
// Name is the bare callee name as written; optimizer lookup normalizes it.
type FunctionCall struct {
	Position Position
	Name     string
	Args     []Expression
}

func (fc *FunctionCall) expressionNode() {}
func (fc *FunctionCall) Pos() Position {
	if fc == nil {
		return Position{}
	}
	return fc.Position
}

// StaticCall is a static method call: Coll\Vector::create(n).
type StaticCall struct {
	Position Position
	Class    *ClassName
	Method   string
	Args     []Expression
}

func (sc *StaticCall) expressionNode() {}
func (sc *StaticCall) Pos() Position {
	if sc == nil {
		return Position{}
	}
	return sc.Position
}

// NewInstance is an object instantiation: new Vector(n).
type NewInstance struct {
	Position Position
	Class    *ClassName
	Args     []Expression
}

func (ni *NewInstance) expressionNode() {}
func (ni *NewInstance) Pos() Position {
	if ni == nil {
		return Position{}
	}
	return ni.Position
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// AssignStmt assigns the value of an expression to a local variable.
type AssignStmt struct {
	Position Position
	Target   string
	Value    Expression
}

func (as *AssignStmt) statementNode() {}
func (as *AssignStmt) Pos() Position {
	if as == nil {
		return Position{}
	}
	return as.Position
}

// ExprStmt evaluates an expression for its side effects.
type ExprStmt struct {
	Position Position
	Value    Expression
}

func (es *ExprStmt) statementNode() {}
func (es *ExprStmt) Pos() Position {
	if es == nil {
		return Position{}
	}
	return es.Position
}

// ReturnStmt returns from the enclosing function. Value may be nil for a
// bare return, which emits the runtime null value.
type ReturnStmt struct {
	Position Position
	Value    Expression
}

func (rs *ReturnStmt) statementNode() {}
func (rs *ReturnStmt) Pos() Position {
	if rs == nil {
		return Position{}
	}
	return rs.Position
}
