package parser

// ASTArena provides arena-style allocation for the most frequent AST nodes.
// Nodes are allocated from pre-grown slices, reducing GC pressure.
// Call Reset() between parses to reuse the arena's backing memory; nodes
// handed out before a Reset must no longer be used.
type ASTArena struct {
	identifiers      []Identifier
	numberLiterals   []NumberLiteral
	stringLiterals   []StringLiteral
	booleanLiterals  []BooleanLiteral
	infixExpressions []InfixExpression
	callExpressions  []CallExpression
	memberExprs      []MemberExpression
	varDeclarators   []VarDeclarator
	keywordTypes     []KeywordType
}

// NewASTArena creates a new arena with pre-allocated capacity.
func NewASTArena() *ASTArena {
	return &ASTArena{
		identifiers:      make([]Identifier, 0, 256),
		numberLiterals:   make([]NumberLiteral, 0, 64),
		stringLiterals:   make([]StringLiteral, 0, 64),
		booleanLiterals:  make([]BooleanLiteral, 0, 32),
		infixExpressions: make([]InfixExpression, 0, 128),
		callExpressions:  make([]CallExpression, 0, 64),
		memberExprs:      make([]MemberExpression, 0, 64),
		varDeclarators:   make([]VarDeclarator, 0, 64),
		keywordTypes:     make([]KeywordType, 0, 64),
	}
}

// Reset clears the arena for reuse, keeping backing memory allocated.
func (a *ASTArena) Reset() {
	clear(a.identifiers)
	clear(a.numberLiterals)
	clear(a.stringLiterals)
	clear(a.booleanLiterals)
	clear(a.infixExpressions)
	clear(a.callExpressions)
	clear(a.memberExprs)
	clear(a.varDeclarators)
	clear(a.keywordTypes)
	a.identifiers = a.identifiers[:0]
	a.numberLiterals = a.numberLiterals[:0]
	a.stringLiterals = a.stringLiterals[:0]
	a.booleanLiterals = a.booleanLiterals[:0]
	a.infixExpressions = a.infixExpressions[:0]
	a.callExpressions = a.callExpressions[:0]
	a.memberExprs = a.memberExprs[:0]
	a.varDeclarators = a.varDeclarators[:0]
	a.keywordTypes = a.keywordTypes[:0]
}

// Len returns the number of nodes currently allocated from the arena.
func (a *ASTArena) Len() int {
	return len(a.identifiers) + len(a.numberLiterals) + len(a.stringLiterals) +
		len(a.booleanLiterals) + len(a.infixExpressions) + len(a.callExpressions) +
		len(a.memberExprs) + len(a.varDeclarators) + len(a.keywordTypes)
}

// Allocation methods - each returns a pointer to a zeroed node in the arena

func (a *ASTArena) NewIdentifier() *Identifier {
	a.identifiers = append(a.identifiers, Identifier{})
	return &a.identifiers[len(a.identifiers)-1]
}

func (a *ASTArena) NewNumberLiteral() *NumberLiteral {
	a.numberLiterals = append(a.numberLiterals, NumberLiteral{})
	return &a.numberLiterals[len(a.numberLiterals)-1]
}

func (a *ASTArena) NewStringLiteral() *StringLiteral {
	a.stringLiterals = append(a.stringLiterals, StringLiteral{})
	return &a.stringLiterals[len(a.stringLiterals)-1]
}

func (a *ASTArena) NewBooleanLiteral() *BooleanLiteral {
	a.booleanLiterals = append(a.booleanLiterals, BooleanLiteral{})
	return &a.booleanLiterals[len(a.booleanLiterals)-1]
}

func (a *ASTArena) NewInfixExpression() *InfixExpression {
	a.infixExpressions = append(a.infixExpressions, InfixExpression{})
	return &a.infixExpressions[len(a.infixExpressions)-1]
}

func (a *ASTArena) NewCallExpression() *CallExpression {
	a.callExpressions = append(a.callExpressions, CallExpression{})
	return &a.callExpressions[len(a.callExpressions)-1]
}

func (a *ASTArena) NewMemberExpression() *MemberExpression {
	a.memberExprs = append(a.memberExprs, MemberExpression{})
	return &a.memberExprs[len(a.memberExprs)-1]
}

func (a *ASTArena) NewVarDeclarator() *VarDeclarator {
	a.varDeclarators = append(a.varDeclarators, VarDeclarator{})
	return &a.varDeclarators[len(a.varDeclarators)-1]
}

func (a *ASTArena) NewKeywordType() *KeywordType {
	a.keywordTypes = append(a.keywordTypes, KeywordType{})
	return &a.keywordTypes[len(a.keywordTypes)-1]
}
