package parser

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"tscheck/pkg/errors"
	"tscheck/pkg/lexer"
	"tscheck/pkg/source"
)

// --- Debug Flag ---
const debugParser = false

func debugPrint(format string, args ...interface{}) {
	if debugParser {
		fmt.Printf("[Parser Debug] "+format+"\n", args...)
	}
}

// maxErrors bounds the number of syntax errors collected for one parse.
const maxErrors = 100

// Parser takes a lexer and builds an AST.
type Parser struct {
	l      *lexer.Lexer
	source *source.SourceFile // cached from lexer
	errors []errors.TscheckError
	arena  *ASTArena

	curToken  lexer.Token
	peekToken lexer.Token

	blockDepth int // number of enclosing { } blocks

	// Pratt parser for VALUE expressions
	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn

	// Pratt parser for TYPE annotations
	typePrefixParseFns map[lexer.TokenType]typePrefixParseFn
	typeInfixParseFns  map[lexer.TokenType]typeInfixParseFn
}

// Parsing functions types for Pratt parser
type (
	prefixParseFn     func() Expression
	infixParseFn      func(Expression) Expression // Arg is the left side expression
	typePrefixParseFn func() TypeNode
	typeInfixParseFn  func(TypeNode) TypeNode
)

// Precedence levels for VALUE operators
const (
	_ int = iota
	LOWEST
	ASSIGNMENT  // =, +=, -=, ...
	TERNARY     // ?:
	COALESCE    // ??
	LOGICAL_OR  // ||
	LOGICAL_AND // &&
	BITWISE_OR  // |
	BITWISE_XOR // ^
	BITWISE_AND // &
	EQUALS      // ==, !=, ===, !==
	LESSGREATER // >, <, >=, <=, in, instanceof
	SHIFT       // <<, >>, >>>
	SUM         // + or -
	PRODUCT     // * or / or %
	POWER       // ** (right-associative)
	PREFIX      // -X or !X or typeof X
	POSTFIX     // X++ or X--
	CALL        // myFunction(X)
	INDEX       // array[index]
	MEMBER      // object.property
)

// Precedence levels for TYPE operators
const (
	_ int = iota
	TYPE_LOWEST
	TYPE_UNION // |
	TYPE_ARRAY // []
)

var precedences = map[lexer.TokenType]int{
	lexer.ASSIGN:                      ASSIGNMENT,
	lexer.PLUS_ASSIGN:                 ASSIGNMENT,
	lexer.MINUS_ASSIGN:                ASSIGNMENT,
	lexer.ASTERISK_ASSIGN:             ASSIGNMENT,
	lexer.SLASH_ASSIGN:                ASSIGNMENT,
	lexer.REMAINDER_ASSIGN:            ASSIGNMENT,
	lexer.EXPONENT_ASSIGN:             ASSIGNMENT,
	lexer.BITWISE_AND_ASSIGN:          ASSIGNMENT,
	lexer.BITWISE_OR_ASSIGN:           ASSIGNMENT,
	lexer.BITWISE_XOR_ASSIGN:          ASSIGNMENT,
	lexer.LEFT_SHIFT_ASSIGN:           ASSIGNMENT,
	lexer.RIGHT_SHIFT_ASSIGN:          ASSIGNMENT,
	lexer.UNSIGNED_RIGHT_SHIFT_ASSIGN: ASSIGNMENT,
	lexer.LOGICAL_AND_ASSIGN:          ASSIGNMENT,
	lexer.LOGICAL_OR_ASSIGN:           ASSIGNMENT,
	lexer.COALESCE_ASSIGN:             ASSIGNMENT,

	lexer.QUESTION:    TERNARY,
	lexer.COALESCE:    COALESCE,
	lexer.LOGICAL_OR:  LOGICAL_OR,
	lexer.LOGICAL_AND: LOGICAL_AND,

	lexer.PIPE:        BITWISE_OR,
	lexer.BITWISE_XOR: BITWISE_XOR,
	lexer.BITWISE_AND: BITWISE_AND,

	lexer.EQ:            EQUALS,
	lexer.NOT_EQ:        EQUALS,
	lexer.STRICT_EQ:     EQUALS,
	lexer.STRICT_NOT_EQ: EQUALS,

	lexer.LT:         LESSGREATER,
	lexer.GT:         LESSGREATER,
	lexer.LE:         LESSGREATER,
	lexer.GE:         LESSGREATER,
	lexer.IN:         LESSGREATER,
	lexer.INSTANCEOF: LESSGREATER,

	lexer.LEFT_SHIFT:           SHIFT,
	lexer.RIGHT_SHIFT:          SHIFT,
	lexer.UNSIGNED_RIGHT_SHIFT: SHIFT,

	lexer.PLUS:      SUM,
	lexer.MINUS:     SUM,
	lexer.SLASH:     PRODUCT,
	lexer.ASTERISK:  PRODUCT,
	lexer.REMAINDER: PRODUCT,
	lexer.EXPONENT:  POWER,

	lexer.INC: POSTFIX,
	lexer.DEC: POSTFIX,

	lexer.LPAREN:   CALL,
	lexer.LBRACKET: INDEX,
	lexer.DOT:      MEMBER,
}

var typePrecedences = map[lexer.TokenType]int{
	lexer.PIPE:     TYPE_UNION,
	lexer.LBRACKET: TYPE_ARRAY,
}

// NewParser creates a new Parser with its own arena.
func NewParser(l *lexer.Lexer) *Parser {
	return NewParserWithArena(l, NewASTArena())
}

// NewParserWithArena creates a Parser that allocates hot nodes from arena.
func NewParserWithArena(l *lexer.Lexer, arena *ASTArena) *Parser {
	p := &Parser{
		l:      l,
		source: l.GetSource(),
		errors: []errors.TscheckError{},
		arena:  arena,
	}

	p.prefixParseFns = make(map[lexer.TokenType]prefixParseFn)
	p.infixParseFns = make(map[lexer.TokenType]infixParseFn)
	p.typePrefixParseFns = make(map[lexer.TokenType]typePrefixParseFn)
	p.typeInfixParseFns = make(map[lexer.TokenType]typeInfixParseFn)

	// --- Register VALUE Prefix Functions ---
	p.registerPrefix(lexer.IDENT, p.parseIdentifier)
	p.registerPrefix(lexer.NUMBER, p.parseNumberLiteral)
	p.registerPrefix(lexer.BIGINT, p.parseBigIntLiteral)
	p.registerPrefix(lexer.STRING, p.parseStringLiteral)
	p.registerPrefix(lexer.TRUE, p.parseBooleanLiteral)
	p.registerPrefix(lexer.FALSE, p.parseBooleanLiteral)
	p.registerPrefix(lexer.NULL, p.parseNullLiteral)
	p.registerPrefix(lexer.FUNCTION, p.parseFunctionLiteral)
	p.registerPrefix(lexer.BANG, p.parsePrefixExpression)
	p.registerPrefix(lexer.MINUS, p.parsePrefixExpression)
	p.registerPrefix(lexer.PLUS, p.parsePrefixExpression)
	p.registerPrefix(lexer.BITWISE_NOT, p.parsePrefixExpression)
	p.registerPrefix(lexer.TYPEOF, p.parsePrefixExpression)
	p.registerPrefix(lexer.VOID, p.parsePrefixExpression)
	p.registerPrefix(lexer.INC, p.parsePrefixUpdateExpression)
	p.registerPrefix(lexer.DEC, p.parsePrefixUpdateExpression)
	p.registerPrefix(lexer.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(lexer.LBRACKET, p.parseArrayLiteral)
	p.registerPrefix(lexer.LBRACE, p.parseObjectLiteral)
	p.registerPrefix(lexer.SPREAD, p.parseSpreadElement)

	// --- Register VALUE Infix Functions ---
	for _, op := range []lexer.TokenType{
		lexer.PLUS, lexer.MINUS, lexer.SLASH, lexer.ASTERISK, lexer.REMAINDER, lexer.EXPONENT,
		lexer.EQ, lexer.NOT_EQ, lexer.STRICT_EQ, lexer.STRICT_NOT_EQ,
		lexer.LT, lexer.GT, lexer.LE, lexer.GE, lexer.IN, lexer.INSTANCEOF,
		lexer.BITWISE_AND, lexer.PIPE, lexer.BITWISE_XOR,
		lexer.LEFT_SHIFT, lexer.RIGHT_SHIFT, lexer.UNSIGNED_RIGHT_SHIFT,
	} {
		p.registerInfix(op, p.parseInfixExpression)
	}
	p.registerInfix(lexer.LOGICAL_AND, p.parseLogicalExpression)
	p.registerInfix(lexer.LOGICAL_OR, p.parseLogicalExpression)
	p.registerInfix(lexer.COALESCE, p.parseLogicalExpression)
	for tokType, prec := range precedences {
		if prec == ASSIGNMENT {
			p.registerInfix(tokType, p.parseAssignmentExpression)
		}
	}
	p.registerInfix(lexer.QUESTION, p.parseTernaryExpression)
	p.registerInfix(lexer.LPAREN, p.parseCallExpression)
	p.registerInfix(lexer.LBRACKET, p.parseIndexExpression)
	p.registerInfix(lexer.DOT, p.parseMemberExpression)
	p.registerInfix(lexer.INC, p.parsePostfixUpdateExpression)
	p.registerInfix(lexer.DEC, p.parsePostfixUpdateExpression)

	// --- Register TYPE Prefix Functions ---
	p.registerTypePrefix(lexer.IDENT, p.parseTypeIdentifier)
	p.registerTypePrefix(lexer.NULL, p.parseKeywordTypeToken)
	p.registerTypePrefix(lexer.VOID, p.parseKeywordTypeToken)
	p.registerTypePrefix(lexer.STRING, p.parseLiteralType)
	p.registerTypePrefix(lexer.NUMBER, p.parseLiteralType)
	p.registerTypePrefix(lexer.MINUS, p.parseLiteralType)
	p.registerTypePrefix(lexer.TRUE, p.parseLiteralType)
	p.registerTypePrefix(lexer.FALSE, p.parseLiteralType)
	p.registerTypePrefix(lexer.LBRACKET, p.parseTupleType)
	p.registerTypePrefix(lexer.LPAREN, p.parseParenOrFunctionType)
	p.registerTypePrefix(lexer.PIPE, p.parseLeadingPipeUnionType)

	// --- Register TYPE Infix Functions ---
	p.registerTypeInfix(lexer.PIPE, p.parseUnionType)
	p.registerTypeInfix(lexer.LBRACKET, p.parseArrayType)

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()

	return p
}

// ParseSource parses a whole source file.
func ParseSource(src *source.SourceFile) (*Program, []errors.TscheckError) {
	return NewParser(lexer.NewLexerWithSource(src)).ParseProgram()
}

// ParseExpression parses input as a single expression, optionally followed
// by a semicolon.
func ParseExpression(input string) (Expression, []errors.TscheckError) {
	p := NewParser(lexer.NewLexer(input))
	expr := p.parseExpression(LOWEST)
	if expr != nil {
		if p.peekTokenIs(lexer.SEMICOLON) {
			p.nextToken()
		}
		p.expectEnd()
	}
	return expr, p.errors
}

// ParseType parses input as a single type annotation.
func ParseType(input string) (TypeNode, []errors.TscheckError) {
	p := NewParser(lexer.NewLexer(input))
	t := p.parseType(TYPE_LOWEST)
	if t != nil {
		p.expectEnd()
	}
	return t, p.errors
}

func (p *Parser) expectEnd() {
	if !p.peekTokenIs(lexer.EOF) {
		p.addError(p.peekToken, fmt.Sprintf("unexpected %s after end of input", describeToken(p.peekToken)))
	}
}

func (p *Parser) registerPrefix(tokenType lexer.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType lexer.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

func (p *Parser) registerTypePrefix(tokenType lexer.TokenType, fn typePrefixParseFn) {
	p.typePrefixParseFns[tokenType] = fn
}

func (p *Parser) registerTypeInfix(tokenType lexer.TokenType, fn typeInfixParseFn) {
	p.typeInfixParseFns[tokenType] = fn
}

// Errors returns the list of parsing errors.
func (p *Parser) Errors() []errors.TscheckError {
	return p.errors
}

// nextToken advances the current and peek tokens.
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
	debugPrint("nextToken(): cur='%s' (%s), peek='%s' (%s)", p.curToken.Literal, p.curToken.Type, p.peekToken.Literal, p.peekToken.Type)
}

// ParseProgram parses the entire input and returns the root Program node and any errors.
func (p *Parser) ParseProgram() (*Program, []errors.TscheckError) {
	program := &Program{Statements: []Statement{}, Source: p.source}

	for !p.curTokenIs(lexer.EOF) && len(p.errors) < maxErrors {
		before := len(p.errors)
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		if len(p.errors) > before {
			p.synchronize()
		}
		p.nextToken()
	}

	return program, p.errors
}

// synchronize skips ahead after an error to the end of the statement, so a
// single mistake does not cascade into many reports.
func (p *Parser) synchronize() {
	for !p.curTokenIs(lexer.SEMICOLON) && !p.peekTokenIs(lexer.EOF) {
		if (p.blockDepth > 0 && p.peekTokenIs(lexer.RBRACE)) || p.peekToken.Line > p.curToken.Line {
			return
		}
		p.nextToken()
	}
}

// --- Statement Parsing ---

func (p *Parser) parseStatement() Statement {
	debugPrint("parseStatement: cur='%s' (%s), peek='%s' (%s)", p.curToken.Literal, p.curToken.Type, p.peekToken.Literal, p.peekToken.Type)
	switch p.curToken.Type {
	case lexer.LET, lexer.CONST, lexer.VAR:
		if stmt := p.parseVarStatement(); stmt != nil {
			return stmt
		}
		return nil
	case lexer.FUNCTION:
		if p.peekTokenIs(lexer.IDENT) {
			if stmt := p.parseFunctionDeclaration(); stmt != nil {
				return stmt
			}
			return nil
		}
		return p.parseExpressionStatement()
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.WHILE:
		return p.parseWhileStatement()
	case lexer.LBRACE:
		if block := p.parseBlockStatement(); block != nil {
			return block
		}
		return nil
	case lexer.SEMICOLON:
		return &EmptyStatement{Token: p.curToken}
	default:
		return p.parseExpressionStatement()
	}
}

// endStatement consumes an optional ';'. Without one, the statement must be
// followed by '}', the end of input, or a line break.
func (p *Parser) endStatement() {
	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
		return
	}
	if p.peekTokenIs(lexer.RBRACE) || p.peekTokenIs(lexer.EOF) || p.peekToken.Line > p.curToken.Line {
		return
	}
	p.addError(p.peekToken, fmt.Sprintf("expected ';' but found %s", describeToken(p.peekToken)))
}

func (p *Parser) parseVarStatement() *VarStatement {
	stmt := &VarStatement{Token: p.curToken}

	for {
		if !p.expectPeek(lexer.IDENT) {
			return nil
		}
		decl := p.arena.NewVarDeclarator()
		decl.Token = p.curToken
		decl.Name = p.newIdentifier(p.curToken)

		if p.peekTokenIs(lexer.COLON) {
			p.nextToken() // ':'
			p.nextToken() // start of type
			decl.TypeAnnotation = p.parseType(TYPE_LOWEST)
			if decl.TypeAnnotation == nil {
				return nil
			}
		}

		if p.peekTokenIs(lexer.ASSIGN) {
			p.nextToken() // '='
			p.nextToken() // start of expression
			decl.Value = p.parseExpression(LOWEST)
			if decl.Value == nil {
				return nil
			}
		} else if stmt.Token.Type == lexer.CONST {
			p.addError(decl.Token, "'const' declarations must be initialized")
		}

		stmt.Declarations = append(stmt.Declarations, decl)
		if !p.peekTokenIs(lexer.COMMA) {
			break
		}
		p.nextToken()
	}

	p.endStatement()
	return stmt
}

func (p *Parser) parseFunctionDeclaration() *FunctionDeclaration {
	fn := &FunctionDeclaration{Token: p.curToken}
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	fn.Name = p.newIdentifier(p.curToken)

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	fn.Parameters = p.parseParameterList()
	if fn.Parameters == nil {
		return nil
	}

	if p.peekTokenIs(lexer.COLON) {
		p.nextToken()
		p.nextToken()
		fn.ReturnType = p.parseType(TYPE_LOWEST)
		if fn.ReturnType == nil {
			return nil
		}
	}

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	fn.Body = p.parseBlockStatement()
	if fn.Body == nil {
		return nil
	}
	return fn
}

// parseParameterList parses `(a: A, b?, ...c: C[])` with curToken on '('.
// It returns a non-nil slice on success and leaves curToken on ')'.
func (p *Parser) parseParameterList() []*Parameter {
	params := []*Parameter{}
	if p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
		return params
	}

	for {
		p.nextToken()
		param := &Parameter{Token: p.curToken}
		if p.curTokenIs(lexer.SPREAD) {
			param.IsRest = true
			if !p.expectPeek(lexer.IDENT) {
				return nil
			}
		} else if !p.curTokenIs(lexer.IDENT) {
			p.addError(p.curToken, fmt.Sprintf("expected parameter name, got %s", describeToken(p.curToken)))
			return nil
		}
		param.Name = p.newIdentifier(p.curToken)

		if p.peekTokenIs(lexer.QUESTION) {
			p.nextToken()
			param.Optional = true
		}
		if p.peekTokenIs(lexer.COLON) {
			p.nextToken()
			p.nextToken()
			param.TypeAnnotation = p.parseType(TYPE_LOWEST)
			if param.TypeAnnotation == nil {
				return nil
			}
		}
		params = append(params, param)

		if param.IsRest && !p.peekTokenIs(lexer.RPAREN) {
			p.addError(p.peekToken, "a rest parameter must be last in a parameter list")
			return nil
		}
		if p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
			if p.peekTokenIs(lexer.RPAREN) {
				p.nextToken()
				return params
			}
			continue
		}
		if !p.expectPeek(lexer.RPAREN) {
			return nil
		}
		return params
	}
}

func (p *Parser) parseReturnStatement() Statement {
	stmt := &ReturnStatement{Token: p.curToken}

	if p.peekTokenIs(lexer.SEMICOLON) || p.peekTokenIs(lexer.RBRACE) || p.peekTokenIs(lexer.EOF) ||
		p.peekToken.Line > p.curToken.Line {
		p.endStatement()
		return stmt
	}

	p.nextToken()
	stmt.ReturnValue = p.parseExpression(LOWEST)
	if stmt.ReturnValue == nil {
		return nil
	}
	p.endStatement()
	return stmt
}

func (p *Parser) parseBlockStatement() *BlockStatement {
	block := &BlockStatement{Token: p.curToken, Statements: []Statement{}}
	p.blockDepth++
	defer func() { p.blockDepth-- }()
	p.nextToken() // consume '{'

	for !p.curTokenIs(lexer.RBRACE) {
		if p.curTokenIs(lexer.EOF) {
			p.addError(p.curToken, "expected '}' to close block")
			return nil
		}
		before := len(p.errors)
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		if len(p.errors) > before {
			if len(p.errors) >= maxErrors {
				return nil
			}
			p.synchronize()
		}
		p.nextToken()
	}
	return block
}

func (p *Parser) parseIfStatement() Statement {
	stmt := &IfStatement{Token: p.curToken}
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil || !p.expectPeek(lexer.RPAREN) {
		return nil
	}

	p.nextToken()
	stmt.Consequence = p.parseStatement()
	if stmt.Consequence == nil {
		return nil
	}

	if p.peekTokenIs(lexer.ELSE) {
		p.nextToken()
		p.nextToken()
		stmt.Alternative = p.parseStatement()
		if stmt.Alternative == nil {
			return nil
		}
	}
	return stmt
}

func (p *Parser) parseWhileStatement() Statement {
	stmt := &WhileStatement{Token: p.curToken}
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil || !p.expectPeek(lexer.RPAREN) {
		return nil
	}

	p.nextToken()
	stmt.Body = p.parseStatement()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseExpressionStatement() Statement {
	stmt := &ExpressionStatement{Token: p.curToken}
	stmt.Expression = p.parseExpression(LOWEST)
	if stmt.Expression == nil {
		return nil
	}
	p.endStatement()
	return stmt
}

// --- Expression Parsing ---

func (p *Parser) parseExpression(precedence int) Expression {
	debugPrint("parseExpression(prec=%d): cur='%s' (%s)", precedence, p.curToken.Literal, p.curToken.Type)
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	leftExp := prefix()
	if leftExp == nil {
		return nil
	}

	for !p.peekTokenIs(lexer.SEMICOLON) && precedence < p.peekPrecedence() {
		// A line break before ++/-- ends the expression.
		if (p.peekTokenIs(lexer.INC) || p.peekTokenIs(lexer.DEC)) && p.peekToken.Line > p.curToken.Line {
			return leftExp
		}
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
		if leftExp == nil {
			return nil
		}
	}
	return leftExp
}

func (p *Parser) newIdentifier(tok lexer.Token) *Identifier {
	ident := p.arena.NewIdentifier()
	ident.Token = tok
	ident.Value = tok.Literal
	return ident
}

func (p *Parser) parseIdentifier() Expression {
	ident := p.newIdentifier(p.curToken)
	if p.peekTokenIs(lexer.ARROW) {
		p.nextToken() // '=>'
		param := &Parameter{Token: ident.Token, Name: ident}
		return p.parseArrowFunctionBody(ident.Token, []*Parameter{param})
	}
	return ident
}

func (p *Parser) parseNumberLiteral() Expression {
	value, err := parseNumericText(p.curToken.Literal)
	if err != nil {
		p.addError(p.curToken, fmt.Sprintf("could not parse %q as number", p.curToken.Literal))
		return nil
	}
	lit := p.arena.NewNumberLiteral()
	lit.Token = p.curToken
	lit.Value = value
	return lit
}

// parseNumericText converts the raw text of a NUMBER token to its value.
func parseNumericText(raw string) (float64, error) {
	text := strings.ReplaceAll(raw, "_", "")
	if len(text) > 2 && text[0] == '0' {
		base := 0
		switch text[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, ok := new(big.Int).SetString(text[2:], base)
			if !ok {
				return 0, fmt.Errorf("invalid base-%d literal %q", base, raw)
			}
			f, _ := new(big.Float).SetInt(n).Float64()
			return f, nil
		}
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return value, nil // overflow yields ±Inf, as in JavaScript
		}
		return 0, err
	}
	return value, nil
}

func (p *Parser) parseBigIntLiteral() Expression {
	return &BigIntLiteral{Token: p.curToken, Value: strings.ReplaceAll(p.curToken.Literal, "_", "")}
}

func (p *Parser) parseStringLiteral() Expression {
	lit := p.arena.NewStringLiteral()
	lit.Token = p.curToken
	lit.Value = p.curToken.Literal
	return lit
}

func (p *Parser) parseBooleanLiteral() Expression {
	lit := p.arena.NewBooleanLiteral()
	lit.Token = p.curToken
	lit.Value = p.curTokenIs(lexer.TRUE)
	return lit
}

func (p *Parser) parseNullLiteral() Expression {
	return &NullLiteral{Token: p.curToken}
}

func (p *Parser) parseFunctionLiteral() Expression {
	fn := &FunctionLiteral{Token: p.curToken}
	if p.peekTokenIs(lexer.IDENT) {
		p.nextToken()
		fn.Name = p.newIdentifier(p.curToken)
	}
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	fn.Parameters = p.parseParameterList()
	if fn.Parameters == nil {
		return nil
	}
	if p.peekTokenIs(lexer.COLON) {
		p.nextToken()
		p.nextToken()
		fn.ReturnType = p.parseType(TYPE_LOWEST)
		if fn.ReturnType == nil {
			return nil
		}
	}
	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	fn.Body = p.parseBlockStatement()
	if fn.Body == nil {
		return nil
	}
	return fn
}

// parsePrefixExpression handles expressions like !expr, -expr and typeof expr.
func (p *Parser) parsePrefixExpression() Expression {
	expr := &PrefixExpression{Token: p.curToken, Operator: p.curToken.Literal}
	p.nextToken()
	expr.Right = p.parseExpression(PREFIX)
	if expr.Right == nil {
		return nil
	}
	return expr
}

func (p *Parser) parsePrefixUpdateExpression() Expression {
	expr := &UpdateExpression{Token: p.curToken, Operator: p.curToken.Literal, Prefix: true}
	p.nextToken()
	expr.Argument = p.parseExpression(PREFIX)
	if expr.Argument == nil {
		return nil
	}
	return expr
}

func (p *Parser) parsePostfixUpdateExpression(left Expression) Expression {
	return &UpdateExpression{Token: p.curToken, Operator: p.curToken.Literal, Argument: left}
}

// parseGroupedExpression handles `(expr)` and arrow functions `(a, b) => body`.
func (p *Parser) parseGroupedExpression() Expression {
	startTok := p.curToken
	if p.isArrowAhead() {
		params := p.parseParameterList()
		if params == nil || !p.expectPeek(lexer.ARROW) {
			return nil
		}
		return p.parseArrowFunctionBody(startTok, params)
	}

	p.nextToken()
	inner := p.parseExpression(LOWEST)
	if inner == nil || !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return &ParenthesizedExpression{Token: startTok, Expression: inner}
}

// isArrowAhead reports whether the parenthesis at curToken closes right
// before an '=>'.
func (p *Parser) isArrowAhead() bool {
	state := p.l.SaveState()
	defer p.l.RestoreState(state)

	depth := 1
	tok := p.peekToken
	for {
		switch tok.Type {
		case lexer.LPAREN:
			depth++
		case lexer.RPAREN:
			depth--
			if depth == 0 {
				return p.l.NextToken().Type == lexer.ARROW
			}
		case lexer.EOF:
			return false
		}
		tok = p.l.NextToken()
	}
}

// parseArrowFunctionBody parses the body after '=>' (curToken).
func (p *Parser) parseArrowFunctionBody(tok lexer.Token, params []*Parameter) Expression {
	fn := &ArrowFunctionLiteral{Token: tok, Parameters: params}
	if p.peekTokenIs(lexer.LBRACE) {
		p.nextToken()
		body := p.parseBlockStatement()
		if body == nil {
			return nil
		}
		fn.Body = body
		return fn
	}
	p.nextToken()
	body := p.parseExpression(ASSIGNMENT - 1)
	if body == nil {
		return nil
	}
	fn.Body = body
	return fn
}

func (p *Parser) parseArrayLiteral() Expression {
	array := &ArrayLiteral{Token: p.curToken, Elements: []Expression{}}

	for !p.peekTokenIs(lexer.RBRACKET) {
		if p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
			array.Elements = append(array.Elements, &OmittedExpression{Token: p.curToken})
			continue
		}
		p.nextToken()
		elem := p.parseExpression(LOWEST)
		if elem == nil {
			return nil
		}
		array.Elements = append(array.Elements, elem)
		if !p.peekTokenIs(lexer.RBRACKET) && !p.expectPeek(lexer.COMMA) {
			return nil
		}
	}
	p.nextToken() // ']'
	return array
}

func (p *Parser) parseSpreadElement() Expression {
	spread := &SpreadElement{Token: p.curToken}
	p.nextToken()
	spread.Argument = p.parseExpression(LOWEST)
	if spread.Argument == nil {
		return nil
	}
	return spread
}

func (p *Parser) parseObjectLiteral() Expression {
	obj := &ObjectLiteral{Token: p.curToken, Properties: []*ObjectProperty{}}

	for !p.peekTokenIs(lexer.RBRACE) {
		p.nextToken()
		var key Expression
		switch {
		case p.curTokenIs(lexer.STRING):
			key = p.parseStringLiteral()
		case p.curTokenIs(lexer.NUMBER):
			key = p.parseNumberLiteral()
		case isIdentifierName(p.curToken):
			key = p.newIdentifier(p.curToken)
		default:
			p.addError(p.curToken, fmt.Sprintf("expected property name, got %s", describeToken(p.curToken)))
			return nil
		}
		if key == nil {
			return nil
		}

		prop := &ObjectProperty{Key: key}
		if p.peekTokenIs(lexer.COLON) {
			p.nextToken()
			p.nextToken()
			prop.Value = p.parseExpression(LOWEST)
			if prop.Value == nil {
				return nil
			}
		} else if ident, ok := key.(*Identifier); ok && p.curTokenIs(lexer.IDENT) {
			prop.Value = ident // shorthand `{ a }`
		} else {
			p.peekError(lexer.COLON)
			return nil
		}
		obj.Properties = append(obj.Properties, prop)

		if !p.peekTokenIs(lexer.RBRACE) && !p.expectPeek(lexer.COMMA) {
			return nil
		}
	}
	p.nextToken() // '}'
	return obj
}

func (p *Parser) parseInfixExpression(left Expression) Expression {
	expr := p.arena.NewInfixExpression()
	expr.Token = p.curToken
	expr.Operator = p.curToken.Literal
	expr.Left = left

	precedence := p.curPrecedence()
	if p.curTokenIs(lexer.EXPONENT) {
		precedence-- // right-associative
	}
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	if expr.Right == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseLogicalExpression(left Expression) Expression {
	expr := &LogicalExpression{Token: p.curToken, Operator: p.curToken.Literal, Left: left}
	precedence := p.curPrecedence()
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	if expr.Right == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseAssignmentExpression(left Expression) Expression {
	switch left.(type) {
	case *Identifier, *MemberExpression, *IndexExpression:
	default:
		p.addError(p.curToken, "invalid left-hand side in assignment")
		return nil
	}
	expr := &AssignmentExpression{Token: p.curToken, Operator: p.curToken.Literal, Left: left}
	p.nextToken()
	expr.Value = p.parseExpression(ASSIGNMENT - 1) // right-associative
	if expr.Value == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseTernaryExpression(condition Expression) Expression {
	expr := &TernaryExpression{Token: p.curToken, Condition: condition}
	p.nextToken()
	expr.Consequence = p.parseExpression(LOWEST)
	if expr.Consequence == nil || !p.expectPeek(lexer.COLON) {
		return nil
	}
	p.nextToken()
	expr.Alternative = p.parseExpression(TERNARY - 1)
	if expr.Alternative == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseCallExpression(function Expression) Expression {
	call := p.arena.NewCallExpression()
	call.Token = p.curToken
	call.Function = function
	call.Arguments = []Expression{}

	for !p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
		arg := p.parseExpression(LOWEST)
		if arg == nil {
			return nil
		}
		call.Arguments = append(call.Arguments, arg)
		if !p.peekTokenIs(lexer.RPAREN) && !p.expectPeek(lexer.COMMA) {
			return nil
		}
	}
	p.nextToken() // ')'
	return call
}

func (p *Parser) parseIndexExpression(left Expression) Expression {
	expr := &IndexExpression{Token: p.curToken, Left: left}
	p.nextToken()
	expr.Index = p.parseExpression(LOWEST)
	if expr.Index == nil || !p.expectPeek(lexer.RBRACKET) {
		return nil
	}
	return expr
}

func (p *Parser) parseMemberExpression(object Expression) Expression {
	member := p.arena.NewMemberExpression()
	member.Token = p.curToken
	member.Object = object

	p.nextToken()
	if !isIdentifierName(p.curToken) {
		p.addError(p.curToken, fmt.Sprintf("expected property name after '.', got %s", describeToken(p.curToken)))
		return nil
	}
	member.Property = p.newIdentifier(p.curToken)
	return member
}

// isIdentifierName reports whether tok can be used as a property name:
// identifiers and reserved words alike.
func isIdentifierName(tok lexer.Token) bool {
	if tok.Type == lexer.IDENT {
		return true
	}
	return tok.Literal != "" && lexer.LookupIdent(tok.Literal) == tok.Type
}

// --- Helpers ---

func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t lexer.TokenType) bool {
	return p.peekToken.Type == t
}

// lookAhead returns the token at position 'pos' ahead of peekToken
// pos=0 returns peekToken, pos=1 returns the token after peekToken, etc.
func (p *Parser) lookAhead(pos int) lexer.Token {
	if pos == 0 {
		return p.peekToken
	}
	state := p.l.SaveState()
	defer p.l.RestoreState(state)

	var token lexer.Token
	for i := 0; i < pos; i++ {
		token = p.l.NextToken()
	}
	return token
}

// expectPeek checks the type of the next token and advances if it matches.
// If it doesn't match, it adds an error.
func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// --- Error Handling ---

func describeToken(tok lexer.Token) string {
	switch tok.Type {
	case lexer.EOF:
		return "end of input"
	case lexer.STRING:
		return "string literal"
	case lexer.NUMBER, lexer.BIGINT:
		return fmt.Sprintf("number '%s'", tok.Literal)
	case lexer.IDENT:
		return fmt.Sprintf("identifier '%s'", tok.Literal)
	}
	return fmt.Sprintf("'%s'", tok.Literal)
}

func (p *Parser) peekError(t lexer.TokenType) {
	if p.peekTokenIs(lexer.ILLEGAL) {
		p.addError(p.peekToken, p.peekToken.Literal)
		return
	}
	p.addError(p.peekToken, fmt.Sprintf("expected next token to be %s, got %s instead", t, describeToken(p.peekToken)))
}

func (p *Parser) noPrefixParseFnError(tok lexer.Token) {
	if tok.Type == lexer.ILLEGAL {
		p.addError(tok, tok.Literal)
		return
	}
	p.addError(tok, fmt.Sprintf("unexpected %s", describeToken(tok)))
}

// addError creates a SyntaxError and appends it to the parser's error list.
// A second error at the same token is dropped.
func (p *Parser) addError(tok lexer.Token, msg string) {
	if len(p.errors) >= maxErrors {
		return
	}
	if n := len(p.errors); n > 0 && p.errors[n-1].Pos().StartPos == tok.StartPos {
		return
	}
	p.errors = append(p.errors, &errors.SyntaxError{
		Position: errors.Position{
			Line:     tok.Line,
			Column:   tok.Column,
			StartPos: tok.StartPos,
			EndPos:   tok.EndPos,
			Source:   p.source,
		},
		Msg: msg,
	})
}
