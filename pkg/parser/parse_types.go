package parser

import (
	"fmt"

	"tscheck/pkg/lexer"
)

// parseType is the Pratt loop for type annotations.
func (p *Parser) parseType(precedence int) TypeNode {
	debugPrint("parseType(prec=%d): cur='%s' (%s)", precedence, p.curToken.Literal, p.curToken.Type)
	prefix := p.typePrefixParseFns[p.curToken.Type]
	if prefix == nil {
		if p.curTokenIs(lexer.ILLEGAL) {
			p.addError(p.curToken, p.curToken.Literal)
		} else {
			p.addError(p.curToken, fmt.Sprintf("expected a type, got %s", describeToken(p.curToken)))
		}
		return nil
	}
	left := prefix()
	if left == nil {
		return nil
	}

	for precedence < p.peekTypePrecedence() {
		infix := p.typeInfixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}
	return left
}

func (p *Parser) peekTypePrecedence() int {
	if prec, ok := typePrecedences[p.peekToken.Type]; ok {
		return prec
	}
	return TYPE_LOWEST
}

// parseTypeIdentifier handles keyword types and (dotted) type references.
func (p *Parser) parseTypeIdentifier() TypeNode {
	if IsTypeKeyword(p.curToken.Literal) {
		return p.parseKeywordTypeToken()
	}
	ref := &TypeReference{Token: p.curToken, Name: p.curToken.Literal}
	for p.peekTokenIs(lexer.DOT) {
		p.nextToken()
		if !p.expectPeek(lexer.IDENT) {
			return nil
		}
		ref.Name += "." + p.curToken.Literal
	}
	if p.peekTokenIs(lexer.LT) {
		p.addError(p.peekToken, "generic type arguments are not supported")
		return nil
	}
	return ref
}

func (p *Parser) parseKeywordTypeToken() TypeNode {
	kw := p.arena.NewKeywordType()
	kw.Token = p.curToken
	kw.Name = p.curToken.Literal
	return kw
}

func (p *Parser) parseLiteralType() TypeNode {
	tok := p.curToken
	var lit Expression
	switch tok.Type {
	case lexer.STRING:
		lit = p.parseStringLiteral()
	case lexer.TRUE, lexer.FALSE:
		lit = p.parseBooleanLiteral()
	case lexer.NUMBER:
		lit = p.parseNumberLiteral()
	case lexer.MINUS:
		if !p.expectPeek(lexer.NUMBER) {
			return nil
		}
		num, ok := p.parseNumberLiteral().(*NumberLiteral)
		if !ok {
			return nil
		}
		num.Value = -num.Value
		lit = num
	}
	if lit == nil {
		return nil
	}
	return &LiteralTypeNode{Token: tok, Literal: lit}
}

// parseTupleType parses `[A, B]` with curToken on '['.
func (p *Parser) parseTupleType() TypeNode {
	tuple := &TupleTypeNode{Token: p.curToken, ElementTypes: []TypeNode{}}
	for !p.peekTokenIs(lexer.RBRACKET) {
		p.nextToken()
		elem := p.parseType(TYPE_LOWEST)
		if elem == nil {
			return nil
		}
		tuple.ElementTypes = append(tuple.ElementTypes, elem)
		if !p.peekTokenIs(lexer.RBRACKET) && !p.expectPeek(lexer.COMMA) {
			return nil
		}
	}
	p.nextToken() // ']'
	return tuple
}

// parseParenOrFunctionType handles both `(A | B)` and `(a: A) => R`.
// Parentheses around a type only group; they leave no node behind.
func (p *Parser) parseParenOrFunctionType() TypeNode {
	if p.isFunctionTypeAhead() {
		fn := &FunctionTypeNode{Token: p.curToken}
		fn.Parameters = p.parseParameterList()
		if fn.Parameters == nil || !p.expectPeek(lexer.ARROW) {
			return nil
		}
		p.nextToken()
		fn.ReturnType = p.parseType(TYPE_LOWEST)
		if fn.ReturnType == nil {
			return nil
		}
		return fn
	}

	p.nextToken()
	inner := p.parseType(TYPE_LOWEST)
	if inner == nil || !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return inner
}

// isFunctionTypeAhead decides, with curToken on '(', whether a function
// type follows.
func (p *Parser) isFunctionTypeAhead() bool {
	switch p.peekToken.Type {
	case lexer.RPAREN, lexer.SPREAD:
		return true
	case lexer.IDENT:
		switch p.lookAhead(1).Type {
		case lexer.COLON, lexer.COMMA, lexer.QUESTION:
			return true
		case lexer.RPAREN:
			return p.lookAhead(2).Type == lexer.ARROW
		}
	}
	return false
}

// parseLeadingPipeUnionType handles `| A | B`.
func (p *Parser) parseLeadingPipeUnionType() TypeNode {
	tok := p.curToken
	p.nextToken()
	first := p.parseType(TYPE_UNION)
	if first == nil {
		return nil
	}
	if !p.peekTokenIs(lexer.PIPE) {
		return first
	}
	p.nextToken()
	union, ok := p.parseUnionType(first).(*UnionTypeNode)
	if !ok {
		return nil
	}
	union.Token = tok
	return union
}

// parseUnionType collects every member of an `A | B | C` chain, with
// curToken on the first '|'.
func (p *Parser) parseUnionType(left TypeNode) TypeNode {
	union := &UnionTypeNode{Token: p.curToken, Types: []TypeNode{left}}
	for {
		p.nextToken()
		member := p.parseType(TYPE_UNION)
		if member == nil {
			return nil
		}
		union.Types = append(union.Types, member)
		if !p.peekTokenIs(lexer.PIPE) {
			return union
		}
		p.nextToken()
	}
}

// parseArrayType handles `T[]` with curToken on '['.
func (p *Parser) parseArrayType(elem TypeNode) TypeNode {
	arr := &ArrayTypeNode{Token: p.curToken, ElementType: elem}
	if !p.expectPeek(lexer.RBRACKET) {
		return nil
	}
	return arr
}
