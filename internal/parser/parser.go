// Package parser implements a Pratt/precedence-climbing parser for XS,
// producing an ast.File and a list of recoverable parse errors - the
// parser never panics, it substitutes an *ast.ErrorExpr and resynchronizes.
package parser

import (
	"fmt"
	"strconv"

	"github.com/Divy1211/xs-check/internal/ast"
	"github.com/Divy1211/xs-check/internal/lexer"
	"github.com/Divy1211/xs-check/internal/span"
	"github.com/Divy1211/xs-check/internal/token"
)

const (
	_ int = iota
	LOWEST
	OR
	AND
	EQUALS
	LESSGREATER
	SUM
	PRODUCT
	UNARY
	CALL
)

var precedences = map[token.Type]int{
	token.OR:        OR,
	token.AND:       AND,
	token.EQ:        EQUALS,
	token.NOT_EQ:    EQUALS,
	token.LT:        LESSGREATER,
	token.GT:        LESSGREATER,
	token.LT_EQ:     LESSGREATER,
	token.GT_EQ:     LESSGREATER,
	token.PLUS:      SUM,
	token.MINUS:     SUM,
	token.ASTERISK:  PRODUCT,
	token.SLASH:     PRODUCT,
	token.PERCENT:   PRODUCT,
}

type ParseError struct {
	Message string
	Span    span.Span
}

func (e ParseError) Error() string { return e.Message }

type prefixParseFn func() ast.Expr
type infixParseFn func(ast.Expr) ast.Expr

// Parser consumes a token stream from a *lexer.Lexer one token of lookahead
// at a time, in the teacher's cur/peek style.
type Parser struct {
	l      *lexer.Lexer
	errors []ParseError

	curToken  token.Token
	peekToken token.Token

	pendingDoc string
	classNames map[string]bool

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l, classNames: map[string]bool{}}

	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.IDENT:    p.parseIdentOrCall,
		token.INT:      p.parseIntLiteral,
		token.FLOAT:    p.parseFloatLiteral,
		token.TRUE:     p.parseBoolLiteral,
		token.FALSE:    p.parseBoolLiteral,
		token.STRING:   p.parseStringLiteral,
		token.LPAREN:   p.parseGroupedOrVec,
		token.LBRACE:   p.parseVecLiteral,
		token.MINUS:    p.parseNeg,
		token.BANG:     p.parseNot,
	}

	p.infixParseFns = map[token.Type]infixParseFn{
		token.PLUS:     p.parseArith,
		token.MINUS:    p.parseArith,
		token.ASTERISK: p.parseArith,
		token.SLASH:    p.parseArith,
		token.PERCENT:  p.parseArith,
		token.LT:       p.parseRel,
		token.GT:       p.parseRel,
		token.LT_EQ:    p.parseRel,
		token.GT_EQ:    p.parseRel,
		token.EQ:       p.parseRel,
		token.NOT_EQ:   p.parseRel,
		token.AND:      p.parseLog,
		token.OR:       p.parseLog,
	}

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) Errors() []ParseError { return p.errors }

func (p *Parser) addError(format string, sp span.Span, args ...interface{}) {
	p.errors = append(p.errors, ParseError{Message: fmt.Sprintf(format, args...), Span: sp})
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
	for p.peekToken.Type == token.DOC_COMMENT {
		p.pendingDoc = p.peekToken.Literal
		p.peekToken = p.l.NextToken()
	}
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.addError("Syntax: expected next token to be %s, got %s instead", p.peekToken.Span, t, p.peekToken.Type)
	return false
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

// synchronize resumes parsing at the next statement boundary after an error,
// mirroring the teacher's error-recovery resync point.
func (p *Parser) synchronize() {
	for !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			return
		}
		if p.curTokenIs(token.RBRACE) {
			return
		}
		p.nextToken()
	}
}

func (p *Parser) takeDoc() string {
	d := p.pendingDoc
	p.pendingDoc = ""
	return d
}

// ParseFile parses a whole source file into a flat list of top-level
// declarations.
func (p *Parser) ParseFile(path string) *ast.File {
	file := &ast.File{Path: path}
	for !p.curTokenIs(token.EOF) {
		decl := p.parseDecl()
		if decl != nil {
			file.Decls = append(file.Decls, decl)
		} else {
			p.synchronize()
			// synchronize stops on '}', which never starts a declaration.
			if p.curTokenIs(token.RBRACE) {
				p.nextToken()
			}
		}
	}
	return file
}

func (p *Parser) parseDecl() ast.Decl {
	// A failed typed parse returns a nil pointer; it is returned as an untyped
	// nil so that ParseFile sees the failure and resynchronizes.
	switch p.curToken.Type {
	case token.CLASS:
		if cd := p.parseClassDef(); cd != nil {
			return cd
		}
	case token.RULE:
		if rd := p.parseRuleDef(); rd != nil {
			return rd
		}
	case token.INCLUDE:
		if inc := p.parseInclude(); inc != nil {
			return inc
		}
	case token.GROUP:
		if g := p.parseGroupDecl(); g != nil {
			return g
		}
	default:
		if token.IsTypeKeyword(p.curToken.Type) || p.isKnownClassName(p.curToken.Literal) {
			return p.parseVarOrFnDef()
		}
		p.addError("Syntax: unexpected token %s at top level", p.curToken.Span, p.curToken.Type)
	}
	return nil
}

func (p *Parser) isKnownClassName(name string) bool {
	return p.classNames[name]
}

func (p *Parser) parseTypeRef() ast.TypeRef {
	tr := ast.TypeRef{Name: p.curToken.Literal, Span: p.curToken.Span}
	return tr
}

func (p *Parser) parseVarOrFnDef() ast.Decl {
	doc := p.takeDoc()
	typ := p.parseTypeRef()
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := span.New(p.curToken.Literal, p.curToken.Span)
	start := typ.Span

	if p.peekTokenIs(token.LPAREN) {
		return p.parseFnDef(typ, name, doc, start)
	}
	return p.parseVarDefTail(typ, name, doc, start)
}

func (p *Parser) parseVarDefTail(typ ast.TypeRef, name span.Spanned[string], doc string, start span.Span) *ast.VarDef {
	def := &ast.VarDef{Type: typ, Name: name, Doc: doc}
	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		def.Value = p.parseExpression(LOWEST)
	}
	if !p.expectPeek(token.SEMICOLON) {
		return def
	}
	def.Sp = start.Union(p.curToken.Span)
	p.nextToken()
	return def
}

func (p *Parser) parseFnDef(ret ast.TypeRef, name span.Spanned[string], doc string, start span.Span) *ast.FnDef {
	fn := &ast.FnDef{ReturnType: ret, Name: name, Doc: doc}
	p.nextToken() // consume '('
	fn.Params = p.parseParams()
	if !p.expectPeek(token.LBRACE) {
		return fn
	}
	fn.Body = p.parseBlock()
	fn.Sp = start.Union(fn.Body.Sp)
	return fn
}

func (p *Parser) parseParams() []ast.Param {
	var params []ast.Param
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken()
	for {
		typ := p.parseTypeRef()
		if !p.expectPeek(token.IDENT) {
			break
		}
		params = append(params, ast.Param{Type: typ, Name: span.New(p.curToken.Literal, p.curToken.Span)})
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.nextToken()
	}
	p.expectPeek(token.RPAREN)
	return params
}

func (p *Parser) parseClassDef() *ast.ClassDef {
	doc := p.takeDoc()
	start := p.curToken.Span
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := span.New(p.curToken.Literal, p.curToken.Span)
	p.classNames[name.Value] = true
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.nextToken()
	cd := &ast.ClassDef{Name: name, Doc: doc}
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		member := p.parseVarOrFnDef()
		if vd, ok := member.(*ast.VarDef); ok {
			cd.Members = append(cd.Members, vd)
		}
	}
	if !p.curTokenIs(token.RBRACE) {
		p.addError("Syntax: unterminated class body", p.curToken.Span)
		return cd
	}
	end := p.curToken.Span
	p.nextToken()
	if !p.curTokenIs(token.SEMICOLON) {
		p.addError("Syntax: expected ';' after class body", p.curToken.Span)
	} else {
		end = p.curToken.Span
		p.nextToken()
	}
	cd.Sp = start.Union(end)
	return cd
}

func (p *Parser) parseRuleDef() *ast.RuleDef {
	doc := p.takeDoc()
	start := p.curToken.Span
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := span.New(p.curToken.Literal, p.curToken.Span)
	rd := &ast.RuleDef{Name: name, Doc: doc}

	for {
		switch p.peekToken.Type {
		case token.ACTIVE:
			p.nextToken()
			rd.Opts = append(rd.Opts, ast.RuleOpt{Kind: ast.OptActive, Sp: p.curToken.Span})
		case token.INACTIVE:
			p.nextToken()
			rd.Opts = append(rd.Opts, ast.RuleOpt{Kind: ast.OptInactive, Sp: p.curToken.Span})
		case token.RUN_IMMEDIATELY:
			p.nextToken()
			rd.Opts = append(rd.Opts, ast.RuleOpt{Kind: ast.OptRunImmediately, Sp: p.curToken.Span})
		case token.HIGH_FREQUENCY:
			p.nextToken()
			rd.Opts = append(rd.Opts, ast.RuleOpt{Kind: ast.OptHighFrequency, Sp: p.curToken.Span})
		case token.MIN_INTERVAL, token.MAX_INTERVAL, token.PRIORITY:
			kind := map[token.Type]ast.RuleOptKind{
				token.MIN_INTERVAL: ast.OptMinInterval,
				token.MAX_INTERVAL: ast.OptMaxInterval,
				token.PRIORITY:     ast.OptPriority,
			}[p.peekToken.Type]
			p.nextToken()
			sp := p.curToken.Span
			if !p.expectPeek(token.INT) {
				continue
			}
			n, _ := strconv.Atoi(p.curToken.Literal)
			rd.Opts = append(rd.Opts, ast.RuleOpt{Kind: kind, IntArg: n, Sp: sp.Union(p.curToken.Span)})
		case token.GROUP:
			p.nextToken()
			sp := p.curToken.Span
			if !p.expectPeek(token.STRING) {
				continue
			}
			rd.Opts = append(rd.Opts, ast.RuleOpt{Kind: ast.OptGroup, StrArg: p.curToken.Literal, Sp: sp.Union(p.curToken.Span)})
		default:
			goto optsDone
		}
	}
optsDone:
	if !p.expectPeek(token.LBRACE) {
		return rd
	}
	rd.Body = p.parseBlock()
	rd.Sp = start.Union(rd.Body.Sp)
	return rd
}

func (p *Parser) parseInclude() *ast.Include {
	start := p.curToken.Span
	if !p.expectPeek(token.STRING) {
		return nil
	}
	path := span.New(p.curToken.Literal, p.curToken.Span)
	end := p.curToken.Span
	if p.expectPeek(token.SEMICOLON) {
		end = p.curToken.Span
		p.nextToken()
	}
	return &ast.Include{Path: path, Sp: start.Union(end)}
}

func (p *Parser) parseGroupDecl() *ast.GroupDecl {
	start := p.curToken.Span
	if !p.expectPeek(token.STRING) {
		return nil
	}
	name := span.New(p.curToken.Literal, p.curToken.Span)
	end := p.curToken.Span
	if p.expectPeek(token.SEMICOLON) {
		end = p.curToken.Span
		p.nextToken()
	}
	return &ast.GroupDecl{Name: name, Sp: start.Union(end)}
}

// ---- Statements ----

func (p *Parser) parseBlock() *ast.Block {
	start := p.curToken.Span
	block := &ast.Block{}
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		} else {
			p.synchronize()
		}
	}
	end := p.curToken.Span
	if p.curTokenIs(token.RBRACE) {
		p.nextToken()
	}
	block.Sp = start.Union(end)
	return block
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.curToken.Type {
	case token.IF:
		if s := p.parseIf(); s != nil {
			return s
		}
		return nil
	case token.WHILE:
		if s := p.parseWhile(); s != nil {
			return s
		}
		return nil
	case token.FOR:
		if s := p.parseFor(); s != nil {
			return s
		}
		return nil
	case token.BREAK:
		return p.parseBreak()
	case token.CONTINUE:
		return p.parseContinue()
	case token.RETURN:
		return p.parseReturn()
	case token.LBRACE:
		return p.parseBlock()
	default:
		if token.IsTypeKeyword(p.curToken.Type) || p.isKnownClassName(p.curToken.Literal) {
			def := p.parseVarOrFnDef()
			if vd, ok := def.(*ast.VarDef); ok {
				return &ast.VarDefStmt{Def: vd}
			}
			p.addError("Syntax: nested function declarations are not allowed", p.curToken.Span)
			return nil
		}
		return p.parseSimpleStatement()
	}
}

// parseSimpleStatement disambiguates assignment/inc-dec/expr-statement by
// peeking past the leading identifier, matching the teacher's
// parseExpressionStatement assignment-detection pattern.
func (p *Parser) parseSimpleStatement() ast.Stmt {
	if p.curTokenIs(token.IDENT) {
		target := span.New(p.curToken.Literal, p.curToken.Span)
		switch p.peekToken.Type {
		case token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.ASTERISK_ASSIGN, token.SLASH_ASSIGN, token.PERCENT_ASSIGN:
			op := map[token.Type]ast.AssignOp{
				token.ASSIGN:          ast.AssignPlain,
				token.PLUS_ASSIGN:     ast.AssignAdd,
				token.MINUS_ASSIGN:    ast.AssignSub,
				token.ASTERISK_ASSIGN: ast.AssignMul,
				token.SLASH_ASSIGN:    ast.AssignDiv,
				token.PERCENT_ASSIGN:  ast.AssignMod,
			}[p.peekToken.Type]
			p.nextToken()
			p.nextToken()
			val := p.parseExpression(LOWEST)
			end := p.curToken.Span
			a := &ast.Assign{Target: target, Op: op, Value: val, Sp: target.Span.Union(end)}
			p.expectStmtEnd()
			return a
		case token.INC, token.DEC:
			opKind := ast.IncOp
			if p.peekToken.Type == token.DEC {
				opKind = ast.DecOp
			}
			p.nextToken()
			end := p.curToken.Span
			id := &ast.IncDec{Target: target, Op: opKind, Sp: target.Span.Union(end)}
			p.expectStmtEnd()
			return id
		}
	}
	start := p.curToken.Span
	x := p.parseExpression(LOWEST)
	end := p.curToken.Span
	p.expectStmtEnd()
	return &ast.ExprStmt{X: x, Sp: start.Union(end)}
}

// expectStmtEnd consumes a trailing ';' if present and advances past it;
// callers already sitting on the terminator's token after parseExpression
// just need the final nextToken.
func (p *Parser) expectStmtEnd() {
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	p.nextToken()
}

func (p *Parser) parseIf() *ast.If {
	start := p.curToken.Span
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	then := p.parseBlock()
	stmt := &ast.If{Cond: cond, Then: then, Sp: start.Union(then.Sp)}
	if p.curTokenIs(token.ELSE) {
		p.nextToken()
		if p.curTokenIs(token.IF) {
			if elseIf := p.parseIf(); elseIf != nil {
				stmt.Else = elseIf
			}
		} else if p.curTokenIs(token.LBRACE) {
			elseBlock := p.parseBlock()
			stmt.Else = elseBlock
			stmt.Sp = start.Union(elseBlock.Sp)
		} else {
			p.addError("Syntax: expected next token to be %s, got %s instead", p.curToken.Span, token.LBRACE, p.curToken.Type)
		}
	}
	return stmt
}

func (p *Parser) parseWhile() *ast.While {
	start := p.curToken.Span
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlock()
	return &ast.While{Cond: cond, Body: body, Sp: start.Union(body.Sp)}
}

func (p *Parser) parseFor() *ast.For {
	start := p.curToken.Span
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()

	f := &ast.For{}
	if !p.curTokenIs(token.SEMICOLON) {
		f.Init = p.parseStatement()
	} else {
		p.nextToken()
	}
	// Both branches above leave the current token just past the first ';'.
	if !p.curTokenIs(token.SEMICOLON) {
		f.Cond = p.parseExpression(LOWEST)
		if !p.expectPeek(token.SEMICOLON) {
			return nil
		}
	}
	p.nextToken()
	if !p.curTokenIs(token.RPAREN) {
		f.Step = p.parseSimpleStatementNoTerm()
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	f.Body = p.parseBlock()
	f.Sp = start.Union(f.Body.Sp)
	return f
}

// parseSimpleStatementNoTerm parses an assignment/inc-dec without consuming
// a trailing ';' - used for the `for` step clause, which is terminated by
// ')' instead.
func (p *Parser) parseSimpleStatementNoTerm() ast.Stmt {
	if !p.curTokenIs(token.IDENT) {
		return nil
	}
	target := span.New(p.curToken.Literal, p.curToken.Span)
	switch p.peekToken.Type {
	case token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.ASTERISK_ASSIGN, token.SLASH_ASSIGN, token.PERCENT_ASSIGN:
		op := map[token.Type]ast.AssignOp{
			token.ASSIGN:          ast.AssignPlain,
			token.PLUS_ASSIGN:     ast.AssignAdd,
			token.MINUS_ASSIGN:    ast.AssignSub,
			token.ASTERISK_ASSIGN: ast.AssignMul,
			token.SLASH_ASSIGN:    ast.AssignDiv,
			token.PERCENT_ASSIGN:  ast.AssignMod,
		}[p.peekToken.Type]
		p.nextToken()
		p.nextToken()
		val := p.parseExpression(LOWEST)
		return &ast.Assign{Target: target, Op: op, Value: val, Sp: target.Span.Union(p.curToken.Span)}
	case token.INC, token.DEC:
		opKind := ast.IncOp
		if p.peekToken.Type == token.DEC {
			opKind = ast.DecOp
		}
		p.nextToken()
		return &ast.IncDec{Target: target, Op: opKind, Sp: target.Span.Union(p.curToken.Span)}
	}
	return nil
}

func (p *Parser) parseBreak() *ast.Break {
	sp := p.curToken.Span
	p.expectStmtEnd()
	return &ast.Break{Sp: sp}
}

func (p *Parser) parseContinue() *ast.Continue {
	sp := p.curToken.Span
	p.expectStmtEnd()
	return &ast.Continue{Sp: sp}
}

func (p *Parser) parseReturn() *ast.Return {
	start := p.curToken.Span
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		p.nextToken()
		return &ast.Return{Sp: start}
	}
	p.nextToken()
	val := p.parseExpression(LOWEST)
	end := p.curToken.Span
	p.expectStmtEnd()
	return &ast.Return{Value: val, Sp: start.Union(end)}
}

// ---- Expressions (Pratt core, mirroring the teacher's parseExpression) ----

func (p *Parser) parseExpression(precedence int) ast.Expr {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.addError("Syntax: unexpected token %s in expression", p.curToken.Span, p.curToken.Type)
		e := &ast.ErrorExpr{Message: "unexpected token", Sp: p.curToken.Span}
		return e
	}
	left := prefix()

	for !p.peekTokenIs(token.SEMICOLON) && !p.peekTokenIs(token.EOF) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentOrCall() ast.Expr {
	name := span.New(p.curToken.Literal, p.curToken.Span)
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		return p.parseCall(name)
	}
	return &ast.Ident{Name: name.Value, Sp: name.Span}
}

func (p *Parser) parseCall(name span.Spanned[string]) ast.Expr {
	call := &ast.Call{Fn: name}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		call.Sp = name.Span.Union(p.curToken.Span)
		return call
	}
	p.nextToken()
	call.Args = append(call.Args, p.parseExpression(LOWEST))
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		call.Args = append(call.Args, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(token.RPAREN) {
		return call
	}
	call.Sp = name.Span.Union(p.curToken.Span)
	return call
}

func (p *Parser) parseIntLiteral() ast.Expr {
	v, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.addError("Syntax: invalid integer literal %q", p.curToken.Span, p.curToken.Literal)
	}
	return &ast.IntLit{Value: v, Sp: p.curToken.Span}
}

func (p *Parser) parseFloatLiteral() ast.Expr {
	v, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.addError("Syntax: invalid float literal %q", p.curToken.Span, p.curToken.Literal)
	}
	return &ast.FloatLit{Value: v, Sp: p.curToken.Span}
}

func (p *Parser) parseBoolLiteral() ast.Expr {
	return &ast.BoolLit{Value: p.curTokenIs(token.TRUE), Sp: p.curToken.Span}
}

func (p *Parser) parseStringLiteral() ast.Expr {
	return &ast.StrLit{Value: p.curToken.Literal, Sp: p.curToken.Span}
}

// parseGroupedOrVec disambiguates `(expr)` from `{x,y,z}` - vector literals
// use brace delimiters in XS, so this only ever produces a Paren; kept as a
// distinct prefix fn name to mirror the teacher's parseGroupedExpression.
func (p *Parser) parseGroupedOrVec() ast.Expr {
	start := p.curToken.Span
	p.nextToken()
	x := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return x
	}
	return &ast.Paren{X: x, Sp: start.Union(p.curToken.Span)}
}

// parseVecLiteral parses `{x, y, z}`, the XS vector literal.
func (p *Parser) parseVecLiteral() ast.Expr {
	start := p.curToken.Span
	p.nextToken()
	x := p.parseExpression(LOWEST)
	if !p.expectPeek(token.COMMA) {
		return x
	}
	p.nextToken()
	y := p.parseExpression(LOWEST)
	if !p.expectPeek(token.COMMA) {
		return y
	}
	p.nextToken()
	z := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RBRACE) {
		return z
	}
	return &ast.VecLit{X: x, Y: y, Z: z, Sp: start.Union(p.curToken.Span)}
}

// parseNeg implements the no-whitespace-before-operand rule: `- 1` is a
// syntax error, `-1` is unary negation.
func (p *Parser) parseNeg() ast.Expr {
	start := p.curToken.Span
	p.nextToken()
	if p.curToken.Span.Start-start.End > 0 {
		p.addError("Syntax: no whitespace is allowed between unary '-' and its operand", start.Union(p.curToken.Span))
	}
	x := p.parseExpression(UNARY)
	return &ast.Neg{X: x, Sp: start.Union(x.Span())}
}

// parseNot always reports a Syntax error: XS forbids `!`, matching the
// original implementation's exact diagnostic text.
func (p *Parser) parseNot() ast.Expr {
	start := p.curToken.Span
	p.addError("Syntax: Unary not (!) is not allowed in XS. yES", start)
	p.nextToken()
	x := p.parseExpression(UNARY)
	return &ast.Not{X: x, Sp: start.Union(x.Span())}
}

func (p *Parser) parseArith(left ast.Expr) ast.Expr {
	op := map[token.Type]ast.ArithOp{
		token.PLUS:     ast.Add,
		token.MINUS:    ast.Sub,
		token.ASTERISK: ast.Mul,
		token.SLASH:    ast.Div,
		token.PERCENT:  ast.Mod,
	}[p.curToken.Type]
	prec := precedences[p.curToken.Type]
	p.nextToken()
	right := p.parseExpression(prec)
	return &ast.BinaryArith{Op: op, Left: left, Right: right, Sp: left.Span().Union(right.Span())}
}

func (p *Parser) parseRel(left ast.Expr) ast.Expr {
	op := map[token.Type]ast.RelOp{
		token.LT:     ast.Lt,
		token.GT:     ast.Gt,
		token.LT_EQ:  ast.LtEq,
		token.GT_EQ:  ast.GtEq,
		token.EQ:     ast.Eq,
		token.NOT_EQ: ast.NotEq,
	}[p.curToken.Type]
	prec := precedences[p.curToken.Type]
	p.nextToken()
	right := p.parseExpression(prec)
	return &ast.BinaryRel{Op: op, Left: left, Right: right, Sp: left.Span().Union(right.Span())}
}

func (p *Parser) parseLog(left ast.Expr) ast.Expr {
	op := ast.LogAnd
	if p.curToken.Type == token.OR {
		op = ast.LogOr
	}
	prec := precedences[p.curToken.Type]
	p.nextToken()
	right := p.parseExpression(prec)
	return &ast.BinaryLog{Op: op, Left: left, Right: right, Sp: left.Span().Union(right.Span())}
}
