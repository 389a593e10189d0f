package toml

import (
	"fmt"
	"strconv"
)

// ParseError reports the position of the first malformed token
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("toml: line %d col %d: %s", e.Line, e.Col, e.Msg)
}

// Parser parses tokens into a map[string]any
// Supported subset: key = value, [table] headers one level deep, comments
// Values are string, int, float64 or bool
type Parser struct {
	lexer     *Lexer
	curToken  Token
	peekToken Token
	root      map[string]any
	current   map[string]any
	tables    map[string]bool
}

func NewParser(input []byte) *Parser {
	p := &Parser{
		lexer:  NewLexer(input),
		root:   make(map[string]any),
		tables: make(map[string]bool),
	}
	p.nextToken()
	p.nextToken()
	p.current = p.root
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.lexer.NextToken()

	for p.peekToken.Type == TokenComment {
		p.peekToken = p.lexer.NextToken()
	}
}

func (p *Parser) errorf(format string, args ...any) error {
	return &ParseError{Line: p.curToken.Line, Col: p.curToken.Col, Msg: fmt.Sprintf(format, args...)}
}

// Parse consumes the whole input
func (p *Parser) Parse() (map[string]any, error) {
	for p.curToken.Type != TokenEOF {
		if p.curToken.Type == TokenNewline {
			p.nextToken()
			continue
		}

		if err := p.parseStatement(); err != nil {
			return nil, err
		}

		// Statements end at a newline or EOF
		switch p.curToken.Type {
		case TokenNewline, TokenEOF:
		default:
			return nil, p.errorf("expected end of line, got %s", p.curToken.String())
		}
	}
	return p.root, nil
}

func (p *Parser) parseStatement() error {
	switch p.curToken.Type {
	case TokenLBracket:
		return p.parseTableHeader()
	case TokenIdent, TokenString, TokenInteger, TokenBool:
		return p.parseKeyValue()
	case TokenError:
		return p.errorf("%s", p.curToken.Literal)
	default:
		return p.errorf("unexpected token %s", p.curToken.String())
	}
}

// parseTableHeader handles [name]
func (p *Parser) parseTableHeader() error {
	p.nextToken() // [

	name, err := p.parseKey()
	if err != nil {
		return err
	}
	if p.curToken.Type != TokenRBracket {
		return p.errorf("expected ']' after table name %q", name)
	}
	p.nextToken() // ]

	if p.tables[name] {
		return p.errorf("table [%s] defined twice", name)
	}
	if _, exists := p.root[name]; exists {
		return p.errorf("table [%s] conflicts with key", name)
	}

	table := make(map[string]any)
	p.root[name] = table
	p.tables[name] = true
	p.current = table
	return nil
}

func (p *Parser) parseKeyValue() error {
	key, err := p.parseKey()
	if err != nil {
		return err
	}

	if p.curToken.Type != TokenEqual {
		return p.errorf("expected '=' after key %q, got %s", key, p.curToken.String())
	}
	p.nextToken() // =

	val, err := p.parseValue()
	if err != nil {
		return err
	}

	if _, exists := p.current[key]; exists {
		return p.errorf("duplicate key %q", key)
	}
	p.current[key] = val
	return nil
}

// parseKey accepts bare, quoted and bare-looking literal keys such as 1 or true
func (p *Parser) parseKey() (string, error) {
	switch p.curToken.Type {
	case TokenIdent, TokenString, TokenInteger, TokenBool:
		key := p.curToken.Literal
		p.nextToken()
		return key, nil
	}
	return "", p.errorf("expected key, got %s", p.curToken.String())
}

func (p *Parser) parseValue() (any, error) {
	tok := p.curToken
	switch tok.Type {
	case TokenString:
		p.nextToken()
		return tok.Literal, nil
	case TokenInteger:
		val, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, p.errorf("invalid integer %q", tok.Literal)
		}
		p.nextToken()
		return int(val), nil
	case TokenFloat:
		val, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, p.errorf("invalid float %q", tok.Literal)
		}
		p.nextToken()
		return val, nil
	case TokenBool:
		p.nextToken()
		return tok.Literal == "true", nil
	case TokenError:
		return nil, p.errorf("%s", tok.Literal)
	}
	return nil, p.errorf("unexpected value %s", tok.String())
}
