package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenKind discriminates the variants of [Token].
type TokenKind uint8

const (
	// TokenNumber is a numeric literal.
	TokenNumber TokenKind = iota
	// TokenIdent is a variable reference.
	TokenIdent
	// TokenCall is a function call head with recursively lexed arguments.
	TokenCall
	// TokenOp is an operator.
	TokenOp
	// TokenLParen is an opening parenthesis or bracket.
	TokenLParen
	// TokenRParen is a closing parenthesis or bracket.
	TokenRParen
)

// Token is a single lexeme of an infix expression.
//
// Exactly one of the payload fields is meaningful, selected by Kind:
// Num for [TokenNumber], Name for [TokenIdent], Name and Args for
// [TokenCall], and Op for [TokenOp]. Pos is the byte offset of the token
// in the original source for every kind.
type Token struct {
	Args [][]Token
	Name string
	Num  float64
	Pos  int
	Op   Op
	Kind TokenKind
}

// String returns a source-like rendering of the token.
func (t Token) String() string {
	switch t.Kind {
	case TokenNumber:
		return strconv.FormatFloat(t.Num, 'g', -1, 64)

	case TokenIdent:
		return t.Name

	case TokenCall:
		args := make([]string, len(t.Args))
		for i, arg := range t.Args {
			parts := make([]string, len(arg))
			for j, tok := range arg {
				parts[j] = tok.String()
			}

			args[i] = strings.Join(parts, " ")
		}

		return fmt.Sprintf("%s(%s)", t.Name, strings.Join(args, ", "))

	case TokenOp:
		return t.Op.String()

	case TokenLParen:
		return "("

	case TokenRParen:
		return ")"
	}

	return "<invalid>"
}
