package expr

import (
	"log/slog"
	"strings"
)

// Lex scans src into an infix token stream, or fails at the first invalid
// byte with its offset.
//
// A two-state machine disambiguates unary from binary operators: a '-' or
// '!' seen where an operand is expected is unary; a '-' seen after an
// operand is binary subtraction. Function-call arguments are lexed
// recursively, splitting on top-level commas only; reported error offsets
// remain absolute within src.
func Lex(src string) ([]Token, error) {
	l := &lexer{input: src}

	return l.run()
}

type lexer struct {
	input string
	pos   int
	// base is the offset of input within the outermost source. Recursive
	// argument lexing sets it so error positions stay absolute.
	base     int
	expectOp bool
}

func (l *lexer) run() ([]Token, error) {
	tokens := make([]Token, 0, len(l.input)/2+1)

	for l.pos < len(l.input) {
		c := l.input[l.pos]

		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			l.pos++

		case c == '(' || c == '[':
			tokens = append(tokens, Token{Kind: TokenLParen, Pos: l.base + l.pos})
			l.pos++

		case c == ')' || c == ']':
			tokens = append(tokens, Token{Kind: TokenRParen, Pos: l.base + l.pos})
			l.pos++

		default:
			var (
				tok Token
				err error
			)

			if l.expectOp {
				tok, err = l.lexOperator()
			} else {
				tok, err = l.lexOperand()
			}

			if err != nil {
				return nil, err
			}

			tokens = append(tokens, tok)
		}
	}

	return tokens, nil
}

// lexOperator scans a binary operator, preferring the longest match for
// two-byte operators.
func (l *lexer) lexOperator() (Token, error) {
	pos := l.pos
	c := l.input[l.pos]

	var next byte
	if l.pos+1 < len(l.input) {
		next = l.input[l.pos+1]
	}

	op, width := OpInvalid, 1

	switch c {
	case '+':
		op = OpAdd
	case '-':
		op = OpSub
	case '*':
		op = OpMul
	case '/':
		op = OpDiv
	case '%':
		op = OpMod
	case '^':
		if next == '^' {
			op, width = OpBitXor, 2
		} else {
			op = OpPow
		}
	case '|':
		if next == '|' {
			op, width = OpOr, 2
		} else {
			op = OpBitOr
		}
	case '&':
		if next == '&' {
			op, width = OpAnd, 2
		} else {
			op = OpBitAnd
		}
	case '<':
		switch next {
		case '=':
			op, width = OpLe, 2
		case '<':
			op, width = OpShl, 2
		default:
			op = OpLt
		}
	case '>':
		switch next {
		case '=':
			op, width = OpGe, 2
		case '>':
			op, width = OpShr, 2
		default:
			op = OpGt
		}
	case '=':
		if next == '=' {
			op, width = OpEq, 2
		}
	case '!':
		if next == '=' {
			op, width = OpNe, 2
		}
	}

	if op == OpInvalid {
		return Token{}, l.errAt(ErrUnexpectedChar, pos, string(c))
	}

	l.pos += width
	l.expectOp = false

	return Token{Kind: TokenOp, Op: op, Pos: l.base + pos}, nil
}

// lexOperand scans a number, an identifier, a function call, or a unary
// operator.
func (l *lexer) lexOperand() (Token, error) {
	pos := l.pos
	c := l.input[l.pos]

	switch {
	case c == '-':
		l.pos++

		return Token{Kind: TokenOp, Op: OpNeg, Pos: l.base + pos}, nil

	case c == '!':
		l.pos++

		return Token{Kind: TokenOp, Op: OpNot, Pos: l.base + pos}, nil

	case isDigit(c) || c == '.':
		return l.lexNumber()

	case isLetter(c):
		return l.lexIdent()
	}

	return Token{}, l.errAt(ErrUnexpectedChar, pos, string(c))
}

// lexNumber accumulates a numeric literal digit by digit without an
// intermediate string: integer part first, then the fractional part with a
// shrinking decimal weight. A second decimal point terminates the literal
// and is reported by the operator state on the next pass.
func (l *lexer) lexNumber() (Token, error) {
	start := l.pos

	var (
		value    float64
		frac     = 0.1
		fraction bool
		sawDigit bool
	)

scan:
	for l.pos < len(l.input) {
		switch c := l.input[l.pos]; {
		case isDigit(c):
			sawDigit = true

			if fraction {
				value += float64(c-'0') * frac
				frac *= 0.1
			} else {
				value = value*10 + float64(c-'0')
			}

		case c == '.' && !fraction:
			fraction = true

		default:
			break scan
		}

		l.pos++
	}

	if !sawDigit {
		return Token{}, l.errAt(ErrInvalidNumber, start, l.input[start:l.pos])
	}

	l.expectOp = true

	return Token{Kind: TokenNumber, Num: value, Pos: l.base + start}, nil
}

// lexIdent scans an identifier and, when immediately followed by an
// opening bracket, its recursively lexed argument list.
func (l *lexer) lexIdent() (Token, error) {
	start := l.pos

	for l.pos < len(l.input) && isIdent(l.input[l.pos]) {
		l.pos++
	}

	name := l.input[start:l.pos]

	if l.pos < len(l.input) && (l.input[l.pos] == '(' || l.input[l.pos] == '[') {
		open := l.pos
		l.pos++

		args, err := l.lexArgs(open)
		if err != nil {
			return Token{}, err
		}

		l.expectOp = true

		return Token{Kind: TokenCall, Name: name, Args: args, Pos: l.base + start}, nil
	}

	l.expectOp = true

	return Token{Kind: TokenIdent, Name: name, Pos: l.base + start}, nil
}

// lexArgs consumes a balanced argument list starting just past the opening
// bracket at open, splitting on top-level commas only. A depth counter
// keeps commas of nested calls with their own argument lists.
func (l *lexer) lexArgs(open int) ([][]Token, error) {
	var (
		spans    []argSpan
		depth    = 1
		argStart = l.pos
	)

	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case '(', '[':
			depth++

		case ')', ']':
			depth--

			if depth == 0 {
				spans = append(spans, argSpan{argStart, l.pos})
				l.pos++

				return l.lexSpans(spans)
			}

		case ',':
			if depth == 1 {
				spans = append(spans, argSpan{argStart, l.pos})
				argStart = l.pos + 1
			}
		}

		l.pos++
	}

	return nil, l.errAt(ErrUnmatchedParen, open, string(l.input[open]))
}

// lexSpans lexes each argument substring as its own sub-expression. Each
// sub-lexer carries an absolute base offset so that errors inside nested
// arguments point into the original input.
func (l *lexer) lexSpans(spans []argSpan) ([][]Token, error) {
	// An empty bracket pair is a zero-argument call.
	if len(spans) == 1 &&
		strings.TrimSpace(l.input[spans[0].start:spans[0].end]) == "" {
		return nil, nil
	}

	args := make([][]Token, len(spans))

	for i, s := range spans {
		if strings.TrimSpace(l.input[s.start:s.end]) == "" {
			return nil, l.errAt(ErrEmptyArgument, s.start, "")
		}

		sub := &lexer{
			input: l.input[s.start:s.end],
			base:  l.base + s.start,
		}

		tokens, err := sub.run()
		if err != nil {
			return nil, err
		}

		args[i] = tokens
	}

	return args, nil
}

// errAt attaches the absolute byte offset (and the offending text, when
// nonempty) to a sentinel error.
func (l *lexer) errAt(sentinel *Error, pos int, text string) error {
	attrs := []slog.Attr{slog.Int("offset", l.base + pos)}
	if text != "" {
		attrs = append(attrs, slog.String("text", text))
	}

	return sentinel.With(attrs...)
}

type argSpan struct{ start, end int }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdent(c byte) bool { return isLetter(c) || isDigit(c) }
