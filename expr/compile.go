package expr

import (
	"log/slog"
	"strconv"
	"strings"
)

// instrKind discriminates the postfix instruction variants. Which variant
// a name compiles to depends on the resolver family bound at compile time.
type instrKind uint8

const (
	instrNum instrKind = iota
	instrVarName
	instrVarIdx
	instrVarPtr
	instrFnName
	instrFnIdx
	instrFnPtr
	instrOp
)

// instr is one postfix instruction. Only the fields selected by kind are
// meaningful.
type instr struct {
	name string
	vptr Ptr[float64]
	fptr Ptr[Func]
	num  float64
	id   int
	idx  int
	argc int
	op   Op
	kind instrKind
}

// Expr is a compiled expression: a flat postfix instruction stream.
// It is immutable once built and safe to share across goroutines for
// read-only evaluation.
//
// Build one with [Compile]; evaluate it with [Expr.Eval] or
// [Expr.EvalWithStack].
type Expr struct {
	code []instr
}

// Len returns the number of postfix instructions. A fully constant
// expression folds to length 1.
func (x *Expr) Len() int { return len(x.code) }

// String renders the instruction stream in postfix order, one instruction
// per space-separated field.
func (x *Expr) String() string {
	var b strings.Builder

	for i := range x.code {
		if i > 0 {
			b.WriteByte(' ')
		}

		in := &x.code[i]

		switch in.kind {
		case instrNum:
			b.WriteString(strconv.FormatFloat(in.num, 'g', -1, 64))
		case instrVarName:
			b.WriteString(in.name)
		case instrVarIdx:
			b.WriteString(indexedName(in.id, in.idx))
		case instrVarPtr:
			b.WriteString("*" + in.name)
		case instrFnName:
			b.WriteString(in.name + "/" + strconv.Itoa(in.argc))
		case instrFnIdx:
			b.WriteString(indexedName(in.id, in.idx) + "/" + strconv.Itoa(in.argc))
		case instrFnPtr:
			b.WriteString("*" + in.name + "/" + strconv.Itoa(in.argc))
		case instrOp:
			b.WriteString(in.op.String())
		}
	}

	return b.String()
}

// Compile lexes src and compiles it against ctx into a postfix instruction
// stream, folding every sub-expression whose operands are compile-time
// constants into a single literal. A nil ctx compiles like an empty one.
//
// The instruction forms are specialized to the concrete resolvers in ctx:
// locked resolvers yield embedded pointers, indexed resolvers yield
// (letter, index) pairs, and anything else yields names resolved on every
// evaluation. Unknown names are rejected at compile time only on the
// pointer and index paths; the name path defers to evaluation.
func Compile(src string, ctx *Context) (*Expr, error) {
	tokens, err := Lex(src)
	if err != nil {
		return nil, err
	}

	if ctx == nil {
		ctx = EmptyContext()
	}

	code, err := compileTokens(tokens, ctx)
	if err != nil {
		return nil, err
	}

	// An empty token stream compiles to an empty program, which could
	// never leave a result on the stack.
	if len(code) == 0 {
		return nil, ErrMalformed
	}

	return &Expr{code: code}, nil
}

func compileTokens(tokens []Token, ctx *Context) ([]instr, error) {
	c := compiler{ctx: ctx, out: make([]instr, 0, len(tokens))}

	for i := range tokens {
		if err := c.push(&tokens[i]); err != nil {
			return nil, err
		}
	}

	return c.finish()
}

// compiler runs the shunting-yard algorithm with integrated constant
// folding: out is the postfix output, ops the operator/paren stack, and
// cache mirrors the values of the trailing literal run of out.
type compiler struct {
	ctx   *Context
	out   []instr
	cache []float64
	ops   []stackOp
}

// stackOp is an operator-stack entry; paren marks an opening parenthesis,
// recorded with its source offset for unmatched-paren reporting.
type stackOp struct {
	pos   int
	op    Op
	paren bool
}

func (c *compiler) push(tok *Token) error {
	switch tok.Kind {
	case TokenNumber:
		c.emitNum(tok.Num)

	case TokenIdent:
		in, err := c.varInstr(tok)
		if err != nil {
			return err
		}

		c.out = append(c.out, in)
		c.cache = c.cache[:0]

	case TokenCall:
		return c.pushCall(tok)

	case TokenOp:
		c.pushOperator(tok.Op, tok.Pos)

	case TokenLParen:
		c.ops = append(c.ops, stackOp{paren: true, pos: tok.Pos})

	case TokenRParen:
		return c.closeParen(tok.Pos)
	}

	return nil
}

// pushCall splices each independently compiled argument sub-expression
// into the output, then emits the call instruction carrying the argument
// count.
func (c *compiler) pushCall(tok *Token) error {
	for _, arg := range tok.Args {
		sub, err := compileTokens(arg, c.ctx)
		if err != nil {
			return err
		}

		c.out = append(c.out, sub...)
	}

	in, err := c.fnInstr(tok)
	if err != nil {
		return err
	}

	c.out = append(c.out, in)
	c.cache = c.cache[:0]

	return nil
}

// pushOperator pops and emits every stacked operator binding at least as
// tightly as op before stacking it. Equal precedence does not pop for the
// right-associative power operator.
func (c *compiler) pushOperator(op Op, pos int) {
	for len(c.ops) > 0 {
		top := c.ops[len(c.ops)-1]
		if top.paren {
			break
		}

		pop := top.op.Precedence() > op.Precedence() ||
			(!op.RightAssoc() && top.op.Precedence() == op.Precedence())
		if !pop {
			break
		}

		c.ops = c.ops[:len(c.ops)-1]
		c.preEvaluate(top.op)
	}

	c.ops = append(c.ops, stackOp{op: op, pos: pos})
}

func (c *compiler) closeParen(pos int) error {
	for len(c.ops) > 0 {
		top := c.ops[len(c.ops)-1]
		c.ops = c.ops[:len(c.ops)-1]

		if top.paren {
			return nil
		}

		c.preEvaluate(top.op)
	}

	return ErrUnmatchedParen.With(slog.Int("offset", pos))
}

func (c *compiler) finish() ([]instr, error) {
	for len(c.ops) > 0 {
		top := c.ops[len(c.ops)-1]
		c.ops = c.ops[:len(c.ops)-1]

		if top.paren {
			return nil, ErrUnmatchedParen.With(slog.Int("offset", top.pos))
		}

		c.preEvaluate(top.op)
	}

	return c.out, nil
}

func (c *compiler) emitNum(num float64) {
	c.out = append(c.out, instr{kind: instrNum, num: num})
	c.cache = append(c.cache, num)
}

// preEvaluate emits an operator popped off the stack, folding it into a
// literal when the constant cache holds enough trailing literal operands.
// A non-foldable operator clears the cache: nothing above it can fold.
func (c *compiler) preEvaluate(op Op) {
	n := op.Arity()

	if len(c.cache) < n {
		c.out = append(c.out, instr{kind: instrOp, op: op})
		c.cache = c.cache[:0]

		return
	}

	num := op.Apply(c.cache[len(c.cache)-n:])

	// The trailing n output instructions are exactly the literals
	// mirrored by the cache; replace them with the folded value.
	c.out = c.out[:len(c.out)-n]
	c.out = append(c.out, instr{kind: instrNum, num: num})

	c.cache = c.cache[:len(c.cache)-n]
	c.cache = append(c.cache, num)
}

// varInstr lowers a variable reference to the best form the bound
// variable resolver supports.
func (c *compiler) varInstr(tok *Token) (instr, error) {
	if r, ok := c.ctx.vars.(PtrResolver[float64]); ok {
		ptr, ok := r.GetPtr(tok.Name)
		if !ok {
			return instr{}, unknownName(ErrUnknownVariable, c.ctx.vars, tok.Name)
		}

		return instr{kind: instrVarPtr, vptr: ptr, name: tok.Name}, nil
	}

	if _, ok := c.ctx.vars.(IndexResolver[float64]); ok {
		id, idx, err := splitIndexedName(tok.Name)
		if err != nil {
			return instr{}, WrapError(err).With(slog.Int("offset", tok.Pos))
		}

		return instr{kind: instrVarIdx, id: id, idx: idx}, nil
	}

	return instr{kind: instrVarName, name: tok.Name}, nil
}

// fnInstr is the function counterpart of varInstr.
func (c *compiler) fnInstr(tok *Token) (instr, error) {
	argc := len(tok.Args)

	if r, ok := c.ctx.funcs.(PtrResolver[Func]); ok {
		ptr, ok := r.GetPtr(tok.Name)
		if !ok {
			return instr{}, unknownName(ErrUnknownFunction, c.ctx.funcs, tok.Name)
		}

		return instr{kind: instrFnPtr, fptr: ptr, name: tok.Name, argc: argc}, nil
	}

	if _, ok := c.ctx.funcs.(IndexResolver[Func]); ok {
		id, idx, err := splitIndexedName(tok.Name)
		if err != nil {
			return instr{}, WrapError(err).With(slog.Int("offset", tok.Pos))
		}

		return instr{kind: instrFnIdx, id: id, idx: idx, argc: argc}, nil
	}

	return instr{kind: instrFnName, name: tok.Name, argc: argc}, nil
}
