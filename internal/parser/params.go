package parser

import (
	"pyparse/internal/ast"
	"pyparse/internal/diag"
	"pyparse/internal/token"
)

// parseParams — typedargslist (typed=true, для def) или varargslist (lambda).
// Останавливается перед closer, сам closer не съедает.
func (p *Parser) parseParams(closer token.Kind, typed bool) ast.Arguments {
	var (
		args       ast.Arguments
		seenStar   bool
		seenDflt   bool
		bareStar   bool
		seenSlash  bool
		names      = make(map[string]struct{})
		checkDupes = func(arg ast.Arg) {
			name := p.arenas.Name(arg.Name)
			if _, dup := names[name]; dup {
				p.fail(diag.SynBadParameters, arg.Span, "duplicate argument '"+name+"' in function definition")
			}
			names[name] = struct{}{}
		}
	)
	for !p.at(closer) {
		switch tok := p.peek(); tok.Kind {
		case token.Slash:
			if seenSlash || seenStar || len(args.Args) == 0 {
				p.fail(diag.SynBadParameters, tok.Span, "'/' must follow at least one positional parameter")
			}
			p.advance()
			seenSlash = true
			args.PosOnly, args.Args = args.Args, nil

		case token.Star:
			if seenStar {
				p.fail(diag.SynBadParameters, tok.Span, "'*' argument may appear only once")
			}
			p.advance()
			seenStar = true
			if p.atOr(token.Comma, closer) {
				bareStar = true
				break
			}
			arg := p.parseParam(typed, false)
			checkDupes(arg)
			args.Vararg = &arg

		case token.StarStar:
			p.advance()
			arg := p.parseParam(typed, false)
			checkDupes(arg)
			args.Kwarg = &arg
			p.accept(token.Comma)
			if !p.at(closer) {
				p.fail(diag.SynBadParameters, p.getDiagnosticSpan(), "arguments cannot follow var-keyword argument")
			}
			continue

		default:
			arg := p.parseParam(typed, true)
			checkDupes(arg)
			if seenStar {
				args.KwOnly = append(args.KwOnly, arg)
				bareStar = false
				break
			}
			if arg.Default.IsValid() {
				seenDflt = true
			} else if seenDflt {
				p.fail(diag.SynBadParameters, arg.Span, "non-default argument follows default argument")
			}
			args.Args = append(args.Args, arg)
		}
		if !p.accept(token.Comma) {
			break
		}
	}
	if bareStar {
		p.fail(diag.SynBadParameters, p.getDiagnosticSpan(), "named arguments must follow bare *")
	}
	return args
}

// parseParam — NAME [':' test] ['=' test]
func (p *Parser) parseParam(typed, allowDefault bool) ast.Arg {
	name, start := p.parseIdent()
	arg := ast.Arg{Name: name, Annotation: ast.NoExprID, Default: ast.NoExprID}
	if typed && p.accept(token.Colon) {
		arg.Annotation = p.parseTest()
	}
	if p.at(token.Assign) {
		if !allowDefault {
			p.fail(diag.SynBadParameters, p.peek().Span, "var-positional and var-keyword arguments cannot have default value")
		}
		p.advance()
		arg.Default = p.parseTest()
	}
	arg.Span = p.spanFrom(start)
	return arg
}
