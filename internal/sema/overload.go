package sema

import (
	"strings"

	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/diag"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/ident"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/span"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/symtab"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/types"
)

type candidate struct {
	fn            *symtab.FunctionInfo
	viable        bool
	levels        []int
	countMismatch bool
	mismatchArg   int
}

// ResolveOverload runs the three-phase overload resolution algorithm of
// §4.4 over the named function's candidate set against argTypes.
func (a *Analyzer) ResolveOverload(name string, argTypes []types.Type, callSpan span.Span) (*symtab.FunctionInfo, bool) {
	candidates := a.syms.LookupFunctions(name)
	if len(candidates) == 0 {
		if _, isVar := a.syms.LookupVariable(name); isVar {
			a.diags.Error(diag.KindErrVarAsFunc, callSpan.Start, callSpan.End).ArgString(name).Finish()
			return nil, false
		}
		best, ok := ident.BestMatch(name, a.syms.FunctionNames(), identifierHintDistance)
		if !ok {
			a.diags.Error(diag.KindErrUnknownIdentifier, callSpan.Start, callSpan.End).ArgString(name).Finish()
			return nil, false
		}
		a.diags.Error(diag.KindErrUnknownIdentifierWithHint, callSpan.Start, callSpan.End).
			ArgString(name).ArgString(best).
			Replace(callSpan.Start, callSpan.End, best).Finish()
		candidates = a.syms.LookupFunctions(best)
		name = best
	}

	cands := make([]candidate, len(candidates))
	anyViable := false
	for i, fn := range candidates {
		c := candidate{fn: fn, mismatchArg: -1}
		if len(fn.ParamTypes) != len(argTypes) {
			c.countMismatch = true
		} else {
			levels := make([]int, len(argTypes))
			viable := true
			for j, at := range argTypes {
				pt := fn.ParamTypes[j]
				switch {
				case at.Equal(pt):
					levels[j] = 0
				default:
					if ok, _ := CanConvert(at, pt); ok {
						levels[j] = 1
					} else {
						viable = false
						if c.mismatchArg == -1 {
							c.mismatchArg = j
						}
					}
				}
			}
			c.viable = viable
			c.levels = levels
		}
		if c.viable {
			anyViable = true
		}
		cands[i] = c
	}

	if !anyViable {
		a.diags.Error(diag.KindErrNoMatchFunc, callSpan.Start, callSpan.End).ArgString(name).Finish()
		for _, c := range cands {
			switch {
			case c.countMismatch:
				a.diags.Note(diag.KindNoteCandidateParamCountMismatch, callSpan.Start, callSpan.End).
					ArgInt(int64(len(c.fn.ParamTypes))).ArgInt(int64(len(argTypes))).Finish()
			case c.mismatchArg >= 0:
				a.diags.Note(diag.KindNoteCandidateParamTypeMismatch, callSpan.Start, callSpan.End).
					ArgString(argTypes[c.mismatchArg].String()).
					ArgString(c.fn.ParamTypes[c.mismatchArg].String()).
					ArgInt(int64(c.mismatchArg + 1)).Finish()
			}
		}
		return nil, false
	}

	var viableIdx []int
	for i, c := range cands {
		if c.viable {
			viableIdx = append(viableIdx, i)
		}
	}

	strictlyBetter := func(i, j int) bool {
		ci, cj := cands[i], cands[j]
		sumI, sumJ := 0, 0
		noPosWorse := true
		for k := range ci.levels {
			sumI += ci.levels[k]
			sumJ += cj.levels[k]
			if ci.levels[k] > cj.levels[k] {
				noPosWorse = false
			}
		}
		return noPosWorse && sumI < sumJ
	}

	var marked []int
	for _, i := range viableIdx {
		dominated := false
		for _, j := range viableIdx {
			if j == i {
				continue
			}
			if strictlyBetter(j, i) {
				dominated = true
				break
			}
		}
		if !dominated {
			marked = append(marked, i)
		}
	}

	if len(marked) == 1 {
		return cands[marked[0]].fn, true
	}

	a.diags.Error(diag.KindErrAmbiguousCall, callSpan.Start, callSpan.End).ArgString(name).Finish()
	for _, i := range marked {
		a.diags.Note(diag.KindNoteCandidate, callSpan.Start, callSpan.End).ArgString(renderSignature(cands[i].fn)).Finish()
	}
	return nil, false
}

func renderSignature(fn *symtab.FunctionInfo) string {
	parts := make([]string, len(fn.ParamTypes))
	for i, t := range fn.ParamTypes {
		parts[i] = t.String()
	}
	return fn.ReturnType.String() + " " + fn.Name + "(" + strings.Join(parts, ", ") + ")"
}
