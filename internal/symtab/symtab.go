// Package symtab implements the drawing language's symbol table: two
// name-indexed maps, variables and function overload sets, holding both
// predefined (built-in) and runtime (user-introduced) entries (§3).
package symtab

import (
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/diag"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/span"
	"github.com/Pluto-Zy/drawing-lang-interpreter/internal/types"
)

// CallContext packages a call's argument locations so a built-in function
// can attach precise diagnostics through the same engine the rest of the
// pipeline uses (§4.4: "Arguments are... packaged with per-argument
// (start_loc, end_loc) into a diag pack and dispatched to the function").
type CallContext struct {
	Engine   *diag.Engine
	CallSpan span.Span
	ArgSpans []span.Span
}

// ArgSpan returns the span of the ith argument, or the whole call's span
// if i is out of range (used for arity errors raised before per-argument
// spans are meaningful).
func (c *CallContext) ArgSpan(i int) span.Span {
	if i < 0 || i >= len(c.ArgSpans) {
		return c.CallSpan
	}
	return c.ArgSpans[i]
}

// ValueFilter validates a prospective write to a predefined variable. It
// returns false to veto the write, in which case it must itself have
// emitted a diagnostic through eng (the GLOSSARY's "Value filter").
type ValueFilter func(eng *diag.Engine, assignSpan span.Span, newValue types.Value) bool

// VariableInfo is one entry in the variable table.
type VariableInfo struct {
	name        string
	typ         types.Type
	value       types.Value
	isConstant  bool
	isPredefined bool
	filter      ValueFilter
}

// NewVariable introduces a runtime (user) variable, created on first
// assignment to an unbound name (§4.5).
func NewVariable(name string, typ types.Type, initial types.Value) *VariableInfo {
	return &VariableInfo{name: name, typ: typ, value: initial}
}

// NewPredefined introduces a built-in variable, optionally guarded by a
// value filter consulted on every write.
func NewPredefined(name string, typ types.Type, initial types.Value, filter ValueFilter) *VariableInfo {
	return &VariableInfo{name: name, typ: typ, value: initial, isPredefined: true, filter: filter}
}

// NewConstant introduces a predefined constant (e.g. PI, E); Set always
// rejects a write to it.
func NewConstant(name string, typ types.Type, value types.Value) *VariableInfo {
	return &VariableInfo{name: name, typ: typ, value: value, isPredefined: true, isConstant: true}
}

func (v *VariableInfo) Name() string        { return v.name }
func (v *VariableInfo) Type() types.Type    { return v.typ }
func (v *VariableInfo) Get() types.Value    { return v.value }
func (v *VariableInfo) IsConstant() bool    { return v.isConstant }
func (v *VariableInfo) IsPredefined() bool  { return v.isPredefined }

// Set writes newValue, consulting the value filter (if any) first. It
// reports err_assign_to_constant and refuses the write for constants.
func (v *VariableInfo) Set(eng *diag.Engine, assignSpan span.Span, newValue types.Value) bool {
	if v.isConstant {
		eng.Error(diag.KindErrAssignToConstant, assignSpan.Start, assignSpan.End).
			ArgString(v.name).Finish()
		return false
	}
	if v.filter != nil && !v.filter(eng, assignSpan, newValue) {
		return false
	}
	v.value = newValue
	return true
}

// ForceSet writes newValue without consulting the filter or constant
// check; used only to install a variable's initial value at registration
// time.
func (v *VariableInfo) ForceSet(value types.Value) { v.value = value }

// FunctionInfo is one overload of a built-in function (§3: "An overload
// set may not contain two entries with identical parameter-type
// sequences").
type FunctionInfo struct {
	Name       string
	ReturnType types.Type
	ParamTypes []types.Type
	Invoke     func(ctx *CallContext, args []types.Value) (types.Value, bool)
}

// Table is the symbol table: variables plus function overload sets.
type Table struct {
	variables map[string]*VariableInfo
	functions map[string][]*FunctionInfo
}

func New() *Table {
	return &Table{
		variables: make(map[string]*VariableInfo),
		functions: make(map[string][]*FunctionInfo),
	}
}

func (t *Table) DefineVariable(v *VariableInfo) { t.variables[v.name] = v }

func (t *Table) LookupVariable(name string) (*VariableInfo, bool) {
	v, ok := t.variables[name]
	return v, ok
}

// DefineFunction adds one overload. It panics if an overload with an
// identical parameter-type sequence already exists — that invariant is a
// registration-time programmer error in the built-ins table, never a
// user-triggerable situation.
func (t *Table) DefineFunction(f *FunctionInfo) {
	for _, existing := range t.functions[f.Name] {
		if sameParams(existing.ParamTypes, f.ParamTypes) {
			panic("symtab: duplicate overload for " + f.Name)
		}
	}
	t.functions[f.Name] = append(t.functions[f.Name], f)
}

func sameParams(a, b []types.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// LookupFunctions returns the overload set for name (nil if none).
func (t *Table) LookupFunctions(name string) []*FunctionInfo {
	return t.functions[name]
}

// HasFunction reports whether any overload set exists for name.
func (t *Table) HasFunction(name string) bool {
	_, ok := t.functions[name]
	return ok
}

// VariableNames returns every currently-bound variable name, for
// edit-distance spelling suggestions (§4.4).
func (t *Table) VariableNames() []string {
	names := make([]string, 0, len(t.variables))
	for n := range t.variables {
		names = append(names, n)
	}
	return names
}

// FunctionNames returns every built-in function name, for edit-distance
// spelling suggestions (§4.4).
func (t *Table) FunctionNames() []string {
	names := make([]string, 0, len(t.functions))
	for n := range t.functions {
		names = append(names, n)
	}
	return names
}
