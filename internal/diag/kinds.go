package diag

// Kind identifies a diagnostic's message template. Kinds are not exception
// types — they are purely a lookup key into the template table, per §7's
// "taxonomy (diagnostic kinds, not exception types)".
type Kind string

const (
	// Lexical
	KindWarnNullChar        Kind = "warn_null_char"
	KindErrInvalidChar      Kind = "err_invalid_char"
	KindWarnUnterminatedStr Kind = "warn_unterminated_string"
	KindWarnUnknownEscape   Kind = "warn_unknown_escape"

	// Syntactic
	KindErrExpectedToken      Kind = "err_expected_token"
	KindErrExpectedExpression Kind = "err_expected_expression"
	KindErrConstantTooLarge   Kind = "err_constant_too_large"
	KindErrUnaryMisuse        Kind = "err_unary_operator_misuse"
	KindErrMissingSemicolon   Kind = "err_missing_semicolon"
	KindNoteMatchingBracket   Kind = "note_matching_bracket"

	// Semantic
	KindErrUnknownIdentifier         Kind = "err_use_unknown_identifier"
	KindErrUnknownIdentifierWithHint Kind = "err_use_unknown_identifier_with_hint"
	KindErrFuncAsVar                 Kind = "err_use_func_as_var"
	KindErrVarAsFunc                 Kind = "err_use_var_as_func"
	KindErrNoMatchFunc                Kind = "err_no_match_func"
	KindErrAmbiguousCall              Kind = "err_ambiguous_call"
	KindErrConflictTupleElemType      Kind = "err_conflict_tuple_elem_type"
	KindErrInvalidOperandType         Kind = "err_invalid_operand_type"
	KindErrInvalidBinaryResult         Kind = "err_invalid_binary_result"
	KindErrInvalidCompareType          Kind = "err_invalid_compare_type"
	KindWarnDivisionByZero             Kind = "warn_division_by_zero"
	KindNoteCandidateParamCountMismatch Kind = "note_candidate_func_param_count_mismatch"
	KindNoteCandidateParamTypeMismatch  Kind = "note_candidate_func_param_type_mismatch"
	KindNoteCandidate                   Kind = "note_candidate"

	// Runtime
	KindErrAssignToConstant      Kind = "err_assign_to_constant"
	KindErrWrongTupleSize        Kind = "err_wrong_tuple_size"
	KindErrValueOutOfRange       Kind = "err_value_out_of_range"
	KindErrAssignAfterDraw       Kind = "err_assign_after_draw"
	KindErrIncompatibleAssign    Kind = "err_incompatible_assign_type"
	KindWarnNarrowConversion     Kind = "warn_narrow_conversion"
	KindErrBadFunctionArgument   Kind = "err_bad_function_argument"
	KindErrInvalidSavePath       Kind = "err_invalid_save_path"
	KindErrIOFailure             Kind = "err_io_failure"

	// Driver
	KindErrNoInputFile Kind = "err_no_input_file"
)

// templates maps each Kind to its raw message template. %N (a decimal
// digit) expands to the Nth positional argument's rendering; %% is a
// literal percent; anything else following a lone '%' is copied verbatim,
// per §4.1's placeholder syntax.
var templates = map[Kind]string{
	KindWarnNullChar:        "NUL byte ignored",
	KindErrInvalidChar:      "invalid character %0",
	KindWarnUnterminatedStr: "unterminated string literal",
	KindWarnUnknownEscape:   "unknown escape sequence '\\%0'",

	KindErrExpectedToken:      "expected %0",
	KindErrExpectedExpression: "expected expression",
	KindErrConstantTooLarge:   "numeric constant %0 is too large",
	KindErrUnaryMisuse:        "invalid use of unary operator %0",
	KindErrMissingSemicolon:   "expected ';' after %0",
	KindNoteMatchingBracket:   "to match this '%0'",

	KindErrUnknownIdentifier:         "use of unknown identifier %0",
	KindErrUnknownIdentifierWithHint: "use of unknown identifier %0; did you mean %1?",
	KindErrFuncAsVar:                 "%0 is a function, not a variable",
	KindErrVarAsFunc:                 "%0 is a variable, not a function",
	KindErrNoMatchFunc:                "no matching function for call to %0",
	KindErrAmbiguousCall:              "call to %0 is ambiguous",
	KindErrConflictTupleElemType:      "tuple elements have conflicting types",
	KindErrInvalidOperandType:         "invalid operand type for %0",
	KindErrInvalidBinaryResult:         "operation %0 produced a non-finite result",
	KindErrInvalidCompareType:          "values of this type cannot be compared",
	KindWarnDivisionByZero:             "division by zero",
	KindNoteCandidateParamCountMismatch: "candidate function not viable: requires %0 argument(s), have %1",
	KindNoteCandidateParamTypeMismatch:  "candidate function not viable: no known conversion from %0 to %1 for argument %2",
	KindNoteCandidate:                    "candidate: %0",

	KindErrAssignToConstant:  "cannot assign to constant %0",
	KindErrWrongTupleSize:    "%0 requires a tuple of size %1, got %2",
	KindErrValueOutOfRange:   "value %0 is out of range for %1",
	KindErrAssignAfterDraw:   "%0 cannot be assigned after the first draw",
	KindErrIncompatibleAssign: "cannot assign value of type %0 to %1 of type %2",
	KindWarnNarrowConversion: "implicit conversion from %0 to %1 may lose precision",
	KindErrBadFunctionArgument: "argument to %0 is out of domain: %1",
	KindErrInvalidSavePath:    "invalid output path %0: %1",
	KindErrIOFailure:          "I/O failure: %0",

	KindErrNoInputFile: "no input file",
}
