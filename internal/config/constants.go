package config

const SourceFileExt = ".fc"

// Intrinsic function names. The compilers emit calls to these names; the
// host evaluator must bind them before running a transformed tree.
const (
	// Variant runtime
	AdtNewFuncName   = "__adt_new"   // __adt_new("Ctor", f0, f1, …) -> value
	AdtIsFuncName    = "__adt_is"    // __adt_is(v, "Ctor") -> bool
	AdtTagFuncName   = "__adt_tag"   // __adt_tag(v) -> int
	AdtFieldFuncName = "__adt_field" // __adt_field(v, i) -> field value
	MatchFailName    = "__match_fail"

	// Trampoline control markers
	TcoCallFuncName   = "__tco_call"   // __tco_call(fn, a0, a1, …) -> marker
	TcoIsFuncName     = "__tco_is"     // __tco_is(v) -> bool
	TcoInvokeFuncName = "__tco_invoke" // __tco_invoke(marker) -> value or next marker
	TcoTargetFuncName = "__tco_target" // __tco_target(marker) -> target function
	TcoArgFuncName    = "__tco_arg"    // __tco_arg(marker, i) -> argument
)

// Prefixes for compiler-generated temporaries. Host identifiers cannot
// start with '__', so generated names never collide with user bindings.
const (
	MatchTempPrefix = "__m"
	TcoResultName   = "__r"
	TcoActiveName   = "__active"
)
