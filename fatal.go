package promreg

// abort is called to surface a [ContractViolation]. It logs the violation at
// Emergency level, then panics: these represent programmer error in the
// instrumentation, and recovering silently would mask aliasing bugs. It is a
// variable, following logiface's package-level OsExit convention for
// overridable termination, so tests can assert on fatal paths via
// require.Panics instead of crashing the whole test binary.
var abort = func(v *ContractViolation) {
	logFatalContract(v)
	panic(v)
}

func fatal(rule, detail string) {
	abort(newContractViolation(rule, detail))
}
