package grammar

// RuleError reports a rule file whose tokens parse but violate the
// metalanguage semantics.
type RuleError struct {
	message string
}

func newRuleError(message string) *RuleError {
	return &RuleError{
		message: message,
	}
}

func (e *RuleError) Error() string {
	return e.message
}

var (
	semErrNonconformantRule = newRuleError("parsed rule is nonconformant")
	semErrDanglingOption    = newRuleError("option marker must precede a token")
	semErrRedefinition      = newRuleError("attempted redefinition of nonterminal")
	semErrUndefinedSym      = newRuleError("undefined nonterminal")
	semErrUnreachable       = newRuleError("unreachable nonterminals")
	semErrTooManyReached    = newRuleError("reached more nonterminals than are defined")
	semErrRecursive         = newRuleError("recursive rule definition exists")
)
