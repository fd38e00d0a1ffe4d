// All this does is contain in one place the switches controlling which bits of the inner workings of
// the lexer and parser are traced. In a release they must all be false; the config file can turn them
// on for a session.

package settings

const (
	MAX_CALL_DEPTH = 10000 // Calls nested deeper than this stop the evaluation.

	SHOW_TESTS = false // Says whether the tests should say what is being tested, useful if one of them crashes and we don't know which.
)

var (
	SHOW_LEXER  = false
	SHOW_PARSER = false
)
