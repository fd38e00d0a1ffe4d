package err

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomic-lang/atomic/source/token"
)

// A map from error identifiers to functions that supply the corresponding error messages and explanations.
//
// Errors in the map are in numerical order of their identifers.
//
// The major categories are AT1xxx for the lexer, AT2xxx for the parser and AT3xxx for the evaluator.
// AT3004 is thrown by both the parser and the evaluator, since a malformed assignment may reach the
// evaluator in an AST that was not built by the parser.

var ErrorCreatorMap = map[string]ErrorCreator{

	// TEMPLATE
	"": {
		Message: func(tok *token.Token, args ...any) string {
			return ""
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return ""
		},
	},

	"AT1001": {
		Message: func(tok *token.Token, args ...any) string {
			return "illegal character " + emph(string(args[0].(rune)))
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The character " + emph(string(args[0].(rune))) + " can't begin any token in Atomic, " +
				"so the lexer has skipped over it and carried on with the rest of the line."
		},
	},

	"AT1002": {
		Message: func(tok *token.Token, args ...any) string {
			return "unterminated string literal"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A string literal must end with the same kind of quotation mark that it began with, " +
				"before the end of the line."
		},
	},

	"AT1003": {
		Message: func(tok *token.Token, args ...any) string {
			return "unterminated block comment"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A comment beginning with " + emph("/*") + " must be closed with " + emph("*/") + "."
		},
	},

	"AT2001": {
		Message: func(tok *token.Token, args ...any) string {
			return "unexpected " + describeTok(tok)
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The parser was expecting the start of an expression: a number, a string, a name, " +
				"an object literal or a parenthesized expression." + blame(errors, pos, "AT1001", "AT1002")
		},
	},

	"AT2002": {
		Message: func(tok *token.Token, args ...any) string {
			return "expected " + emph(args[0]) + ", found " + describeTok(tok)
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "At this point the grammar only allows " + emph(args[0]) + "." +
				blame(errors, pos, "AT1001", "AT1002", "AT2001")
		},
	},

	"AT2003": {
		Message: func(tok *token.Token, args ...any) string {
			return "malformed object property at " + describeTok(tok)
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Each property of an object literal must be a name, optionally followed by " +
				emph(":") + " and an expression, as in " + emph("{ a: 1, b }") + "."
		},
	},

	"AT2004": {
		Message: func(tok *token.Token, args ...any) string {
			return "malformed parameter list at " + describeTok(tok)
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The parameters of a function declaration must be names separated by commas, as in " +
				emph("func f(a, b) { ... }") + "."
		},
	},

	"AT2005": {
		Message: func(tok *token.Token, args ...any) string {
			return emph("use") + " should be followed by a string, not " + describeTok(tok)
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The path of the file to include must be given literally, as in " + emph(`use "./lib.atom"`) + "."
		},
	},

	"AT3001": {
		Message: func(tok *token.Token, args ...any) string {
			return "unknown variable " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "No variable, constant or function called " + emph(args[0]) + " has been declared " +
				"in this scope or any scope enclosing it."
		},
	},

	"AT3002": {
		Message: func(tok *token.Token, args ...any) string {
			return "reassigning locked variable " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A variable declared with " + emph("const") + ", or the name of a function, is locked: " +
				"it can't be reassigned after it has been declared. Its value has been left as it was."
		},
	},

	"AT3003": {
		Message: func(tok *token.Token, args ...any) string {
			return fmt.Sprintf("can't apply %v to values of type %v and %v", emph(args[0]), emph(args[1]), emph(args[2]))
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The operator " + emph("+") + " adds numbers and joins a string to anything; " +
				emph("-") + " subtracts numbers or removes text from a string; " + emph("*") + " and " +
				emph("/") + " only work on numbers. The result of this operation is null." +
				blame(errors, pos, "AT3001", "AT3005", "AT3007", "AT3008")
		},
	},

	"AT3004": {
		Message: func(tok *token.Token, args ...any) string {
			return "can't assign to " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The left-hand side of " + emph("=") + " must be the name of a variable, or a member " +
				"of an object such as " + emph("obj.key") + " or " + emph("obj[0]") + "."
		},
	},

	"AT3005": {
		Message: func(tok *token.Token, args ...any) string {
			return "object has no property " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "You can add a property to an object by assigning to it, but reading a property that " +
				"was never set gives null."
		},
	},

	"AT3006": {
		Message: func(tok *token.Token, args ...any) string {
			return "unknown operator " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Atomic only has the binary operators " + emph("+") + ", " + emph("-") + ", " +
				emph("*") + " and " + emph("/") + "."
		},
	},

	"AT3007": {
		Message: func(tok *token.Token, args ...any) string {
			return "can't access a member of a value of type " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Only objects have members. Numbers, strings and functions can't be accessed with " +
				emph(".") + " or " + emph("[]") + "." + blame(errors, pos, "AT3001", "AT3005")
		},
	},

	"AT3008": {
		Message: func(tok *token.Token, args ...any) string {
			return "bad index: " + args[0].(string)
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "An index in square brackets must be written as a literal whole number, and must be " +
				"less than the number of properties of the object. Properties are counted from 0 in the " +
				"order in which they were first set."
		},
	},

	"AT3009": {
		Message: func(tok *token.Token, args ...any) string {
			return "malformed member access"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "After " + emph(".") + " there must be the name of a property."
		},
	},

	"AT3010": {
		Message: func(tok *token.Token, args ...any) string {
			return "can't call a value of type " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Only functions can be called." + blame(errors, pos, "AT3001", "AT3005", "AT3007")
		},
	},

	"AT3011": {
		Message: func(tok *token.Token, args ...any) string {
			return fmt.Sprintf("expected %v, got %v", describeCount(args[0].(int)), describeCount(args[1].(int)))
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A function must be called with exactly as many arguments as it has parameters. " +
				"The call has not been made and its value is null."
		},
	},
}

func blame(errors Errors, pos int, args ...string) string {
	if pos == 0 {
		return ""
	}
	for _, v := range args {
		if errors[pos-1].ErrorId == v {
			very := ""
			if (errors[pos].Token.Line - errors[pos-1].Token.Line) <= 1 {
				very = "very "
			}
			return "\n\nIn this case the problem is " + very + "likely a knock-on effect of the previous error ([" +
				strconv.Itoa(pos-1) + "] " + errors[pos-1].Message + ".)"
		}
	}
	return ""
}

func emph(s any) string {
	if t, ok := s.(string); ok {
		s = strings.TrimSpace(t)
	}
	return fmt.Sprintf("'%v'", s)
}

func describeTok(tok *token.Token) string {
	if tok.Type == token.EOF {
		return "end of input"
	}
	if tok.Type == token.STRING {
		return "string " + strconv.Quote(tok.Literal)
	}
	return emph(tok.Literal)
}

func describeCount(n int) string {
	if n == 1 {
		return "1 argument"
	}
	return strconv.Itoa(n) + " arguments"
}
