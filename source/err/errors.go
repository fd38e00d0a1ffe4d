package err

import (
	"strconv"

	"github.com/atomic-lang/atomic/source/text"
	"github.com/atomic-lang/atomic/source/token"
)

// The 'error' type. Diagnostics are recorded, not raised: whoever throws one substitutes
// a value and carries on.
type Error struct {
	ErrorId string
	Message string
	Args    []any
	Token   *token.Token
}

func (e *Error) Error() string {
	return "[" + e.ErrorId + "] " + e.Message + text.DescribePos(e.Token)
}

type Errors []*Error

type ErrorCreator struct {
	Message     func(tok *token.Token, args ...any) string
	Explanation func(errors Errors, pos int, tok *token.Token, args ...any) string
}

func CreateErr(errorId string, tok *token.Token, args ...any) *Error {
	errorCreator, ok := ErrorCreatorMap[errorId]
	if !ok {
		panic("Error creator map has no entry for " + errorId)
	}
	// The caller's token may be a field it goes on to overwrite, so the error keeps its own copy.
	t := token.Token{}
	if tok != nil {
		t = *tok
	}
	return &Error{ErrorId: errorId, Message: errorCreator.Message(&t, args...), Args: args, Token: &t}
}

func Throw(errorId string, ers Errors, tok *token.Token, args ...any) Errors {
	return append(ers, CreateErr(errorId, tok, args...))
}

// Formats a list of errors for display, numbered so that the user can ask for an explanation.
func GetList(ers Errors) string {
	result := ""
	for i, e := range ers {
		result = result + "[" + strconv.Itoa(i) + "] " + text.ERROR + e.Message + text.DescribePos(e.Token) +
			" " + text.Code(e.ErrorId) + "\n"
	}
	return result
}

func Explain(ers Errors, pos int) string {
	if pos < 0 || pos >= len(ers) {
		return "there is no error numbered " + strconv.Itoa(pos)
	}
	e := ers[pos]
	return ErrorCreatorMap[e.ErrorId].Explanation(ers, pos, e.Token, e.Args...)
}

// The single channel through which the lexer, parser and evaluator report. The hub of a
// session owns one and resets it between inputs.
type Reporter struct {
	ers Errors
}

func NewReporter() *Reporter {
	return &Reporter{ers: Errors{}}
}

func (r *Reporter) Report(e *Error) {
	r.ers = append(r.ers, e)
}

func (r *Reporter) ReportAll(ers Errors) {
	r.ers = append(r.ers, ers...)
}

func (r *Reporter) Throw(errorId string, tok *token.Token, args ...any) {
	r.ers = Throw(errorId, r.ers, tok, args...)
}

// Whether anything has been reported since the last call to Reset.
func (r *Reporter) ErrorsExist() bool {
	return len(r.ers) > 0
}

func (r *Reporter) GetErrors() Errors {
	return r.ers
}

func (r *Reporter) GetList() string {
	return GetList(r.ers)
}

func (r *Reporter) Explain(pos int) string {
	return Explain(r.ers, pos)
}

func (r *Reporter) Reset() {
	r.ers = Errors{}
}
