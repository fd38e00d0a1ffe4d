package lexer

// The RuneSupplier gives us something simpler than a lexer for slurping up literals,
// and keeps track of where we are in the source for the tokens' positions.
type RuneSupplier struct {
	code      []rune
	pos       int
	lineNo    int
	lineStart int
}

func NewRuneSupplier(code []rune) *RuneSupplier {
	return &RuneSupplier{code: code, lineNo: 1}
}

func (rs *RuneSupplier) CurrentRune() rune {
	return rs.PeekAhead(0)
}

func (rs *RuneSupplier) PeekRune() rune {
	return rs.PeekAhead(1)
}

// Returns 0 past the end of the input.
func (rs *RuneSupplier) PeekAhead(n int) rune {
	if rs.pos+n < len(rs.code) {
		return rs.code[rs.pos+n]
	}
	return 0
}

func (rs *RuneSupplier) AtEnd() bool {
	return rs.pos >= len(rs.code)
}

func (rs *RuneSupplier) Next() {
	if rs.pos >= len(rs.code) {
		return
	}
	if rs.code[rs.pos] == '\n' {
		rs.lineNo++
		rs.lineStart = rs.pos + 1
	}
	rs.pos++
}

func (rs *RuneSupplier) Position() (int, int) {
	return rs.lineNo, rs.pos - rs.lineStart
}
