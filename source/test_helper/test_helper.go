package test_helper

import (
	"testing"

	"github.com/atomic-lang/atomic/source/settings"
	"github.com/atomic-lang/atomic/source/text"
)

// Auxiliary types and functions for testing the parser and evaluator.

type TestItem struct {
	Input string
	Want  string
}

// Runs each input through F, which turns it into a string to compare with what we want. If F
// returns an error, that is reported along with the failure.
func RunTest(t *testing.T, tests []TestItem, F func(s string) (string, error)) {
	t.Helper()
	for _, test := range tests {
		if settings.SHOW_TESTS {
			println(text.BULLET + "Running test " + text.Emph(test.Input))
		}
		got, e := F(test.Input)
		if e != nil {
			t.Errorf("There were errors running %s: \n%v", text.Emph(test.Input), e)
			continue
		}
		if !(test.Want == got) {
			t.Errorf(`Test failed with input %s | Wanted : %s | Got : %s.`, test.Input, test.Want, got)
		}
	}
}
