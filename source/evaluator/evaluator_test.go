package evaluator_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomic-lang/atomic/source/ast"
	"github.com/atomic-lang/atomic/source/err"
	"github.com/atomic-lang/atomic/source/evaluator"
	"github.com/atomic-lang/atomic/source/object"
	"github.com/atomic-lang/atomic/source/test_helper"
	"github.com/atomic-lang/atomic/source/token"
)

func TestOperators(t *testing.T) {
	tests := []test_helper.TestItem{
		{`1 + 1`, `2`},
		{`2 + 3 * 4`, `14`},
		{`(2 + 3) * 4`, `20`},
		{`10 - 4 - 3`, `3`},
		{`0.5 + 0.25`, `0.75`},
		{`"a" + 1`, `"a1"`},
		{`1 + "a"`, `"1a"`},
		{`"a" + "b"`, `"ab"`},
		{`"x" + { a: 1 }`, `"x{a: 1}"`},
		{`"abc" - "b"`, `"ac"`},
		{`"abab" - "b"`, `"aab"`},
		{`"a1b1" - 1`, `"ab1"`},
		{`5 / 0`, `0`},
		{`2 / 8`, `4`},
		{`3 * 0.5`, `1.5`},
	}
	test_helper.RunTest(t, tests, testValue)
}

func TestOperatorErrors(t *testing.T) {
	tests := []test_helper.TestItem{
		{`1 - "a"`, `null AT3003`},
		{`"a" * 2`, `null AT3003`},
		{`"a" / 2`, `null AT3003`},
		{`1 + { a: 1 }`, `null AT3003`},
		{`5 / 0`, `0`},
	}
	test_helper.RunTest(t, tests, testValueAndErrors)
}

func TestVariables(t *testing.T) {
	tests := []test_helper.TestItem{
		{`var x = 1; x`, `1`},
		{`var x = 1; x = 2; x`, `2`},
		{`var x = 1; var x = "again"; x`, `"again"`},
		{`const x = 1; x = 2; x`, `1 AT3002`},
		{`const x = 1; x = 2`, `null AT3002`},
		{`y = 2`, `null AT3001`},
		{`y`, `null AT3001`},
		{`var a = 0; var b = 0; a = b = 3; a + b`, `6`},
		{`null`, `null`},
		{`null = 1`, `null AT3002`},
		{`5 = 6`, `null AT3004`},
	}
	test_helper.RunTest(t, tests, testValueAndErrors)
}

func TestFunctions(t *testing.T) {
	tests := []test_helper.TestItem{
		{`func add(a, b) { return a + b }; add(2, 3)`, `5`},
		{`func add(a, b) { return a + b }; add(2)`, `null AT3011`},
		{`func add(a, b) { return a + b }; add(1, 2, 3)`, `null AT3011`},
		{`func f() { var x = 1 }; f()`, `null`},
		{`func f() { return }; f()`, `null`},
		{`func f() { return 1; return 2 }; f()`, `1`},
		{`func f() { return 1 }; f = 2; f()`, `1 AT3002`},
		{`var x = 1; func f() { x = x + 1; return x }; f(); f()`, `3`},
		{`var x = 1; func f(x) { x = 10; return x }; f(5) + x`, `11`},
		{`func f(a) { var local = a }; f(1); local`, `null AT3001`},
		{`5()`, `null AT3010`},
		{`"s"(1)`, `null AT3010`},
		{`func outer() { var n = 10; func inner() { return n }; return inner }; outer()()`, `10`},
		{`func counter() { var n = 0; func next() { n = n + 1; return n }; return next }
		  var c = counter(); c(); c(); c()`, `3`},
		{`var o = { f: typeof }; o.f(1)`, `"number"`},
		{`return 5; 6`, `5`},
		{`func f() { return 1 }`, `func f()`},
	}
	test_helper.RunTest(t, tests, testValueAndErrors)
}

func TestObjects(t *testing.T) {
	tests := []test_helper.TestItem{
		{`var b = 5; var obj = { a: 1, b }; obj`, `{a: 1, b: 5}`},
		{`var b = 5; var obj = { a: 1, b }; b = 6; obj.b`, `5`},
		{`var b = 5; var obj = { a: 1, b }; obj[0]`, `1`},
		{`var b = 5; var obj = { a: 1, b }; obj[1]`, `5`},
		{`var b = 5; var obj = { a: 1, b }; obj[5]`, `null AT3008`},
		{`var obj = { a: 1 }; obj[0.5]`, `null AT3008`},
		{`var obj = { a: 1 }; var i = 0; obj[i]`, `null AT3008`},
		{`var obj = { a: 1 }; obj.nope`, `null AT3005`},
		{`var obj = { a: 1 }; obj.b = 2; obj`, `{a: 1, b: 2}`},
		{`var obj = { a: 1, b: 2 }; obj[1] = "x"; obj`, `{a: 1, b: "x"}`},
		{`var obj = { a: 1 }; obj[3] = 2`, `null AT3008`},
		{`var obj = { a: 1 }; obj[99999999999999999999]`, `null AT3008`},
		{`var obj = { inner: { deep: 1 } }; obj.inner.deep = 2; obj.inner.deep`, `2`},
		{`var obj = { inner: { deep: 1 } }; obj.inner[0]`, `1`},
		{`{ missing }`, `{missing: null} AT3001`},
		{`5.x`, `null AT3007`},
		{`var s = "str"; s.length`, `null AT3007`},
		{`var n = 5; n.x = 1`, `null AT3007`},
		{`5.x; 1 + 1`, `2 AT3007`},
		{`len({ a: 1, b: 2 }) + len("héllo")`, `7`},
	}
	test_helper.RunTest(t, tests, testValueAndErrors)
}

func TestNatives(t *testing.T) {
	var out bytes.Buffer
	c := evaluator.NewSession(&out, "")
	result, e := evaluator.Run("test", `print("a", 1, { b: 2 }); str(1.5) + typeof(print)`, c)
	if e != nil {
		t.Fatal(e)
	}
	if out.String() != "a 1 {b: 2}\n" {
		t.Fatalf("print wrote %q", out.String())
	}
	if result.Inspect() != `"1.5native-func"` {
		t.Fatalf("got %s", result.Inspect())
	}
	result, _ = evaluator.Run("test", `time()`, c)
	if n, ok := result.(*object.Number); !ok || n.Value <= 0 {
		t.Fatalf("time() gave %s", result.Inspect())
	}
}

func TestUse(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib.atom", `var shared = 10; const locked = "l"; func double(x) { return x * 2 }`)
	writeFile(t, dir, "other.atom", `var shared = 20`)
	writeFile(t, dir, "sub/nested.atom", `use "./helper.atom"; var fromNested = helped + 1`)
	writeFile(t, dir, "sub/helper.atom", `var helped = 41`)
	tests := []test_helper.TestItem{
		{`use "./lib.atom"; shared`, `10`},
		{`use "./lib.atom"; double(shared)`, `20`},
		{`use "./lib.atom"; use "./other.atom"; shared`, `20`},
		{`use "./lib.atom"; locked = 1`, `null AT3002`},
		{`use "sub/nested.atom"; fromNested + helped`, `83`},
		{`var shared = 1; use "./lib.atom"; shared`, `10`},
	}
	test_helper.RunTest(t, tests, func(s string) (string, error) {
		return runInDir(dir, s)
	})
}

func TestUseScoping(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib.atom", `var seen = typeof(print)`)
	c := evaluator.NewSession(&bytes.Buffer{}, dir)
	if _, e := evaluator.Run("test", `use "lib.atom"`, c); e != nil {
		t.Fatal(e)
	}
	if _, ok := c.Env().Store["print"]; ok {
		t.Fatalf("natives should not be copied into the including scope")
	}
	if _, ok := c.Env().Store["seen"]; !ok {
		t.Fatalf("module bindings should be copied into the including scope")
	}
	if c.Resolver().Dir() != dir {
		t.Fatalf("resolver should be back at %s, is at %s", dir, c.Resolver().Dir())
	}
}

func TestUseMissingFileIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.atom", `var before = 1; use "./nowhere.atom"`)
	c := evaluator.NewSession(&bytes.Buffer{}, dir)
	_, e := evaluator.Run("test", `use "broken.atom"; var after = 1`, c)
	if e == nil || !strings.Contains(e.Error(), "nowhere.atom") {
		t.Fatalf("wanted a fatal error naming the missing file, got %v", e)
	}
	if c.Env().Exists("after") {
		t.Fatalf("evaluation should have stopped at the failed use")
	}
	if c.Resolver().Dir() != dir {
		t.Fatalf("resolver should have been restored to %s, is at %s", dir, c.Resolver().Dir())
	}
}

func TestUseItself(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "loop.atom", `use "./loop.atom"`)
	_, e := runInDir(dir, `use "loop.atom"`)
	if e == nil {
		t.Fatalf("wanted an error for a module that uses itself")
	}
}

func TestUseSyntaxErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.atom", `var = 1`)
	c := evaluator.NewSession(&bytes.Buffer{}, dir)
	if _, e := evaluator.Run("test", `use "bad.atom"`, c); e != nil {
		t.Fatal(e)
	}
	ers := c.Reporter().GetErrors()
	if len(ers) != 1 || ers[0].ErrorId != "AT2002" || !strings.HasSuffix(ers[0].Token.Source, "bad.atom") {
		t.Fatalf("wanted the module's parse error, got %v", ers)
	}
}

func TestModuleCache(t *testing.T) {
	mc := evaluator.NewModuleCache()
	first, _ := mc.Parse("a.atom", []byte("var x = 1"))
	second, _ := mc.Parse("a.atom", []byte("var x = 1"))
	if first != second {
		t.Fatalf("unchanged contents should hit the cache")
	}
	third, _ := mc.Parse("a.atom", []byte("var x = 2"))
	if third == first || third.String() != "var x = 2\n" {
		t.Fatalf("changed contents should be re-parsed, got %s", third.String())
	}
	if mc.Len() != 1 {
		t.Fatalf("wanted one entry, got %d", mc.Len())
	}
}

// The evaluator has to cope with trees the parser would never build.
func TestHandBuiltTrees(t *testing.T) {
	c := evaluator.NewSession(&bytes.Buffer{}, "")
	tok := token.Token{Type: token.ASSIGN, Literal: "="}
	bad := &ast.AssignExpr{Token: tok, Target: &ast.NumberLiteral{Value: 1}, Value: &ast.NumberLiteral{Value: 2}}
	if got := evaluator.Eval(bad, c); got != object.NULL {
		t.Fatalf("wanted null, got %s", got.Inspect())
	}
	obj := &ast.ObjectLiteral{Properties: []ast.Property{{Key: "a", Value: &ast.NumberLiteral{Value: 1}}}}
	member := &ast.MemberExpr{Object: obj, Property: &ast.StringLiteral{Value: "a"}}
	if got := evaluator.Eval(member, c); got != object.NULL {
		t.Fatalf("wanted null, got %s", got.Inspect())
	}
	if got := errorIds(c.Reporter().GetErrors()); got != "AT3004 AT3009" {
		t.Fatalf("wanted AT3004 AT3009, got %s", got)
	}
}

func TestReporterReset(t *testing.T) {
	c := evaluator.NewSession(&bytes.Buffer{}, "")
	evaluator.Run("test", `nope`, c)
	if !c.Reporter().ErrorsExist() {
		t.Fatalf("wanted an error to have been recorded")
	}
	c.Reporter().Reset()
	evaluator.Run("test", `1 + 1`, c)
	if c.Reporter().ErrorsExist() {
		t.Fatalf("wanted no errors after reset, got %v", c.Reporter().GetErrors())
	}
}

func testValue(s string) (string, error) {
	c := evaluator.NewSession(&bytes.Buffer{}, "")
	result, e := evaluator.Run("test", s, c)
	if e != nil {
		return "", e
	}
	if c.Reporter().ErrorsExist() {
		return "", errors.New(c.Reporter().GetList())
	}
	return result.Inspect(), nil
}

// Gives the value followed by the ids of any errors.
func testValueAndErrors(s string) (string, error) {
	c := evaluator.NewSession(&bytes.Buffer{}, "")
	result, e := evaluator.Run("test", s, c)
	if e != nil {
		return "", e
	}
	return describe(result, c), nil
}

func runInDir(dir, s string) (string, error) {
	c := evaluator.NewSession(&bytes.Buffer{}, dir)
	result, e := evaluator.Run("test", s, c)
	if e != nil {
		return "", e
	}
	return describe(result, c), nil
}

func describe(result object.Object, c *evaluator.Context) string {
	ids := errorIds(c.Reporter().GetErrors())
	if ids == "" {
		return result.Inspect()
	}
	return result.Inspect() + " " + ids
}

func errorIds(ers err.Errors) string {
	ids := []string{}
	for _, e := range ers {
		ids = append(ids, e.ErrorId)
	}
	return strings.Join(ids, " ")
}

func writeFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if e := os.MkdirAll(filepath.Dir(path), 0o755); e != nil {
		t.Fatal(e)
	}
	if e := os.WriteFile(path, []byte(contents), 0o644); e != nil {
		t.Fatal(e)
	}
}

func TestHugeIndexMessage(t *testing.T) {
	c := evaluator.NewSession(&bytes.Buffer{}, "")
	evaluator.Run("test", `var obj = { a: 1 }; obj[99999999999999999999]`, c)
	ers := c.Reporter().GetErrors()
	if len(ers) != 1 || !strings.Contains(ers[0].Message, "index 99999999999999999999 is out of range") {
		t.Fatalf("wrong error for a huge index: %v", ers)
	}
}

func TestRunawayRecursion(t *testing.T) {
	c := evaluator.NewSession(&bytes.Buffer{}, "")
	for _, source := range []string{`func f() { return f() }; f()`, `func g() { return g() + g() }; g()`} {
		_, e := evaluator.Run("test", source, c)
		if e == nil || !strings.Contains(e.Error(), "call stack overflow") {
			t.Fatalf("%s: wanted a stack overflow, got %v", source, e)
		}
	}
	result, e := evaluator.Run("test", `func one() { return 1 }; one() + one()`, c)
	if e != nil || result.Inspect() != "2" {
		t.Fatalf("the session should still work after an overflow, got %v, %v", result, e)
	}
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sub/main.atom", `use "./lib.atom"; var total = shared + 1`)
	writeFile(t, dir, "sub/lib.atom", `var shared = 1`)
	c := evaluator.NewSession(&bytes.Buffer{}, dir)
	result, e := evaluator.RunFile("sub/main.atom", c)
	if e != nil {
		t.Fatal(e)
	}
	if result.Inspect() != "2" || !c.Env().Exists("total") {
		t.Fatalf("got %s", result.Inspect())
	}
	if _, e := evaluator.RunFile("nowhere.atom", c); e == nil {
		t.Fatalf("wanted an error for a missing file")
	}
}
