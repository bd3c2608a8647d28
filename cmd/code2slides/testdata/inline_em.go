package testdata

// heading Inline emphasis

// code
x := foo() // em foo
y := bar()
// !code
