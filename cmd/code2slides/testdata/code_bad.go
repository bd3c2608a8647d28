package testdata

// heading Bad code

// code bad
x := 1 // wrong
// !code
