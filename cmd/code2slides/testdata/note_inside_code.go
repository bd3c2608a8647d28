package testdata

// code
func f() {}

// note
// !code
