package testdata

// code
func f() {}
