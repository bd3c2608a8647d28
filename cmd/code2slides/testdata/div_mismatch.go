package testdata

// div.flex
// code
x := 1
// !code
// !div.grid
