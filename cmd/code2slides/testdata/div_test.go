package testdata

// heading Divs

// div.flex
// code
x := 1
// !code
// !div.flex
