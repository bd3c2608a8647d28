package testdata

// text
// heading Oops
// !text
