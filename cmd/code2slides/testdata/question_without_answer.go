package testdata

// question
// Why?
// !question
