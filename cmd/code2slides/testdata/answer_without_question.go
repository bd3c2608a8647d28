package testdata

// answer
// 42
// !question
