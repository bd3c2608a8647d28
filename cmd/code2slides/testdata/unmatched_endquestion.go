package testdata

// text Some text.

// !question
