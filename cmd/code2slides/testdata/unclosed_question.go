package testdata

// question
// Why?
// answer
// Because.
