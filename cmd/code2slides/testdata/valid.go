package testdata

// heading Test Heading

// note
// First note.
// !note

// code
func foo() {}

// !code

// note
// Second note.
//
// Third note after blank comment.

// Fourth note after blank line.
// !note

// code
func bar() {}
// !code

// question
// What is the answer?
// answer
// The answer is 42.
// !question

// note Use `fmt.Println` to print.
