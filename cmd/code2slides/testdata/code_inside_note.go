package testdata

// note
// A note.
// code
// !note
