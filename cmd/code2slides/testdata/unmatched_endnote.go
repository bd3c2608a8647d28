package testdata

// note
// A note.
// !note
// !note
