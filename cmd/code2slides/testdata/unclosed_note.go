package testdata

// note
// Never closed.
