package testdata

// heading Unmatched

// !code
