package testdata

// heading First

// text One.

func f() {
	// code
	for range 3 {
		// em
		g()
		// !em
	}
	// !code
}

// heading Second

/* text
Block text.

Second paragraph.
*/

// output
// a
//
// b
// !output
