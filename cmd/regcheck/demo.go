package main

import (
	"fmt"
	"io"

	regcheck "github.com/reoring/regcheck"
)

var demoPayloads = []struct {
	title   string
	payload string
}{
	{"valid registration", `{
    "name": "Alice",
    "age": 25,
    "email": "alice@example.com",
    "is_employed": true,
    "address": {
        "city": "New York",
        "street": "Main Street",
        "house_number": 123
    }
}`},
	{"invalid registration", `{
    "name": "A1ice",
    "age": 17,
    "email": "alice@example.com",
    "is_employed": true,
    "address": {
        "city": "N",
        "street": "M",
        "house_number": 0
    }
}`},
}

// demoCmd runs the two sample payloads and prints both outcomes.
func demoCmd(stdout io.Writer) int {
	for i, d := range demoPayloads {
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		fmt.Fprintf(stdout, "== %s ==\n%s\n", d.title, regcheck.RegisterText(d.payload))
	}
	return exitOK
}
