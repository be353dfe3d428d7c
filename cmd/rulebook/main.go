// Command rulebook prints the built-in classification rule tables as YAML,
// for inspection or as a starting point for a customized rulebook.
package main

import (
	"fmt"
	"os"

	"github.com/habitloop/habitloop-backend/internal/classifier"
)

func main() {
	out, err := classifier.DefaultRulebook().YAML()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to render rulebook: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}
