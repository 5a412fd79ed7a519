// Command fjss-gp runs the cooperative coevolutionary GP driver against a
// set of flexible job-shop scheduling instances.
package main

import (
	"github.com/fjss-ccgp/ccgp/cmd/fjss-gp/cmd"
)

func main() {
	cmd.Execute()
}
