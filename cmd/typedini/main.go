// Command typedini loads an INI file and prints its values with their coerced types.
//
//	typedini dump settings.ini --format json
//	typedini get settings.ini Export enabled --default false
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
