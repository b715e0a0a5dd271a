// repolens is an interactive CLI that analyzes public GitHub repositories:
// contributor ranking, commit velocity, directory complexity, documentation
// coverage and an executive summary, plus an optional chat mode that
// answers free-form questions about the repository.
//
// Usage:
//
//	repolens analyze
//	repolens chat
package main

import (
	"github.com/acuervo/repolens/cmd"
)

func main() {
	cmd.Execute()
}
