// Copyright © 2026 The introtree Authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Introtree is a tool for phylogeographic introduction inference on
// mutation-annotated trees.
package main

import (
	"github.com/js-arias/command"
	"github.com/mat-utils/introtree/cmd/introtree/introduce"
)

var app = &command.Command{
	Usage: "introtree <command> [<argument>...]",
	Short: "a tool for phylogeographic introduction inference on mutation-annotated trees",
}

func init() {
	app.Add(introduce.Command)
}

func main() {
	app.Main()
}
