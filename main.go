// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/invowk/taskr/cmd/taskr"

func main() {
	cmd.Execute()
}
