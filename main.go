// SPDX-License-Identifier: MPL-2.0

package main

import cmd "blasfind-cli/cmd/blasfind"

func main() {
	cmd.Execute()
}
