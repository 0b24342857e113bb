/*
Copyright © 2026 Ambition09
*/
package main

import "github.com/Ambition09/meeshodashboard/cmd"

func main() {
	cmd.Execute()
}
