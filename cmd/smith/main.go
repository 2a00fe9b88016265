// Command smith scaffolds and addresses feature workspaces for an
// AI-assisted, spec-driven development workflow.
package main

func main() {
	Execute()
}
