// Command buildermatch serves and runs the builder matching engine.
package main

func main() {
	Execute()
}
