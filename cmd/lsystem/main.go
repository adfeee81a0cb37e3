// Command lsystem renders and serves animated L-system figures.
package main

func main() {
	Execute()
}
