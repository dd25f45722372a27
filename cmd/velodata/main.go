// velodata is the command-line companion to the dashboard server: it
// runs the cleaning pipeline over a dataset file and prints reports or
// exports aggregates without starting an HTTP server.
package main

func main() {
	Execute()
}
