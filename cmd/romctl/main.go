// Command romctl inspects and edits the RATS chunks of a GBA ROM image.
package main

func main() {
	execute()
}
