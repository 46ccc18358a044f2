// Command diskfsctl exercises the diskprovider package's stat/readdir/
// read/write/watch operations against a real directory.
package main

func main() {
	Execute()
}
