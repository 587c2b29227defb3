package main

import (
	"os"

	"github.com/10gen/mongo-bootstrap/cmd"
)

func main() {
	os.Exit(cmd.Run())
}
