package main

import "github.com/paddlelog/garmin-fetch/cmd/garminfetch"

func main() {
	garminfetch.Execute()
}
