package main

import "talenttrack-backend/cmd"

func main() {
	cmd.Run()
}
