package main

import "github.com/saadjs/mealtrack/cmd/mealtrack"

func main() {
	mealtrack.Execute()
}
