package main

import "github.com/tisearch/tisearch/cmd/tisearch"

func main() { tisearch.Execute() }
