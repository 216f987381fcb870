package main

import "github.com/codetriage/codetriage/cmd/codetriage"

func main() { codetriage.Execute() }
