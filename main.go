package main

import "github.com/nicolarischia/f1-analytics/cmd"

func main() {
	cmd.Execute()
}
