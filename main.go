package main

import "github.com/TrainFun/cxc/cmd"

func main() {
	cmd.Execute()
}
