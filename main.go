package main

import (
	"github.com/pselivanov/errandchat/cmd/server"
)

func main() {
	server.NewServer().Run()
}
