package main

import (
	"classmark.io/infrastructure/env"
	messagequeue "classmark.io/infrastructure/message_queue"
)

func init() {
	env.LoadEnv()
}

func main() {
	messagequeue.StartQueue()
}
