package infrastructure

import (
	"sync"

	messagequeue "votegate.io/infrastructure/message_queue"
)

type serverInterface interface {
	Start()
}

func StartServer() {
	var server serverInterface = &ginServer{}
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		messagequeue.StartQueue()
	}()

	go func() {
		defer wg.Done()
		server.Start()
	}()

	wg.Wait()
}
