package sse

import (
	"context"
	"sync"

	"family-calendar/internal/models"
)

const clientBuffer = 10

// ChangeEmitter fans event changes out to connected browsers.
type ChangeEmitter struct {
	mu      sync.RWMutex
	clients map[chan models.EventChange]struct{}
}

func NewChangeEmitter() *ChangeEmitter {
	return &ChangeEmitter{clients: make(map[chan models.EventChange]struct{})}
}

// Subscribe registers a client until ctx is done; the channel is closed then.
func (e *ChangeEmitter) Subscribe(ctx context.Context) <-chan models.EventChange {
	clientChan := make(chan models.EventChange, clientBuffer)

	e.mu.Lock()
	e.clients[clientChan] = struct{}{}
	e.mu.Unlock()

	go func() {
		<-ctx.Done()
		e.remove(clientChan)
	}()

	return clientChan
}

// PublishEventChange never blocks: a client with a full buffer misses the
// change and picks it up on its next full reload.
func (e *ChangeEmitter) PublishEventChange(ctx context.Context, change models.EventChange) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for clientChan := range e.clients {
		select {
		case clientChan <- change:
		default:
		}
	}
	return nil
}

func (e *ChangeEmitter) Clients() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.clients)
}

func (e *ChangeEmitter) remove(clientChan chan models.EventChange) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.clients[clientChan]; ok {
		delete(e.clients, clientChan)
		close(clientChan)
	}
}
