// Package notify delivers "timer finished" messages to the user.
package notify

import (
	"fmt"
	"log"

	"github.com/ncruces/zenity"
)

// Dispatcher is anything that can announce a finished timer.
type Dispatcher interface {
	NotifyFinished(title, body string)
}

// Zenity shows a native desktop notification. Delivery runs on its own
// goroutine because some platforms spawn a helper process.
type Zenity struct {
	logger *log.Logger
	notify func(text string, options ...zenity.Option) error
}

// NewZenity creates a native notification dispatcher.
func NewZenity(logger *log.Logger) *Zenity {
	if logger == nil {
		logger = log.Default()
	}
	return &Zenity{logger: logger, notify: zenity.Notify}
}

// NotifyFinished implements Dispatcher.
func (dispatcher *Zenity) NotifyFinished(title, body string) {
	go func() {
		if err := dispatcher.send(title, body); err != nil {
			dispatcher.logger.Printf("%v", err)
		}
	}()
}

func (dispatcher *Zenity) send(title, body string) error {
	if err := dispatcher.notify(body, zenity.Title(title), zenity.InfoIcon); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

// Log writes notifications to a logger.
type Log struct {
	Logger *log.Logger
}

// NotifyFinished implements Dispatcher.
func (dispatcher Log) NotifyFinished(title, body string) {
	logger := dispatcher.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("%s: %s", title, body)
}

// Multi fans a notification out to several dispatchers in order.
type Multi []Dispatcher

// NotifyFinished implements Dispatcher.
func (multi Multi) NotifyFinished(title, body string) {
	for _, dispatcher := range multi {
		if dispatcher != nil {
			dispatcher.NotifyFinished(title, body)
		}
	}
}

// Func adapts a function to Dispatcher.
type Func func(title, body string)

// NotifyFinished implements Dispatcher.
func (fn Func) NotifyFinished(title, body string) {
	fn(title, body)
}
