package ingestion

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fsnotify/fsnotify"

	"gate-tracker-server/utils"
)

// WatchedExtensions are the paper formats the inbox watcher reacts to.
var WatchedExtensions = []string{".pdf", ".txt"}

// settleDelay lets a file finish being written before it is processed.
const settleDelay = 500 * time.Millisecond

// Watch processes every paper created or modified in dir until ctx is done.
// Bursts of events for one file are coalesced into a single run.
func (p *Pipeline) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	log.Printf("Watching %s for new papers", dir)

	settle := newSettler(ctx, settleDelay)
	defer settle.stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !utils.HasExtension(event.Name, WatchedExtensions...) {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			settle.touch(event.Name)
		case name := <-settle.ready:
			settle.done(name)
			if _, err := p.ProcessFile(ctx, name); err != nil {
				log.Printf("Error processing %s: %v", name, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

// settler delivers a file name on ready once no event has touched it for delay.
// Its methods are called from the watch loop goroutine only.
type settler struct {
	ctx     context.Context
	delay   time.Duration
	pending map[string]*time.Timer
	ready   chan string
}

func newSettler(ctx context.Context, delay time.Duration) *settler {
	return &settler{
		ctx:     ctx,
		delay:   delay,
		pending: make(map[string]*time.Timer),
		ready:   make(chan string, 16),
	}
}

// touch starts or extends the quiet period for name. A timer that has already
// fired is left alone: name is queued and will be processed after this event.
func (s *settler) touch(name string) {
	if t, ok := s.pending[name]; ok {
		if t.Stop() {
			t.Reset(s.delay)
		}
		return
	}
	s.pending[name] = time.AfterFunc(s.delay, func() {
		select {
		case s.ready <- name:
		case <-s.ctx.Done():
		}
	})
}

// done forgets name once it has been taken off ready.
func (s *settler) done(name string) {
	delete(s.pending, name)
}

func (s *settler) stop() {
	for _, t := range s.pending {
		t.Stop()
	}
}
