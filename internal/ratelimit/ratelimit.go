package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter decides whether one more request for key fits the budget.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type client struct {
	lim  *rate.Limiter
	seen time.Time
}

// Local keeps one token bucket per key in process memory.
type Local struct {
	mu      sync.Mutex
	clients map[string]*client
	r       rate.Limit
	burst   int
	now     func() time.Time

	stop chan struct{}
	once sync.Once
}

func NewLocal(rps float64, burst int) *Local {
	if burst <= 0 {
		burst = 1
	}
	l := &Local{
		clients: make(map[string]*client),
		r:       rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go l.janitor(time.Minute, 3*time.Minute)
	return l
}

// NewLocalWindow spreads limit requests over window.
func NewLocalWindow(limit int, window time.Duration) *Local {
	if limit <= 0 {
		limit = 1
	}
	return NewLocal(float64(limit)/window.Seconds(), limit)
}

func (l *Local) janitor(every, idle time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-t.C:
			l.mu.Lock()
			for key, c := range l.clients {
				if l.now().Sub(c.seen) > idle {
					delete(l.clients, key)
				}
			}
			l.mu.Unlock()
		}
	}
}

func (l *Local) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if c, ok := l.clients[key]; ok {
		c.seen = l.now()
		return c.lim
	}
	lim := rate.NewLimiter(l.r, l.burst)
	l.clients[key] = &client{lim: lim, seen: l.now()}
	return lim
}

func (l *Local) Allow(_ context.Context, key string) (bool, error) {
	return l.get(key).AllowN(l.now(), 1), nil
}

func (l *Local) Close() {
	l.once.Do(func() { close(l.stop) })
}
