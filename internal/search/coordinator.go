// Package search owns the query/pagination state machine between the remote
// GIF API and the local favorites store.
package search

import (
	"context"
	"sync"
	"time"

	"github.com/user/gifdeck/internal/db"
	"github.com/user/gifdeck/internal/klipy"
)

const (
	// DefaultPerPage is the fixed page size for remote requests. Pagination
	// is page-number based: each fetch advances the page marker by one.
	DefaultPerPage = 25

	DefaultDebounce = 300 * time.Millisecond

	// DefaultWatchdog bounds how long a loading flag can stay set when a
	// request neither resolves nor fails. The watchdog clears the flag only;
	// the underlying request is not cancelled.
	DefaultWatchdog = 10 * time.Second
)

// Remote is the slice of the GIF API the coordinator needs.
type Remote interface {
	Search(ctx context.Context, query string, page, perPage int) (*klipy.Page, error)
}

// FavoritesSource lists saved favorites for the empty-query view.
type FavoritesSource interface {
	AllFavorites() ([]db.Favorite, error)
}

type Options struct {
	PerPage  int
	Debounce time.Duration
	Watchdog time.Duration
}

func (o Options) withDefaults() Options {
	if o.PerPage <= 0 {
		o.PerPage = DefaultPerPage
	}
	if o.Debounce <= 0 {
		o.Debounce = DefaultDebounce
	}
	if o.Watchdog <= 0 {
		o.Watchdog = DefaultWatchdog
	}
	return o
}

// Snapshot is an immutable copy of the coordinator's observable state.
type Snapshot struct {
	Query       string
	Items       []Item
	Total       int
	Page        int
	HasMore     bool
	Searching   bool
	LoadingMore bool
	Err         string
}

// Coordinator serializes search state: debounced fresh searches, page
// bookkeeping, duplicate suppression across pages, and loading flags. One
// instance lives for the application session.
//
// Debouncing cancels superseded scheduled searches, and a monotonic request
// sequence drops responses from superseded in-flight requests, so a stale
// network response never overwrites newer results.
type Coordinator struct {
	remote    Remote
	favorites FavoritesSource
	opts      Options
	debounce  *Timer

	mu          sync.Mutex
	query       string
	items       []Item
	seen        map[string]struct{}
	page        int
	total       int
	hasMore     bool
	searching   bool
	loadingMore bool
	lastErr     string
	seq         uint64 // bumped on every fresh search, clear, and empty-query load
	loadSeq     uint64 // bumped on every LoadMore dispatch
	notify      func()
}

func NewCoordinator(remote Remote, favorites FavoritesSource, opts Options) *Coordinator {
	return &Coordinator{
		remote:    remote,
		favorites: favorites,
		opts:      opts.withDefaults(),
		debounce:  NewTimer(),
		seen:      map[string]struct{}{},
		page:      1,
	}
}

// SetNotify registers a callback invoked after every observable state
// change. It runs without the coordinator lock held.
func (c *Coordinator) SetNotify(fn func()) {
	c.mu.Lock()
	c.notify = fn
	c.mu.Unlock()
}

func (c *Coordinator) notifyLocked() func() {
	if c.notify == nil {
		return func() {}
	}
	return c.notify
}

// Snapshot returns a copy of the current state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]Item, len(c.items))
	copy(items, c.items)

	return Snapshot{
		Query:       c.query,
		Items:       items,
		Total:       c.total,
		Page:        c.page,
		HasMore:     c.hasMore,
		Searching:   c.searching,
		LoadingMore: c.loadingMore,
		Err:         c.lastErr,
	}
}

// SetQuery reacts to a query edit. Empty text swaps in the favorites listing
// immediately; non-empty text schedules a debounced fresh search, cancelling
// any not-yet-fired one (last keystroke wins).
func (c *Coordinator) SetQuery(text string) {
	if text == "" {
		c.debounce.Cancel()
		c.loadFavorites()
		return
	}

	c.mu.Lock()
	c.query = text
	c.mu.Unlock()

	c.debounce.Schedule(c.opts.Debounce, func() {
		c.Search(text)
	})
}

// loadFavorites replaces the results with the full favorites listing and
// resets pagination.
func (c *Coordinator) loadFavorites() {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.query = ""
	c.mu.Unlock()

	favorites, err := c.favorites.AllFavorites()

	c.mu.Lock()
	if c.seq != seq {
		c.mu.Unlock()
		return
	}
	if err != nil {
		c.lastErr = err.Error()
	} else {
		c.lastErr = ""
		c.items = make([]Item, 0, len(favorites))
		c.seen = map[string]struct{}{}
		for _, f := range favorites {
			it := FavoriteItem(f)
			c.items = append(c.items, it)
			c.seen[it.ID()] = struct{}{}
		}
	}
	c.page = 1
	c.total = 0
	c.hasMore = false
	c.searching = false
	c.loadingMore = false
	notify := c.notifyLocked()
	c.mu.Unlock()

	notify()
}

// Search runs a fresh search immediately, bypassing the debounce. The
// searching flag is cleared exactly once, by resolution, failure, or the
// watchdog.
func (c *Coordinator) Search(text string) {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.query = text
	c.searching = true
	c.lastErr = ""
	c.page = 1
	c.total = 0
	c.hasMore = false
	notify := c.notifyLocked()
	c.mu.Unlock()

	notify()

	c.watchdog(seq, func() bool { return c.searching }, func() { c.searching = false })

	go func() {
		page, err := c.remote.Search(context.Background(), text, 1, c.opts.PerPage)

		c.mu.Lock()
		if c.seq != seq {
			// A newer search or clear superseded this request.
			c.mu.Unlock()
			return
		}
		c.searching = false
		if err != nil {
			// Results stay untouched on failure; the user retries by
			// re-typing or resubmitting.
			c.lastErr = err.Error()
		} else {
			c.lastErr = ""
			c.items = make([]Item, 0, len(page.Gifs))
			c.seen = map[string]struct{}{}
			for _, g := range page.Gifs {
				it := RemoteItem(g)
				if _, dup := c.seen[it.ID()]; dup {
					continue
				}
				c.items = append(c.items, it)
				c.seen[it.ID()] = struct{}{}
			}
			c.total = page.Total
			c.page = 1
			c.hasMore = len(page.Gifs) > 0 && len(c.items) < c.total
		}
		notify := c.notifyLocked()
		c.mu.Unlock()

		notify()
	}()
}

// LoadMore fetches the next page. It is a no-op without an active non-empty
// query, when pagination is exhausted, or while a previous load is still in
// flight.
func (c *Coordinator) LoadMore() {
	c.mu.Lock()
	if c.query == "" || !c.hasMore || c.loadingMore || c.searching {
		c.mu.Unlock()
		return
	}
	seq := c.seq
	c.loadSeq++
	loadSeq := c.loadSeq
	nextPage := c.page + 1
	query := c.query
	c.loadingMore = true
	notify := c.notifyLocked()
	c.mu.Unlock()

	notify()

	c.watchdog(seq, func() bool { return c.loadSeq == loadSeq && c.loadingMore },
		func() { c.loadingMore = false })

	go func() {
		page, err := c.remote.Search(context.Background(), query, nextPage, c.opts.PerPage)

		c.mu.Lock()
		if c.seq != seq || c.loadSeq != loadSeq {
			c.mu.Unlock()
			return
		}
		c.loadingMore = false
		if err != nil {
			c.lastErr = err.Error()
		} else {
			// Append only identifiers not already present; the page marker
			// still advances by the fetched page.
			for _, g := range page.Gifs {
				it := RemoteItem(g)
				if _, dup := c.seen[it.ID()]; dup {
					continue
				}
				c.items = append(c.items, it)
				c.seen[it.ID()] = struct{}{}
			}
			c.page = nextPage
			if page.Total > 0 {
				c.total = page.Total
			}
			if len(page.Gifs) == 0 || len(c.items) >= c.total {
				c.hasMore = false
			}
		}
		notify := c.notifyLocked()
		c.mu.Unlock()

		notify()
	}()
}

// watchdog force-clears a loading flag if the request outlives the bound
// while still being the current generation.
func (c *Coordinator) watchdog(seq uint64, stuck func() bool, clear func()) {
	time.AfterFunc(c.opts.Watchdog, func() {
		c.mu.Lock()
		if c.seq != seq || !stuck() {
			c.mu.Unlock()
			return
		}
		clear()
		notify := c.notifyLocked()
		c.mu.Unlock()

		notify()
	})
}

// CancelPending drops any scheduled-but-unfired debounced search. In-flight
// requests are unaffected.
func (c *Coordinator) CancelPending() {
	c.debounce.Cancel()
}

// Clear cancels pending work and resets to the initial state.
func (c *Coordinator) Clear() {
	c.debounce.Cancel()

	c.mu.Lock()
	c.seq++
	c.query = ""
	c.items = nil
	c.seen = map[string]struct{}{}
	c.page = 1
	c.total = 0
	c.hasMore = false
	c.searching = false
	c.loadingMore = false
	c.lastErr = ""
	notify := c.notifyLocked()
	c.mu.Unlock()

	notify()
}
