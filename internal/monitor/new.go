package monitor

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	lru "github.com/hashicorp/golang-lru/v2"

	"inkscan/internal/model"
	pkgLog "inkscan/pkg/log"
)

const (
	// minPollInterval is the enforced floor to prevent runaway polling.
	minPollInterval = 5 * time.Second

	defaultDedupSize = 512

	recentEventsCap = 100
)

// Config holds the monitor's tunables.
type Config struct {
	WatchFolder  string
	Pattern      string        // Glob over the bare filename; "" means "*"
	Extensions   []string      // Allow-list; empty means png/jpg/jpeg
	PollInterval time.Duration // Clamped to minPollInterval
	DedupSize    int           // Session dedup LRU capacity
}

// Deps are the monitor's injected collaborators. Lister defaults to a
// FolderLister over WatchFolder. PostAction, Notifier, Clock, and Watcher
// are optional.
type Deps struct {
	Lister     Lister
	Processor  Processor
	PostAction PostAction
	State      StateStore
	Notifier   Notifier
	Clock      func() time.Time
	Watcher    *fsnotify.Watcher
}

// Monitor discovers files dropped into a watch folder and feeds them
// through the scan pipeline, at most once per file across restarts.
type Monitor struct {
	l   pkgLog.Logger
	cfg Config

	lister     Lister
	processor  Processor
	postAction PostAction
	stateStore StateStore
	notifier   Notifier
	clock      func() time.Time
	watcher    *fsnotify.Watcher

	filter   *fileFilter
	dedup    *lru.Cache[string, struct{}]
	interval time.Duration

	mu      sync.Mutex
	status  Status
	last    time.Time
	polling bool
	recent  []model.ScanEvent

	stopCh chan struct{}
	wakeCh chan struct{}
	wg     sync.WaitGroup
}

// New creates a monitor. It does not start polling; call Start.
func New(l pkgLog.Logger, cfg Config, deps Deps) (*Monitor, error) {
	if deps.Processor == nil {
		return nil, fmt.Errorf("monitor: processor is required")
	}
	if deps.State == nil {
		return nil, fmt.Errorf("monitor: state store is required")
	}

	filter, err := newFileFilter(cfg.Pattern, cfg.Extensions)
	if err != nil {
		return nil, fmt.Errorf("monitor: pattern %q: %w", cfg.Pattern, err)
	}

	size := cfg.DedupSize
	if size <= 0 {
		size = defaultDedupSize
	}
	dedup, err := lru.New[string, struct{}](size)
	if err != nil {
		return nil, fmt.Errorf("monitor: dedup cache: %w", err)
	}

	interval := cfg.PollInterval
	if interval < minPollInterval {
		interval = minPollInterval
	}

	lister := deps.Lister
	if lister == nil {
		lister = NewFolderLister(cfg.WatchFolder)
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Monitor{
		l:          l,
		cfg:        cfg,
		lister:     lister,
		processor:  deps.Processor,
		postAction: deps.PostAction,
		stateStore: deps.State,
		notifier:   deps.Notifier,
		clock:      clock,
		watcher:    deps.Watcher,
		filter:     filter,
		dedup:      dedup,
		interval:   interval,
		status:     StatusStopped,
		wakeCh:     make(chan struct{}, 1),
	}, nil
}
