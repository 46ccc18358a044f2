package diskprovider

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/marmos91/diskprovider/internal/logger"
	"github.com/marmos91/diskprovider/internal/throttle"
	"github.com/marmos91/diskprovider/pkg/diskprovider/watch"
)

// Options configures a Provider at construction.
type Options struct {
	// BufferSize is the streaming-read chunk size. Default 64 KiB.
	BufferSize int

	// UsePolling forces the polling watch backend.
	UsePolling bool
	// PollingExcludes is accepted but not read by the provider: UsePolling
	// alone selects the polling backend for all folders, and exclusions come
	// only from each WatchRecursive request's excludes.
	PollingExcludes []string
	// PollingInterval is the polling period in milliseconds.
	PollingInterval int

	// LegacyWatcher is "on", "off", or "" (absent => heuristic).
	LegacyWatcher string
	// ProductChannel feeds the legacy-watcher heuristic:
	// "stable" prefers legacy for single-folder watch lists.
	ProductChannel string

	Logger *logger.Logger
}

const defaultBufferSize = 64 * 1024

func (o Options) withDefaults() Options {
	if o.BufferSize <= 0 {
		o.BufferSize = defaultBufferSize
	}
	if o.PollingInterval <= 0 {
		o.PollingInterval = 1000
	}
	if o.Logger == nil {
		o.Logger = logger.Default()
	}
	return o
}

// Provider is the local disk filesystem provider: a single object holding
// the descriptor position cache, the watch multiplexer state, and the
// lazily-computed capability bitset.
type Provider struct {
	opts Options
	log  *logger.Logger

	descriptors *descriptorTable

	canFlush atomic.Bool

	capOnce sync.Once
	caps    Capability

	changeEmitter       *emitter[[]FileChange]
	errorEmitter        *emitter[string]
	capabilitiesEmitter *emitter[struct{}]

	watchMu                 sync.Mutex
	recursiveFoldersToWatch []*watchHandle
	backend                 watch.RecursiveWatcher
	refreshDelayer          *throttle.Delayer
}

// NewProvider constructs a Provider. Call Dispose when the owning service
// shuts down.
func NewProvider(opts Options) *Provider {
	opts = opts.withDefaults()

	p := &Provider{
		opts:                opts,
		log:                 opts.Logger,
		descriptors:         newDescriptorTable(),
		changeEmitter:       newEmitter[[]FileChange](),
		errorEmitter:        newEmitter[string](),
		capabilitiesEmitter: newEmitter[struct{}](),
	}
	p.canFlush.Store(true)
	p.refreshDelayer = throttle.New(0)
	return p
}

// Capabilities returns the static capability bitset, computed on first call.
func (p *Provider) Capabilities() Capability {
	p.capOnce.Do(func() {
		caps := CapFileReadWrite | CapFileOpenReadWriteClose | CapFileReadStream |
			CapFileFolderCopy | CapFileWriteUnlock
		if isCaseSensitiveFS() {
			caps |= CapPathCaseSensitive
		}
		p.caps = caps
	})
	return p.caps
}

// OnDidChangeFile subscribes to change-batch events from the watch multiplexer.
func (p *Provider) OnDidChangeFile(fn func([]FileChange)) (unsubscribe func()) {
	return p.changeEmitter.Subscribe(fn)
}

// OnDidErrorOccur subscribes to error-message events (e.g. watcher failures).
func (p *Provider) OnDidErrorOccur(fn func(string)) (unsubscribe func()) {
	return p.errorEmitter.Subscribe(fn)
}

// OnDidChangeCapabilities subscribes to capability-change notifications.
// This implementation's bitset never changes post-construction, so this
// emitter is always silent.
func (p *Provider) OnDidChangeCapabilities(fn func()) (unsubscribe func()) {
	return p.capabilitiesEmitter.Subscribe(func(struct{}) { fn() })
}

// Dispose releases the active watcher backend and stops the refresh
// delayer. It does not remove listeners registered on the event emitters.
func (p *Provider) Dispose() {
	p.watchMu.Lock()
	backend := p.backend
	p.backend = nil
	p.watchMu.Unlock()

	if backend != nil {
		backend.Dispose()
	}
	p.refreshDelayer.Stop()
}

// OpenDescriptorCount reports how many file descriptors are currently open
// through this provider, mirroring dittofs's FDCache.Stats() hook.
func (p *Provider) OpenDescriptorCount() int {
	return p.descriptors.count()
}

func isCaseSensitiveFS() bool {
	return runtime.GOOS == "linux"
}
