package redirect

import (
	"sync"
	"time"
)

// Navigator is the browsing surface a Launch drives. NavigateSelf replaces
// the current page; OpenNewTab opens a non-opener tab.
type Navigator interface {
	NavigateSelf(url string)
	OpenNewTab(url string)
}

// Launcher executes Plans against a Navigator.
type Launcher struct {
	Nav Navigator
}

// Launch tracks one in-flight deep-link attempt. It is a two-state machine
// (pending, resolved) with a single cancellation shared by the fallback
// timer and the hidden signal: whichever fires first wins, the other
// becomes a no-op. The cleanup deadline tears the watcher down even if
// neither fired.
type Launch struct {
	mu       sync.Mutex
	resolved bool

	fallback *time.Timer
	cleanup  *time.Timer
}

// Start fires the plan. Desktop plans open the web URL in a new tab exactly
// once and come back already resolved. Mobile plans fire the deep link,
// then arm the fallback and cleanup timers; the caller reports visibility
// loss via Hidden.
func (l Launcher) Start(plan Plan) *Launch {
	launch := &Launch{}

	if plan.Strategy == StrategyNewTab || plan.AppURL == "" {
		l.Nav.OpenNewTab(plan.WebURL)
		launch.resolved = true
		return launch
	}

	l.Nav.NavigateSelf(plan.AppURL)

	launch.fallback = time.AfterFunc(plan.FallbackAfter, func() {
		if launch.resolve() {
			// Still visible when the timer fired: the app did not open.
			l.Nav.NavigateSelf(plan.WebURL)
		}
	})

	if plan.CleanupAfter > plan.FallbackAfter {
		launch.cleanup = time.AfterFunc(plan.CleanupAfter, func() {
			launch.resolve()
		})
	}

	return launch
}

// Hidden tells the launch the page was backgrounded, which is read as a
// successful app open. The pending fallback is cancelled on the spot.
func (l *Launch) Hidden() {
	l.resolve()
}

// Cancel tears the launch down without navigating anywhere.
func (l *Launch) Cancel() {
	l.resolve()
}

// Resolved reports whether the launch reached its terminal state.
func (l *Launch) Resolved() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.resolved
}

// resolve transitions pending -> resolved. Returns true for the one caller
// that performed the transition.
func (l *Launch) resolve() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.resolved {
		return false
	}
	l.resolved = true

	if l.fallback != nil {
		l.fallback.Stop()
	}
	if l.cleanup != nil {
		l.cleanup.Stop()
	}
	return true
}
