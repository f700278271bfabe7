package redirect

import (
	"sync"
	"testing"
	"time"
)

type recordingNav struct {
	mu      sync.Mutex
	self    []string
	newTabs []string
}

func (n *recordingNav) NavigateSelf(url string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.self = append(n.self, url)
}

func (n *recordingNav) OpenNewTab(url string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.newTabs = append(n.newTabs, url)
}

func (n *recordingNav) selfCalls() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.self...)
}

func (n *recordingNav) newTabCalls() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.newTabs...)
}

func mobilePlan(fallback, cleanup time.Duration) Plan {
	return Plan{
		Platform:      PlatformIOS,
		Strategy:      StrategyUniversalLink,
		AppURL:        "https://www.amazon.com/dp/B08SGC46M9?tag=ndmlabs-20",
		WebURL:        "https://www.amazon.com/dp/B08SGC46M9?tag=ndmlabs-20&x=web",
		FallbackAfter: fallback,
		CleanupAfter:  cleanup,
	}
}

func TestLauncher_DesktopOpensOneTab(t *testing.T) {
	nav := &recordingNav{}
	l := Launcher{Nav: nav}

	launch := l.Start(Plan{
		Platform: PlatformDesktop,
		Strategy: StrategyNewTab,
		WebURL:   "https://www.amazon.com/dp/B08SGC46M9?tag=ndmlabs-20",
	})

	if !launch.Resolved() {
		t.Fatalf("desktop launch should resolve immediately")
	}
	if tabs := nav.newTabCalls(); len(tabs) != 1 {
		t.Fatalf("expected exactly one new tab, got %d", len(tabs))
	}
	if calls := nav.selfCalls(); len(calls) != 0 {
		t.Fatalf("desktop must not navigate the current page: %#v", calls)
	}
}

func TestLauncher_FallbackFiresWhenStillVisible(t *testing.T) {
	nav := &recordingNav{}
	l := Launcher{Nav: nav}

	plan := mobilePlan(20*time.Millisecond, 30*time.Millisecond)
	launch := l.Start(plan)

	waitFor(t, 500*time.Millisecond, func() bool {
		return len(nav.selfCalls()) == 2
	})

	calls := nav.selfCalls()
	if calls[0] != plan.AppURL || calls[1] != plan.WebURL {
		t.Fatalf("expected app link then web fallback, got %#v", calls)
	}
	if !launch.Resolved() {
		t.Fatalf("launch should be resolved after fallback")
	}
}

func TestLauncher_HiddenCancelsFallback(t *testing.T) {
	nav := &recordingNav{}
	l := Launcher{Nav: nav}

	plan := mobilePlan(30*time.Millisecond, 50*time.Millisecond)
	launch := l.Start(plan)

	// The page backgrounds right away: the app opened.
	launch.Hidden()

	time.Sleep(80 * time.Millisecond)

	if calls := nav.selfCalls(); len(calls) != 1 {
		t.Fatalf("fallback should have been cancelled, got %#v", calls)
	}
	if !launch.Resolved() {
		t.Fatalf("hidden signal should resolve the launch")
	}
}

func TestLauncher_HiddenAfterFallbackIsNoOp(t *testing.T) {
	nav := &recordingNav{}
	l := Launcher{Nav: nav}

	launch := l.Start(mobilePlan(10*time.Millisecond, 20*time.Millisecond))

	waitFor(t, 500*time.Millisecond, func() bool {
		return len(nav.selfCalls()) == 2
	})

	launch.Hidden()
	launch.Hidden()

	if calls := nav.selfCalls(); len(calls) != 2 {
		t.Fatalf("extra navigations after resolution: %#v", calls)
	}
}

func TestLauncher_CleanupResolvesWithoutNavigating(t *testing.T) {
	nav := &recordingNav{}
	l := Launcher{Nav: nav}

	// Fallback cancelled by Hidden, cleanup still tears the watcher down.
	launch := l.Start(mobilePlan(10*time.Millisecond, 25*time.Millisecond))
	launch.Hidden()

	time.Sleep(50 * time.Millisecond)

	if !launch.Resolved() {
		t.Fatalf("expected resolved launch")
	}
	if calls := nav.selfCalls(); len(calls) != 1 {
		t.Fatalf("cleanup must not navigate, got %#v", calls)
	}
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}
