package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/staconn/staconn-go/pkg/log"
)

var traceStart = time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC)

// writeTrace writes events to a new trace file and returns its path.
func writeTrace(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trace"+log.FileExt)
	fl, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	for _, e := range events {
		fl.Log(e)
	}
	if err := fl.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return path
}

// sessionTrace is one session that reattempts once, connects, then
// disconnects on request, followed by a second session that fails.
func sessionTrace() []log.Event {
	at := func(ms int) time.Time { return traceStart.Add(time.Duration(ms) * time.Millisecond) }
	const s1 = "11111111-aaaa-bbbb-cccc-000000000001"
	const s2 = "22222222-aaaa-bbbb-cccc-000000000002"

	return []log.Event{
		{Timestamp: at(0), SessionID: s1, Interface: "sta0", SSID: "home", Layer: log.LayerController, Category: log.CategoryState,
			StateChange: &log.StateChangeEvent{OldState: "IDLE", NewState: "CONNECTING", Reason: "connect"}},
		{Timestamp: at(10), SessionID: s1, Interface: "sta0", Layer: log.LayerLink, Category: log.CategoryRaw,
			Raw: &log.RawEvent{Kind: log.RawLinkDown, Reason: 201, ReasonName: "NO_AP_FOUND"}},
		{Timestamp: at(11), SessionID: s1, Interface: "sta0", Layer: log.LayerController, Category: log.CategoryRetry,
			Retry: &log.RetryEvent{Action: log.RetryReattempt, Attempt: 1, MaxRetries: 5, Reason: 201, Delay: 500 * time.Millisecond}},
		{Timestamp: at(520), SessionID: s1, Interface: "sta0", Layer: log.LayerLink, Category: log.CategoryRaw,
			Raw: &log.RawEvent{Kind: log.RawLinkUp, BSSID: "02:00:00:00:10:01", Channel: 6}},
		{Timestamp: at(530), SessionID: s1, Interface: "sta0", Layer: log.LayerAddress, Category: log.CategoryRaw,
			Raw: &log.RawEvent{Kind: log.RawGotIP, Address: "192.168.4.2", Netmask: "255.255.255.0", Gateway: "192.168.4.1"}},
		{Timestamp: at(531), SessionID: s1, Interface: "sta0", Layer: log.LayerController, Category: log.CategoryLifecycle,
			Lifecycle: &log.LifecycleEvent{Kind: log.LifecycleSucceeded, Address: "192.168.4.2", Netmask: "255.255.255.0", Gateway: "192.168.4.1"}},
		{Timestamp: at(900), SessionID: s1, Interface: "sta0", Layer: log.LayerLink, Category: log.CategoryRaw,
			Raw: &log.RawEvent{Kind: log.RawLinkDown, Reason: 207, ReasonName: "ROAMING"}},
		{Timestamp: at(901), SessionID: s1, Interface: "sta0", Layer: log.LayerController, Category: log.CategoryRetry,
			Retry: &log.RetryEvent{Action: log.RetrySuppressed, MaxRetries: 5, Reason: 207}},
		{Timestamp: at(2000), SessionID: s1, Interface: "sta0", Layer: log.LayerController, Category: log.CategoryLifecycle,
			Lifecycle: &log.LifecycleEvent{Kind: log.LifecycleDisconnected, Reason: "REQUESTED"}},
		{Timestamp: at(2001), SessionID: s1, Interface: "sta0", Layer: log.LayerLink, Category: log.CategoryRaw,
			Raw: &log.RawEvent{Kind: log.RawLinkDown, Reason: 8, ReasonName: "ASSOC_LEAVE", Stale: true}},

		{Timestamp: at(5000), SessionID: s2, Interface: "sta0", SSID: "home", Layer: log.LayerController, Category: log.CategoryState,
			StateChange: &log.StateChangeEvent{OldState: "IDLE", NewState: "CONNECTING"}},
		{Timestamp: at(5001), SessionID: s2, Interface: "sta0", Layer: log.LayerController, Category: log.CategoryError,
			Error: &log.ErrorEventData{Layer: log.LayerLink, Message: "driver fault", Context: "reassociate", Fatal: true}},
		{Timestamp: at(5002), SessionID: s2, Interface: "sta0", Layer: log.LayerController, Category: log.CategoryLifecycle,
			Lifecycle: &log.LifecycleEvent{Kind: log.LifecycleFailed}},
	}
}
