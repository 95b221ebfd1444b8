package client

import (
	"sync"
	"testing"
	"time"

	"devconnect/internal/model"
)

func TestStore_DispatchNotifiesSubscribers(t *testing.T) {
	store := NewStore()

	var mu sync.Mutex
	var snapshots []State
	unsubscribe := store.Subscribe(func(s State) {
		mu.Lock()
		snapshots = append(snapshots, s)
		mu.Unlock()
	})

	store.Dispatch(Outcome{Kind: OutcomeUserLoaded, User: &model.User{ID: 1}})

	mu.Lock()
	if len(snapshots) != 1 || !snapshots[0].Auth.IsAuthenticated {
		t.Fatalf("snapshots = %v, want one authenticated snapshot", snapshots)
	}
	mu.Unlock()

	unsubscribe()
	store.Dispatch(Outcome{Kind: OutcomeLoggedOut})

	mu.Lock()
	if len(snapshots) != 1 {
		t.Error("unsubscribed listener was still notified")
	}
	mu.Unlock()

	if store.State().Auth.IsAuthenticated {
		t.Error("state must reflect the logout regardless of listeners")
	}
}

func TestStore_StateIsSnapshot(t *testing.T) {
	store := NewStore()
	store.Dispatch(Outcome{Kind: OutcomePostsLoaded, Posts: []model.Post{{ID: 1}}})

	before := store.State()
	store.Dispatch(Outcome{Kind: OutcomePostDeleted, PostID: 1})

	if len(before.Posts.Posts) != 1 {
		t.Error("earlier snapshot changed after a later dispatch")
	}
	if len(store.State().Posts.Posts) != 0 {
		t.Error("current state missing the deletion")
	}
}

func TestStore_RaiseAlertExpires(t *testing.T) {
	store := NewStoreWithAlertTTL(20 * time.Millisecond)

	expired := make(chan struct{})
	store.Subscribe(func(s State) {
		if len(s.Alerts) == 0 {
			select {
			case <-expired:
			default:
				close(expired)
			}
		}
	})

	id := store.RaiseAlert("profile saved", "success")

	state := store.State()
	if len(state.Alerts) != 1 || state.Alerts[0].ID != id {
		t.Fatalf("alerts = %v, want the raised alert", state.Alerts)
	}

	select {
	case <-expired:
	case <-time.After(time.Second):
		t.Fatal("alert did not expire")
	}

	if len(store.State().Alerts) != 0 {
		t.Error("alert still present after expiry")
	}
}

func TestStore_DismissAlertEarly(t *testing.T) {
	store := NewStoreWithAlertTTL(time.Hour)

	id := store.RaiseAlert("oops", "danger")
	store.DismissAlert(id)

	if len(store.State().Alerts) != 0 {
		t.Error("alert still present after dismissal")
	}

	// Dismissing again is a no-op.
	store.DismissAlert(id)
	if len(store.State().Alerts) != 0 {
		t.Error("repeat dismissal changed state")
	}
}

func TestStore_ConcurrentDispatches(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			store.Dispatch(Outcome{Kind: OutcomePostCreated, Post: &model.Post{ID: n}})
		}(int64(i))
	}
	wg.Wait()

	if got := len(store.State().Posts.Posts); got != 50 {
		t.Errorf("post count = %d, want 50", got)
	}
}
