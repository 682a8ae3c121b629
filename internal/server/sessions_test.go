package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"discovery-space/internal/db"
	"discovery-space/internal/services"
	"discovery-space/internal/web"

	"github.com/gin-gonic/gin"
)

func newSessionContext(cookie *http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		c.Request.AddCookie(cookie)
	}
	return c, recorder
}

func sessionCookieFrom(t *testing.T, recorder *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == sessionCookie {
			return cookie
		}
	}
	t.Fatalf("expected %s cookie to be set", sessionCookie)
	return nil
}

func TestSessionStoreFlashesAndCursor(t *testing.T) {
	store := newSessionStore(newMemorySessions(time.Hour))

	c, recorder := newSessionContext(nil)
	store.AddFlash(c, web.FlashError, "first")
	store.AddFlash(c, web.FlashSuccess, "second")
	store.AddFlash(c, web.FlashSuccess, "")
	store.SetCursor(c, services.ChallengeCursor{Active: true, GameID: 7, Index: 2})
	cookie := sessionCookieFrom(t, recorder)
	if cookies := len(recorder.Result().Cookies()); cookies != 1 {
		t.Fatalf("expected a single cookie for one request, got %d", cookies)
	}

	next, _ := newSessionContext(cookie)
	flashes := store.PopFlashes(next)
	if len(flashes) != 2 || flashes[0].Message != "first" || flashes[1].Category != web.FlashSuccess {
		t.Fatalf("expected flashes in order, got %+v", flashes)
	}
	if again := store.PopFlashes(next); len(again) != 0 {
		t.Fatalf("expected flashes to be consumed, got %+v", again)
	}
	if cursor := store.Cursor(next); cursor.GameID != 7 || cursor.Index != 2 {
		t.Fatalf("expected cursor to persist, got %+v", cursor)
	}
}

func TestSessionStoreConcurrentCursorMoves(t *testing.T) {
	store := newSessionStore(newMemorySessions(time.Hour))
	c, recorder := newSessionContext(nil)
	store.SetCursor(c, services.ChallengeCursor{Active: true, GameID: 1})
	cookie := sessionCookieFrom(t, recorder)

	const moves = 20
	var wg sync.WaitGroup
	for i := 0; i < moves; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			request, _ := newSessionContext(cookie)
			store.UpdateCursor(request, (*services.ChallengeCursor).Next)
		}()
	}
	wg.Wait()

	check, _ := newSessionContext(cookie)
	if cursor := store.Cursor(check); cursor.Index != moves {
		t.Fatalf("expected index %d after concurrent moves, got %d", moves, cursor.Index)
	}
}

func TestSessionStoreReset(t *testing.T) {
	store := newSessionStore(newMemorySessions(time.Hour))

	c, recorder := newSessionContext(nil)
	store.SetUser(c, 3)
	cookie := sessionCookieFrom(t, recorder)

	next, nextRecorder := newSessionContext(cookie)
	if got := store.UserID(next); got != 3 {
		t.Fatalf("expected user 3, got %d", got)
	}
	store.Reset(next)
	if got := store.UserID(next); got != 0 {
		t.Fatalf("expected reset session to be anonymous, got %d", got)
	}
	fresh := sessionCookieFrom(t, nextRecorder)
	if fresh.Value == cookie.Value {
		t.Fatalf("expected a new session id after reset")
	}

	stale, _ := newSessionContext(cookie)
	if got := store.UserID(stale); got != 0 {
		t.Fatalf("expected old session to be gone, got user %d", got)
	}
}

func TestMemorySessionsExpire(t *testing.T) {
	sessions := newMemorySessions(time.Minute)
	ctx := context.Background()
	if err := sessions.Save(ctx, "abc", sessionData{UserID: 1}); err != nil {
		t.Fatalf("save: %v", err)
	}
	item := sessions.items["abc"]
	item.touched = time.Now().Add(-2 * time.Minute)
	sessions.items["abc"] = item

	data, err := sessions.Load(ctx, "abc")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if data.UserID != 0 {
		t.Fatalf("expected expired session to load empty, got %+v", data)
	}
}

func TestDBSessionsRoundTripAndPrune(t *testing.T) {
	conn := setupTestDB(t)
	sessions := newDBSessions(conn, time.Hour)
	ctx := context.Background()

	saved := sessionData{
		UserID:    4,
		Flashes:   []web.Flash{{Category: web.FlashError, Message: "Invalid title."}},
		Challenge: services.ChallengeCursor{Active: true, GameID: 9, Index: 1},
	}
	if err := sessions.Save(ctx, "one", saved); err != nil {
		t.Fatalf("save: %v", err)
	}
	saved.Flashes = nil
	saved.Challenge.Index = 2
	if err := sessions.Save(ctx, "one", saved); err != nil {
		t.Fatalf("save again: %v", err)
	}

	loaded, err := sessions.Load(ctx, "one")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.UserID != 4 || loaded.Challenge.Index != 2 || !loaded.Challenge.Active || len(loaded.Flashes) != 0 {
		t.Fatalf("expected upserted session, got %+v", loaded)
	}

	if err := sessions.Save(ctx, "two", sessionData{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := conn.Model(&db.Session{}).Where("id = ?", "two").
		UpdateColumn("updated_at", time.Now().Add(-2*time.Hour)).Error; err != nil {
		t.Fatalf("age session: %v", err)
	}
	removed, err := sessions.Prune(ctx)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 pruned session, got %d", removed)
	}

	if err := sessions.Delete(ctx, "one"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if loaded, _ := sessions.Load(ctx, "one"); loaded.UserID != 0 {
		t.Fatalf("expected deleted session to load empty, got %+v", loaded)
	}
}

func TestRunJanitorStopsWithContext(t *testing.T) {
	store := newSessionStore(newDBSessions(setupTestDB(t), time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		store.RunJanitor(ctx, 5*time.Millisecond)
		close(done)
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("expected janitor to stop after cancel")
	}
}
