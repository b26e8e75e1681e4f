package handlers_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/go-telegram/bot/models"

	"bizwatchbot/internal/bot/handlers"
	"bizwatchbot/internal/config"
	"bizwatchbot/internal/notify"
	"bizwatchbot/internal/snapshot"
	"bizwatchbot/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStore is an in-memory Store recording delete calls.
type fakeStore struct {
	snaps       map[string]*snapshot.MessageSnapshot
	adminID     int64
	deleteCalls [][]int
	saveErr     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{snaps: map[string]*snapshot.MessageSnapshot{}}
}

func key(chatID int64, messageID int) string {
	return fmt.Sprintf("%d:%d", chatID, messageID)
}

func (f *fakeStore) Ping(context.Context) error { return nil }

func (f *fakeStore) PutSnapshot(_ context.Context, snap *snapshot.MessageSnapshot) error {
	f.snaps[key(snap.ChatID, snap.MessageID)] = snap
	return nil
}

func (f *fakeStore) GetSnapshot(_ context.Context, chatID int64, messageID int) (*snapshot.MessageSnapshot, error) {
	return f.snaps[key(chatID, messageID)], nil
}

func (f *fakeStore) GetSnapshotBatch(_ context.Context, chatID int64, messageIDs []int) ([]*snapshot.MessageSnapshot, error) {
	snaps := make([]*snapshot.MessageSnapshot, len(messageIDs))
	for i, id := range messageIDs {
		snaps[i] = f.snaps[key(chatID, id)]
	}
	return snaps, nil
}

func (f *fakeStore) DeleteSnapshots(_ context.Context, chatID int64, messageIDs []int) error {
	f.deleteCalls = append(f.deleteCalls, messageIDs)
	for _, id := range messageIDs {
		delete(f.snaps, key(chatID, id))
	}
	return nil
}

func (f *fakeStore) LoadAdminID(context.Context) (int64, error) { return f.adminID, nil }

func (f *fakeStore) SaveAdminID(_ context.Context, id int64) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.adminID = id
	return nil
}

// transportCall records one invocation of a fake transport method.
type transportCall struct {
	op      string
	chatID  int64
	caption string
}

// fakeTransport implements notify.Transport, recording calls, with optional
// per-op failures.
type fakeTransport struct {
	calls   []transportCall
	failOps map[string]error
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{failOps: map[string]error{}}
}

func (f *fakeTransport) record(op string, chatID int64, caption string) error {
	if err, ok := f.failOps[op]; ok {
		return err
	}
	f.calls = append(f.calls, transportCall{op: op, chatID: chatID, caption: caption})
	return nil
}

func (f *fakeTransport) SendText(_ context.Context, chatID int64, text string) error {
	return f.record("text", chatID, text)
}

func (f *fakeTransport) SendPhoto(_ context.Context, chatID int64, _, caption string) error {
	return f.record("photo", chatID, caption)
}

func (f *fakeTransport) SendVideo(_ context.Context, chatID int64, _, caption string) error {
	return f.record("video", chatID, caption)
}

func (f *fakeTransport) SendDocument(_ context.Context, chatID int64, _, caption string) error {
	return f.record("document", chatID, caption)
}

func (f *fakeTransport) SendAnimation(_ context.Context, chatID int64, _, caption string) error {
	return f.record("animation", chatID, caption)
}

func (f *fakeTransport) SendSticker(_ context.Context, chatID int64, _ string) error {
	return f.record("sticker", chatID, "")
}

func (f *fakeTransport) SendVoice(_ context.Context, chatID int64, _, caption string) error {
	return f.record("voice", chatID, caption)
}

func (f *fakeTransport) SendVideoNote(_ context.Context, chatID int64, _ string) error {
	return f.record("video_note", chatID, "")
}

func (f *fakeTransport) ops() []string {
	ops := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		ops = append(ops, c.op)
	}
	return ops
}

// messengerCall records one fake messenger invocation.
type messengerCall struct {
	op     string
	chatID int64
	text   string
}

type fakeMessenger struct {
	calls []messengerCall
}

func (f *fakeMessenger) SendTextWithKeyboard(_ context.Context, chatID int64, text string, _ models.ReplyMarkup) error {
	f.calls = append(f.calls, messengerCall{op: "text_keyboard", chatID: chatID, text: text})
	return nil
}

func (f *fakeMessenger) AnswerCallbackQuery(_ context.Context, queryID string) error {
	f.calls = append(f.calls, messengerCall{op: "answer_callback", text: queryID})
	return nil
}

func (f *fakeMessenger) DeleteMessage(_ context.Context, chatID int64, messageID int) error {
	f.calls = append(f.calls, messengerCall{op: "delete_message", chatID: chatID, text: fmt.Sprint(messageID)})
	return nil
}

// testEnv bundles the fakes behind a HandlerDeps.
type testEnv struct {
	deps      handlers.HandlerDeps
	store     *fakeStore
	transport *fakeTransport
	messenger *fakeMessenger
	admin     *store.AdminIdentity
}

func newTestEnv(t *testing.T, adminID int64) *testEnv {
	t.Helper()

	fs := newFakeStore()
	fs.adminID = adminID

	admin := store.NewAdminIdentity(fs)
	if err := admin.Load(context.Background()); err != nil {
		t.Fatalf("admin.Load: %v", err)
	}

	renderer, err := notify.NewRenderer("Europe/Moscow")
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	transport := newFakeTransport()
	messenger := &fakeMessenger{}

	cfg := &config.Config{}
	cfg.Messages.Welcome = "welcome text"
	cfg.Notify.BatchPause = time.Millisecond

	return &testEnv{
		deps: handlers.HandlerDeps{
			Logger:     testLogger(),
			Config:     cfg,
			Store:      fs,
			Admin:      admin,
			Renderer:   renderer,
			Dispatcher: notify.NewDispatcher(transport, nil),
			Messenger:  messenger,
		},
		store:     fs,
		transport: transport,
		messenger: messenger,
		admin:     admin,
	}
}

const adminID = int64(9000)

func TestStartHandlerRegistersAdministrator(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, 0)
	handle := handlers.NewStartHandler(env.deps)

	update := &models.Update{
		Message: &models.Message{
			ID:   1,
			Chat: models.Chat{ID: 555},
			From: &models.User{ID: 555, Username: "boss"},
			Text: "/start",
		},
	}
	handle(context.Background(), nil, update)

	if id, ok := env.admin.ID(); !ok || id != 555 {
		t.Errorf("admin ID = (%d, %v), want (555, true)", id, ok)
	}
	if env.store.adminID != 555 {
		t.Errorf("persisted admin ID = %d, want 555", env.store.adminID)
	}
	if len(env.messenger.calls) != 1 || env.messenger.calls[0].op != "text_keyboard" {
		t.Fatalf("messenger calls = %+v, want one confirmation", env.messenger.calls)
	}
	if env.messenger.calls[0].text != "welcome text" {
		t.Errorf("confirmation text = %q", env.messenger.calls[0].text)
	}
}

func TestStartHandlerKeepsCacheOnPersistError(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, 0)
	env.store.saveErr = errors.New("backend down")
	handle := handlers.NewStartHandler(env.deps)

	update := &models.Update{
		Message: &models.Message{
			ID:   1,
			Chat: models.Chat{ID: 555},
			From: &models.User{ID: 555},
		},
	}
	handle(context.Background(), nil, update)

	if id, ok := env.admin.ID(); !ok || id != 555 {
		t.Errorf("admin ID = (%d, %v), want cached (555, true)", id, ok)
	}
}

func TestBusinessHandlerSnapshotsMessages(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, adminID)
	handle := handlers.NewBusinessHandler(env.deps)

	update := &models.Update{
		BusinessMessage: &models.Message{
			ID:   10,
			Chat: models.Chat{ID: -200},
			From: &models.User{ID: 1, Username: "alice"},
			Date: 1700000000,
			Text: "original",
		},
	}
	handle(context.Background(), nil, update)

	snap, _ := env.store.GetSnapshot(context.Background(), -200, 10)
	if snap == nil || snap.Text != "original" {
		t.Errorf("snapshot = %+v, want stored text %q", snap, "original")
	}
	if len(env.transport.calls) != 0 {
		t.Errorf("unexpected sends: %v", env.transport.ops())
	}
}

func TestBusinessHandlerSkipsWithoutAdministrator(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, 0)
	handle := handlers.NewBusinessHandler(env.deps)

	update := &models.Update{
		BusinessMessage: &models.Message{
			ID:   10,
			Chat: models.Chat{ID: -200},
			From: &models.User{ID: 1},
			Text: "original",
		},
	}
	handle(context.Background(), nil, update)

	if len(env.store.snaps) != 0 {
		t.Errorf("snapshot stored without administrator: %v", env.store.snaps)
	}
}

func TestBusinessHandlerRelaysEffectReply(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, adminID)
	handle := handlers.NewBusinessHandler(env.deps)

	update := &models.Update{
		BusinessMessage: &models.Message{
			ID:   11,
			Chat: models.Chat{ID: -200},
			From: &models.User{ID: 1},
			Text: "got it!",
			ReplyToMessage: &models.Message{
				ID:       10,
				Chat:     models.Chat{ID: -200},
				From:     &models.User{ID: 2, Username: "alice"},
				Date:     1700000000,
				EffectID: "view-once",
				Photo:    []models.PhotoSize{{FileID: "p1"}},
			},
		},
	}
	handle(context.Background(), nil, update)

	if got := env.transport.ops(); fmt.Sprint(got) != fmt.Sprint([]string{"photo"}) {
		t.Fatalf("ops = %v, want one photo send", got)
	}
	call := env.transport.calls[0]
	if call.chatID != adminID {
		t.Errorf("sent to %d, want administrator %d", call.chatID, adminID)
	}
	for _, want := range []string{"view-once photo", "got it!"} {
		if !strings.Contains(call.caption, want) {
			t.Errorf("caption missing %q:\n%s", want, call.caption)
		}
	}
}

func TestEditedHandlerTextScenario(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, adminID)

	// Observe the message first so a prior snapshot exists.
	observe := handlers.NewBusinessHandler(env.deps)
	observe(context.Background(), nil, &models.Update{
		BusinessMessage: &models.Message{
			ID:   10,
			Chat: models.Chat{ID: -200},
			From: &models.User{ID: 1, Username: "alice"},
			Date: 1700000000, // 01:13:20 Moscow
			Text: "first version",
		},
	})

	handle := handlers.NewEditedHandler(env.deps)
	handle(context.Background(), nil, &models.Update{
		EditedBusinessMessage: &models.Message{
			ID:       10,
			Chat:     models.Chat{ID: -200},
			From:     &models.User{ID: 1, Username: "alice"},
			Date:     1700000000,
			EditDate: 1700003600, // one hour later
			Text:     "second version",
		},
	})

	if got := env.transport.ops(); fmt.Sprint(got) != fmt.Sprint([]string{"text"}) {
		t.Fatalf("ops = %v, want exactly one text send", got)
	}
	caption := env.transport.calls[0].caption
	for _, want := range []string{"✏️ Message edited", "@alice", "01:13:20", "02:13:20", "second version"} {
		if !strings.Contains(caption, want) {
			t.Errorf("caption missing %q:\n%s", want, caption)
		}
	}

	snap, _ := env.store.GetSnapshot(context.Background(), -200, 10)
	if snap == nil || snap.Text != "second version" {
		t.Errorf("stored snapshot = %+v, want replacement", snap)
	}
}

func TestEditedHandlerDropsUntrackedMessage(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, adminID)
	handle := handlers.NewEditedHandler(env.deps)

	handle(context.Background(), nil, &models.Update{
		EditedBusinessMessage: &models.Message{
			ID:       99,
			Chat:     models.Chat{ID: -200},
			From:     &models.User{ID: 1},
			EditDate: 1700003600,
			Text:     "edited",
		},
	})

	if len(env.transport.calls) != 0 {
		t.Errorf("unexpected sends for untracked edit: %v", env.transport.ops())
	}
	// The edited version still replaces the (missing) snapshot.
	if snap, _ := env.store.GetSnapshot(context.Background(), -200, 99); snap == nil {
		t.Error("edited snapshot not stored")
	}
}

func TestDeletedHandlerBatchScenario(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, adminID)

	put := func(id int, mutate func(*snapshot.MessageSnapshot)) {
		snap := &snapshot.MessageSnapshot{
			ChatID:    -200,
			MessageID: id,
			From:      &snapshot.Sender{ID: 1, Username: "alice"},
			SentAt:    time.Unix(1700000000, 0),
		}
		mutate(snap)
		if err := env.store.PutSnapshot(context.Background(), snap); err != nil {
			t.Fatalf("PutSnapshot: %v", err)
		}
	}
	put(1, func(s *snapshot.MessageSnapshot) { s.PhotoFileID = "p1" })
	put(3, func(s *snapshot.MessageSnapshot) { s.Text = "bye" })

	handle := handlers.NewDeletedHandler(env.deps)
	handle(context.Background(), nil, &models.Update{
		DeletedBusinessMessages: &models.BusinessMessagesDeleted{
			Chat:       models.Chat{ID: -200},
			MessageIDs: []int{1, 2, 3},
		},
	})

	if got := env.transport.ops(); fmt.Sprint(got) != fmt.Sprint([]string{"photo", "text"}) {
		t.Fatalf("ops = %v, want [photo text]", got)
	}
	if len(env.store.deleteCalls) != 1 {
		t.Fatalf("deleteCalls = %v, want exactly one batched delete", env.store.deleteCalls)
	}
	if got := env.store.deleteCalls[0]; fmt.Sprint(got) != fmt.Sprint([]int{1, 3}) {
		t.Errorf("deleted keys = %v, want [1 3]", got)
	}
}

func TestDeletedHandlerUntrackedKeysProduceNothing(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, adminID)
	handle := handlers.NewDeletedHandler(env.deps)

	handle(context.Background(), nil, &models.Update{
		DeletedBusinessMessages: &models.BusinessMessagesDeleted{
			Chat:       models.Chat{ID: -200},
			MessageIDs: []int{7, 8},
		},
	})

	if len(env.transport.calls) != 0 {
		t.Errorf("unexpected sends: %v", env.transport.ops())
	}
	if len(env.store.deleteCalls) != 0 {
		t.Errorf("unexpected delete calls: %v", env.store.deleteCalls)
	}
}

func TestDeletedHandlerVideoFailureFallsBack(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, adminID)
	env.transport.failOps["video"] = errors.New("file reference expired")

	if err := env.store.PutSnapshot(context.Background(), &snapshot.MessageSnapshot{
		ChatID:      -200,
		MessageID:   1,
		From:        &snapshot.Sender{ID: 1},
		VideoFileID: "v1",
	}); err != nil {
		t.Fatalf("PutSnapshot: %v", err)
	}

	handle := handlers.NewDeletedHandler(env.deps)
	handle(context.Background(), nil, &models.Update{
		DeletedBusinessMessages: &models.BusinessMessagesDeleted{
			Chat:       models.Chat{ID: -200},
			MessageIDs: []int{1},
		},
	})

	if got := env.transport.ops(); fmt.Sprint(got) != fmt.Sprint([]string{"text"}) {
		t.Fatalf("ops = %v, want exactly one fallback text", got)
	}
	if !strings.Contains(env.transport.calls[0].caption, "Failed to deliver content") {
		t.Errorf("fallback missing marker: %q", env.transport.calls[0].caption)
	}
	// The key still counts as processed and is removed.
	if len(env.store.deleteCalls) != 1 {
		t.Errorf("deleteCalls = %v, want one", env.store.deleteCalls)
	}
}

func TestCallbackHandlerClosesMessage(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, adminID)
	handle := handlers.NewCallbackHandler(env.deps)

	handle(context.Background(), nil, &models.Update{
		CallbackQuery: &models.CallbackQuery{
			ID:   "cq1",
			From: models.User{ID: adminID},
			Data: "close",
			Message: models.MaybeInaccessibleMessage{
				Message: &models.Message{ID: 5, Chat: models.Chat{ID: adminID}},
			},
		},
	})

	if len(env.messenger.calls) != 2 {
		t.Fatalf("messenger calls = %+v, want answer + delete", env.messenger.calls)
	}
	if env.messenger.calls[0].op != "answer_callback" || env.messenger.calls[1].op != "delete_message" {
		t.Errorf("calls = %+v", env.messenger.calls)
	}
}
