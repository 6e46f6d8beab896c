package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/timecrax/webapp/models"
)

func TestSlotKeys(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{SlotCardImage(0), "cards[0].imageUrl"},
		{SlotCardImage(19), "cards[19].imageUrl"},
		{SlotImageQuizOption(2, 0), "cards[2].imageQuiz.options[0].imageUrl"},
		{SlotImageQuizOption(0, 3), "cards[0].imageQuiz.options[3].imageUrl"},
		{SlotCorrelationItem(5, 2), "cards[5].correlationQuiz.items[2].imageUrl"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Fatalf("expected slot key %q, got %q", tt.want, tt.got)
		}
	}

	// The same coordinates must always produce the same key.
	if SlotImageQuizOption(1, 1) != SlotImageQuizOption(1, 1) {
		t.Fatal("slot keys must be deterministic")
	}
}

// uploadBackend records every upload slot key it receives and answers with a
// URL derived from the key.
type uploadBackend struct {
	mu       sync.Mutex
	slotKeys []string
	failSlot string
}

func (b *uploadBackend) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		slotKey := r.FormValue("slotKey")

		b.mu.Lock()
		b.slotKeys = append(b.slotKeys, slotKey)
		b.mu.Unlock()

		if slotKey == b.failSlot {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"message": "storage write failed"})
			return
		}
		json.NewEncoder(w).Encode(models.UploadAssetResponse{
			SlotKey: slotKey,
			URL:     "/uploads/" + slotKey,
		})
	}
}

func (b *uploadBackend) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.slotKeys)
}

// pendingCard builds a valid card whose eight image fields all still carry
// local files.
func pendingCard(orderIndex int) models.CardDraft {
	card := validCard(orderIndex)
	upload := func(name string) models.ImageRef {
		return models.ImageRef{Upload: &models.FileUpload{Name: name, Data: []byte("png-bytes")}}
	}
	card.Image = upload("main.png")
	for k := range card.ImageQuiz.Options {
		card.ImageQuiz.Options[k] = upload("opt.png")
	}
	for k := range card.CorrelationQuiz.Items {
		card.CorrelationQuiz.Items[k].Image = upload("corr.png")
	}
	return card
}

func TestUploadCardImagesSessionNotReady(t *testing.T) {
	backend := &uploadBackend{}
	srv := httptest.NewServer(backend.handler(t))
	defer srv.Close()

	client := NewClient(srv.URL, "token")
	_, err := client.UploadCardImages(context.Background(), "", pendingCard(0))
	if !errors.Is(err, ErrSessionNotReady) {
		t.Fatalf("expected ErrSessionNotReady, got %v", err)
	}
	if backend.count() != 0 {
		t.Fatalf("expected no upload requests, got %d", backend.count())
	}
}

func TestUploadCardImagesPassThrough(t *testing.T) {
	backend := &uploadBackend{}
	srv := httptest.NewServer(backend.handler(t))
	defer srv.Close()

	client := NewClient(srv.URL, "token")
	card := validCard(3) // every image already URL-backed

	got, err := client.UploadCardImages(context.Background(), "session-1", card)
	if err != nil {
		t.Fatalf("UploadCardImages: %v", err)
	}
	if backend.count() != 0 {
		t.Fatalf("expected zero uploads for URL-backed card, got %d", backend.count())
	}
	if got.Image.URL != card.Image.URL {
		t.Fatalf("expected pass-through URL %q, got %q", card.Image.URL, got.Image.URL)
	}
	for k := range card.ImageQuiz.Options {
		if got.ImageQuiz.Options[k].URL != card.ImageQuiz.Options[k].URL {
			t.Fatalf("option %d URL changed", k)
		}
	}
}

func TestUploadCardImagesUploadsAllPending(t *testing.T) {
	backend := &uploadBackend{}
	srv := httptest.NewServer(backend.handler(t))
	defer srv.Close()

	client := NewClient(srv.URL, "token")
	got, err := client.UploadCardImages(context.Background(), "session-1", pendingCard(2))
	if err != nil {
		t.Fatalf("UploadCardImages: %v", err)
	}

	// One card image + four quiz options + three correlation items.
	if backend.count() != 8 {
		t.Fatalf("expected 8 uploads, got %d", backend.count())
	}

	want := map[string]bool{SlotCardImage(2): true}
	for k := 0; k < 4; k++ {
		want[SlotImageQuizOption(2, k)] = true
	}
	for k := 0; k < 3; k++ {
		want[SlotCorrelationItem(2, k)] = true
	}
	backend.mu.Lock()
	for _, key := range backend.slotKeys {
		if !want[key] {
			t.Fatalf("unexpected or duplicate slot key %q", key)
		}
		delete(want, key)
	}
	backend.mu.Unlock()
	if len(want) != 0 {
		t.Fatalf("slot keys never uploaded: %v", want)
	}

	if got.Image.URL != "/uploads/"+SlotCardImage(2) || got.Image.Upload != nil {
		t.Fatalf("card image not reconciled: %+v", got.Image)
	}
	for k, opt := range got.ImageQuiz.Options {
		if opt.URL != "/uploads/"+SlotImageQuizOption(2, k) || opt.Upload != nil {
			t.Fatalf("option %d not reconciled: %+v", k, opt)
		}
	}
	for k, item := range got.CorrelationQuiz.Items {
		if item.Image.URL != "/uploads/"+SlotCorrelationItem(2, k) || item.Image.Upload != nil {
			t.Fatalf("correlation item %d not reconciled: %+v", k, item.Image)
		}
	}
}

func TestUploadCardImagesFailureKeepsCard(t *testing.T) {
	backend := &uploadBackend{failSlot: SlotImageQuizOption(0, 1)}
	srv := httptest.NewServer(backend.handler(t))
	defer srv.Close()

	client := NewClient(srv.URL, "token")
	card := pendingCard(0)

	got, err := client.UploadCardImages(context.Background(), "session-1", card)
	if err == nil {
		t.Fatal("expected an error when one upload fails")
	}
	// The caller gets the original card back so the form can be re-rendered
	// with its pending files intact.
	if !got.Image.Pending() {
		t.Fatal("expected original card with pending image on failure")
	}
}

func TestCreateAssetSession(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/theme-assets/sessions" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotBody = nil
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(models.UploadSession{SessionID: "session-42"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "token")

	session, err := client.CreateAssetSession(context.Background(), "")
	if err != nil {
		t.Fatalf("CreateAssetSession: %v", err)
	}
	if session.SessionID != "session-42" {
		t.Fatalf("expected session-42, got %q", session.SessionID)
	}
	if gotBody != nil {
		t.Fatalf("expected empty body without a theme id, got %v", gotBody)
	}

	if _, err := client.CreateAssetSession(context.Background(), "theme-7"); err != nil {
		t.Fatalf("CreateAssetSession: %v", err)
	}
	if gotBody["themeId"] != "theme-7" {
		t.Fatalf("expected themeId theme-7, got %v", gotBody)
	}
}

func TestDeleteCardAssets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		if r.URL.Path != "/theme-assets/sessions/session-1/cards/4" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(models.DeleteCardAssetsResponse{DeletedCount: 8, Message: "deleted"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "token")
	res, err := client.DeleteCardAssets(context.Background(), "session-1", 4)
	if err != nil {
		t.Fatalf("DeleteCardAssets: %v", err)
	}
	if res.DeletedCount != 8 {
		t.Fatalf("expected 8 deleted assets, got %d", res.DeletedCount)
	}
}
