package service_test

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"claimdesk.app/server/internal/blob"
	"claimdesk.app/server/internal/model"
	"claimdesk.app/server/internal/queue"
	"claimdesk.app/server/internal/service"
	"claimdesk.app/server/internal/store"
)

// memDB is an in-memory stand-in for Postgres. Transactions are serialized and
// roll back to a snapshot on error.
type memDB struct {
	txMu sync.Mutex
	mu   sync.Mutex

	clock         time.Time
	counter       int64
	claims        map[int64]model.Claim
	comments      []model.Comment
	attachments   []model.Attachment
	notifications []model.Notification

	claimCreateFn        func(claim *model.Claim) error
	notificationCreateFn func(n *model.Notification) error
	claimCreateCalls     int
}

func newMemDB() *memDB {
	return &memDB{
		clock:  time.Now().Add(-time.Minute),
		claims: map[int64]model.Claim{},
	}
}

type memSnapshot struct {
	counter       int64
	claims        map[int64]model.Claim
	comments      []model.Comment
	attachments   []model.Attachment
	notifications []model.Notification
}

func (m *memDB) snapshot() memSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	claims := make(map[int64]model.Claim, len(m.claims))
	for k, v := range m.claims {
		claims[k] = v
	}
	return memSnapshot{
		counter:       m.counter,
		claims:        claims,
		comments:      append([]model.Comment(nil), m.comments...),
		attachments:   append([]model.Attachment(nil), m.attachments...),
		notifications: append([]model.Notification(nil), m.notifications...),
	}
}

func (m *memDB) restore(s memSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter = s.counter
	m.claims = s.claims
	m.comments = s.comments
	m.attachments = s.attachments
	m.notifications = s.notifications
}

// tick must be called with mu held.
func (m *memDB) tick() time.Time {
	m.clock = m.clock.Add(time.Millisecond)
	return m.clock
}

func (m *memDB) WithTx(ctx context.Context, fn func(stores service.StoreProvider) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	snap := m.snapshot()
	if err := fn(m); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

func (m *memDB) Claims() store.ClaimStore               { return memClaims{m} }
func (m *memDB) Comments() store.CommentStore           { return memComments{m} }
func (m *memDB) Attachments() store.AttachmentStore     { return memAttachments{m} }
func (m *memDB) Notifications() store.NotificationStore { return memNotifications{m} }
func (m *memDB) References() store.ReferenceStore       { return memReferences{m} }

func (m *memDB) notificationsFor(userID int64) []model.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

func (m *memDB) claimCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.claims)
}

func (m *memDB) backdate(claimID int64, updatedAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.claims[claimID]
	c.UpdatedAt = updatedAt
	m.claims[claimID] = c
}

type memClaims struct{ db *memDB }

func (s memClaims) Create(_ context.Context, claim *model.Claim) error {
	m := s.db
	m.mu.Lock()
	defer m.mu.Unlock()
	m.claimCreateCalls++
	if m.claimCreateFn != nil {
		if err := m.claimCreateFn(claim); err != nil {
			return err
		}
	}
	for _, c := range m.claims {
		if c.ReferenceNumber == claim.ReferenceNumber {
			return store.ErrReferenceConflict
		}
	}
	now := m.tick()
	claim.CreatedAt, claim.UpdatedAt = now, now
	m.claims[claim.ID] = *claim
	return nil
}

func (s memClaims) GetForOwner(_ context.Context, id, ownerID int64) (*model.Claim, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	c, ok := s.db.claims[id]
	if !ok || c.OwnerID != ownerID {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

func (s memClaims) ListByOwner(_ context.Context, ownerID int64, search string, limit int32) ([]model.Claim, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	q := strings.ToLower(strings.TrimSpace(search))
	out := []model.Claim{}
	for _, c := range s.db.claims {
		if c.OwnerID != ownerID {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(c.ReferenceNumber), q) &&
			!strings.Contains(strings.ToLower(c.Title), q) &&
			!strings.Contains(strings.ToLower(c.Description), q) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && int(limit) < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (s memClaims) UpdateDetails(_ context.Context, claim *model.Claim) error {
	m := s.db
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.claims[claim.ID]
	if !ok || c.OwnerID != claim.OwnerID {
		return store.ErrNotFound
	}
	c.Title, c.Description, c.Category, c.Priority = claim.Title, claim.Description, claim.Category, claim.Priority
	c.UpdatedAt = m.tick()
	m.claims[c.ID] = c
	*claim = c
	return nil
}

func (s memClaims) UpdateStatus(_ context.Context, id, ownerID int64, status model.ClaimStatus) (*model.Claim, error) {
	m := s.db
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.claims[id]
	if !ok || c.OwnerID != ownerID {
		return nil, store.ErrNotFound
	}
	c.Status = status
	c.UpdatedAt = m.tick()
	m.claims[id] = c
	return &c, nil
}

func (s memClaims) DeleteForOwner(_ context.Context, id, ownerID int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	c, ok := s.db.claims[id]
	if !ok || c.OwnerID != ownerID {
		return store.ErrNotFound
	}
	delete(s.db.claims, id)
	return nil
}

func (s memClaims) Stats(_ context.Context, ownerID int64) (model.ClaimStats, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var st model.ClaimStats
	for _, c := range s.db.claims {
		if c.OwnerID != ownerID {
			continue
		}
		st.Total++
		switch c.Status {
		case model.ClaimStatusResolved:
			st.Resolved++
		case model.ClaimStatusInProgress:
			st.InProgress++
		case model.ClaimStatusPending:
			st.Pending++
		}
	}
	return st, nil
}

func (s memClaims) ListStalePending(_ context.Context, cutoff time.Time, limit int32) ([]model.Claim, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []model.Claim
	for _, c := range s.db.claims {
		if c.Status != model.ClaimStatusPending || !c.UpdatedAt.Before(cutoff) {
			continue
		}
		reminded := false
		for _, n := range s.db.notifications {
			if n.ClaimID == c.ID && n.Type == model.NotificationTypeReminder && !n.CreatedAt.Before(cutoff) {
				reminded = true
			}
		}
		if !reminded {
			out = append(out, c)
		}
	}
	if int(limit) < len(out) {
		out = out[:limit]
	}
	return out, nil
}

type memComments struct{ db *memDB }

func (s memComments) Create(_ context.Context, comment *model.Comment) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	comment.CreatedAt = s.db.tick()
	s.db.comments = append(s.db.comments, *comment)
	return nil
}

func (s memComments) ListByClaim(_ context.Context, claimID int64) ([]model.Comment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []model.Comment{}
	for _, c := range s.db.comments {
		if c.ClaimID == claimID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s memComments) DeleteByClaim(_ context.Context, claimID int64) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var kept []model.Comment
	var n int64
	for _, c := range s.db.comments {
		if c.ClaimID == claimID {
			n++
			continue
		}
		kept = append(kept, c)
	}
	s.db.comments = kept
	return n, nil
}

type memAttachments struct{ db *memDB }

func (s memAttachments) Create(_ context.Context, a *model.Attachment) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	a.UploadedAt = s.db.tick()
	s.db.attachments = append(s.db.attachments, *a)
	return nil
}

func (s memAttachments) Get(_ context.Context, id, claimID int64) (*model.Attachment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, a := range s.db.attachments {
		if a.ID == id && a.ClaimID == claimID {
			return &a, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s memAttachments) ListByClaim(_ context.Context, claimID int64) ([]model.Attachment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []model.Attachment{}
	for _, a := range s.db.attachments {
		if a.ClaimID == claimID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s memAttachments) DeleteByClaim(_ context.Context, claimID int64) ([]string, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var kept []model.Attachment
	var keys []string
	for _, a := range s.db.attachments {
		if a.ClaimID == claimID {
			keys = append(keys, a.StorageKey)
			continue
		}
		kept = append(kept, a)
	}
	s.db.attachments = kept
	return keys, nil
}

type memNotifications struct{ db *memDB }

func (s memNotifications) Create(_ context.Context, n *model.Notification) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.notificationCreateFn != nil {
		if err := s.db.notificationCreateFn(n); err != nil {
			return err
		}
	}
	n.CreatedAt = time.Now()
	s.db.notifications = append(s.db.notifications, *n)
	return nil
}

func (s memNotifications) ListByUser(_ context.Context, userID int64, unreadOnly bool, limit int32) ([]model.Notification, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []model.Notification{}
	for i := len(s.db.notifications) - 1; i >= 0; i-- {
		n := s.db.notifications[i]
		if n.UserID != userID || (unreadOnly && n.Read) {
			continue
		}
		out = append(out, n)
	}
	if int(limit) < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (s memNotifications) MarkRead(_ context.Context, id, userID int64) (*model.Notification, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for i, n := range s.db.notifications {
		if n.ID == id && n.UserID == userID {
			s.db.notifications[i].Read = true
			out := s.db.notifications[i]
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s memNotifications) CountUnread(_ context.Context, userID int64) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var c int64
	for _, n := range s.db.notifications {
		if n.UserID == userID && !n.Read {
			c++
		}
	}
	return c, nil
}

func (s memNotifications) DeleteByClaim(_ context.Context, claimID int64) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var kept []model.Notification
	var c int64
	for _, n := range s.db.notifications {
		if n.ClaimID == claimID {
			c++
			continue
		}
		kept = append(kept, n)
	}
	s.db.notifications = kept
	return c, nil
}

type memReferences struct{ db *memDB }

func (s memReferences) LockCounter(_ context.Context, _ string) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.db.counter, nil
}

func (s memReferences) LatestReference(_ context.Context) (string, bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	latest := ""
	for _, c := range s.db.claims {
		r := c.ReferenceNumber
		if len(r) > len(latest) || (len(r) == len(latest) && r > latest) {
			latest = r
		}
	}
	return latest, latest != "", nil
}

func (s memReferences) SaveCounter(_ context.Context, _ string, value int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.counter = value
	return nil
}

type memBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte
	deletes []string
	putFn   func(key string) error
}

func newMemBlobs() *memBlobs {
	return &memBlobs{objects: map[string][]byte{}}
}

func (b *memBlobs) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	if b.putFn != nil {
		if err := b.putFn(key); err != nil {
			return err
		}
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[key] = data
	return nil
}

func (b *memBlobs) Open(_ context.Context, key string) (io.ReadCloser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.objects[key]
	if !ok {
		return nil, blob.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (b *memBlobs) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, key)
	b.deletes = append(b.deletes, key)
	return nil
}

func (b *memBlobs) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.objects)
}

type mockProducer struct {
	enqueueFn func(ctx context.Context, task queue.Task) error
	tasks     []queue.Task
}

func (m *mockProducer) Enqueue(ctx context.Context, task queue.Task) error {
	m.tasks = append(m.tasks, task)
	if m.enqueueFn != nil {
		return m.enqueueFn(ctx, task)
	}
	return nil
}

func (m *mockProducer) Close() error {
	return nil
}

type mockUserStore struct {
	getByIDFn       func(ctx context.Context, id int64) (*model.User, error)
	getByWorkOSIDFn func(ctx context.Context, workosID string) (*model.User, error)
	upsertFn        func(ctx context.Context, user *model.User) error
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) GetByWorkOSID(ctx context.Context, workosID string) (*model.User, error) {
	if m.getByWorkOSIDFn != nil {
		return m.getByWorkOSIDFn(ctx, workosID)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) UpsertByWorkOSID(ctx context.Context, user *model.User) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, user)
	}
	return nil
}

type mockSessionStore struct {
	getValidFn      func(ctx context.Context, id int64) (*model.Session, error)
	createFn        func(ctx context.Context, session *model.Session) error
	deleteFn        func(ctx context.Context, id int64) error
	deleteExpiredFn func(ctx context.Context) (int64, error)
}

func (m *mockSessionStore) GetValid(ctx context.Context, id int64) (*model.Session, error) {
	if m.getValidFn != nil {
		return m.getValidFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockSessionStore) Create(ctx context.Context, session *model.Session) error {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}

func (m *mockSessionStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockSessionStore) DeleteExpired(ctx context.Context) (int64, error) {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx)
	}
	return 0, nil
}

type mockNotificationStore struct {
	store.NotificationStore
	markReadFn func(ctx context.Context, id, userID int64) (*model.Notification, error)
}

func (m *mockNotificationStore) MarkRead(ctx context.Context, id, userID int64) (*model.Notification, error) {
	if m.markReadFn != nil {
		return m.markReadFn(ctx, id, userID)
	}
	return nil, store.ErrNotFound
}
