package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/educore/campus-backend/internal/domain/entity"
	repo "github.com/educore/campus-backend/internal/domain/repository"
)

// memUsers is an in-memory UserRepository. CreateWithWallet is atomic the
// same way the Postgres implementation is: on error nothing is stored.
type memUsers struct {
	mu         sync.Mutex
	seq        int
	users      map[string]*entity.User
	byEmail    map[string]string
	wallets    map[string]*entity.Wallet // keyed by user ID
	failCreate bool
	failUpdate bool
}

func newMemUsers() *memUsers {
	return &memUsers{
		users:   make(map[string]*entity.User),
		byEmail: make(map[string]string),
		wallets: make(map[string]*entity.Wallet),
	}
}

func (m *memUsers) CreateWithWallet(_ context.Context, u *entity.User) (*entity.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreate {
		return nil, errors.New("storage down")
	}
	if _, dup := m.byEmail[u.Email]; dup {
		return nil, errors.New("duplicate email")
	}
	m.seq++
	u.ID = fmt.Sprintf("user-%d", m.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.users[u.ID] = &cp
	m.byEmail[u.Email] = u.ID

	w := &entity.Wallet{ID: fmt.Sprintf("wallet-%d", m.seq), UserID: u.ID, Balance: 0}
	m.wallets[u.ID] = w
	return w, nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byEmail[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *m.users[id]
	return &cp, nil
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpdate {
		return errors.New("storage down")
	}
	if _, ok := m.users[u.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

// addUser seeds a user directly, bypassing registration.
func (m *memUsers) addUser(name, email string) *entity.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	u := &entity.User{ID: fmt.Sprintf("user-%d", m.seq), Name: name, Email: email}
	m.users[u.ID] = u
	m.byEmail[email] = u.ID
	return u
}

func (m *memUsers) count() (users, wallets int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), len(m.wallets)
}

// memCatalog backs both CourseRepository and EnrollmentRepository so
// ListByUser can join the two, like the SQL implementation does.
type memCatalog struct {
	mu          sync.Mutex
	seq         int
	courses     map[string]*entity.Course
	order       []string
	modules     map[string][]entity.CourseModule
	enrollments map[string]map[string]time.Time // userID -> courseID -> created
	failCreate  bool
	failUpdate  bool
}

func newMemCatalog() *memCatalog {
	return &memCatalog{
		courses:     make(map[string]*entity.Course),
		modules:     make(map[string][]entity.CourseModule),
		enrollments: make(map[string]map[string]time.Time),
	}
}

func (m *memCatalog) Create(_ context.Context, c *entity.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreate {
		return errors.New("storage down")
	}
	m.seq++
	c.ID = fmt.Sprintf("course-%d", m.seq)
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	m.courses[c.ID] = &cp
	m.order = append(m.order, c.ID)
	return nil
}

func (m *memCatalog) GetByID(_ context.Context, id string) (*entity.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.courses[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCatalog) List(_ context.Context) ([]entity.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.Course, 0, len(m.order))
	for _, id := range m.order {
		if c, ok := m.courses[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memCatalog) ListByUser(_ context.Context, userID string) ([]entity.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.Course, 0)
	for _, id := range m.order {
		if _, ok := m.enrollments[userID][id]; ok {
			out = append(out, *m.courses[id])
		}
	}
	return out, nil
}

func (m *memCatalog) Update(_ context.Context, c *entity.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpdate {
		return errors.New("storage down")
	}
	if _, ok := m.courses[c.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *c
	m.courses[c.ID] = &cp
	return nil
}

func (m *memCatalog) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.courses[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.courses, id)
	return nil
}

func (m *memCatalog) AddModule(_ context.Context, mod *entity.CourseModule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	mod.ID = fmt.Sprintf("module-%d", m.seq)
	m.modules[mod.CourseID] = append(m.modules[mod.CourseID], *mod)
	return nil
}

func (m *memCatalog) ListModules(_ context.Context, courseID string) ([]entity.CourseModule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]entity.CourseModule(nil), m.modules[courseID]...), nil
}

// EnrollmentRepository. The mutex makes Create atomic, which is the
// in-memory stand-in for the unique constraint.
func (m *memCatalog) CreateEnrollment(_ context.Context, userID, courseID string) (*entity.Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, dup := m.enrollments[userID][courseID]; dup {
		return nil, repo.ErrAlreadyEnrolled
	}
	if m.enrollments[userID] == nil {
		m.enrollments[userID] = make(map[string]time.Time)
	}
	now := time.Now()
	m.enrollments[userID][courseID] = now
	return &entity.Enrollment{UserID: userID, CourseID: courseID, CreatedAt: now}, nil
}

func (m *memCatalog) Exists(_ context.Context, userID, courseID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.enrollments[userID][courseID]
	return ok, nil
}

func (m *memCatalog) DeleteEnrollment(_ context.Context, userID, courseID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.enrollments[userID], courseID)
	return nil
}

func (m *memCatalog) enrollmentCount(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.enrollments[userID])
}

// memEnrollments adapts memCatalog to the EnrollmentRepository interface.
type memEnrollments struct{ cat *memCatalog }

func (m *memEnrollments) Create(ctx context.Context, userID, courseID string) (*entity.Enrollment, error) {
	return m.cat.CreateEnrollment(ctx, userID, courseID)
}

func (m *memEnrollments) Exists(ctx context.Context, userID, courseID string) (bool, error) {
	return m.cat.Exists(ctx, userID, courseID)
}

func (m *memEnrollments) Delete(ctx context.Context, userID, courseID string) error {
	return m.cat.DeleteEnrollment(ctx, userID, courseID)
}

// memAssets is an in-memory AssetStore recording the order of operations,
// so tests can assert the put-new-before-delete-old replace protocol.
type memAssets struct {
	mu         sync.Mutex
	seq        int
	objects    map[string][]byte // live objects by locator
	ops        []string          // "put <locator>" / "delete <locator>"
	failPut    bool
	failDelete bool
}

func newMemAssets() *memAssets {
	return &memAssets{objects: make(map[string][]byte)}
}

func (m *memAssets) Put(_ context.Context, r io.Reader, objectPath, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPut {
		return "", errors.New("object store down")
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	m.seq++
	locator := "mem://" + objectPath
	m.objects[locator] = buf.Bytes()
	m.ops = append(m.ops, "put "+locator)
	return locator, nil
}

func (m *memAssets) Delete(_ context.Context, locator string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, "delete "+locator)
	if m.failDelete {
		return errors.New("object store down")
	}
	delete(m.objects, locator) // absent locator is not an error
	return nil
}

func (m *memAssets) live(locator string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[locator]
	return ok
}

func (m *memAssets) liveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

func (m *memAssets) opLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.ops...)
}

// memProfiles is an in-memory ProfileRepository with the one-per-user
// idempotent create the SQL implementation gets from ON CONFLICT.
type memProfiles struct {
	mu      sync.Mutex
	seq     int
	byUser  map[string]*entity.Profile
	failUpd bool
	creates int
}

func newMemProfiles() *memProfiles {
	return &memProfiles{byUser: make(map[string]*entity.Profile)}
}

func (m *memProfiles) CreateForUser(_ context.Context, userID string) (*entity.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if p, ok := m.byUser[userID]; ok {
		cp := *p
		return &cp, nil
	}
	m.seq++
	p := &entity.Profile{ID: fmt.Sprintf("profile-%d", m.seq), UserID: userID, CreatedAt: time.Now()}
	m.byUser[userID] = p
	cp := *p
	return &cp, nil
}

func (m *memProfiles) GetByUser(_ context.Context, userID string) (*entity.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byUser[userID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProfiles) Update(_ context.Context, p *entity.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpd {
		return errors.New("storage down")
	}
	cur, ok := m.byUser[p.UserID]
	if !ok || cur.ID != p.ID {
		return repo.ErrNotFound
	}
	cp := *p
	m.byUser[p.UserID] = &cp
	return nil
}

// memNotifier records greetings and optionally fails every send.
type memNotifier struct {
	mu   sync.Mutex
	sent []string // "email name"
	fail bool
}

func (m *memNotifier) SendRegistrationGreeting(_ context.Context, email, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("queue down")
	}
	m.sent = append(m.sent, email+" "+name)
	return nil
}

func (m *memNotifier) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

var (
	_ repo.UserRepository       = (*memUsers)(nil)
	_ repo.CourseRepository     = (*memCatalog)(nil)
	_ repo.EnrollmentRepository = (*memEnrollments)(nil)
	_ repo.ProfileRepository    = (*memProfiles)(nil)
	_ AssetStore                = (*memAssets)(nil)
	_ Notifier                  = (*memNotifier)(nil)
)
