package services

import (
	"context"
	"strings"
	"sync"

	"github.com/keonU206/Hey-Young-system/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// fakeUserRepo is an in-memory UserRepository for service tests
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*models.User
}

func newFakeUserRepo(seed ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uint]*models.User)}
	for _, u := range seed {
		r.mustAdd(u)
	}
	return r
}

func (r *fakeUserRepo) mustAdd(u *models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == 0 {
		r.nextID++
		u.ID = r.nextID
	} else if u.ID > r.nextID {
		r.nextID = u.ID
	}
	cp := *u
	r.users[u.ID] = &cp
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mustAdd(user)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByLoginID(_ context.Context, loginID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.LoginID == loginID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, offset, limit int) ([]*models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*models.User
	for id := uint(1); id <= r.nextID; id++ {
		if u, ok := r.users[id]; ok {
			cp := *u
			all = append(all, &cp)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeUserRepo) ExistsByLoginID(_ context.Context, loginID string) (bool, error) {
	_, err := r.GetByLoginID(context.Background(), loginID)
	return err == nil, nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// recordingAuditRepo captures audit writes; failErr simulates a broken store
type recordingAuditRepo struct {
	mu      sync.Mutex
	entries []*models.AuditLog
	failErr error
}

func (r *recordingAuditRepo) Create(_ context.Context, entry *models.AuditLog) error {
	if r.failErr != nil {
		return r.failErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *entry
	cp.ID = uint(len(r.entries) + 1)
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *recordingAuditRepo) ListRecent(_ context.Context, limit int) ([]*models.AuditLogResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.AuditLogResponse
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, toAuditResponse(r.entries[i]))
	}
	return out, nil
}

func (r *recordingAuditRepo) ListRecentByActionPrefix(_ context.Context, prefix string, limit int) ([]*models.AuditLogResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.AuditLogResponse
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if strings.HasPrefix(r.entries[i].Action, prefix) {
			out = append(out, toAuditResponse(r.entries[i]))
		}
	}
	return out, nil
}

func toAuditResponse(e *models.AuditLog) *models.AuditLogResponse {
	return &models.AuditLogResponse{
		ID:         e.ID,
		TargetType: e.TargetType,
		TargetID:   e.TargetID,
		Action:     e.Action,
		BeforeData: e.BeforeData,
		AfterData:  e.AfterData,
		CreatedAt:  e.CreatedAt,
	}
}

// last returns the most recent entry, or nil
func (r *recordingAuditRepo) last() *models.AuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == 0 {
		return nil
	}
	return r.entries[len(r.entries)-1]
}

func (r *recordingAuditRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// fakeSettingRepo is an in-memory SettingRepository
type fakeSettingRepo struct {
	mu     sync.Mutex
	values map[string]string
	getErr error
}

func newFakeSettingRepo(values map[string]string) *fakeSettingRepo {
	if values == nil {
		values = make(map[string]string)
	}
	return &fakeSettingRepo{values: values}
}

func (r *fakeSettingRepo) GetAll(_ context.Context, keys []string) (map[string]string, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]string)
	for _, k := range keys {
		if v, ok := r.values[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (r *fakeSettingRepo) Upsert(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

// fakeDepartmentRepo is an in-memory DepartmentRepository
type fakeDepartmentRepo struct {
	mu        sync.Mutex
	nextID    uint
	depts     map[uint]*models.Department
	deleteErr error
}

func newFakeDepartmentRepo(seed ...*models.Department) *fakeDepartmentRepo {
	r := &fakeDepartmentRepo{depts: make(map[uint]*models.Department)}
	for _, d := range seed {
		cp := *d
		if cp.ID == 0 {
			r.nextID++
			cp.ID = r.nextID
		} else if cp.ID > r.nextID {
			r.nextID = cp.ID
		}
		r.depts[cp.ID] = &cp
	}
	return r
}

func (r *fakeDepartmentRepo) Create(_ context.Context, dept *models.Department) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	dept.ID = r.nextID
	cp := *dept
	r.depts[dept.ID] = &cp
	return nil
}

func (r *fakeDepartmentRepo) GetByID(_ context.Context, id uint) (*models.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.depts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDepartmentRepo) Update(_ context.Context, dept *models.Department) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.depts[dept.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *dept
	r.depts[dept.ID] = &cp
	return nil
}

func (r *fakeDepartmentRepo) Delete(_ context.Context, id uint) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.depts, id)
	return nil
}

func (r *fakeDepartmentRepo) List(_ context.Context) ([]*models.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Department
	for id := uint(1); id <= r.nextID; id++ {
		if d, ok := r.depts[id]; ok {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeDepartmentRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.depts {
		if d.Code == code {
			return true, nil
		}
	}
	return false, nil
}

// fakeSemesterRepo is an in-memory SemesterRepository
type fakeSemesterRepo struct {
	mu        sync.Mutex
	nextID    uint
	semesters map[uint]*models.Semester
	deleteErr error
}

func newFakeSemesterRepo() *fakeSemesterRepo {
	return &fakeSemesterRepo{semesters: make(map[uint]*models.Semester)}
}

func (r *fakeSemesterRepo) Create(_ context.Context, semester *models.Semester) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	semester.ID = r.nextID
	cp := *semester
	r.semesters[semester.ID] = &cp
	return nil
}

func (r *fakeSemesterRepo) GetByID(_ context.Context, id uint) (*models.Semester, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.semesters[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSemesterRepo) Update(_ context.Context, semester *models.Semester) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.semesters[semester.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *semester
	r.semesters[semester.ID] = &cp
	return nil
}

func (r *fakeSemesterRepo) Delete(_ context.Context, id uint) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.semesters, id)
	return nil
}

func (r *fakeSemesterRepo) List(_ context.Context) ([]*models.Semester, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Semester
	for id := uint(1); id <= r.nextID; id++ {
		if s, ok := r.semesters[id]; ok {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSemesterRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.semesters {
		if s.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// fakeCourseRepo is an in-memory CourseRepository
type fakeCourseRepo struct {
	mu      sync.Mutex
	nextID  uint
	courses map[uint]*models.Course
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: make(map[uint]*models.Course)}
}

func (r *fakeCourseRepo) Create(_ context.Context, course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	course.ID = r.nextID
	cp := *course
	r.courses[course.ID] = &cp
	return nil
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id uint) (*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCourseRepo) Update(_ context.Context, course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.courses[course.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *course
	r.courses[course.ID] = &cp
	return nil
}

func (r *fakeCourseRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.courses, id)
	return nil
}

func (r *fakeCourseRepo) List(_ context.Context) ([]*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Course
	for id := uint(1); id <= r.nextID; id++ {
		if c, ok := r.courses[id]; ok {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeCourseRepo) ExistsOffering(_ context.Context, code string, semesterID uint, section *string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.courses {
		if c.Code != code || c.SemesterID != semesterID {
			continue
		}
		if section == nil && c.Section == nil {
			return true, nil
		}
		if section != nil && c.Section != nil && *section == *c.Section {
			return true, nil
		}
	}
	return false, nil
}
