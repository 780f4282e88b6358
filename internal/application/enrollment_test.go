package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/educore/campus-backend/internal/domain/entity"
)

func newEnrollmentFixture(t *testing.T) (*EnrollmentRegistry, *memCatalog, *entity.User, *entity.Course) {
	t.Helper()
	users := newMemUsers()
	cat := newMemCatalog()

	u := users.addUser("TestUser", "test@gmail.com")
	c := &entity.Course{Title: "Intro to Go", Price: 49000}
	if err := cat.Create(context.Background(), c); err != nil {
		t.Fatalf("seed course: %v", err)
	}

	reg := NewEnrollmentRegistry(&memEnrollments{cat: cat}, cat, users, nil)
	return reg, cat, u, c
}

func TestEnrollCreatesEnrollment(t *testing.T) {
	reg, cat, u, c := newEnrollmentFixture(t)

	e, err := reg.Enroll(context.Background(), u.ID, c.ID)
	if err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if e.UserID != u.ID || e.CourseID != c.ID {
		t.Fatalf("enrollment = %+v, want user %q course %q", e, u.ID, c.ID)
	}
	if e.CreatedAt.IsZero() {
		t.Fatalf("enrollment CreatedAt not set")
	}
	if got := cat.enrollmentCount(u.ID); got != 1 {
		t.Fatalf("enrollment rows = %d, want 1", got)
	}

	has, err := reg.Has(context.Background(), u.ID, c.ID)
	if err != nil || !has {
		t.Fatalf("Has = %v, %v, want true", has, err)
	}
}

func TestEnrollDuplicateReturnsAlreadyEnrolled(t *testing.T) {
	reg, cat, u, c := newEnrollmentFixture(t)

	if _, err := reg.Enroll(context.Background(), u.ID, c.ID); err != nil {
		t.Fatalf("first Enroll: %v", err)
	}
	_, err := reg.Enroll(context.Background(), u.ID, c.ID)
	if !errors.Is(err, ErrAlreadyEnrolled) {
		t.Fatalf("second Enroll err = %v, want ErrAlreadyEnrolled", err)
	}
	if got := cat.enrollmentCount(u.ID); got != 1 {
		t.Fatalf("enrollment rows = %d after duplicate, want 1", got)
	}
}

func TestEnrollConcurrentSamePair(t *testing.T) {
	reg, cat, u, c := newEnrollmentFixture(t)

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = reg.Enroll(context.Background(), u.ID, c.ID)
		}(i)
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrAlreadyEnrolled):
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || dup != n-1 {
		t.Fatalf("successes=%d duplicates=%d, want 1/%d", ok, dup, n-1)
	}
	if got := cat.enrollmentCount(u.ID); got != 1 {
		t.Fatalf("enrollment rows = %d, want 1", got)
	}
}

func TestEnrollUnknownUser(t *testing.T) {
	reg, _, _, c := newEnrollmentFixture(t)

	_, err := reg.Enroll(context.Background(), "user-missing", c.ID)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestEnrollUnknownCourse(t *testing.T) {
	reg, _, u, _ := newEnrollmentFixture(t)

	_, err := reg.Enroll(context.Background(), u.ID, "course-missing")
	if !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("err = %v, want ErrCourseNotFound", err)
	}
}

func TestMyCoursesListsOnlyEnrolled(t *testing.T) {
	reg, cat, u, c := newEnrollmentFixture(t)

	other := &entity.Course{Title: "PostgreSQL Deep Dive"}
	if err := cat.Create(context.Background(), other); err != nil {
		t.Fatalf("seed course: %v", err)
	}
	if _, err := reg.Enroll(context.Background(), u.ID, c.ID); err != nil {
		t.Fatalf("Enroll: %v", err)
	}

	mine, err := reg.MyCourses(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("MyCourses: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != c.ID {
		t.Fatalf("MyCourses = %+v, want only %q", mine, c.ID)
	}
}
