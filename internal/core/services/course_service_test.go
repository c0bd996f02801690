package services

import (
	"context"
	"testing"

	"github.com/keonU206/Hey-Young-system/internal/adapters/persistence/models"
	"github.com/keonU206/Hey-Young-system/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCourseFixture(t *testing.T, users ...*models.User) (*CourseService, *fakeCourseRepo, *recordingAuditRepo) {
	t.Helper()
	courseRepo := newFakeCourseRepo()
	userRepo := newFakeUserRepo(users...)
	audit := &recordingAuditRepo{}
	return NewCourseService(courseRepo, userRepo, NewAuditService(audit)), courseRepo, audit
}

func instructor(t *testing.T) *models.User {
	t.Helper()
	return seedUser(t, "prof-kim", "secret-pass", "INSTRUCTOR", true)
}

func TestCreateCourse(t *testing.T) {
	svc, _, audit := newCourseFixture(t, instructor(t))

	course, err := svc.Create(context.Background(), 9, &CreateCourseInput{
		Code:         "CS101",
		Title:        "Intro to Computing",
		SemesterID:   1,
		InstructorID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "CS101", course.Code)

	entry := audit.last()
	require.NotNil(t, entry)
	assert.Equal(t, domain.ActionCreate, entry.Action)
	assert.Equal(t, string(domain.TargetCourse), entry.TargetType)
	assert.Equal(t, uint(9), entry.ActorID)
}

func TestCreateCourseValidation(t *testing.T) {
	svc, _, _ := newCourseFixture(t, instructor(t))

	_, err := svc.Create(context.Background(), 9, &CreateCourseInput{
		Code: "CS101",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateCourseInstructorChecks(t *testing.T) {
	inactive := seedUser(t, "prof-gone", "secret-pass", "INSTRUCTOR", false)
	student := seedUser(t, "student", "secret-pass", "STUDENT", true)
	svc, _, _ := newCourseFixture(t, inactive, student)

	input := func(id uint) *CreateCourseInput {
		return &CreateCourseInput{
			Code:         "CS101",
			Title:        "Intro to Computing",
			SemesterID:   1,
			InstructorID: id,
		}
	}

	_, err := svc.Create(context.Background(), 9, input(1))
	assert.ErrorIs(t, err, ErrInstructorInvalid, "inactive instructor")

	_, err = svc.Create(context.Background(), 9, input(2))
	assert.ErrorIs(t, err, ErrInstructorInvalid, "students cannot teach")

	_, err = svc.Create(context.Background(), 9, input(99))
	assert.ErrorIs(t, err, ErrInstructorInvalid, "unknown instructor")
}

func TestCreateCourseDuplicateOffering(t *testing.T) {
	svc, _, _ := newCourseFixture(t, instructor(t))

	section := "A"
	base := &CreateCourseInput{
		Code:         "CS101",
		Title:        "Intro to Computing",
		Section:      &section,
		SemesterID:   1,
		InstructorID: 1,
	}
	_, err := svc.Create(context.Background(), 9, base)
	require.NoError(t, err)

	dup := *base
	_, err = svc.Create(context.Background(), 9, &dup)
	assert.ErrorIs(t, err, ErrCourseOfferingTaken)

	// a different section of the same course is fine
	other := *base
	sectionB := "B"
	other.Section = &sectionB
	_, err = svc.Create(context.Background(), 9, &other)
	assert.NoError(t, err)
}

func TestUpdateCourseInstructorChangeIsTraceable(t *testing.T) {
	prof := instructor(t)
	other := seedUser(t, "prof-lee", "secret-pass", "INSTRUCTOR", true)
	svc, _, audit := newCourseFixture(t, prof, other)

	_, err := svc.Create(context.Background(), 9, &CreateCourseInput{
		Code:         "CS101",
		Title:        "Intro to Computing",
		SemesterID:   1,
		InstructorID: prof.ID,
	})
	require.NoError(t, err)

	newInstructor := other.ID
	course, err := svc.Update(context.Background(), 9, 1, &UpdateCourseInput{
		InstructorID: &newInstructor,
	})
	require.NoError(t, err)
	assert.Equal(t, other.ID, course.InstructorID)

	entry := audit.last()
	require.NotNil(t, entry)
	assert.Equal(t, domain.ActionUpdate, entry.Action)
	assert.Contains(t, string(entry.BeforeData), `"instructor_id":1`)
	assert.Contains(t, string(entry.AfterData), `"instructor_id":2`)
}

func TestDeleteCourse(t *testing.T) {
	svc, courseRepo, audit := newCourseFixture(t, instructor(t))

	_, err := svc.Create(context.Background(), 9, &CreateCourseInput{
		Code:         "CS101",
		Title:        "Intro to Computing",
		SemesterID:   1,
		InstructorID: 1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), 9, 1))

	_, err = courseRepo.GetByID(context.Background(), 1)
	assert.Error(t, err)

	entry := audit.last()
	assert.Equal(t, domain.ActionDelete, entry.Action)

	err = svc.Delete(context.Background(), 9, 1)
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
}
