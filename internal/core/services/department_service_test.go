package services

import (
	"context"
	"testing"

	"github.com/keonU206/Hey-Young-system/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/gorm"
)

func newDeptFixture(t *testing.T) (*DepartmentService, *fakeDepartmentRepo, *recordingAuditRepo) {
	t.Helper()
	repo := newFakeDepartmentRepo()
	audit := &recordingAuditRepo{}
	return NewDepartmentService(repo, NewAuditService(audit)), repo, audit
}

func TestCreateDepartment(t *testing.T) {
	svc, _, audit := newDeptFixture(t)

	dept, err := svc.Create(context.Background(), 4, &CreateDepartmentInput{
		Code: "CSE",
		Name: "Computer Science",
	})
	require.NoError(t, err)
	assert.Equal(t, "CSE", dept.Code)
	assert.True(t, dept.IsActive)

	entry := audit.last()
	require.NotNil(t, entry)
	assert.Equal(t, domain.ActionCreate, entry.Action)
	assert.Equal(t, string(domain.TargetDepartment), entry.TargetType)
	assert.Equal(t, uint(4), entry.ActorID)
	assert.Empty(t, entry.BeforeData)
}

func TestCreateDepartmentValidation(t *testing.T) {
	svc, _, _ := newDeptFixture(t)

	_, err := svc.Create(context.Background(), 4, &CreateDepartmentInput{Code: "CSE"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Create(context.Background(), 4, &CreateDepartmentInput{Name: "Computer Science"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateDepartmentDuplicateCode(t *testing.T) {
	svc, _, _ := newDeptFixture(t)

	_, err := svc.Create(context.Background(), 4, &CreateDepartmentInput{
		Code: "CSE",
		Name: "Computer Science",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), 4, &CreateDepartmentInput{
		Code: "CSE",
		Name: "Something Else",
	})
	assert.ErrorIs(t, err, ErrDeptCodeTaken)
}

func TestUpdateDepartment(t *testing.T) {
	svc, _, audit := newDeptFixture(t)

	_, err := svc.Create(context.Background(), 4, &CreateDepartmentInput{
		Code: "CSE",
		Name: "Computer Science",
	})
	require.NoError(t, err)

	inactive := false
	newName := "Computer Science & Engineering"
	dept, err := svc.Update(context.Background(), 4, 1, &UpdateDepartmentInput{
		Name:     &newName,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, newName, dept.Name)
	assert.False(t, dept.IsActive)

	entry := audit.last()
	require.NotNil(t, entry)
	assert.Equal(t, domain.ActionUpdate, entry.Action)
	assert.Contains(t, string(entry.BeforeData), "Computer Science")
	assert.Contains(t, string(entry.AfterData), "Engineering")
}

func TestUpdateDepartmentNotFound(t *testing.T) {
	svc, _, _ := newDeptFixture(t)

	name := "Anything"
	_, err := svc.Update(context.Background(), 4, 99, &UpdateDepartmentInput{Name: &name})
	assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)
}

func TestDeleteDepartment(t *testing.T) {
	svc, repo, audit := newDeptFixture(t)

	_, err := svc.Create(context.Background(), 4, &CreateDepartmentInput{
		Code: "CSE",
		Name: "Computer Science",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), 4, 1))

	_, err = repo.GetByID(context.Background(), 1)
	assert.Error(t, err)

	entry := audit.last()
	assert.Equal(t, domain.ActionDelete, entry.Action)
	assert.Empty(t, entry.AfterData)
}

func TestDeleteDepartmentReferenced(t *testing.T) {
	svc, repo, _ := newDeptFixture(t)

	_, err := svc.Create(context.Background(), 4, &CreateDepartmentInput{
		Code: "CSE",
		Name: "Computer Science",
	})
	require.NoError(t, err)

	repo.deleteErr = gorm.ErrForeignKeyViolated
	err = svc.Delete(context.Background(), 4, 1)
	assert.ErrorIs(t, err, domain.ErrReferencedRow)
}
