package employee

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDepartmentRepo struct {
	department.DepartmentRepository
	names map[int64]string
}

func (f *fakeDepartmentRepo) GetByID(_ context.Context, id int64) (department.Department, error) {
	name, ok := f.names[id]
	if !ok {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	return department.Department{ID: id, Name: name}, nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	departments *fakeDepartmentRepo
	employees   map[int64]employee.Employee
	nextID      int64
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id int64) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if e.DepartmentID != nil {
		name := f.departments.names[*e.DepartmentID]
		e.DepartmentName = &name
	}
	return e, nil
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	e.ID = f.nextID
	f.nextID++
	f.employees[e.ID] = e
	return e, nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, e employee.Employee) (employee.Employee, error) {
	f.employees[e.ID] = e
	return e, nil
}

func (f *fakeEmployeeRepo) Delete(_ context.Context, id int64) error {
	delete(f.employees, id)
	return nil
}

func (f *fakeEmployeeRepo) ListByDepartment(_ context.Context, departmentID int64) ([]employee.Employee, error) {
	var out []employee.Employee
	for id := int64(1); id < f.nextID; id++ {
		if e, ok := f.employees[id]; ok && e.DepartmentID != nil && *e.DepartmentID == departmentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func setupEmployeeService() (employee.EmployeeService, *fakeEmployeeRepo) {
	depts := &fakeDepartmentRepo{names: map[int64]string{1: "研发部"}}
	repo := &fakeEmployeeRepo{departments: depts, employees: map[int64]employee.Employee{}, nextID: 1}
	return NewEmployeeService(repo, depts), repo
}

func ptr[T any](v T) *T { return &v }

func TestEmployeeService_Create(t *testing.T) {
	svc, repo := setupEmployeeService()
	ctx := context.Background()

	resp, err := svc.Create(ctx, employee.CreateEmployeeRequest{
		Name:         "张三",
		DepartmentID: ptr(int64(1)),
		HireDate:     ptr("2023-03-15"),
		Salary:       ptr(decimal.NewFromInt(8000)),
	})
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", resp.Status)
	require.NotNil(t, resp.DepartmentName)
	assert.Equal(t, "研发部", *resp.DepartmentName)
	require.NotNil(t, resp.HireDate)
	assert.Equal(t, "2023-03-15", *resp.HireDate)
	assert.Equal(t, employee.StatusActive, repo.employees[resp.ID].Status)

	_, err = svc.Create(ctx, employee.CreateEmployeeRequest{Name: "李四", DepartmentID: ptr(int64(42))})
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
}

func TestEmployeeService_Update(t *testing.T) {
	svc, _ := setupEmployeeService()
	ctx := context.Background()

	created, err := svc.Create(ctx, employee.CreateEmployeeRequest{Name: "王五"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, employee.UpdateEmployeeRequest{
		ID:           created.ID,
		Name:         "王五",
		DepartmentID: ptr(int64(1)),
		Status:       ptr("RESIGNED"),
	})
	require.NoError(t, err)
	assert.Equal(t, "RESIGNED", updated.Status)
	assert.Equal(t, int64(1), *updated.DepartmentID)

	kept, err := svc.Update(ctx, employee.UpdateEmployeeRequest{ID: created.ID, Name: "王五"})
	require.NoError(t, err)
	assert.Equal(t, "RESIGNED", kept.Status)

	_, err = svc.Update(ctx, employee.UpdateEmployeeRequest{ID: 99, Name: "x"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeService_ListByDepartment(t *testing.T) {
	svc, _ := setupEmployeeService()
	ctx := context.Background()

	_, err := svc.Create(ctx, employee.CreateEmployeeRequest{Name: "甲", DepartmentID: ptr(int64(1))})
	require.NoError(t, err)
	_, err = svc.Create(ctx, employee.CreateEmployeeRequest{Name: "乙"})
	require.NoError(t, err)

	list, err := svc.ListByDepartment(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "甲", list[0].Name)

	_, err = svc.ListByDepartment(ctx, 7)
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
}

func TestEmployeeService_Delete(t *testing.T) {
	svc, _ := setupEmployeeService()
	ctx := context.Background()

	created, err := svc.Create(ctx, employee.CreateEmployeeRequest{Name: "丙"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), employee.ErrEmployeeNotFound)
}
