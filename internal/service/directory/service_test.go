package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dogarmed/storefront/internal/domain/models"
)

type fakeDirectoryBackend struct {
	BackendAPI

	users        []models.User
	createdUsers []models.UserInput
	updatedUsers map[int64]models.UserInput

	employees     []models.Employee
	addedEmployee *models.EmployeeInput
}

func (f *fakeDirectoryBackend) ListUsers(context.Context) ([]models.User, error) {
	return f.users, nil
}

func (f *fakeDirectoryBackend) CreateUser(_ context.Context, input models.UserInput) error {
	f.createdUsers = append(f.createdUsers, input)
	return nil
}

func (f *fakeDirectoryBackend) UpdateUser(_ context.Context, id int64, input models.UserInput) error {
	if f.updatedUsers == nil {
		f.updatedUsers = make(map[int64]models.UserInput)
	}
	f.updatedUsers[id] = input
	return nil
}

func (f *fakeDirectoryBackend) ListEmployees(context.Context) ([]models.Employee, error) {
	return f.employees, nil
}

func (f *fakeDirectoryBackend) AddEmployee(_ context.Context, input models.EmployeeInput) error {
	f.addedEmployee = &input
	return nil
}

func sampleUsers() []models.User {
	return []models.User{
		{ID: 1, Username: "hamza", Email: "hamza@dogarmed.pk", FirstName: "Hamza", LastName: "Dogar", Role: "admin"},
		{ID: 2, Username: "sara", Email: "sara@dogarmed.pk", FirstName: "Sara", LastName: "Khan", Role: "customer"},
		{ID: 3, Username: "owner1", Email: "owner@dogarmed.pk", Role: "owner"},
	}
}

func TestCreateUserRejectsDuplicateUsernameCaseSensitive(t *testing.T) {
	backend := &fakeDirectoryBackend{users: sampleUsers()}
	svc := NewService(backend, nil)
	ctx := context.Background()

	var vErr *ValidationError
	err := svc.CreateUser(ctx, models.UserInput{Username: "hamza", Email: "new@dogarmed.pk", Role: "admin", Password: "secret1"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Username already exists", vErr.Reason)

	// A different case is a different username under the exact-match rule.
	err = svc.CreateUser(ctx, models.UserInput{Username: "Hamza", Email: "new@dogarmed.pk", Role: "admin", Password: "secret1"})
	require.NoError(t, err)
	require.Len(t, backend.createdUsers, 1)
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	backend := &fakeDirectoryBackend{users: sampleUsers()}
	svc := NewService(backend, nil)

	var vErr *ValidationError
	err := svc.CreateUser(context.Background(), models.UserInput{Username: "fresh", Email: "sara@dogarmed.pk", Role: "customer", Password: "secret1"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Email already exists", vErr.Reason)
}

func TestCreateUserRequiresPassword(t *testing.T) {
	backend := &fakeDirectoryBackend{users: sampleUsers()}
	svc := NewService(backend, nil)

	var vErr *ValidationError
	err := svc.CreateUser(context.Background(), models.UserInput{Username: "fresh", Email: "fresh@dogarmed.pk", Role: "customer", Password: "abc"})
	require.ErrorAs(t, err, &vErr)
}

func TestUpdateUserAllowsOwnEmail(t *testing.T) {
	backend := &fakeDirectoryBackend{users: sampleUsers()}
	svc := NewService(backend, nil)
	ctx := context.Background()

	err := svc.UpdateUser(ctx, 2, models.UserInput{Username: "sara", Email: "sara@dogarmed.pk", Role: "customer"})
	require.NoError(t, err)

	var vErr *ValidationError
	err = svc.UpdateUser(ctx, 2, models.UserInput{Username: "sara", Email: "hamza@dogarmed.pk", Role: "customer"})
	require.ErrorAs(t, err, &vErr)
}

func TestFilterUsersSearchAndRole(t *testing.T) {
	users := sampleUsers()

	out := FilterUsers(users, UserQuery{Search: "KHAN"})
	require.Len(t, out, 1)
	assert.Equal(t, "sara", out[0].Username)

	out = FilterUsers(users, UserQuery{Role: "admin"})
	require.Len(t, out, 1)
	assert.Equal(t, "hamza", out[0].Username)
}

func TestUserStatistics(t *testing.T) {
	stats := UserStatistics(sampleUsers())
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Owners)
	assert.Equal(t, 1, stats.Admins)
	assert.Equal(t, 1, stats.Customers)
}

func TestAddEmployeeValidation(t *testing.T) {
	backend := &fakeDirectoryBackend{}
	svc := NewService(backend, nil)
	ctx := context.Background()

	var vErr *ValidationError

	err := svc.AddEmployee(ctx, models.EmployeeInput{ID: "EMP1", Name: "Bilal", Email: "not-an-email", Salary: "50000"})
	require.ErrorAs(t, err, &vErr)

	err = svc.AddEmployee(ctx, models.EmployeeInput{ID: "EMP1", Name: "Bilal", Email: "bilal@dogarmed.pk", Salary: "fifty"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Salary must be a number", vErr.Reason)

	err = svc.AddEmployee(ctx, models.EmployeeInput{ID: "EMP1", Name: "Bilal", Email: "bilal@dogarmed.pk", Salary: "50000"})
	require.NoError(t, err)
	require.NotNil(t, backend.addedEmployee)
}

func TestEmployeeStatistics(t *testing.T) {
	stats := EmployeeStatistics([]models.Employee{
		{EmployeeID: "E1", Salary: 40000},
		{EmployeeID: "E2", Salary: 60000},
	})
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 100000.0, stats.TotalSalary)
}
