// Package directory backs the administration tables: users, employees and
// customers. Duplicate checks run locally against the freshly fetched lists,
// the way the admin pages validated before submitting.
package directory

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/dogarmed/storefront/internal/domain/models"
)

// BackendAPI is the slice of the upstream client the directory needs.
type BackendAPI interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, input models.UserInput) error
	UpdateUser(ctx context.Context, id int64, input models.UserInput) error
	DeleteUser(ctx context.Context, id int64) error

	ListEmployees(ctx context.Context) ([]models.Employee, error)
	AddEmployee(ctx context.Context, input models.EmployeeInput) error
	UpdateEmployee(ctx context.Context, employeeID string, input models.EmployeeInput) error
	DeleteEmployee(ctx context.Context, employeeID string) error

	ListCustomers(ctx context.Context) ([]models.Customer, error)
	ListCustomerOrders(ctx context.Context) ([]models.CustomerOrder, error)
	CustomerOrderDetails(ctx context.Context, customerID int64) ([]models.CustomerOrderDetail, error)
}

// ValidationError marks a locally rejected payload; handlers map it to 400.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service owns the administration table logic.
type Service struct {
	backend BackendAPI
	logger  *zap.Logger
}

// NewService wires a directory service instance.
func NewService(backend BackendAPI, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{backend: backend, logger: logger}
}

// --- Users ---

// UserQuery captures the users page's filter and sort controls.
type UserQuery struct {
	Search string
	Role   string
	SortBy string
}

// ListUsers fetches users and applies the page's local controls.
func (s *Service) ListUsers(ctx context.Context, query UserQuery) ([]models.User, error) {
	users, err := s.backend.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return FilterUsers(users, query), nil
}

// FilterUsers applies search, role filter and sort locally.
func FilterUsers(users []models.User, query UserQuery) []models.User {
	search := strings.ToLower(strings.TrimSpace(query.Search))

	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if search != "" {
			haystack := strings.ToLower(strings.Join([]string{u.Username, u.Email, u.FirstName, u.LastName}, " "))
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		if query.Role != "" && u.Role != query.Role {
			continue
		}
		out = append(out, u)
	}

	switch query.SortBy {
	case "username":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	case "email":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	case "role":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Role < out[j].Role })
	}
	return out
}

// UserStatistics aggregates the header cards off the full list.
func UserStatistics(users []models.User) models.UserStats {
	stats := models.UserStats{Total: len(users)}
	for _, u := range users {
		switch u.Role {
		case "owner":
			stats.Owners++
		case "admin":
			stats.Admins++
		case "customer":
			stats.Customers++
		}
	}
	return stats
}

// CreateUser validates against the current list and forwards upstream.
// Username and email matches are exact and case-sensitive.
func (s *Service) CreateUser(ctx context.Context, input models.UserInput) error {
	users, err := s.backend.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("load users for validation: %w", err)
	}

	if err := validateNewUser(input, users); err != nil {
		return err
	}
	if err := s.backend.CreateUser(ctx, input); err != nil {
		return err
	}

	s.logger.Info("user created", zap.String("username", input.Username), zap.String("role", input.Role))
	return nil
}

// UpdateUser validates the edit (email may stay on the same record) and
// forwards upstream. A blank password means "leave unchanged".
func (s *Service) UpdateUser(ctx context.Context, id int64, input models.UserInput) error {
	users, err := s.backend.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("load users for validation: %w", err)
	}

	for _, u := range users {
		if u.Email == input.Email && u.ID != id {
			return &ValidationError{Reason: "Email already exists"}
		}
	}
	if input.Password != "" && len(input.Password) < 6 {
		return &ValidationError{Reason: "Password must be at least 6 characters long"}
	}

	if err := s.backend.UpdateUser(ctx, id, input); err != nil {
		return err
	}

	s.logger.Info("user updated", zap.Int64("user_id", id))
	return nil
}

// DeleteUser forwards a removal upstream.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if err := s.backend.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.Int64("user_id", id))
	return nil
}

func validateNewUser(input models.UserInput, existing []models.User) error {
	for _, u := range existing {
		if u.Username == input.Username {
			return &ValidationError{Reason: "Username already exists"}
		}
		if u.Email == input.Email {
			return &ValidationError{Reason: "Email already exists"}
		}
	}
	if len(input.Password) < 6 {
		return &ValidationError{Reason: "Password must be at least 6 characters long"}
	}
	return nil
}

// --- Employees ---

// EmployeeQuery captures the employees page's filter and sort controls.
type EmployeeQuery struct {
	Search string
	SortBy string
}

// ListEmployees fetches employees and applies the page's local controls.
func (s *Service) ListEmployees(ctx context.Context, query EmployeeQuery) ([]models.Employee, error) {
	employees, err := s.backend.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}
	return FilterEmployees(employees, query), nil
}

// FilterEmployees applies search and sort locally.
func FilterEmployees(employees []models.Employee, query EmployeeQuery) []models.Employee {
	search := strings.ToLower(strings.TrimSpace(query.Search))

	out := make([]models.Employee, 0, len(employees))
	for _, e := range employees {
		if search != "" {
			haystack := strings.ToLower(strings.Join([]string{e.Name, e.Email, e.EmployeeID}, " "))
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		out = append(out, e)
	}

	switch query.SortBy {
	case "name":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	case "salary":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Salary < out[j].Salary })
	}
	return out
}

// EmployeeStatistics aggregates the header cards off the full list.
func EmployeeStatistics(employees []models.Employee) models.EmployeeStats {
	stats := models.EmployeeStats{Total: len(employees)}
	for _, e := range employees {
		stats.TotalSalary += e.Salary
	}
	return stats
}

// AddEmployee validates the form payload and forwards upstream.
func (s *Service) AddEmployee(ctx context.Context, input models.EmployeeInput) error {
	if err := validateEmployee(input); err != nil {
		return err
	}
	if err := s.backend.AddEmployee(ctx, input); err != nil {
		return err
	}

	s.logger.Info("employee added", zap.String("employee_id", input.ID))
	return nil
}

// UpdateEmployee validates the form payload and forwards upstream.
func (s *Service) UpdateEmployee(ctx context.Context, employeeID string, input models.EmployeeInput) error {
	if err := validateEmployee(input); err != nil {
		return err
	}
	if err := s.backend.UpdateEmployee(ctx, employeeID, input); err != nil {
		return err
	}

	s.logger.Info("employee updated", zap.String("employee_id", employeeID))
	return nil
}

// DeleteEmployee forwards a removal upstream.
func (s *Service) DeleteEmployee(ctx context.Context, employeeID string) error {
	if err := s.backend.DeleteEmployee(ctx, employeeID); err != nil {
		return err
	}
	s.logger.Info("employee deleted", zap.String("employee_id", employeeID))
	return nil
}

func validateEmployee(input models.EmployeeInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return &ValidationError{Reason: "Name is required"}
	}
	if !emailPattern.MatchString(input.Email) {
		return &ValidationError{Reason: "Invalid email format"}
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(input.Salary), 64); err != nil {
		return &ValidationError{Reason: "Salary must be a number"}
	}
	return nil
}

// --- Customers ---

// ListCustomers passes the customer table through.
func (s *Service) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	customers, err := s.backend.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	return customers, nil
}

// ListCustomerOrders passes the dashboard's order list through.
func (s *Service) ListCustomerOrders(ctx context.Context) ([]models.CustomerOrder, error) {
	orders, err := s.backend.ListCustomerOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("load customer orders: %w", err)
	}
	return orders, nil
}

// CustomerOrderDetails passes a customer's order drill-down through.
func (s *Service) CustomerOrderDetails(ctx context.Context, customerID int64) ([]models.CustomerOrderDetail, error) {
	details, err := s.backend.CustomerOrderDetails(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("load customer order details: %w", err)
	}
	return details, nil
}
