package models

// User is one row of the admin users table.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// UserInput carries a create/update payload for a user. Password may be blank
// on edit, in which case it is left unchanged upstream.
type UserInput struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role" binding:"required"`
	Password  string `json:"password,omitempty"`
}

// UserStats feeds the admin page's header cards.
type UserStats struct {
	Total     int `json:"total"`
	Owners    int `json:"owners"`
	Admins    int `json:"admins"`
	Customers int `json:"customers"`
}

// Employee is one row of the employee administration table.
type Employee struct {
	EmployeeID string  `json:"employee_id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	CNIC       string  `json:"cnic"`
	Emergency  string  `json:"emergency"`
	Role       string  `json:"role"`
	Salary     float64 `json:"salary"`
}

// EmployeeInput carries an add/update payload. Salary arrives as text from
// the form and is validated as numeric before the request goes upstream.
type EmployeeInput struct {
	ID               string `json:"id" binding:"required"`
	Name             string `json:"name" binding:"required"`
	Email            string `json:"email" binding:"required"`
	Phone            string `json:"phone"`
	CNIC             string `json:"cnic"`
	EmergencyContact string `json:"emergency_contact"`
	Role             string `json:"role"`
	Salary           string `json:"salary" binding:"required"`
}

// EmployeeStats feeds the employee page's header cards.
type EmployeeStats struct {
	Total       int     `json:"total"`
	TotalSalary float64 `json:"total_salary"`
}

// Customer is one row of the customer dashboard table.
type Customer struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// CustomerOrder is a customer's order header as listed on the dashboard.
type CustomerOrder struct {
	OrderID     int64   `json:"order_id"`
	CustomerID  int64   `json:"customer_id"`
	OrderDate   string  `json:"order_date"`
	TotalAmount float64 `json:"total_amount"`
	PaidAmount  float64 `json:"paid_amount"`
	Status      string  `json:"status,omitempty"`
}

// CustomerOrderDetail is one line of a customer's order history drill-down.
type CustomerOrderDetail struct {
	OrderID     int64   `json:"order_id"`
	OrderDate   string  `json:"order_date"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}
