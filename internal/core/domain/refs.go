package domain

import "fmt"

// StudentRef carries the identity and naming data of a student record
// owned by the student module.
type StudentRef struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	FullName    string `json:"fullName"`
	RegistrarID string `json:"registrarID"` // user who registered the student, may be empty
}

// ReceiptCode returns the code used inside receipt numbers.
func (s StudentRef) ReceiptCode() string {
	if s.Code != "" {
		return s.Code
	}
	return fmt.Sprintf("S%04d", s.ID)
}

// CourseRef carries the identity and naming data of a course record.
type CourseRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// EmployeeRef carries the identity and naming data of an employee record.
type EmployeeRef struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
}

// TeacherRef carries the identity and naming data of a teacher record.
type TeacherRef struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
}
