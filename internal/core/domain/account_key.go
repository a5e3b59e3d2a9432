package domain

import "fmt"

// AccountKind identifies a well-known account or a family of per-entity accounts.
type AccountKind int

const (
	KindAssetsRoot AccountKind = iota + 1
	KindCurrentAssets
	KindCash
	KindStudentARRoot
	KindStudentAR
	KindEnrollmentARRoot
	KindEnrollmentARCourse
	KindEnrollmentAR
	KindAdvances
	KindLiabilitiesRoot
	KindCurrentLiabilities
	KindDeferredRevenueRoot
	KindCourseDeferredRevenue
	KindEquityRoot
	KindCapital
	KindRevenueRoot
	KindEarnedRevenueRoot
	KindCourseEarnedRevenue
	KindExpensesRoot
	KindExpenseCategory
	KindEmployeeSalary
	KindTeacherSalary
	KindRevenueReturns
)

// ExpenseCategory classifies an expense entry.
type ExpenseCategory string

const (
	CategorySalary        ExpenseCategory = "SALARY"
	CategoryTeacherSalary ExpenseCategory = "TEACHER_SALARY"
	CategoryRent          ExpenseCategory = "RENT"
	CategoryUtilities     ExpenseCategory = "UTILITIES"
	CategorySupplies      ExpenseCategory = "SUPPLIES"
	CategoryMarketing     ExpenseCategory = "MARKETING"
	CategoryMaintenance   ExpenseCategory = "MAINTENANCE"
	CategoryOther         ExpenseCategory = "OTHER"
)

var categoryCodes = map[ExpenseCategory]string{
	CategorySalary:        "5100",
	CategoryTeacherSalary: "5110",
	CategoryRent:          "5200",
	CategoryUtilities:     "5300",
	CategorySupplies:      "5400",
	CategoryMarketing:     "5500",
	CategoryMaintenance:   "5600",
	CategoryOther:         "5900",
}

var categoryNames = map[ExpenseCategory]string{
	CategorySalary:        "Salaries",
	CategoryTeacherSalary: "Teacher Salaries",
	CategoryRent:          "Rent",
	CategoryUtilities:     "Utilities",
	CategorySupplies:      "Supplies",
	CategoryMarketing:     "Marketing",
	CategoryMaintenance:   "Maintenance",
	CategoryOther:         "Other Expenses",
}

// IsValid reports whether c is a known category.
func (c ExpenseCategory) IsValid() bool {
	_, ok := categoryCodes[c]
	return ok
}

// ExpenseCategories lists every category in chart order.
func ExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{
		CategorySalary, CategoryTeacherSalary, CategoryRent, CategoryUtilities,
		CategorySupplies, CategoryMarketing, CategoryMaintenance, CategoryOther,
	}
}

// AccountKey is the typed address of an account. The string code is derived
// from it only when talking to storage.
type AccountKey struct {
	Kind       AccountKind
	CourseID   int64
	StudentID  int64
	EmployeeID int64
	TeacherID  int64
	Category   ExpenseCategory
}

func KeyFor(kind AccountKind) AccountKey { return AccountKey{Kind: kind} }

func StudentARKey(studentID int64) AccountKey {
	return AccountKey{Kind: KindStudentAR, StudentID: studentID}
}

func EnrollmentARKey(courseID, studentID int64) AccountKey {
	return AccountKey{Kind: KindEnrollmentAR, CourseID: courseID, StudentID: studentID}
}

func CourseDeferredRevenueKey(courseID int64) AccountKey {
	return AccountKey{Kind: KindCourseDeferredRevenue, CourseID: courseID}
}

func CourseEarnedRevenueKey(courseID int64) AccountKey {
	return AccountKey{Kind: KindCourseEarnedRevenue, CourseID: courseID}
}

func ExpenseCategoryKey(category ExpenseCategory) AccountKey {
	return AccountKey{Kind: KindExpenseCategory, Category: category}
}

func EmployeeSalaryKey(employeeID int64) AccountKey {
	return AccountKey{Kind: KindEmployeeSalary, EmployeeID: employeeID}
}

func TeacherSalaryKey(teacherID int64) AccountKey {
	return AccountKey{Kind: KindTeacherSalary, TeacherID: teacherID}
}

// Code maps the key to its chart-of-accounts code.
func (k AccountKey) Code() string {
	switch k.Kind {
	case KindAssetsRoot:
		return "1000"
	case KindCurrentAssets:
		return "1200"
	case KindCash:
		return "1211"
	case KindStudentARRoot:
		return "1250"
	case KindStudentAR:
		return fmt.Sprintf("1250-S%04d", k.StudentID)
	case KindEnrollmentARRoot:
		return "1251"
	case KindEnrollmentARCourse:
		return fmt.Sprintf("1251-C%03d", k.CourseID)
	case KindEnrollmentAR:
		return fmt.Sprintf("1251-C%03d-S%04d", k.CourseID, k.StudentID)
	case KindAdvances:
		return "1300"
	case KindLiabilitiesRoot:
		return "2000"
	case KindCurrentLiabilities:
		return "2100"
	case KindDeferredRevenueRoot:
		return "2101"
	case KindCourseDeferredRevenue:
		return fmt.Sprintf("2101-%03d", k.CourseID)
	case KindEquityRoot:
		return "3000"
	case KindCapital:
		return "3100"
	case KindRevenueRoot:
		return "4000"
	case KindEarnedRevenueRoot:
		return "4100"
	case KindCourseEarnedRevenue:
		return fmt.Sprintf("4100-%03d", k.CourseID)
	case KindExpensesRoot:
		return "5000"
	case KindExpenseCategory:
		return categoryCodes[k.Category]
	case KindEmployeeSalary:
		return fmt.Sprintf("5100-%04d", k.EmployeeID)
	case KindTeacherSalary:
		return fmt.Sprintf("5110-%04d", k.TeacherID)
	case KindRevenueReturns:
		return "5800"
	}
	return ""
}

// Parent returns the key of the parent account, if any.
func (k AccountKey) Parent() (AccountKey, bool) {
	switch k.Kind {
	case KindCurrentAssets, KindAdvances:
		return KeyFor(KindAssetsRoot), true
	case KindCash, KindStudentARRoot, KindEnrollmentARRoot:
		return KeyFor(KindCurrentAssets), true
	case KindStudentAR:
		return KeyFor(KindStudentARRoot), true
	case KindEnrollmentARCourse:
		return KeyFor(KindEnrollmentARRoot), true
	case KindEnrollmentAR:
		return AccountKey{Kind: KindEnrollmentARCourse, CourseID: k.CourseID}, true
	case KindCurrentLiabilities:
		return KeyFor(KindLiabilitiesRoot), true
	case KindDeferredRevenueRoot:
		return KeyFor(KindCurrentLiabilities), true
	case KindCourseDeferredRevenue:
		return KeyFor(KindDeferredRevenueRoot), true
	case KindCapital:
		return KeyFor(KindEquityRoot), true
	case KindEarnedRevenueRoot:
		return KeyFor(KindRevenueRoot), true
	case KindCourseEarnedRevenue:
		return KeyFor(KindEarnedRevenueRoot), true
	case KindExpenseCategory, KindRevenueReturns:
		return KeyFor(KindExpensesRoot), true
	case KindEmployeeSalary:
		return ExpenseCategoryKey(CategorySalary), true
	case KindTeacherSalary:
		return ExpenseCategoryKey(CategoryTeacherSalary), true
	}
	return AccountKey{}, false
}

// AccountType returns the type an account created for this key gets.
func (k AccountKey) AccountType() AccountType {
	switch k.Kind {
	case KindLiabilitiesRoot, KindCurrentLiabilities, KindDeferredRevenueRoot, KindCourseDeferredRevenue:
		return Liability
	case KindEquityRoot, KindCapital:
		return Equity
	case KindRevenueRoot, KindEarnedRevenueRoot, KindCourseEarnedRevenue:
		return Revenue
	case KindExpensesRoot, KindExpenseCategory, KindEmployeeSalary, KindTeacherSalary, KindRevenueReturns:
		return Expense
	}
	return Asset
}

// DefaultName is the name used for fixed accounts and as the prefix for per-entity ones.
func (k AccountKey) DefaultName() string {
	switch k.Kind {
	case KindAssetsRoot:
		return "Assets"
	case KindCurrentAssets:
		return "Current Assets"
	case KindCash:
		return "Cash"
	case KindStudentARRoot:
		return "Students Receivable"
	case KindStudentAR:
		return "ST"
	case KindEnrollmentARRoot:
		return "Enrollment Receivables"
	case KindEnrollmentARCourse:
		return "Enrollment Receivables"
	case KindEnrollmentAR:
		return "AR"
	case KindAdvances:
		return "Employee Advances"
	case KindLiabilitiesRoot:
		return "Liabilities"
	case KindCurrentLiabilities:
		return "Current Liabilities"
	case KindDeferredRevenueRoot:
		return "Course Revenues Received (In advance)"
	case KindCourseDeferredRevenue:
		return "Deferred Revenue"
	case KindEquityRoot:
		return "Equity"
	case KindCapital:
		return "Capital"
	case KindRevenueRoot:
		return "Revenue"
	case KindEarnedRevenueRoot:
		return "Course Revenue"
	case KindCourseEarnedRevenue:
		return "Earned Revenue"
	case KindExpensesRoot:
		return "Expenses"
	case KindExpenseCategory:
		return categoryNames[k.Category]
	case KindEmployeeSalary:
		return "Salary"
	case KindTeacherSalary:
		return "Teacher Salary"
	case KindRevenueReturns:
		return "Revenue Returns"
	}
	return ""
}

// ChartKeys lists the fixed accounts of the standard chart, parents first.
func ChartKeys() []AccountKey {
	keys := []AccountKey{
		KeyFor(KindAssetsRoot),
		KeyFor(KindCurrentAssets),
		KeyFor(KindCash),
		KeyFor(KindStudentARRoot),
		KeyFor(KindEnrollmentARRoot),
		KeyFor(KindAdvances),
		KeyFor(KindLiabilitiesRoot),
		KeyFor(KindCurrentLiabilities),
		KeyFor(KindDeferredRevenueRoot),
		KeyFor(KindEquityRoot),
		KeyFor(KindCapital),
		KeyFor(KindRevenueRoot),
		KeyFor(KindEarnedRevenueRoot),
		KeyFor(KindExpensesRoot),
	}
	for _, c := range ExpenseCategories() {
		keys = append(keys, ExpenseCategoryKey(c))
	}
	return append(keys, KeyFor(KindRevenueReturns))
}
