package domain

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidStaffSelection возвращается при некорректном идентификаторе сотрудника
var ErrInvalidStaffSelection = errors.New("invalid staff selection")

// anyStaffToken внешнее значение "любой сотрудник"
const anyStaffToken = "any"

// StaffSelection either "any staff member" or one specific staff member
type StaffSelection struct {
	id int64 // 0 - любой
}

// AnyStaff returns the "any staff member" selection
func AnyStaff() StaffSelection {
	return StaffSelection{}
}

// SpecificStaff returns a selection pinned to one staff member
func SpecificStaff(id int64) StaffSelection {
	return StaffSelection{id: id}
}

// ParseStaffSelection parses the external form: "", "any" or a positive id
func ParseStaffSelection(raw string) (StaffSelection, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, anyStaffToken) {
		return AnyStaff(), nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return StaffSelection{}, ErrInvalidStaffSelection
	}
	return SpecificStaff(id), nil
}

// IsAny returns true for the "any staff member" selection
func (s StaffSelection) IsAny() bool {
	return s.id == 0
}

// StaffID returns the pinned staff id and true, or 0 and false for Any
func (s StaffSelection) StaffID() (int64, bool) {
	return s.id, s.id != 0
}

// String returns the external form
func (s StaffSelection) String() string {
	if s.IsAny() {
		return anyStaffToken
	}
	return strconv.FormatInt(s.id, 10)
}

// Mode label for metrics and logs
func (s StaffSelection) Mode() string {
	if s.IsAny() {
		return "any"
	}
	return "specific"
}
