package user

type Permission string

const (
	// Self service
	PermissionAttendanceCheck Permission = "attendance.check"
	PermissionAttendanceView  Permission = "attendance.view"
	PermissionLeaveApply      Permission = "leave.apply"
	PermissionLeaveView       Permission = "leave.view"
	PermissionSalaryView      Permission = "salary.view"
	PermissionDirectoryView   Permission = "directory.view"
	PermissionAIUse           Permission = "ai.use"

	// Administration
	PermissionUserManage       Permission = "user.manage"
	PermissionDepartmentManage Permission = "department.manage"
	PermissionEmployeeManage   Permission = "employee.manage"
	PermissionLeaveApprove     Permission = "leave.approve"
	PermissionSalaryManage     Permission = "salary.manage"
	PermissionReportExport     Permission = "report.export"
	PermissionOperationLogView Permission = "oplog.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionAttendanceCheck,
		PermissionAttendanceView,
		PermissionLeaveApply,
		PermissionLeaveView,
		PermissionSalaryView,
		PermissionDirectoryView,
		PermissionAIUse,
		PermissionUserManage,
		PermissionDepartmentManage,
		PermissionEmployeeManage,
		PermissionLeaveApprove,
		PermissionSalaryManage,
		PermissionReportExport,
		PermissionOperationLogView,
	},
	RoleUser: {
		PermissionAttendanceCheck,
		PermissionAttendanceView,
		PermissionLeaveApply,
		PermissionLeaveView,
		PermissionSalaryView,
		PermissionDirectoryView,
		PermissionAIUse,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
