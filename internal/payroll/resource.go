package payroll

import (
	"github.com/odyssey-erp/bizdesk/internal/datatable"
	"github.com/odyssey-erp/bizdesk/internal/listing"
)

const (
	EmployeesName = "employees"
	SchedulesName = "payroll"
)

func EmployeeColumns(actions *datatable.ActionRegistry) []datatable.Column {
	return datatable.WithActions([]datatable.Column{
		datatable.Text("code", "employees.code"),
		datatable.Text("name", "employees.name"),
		datatable.Text("position", "employees.position"),
		datatable.Text("department", "employees.department"),
		datatable.Money("baseSalary", "employees.baseSalary"),
		datatable.Date("hiredOn", "employees.hiredOn"),
		datatable.Badge("status", "employees.status", listing.StatusOptions("active", "terminated")...),
	}, actions)
}

func ScheduleColumns(actions *datatable.ActionRegistry) []datatable.Column {
	return datatable.WithActions([]datatable.Column{
		datatable.Text("name", "payroll.name"),
		datatable.Badge("frequency", "payroll.frequency", listing.KeyedOptions("frequency", FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly)...),
		datatable.Number("employees", "payroll.employees"),
		datatable.Money("total", "payroll.total"),
		datatable.Date("nextRun", "payroll.nextRun"),
		datatable.Date("lastRun", "payroll.lastRun"),
		datatable.Badge("status", "payroll.status", listing.StatusOptions("active", "paused")...),
	}, actions)
}

func EmployeesResource(repo Repository, deps listing.Deps) listing.Resource {
	return listing.Resource{
		Name:         EmployeesName,
		TitleKey:     "employees.title",
		SearchColumn: "name",
		Columns:      EmployeeColumns,
		Load:         listing.Cached(deps.Cache, EmployeesName, repo.ListEmployees),
		Actions:      deps.StandardActions(EmployeesName, repo.DeleteEmployee),
		Selectable:   true,
	}
}

// SchedulesResource builds the payroll schedule list with the run action.
func SchedulesResource(repo Repository, svc *Service, deps listing.Deps) listing.Resource {
	actions := deps.StandardActions(SchedulesName, repo.DeleteSchedule).
		Register(datatable.Action{Kind: datatable.ActionRun, Confirm: true, Handler: listing.ByID(svc.RequestRun)})
	return listing.Resource{
		Name:         SchedulesName,
		TitleKey:     "payroll.title",
		SearchColumn: "name",
		Columns:      ScheduleColumns,
		Load:         listing.Cached(deps.Cache, SchedulesName, repo.ListSchedules),
		Actions:      actions,
	}
}
