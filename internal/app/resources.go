package app

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odyssey-erp/bizdesk/internal/assets"
	"github.com/odyssey-erp/bizdesk/internal/audit"
	"github.com/odyssey-erp/bizdesk/internal/expenses"
	"github.com/odyssey-erp/bizdesk/internal/listing"
	"github.com/odyssey-erp/bizdesk/internal/masterdata/categories"
	"github.com/odyssey-erp/bizdesk/internal/masterdata/customers"
	"github.com/odyssey-erp/bizdesk/internal/masterdata/suppliers"
	"github.com/odyssey-erp/bizdesk/internal/masterdata/taxes"
	"github.com/odyssey-erp/bizdesk/internal/payroll"
	"github.com/odyssey-erp/bizdesk/internal/purchases"
	"github.com/odyssey-erp/bizdesk/internal/rbac"
	"github.com/odyssey-erp/bizdesk/internal/roles"
	"github.com/odyssey-erp/bizdesk/internal/sales"
)

// ResourceDeps groups what the list resources are built from.
type ResourceDeps struct {
	Pool         *pgxpool.Pool
	Cache        *listing.Cache
	FormsBaseURL string
	PayrollQueue payroll.RunQueue
}

// Resources is the registered list pages plus the services jobs need.
type Resources struct {
	Registry *listing.Registry
	Payroll  *payroll.Service
	RBAC     *rbac.Service
}

// BuildResources registers every list page in sidebar order.
func BuildResources(d ResourceDeps) (*Resources, error) {
	deps := listing.Deps{Cache: d.Cache, FormsBaseURL: d.FormsBaseURL}

	payrollRepo := payroll.NewRepository(d.Pool)
	payrollService := payroll.NewService(payrollRepo, d.PayrollQueue)
	assetRepo := assets.NewRepository(d.Pool)
	rbacService := rbac.NewService(d.Pool)

	registry, err := listing.NewRegistry(
		expenses.Resource(expenses.NewRepository(d.Pool), deps),
		purchases.Resource(purchases.NewRepository(d.Pool), deps),
		sales.Resource(sales.NewRepository(d.Pool), deps),
		suppliers.Resource(suppliers.NewRepository(d.Pool), deps),
		customers.Resource(customers.NewRepository(d.Pool), deps),
		payroll.EmployeesResource(payrollRepo, deps),
		payroll.SchedulesResource(payrollRepo, payrollService, deps),
		assets.Resource(assetRepo, assets.NewService(assetRepo), deps),
		taxes.Resource(taxes.NewRepository(d.Pool), deps),
		categories.Resource(categories.NewRepository(d.Pool), deps),
		rbac.PermissionsResource(rbacService, deps),
		roles.Resource(roles.NewRepository(d.Pool), deps),
		audit.Resource(audit.NewRepository(d.Pool)),
	)
	if err != nil {
		return nil, err
	}
	return &Resources{Registry: registry, Payroll: payrollService, RBAC: rbacService}, nil
}
