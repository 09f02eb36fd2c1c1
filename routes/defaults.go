package routes

import "github.com/goliatone/go-accessgate/gate"

// Area names for the console's navigable areas.
const (
	AreaLogin                 = "login"
	AreaTenantSelection       = "tenant-selection"
	AreaProjectSelection      = "project-selection"
	AreaNoAccess              = "no-access"
	AreaDashboard             = "dashboard"
	AreaBatches               = "batches"
	AreaBatchesCreate         = "batches.create"
	AreaProjects              = "projects"
	AreaProjectsCreate        = "projects.create"
	AreaProjectsEdit          = "projects.edit"
	AreaSchemas               = "schemas"
	AreaSchemasCreate         = "schemas.create"
	AreaSchemasEdit           = "schemas.edit"
	AreaFieldMapping          = "field-mapping"
	AreaFieldMappingCreate    = "field-mapping.create"
	AreaOrderFlow             = "order-flow"
	AreaUsers                 = "users"
	AreaRoles                 = "roles"
	AreaTenants               = "tenants"
	AreaOrderStatusManagement = "order-status-management"
	AreaGlobalSchemas         = "global-schemas"
	AreaGlobalSchemasCreate   = "global-schemas.create"
	AreaGlobalSchemasEdit     = "global-schemas.edit"
	AreaOrders                = "orders"
	AreaOrderDetail           = "orders.detail"
	AreaSettings              = "settings"
)

// Default returns the console's complete area table. Areas without a
// requirement but with AuthOnly need an authenticated principal; paths not
// matched by any definition redirect to login.
func Default() *StaticCatalog {
	return NewStatic([]Definition{
		{Name: AreaLogin, Path: "/login", Public: true},
		{Name: AreaTenantSelection, Path: "/tenant-selection", AuthOnly: true},
		{Name: AreaProjectSelection, Path: "/project-selection", AuthOnly: true},
		{Name: AreaNoAccess, Path: "/no-access", AuthOnly: true},
		{Name: AreaDashboard, Path: "/dashboard", Requirement: gate.RequireAny(
			gate.PermissionViewReports,
			gate.PermissionViewProjects,
			gate.PermissionAssignRoles,
			gate.PermissionViewUsers,
		)},
		{Name: AreaBatches, Path: "/batches", Requirement: gate.RequirePermission(gate.PermissionViewBatches)},
		{Name: AreaBatchesCreate, Path: "/batches/create", Requirement: gate.RequireAny(
			gate.PermissionCreateBatches,
			gate.PermissionCreateOrder,
		)},
		{Name: AreaProjects, Path: "/projects", Requirement: gate.RequirePermission(gate.PermissionViewProjects)},
		{Name: AreaProjectsCreate, Path: "/projects/create", Requirement: gate.RequirePermission(gate.PermissionCreateProjects)},
		{Name: AreaProjectsEdit, Path: "/projects/:id/edit", Requirement: gate.RequirePermission(gate.PermissionUpdateProjects)},
		{Name: AreaSchemas, Path: "/schemas", Requirement: gate.RequirePermission(gate.PermissionViewSchemas)},
		{Name: AreaSchemasCreate, Path: "/schemas/create", Requirement: gate.RequirePermission(gate.PermissionCreateSchemas)},
		{Name: AreaSchemasEdit, Path: "/schemas/:id/edit", Requirement: gate.RequirePermission(gate.PermissionUpdateSchemas)},
		{Name: AreaFieldMapping, Path: "/field-mapping", Requirement: gate.RequirePermission(gate.PermissionViewSchemas)},
		{Name: AreaFieldMappingCreate, Path: "/field-mapping/create", Requirement: gate.RequirePermission(gate.PermissionCreateSchemas)},
		{Name: AreaOrderFlow, Path: "/order-flow", Requirement: gate.RequirePermission(gate.PermissionViewOrderFlow)},
		{Name: AreaUsers, Path: "/users", Requirement: gate.RequirePermission(gate.PermissionCreateUsers)},
		{Name: AreaRoles, Path: "/roles", Requirement: gate.RequirePermission(gate.PermissionCreateRoles)},
		{Name: AreaTenants, Path: "/tenants", Requirement: gate.RequirePermission(gate.PermissionCreateTenants)},
		{Name: AreaOrderStatusManagement, Path: "/order-status-management", Requirement: gate.RequireAny(
			gate.PermissionViewOrderFlow,
			gate.PermissionViewReports,
		)},
		{Name: AreaGlobalSchemas, Path: "/global-schemas", Requirement: gate.RequirePermission(gate.PermissionViewGlobalSchemas)},
		{Name: AreaGlobalSchemasCreate, Path: "/global-schemas/create", Requirement: gate.RequirePermission(gate.PermissionCreateGlobalSchemas)},
		{Name: AreaGlobalSchemasEdit, Path: "/global-schemas/:id/edit", Requirement: gate.RequirePermission(gate.PermissionUpdateGlobalSchemas)},
		{Name: AreaOrders, Path: "/orders", Requirement: gate.RequireAny(
			gate.PermissionViewOrders,
			gate.PermissionProcessOrders,
		)},
		{Name: AreaOrderDetail, Path: "/orders/:id", Requirement: gate.RequireAny(
			gate.PermissionViewOrders,
			gate.PermissionProcessOrders,
		)},
		{Name: AreaSettings, Path: "/settings", Requirement: gate.RequireAny(
			gate.PermissionViewTenants,
			gate.PermissionViewUsers,
			gate.PermissionViewRoles,
		)},
	})
}
