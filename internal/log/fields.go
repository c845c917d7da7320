package log

// Common field names for structured logging.
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldClientIP  = "client_ip"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldDuration  = "duration_ms"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldProduct   = "product"
	FieldCount     = "count"
	FieldPrice     = "price"
	FieldTotal     = "total"
	FieldDate      = "date"
	FieldRecord    = "record"
	FieldFormat    = "format"
	FieldDays      = "days"
)

// Components defines standard component names.
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentStorage  = "storage"
	ComponentCatalog  = "catalog"
	ComponentSales    = "sales"
	ComponentDayClose = "dayclose"
	ComponentStats    = "stats"
	ComponentExport   = "export"
)

// Operations defines standard operation names.
const (
	OpAdd    = "add"
	OpUpdate = "update"
	OpDelete = "delete"
	OpRecord = "record"
	OpUndo   = "undo"
	OpClose  = "close"
	OpClear  = "clear"
	OpReset  = "reset"
	OpExport = "export"
	OpImport = "import"
	OpLoad   = "load"
	OpSave   = "save"
)
