package log

// Field names shared by every structured log line.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldSuccess    = "success"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldLocale     = "locale"
	FieldTab        = "tab"
	FieldDialogOpen = "dialog_open"
	FieldEvent      = "event"
	FieldBackend    = "backend"
	FieldApiaries   = "apiaries"
	FieldHives      = "hives"
	FieldHarvests   = "harvests"
	FieldTasks      = "tasks"
	FieldTemplate   = "template"
	FieldPort       = "port"
	FieldDBPath     = "db_path"
	FieldVersion    = "version"
)

const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentDataset  = "dataset"
	ComponentStorage  = "storage"
	ComponentView     = "view"
	ComponentI18n     = "i18n"
	ComponentSecurity = "security"
	ComponentTrace    = "trace"
	ComponentBackend  = "backend"
	ComponentTemplate = "template"
)

const (
	OpLoad       = "load"
	OpMigrate    = "migrate"
	OpRender     = "render"
	OpTransition = "transition"
	OpValidate   = "validate"
	OpStartup    = "startup"
	OpShutdown   = "shutdown"
)

// LogFields builds a set of slog key/value pairs.
type LogFields map[string]any

func NewFields() LogFields {
	return make(LogFields)
}

func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

func (f LogFields) WithRequestID(requestID string) LogFields {
	f[FieldRequestID] = requestID
	return f
}

func (f LogFields) WithClientIP(ip string) LogFields {
	f[FieldClientIP] = ip
	return f
}

// WithError adds the error text; nil is ignored.
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithDatasetCounts records the size of a loaded dataset.
func (f LogFields) WithDatasetCounts(apiaries, hives, harvests, tasks int) LogFields {
	f[FieldApiaries] = apiaries
	f[FieldHives] = hives
	f[FieldHarvests] = harvests
	f[FieldTasks] = tasks
	return f
}

// WithViewState records the dashboard state a response was rendered for.
func (f LogFields) WithViewState(tab string, dialogOpen bool) LogFields {
	f[FieldTab] = tab
	f[FieldDialogOpen] = dialogOpen
	return f
}

func (f LogFields) WithHTTPRequest(method, path, query, userAgent string) LogFields {
	f[FieldMethod] = method
	f[FieldPath] = path
	f[FieldQuery] = query
	if userAgent != "" {
		f[FieldUserAgent] = userAgent
	}
	return f
}

func (f LogFields) WithHTTPResponse(statusCode int, durationMs int64) LogFields {
	f[FieldStatusCode] = statusCode
	f[FieldDuration] = durationMs
	f[FieldSuccess] = statusCode < 400
	return f
}

// ToSlice flattens the fields for slog.
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
