package consts

// Context 中的 Key，由中间件写入
const (
	UserIDKey    = "user_id"
	UsernameKey  = "username"
	ClientIPKey  = "client_ip"
	UserAgentKey = "user_agent"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

const (
	DefaultAuditLogLimit = 50
	MaxAuditLogLimit     = 500
)
