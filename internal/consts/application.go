package consts

const (
	ApplicationName    = "Live Wall Server"
	ApplicationVersion = "1.0.0"
)

// AdminSecretHeader 管理员创建接口使用的共享密钥请求头
const AdminSecretHeader = "x-admin-secret"
