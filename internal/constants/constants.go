package constants

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 商品分类常量
const (
	CategoryCoffee     = "coffee"
	CategoryCookies    = "cookies"
	CategoryFood       = "food"
	CategoryColdDrinks = "cold_drinks"
)

// LocalKeyPrefix 购物车/收藏本地占位键前缀（远端写入失败时使用）
const LocalKeyPrefix = "local:"

// 异步任务类型常量
const (
	TaskCartReconcile = "cart:reconcile"
)

// 队列名称常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 验证码场景常量
const (
	CaptchaSceneLogin = "login"
)

// Mongo 集合名常量
const (
	CollectionUsers     = "users"
	CollectionCarts     = "carts"
	CollectionFavorites = "favorites"
	CollectionSales     = "sales"
)

// 内置管理员角色
const RoleAdmin = "role:admin"
