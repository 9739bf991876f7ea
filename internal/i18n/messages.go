package i18n

var messages = map[string]map[string]string{
	LocaleEN: {
		"error.bad_request":          "Bad request",
		"error.unauthorized":         "Unauthorized",
		"error.forbidden":            "Access denied",
		"error.not_found":            "Resource not found",
		"error.internal":             "Internal server error",
		"error.too_many_requests":    "Too many requests, please try again later",
		"error.validation_failed":    "Validation failed",
		"error.constraint_violation": "The data could not be saved",
		"error.route_not_found":      "Route not found",
		"error.user_id_invalid":      "Invalid user id",
		"error.user_id_type_invalid": "Invalid user id type",
		"error.id_invalid":           "Invalid id",

		"error.user_not_found":      "User not found",
		"error.seller_not_found":    "Seller not found",
		"error.brand_not_found":     "Brand not found",
		"error.sale_item_not_found": "Sale item not found",
		"error.order_not_found":     "Order not found",
		"error.cart_item_not_found": "Cart item not found",

		"error.email_invalid":            "Invalid email address",
		"error.email_exists":             "Email is already registered",
		"error.password_weak":            "Password does not meet the policy",
		"error.password_min_length":      "Password must be at least %d characters",
		"error.password_require_upper":   "Password must contain an uppercase letter",
		"error.password_require_lower":   "Password must contain a lowercase letter",
		"error.password_require_number":  "Password must contain a digit",
		"error.password_require_special": "Password must contain one of %s",
		"error.password_invalid_char":    "Password contains an unsupported character",
		"error.role_invalid":             "Role must be buyer or seller",
		"error.seller_info_invalid":      "Seller information is incomplete or invalid",
		"error.profile_empty":            "Nothing to update",
		"error.invalid_credentials":      "Email or password is incorrect",
		"error.token_invalid":            "Token is invalid or expired",
		"error.refresh_token_missing":    "Refresh token is missing",
		"error.password_old_invalid":     "Current password is incorrect",
		"error.account_not_active":       "Account is not active, please verify your email",
		"error.account_already_active":   "Account is already active",
		"error.user_mismatch":            "The resource does not belong to the current user",
		"error.not_seller":               "Seller account required",
		"error.own_sale_item":            "You cannot buy your own item",
		"error.captcha_required":         "Captcha is required",
		"error.captcha_invalid":          "Captcha is incorrect",
		"error.captcha_config_invalid":   "Captcha is not configured",
		"error.login_rate_limited":       "Too many login attempts, please try again later",

		"error.brand_name_required": "Brand name is required",
		"error.brand_exists":        "Brand name already exists",
		"error.brand_has_sale_item": "Brand still has sale items",

		"error.sale_item_invalid":       "Sale item information is invalid",
		"error.quantity_invalid":        "Quantity must be greater than zero",
		"error.insufficient_stock":      "Insufficient stock",
		"error.order_items_invalid":     "Order items are invalid",
		"error.image_limit_exceeded":    "A sale item can have at most %d images",
		"error.image_operation_invalid": "Invalid image operation",
		"error.file_type_invalid":       "File type is not allowed",
		"error.file_too_large":          "File is too large",
		"error.image_too_large":         "Image dimensions are too large",
		"error.captcha_unavailable":     "Captcha is unavailable",
		"error.auth_header_missing":     "Authorization header is missing",
		"error.auth_header_invalid":     "Authorization header must be a Bearer token",
		"error.token_revoked":           "Token has been revoked, please sign in again",
		"error.rate_limit_unavailable":  "Rate limiter is unavailable",

		"validation.required": "must not be empty",
		"validation.email":    "must be a valid email address",
		"validation.min":      "must be at least %s",
		"validation.max":      "must be at most %s",
		"validation.gt":       "must be greater than %s",
		"validation.oneof":    "must be one of [%s]",
		"validation.invalid":  "is invalid",

		"mail.verify_email.subject":   "Verify your email",
		"mail.verify_email.body":      "Hello %s,\n\nPlease verify your email by opening the link below:\n%s\n\nThe link expires in %d hours.",
		"mail.reset_password.subject": "Reset your password",
		"mail.reset_password.body":    "Hello %s,\n\nUse the link below to reset your password:\n%s\n\nThe link expires in %d minutes. If you did not request this, ignore this email.",
		"mail.order_placed.subject":   "New order #%d",
		"mail.order_placed.body":      "Hello %s,\n\n%s placed order #%d with %d item(s). Status: %s.\n\nOpen %s to review it.",
	},
	LocaleZH: {
		"error.bad_request":          "请求参数错误",
		"error.unauthorized":         "未登录或登录已失效",
		"error.forbidden":            "无权访问",
		"error.not_found":            "资源不存在",
		"error.internal":             "服务器内部错误",
		"error.too_many_requests":    "请求过于频繁，请稍后再试",
		"error.validation_failed":    "参数校验失败",
		"error.constraint_violation": "数据保存失败",
		"error.route_not_found":      "接口不存在",
		"error.user_id_invalid":      "用户ID无效",
		"error.user_id_type_invalid": "用户ID类型无效",
		"error.id_invalid":           "ID无效",

		"error.user_not_found":      "用户不存在",
		"error.seller_not_found":    "卖家不存在",
		"error.brand_not_found":     "品牌不存在",
		"error.sale_item_not_found": "商品不存在",
		"error.order_not_found":     "订单不存在",
		"error.cart_item_not_found": "购物车记录不存在",

		"error.email_invalid":            "邮箱格式无效",
		"error.email_exists":             "邮箱已注册",
		"error.password_weak":            "密码不符合安全要求",
		"error.password_min_length":      "密码长度至少 %d 位",
		"error.password_require_upper":   "密码需包含大写字母",
		"error.password_require_lower":   "密码需包含小写字母",
		"error.password_require_number":  "密码需包含数字",
		"error.password_require_special": "密码需包含以下字符之一：%s",
		"error.password_invalid_char":    "密码包含不支持的字符",
		"error.role_invalid":             "角色只能是 buyer 或 seller",
		"error.seller_info_invalid":      "卖家资料不完整或格式错误",
		"error.profile_empty":            "没有可更新的资料",
		"error.invalid_credentials":      "邮箱或密码错误",
		"error.token_invalid":            "令牌无效或已过期",
		"error.refresh_token_missing":    "缺少刷新令牌",
		"error.password_old_invalid":     "原密码错误",
		"error.account_not_active":       "账号未激活，请先验证邮箱",
		"error.account_already_active":   "账号已激活",
		"error.user_mismatch":            "资源不属于当前用户",
		"error.not_seller":               "需要卖家账号",
		"error.own_sale_item":            "不能购买自己的商品",
		"error.captcha_required":         "请完成验证码",
		"error.captcha_invalid":          "验证码错误",
		"error.captcha_config_invalid":   "验证码未配置",
		"error.login_rate_limited":       "登录尝试过于频繁，请稍后再试",

		"error.brand_name_required": "品牌名不能为空",
		"error.brand_exists":        "品牌名已存在",
		"error.brand_has_sale_item": "品牌下仍有商品",

		"error.sale_item_invalid":       "商品信息无效",
		"error.quantity_invalid":        "数量必须大于 0",
		"error.insufficient_stock":      "库存不足",
		"error.order_items_invalid":     "订单明细无效",
		"error.image_limit_exceeded":    "每个商品最多 %d 张图片",
		"error.image_operation_invalid": "图片操作无效",
		"error.file_type_invalid":       "文件类型不被允许",
		"error.file_too_large":          "文件大小超过限制",
		"error.image_too_large":         "图片尺寸超过限制",
		"error.captcha_unavailable":     "验证码暂不可用",
		"error.auth_header_missing":     "缺少 Authorization 请求头",
		"error.auth_header_invalid":     "Authorization 请求头格式应为 Bearer",
		"error.token_revoked":           "令牌已失效，请重新登录",
		"error.rate_limit_unavailable":  "限流服务不可用",

		"validation.required": "不能为空",
		"validation.email":    "邮箱格式无效",
		"validation.min":      "不能小于 %s",
		"validation.max":      "不能大于 %s",
		"validation.gt":       "必须大于 %s",
		"validation.oneof":    "必须为 [%s] 之一",
		"validation.invalid":  "格式无效",

		"mail.verify_email.subject":   "验证您的邮箱",
		"mail.verify_email.body":      "%s 您好：\n\n请打开以下链接完成邮箱验证：\n%s\n\n链接 %d 小时内有效。",
		"mail.reset_password.subject": "重置密码",
		"mail.reset_password.body":    "%s 您好：\n\n请通过以下链接重置密码：\n%s\n\n链接 %d 分钟内有效，如非本人操作请忽略。",
		"mail.order_placed.subject":   "新订单 #%d",
		"mail.order_placed.body":      "%s 您好：\n\n%s 提交了订单 #%d，共 %d 件商品，状态：%s。\n\n请前往 %s 查看。",
	},
	LocaleTW: {
		"error.bad_request":          "請求參數錯誤",
		"error.unauthorized":         "未登入或登入已失效",
		"error.forbidden":            "無權存取",
		"error.not_found":            "資源不存在",
		"error.internal":             "伺服器內部錯誤",
		"error.too_many_requests":    "請求過於頻繁，請稍後再試",
		"error.validation_failed":    "參數校驗失敗",
		"error.constraint_violation": "資料儲存失敗",
		"error.route_not_found":      "介面不存在",

		"error.user_not_found":      "用戶不存在",
		"error.seller_not_found":    "賣家不存在",
		"error.brand_not_found":     "品牌不存在",
		"error.sale_item_not_found": "商品不存在",
		"error.order_not_found":     "訂單不存在",
		"error.cart_item_not_found": "購物車記錄不存在",

		"error.email_invalid":          "郵箱格式無效",
		"error.email_exists":           "郵箱已註冊",
		"error.password_weak":          "密碼不符合安全要求",
		"error.password_min_length":    "密碼長度至少 %d 位",
		"error.invalid_credentials":    "郵箱或密碼錯誤",
		"error.token_invalid":          "令牌無效或已過期",
		"error.account_not_active":     "帳號未啟用，請先驗證郵箱",
		"error.account_already_active": "帳號已啟用",
		"error.user_mismatch":          "資源不屬於目前用戶",
		"error.own_sale_item":          "不能購買自己的商品",
		"error.insufficient_stock":     "庫存不足",
		"error.brand_exists":           "品牌名已存在",
		"error.brand_has_sale_item":    "品牌下仍有商品",
		"error.image_limit_exceeded":   "每個商品最多 %d 張圖片",
	},
}
