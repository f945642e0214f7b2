package consts

const (
	ActionApprove  = "approve"
	ActionReject   = "reject"
	ActionSchedule = "schedule"
)

const (
	DisplayedFilterDisplayed    = "displayed"
	DisplayedFilterNotDisplayed = "not-displayed"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// AllowedImageSubtypes 允许的图片 MIME 子类型
var AllowedImageSubtypes = []string{"jpg", "jpeg", "png", "gif", "webp"}
