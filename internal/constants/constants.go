package constants

// Weight log statuses
// Статусы журналов взвешивания
const (
	WEIGHTLOG_STATUS_VERIFIED = "verified" // Взвешивание подтверждено админом
	WEIGHTLOG_STATUS_DISPUTED = "disputed" // Открыт спор по весу
	WEIGHTLOG_STATUS_ADJUSTED = "adjusted" // Вес скорректирован вручную
	WEIGHTLOG_STATUS_FLAGGED  = "flagged"  // Помечен как подозрительный
)

// Weight log admin actions
// Действия админа над журналом взвешивания
const (
	WEIGHTLOG_ACTION_APPROVE      = "approve"
	WEIGHTLOG_ACTION_ADJUST       = "adjust"
	WEIGHTLOG_ACTION_OPEN_DISPUTE = "open_dispute"
	WEIGHTLOG_ACTION_FLAG         = "flag"
	WEIGHTLOG_ACTION_MODIFIED     = "modified" // Сохранение отредактированной копии из детальной панели
)

// Referral statuses
// Статусы рефералов
const (
	REFERRAL_STATUS_PENDING   = "pending"   // Приглашение отправлено, регистрация не завершена
	REFERRAL_STATUS_SIGNED_UP = "signed_up" // Приглашенный зарегистрировался
	REFERRAL_STATUS_ACTIVATED = "activated" // Приглашенный выполнил первый заказ
	REFERRAL_STATUS_REWARDED  = "rewarded"  // Бонус выдан пригласившему
	REFERRAL_STATUS_FLAGGED   = "flagged"   // Подозрение на злоупотребление
	REFERRAL_STATUS_REVOKED   = "revoked"   // Реферал аннулирован
)

// Referral admin actions
const (
	REFERRAL_ACTION_MARK_SIGNED_UP = "mark_signed_up"
	REFERRAL_ACTION_MARK_ACTIVATED = "mark_activated"
	REFERRAL_ACTION_ISSUE_REWARD   = "issue_reward"
	REFERRAL_ACTION_FLAG_ABUSE     = "flag_abuse"
	REFERRAL_ACTION_REVOKE         = "revoke"
)

// Badge statuses. В исходных данных встречался также несогласованный статус
// "paused" вне объявленного enum — здесь он узаконен как полноправное состояние.
const (
	BADGE_STATUS_ACTIVE  = "active"
	BADGE_STATUS_PAUSED  = "paused"
	BADGE_STATUS_RETIRED = "retired"
)

// Badge admin actions
const (
	BADGE_ACTION_ACTIVATE  = "activate"
	BADGE_ACTION_PAUSE     = "pause"
	BADGE_ACTION_RETIRE    = "retire"
	BADGE_ACTION_MODIFIED  = "modified"
	BADGE_ACTION_DUPLICATE = "duplicate"
)

// Points rule statuses
const (
	RULE_STATUS_ACTIVE    = "active"
	RULE_STATUS_PAUSED    = "paused"
	RULE_STATUS_SCHEDULED = "scheduled"
	RULE_STATUS_RETIRED   = "retired"
)

// Points rule admin actions
const (
	RULE_ACTION_ACTIVATE  = "activate"
	RULE_ACTION_PAUSE     = "pause"
	RULE_ACTION_RETIRE    = "retire"
	RULE_ACTION_SCHEDULE  = "schedule"
	RULE_ACTION_MODIFIED  = "modified"
	RULE_ACTION_DUPLICATE = "duplicate"
)

// User statuses and actions (пользовательская граница REST)
const (
	USER_STATUS_ACTIVE    = "active"
	USER_STATUS_SUSPENDED = "suspended"
	USER_STATUS_FLAGGED   = "flagged"

	USER_ACTION_SUSPEND    = "suspend"
	USER_ACTION_REACTIVATE = "reactivate"
	USER_ACTION_FLAG       = "flag"
)

// Actor types (eligibility)
// Типы участников платформы
const (
	ACTOR_TYPE_USER     = "user"
	ACTOR_TYPE_AGENT    = "agent"
	ACTOR_TYPE_BUSINESS = "business"
)

// Staff roles of the ops dashboard, ordered by privilege.
// Роли сотрудников панели, по возрастанию привилегий.
const (
	ROLE_VIEWER   = "viewer"
	ROLE_OPERATOR = "operator"
	ROLE_ADMIN    = "admin"
	ROLE_OWNER    = "owner"
)

// Points rule scopes
const (
	RULE_SCOPE_GLOBAL   = "global"
	RULE_SCOPE_CITY     = "city"
	RULE_SCOPE_ZONE     = "zone"
	RULE_SCOPE_CAMPAIGN = "campaign"
)

// Notification severities returned alongside successful admin actions.
// Уровни уведомлений, возвращаемых после успешных действий админа.
const (
	NOTIFY_SUCCESS = "success"
	NOTIFY_WARNING = "warning"
	NOTIFY_INFO    = "info"
)

// Risk levels for the fixed classification breakpoints.
// Уровни риска для фиксированных порогов классификации.
const (
	RISK_LOW      = "low"
	RISK_ELEVATED = "elevated"
	RISK_HIGH     = "high"
	RISK_CRITICAL = "critical"

	CONVERSION_GOOD = "good"
	CONVERSION_OK   = "ok"
	CONVERSION_WEAK = "weak"
	CONVERSION_POOR = "poor"
)

// StatusMeta описывает отображение статуса (ярлык + цвет для фронтенда/отчетов).
type StatusMeta struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// WeightLogStatusMeta — единая таблица отображения статусов журналов взвешивания.
// Раньше такие соответствия дублировались в каждом компоненте интерфейса.
var WeightLogStatusMeta = map[string]StatusMeta{
	WEIGHTLOG_STATUS_VERIFIED: {Label: "Verified", Color: "green"},
	WEIGHTLOG_STATUS_DISPUTED: {Label: "Disputed", Color: "orange"},
	WEIGHTLOG_STATUS_ADJUSTED: {Label: "Adjusted", Color: "blue"},
	WEIGHTLOG_STATUS_FLAGGED:  {Label: "Flagged", Color: "red"},
}

var ReferralStatusMeta = map[string]StatusMeta{
	REFERRAL_STATUS_PENDING:   {Label: "Pending", Color: "grey"},
	REFERRAL_STATUS_SIGNED_UP: {Label: "Signed Up", Color: "blue"},
	REFERRAL_STATUS_ACTIVATED: {Label: "Activated", Color: "teal"},
	REFERRAL_STATUS_REWARDED:  {Label: "Rewarded", Color: "green"},
	REFERRAL_STATUS_FLAGGED:   {Label: "Flagged", Color: "red"},
	REFERRAL_STATUS_REVOKED:   {Label: "Revoked", Color: "black"},
}

var BadgeStatusMeta = map[string]StatusMeta{
	BADGE_STATUS_ACTIVE:  {Label: "Active", Color: "green"},
	BADGE_STATUS_PAUSED:  {Label: "Paused", Color: "orange"},
	BADGE_STATUS_RETIRED: {Label: "Retired", Color: "grey"},
}

var RuleStatusMeta = map[string]StatusMeta{
	RULE_STATUS_ACTIVE:    {Label: "Active", Color: "green"},
	RULE_STATUS_PAUSED:    {Label: "Paused", Color: "orange"},
	RULE_STATUS_SCHEDULED: {Label: "Scheduled", Color: "blue"},
	RULE_STATUS_RETIRED:   {Label: "Retired", Color: "grey"},
}

var UserStatusMeta = map[string]StatusMeta{
	USER_STATUS_ACTIVE:    {Label: "Active", Color: "green"},
	USER_STATUS_SUSPENDED: {Label: "Suspended", Color: "red"},
	USER_STATUS_FLAGGED:   {Label: "Flagged", Color: "orange"},
}

// VarianceRiskLevel классифицирует абсолютное расхождение веса (в процентах)
// по фиксированным бизнес-порогам: ≤5 low, ≤10 elevated, ≤20 high, >20 critical.
// Пороги — политика бизнеса, из данных не выводятся.
func VarianceRiskLevel(variancePct float64) string {
	abs := variancePct
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs <= 5:
		return RISK_LOW
	case abs <= 10:
		return RISK_ELEVATED
	case abs <= 20:
		return RISK_HIGH
	default:
		return RISK_CRITICAL
	}
}

// ConversionRateLevel классифицирует конверсию реферальной программы (в процентах):
// ≥40 good, ≥30 ok, ≥20 weak, иначе poor.
func ConversionRateLevel(ratePct float64) string {
	switch {
	case ratePct >= 40:
		return CONVERSION_GOOD
	case ratePct >= 30:
		return CONVERSION_OK
	case ratePct >= 20:
		return CONVERSION_WEAK
	default:
		return CONVERSION_POOR
	}
}
