// Пакет seed содержит эталонный набор данных операционной панели.
// InitDB загружает его в пустые таблицы при первом запуске; те же наборы
// служат фикстурами для сценарных тестов.
package seed

import (
	"time"

	"RecliqOps/internal/constants"
	"RecliqOps/internal/models"
)

var seedTime = time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)

func at(daysAgo int) time.Time {
	return seedTime.AddDate(0, 0, -daysAgo)
}

// WeightLogs возвращает эталонные журналы взвешивания WGT001–WGT005.
func WeightLogs() []models.WeightLog {
	return []models.WeightLog{
		{
			ID: "WGT001", RelatedID: "PCK1042", UserName: "Chinedu Okafor", AgentName: "Tunde Bakare",
			City: "Lagos", Zone: "Ikeja", Category: "plastic",
			EstimatedWeightKg: 10.0, MeasuredWeightKg: 10.5, FinalWeightKg: 10.5, VariancePct: 5.0,
			Status: constants.WEIGHTLOG_STATUS_VERIFIED,
			CreatedAt: at(6), UpdatedAt: at(6),
		},
		{
			ID: "WGT002", RelatedID: "PCK1057", UserName: "Amina Yusuf", AgentName: "Tunde Bakare",
			City: "Lagos", Zone: "Surulere", Category: "metal",
			EstimatedWeightKg: 8.0, MeasuredWeightKg: 8.5, FinalWeightKg: 8.8, VariancePct: 10.0,
			Status: constants.WEIGHTLOG_STATUS_ADJUSTED,
			ManualAdjustments: []models.ManualAdjustment{{
				ID: "d2f0a7e4-3c1b-4f7a-9b52-6a8e1c90d411", OriginalWeightKg: 8.5, AdjustedWeightKg: 8.8,
				Reason: "Вес контейнера не был вычтен при приемке", PerformedBy: "OPS002", CreatedAt: at(5),
			}},
			CreatedAt: at(5), UpdatedAt: at(5),
		},
		{
			ID: "WGT003", RelatedID: "DRP0311", UserName: "Emeka Nwosu", AgentName: "Funke Adeyemi",
			City: "Abuja", Zone: "Garki", Category: "paper",
			EstimatedWeightKg: 5.0, MeasuredWeightKg: 5.5, FinalWeightKg: 5.5, VariancePct: 10.0,
			Status: constants.WEIGHTLOG_STATUS_DISPUTED, DisputeCount: 1,
			CreatedAt: at(4), UpdatedAt: at(3),
		},
		{
			ID: "WGT004", RelatedID: "PCK1103", UserName: "Bola Adekunle", AgentName: "Funke Adeyemi",
			City: "Port Harcourt", Zone: "Diobu", Category: "e-waste",
			EstimatedWeightKg: 5.0, MeasuredWeightKg: 7.0, FinalWeightKg: 7.0, VariancePct: 40.0,
			Status: constants.WEIGHTLOG_STATUS_FLAGGED,
			CreatedAt: at(2), UpdatedAt: at(2),
		},
		{
			ID: "WGT005", RelatedID: "DRP0342", UserName: "Ngozi Eze", AgentName: "Ibrahim Musa",
			City: "Ibadan", Zone: "Bodija", Category: "glass",
			EstimatedWeightKg: 12.0, MeasuredWeightKg: 11.4, FinalWeightKg: 11.4, VariancePct: -5.0,
			Status: constants.WEIGHTLOG_STATUS_VERIFIED,
			CreatedAt: at(1), UpdatedAt: at(1),
		},
	}
}

// Referrals возвращает эталонные рефералы REF001–REF005.
func Referrals() []models.Referral {
	return []models.Referral{
		{
			ID: "REF001", ReferrerID: "USR001", ReferrerName: "Chinedu Okafor",
			InvitedUserID: "USR006", InvitedName: "Kemi Alabi", ReferralCode: "CHINEDU-4K2",
			Channel: "whatsapp", City: "Lagos",
			Status: constants.REFERRAL_STATUS_REWARDED, RewardPoints: 150, RewardIssued: true,
			SignedUpAt: models.NewNullTime(at(20)), ActivatedAt: models.NewNullTime(at(14)),
			RewardedAt: models.NewNullTime(at(12)),
			CreatedAt:  at(25), UpdatedAt: at(12),
		},
		{
			ID: "REF002", ReferrerID: "USR001", ReferrerName: "Chinedu Okafor",
			InvitedUserID: "USR007", InvitedName: "Yemi Fashola", ReferralCode: "CHINEDU-4K2",
			Channel: "in_app", City: "Lagos",
			Status: constants.REFERRAL_STATUS_ACTIVATED, RewardPoints: 150,
			SignedUpAt: models.NewNullTime(at(10)), ActivatedAt: models.NewNullTime(at(4)),
			CreatedAt: at(11), UpdatedAt: at(4),
		},
		{
			ID: "REF003", ReferrerID: "USR003", ReferrerName: "Emeka Nwosu",
			InvitedUserID: "USR008", InvitedName: "Sade Balogun", ReferralCode: "EMEKA-9Q7",
			Channel: "sms", City: "Abuja",
			Status: constants.REFERRAL_STATUS_SIGNED_UP, RewardPoints: 150,
			SignedUpAt: models.NewNullTime(at(3)),
			CreatedAt:  at(5), UpdatedAt: at(3),
		},
		{
			ID: "REF004", ReferrerID: "USR004", ReferrerName: "Bola Adekunle",
			InvitedUserID: "USR009", InvitedName: "Bola Adekunle Jr", ReferralCode: "BOLA-1X3",
			Channel: "in_app", City: "Port Harcourt",
			Status: constants.REFERRAL_STATUS_FLAGGED, RewardPoints: 150,
			SignedUpAt: models.NewNullTime(at(8)),
			AbuseFlags: []models.AbuseFlag{{
				ID: "7c9b3f02-88e1-4d6a-b1c4-efa2051d9c63",
				Reason: "Самоприглашение: совпадают номер телефона и адрес", Severity: "high",
				FlaggedBy: "OPS002", CreatedAt: at(7),
			}},
			CreatedAt: at(9), UpdatedAt: at(7),
		},
		{
			ID: "REF005", ReferrerID: "USR002", ReferrerName: "Amina Yusuf",
			InvitedUserID: "", InvitedName: "Invited via link", ReferralCode: "AMINA-7T8",
			Channel: "whatsapp", City: "Lagos",
			Status: constants.REFERRAL_STATUS_PENDING, RewardPoints: 150,
			CreatedAt: at(2), UpdatedAt: at(2),
		},
	}
}

// Badges возвращает эталонный каталог значков BADGE001–BADGE006.
func Badges() []models.Badge {
	return []models.Badge{
		{
			ID: "BADGE001", Code: "first_steps", Name: "First Steps",
			Description: "Complete your first pickup", Category: "recycling", Tier: "bronze",
			Eligibility: []string{constants.ACTOR_TYPE_USER}, Status: constants.BADGE_STATUS_ACTIVE,
			UnlockConditions: models.UnlockConditionList{{Metric: "pickups", Operator: "gte", Threshold: 1}},
			Perks:            models.BadgePerkList{{Type: "points_bonus", Value: 50, Description: "One-time 50 point bonus"}},
			TotalEarned:      1841, EarnRatePct: 62.3,
			CreatedAt: at(180), UpdatedAt: at(30),
		},
		{
			ID: "BADGE002", Code: "eco_warrior", Name: "Eco Warrior",
			Description: "Recycle 50 kg of material", Category: "recycling", Tier: "silver",
			Eligibility: []string{constants.ACTOR_TYPE_USER, constants.ACTOR_TYPE_BUSINESS},
			Status:      constants.BADGE_STATUS_ACTIVE,
			UnlockConditions: models.UnlockConditionList{{Metric: "total_kg", Operator: "gte", Threshold: 50}},
			Perks:            models.BadgePerkList{{Type: "points_multiplier", Value: 1.1, Description: "+10% points on every pickup"}},
			TotalEarned:      612, EarnRatePct: 20.7,
			CreatedAt: at(180), UpdatedAt: at(30),
		},
		{
			ID: "BADGE003", Code: "century_club", Name: "Century Club",
			Description: "Recycle 100 kg within 90 days", Category: "milestone", Tier: "gold",
			Eligibility: []string{constants.ACTOR_TYPE_USER, constants.ACTOR_TYPE_BUSINESS},
			Status:      constants.BADGE_STATUS_ACTIVE,
			UnlockConditions: models.UnlockConditionList{
				{Metric: "total_kg", Operator: "gte", Threshold: 100, WindowDays: 90},
			},
			Perks:       models.BadgePerkList{{Type: "priority_pickup", Value: 1, Description: "Priority pickup scheduling"}},
			TotalEarned: 148, EarnRatePct: 5.0,
			CreatedAt: at(150), UpdatedAt: at(20),
		},
		{
			ID: "BADGE004", Code: "connector", Name: "Connector",
			Description: "Have 3 referrals reach activation", Category: "referral", Tier: "silver",
			Eligibility: []string{constants.ACTOR_TYPE_USER}, Status: constants.BADGE_STATUS_ACTIVE,
			UnlockConditions: models.UnlockConditionList{{Metric: "referrals_activated", Operator: "gte", Threshold: 3}},
			Perks:            models.BadgePerkList{{Type: "points_bonus", Value: 200, Description: "One-time 200 point bonus"}},
			TotalEarned:      96, EarnRatePct: 3.2,
			CreatedAt: at(120), UpdatedAt: at(15),
		},
		{
			ID: "BADGE005", Code: "streak_keeper", Name: "Streak Keeper",
			Description: "Recycle every week for 4 weeks straight", Category: "streak", Tier: "bronze",
			Eligibility: []string{constants.ACTOR_TYPE_USER}, Status: constants.BADGE_STATUS_ACTIVE,
			UnlockConditions: models.UnlockConditionList{{Metric: "streak_weeks", Operator: "gte", Threshold: 4}},
			Perks:            models.BadgePerkList{{Type: "points_multiplier", Value: 1.05, Description: "+5% points while streak holds"}},
			TotalEarned:      377, EarnRatePct: 12.8,
			CreatedAt: at(120), UpdatedAt: at(15),
		},
		{
			ID: "BADGE006", Code: "early_bird", Name: "Early Bird",
			Description: "Joined during the launch quarter", Category: "milestone", Tier: "bronze",
			Eligibility: []string{constants.ACTOR_TYPE_USER, constants.ACTOR_TYPE_AGENT, constants.ACTOR_TYPE_BUSINESS},
			Status:      constants.BADGE_STATUS_RETIRED,
			UnlockConditions: models.UnlockConditionList{{Metric: "joined_days_ago", Operator: "gte", Threshold: 365}},
			TotalEarned:      2250, EarnRatePct: 76.1,
			CreatedAt: at(400), UpdatedAt: at(90),
		},
	}
}

// Rules возвращает эталонные правила начисления RULE001–RULE004.
func Rules() []models.PointsRule {
	return []models.PointsRule{
		{
			ID: "RULE001", Code: "pickup_base", Name: "Pickup Base Points",
			Description: "Standard accrual for completed pickups",
			Trigger:     "pickup_completed", Scope: constants.RULE_SCOPE_GLOBAL,
			Eligibility: []string{constants.ACTOR_TYPE_USER, constants.ACTOR_TYPE_BUSINESS},
			Status:      constants.RULE_STATUS_ACTIVE,
			Logic: models.PointsLogic{
				BasePoints: 10, PerKgPoints: 2, MaxWeightKg: 50,
				Multipliers: []models.Multiplier{
					{Name: "Weekend boost", Factor: 1.5, Condition: "weekend"},
				},
				Bonuses: []models.ConditionalBonus{
					{Condition: "first_pickup", Points: 25, Description: "First ever pickup"},
				},
			},
			Safeguards: models.Safeguards{MaxPointsPerEvent: 200, MaxEventsPerDay: 10, MaxPointsPerDay: 1000},
			CreatedAt:  at(200), UpdatedAt: at(40),
		},
		{
			ID: "RULE002", Code: "lagos_dropoff", Name: "Lagos Drop-off Push",
			Description: "Extra accrual for drop-offs at Lagos collection points",
			Trigger:     "dropoff_completed", Scope: constants.RULE_SCOPE_CITY, ScopeValue: "Lagos",
			Eligibility: []string{constants.ACTOR_TYPE_USER},
			Status:      constants.RULE_STATUS_ACTIVE,
			Logic: models.PointsLogic{
				BasePoints: 15, PerKgPoints: 3, MaxWeightKg: 30,
				Multipliers: []models.Multiplier{
					{Name: "E-waste premium", Factor: 2, Condition: "e-waste"},
				},
			},
			Safeguards: models.Safeguards{MaxPointsPerEvent: 150, MaxEventsPerDay: 5, MaxPointsPerDay: 500},
			CreatedAt:  at(90), UpdatedAt: at(10),
		},
		{
			ID: "RULE003", Code: "referral_activation", Name: "Referral Activation Reward",
			Description: "Points to the referrer when an invitee activates",
			Trigger:     "referral_activated", Scope: constants.RULE_SCOPE_GLOBAL,
			Eligibility: []string{constants.ACTOR_TYPE_USER},
			Status:      constants.RULE_STATUS_SCHEDULED,
			StartsAt:    models.NewNullTime(seedTime.AddDate(0, 1, 0)),
			EndsAt:      models.NewNullTime(seedTime.AddDate(0, 3, 0)),
			Logic:       models.PointsLogic{BasePoints: 150},
			Safeguards:  models.Safeguards{MaxEventsPerDay: 3, MaxPointsPerDay: 450},
			CreatedAt:   at(30), UpdatedAt: at(5),
		},
		{
			ID: "RULE004", Code: "eco_week", Name: "Eco Week Campaign",
			Description: "Campaign multiplier during eco week",
			Trigger:     "pickup_completed", Scope: constants.RULE_SCOPE_CAMPAIGN, ScopeValue: "eco-week",
			Eligibility: []string{constants.ACTOR_TYPE_USER, constants.ACTOR_TYPE_AGENT, constants.ACTOR_TYPE_BUSINESS},
			Status:      constants.RULE_STATUS_PAUSED,
			Logic: models.PointsLogic{
				BasePoints: 5, PerKgPoints: 4, MaxWeightKg: 40,
				Multipliers: []models.Multiplier{{Name: "Campaign doubler", Factor: 2}},
			},
			Safeguards: models.Safeguards{MaxPointsPerEvent: 300},
			CreatedAt:  at(60), UpdatedAt: at(12),
		},
	}
}

// Users возвращает эталонных участников платформы и сотрудников панели.
func Users() []models.User {
	return []models.User{
		{ID: "OPS001", Name: "Ada Obi", Phone: "+2348012000001", Email: "ada@recliq.example",
			Type: constants.ACTOR_TYPE_USER, Status: constants.USER_STATUS_ACTIVE,
			Role: constants.ROLE_OWNER, City: "Lagos", CreatedAt: at(400), UpdatedAt: at(400)},
		{ID: "OPS002", Name: "Seun Adeleke", Phone: "+2348012000002", Email: "seun@recliq.example",
			Type: constants.ACTOR_TYPE_USER, Status: constants.USER_STATUS_ACTIVE,
			Role: constants.ROLE_OPERATOR, City: "Lagos", CreatedAt: at(300), UpdatedAt: at(300)},
		{ID: "USR001", Name: "Chinedu Okafor", Phone: "+2348023000001", Email: "chinedu@example.com",
			Type: constants.ACTOR_TYPE_USER, Status: constants.USER_STATUS_ACTIVE,
			City: "Lagos", Zone: "Ikeja", TotalPickups: 24, TotalKg: 186.5, Points: 1240,
			CreatedAt: at(260), UpdatedAt: at(6)},
		{ID: "USR002", Name: "Amina Yusuf", Phone: "+2348023000002", Email: "amina@example.com",
			Type: constants.ACTOR_TYPE_USER, Status: constants.USER_STATUS_ACTIVE,
			City: "Lagos", Zone: "Surulere", TotalPickups: 11, TotalKg: 74.2, Points: 530,
			CreatedAt: at(150), UpdatedAt: at(5)},
		{ID: "USR003", Name: "Emeka Nwosu", Phone: "+2348023000003", Email: "emeka@example.com",
			Type: constants.ACTOR_TYPE_BUSINESS, Status: constants.USER_STATUS_ACTIVE,
			City: "Abuja", Zone: "Garki", TotalPickups: 47, TotalKg: 812.0, Points: 3980,
			CreatedAt: at(210), UpdatedAt: at(4)},
		{ID: "USR004", Name: "Bola Adekunle", Phone: "+2348023000004", Email: "bola@example.com",
			Type: constants.ACTOR_TYPE_USER, Status: constants.USER_STATUS_FLAGGED,
			City: "Port Harcourt", Zone: "Diobu", TotalPickups: 6, TotalKg: 31.8, Points: 180,
			SuspendReason: models.NewNullString("Подозрение на накрутку рефералов"),
			CreatedAt:     at(60), UpdatedAt: at(7)},
		{ID: "USR005", Name: "Ibrahim Musa", Phone: "+2348023000005", Email: "ibrahim@example.com",
			Type: constants.ACTOR_TYPE_AGENT, Status: constants.USER_STATUS_ACTIVE,
			City: "Ibadan", Zone: "Bodija", TotalPickups: 132, TotalKg: 2240.7, Points: 0,
			CreatedAt: at(320), UpdatedAt: at(1)},
	}
}
